package sim

// Exchange is an unbounded FIFO store connecting processes. Put never blocks;
// Get blocks the calling process until an item is available. Items are
// delivered in the order they were put, and parked getters are served in the
// order they began waiting. At any instant at most one of the buffer and the
// waiting list is non-empty.
type Exchange[T any] struct {
	name    string
	sched   *Scheduler
	buffer  []T
	waiting []*getter[T]
	puts    int64
	gets    int64
}

// getter is a process parked in Get together with the slot Put fills.
type getter[T any] struct {
	proc *Process
	item T
}

// NewExchange creates an empty exchange bound to s.
func NewExchange[T any](s *Scheduler, name string) *Exchange[T] {
	return &Exchange[T]{
		name:  name,
		sched: s,
	}
}

// Name returns the exchange name.
func (ex *Exchange[T]) Name() string { return ex.name }

// Len returns the number of buffered items.
func (ex *Exchange[T]) Len() int { return len(ex.buffer) }

// Waiting returns the number of parked getters.
func (ex *Exchange[T]) Waiting() int { return len(ex.waiting) }

// Puts returns the number of items ever put.
func (ex *Exchange[T]) Puts() int64 { return ex.puts }

// Gets returns the number of items ever handed to a getter.
func (ex *Exchange[T]) Gets() int64 { return ex.gets }

// Items returns a copy of the buffered items, oldest first.
func (ex *Exchange[T]) Items() []T {
	out := make([]T, len(ex.buffer))
	copy(out, ex.buffer)
	return out
}

// Put delivers item to the longest-waiting getter, resuming it at the current
// virtual time, or appends it to the buffer if nobody is waiting.
// Put may be called from a process or from driver code outside any process.
func (ex *Exchange[T]) Put(item T) {
	ex.puts++
	if len(ex.waiting) == 0 {
		ex.buffer = append(ex.buffer, item)
		return
	}
	g := ex.waiting[0]
	ex.waiting[0] = nil
	ex.waiting = ex.waiting[1:]
	g.item = item
	ex.gets++
	g.proc.state = ProcessScheduled
	ex.sched.schedule(ex.sched.clock, g.proc.name, EventKindWakeup, g.proc.resume)
}

// Get returns the oldest buffered item, or suspends p until a Put hands it one.
// Get must be called by p itself while it is running.
func (ex *Exchange[T]) Get(p *Process) T {
	p.mustBeRunning("Get")
	if len(ex.buffer) > 0 {
		item := ex.buffer[0]
		var zero T
		ex.buffer[0] = zero
		ex.buffer = ex.buffer[1:]
		ex.gets++
		return item
	}
	g := &getter[T]{proc: p}
	ex.waiting = append(ex.waiting, g)
	p.suspend(ProcessSuspendedOnExchange)
	return g.item
}
