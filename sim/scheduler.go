package sim

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/supplysim/supplysim/sim/trace"
)

var (
	// ErrClockRegression is returned when the scheduler pops an event due
	// before the current clock. It indicates a defect in event insertion and
	// the run is aborted rather than repaired.
	ErrClockRegression = errors.New("clock went backwards")

	// ErrProcessFault is returned when a process body panics.
	ErrProcessFault = errors.New("process fault")

	// ErrSchedulerClosed is returned by Run after Close.
	ErrSchedulerClosed = errors.New("scheduler closed")
)

// Scheduler owns the virtual clock and the pending-event queue and drives the
// run loop. Exactly one resume callback executes at a time: a resumed process
// runs until it suspends again or returns, and only then is the next event popped.
//
// Thread-safety: NOT thread-safe. Run, Close, Spawn and Exchange.Put must be
// called from the driving goroutine or from inside a running process.
type Scheduler struct {
	clock     int64
	events    *EventHeap
	nextSeq   uint64
	steps     int64
	processes []*Process
	trace     *trace.SimulationTrace
	fault     error
	closed    bool
}

// NewScheduler creates a scheduler whose clock starts at start.
func NewScheduler(start int64) *Scheduler {
	return &Scheduler{
		clock:  start,
		events: NewEventHeap(),
	}
}

// Now returns the current virtual time: the due time of the most recently
// executed event, or the start time before the first event.
func (s *Scheduler) Now() int64 {
	return s.clock
}

// Steps returns the number of events executed so far.
func (s *Scheduler) Steps() int64 {
	return s.steps
}

// Pending returns the number of queued events.
func (s *Scheduler) Pending() int {
	return s.events.Len()
}

// Processes returns the spawned processes in spawn order.
func (s *Scheduler) Processes() []*Process {
	return s.processes
}

// SetTrace attaches a step trace. Passing nil disables tracing.
func (s *Scheduler) SetTrace(st *trace.SimulationTrace) {
	s.trace = st
}

// newSeq generates the next sequence number for this scheduler.
func (s *Scheduler) newSeq() uint64 {
	s.nextSeq++
	return s.nextSeq
}

// ScheduleAt queues resume to run at virtual time t. Events at equal times run
// in the order they were scheduled. Scheduling before Now() is not rejected
// here; Run detects it when the event is popped and aborts.
func (s *Scheduler) ScheduleAt(t int64, resume func()) *Event {
	return s.schedule(t, "", EventKindCallback, resume)
}

func (s *Scheduler) schedule(t int64, owner string, kind EventKind, resume func()) *Event {
	ev := &Event{
		DueTime: t,
		Seq:     s.newSeq(),
		Owner:   owner,
		Kind:    kind,
		Resume:  resume,
	}
	s.events.Schedule(ev)
	return ev
}

// Run executes events in (DueTime, Seq) order while the next event is due at
// or before until. It returns when the queue is empty or the next event lies
// beyond until; a later call with a larger bound continues the same run.
func (s *Scheduler) Run(until int64) error {
	if s.closed {
		return ErrSchedulerClosed
	}
	if s.fault != nil {
		return s.fault
	}
	for {
		next := s.events.Peek()
		if next == nil || next.DueTime > until {
			break
		}
		ev := s.events.PopNext()

		// Clock monotonicity
		if ev.DueTime < s.clock {
			s.fault = fmt.Errorf("%w: %s due at %d < clock %d", ErrClockRegression, ev.Label(), ev.DueTime, s.clock)
			return s.fault
		}
		s.clock = ev.DueTime
		s.steps++

		logrus.Tracef("[tick %07d] %s", s.clock, ev.Label())
		if s.trace != nil {
			s.trace.RecordStep(trace.StepRecord{
				Clock:   ev.DueTime,
				Seq:     ev.Seq,
				Process: ev.Owner,
				Kind:    string(ev.Kind),
			})
		}

		ev.Resume()
		if s.fault != nil {
			return s.fault
		}
	}
	return nil
}

// Close terminates every live process and releases its goroutine. Pending
// events are discarded. Close is idempotent; Run fails after Close.
func (s *Scheduler) Close() {
	if s.closed {
		return
	}
	s.closed = true
	for _, p := range s.processes {
		p.terminate()
	}
	s.events = NewEventHeap()
	logrus.Debugf("[tick %07d] scheduler closed after %d steps", s.clock, s.steps)
}
