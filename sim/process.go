package sim

import (
	"fmt"
	"math"
	"runtime"

	"github.com/sirupsen/logrus"
)

// ProcessState is the lifecycle state of a Process.
type ProcessState int

const (
	ProcessScheduled ProcessState = iota
	ProcessRunning
	ProcessSuspendedOnTimer
	ProcessSuspendedOnExchange
	ProcessTerminated
)

func (st ProcessState) String() string {
	switch st {
	case ProcessScheduled:
		return "scheduled"
	case ProcessRunning:
		return "running"
	case ProcessSuspendedOnTimer:
		return "suspended-on-timer"
	case ProcessSuspendedOnExchange:
		return "suspended-on-exchange"
	case ProcessTerminated:
		return "terminated"
	default:
		return fmt.Sprintf("ProcessState(%d)", int(st))
	}
}

// Process is a cooperative unit of sequential logic driven by a Scheduler.
//
// Each process body runs on its own goroutine, but control is handed back and
// forth over unbuffered channels: the scheduler blocks while the process runs,
// and the process blocks while suspended. At most one of them is ever runnable,
// so process bodies may touch shared simulation state without locking.
type Process struct {
	id    int
	name  string
	sched *Scheduler
	body  func(p *Process)
	state ProcessState

	started  bool
	killed   bool
	wake     chan struct{} // scheduler → process
	yield    chan struct{} // process → scheduler
	panicked any
}

// Spawn creates a process in the Scheduled state and queues its first
// resumption at Now(). The body typically loops forever; returning from it
// terminates the process.
func (s *Scheduler) Spawn(name string, body func(p *Process)) *Process {
	if body == nil {
		panic("Spawn: body must not be nil")
	}
	p := &Process{
		id:    len(s.processes),
		name:  name,
		sched: s,
		body:  body,
		state: ProcessScheduled,
		wake:  make(chan struct{}),
		yield: make(chan struct{}),
	}
	s.processes = append(s.processes, p)
	s.schedule(s.clock, name, EventKindStart, p.resume)
	return p
}

// ID returns the spawn index of the process.
func (p *Process) ID() int { return p.id }

// Name returns the process name given to Spawn.
func (p *Process) Name() string { return p.name }

// State returns the current lifecycle state.
func (p *Process) State() ProcessState { return p.state }

// Now returns the scheduler's current virtual time.
func (p *Process) Now() int64 { return p.sched.clock }

// Scheduler returns the scheduler driving this process.
func (p *Process) Scheduler() *Scheduler { return p.sched }

// Delay suspends the process for d ticks of virtual time.
// A zero delay yields to every event already queued for the current time.
func (p *Process) Delay(d int64) {
	p.mustBeRunning("Delay")
	if d < 0 {
		panic(fmt.Sprintf("Delay: negative duration %d", d))
	}
	if d > math.MaxInt64-p.sched.clock {
		panic(fmt.Sprintf("Delay: duration %d overflows the clock at %d", d, p.sched.clock))
	}
	p.sched.schedule(p.sched.clock+d, p.name, EventKindTimer, p.resume)
	p.suspend(ProcessSuspendedOnTimer)
}

func (p *Process) mustBeRunning(op string) {
	if p.state != ProcessRunning {
		panic(fmt.Sprintf("%s: process %q is %s, not running", op, p.name, p.state))
	}
}

// resume is the callback stored in every event that targets this process.
// It transfers control to the process goroutine and blocks until the process
// suspends or finishes.
func (p *Process) resume() {
	if p.state == ProcessTerminated {
		return
	}
	p.state = ProcessRunning
	if !p.started {
		p.started = true
		go p.run()
	} else {
		p.wake <- struct{}{}
	}
	<-p.yield

	if p.panicked != nil && p.sched.fault == nil {
		p.sched.fault = fmt.Errorf("%w: %s at tick %d: %v", ErrProcessFault, p.name, p.sched.clock, p.panicked)
	}
}

func (p *Process) run() {
	defer func() {
		// recover returns nil on the runtime.Goexit path used by terminate.
		if r := recover(); r != nil {
			p.panicked = r
		}
		p.state = ProcessTerminated
		p.yield <- struct{}{}
	}()
	p.body(p)
}

// suspend hands control back to the scheduler and blocks until resumed.
func (p *Process) suspend(state ProcessState) {
	p.state = state
	p.yield <- struct{}{}
	<-p.wake
	if p.killed {
		runtime.Goexit()
	}
}

// terminate unwinds a suspended process goroutine.
func (p *Process) terminate() {
	switch {
	case p.state == ProcessTerminated:
		return
	case !p.started:
		p.state = ProcessTerminated
	default:
		p.killed = true
		p.wake <- struct{}{}
		<-p.yield
	}
	logrus.Debugf("[tick %07d] process %s terminated", p.sched.clock, p.name)
}
