package sim

import "fmt"

// EventKind says why a process is being resumed.
type EventKind string

const (
	// EventKindStart is the first resumption of a freshly spawned process.
	EventKindStart EventKind = "start"
	// EventKindTimer fires when a Delay elapses.
	EventKindTimer EventKind = "timer"
	// EventKindWakeup hands an exchange item to a parked getter.
	EventKindWakeup EventKind = "wakeup"
	// EventKindCallback is a plain callback scheduled outside any process.
	EventKindCallback EventKind = "callback"
)

// Event is a pending resumption in virtual time.
// Events are ordered by (DueTime, Seq); Seq is assigned by the Scheduler
// in insertion order so same-time events run first-scheduled first.
type Event struct {
	DueTime int64     // Virtual time at which Resume runs (in ticks)
	Seq     uint64    // Insertion-order tie-breaker, strictly increasing per scheduler
	Owner   string    // Name of the process being resumed ("" for plain callbacks)
	Kind    EventKind // Reason for the resumption
	Resume  func()    // Invoked synchronously by the scheduler
}

// Before reports whether e is ordered strictly before o.
func (e *Event) Before(o *Event) bool {
	if e.DueTime != o.DueTime {
		return e.DueTime < o.DueTime
	}
	return e.Seq < o.Seq
}

// Label renders the event for logs and traces.
func (e *Event) Label() string {
	if e.Owner == "" {
		return string(e.Kind)
	}
	return fmt.Sprintf("%s %s", e.Owner, e.Kind)
}
