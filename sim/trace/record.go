// Package trace provides scheduler step recording for post-run analysis.
// This package has no dependencies on sim/ or sim/supplychain/; it stores pure data types.
package trace

// StepRecord captures a single event executed by the scheduler.
type StepRecord struct {
	Clock   int64  // virtual time at which the event ran
	Seq     uint64 // insertion-order tie-breaker of the event
	Process string // resumed process name ("" for plain callbacks)
	Kind    string // start, timer, wakeup or callback
}
