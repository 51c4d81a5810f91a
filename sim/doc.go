// Package sim provides the discrete-event simulation substrate for supplysim.
//
// # Reading Guide
//
// Start with these files to understand the simulation kernel:
//   - event.go / event_heap.go: pending events ordered by (due time, sequence number)
//   - scheduler.go: the virtual clock and the run loop
//   - process.go: cooperative processes that suspend on Delay or Exchange.Get
//   - exchange.go: the unbounded FIFO store processes use to pass items
//
// # Execution Model
//
// Everything is single-threaded in virtual time. The scheduler pops the
// earliest event, advances the clock and calls its resume callback; a resumed
// process runs until its next suspension point before the scheduler continues.
// Events due at the same time run in the order they were scheduled.
//
// Randomness comes from one SharedRNG per run (rng.go); integer distributions
// for delays and quantities live in distribution.go.
//
// Domain actors are built on top of this package in sim/supplychain/.
package sim
