package sim

import (
	"fmt"
	"math/rand"
)

// === SimulationKey ===

// SimulationKey uniquely identifies a reproducible simulation run.
// Two simulations with the same SimulationKey and identical configuration
// MUST produce bit-for-bit identical results.
type SimulationKey int64

// NewSimulationKey creates a SimulationKey from a seed value.
func NewSimulationKey(seed int64) SimulationKey {
	return SimulationKey(seed)
}

// === SharedRNG ===

// SharedRNG is the single random stream of a run. It is seeded once when the
// driver is constructed and shared by every actor; it is never reseeded per
// actor, so the event order depends only on the key and the draw order.
//
// Thread-safety: NOT thread-safe. Draws happen inside scheduler-driven
// resumptions, which never overlap.
type SharedRNG struct {
	key   SimulationKey
	rng   *rand.Rand
	draws int64
}

// NewSharedRNG creates a SharedRNG from a SimulationKey.
func NewSharedRNG(key SimulationKey) *SharedRNG {
	return &SharedRNG{
		key: key,
		rng: rand.New(rand.NewSource(int64(key))),
	}
}

// IntBetween returns a uniform integer in the closed range [lo, hi].
// Exactly one draw is consumed per call, including when lo == hi.
func (r *SharedRNG) IntBetween(lo, hi int64) int64 {
	if hi < lo {
		panic(fmt.Sprintf("IntBetween: empty range [%d, %d]", lo, hi))
	}
	span := hi - lo + 1
	if span <= 0 {
		panic(fmt.Sprintf("IntBetween: range [%d, %d] is wider than int64", lo, hi))
	}
	r.draws++
	return lo + r.rng.Int63n(span)
}

// Draws returns the number of values drawn so far.
func (r *SharedRNG) Draws() int64 {
	return r.draws
}

// Key returns the SimulationKey used to create this SharedRNG.
func (r *SharedRNG) Key() SimulationKey {
	return r.key
}
