package supplychain

import (
	"fmt"

	"github.com/supplysim/supplysim/sim"
	"github.com/supplysim/supplysim/sim/trace"
)

// Defaults reproduce the reference scenario: three customers, data collected
// at tick 10 of a run that continues until tick 50.
const (
	DefaultSeed      int64 = 42
	DefaultHorizon   int64 = 50
	DefaultCollectAt int64 = 10
	DefaultCustomers       = 3

	// MaxSampleValue bounds every distribution's maximum, keeping delays and
	// quantities far from int64 overflow in clock arithmetic and summaries.
	MaxSampleValue int64 = 1_000_000_000
)

// Config groups every input of a supply chain run.
type Config struct {
	Seed      int64 // master seed of the shared RNG
	Horizon   int64 // last virtual time at which events execute (must be > 0)
	CollectAt int64 // time at which logs are snapshotted (0 = at the end of the run)
	Customers int   // number of customer processes (>= 0)

	OrderInterval     sim.DistSpec // ticks between a customer's orders (min >= 1)
	OrderQuantity     sim.DistSpec // units per order (min >= 1)
	ManufacturingTime sim.DistSpec // manufacturing lead time in ticks (min >= 0)
	TransportTime     sim.DistSpec // transport time in ticks (min >= 0)

	TraceLevel trace.TraceLevel
}

// DefaultConfig returns the reference configuration.
func DefaultConfig() Config {
	return Config{
		Seed:              DefaultSeed,
		Horizon:           DefaultHorizon,
		CollectAt:         DefaultCollectAt,
		Customers:         DefaultCustomers,
		OrderInterval:     sim.Uniform(1, 5),
		OrderQuantity:     sim.Uniform(1, 10),
		ManufacturingTime: sim.Uniform(2, 5),
		TransportTime:     sim.Uniform(1, 3),
		TraceLevel:        trace.TraceLevelNone,
	}
}

// samplers holds the distributions built from a validated Config.
type samplers struct {
	interval      sim.IntSampler
	quantity      sim.IntSampler
	manufacturing sim.IntSampler
	transport     sim.IntSampler
}

// Validate checks the configuration without building anything.
func (c Config) Validate() error {
	_, err := c.samplers()
	return err
}

func (c Config) samplers() (*samplers, error) {
	if c.Horizon <= 0 {
		return nil, fmt.Errorf("horizon must be positive, got %d", c.Horizon)
	}
	if c.Customers < 0 {
		return nil, fmt.Errorf("customers must be non-negative, got %d", c.Customers)
	}
	if c.CollectAt < 0 {
		return nil, fmt.Errorf("collect_at must be non-negative, got %d", c.CollectAt)
	}
	if c.CollectAt > c.Horizon {
		return nil, fmt.Errorf("collect_at %d is beyond the horizon %d", c.CollectAt, c.Horizon)
	}
	if !trace.IsValidTraceLevel(string(c.TraceLevel)) {
		return nil, fmt.Errorf("unknown trace level %q; valid: none, steps", c.TraceLevel)
	}

	var (
		sm  samplers
		err error
	)
	// A zero order interval would let a customer place unboundedly many
	// orders at a single instant, so intervals start at one tick.
	if sm.interval, err = newSampler("order_interval", c.OrderInterval, 1); err != nil {
		return nil, err
	}
	if sm.quantity, err = newSampler("order_quantity", c.OrderQuantity, 1); err != nil {
		return nil, err
	}
	if sm.manufacturing, err = newSampler("manufacturing_time", c.ManufacturingTime, 0); err != nil {
		return nil, err
	}
	if sm.transport, err = newSampler("transport_time", c.TransportTime, 0); err != nil {
		return nil, err
	}
	return &sm, nil
}

func newSampler(name string, spec sim.DistSpec, floor int64) (sim.IntSampler, error) {
	s, err := sim.NewIntSampler(spec)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	lo, hi := s.Bounds()
	if lo < floor {
		return nil, fmt.Errorf("%s: minimum must be at least %d, got %d", name, floor, lo)
	}
	if hi > MaxSampleValue {
		return nil, fmt.Errorf("%s: maximum must be at most %d, got %d", name, MaxSampleValue, hi)
	}
	return s, nil
}
