package supplychain

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/supplysim/supplysim/sim"
	"github.com/supplysim/supplysim/sim/trace"
)

// ErrAlreadyRun is returned by Run on a Simulation that has already run.
var ErrAlreadyRun = errors.New("simulation already run")

// Simulation wires one distributor, one manufacturer and a number of
// customers onto a scheduler and runs them to the configured horizon.
type Simulation struct {
	cfg   Config
	sched *sim.Scheduler
	rng   *sim.SharedRNG
	trace *trace.SimulationTrace

	distributor  *Distributor
	manufacturer *Manufacturer
	customers    []*Customer

	snapshot *Results
	ran      bool
}

// NewSimulation validates cfg and builds the topology. Every process is
// spawned here; nothing executes until Run.
func NewSimulation(cfg Config) (*Simulation, error) {
	sm, err := cfg.samplers()
	if err != nil {
		return nil, fmt.Errorf("invalid supply chain config: %w", err)
	}
	return build(cfg, sm), nil
}

func build(cfg Config, sm *samplers) *Simulation {
	s := &Simulation{
		cfg:   cfg,
		sched: sim.NewScheduler(0),
		rng:   sim.NewSharedRNG(sim.NewSimulationKey(cfg.Seed)),
	}
	if cfg.TraceLevel.Enabled() {
		s.trace = trace.NewSimulationTrace(trace.TraceConfig{Level: cfg.TraceLevel})
		s.sched.SetTrace(s.trace)
	}

	s.distributor = NewDistributor(s.sched, sm.transport, s.rng)
	s.manufacturer = NewManufacturer(s.sched, s.distributor, sm.manufacturing, s.rng)
	for i := 0; i < cfg.Customers; i++ {
		name := fmt.Sprintf("Customer %d", i)
		s.customers = append(s.customers, NewCustomer(name, s.manufacturer.OrderExchange(), sm.interval, sm.quantity, s.rng))
	}

	// The collector goes first so its snapshot precedes actor events due at
	// the same tick.
	if cfg.CollectAt > 0 {
		s.sched.Spawn("collector", s.collector)
	}
	s.sched.Spawn("Distributor", s.distributor.Run)
	s.sched.Spawn("Manufacturer", s.manufacturer.Run)
	for _, c := range s.customers {
		s.sched.Spawn(c.Name(), c.Run)
	}
	return s
}

// Config returns the configuration the simulation was built with.
func (s *Simulation) Config() Config { return s.cfg }

// Customers returns the customer actors in creation order.
func (s *Simulation) Customers() []*Customer { return s.customers }

// Manufacturer returns the manufacturer actor.
func (s *Simulation) Manufacturer() *Manufacturer { return s.manufacturer }

// Distributor returns the distributor actor.
func (s *Simulation) Distributor() *Distributor { return s.distributor }

// Run executes the simulation to the horizon and returns the records. The
// scheduler is torn down before Run returns, on success or failure.
func (s *Simulation) Run() (*Results, error) {
	if s.ran {
		return nil, ErrAlreadyRun
	}
	s.ran = true
	defer s.sched.Close()

	logrus.Infof("Starting supply chain simulation: seed=%d horizon=%d collect_at=%d customers=%d",
		s.cfg.Seed, s.cfg.Horizon, s.cfg.CollectAt, s.cfg.Customers)

	if err := s.sched.Run(s.cfg.Horizon); err != nil {
		return nil, fmt.Errorf("running supply chain: %w", err)
	}

	res := s.snapshot
	if res == nil {
		res = s.collect()
	}
	res.FinalTime = s.sched.Now()
	res.Steps = s.sched.Steps()
	res.Draws = s.rng.Draws()
	res.Trace = s.trace

	logrus.Infof("[tick %07d] Simulation ended after %d steps: %d orders, %d produced, %d received",
		res.FinalTime, res.Steps, len(res.Orders), len(res.Production), len(res.Receipts))
	return res, nil
}

// collector is the process body that snapshots the logs at CollectAt.
func (s *Simulation) collector(p *sim.Process) {
	p.Delay(s.cfg.CollectAt)
	s.snapshot = s.collect()
	logrus.Debugf("[tick %07d] records collected", p.Now())
}

func (s *Simulation) collect() *Results {
	res := &Results{
		Seed:        s.cfg.Seed,
		Horizon:     s.cfg.Horizon,
		CollectedAt: s.sched.Now(),
		Orders:      make([]OrderRecord, 0),
		Production:  s.manufacturer.Production(),
		Receipts:    s.distributor.Receipts(),
		Pipeline:    s.pipeline(),
	}
	for _, c := range s.customers {
		res.Orders = append(res.Orders, c.Orders()...)
	}
	if res.Production == nil {
		res.Production = make([]ProductionRecord, 0)
	}
	if res.Receipts == nil {
		res.Receipts = make([]ReceiptRecord, 0)
	}
	return res
}

func (s *Simulation) pipeline() Pipeline {
	quantities := func(orders []Order) []int {
		out := make([]int, 0, len(orders))
		for _, o := range orders {
			out = append(out, o.Quantity)
		}
		return out
	}
	p := Pipeline{
		AwaitingManufacture: quantities(s.manufacturer.OrderExchange().Items()),
		InManufacture:       []int{},
		AwaitingTransport:   quantities(s.distributor.Inventory().Items()),
		InTransport:         []int{},
	}
	if o := s.manufacturer.inManufacture; o != nil {
		p.InManufacture = append(p.InManufacture, o.Quantity)
	}
	if o := s.distributor.inTransit; o != nil {
		p.InTransport = append(p.InTransport, o.Quantity)
	}
	return p
}
