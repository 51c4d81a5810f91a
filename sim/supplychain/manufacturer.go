package supplychain

import (
	"github.com/sirupsen/logrus"

	"github.com/supplysim/supplysim/sim"
)

// Manufacturer takes orders one at a time, records production on receipt,
// waits the manufacturing lead time and ships the units to the distributor.
type Manufacturer struct {
	orders        *sim.Exchange[Order]
	inventory     *sim.Exchange[Order]
	leadTime      sim.IntSampler
	rng           *sim.SharedRNG
	produced      []ProductionRecord
	inManufacture *Order // order between Get and Put, nil when idle
}

// NewManufacturer creates a manufacturer with its own order exchange that
// ships to the given distributor.
func NewManufacturer(s *sim.Scheduler, distributor *Distributor, leadTime sim.IntSampler, rng *sim.SharedRNG) *Manufacturer {
	return &Manufacturer{
		orders:    sim.NewExchange[Order](s, "manufacturer orders"),
		inventory: distributor.Inventory(),
		leadTime:  leadTime,
		rng:       rng,
	}
}

// OrderExchange returns the exchange customers put orders on.
func (m *Manufacturer) OrderExchange() *sim.Exchange[Order] { return m.orders }

// Production returns a copy of the production log.
func (m *Manufacturer) Production() []ProductionRecord {
	return append([]ProductionRecord(nil), m.produced...)
}

// Run is the manufacturer's process body.
func (m *Manufacturer) Run(p *sim.Process) {
	for {
		o := m.orders.Get(p)
		m.produced = append(m.produced, ProductionRecord{Time: p.Now(), Quantity: o.Quantity})
		m.inManufacture = &o
		p.Delay(m.leadTime.Sample(m.rng))
		m.inManufacture = nil
		m.inventory.Put(o)
		logrus.Debugf("[tick %07d] Manufacturer produced %d units for %s", p.Now(), o.Quantity, o.Customer)
	}
}
