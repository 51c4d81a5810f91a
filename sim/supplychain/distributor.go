package supplychain

import (
	"github.com/sirupsen/logrus"

	"github.com/supplysim/supplysim/sim"
)

// Distributor receives shipments from the manufacturer. Each shipment is
// recorded after its transport delay, so the logged time is when the units
// became available rather than when they left the manufacturer.
type Distributor struct {
	inventory *sim.Exchange[Order]
	transport sim.IntSampler
	rng       *sim.SharedRNG
	received  []ReceiptRecord
	inTransit *Order // shipment between Get and its receipt, nil when idle
}

// NewDistributor creates a distributor with its own inventory exchange.
func NewDistributor(s *sim.Scheduler, transport sim.IntSampler, rng *sim.SharedRNG) *Distributor {
	return &Distributor{
		inventory: sim.NewExchange[Order](s, "distributor inventory"),
		transport: transport,
		rng:       rng,
	}
}

// Inventory returns the exchange the manufacturer ships to.
func (d *Distributor) Inventory() *sim.Exchange[Order] { return d.inventory }

// Receipts returns a copy of the receipt log.
func (d *Distributor) Receipts() []ReceiptRecord {
	return append([]ReceiptRecord(nil), d.received...)
}

// Run is the distributor's process body.
func (d *Distributor) Run(p *sim.Process) {
	for {
		o := d.inventory.Get(p)
		d.inTransit = &o
		p.Delay(d.transport.Sample(d.rng))
		d.inTransit = nil
		d.received = append(d.received, ReceiptRecord{Time: p.Now(), Quantity: o.Quantity})
		logrus.Debugf("[tick %07d] Distributor received %d units", p.Now(), o.Quantity)
	}
}
