package supplychain

import (
	"github.com/sirupsen/logrus"

	"github.com/supplysim/supplysim/sim"
)

// Customer places orders at random intervals.
type Customer struct {
	name     string
	orders   *sim.Exchange[Order]
	interval sim.IntSampler
	quantity sim.IntSampler
	rng      *sim.SharedRNG
	placed   []OrderRecord
}

// NewCustomer creates a customer that sends its orders to orders.
func NewCustomer(name string, orders *sim.Exchange[Order], interval, quantity sim.IntSampler, rng *sim.SharedRNG) *Customer {
	return &Customer{
		name:     name,
		orders:   orders,
		interval: interval,
		quantity: quantity,
		rng:      rng,
	}
}

// Name returns the customer name.
func (c *Customer) Name() string { return c.name }

// Orders returns a copy of the order log.
func (c *Customer) Orders() []OrderRecord {
	return append([]OrderRecord(nil), c.placed...)
}

// Run is the customer's process body. Each iteration waits one order
// interval, draws a quantity, records the order and puts it on the exchange.
func (c *Customer) Run(p *sim.Process) {
	for {
		p.Delay(c.interval.Sample(c.rng))
		q := int(c.quantity.Sample(c.rng))
		c.placed = append(c.placed, OrderRecord{Customer: c.name, Time: p.Now(), Quantity: q})
		c.orders.Put(Order{Customer: c.name, Number: len(c.placed), Quantity: q})
		logrus.Debugf("[tick %07d] %s placed an order for %d units", p.Now(), c.name, q)
	}
}
