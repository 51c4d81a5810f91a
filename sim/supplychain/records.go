// Package supplychain models a three-tier supply chain on top of the sim
// substrate: customers place orders with a manufacturer, the manufacturer
// ships finished units to a distributor.
package supplychain

// Order is the item passed through both exchanges: a customer order on its
// way to the manufacturer, then the finished shipment on its way to the
// distributor.
type Order struct {
	Customer string // name of the customer that placed the order
	Number   int    // per-customer order sequence number, starting at 1
	Quantity int    // units ordered (always positive)
}

// OrderRecord is one entry of a customer's order log.
type OrderRecord struct {
	Customer string `json:"customer" yaml:"customer"`
	Time     int64  `json:"time" yaml:"time"`
	Quantity int    `json:"quantity" yaml:"quantity"`
}

// ProductionRecord is one entry of the manufacturer's production log,
// stamped when the order is taken off the order exchange.
type ProductionRecord struct {
	Time     int64 `json:"time" yaml:"time"`
	Quantity int   `json:"quantity" yaml:"quantity"`
}

// ReceiptRecord is one entry of the distributor's receipt log, stamped after
// the transport delay.
type ReceiptRecord struct {
	Time     int64 `json:"time" yaml:"time"`
	Quantity int   `json:"quantity" yaml:"quantity"`
}
