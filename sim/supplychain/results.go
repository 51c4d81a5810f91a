package supplychain

import "github.com/supplysim/supplysim/sim/trace"

// Pipeline lists the quantities of orders that have been placed but not yet
// received, by stage.
type Pipeline struct {
	AwaitingManufacture []int // queued on the manufacturer's order exchange
	InManufacture       []int // taken by the manufacturer, lead time running
	AwaitingTransport   []int // queued on the distributor's inventory exchange
	InTransport         []int // taken by the distributor, transport running
}

// Units returns the total number of units still in the pipeline.
func (p Pipeline) Units() int {
	total := 0
	for _, stage := range [][]int{p.AwaitingManufacture, p.InManufacture, p.AwaitingTransport, p.InTransport} {
		for _, q := range stage {
			total += q
		}
	}
	return total
}

// Results are the records handed to reporting collaborators once a run ends.
// Orders are grouped by customer in customer order, each customer's entries
// in time order.
type Results struct {
	Seed        int64
	Horizon     int64
	CollectedAt int64 // virtual time at which the records were taken
	FinalTime   int64 // clock when the run stopped
	Steps       int64 // events executed over the whole run
	Draws       int64 // random values drawn over the whole run

	Orders     []OrderRecord
	Production []ProductionRecord
	Receipts   []ReceiptRecord
	Pipeline   Pipeline // state at CollectedAt

	Trace *trace.SimulationTrace // nil unless tracing was enabled
}
