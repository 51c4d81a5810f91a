package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/shopspring/decimal"

	"github.com/supplysim/supplysim/sim/supplychain"
)

// CustomerSummary aggregates one customer's orders.
type CustomerSummary struct {
	Name   string
	Orders int
	Units  int64
}

// Summary aggregates the three record sequences of a run.
type Summary struct {
	CollectedAt int64
	FinalTime   int64
	Steps       int64

	Orders       int
	Produced     int
	Received     int
	UnitsOrdered int64
	UnitsMade    int64
	UnitsArrived int64
	InTransit    int64 // UnitsMade - UnitsArrived
	InPipeline   int   // every unit ordered but not yet received

	// MeanOrderSize is UnitsOrdered / Orders, rounded to two places.
	MeanOrderSize decimal.Decimal
	// MeanFulfilmentLag is the mean number of ticks between a production
	// record and the matching receipt record, rounded to two places. Both
	// exchanges are FIFO, so the i-th receipt belongs to the i-th production.
	MeanFulfilmentLag decimal.Decimal
	// FillRate is UnitsArrived / UnitsOrdered, rounded to four places.
	FillRate decimal.Decimal

	Customers []CustomerSummary // in order of first appearance in Results.Orders
}

// Summarize computes aggregate statistics from simulation results.
// Safe for nil or empty results (returns zero-value fields).
func Summarize(res *supplychain.Results) *Summary {
	s := &Summary{
		MeanOrderSize:     decimal.Zero,
		MeanFulfilmentLag: decimal.Zero,
		FillRate:          decimal.Zero,
		Customers:         make([]CustomerSummary, 0),
	}
	if res == nil {
		return s
	}
	s.CollectedAt = res.CollectedAt
	s.FinalTime = res.FinalTime
	s.Steps = res.Steps

	byName := make(map[string]int) // name -> index in s.Customers
	for _, o := range res.Orders {
		s.UnitsOrdered += int64(o.Quantity)
		i, ok := byName[o.Customer]
		if !ok {
			i = len(s.Customers)
			byName[o.Customer] = i
			s.Customers = append(s.Customers, CustomerSummary{Name: o.Customer})
		}
		s.Customers[i].Orders++
		s.Customers[i].Units += int64(o.Quantity)
	}
	for _, p := range res.Production {
		s.UnitsMade += int64(p.Quantity)
	}
	for _, r := range res.Receipts {
		s.UnitsArrived += int64(r.Quantity)
	}
	s.Orders = len(res.Orders)
	s.Produced = len(res.Production)
	s.Received = len(res.Receipts)
	s.InTransit = s.UnitsMade - s.UnitsArrived
	s.InPipeline = res.Pipeline.Units()

	if s.Orders > 0 {
		s.MeanOrderSize = decimal.NewFromInt(s.UnitsOrdered).
			Div(decimal.NewFromInt(int64(s.Orders))).Round(2)
	}
	if s.UnitsOrdered > 0 {
		s.FillRate = decimal.NewFromInt(s.UnitsArrived).
			Div(decimal.NewFromInt(s.UnitsOrdered)).Round(4)
	}
	if pairs := min(s.Received, s.Produced); pairs > 0 {
		lag := decimal.Zero
		for i := 0; i < pairs; i++ {
			lag = lag.Add(decimal.NewFromInt(res.Receipts[i].Time - res.Production[i].Time))
		}
		s.MeanFulfilmentLag = lag.Div(decimal.NewFromInt(int64(pairs))).Round(2)
	}

	return s
}

// PrintSummary writes a human-readable summary table to w.
func PrintSummary(w io.Writer, s *Summary) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	lines := []string{
		"=== Supply Chain Simulation ===",
		fmt.Sprintf("Collected at\t: tick %d (run ended at tick %d, %d steps)", s.CollectedAt, s.FinalTime, s.Steps),
		fmt.Sprintf("Orders placed\t: %d (%d units)", s.Orders, s.UnitsOrdered),
		fmt.Sprintf("Units produced\t: %d (%d units)", s.Produced, s.UnitsMade),
		fmt.Sprintf("Units received\t: %d (%d units)", s.Received, s.UnitsArrived),
		fmt.Sprintf("Units in transit\t: %d", s.InTransit),
		fmt.Sprintf("Units in pipeline\t: %d", s.InPipeline),
		fmt.Sprintf("Mean order size\t: %s units", s.MeanOrderSize.StringFixed(2)),
		fmt.Sprintf("Mean fulfilment lag\t: %s ticks", s.MeanFulfilmentLag.StringFixed(2)),
		fmt.Sprintf("Fill rate\t: %s", s.FillRate.StringFixed(4)),
	}
	for _, cs := range s.Customers {
		lines = append(lines, fmt.Sprintf("  %s\t: %d orders, %d units", cs.Name, cs.Orders, cs.Units))
	}
	for _, l := range lines {
		if _, err := fmt.Fprintln(tw, l); err != nil {
			return err
		}
	}
	return tw.Flush()
}
