package report

import (
	"bytes"
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/supplysim/supplysim/sim/supplychain"
)

// Chart dimensions.
const (
	chartWidth  = 10 * vg.Inch
	chartHeight = 6 * vg.Inch
)

// renderChart plots units produced and units received against time.
// A sequence with no records is left out of the chart.
func renderChart(res *supplychain.Results) (map[string][]byte, error) {
	p := plot.New()
	p.Title.Text = "Supply Chain Simulation"
	p.X.Label.Text = "Time"
	p.Y.Label.Text = "Units"
	p.Add(plotter.NewGrid())

	produced := make(plotter.XYs, len(res.Production))
	for i, r := range res.Production {
		produced[i].X, produced[i].Y = float64(r.Time), float64(r.Quantity)
	}
	received := make(plotter.XYs, len(res.Receipts))
	for i, r := range res.Receipts {
		received[i].X, received[i].Y = float64(r.Time), float64(r.Quantity)
	}

	var series []any
	if len(produced) > 0 {
		series = append(series, "Units Produced", produced)
	}
	if len(received) > 0 {
		series = append(series, "Units Received", received)
	}
	if len(series) > 0 {
		if err := plotutil.AddLinePoints(p, series...); err != nil {
			return nil, fmt.Errorf("adding chart series: %w", err)
		}
	}

	wt, err := p.WriterTo(chartWidth, chartHeight, "png")
	if err != nil {
		return nil, fmt.Errorf("rendering chart: %w", err)
	}
	var buf bytes.Buffer
	if _, err := wt.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("encoding chart: %w", err)
	}
	return map[string][]byte{ChartFile: buf.Bytes()}, nil
}
