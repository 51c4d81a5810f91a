// Package report persists and summarizes the records of a supply chain run.
package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/supplysim/supplysim/sim/supplychain"
)

const (
	FormatJSON = "json"
	FormatCSV  = "csv"
	FormatYAML = "yaml"
	FormatXLSX = "xlsx"
	FormatPNG  = "png"
)

// ValidFormats lists the formats Write accepts.
var ValidFormats = []string{FormatJSON, FormatCSV, FormatYAML, FormatXLSX, FormatPNG}

// File names written into the output directory.
const (
	ResultsFile     = "results.json"
	CustomersFile   = "customers.csv"
	ManufacturerCSV = "manufacturer.csv"
	DistributorCSV  = "distributor.csv"
	SummaryFile     = "summary.yaml"
	WorkbookFile    = "supply_chain_simulation_data.xlsx"
	ChartFile       = "supply_chain_simulation_graph.png"
)

// IsValidFormat reports whether f is a known report format.
func IsValidFormat(f string) bool {
	for _, v := range ValidFormats {
		if v == f {
			return true
		}
	}
	return false
}

// Metadata identifies one written report. RunID is unique per Write call.
type Metadata struct {
	RunID       string `json:"run_id" yaml:"run_id"`
	CreatedAt   string `json:"created_at" yaml:"created_at"`
	Seed        int64  `json:"seed" yaml:"seed"`
	Horizon     int64  `json:"horizon" yaml:"horizon"`
	CollectedAt int64  `json:"collected_at" yaml:"collected_at"`
	FinalTime   int64  `json:"final_time" yaml:"final_time"`
	Steps       int64  `json:"steps" yaml:"steps"`
	Draws       int64  `json:"draws" yaml:"draws"`
}

// ResultsDocument is the JSON rendering of a run.
type ResultsDocument struct {
	Metadata   Metadata                       `json:"metadata"`
	Orders     []supplychain.OrderRecord      `json:"orders"`
	Production []supplychain.ProductionRecord `json:"production"`
	Receipts   []supplychain.ReceiptRecord    `json:"receipts"`
	Pipeline   PipelineDocument               `json:"pipeline"`
}

// PipelineDocument mirrors supplychain.Pipeline with stable field names.
type PipelineDocument struct {
	AwaitingManufacture []int `json:"awaiting_manufacture"`
	InManufacture       []int `json:"in_manufacture"`
	AwaitingTransport   []int `json:"awaiting_transport"`
	InTransport         []int `json:"in_transport"`
}

// SummaryDocument is the YAML rendering of a Summary.
type SummaryDocument struct {
	Metadata          Metadata          `yaml:"metadata"`
	Orders            int               `yaml:"orders"`
	Produced          int               `yaml:"produced"`
	Received          int               `yaml:"received"`
	UnitsOrdered      int64             `yaml:"units_ordered"`
	UnitsProduced     int64             `yaml:"units_produced"`
	UnitsReceived     int64             `yaml:"units_received"`
	UnitsInTransit    int64             `yaml:"units_in_transit"`
	UnitsInPipeline   int               `yaml:"units_in_pipeline"`
	MeanOrderSize     string            `yaml:"mean_order_size"`
	MeanFulfilmentLag string            `yaml:"mean_fulfilment_lag"`
	FillRate          string            `yaml:"fill_rate"`
	Customers         []CustomerSummary `yaml:"customers"`
}

// Write persists res into dir in each of the requested formats and returns
// the paths written. Every file is written to a temporary name and renamed
// into place, so a reader never sees a partial report.
func Write(dir string, res *supplychain.Results, formats []string) ([]string, error) {
	if res == nil {
		return nil, fmt.Errorf("no results to write")
	}
	for _, f := range formats {
		if !IsValidFormat(f) {
			return nil, fmt.Errorf("unknown report format %q; valid: %v", f, ValidFormats)
		}
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	meta := newMetadata(res)
	var written []string
	for _, f := range formats {
		var files map[string][]byte
		var err error
		switch f {
		case FormatJSON:
			files, err = renderJSON(meta, res)
		case FormatCSV:
			files, err = renderCSV(res)
		case FormatYAML:
			files, err = renderYAML(meta, Summarize(res))
		case FormatXLSX:
			files, err = renderWorkbook(res)
		case FormatPNG:
			files, err = renderChart(res)
		}
		if err != nil {
			return written, fmt.Errorf("rendering %s report: %w", f, err)
		}
		for _, name := range sortedNames(files) {
			path := filepath.Join(dir, name)
			if err := writeAtomic(path, files[name]); err != nil {
				return written, err
			}
			written = append(written, path)
		}
	}
	logrus.Debugf("report %s: wrote %d files to %s", meta.RunID, len(written), dir)
	return written, nil
}

func newMetadata(res *supplychain.Results) Metadata {
	return Metadata{
		RunID:       uuid.NewString(),
		CreatedAt:   time.Now().UTC().Format(time.RFC3339),
		Seed:        res.Seed,
		Horizon:     res.Horizon,
		CollectedAt: res.CollectedAt,
		FinalTime:   res.FinalTime,
		Steps:       res.Steps,
		Draws:       res.Draws,
	}
}

func renderJSON(meta Metadata, res *supplychain.Results) (map[string][]byte, error) {
	doc := ResultsDocument{
		Metadata:   meta,
		Orders:     nonNil(res.Orders),
		Production: nonNil(res.Production),
		Receipts:   nonNil(res.Receipts),
		Pipeline: PipelineDocument{
			AwaitingManufacture: nonNil(res.Pipeline.AwaitingManufacture),
			InManufacture:       nonNil(res.Pipeline.InManufacture),
			AwaitingTransport:   nonNil(res.Pipeline.AwaitingTransport),
			InTransport:         nonNil(res.Pipeline.InTransport),
		},
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling results: %w", err)
	}
	return map[string][]byte{ResultsFile: append(data, '\n')}, nil
}

// renderCSV produces one sheet per record sequence.
func renderCSV(res *supplychain.Results) (map[string][]byte, error) {
	customers := [][]string{{"customer", "time", "quantity"}}
	for _, o := range res.Orders {
		customers = append(customers, []string{o.Customer, strconv.FormatInt(o.Time, 10), strconv.Itoa(o.Quantity)})
	}
	manufacturer := [][]string{{"time", "quantity"}}
	for _, p := range res.Production {
		manufacturer = append(manufacturer, []string{strconv.FormatInt(p.Time, 10), strconv.Itoa(p.Quantity)})
	}
	distributor := [][]string{{"time", "quantity"}}
	for _, r := range res.Receipts {
		distributor = append(distributor, []string{strconv.FormatInt(r.Time, 10), strconv.Itoa(r.Quantity)})
	}

	out := make(map[string][]byte, 3)
	for name, rows := range map[string][][]string{
		CustomersFile:   customers,
		ManufacturerCSV: manufacturer,
		DistributorCSV:  distributor,
	} {
		var buf bytes.Buffer
		w := csv.NewWriter(&buf)
		if err := w.WriteAll(rows); err != nil {
			return nil, fmt.Errorf("writing %s: %w", name, err)
		}
		out[name] = buf.Bytes()
	}
	return out, nil
}

func renderYAML(meta Metadata, s *Summary) (map[string][]byte, error) {
	doc := SummaryDocument{
		Metadata:          meta,
		Orders:            s.Orders,
		Produced:          s.Produced,
		Received:          s.Received,
		UnitsOrdered:      s.UnitsOrdered,
		UnitsProduced:     s.UnitsMade,
		UnitsReceived:     s.UnitsArrived,
		UnitsInTransit:    s.InTransit,
		UnitsInPipeline:   s.InPipeline,
		MeanOrderSize:     s.MeanOrderSize.StringFixed(2),
		MeanFulfilmentLag: s.MeanFulfilmentLag.StringFixed(2),
		FillRate:          s.FillRate.StringFixed(4),
		Customers:         s.Customers,
	}
	data, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshaling summary: %w", err)
	}
	return map[string][]byte{SummaryFile: data}, nil
}

func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file for %s: %w", path, err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("setting permissions on %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("renaming into %s: %w", path, err)
	}
	return nil
}

func sortedNames(files map[string][]byte) []string {
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
