package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/supplysim/supplysim/sim/supplychain"
)

// Workbook sheet names, one per record sequence.
const (
	CustomersSheet    = "Customers"
	ManufacturerSheet = "Manufacturer"
	DistributorSheet  = "Distributor"
)

type sheet struct {
	name   string
	header []any
	rows   [][]any
}

func workbookSheets(res *supplychain.Results) []sheet {
	customers := sheet{name: CustomersSheet, header: []any{"Customer", "Time", "Order Quantity"}}
	for _, o := range res.Orders {
		customers.rows = append(customers.rows, []any{o.Customer, o.Time, o.Quantity})
	}
	manufacturer := sheet{name: ManufacturerSheet, header: []any{"Time", "Units Produced"}}
	for _, p := range res.Production {
		manufacturer.rows = append(manufacturer.rows, []any{p.Time, p.Quantity})
	}
	distributor := sheet{name: DistributorSheet, header: []any{"Time", "Units Received"}}
	for _, r := range res.Receipts {
		distributor.rows = append(distributor.rows, []any{r.Time, r.Quantity})
	}
	return []sheet{customers, manufacturer, distributor}
}

// renderWorkbook produces a single workbook with one sheet per record sequence.
func renderWorkbook(res *supplychain.Results) (map[string][]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	for i, sh := range workbookSheets(res) {
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), sh.name); err != nil {
				return nil, fmt.Errorf("naming sheet %s: %w", sh.name, err)
			}
		} else if _, err := f.NewSheet(sh.name); err != nil {
			return nil, fmt.Errorf("adding sheet %s: %w", sh.name, err)
		}
		for r, row := range append([][]any{sh.header}, sh.rows...) {
			cell, err := excelize.CoordinatesToCellName(1, r+1)
			if err != nil {
				return nil, err
			}
			if err := f.SetSheetRow(sh.name, cell, &row); err != nil {
				return nil, fmt.Errorf("writing %s row %d: %w", sh.name, r+1, err)
			}
		}
	}
	f.SetActiveSheet(0)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("encoding workbook: %w", err)
	}
	return map[string][]byte{WorkbookFile: buf.Bytes()}, nil
}
