package loader

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/robinvdvleuten/saft/ast"
	"github.com/robinvdvleuten/saft/audit"
)

// Tax table workbook columns. The first row of the sheet names the columns; their
// order is free and names are matched case-insensitively.
const (
	ColumnTaxType           = "TaxType"
	ColumnTaxCountryRegion  = "TaxCountryRegion"
	ColumnTaxCode           = "TaxCode"
	ColumnDescription       = "Description"
	ColumnTaxExpirationDate = "TaxExpirationDate"
	ColumnTaxPercentage     = "TaxPercentage"
	ColumnTaxAmount         = "TaxAmount"
)

var requiredColumns = []string{ColumnTaxType, ColumnTaxCountryRegion, ColumnTaxCode}

// LoadTaxTable reads tax table rows from an XLSX workbook. An empty sheet name
// selects the first sheet. Rows without any value are skipped.
func LoadTaxTable(filename, sheet string) ([]*ast.TaxTableEntry, error) {
	f, err := excelize.OpenFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", filename, err)
	}
	defer func() { _ = f.Close() }()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("%s: workbook has no sheets", filename)
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to read sheet %q: %w", filename, sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s: sheet %q has no header row", filename, sheet)
	}

	columns := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, name := range requiredColumns {
		if _, ok := columns[strings.ToLower(name)]; !ok {
			return nil, fmt.Errorf("%s: sheet %q lacks the %s column", filename, sheet, name)
		}
	}

	entries := make([]*ast.TaxTableEntry, 0, len(rows)-1)
	for i, row := range rows[1:] {
		r := taxRow{columns: columns, cells: row}
		if r.blank() {
			continue
		}

		entry, err := r.entry()
		if err != nil {
			// Spreadsheet rows are 1-based and the header is row 1.
			return nil, fmt.Errorf("%s: sheet %q row %d: %w", filename, sheet, i+2, err)
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

type taxRow struct {
	columns map[string]int
	cells   []string
}

func (r taxRow) get(column string) string {
	i, ok := r.columns[strings.ToLower(column)]
	if !ok || i >= len(r.cells) {
		return ""
	}
	return strings.TrimSpace(r.cells[i])
}

func (r taxRow) blank() bool {
	for _, c := range r.cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func (r taxRow) entry() (*ast.TaxTableEntry, error) {
	entry := &ast.TaxTableEntry{
		TaxType:          ast.TaxType(r.get(ColumnTaxType)),
		TaxCountryRegion: r.get(ColumnTaxCountryRegion),
		TaxCode:          r.get(ColumnTaxCode),
		Description:      r.get(ColumnDescription),
	}

	if !entry.TaxType.Valid() {
		return nil, fmt.Errorf("unknown tax type %q", entry.TaxType)
	}
	if entry.TaxCountryRegion == "" || entry.TaxCode == "" {
		return nil, fmt.Errorf("tax country region and tax code are required")
	}

	if v := r.get(ColumnTaxExpirationDate); v != "" {
		date, err := ast.NewDate(v)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", ColumnTaxExpirationDate, err)
		}
		entry.TaxExpirationDate = date
	}

	if v := r.get(ColumnTaxPercentage); v != "" {
		d, err := audit.ParseAmount(v)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", ColumnTaxPercentage, err)
		}
		entry.TaxPercentage = &d
	}
	if v := r.get(ColumnTaxAmount); v != "" {
		d, err := audit.ParseAmount(v)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", ColumnTaxAmount, err)
		}
		entry.TaxAmount = &d
	}

	return entry, nil
}
