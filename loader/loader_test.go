package loader

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/xuri/excelize/v2"

	"github.com/robinvdvleuten/saft/ast"
	"github.com/robinvdvleuten/saft/audit"
)

func TestLoadFile(t *testing.T) {
	file, err := Load(context.Background(), filepath.Join("testdata", "payments.yaml"))
	assert.NoError(t, err)

	assert.Equal(t, "2024-01-01", file.Header.StartDate.String())
	assert.Equal(t, 2024, file.Header.FiscalYear)
	assert.Equal(t, 1, len(file.MasterFiles.Customer))
	assert.Equal(t, 2, len(file.MasterFiles.TaxTable))
	assert.Equal(t, "0", file.MasterFiles.TaxTable[1].TaxPercentage.String())

	table := file.Payments()
	assert.Equal(t, 2, *table.NumberOfEntries)
	assert.Equal(t, "150.00", table.TotalCredit.StringFixed(2))

	first := table.Payment[0]
	assert.Equal(t, "RG 2024/1", first.PaymentRefNo)
	assert.Equal(t, ast.PaymentTypeRG, first.PaymentType)
	assert.Equal(t, "2024-03-01T10:00:00", first.SystemEntryDate.String())
	assert.True(t, first.SystemEntryDate.HasTime())
	assert.Equal(t, ast.MechanismBankTransfer, first.PaymentMethod[0].PaymentMechanism)
	assert.Equal(t, "100", first.Line[0].CreditAmount.String())
	assert.Zero(t, first.Line[0].DebitAmount)
	assert.Equal(t, "FT 2024A/1", first.Line[0].SourceDocumentID[0].OriginatingON)
	assert.Equal(t, ast.TaxTypeIVA, first.Line[0].Tax.TaxType)

	second := table.Payment[1]
	assert.Equal(t, "M07", second.Line[0].TaxExemptionCode)
	assert.Equal(t, ast.PaymentStatusNormal, second.DocumentStatus.PaymentStatus)
}

func TestLoadedFileValidates(t *testing.T) {
	file, err := Load(context.Background(), filepath.Join("testdata", "payments.yaml"))
	assert.NoError(t, err)

	v := audit.New()
	assert.NoError(t, v.Process(context.Background(), file))
	assert.True(t, v.Valid())
	assert.Equal(t, 0, len(v.Registry().Entries()))
}

func TestLoadBytesJSON(t *testing.T) {
	data := []byte(`{
  "Header": {"StartDate": "2024-01-01", "EndDate": "2024-12-31"},
  "SourceDocuments": {
    "Payments": {
      "NumberOfEntries": 1,
      "Payment": [
        {"PaymentRefNo": "RC 2024/1", "PaymentType": "RC", "Line": [{"LineNumber": 1, "DebitAmount": "12.345"}]}
      ]
    }
  }
}`)

	file, err := New().LoadBytes(context.Background(), "payments.json", data)
	assert.NoError(t, err)

	payment := file.Payments().Payment[0]
	assert.Equal(t, ast.PaymentTypeRC, payment.PaymentType)
	assert.Equal(t, "12.345", payment.Line[0].DebitAmount.String())
	assert.Zero(t, file.MasterFiles)
}

func TestLoadKeepsUnknownCodes(t *testing.T) {
	data := []byte(`
SourceDocuments:
  Payments:
    Payment:
      - PaymentRefNo: RG 2024/1
        PaymentType: XX
        PaymentMethod:
          - PaymentMechanism: BTC
`)

	file, err := New().LoadBytes(context.Background(), "payments.yaml", data)
	assert.NoError(t, err)

	payment := file.Payments().Payment[0]
	assert.Equal(t, ast.PaymentType("XX"), payment.PaymentType)
	assert.False(t, payment.PaymentMethod[0].PaymentMechanism.Valid())
}

func TestLoadStrict(t *testing.T) {
	data := []byte(`
Header:
  StartDate: 2024-01-01
  Software: unknown
`)

	_, err := New().LoadBytes(context.Background(), "payments.yaml", data)
	assert.NoError(t, err)

	_, err = New(WithStrict()).LoadBytes(context.Background(), "payments.yaml", data)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "Software")
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"InvalidDate", "Header:\n  StartDate: 2024-13-01\n", "invalid date"},
		{"InvalidAmount", "SourceDocuments:\n  Payments:\n    TotalCredit: 12,50\n", "failed to decode payments.yaml"},
		{"Malformed", "Header: [\n", "failed to decode payments.yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New().LoadBytes(context.Background(), "payments.yaml", []byte(tt.data))
			assert.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadEmpty(t *testing.T) {
	_, err := New().LoadBytes(context.Background(), "payments.yaml", nil)
	assert.True(t, errors.Is(err, ErrEmptyFile))
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(context.Background(), filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestLoadCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Load(ctx, filepath.Join("testdata", "payments.yaml"))
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "saft.yaml")
	err := os.WriteFile(path, []byte(`
continuousLines: false
deltaLine: 0.01
deltaTotalDoc: "0.05"
taxTable: taxes.xlsx
`), 0644)
	assert.NoError(t, err)

	file, err := LoadConfig(path)
	assert.NoError(t, err)
	assert.Equal(t, "taxes.xlsx", file.TaxTable)
	assert.Equal(t, map[string][]string{
		audit.OptionContinuousLines: {"false"},
		audit.OptionDeltaLine:       {"0.01"},
		audit.OptionDeltaTotalDoc:   {"0.05"},
	}, file.Options())

	cfg, err := file.Config()
	assert.NoError(t, err)
	assert.False(t, cfg.ContinuousLines)
	assert.Equal(t, "0.05", cfg.Tolerance.TotalDoc.String())
	assert.True(t, cfg.Tolerance.Currency.IsZero())
}

func TestLoadConfigNegativeDelta(t *testing.T) {
	path := filepath.Join(t.TempDir(), "saft.yaml")
	assert.NoError(t, os.WriteFile(path, []byte("deltaTable: -1\n"), 0644))

	file, err := LoadConfig(path)
	assert.NoError(t, err)

	_, err = file.Config()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "deltaTable")
}

func TestDefaultConfigRoundTrip(t *testing.T) {
	data, err := DefaultConfig()
	assert.NoError(t, err)

	path := filepath.Join(t.TempDir(), "saft.yaml")
	assert.NoError(t, os.WriteFile(path, data, 0644))

	file, err := LoadConfig(path)
	assert.NoError(t, err)

	cfg, err := file.Config()
	assert.NoError(t, err)
	assert.True(t, cfg.ContinuousLines)
	assert.True(t, cfg.Tolerance.Line.IsZero())
	assert.Equal(t, 5, len(file.Options()))
}

func writeWorkbook(t *testing.T, sheet string, rows [][]any) string {
	t.Helper()

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if sheet != "Sheet1" {
		_, err := f.NewSheet(sheet)
		assert.NoError(t, err)
		assert.NoError(t, f.DeleteSheet("Sheet1"))
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		assert.NoError(t, err)
		assert.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	path := filepath.Join(t.TempDir(), "taxes.xlsx")
	assert.NoError(t, f.SaveAs(path))
	return path
}

func TestLoadTaxTable(t *testing.T) {
	path := writeWorkbook(t, "Taxas", [][]any{
		{"TaxCode", "TaxType", "TaxCountryRegion", "Description", "TaxPercentage", "TaxExpirationDate", "TaxAmount"},
		{"NOR", "IVA", "PT", "Taxa normal", "23"},
		{},
		{"INT", "IVA", "PT-MA", "Taxa intermédia", "12", "2023-12-31"},
		{"IS1", "IS", "PT", "Selo", "", "", "5.00"},
	})

	entries, err := LoadTaxTable(path, "")
	assert.NoError(t, err)
	assert.Equal(t, 3, len(entries))

	assert.Equal(t, "tax table entry IVA/PT/NOR", entries[0].Describe())
	assert.Equal(t, "23", entries[0].TaxPercentage.String())
	assert.Zero(t, entries[0].TaxExpirationDate)

	assert.Equal(t, "PT-MA", entries[1].TaxCountryRegion)
	assert.Equal(t, "2023-12-31", entries[1].TaxExpirationDate.String())

	assert.Equal(t, ast.TaxTypeIS, entries[2].TaxType)
	assert.Zero(t, entries[2].TaxPercentage)
	assert.Equal(t, "5", entries[2].TaxAmount.String())

	named, err := LoadTaxTable(path, "Taxas")
	assert.NoError(t, err)
	assert.Equal(t, 3, len(named))
}

func TestLoadTaxTableErrors(t *testing.T) {
	tests := []struct {
		name string
		rows [][]any
		want string
	}{
		{
			name: "MissingColumn",
			rows: [][]any{{"TaxType", "TaxCode"}},
			want: "lacks the TaxCountryRegion column",
		},
		{
			name: "UnknownType",
			rows: [][]any{{"TaxType", "TaxCountryRegion", "TaxCode"}, {"VAT", "PT", "NOR"}},
			want: `row 2: unknown tax type "VAT"`,
		},
		{
			name: "InvalidPercentage",
			rows: [][]any{{"TaxType", "TaxCountryRegion", "TaxCode", "TaxPercentage"}, {"IVA", "PT", "NOR", "23"}, {"IVA", "PT", "RED", "six"}},
			want: "row 3: invalid TaxPercentage",
		},
		{
			name: "InvalidDate",
			rows: [][]any{{"TaxType", "TaxCountryRegion", "TaxCode", "TaxExpirationDate"}, {"IVA", "PT", "NOR", "31/12/2023"}},
			want: "row 2: invalid TaxExpirationDate",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeWorkbook(t, "Sheet1", tt.rows)

			_, err := LoadTaxTable(path, "")
			assert.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadTaxTableMissingSheet(t *testing.T) {
	path := writeWorkbook(t, "Sheet1", [][]any{{"TaxType", "TaxCountryRegion", "TaxCode"}})

	_, err := LoadTaxTable(path, "Taxas")
	assert.Error(t, err)
}
