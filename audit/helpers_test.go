package audit

import (
	"context"
	"fmt"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/shopspring/decimal"

	"github.com/robinvdvleuten/saft/ast"
)

// newLine creates a credit line settling one invoice, taxed at 23% IVA.
func newLine(number int, credit string) *ast.Line {
	return ast.NewLine(number,
		ast.WithCredit(credit),
		ast.WithSourceDocuments(ast.NewSourceDocument(fmt.Sprintf("FT 2024A/%d", number), ast.MustDate("2024-01-10"))),
		ast.WithTax(ast.NewVAT("PT", "NOR", "23")),
	)
}

// newPayment creates a valid payment on the given day with one line of 100.00
// at 23% IVA, settled by bank transfer.
func newPayment(ref, day string, opts ...ast.PaymentOption) *ast.Payment {
	date := ast.MustDate(day)
	entry := ast.MustDate(day + "T10:00:00")

	defaults := []ast.PaymentOption{
		ast.WithPaymentType(ast.PaymentTypeRG),
		ast.WithSystemEntryDate(entry),
		ast.WithCustomer("C001"),
		ast.WithSourceID("admin"),
		ast.WithStatus(ast.NewStatus(ast.PaymentStatusNormal, entry, ast.WithSource(ast.SourcePaymentProduced, "admin"))),
		ast.WithLines(newLine(1, "100.00")),
		ast.WithTotals(ast.NewTotals("100.00", "23.00", "123.00")),
		ast.WithPaymentMethods(ast.NewPaymentMethod(ast.MechanismBankTransfer, "123.00", date)),
	}

	return ast.NewPayment(ref, date, append(defaults, opts...)...)
}

func newMasterFiles() *ast.MasterFiles {
	return &ast.MasterFiles{
		Customer: []*ast.Customer{
			ast.NewCustomer("C001", "500000000", "Acme Lda"),
			ast.NewCustomer("C002", "500000001", "Globex SA"),
		},
		TaxTable: []*ast.TaxTableEntry{
			ast.NewTaxTableEntry(ast.TaxTypeIVA, "PT", "NOR", "23"),
			ast.NewTaxTableEntry(ast.TaxTypeIVA, "PT", "RED", "6"),
			ast.NewTaxTableEntry(ast.TaxTypeIVA, "PT", "ISE", "0"),
			ast.NewTaxTableEntry(ast.TaxTypeIVA, "PT", "OLD", "21").WithExpiration(ast.MustDate("2024-01-31")),
		},
	}
}

// newFile wraps payments into an audit file for 2024 whose table declarations
// match the payments.
func newFile(payments ...*ast.Payment) *ast.AuditFile {
	credit, debit := decimal.Zero, decimal.Zero
	for _, p := range payments {
		if p.IsAnnulled() {
			continue
		}
		for _, l := range p.Line {
			credit = credit.Add(valueOf(l.CreditAmount))
			debit = debit.Add(valueOf(l.DebitAmount))
		}
	}

	table := ast.NewPayments(payments,
		ast.WithNumberOfEntries(len(payments)),
		ast.WithTotalCredit(credit.StringFixed(2)),
		ast.WithTotalDebit(debit.StringFixed(2)),
	)

	header := ast.NewHeader(ast.MustDate("2024-01-01"), ast.MustDate("2024-12-31"))
	return ast.NewAuditFile(header, newMasterFiles(), table)
}

// process validates file and checks that the returned error agrees with the
// registry.
func process(t *testing.T, file *ast.AuditFile, opts ...Option) *Validator {
	t.Helper()

	v := New(opts...)
	err := v.Process(context.Background(), file)
	if v.Registry().HasErrors() {
		assert.Error(t, err)
	} else {
		assert.NoError(t, err)
	}

	return v
}

// withOptions builds a config from option values.
func withOptions(t *testing.T, options map[string][]string) Option {
	t.Helper()

	cfg, err := ConfigFromOptions(options)
	assert.NoError(t, err)
	return WithConfig(cfg)
}

func codes(entries []*Entry) []Code {
	result := make([]Code, 0, len(entries))
	for _, e := range entries {
		result = append(result, e.Code)
	}
	return result
}

func hasCode(entries []*Entry, code Code) bool {
	for _, e := range entries {
		if e.Code == code {
			return true
		}
	}
	return false
}
