// Payments Audit File Generator
//
// This tool generates a large, valid SAF-T payments audit file for performance
// testing and profiling of the validator.
//
// Usage:
//
//	go run main.go > payments.yaml
//	go run main.go 200000 > payments.yaml  # Specify the number of payments
package main

import (
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/robinvdvleuten/saft/ast"
	"github.com/robinvdvleuten/saft/audit"
)

const (
	defaultPayments = 10000
	customers       = 250
	layout          = "2006-01-02T15:04:05"
)

type rate struct {
	code       string
	percentage decimal.Decimal
}

var (
	rates = []rate{
		{"NOR", decimal.NewFromInt(23)},
		{"INT", decimal.NewFromInt(13)},
		{"RED", decimal.NewFromInt(6)},
		{"ISE", decimal.Zero},
	}

	mechanisms = []ast.PaymentMechanism{
		ast.MechanismBankTransfer, ast.MechanismMultibanco, ast.MechanismCash,
		ast.MechanismCreditCard, ast.MechanismCheque,
	}

	hundred = decimal.NewFromInt(100)
)

func main() {
	count := defaultPayments
	if len(os.Args) > 1 {
		if n, err := strconv.Atoi(os.Args[1]); err == nil && n > 0 {
			count = n
		}
	}

	file := generate(count)

	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	if err := enc.Encode(file); err != nil {
		fmt.Fprintf(os.Stderr, "failed to encode audit file: %v\n", err)
		os.Exit(1)
	}
	_ = enc.Close()

	fmt.Fprintf(os.Stderr, "\nGenerated %d payments\n", count)
}

func generate(count int) *ast.AuditFile {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	header := ast.NewHeader(ast.MustDate("2024-01-01"), ast.MustDate("2024-12-31"))
	header.CompanyName = "Performance Test Lda"

	master := &ast.MasterFiles{}
	for i := 1; i <= customers; i++ {
		master.Customer = append(master.Customer,
			ast.NewCustomer(customerID(i), fmt.Sprintf("5%08d", i), fmt.Sprintf("Customer %d", i)))
	}
	for _, r := range rates {
		master.TaxTable = append(master.TaxTable,
			ast.NewTaxTableEntry(ast.TaxTypeIVA, "PT", r.code, r.percentage.String()))
	}

	step := 365 * 24 * time.Hour / time.Duration(count)
	credit := decimal.Zero
	payments := make([]*ast.Payment, 0, count)

	for i := 0; i < count; i++ {
		entry := start.Add(time.Duration(i) * step)
		p, gross := generatePayment(i+1, entry)
		credit = credit.Add(gross)
		payments = append(payments, p)
	}

	table := ast.NewPayments(payments,
		ast.WithNumberOfEntries(count),
		ast.WithTotalDebit("0.00"),
		ast.WithTotalCredit(credit.StringFixed(2)),
	)

	return ast.NewAuditFile(header, master, table)
}

// generatePayment returns a payment and the sum of its credit lines.
func generatePayment(n int, entry time.Time) (*ast.Payment, decimal.Decimal) {
	day := ast.MustDate(entry.Format("2006-01-02"))
	stamp := ast.MustDate(entry.Format(layout))

	net, tax := decimal.Zero, decimal.Zero
	lines := make([]*ast.Line, 0, 4)

	count := rand.Intn(4) + 1
	for number := 1; number <= count; number++ {
		amount := randAmount(10, 2000)
		r := rates[rand.Intn(len(rates))]

		invoiceDay := entry.AddDate(0, 0, -rand.Intn(60))
		if invoiceDay.Year() < 2024 {
			invoiceDay = entry
		}

		opts := []ast.LineOption{
			ast.WithCredit(amount.StringFixed(2)),
			ast.WithSourceDocuments(ast.NewSourceDocument(
				fmt.Sprintf("FT 2024A/%d", rand.Intn(100000)+1),
				ast.MustDate(invoiceDay.Format("2006-01-02")),
			)),
			ast.WithTax(ast.NewVAT("PT", r.code, r.percentage.String())),
		}
		if r.percentage.IsZero() {
			opts = append(opts, ast.WithExemption("M07", "Isento artigo 9.º do CIVA"))
		}

		lines = append(lines, ast.NewLine(number, opts...))
		net = net.Add(amount)
		tax = tax.Add(amount.Mul(r.percentage).Div(hundred))
	}

	net, tax = audit.RoundCurrency(net), audit.RoundCurrency(tax)
	gross := net.Add(tax)
	mechanism := mechanisms[rand.Intn(len(mechanisms))]

	p := ast.NewPayment(fmt.Sprintf("RG 2024/%d", n), day,
		ast.WithPaymentType(ast.PaymentTypeRG),
		ast.WithATCUD(fmt.Sprintf("JFA3M2-%d", n)),
		ast.WithSourceID("generator"),
		ast.WithSystemEntryDate(stamp),
		ast.WithCustomer(customerID(rand.Intn(customers)+1)),
		ast.WithStatus(ast.NewStatus(ast.PaymentStatusNormal, stamp,
			ast.WithSource(ast.SourcePaymentProduced, "generator"))),
		ast.WithLines(lines...),
		ast.WithTotals(ast.NewTotals(net.StringFixed(2), tax.StringFixed(2), gross.StringFixed(2))),
		ast.WithPaymentMethods(ast.NewPaymentMethod(mechanism, gross.StringFixed(2), day)),
	)

	return p, net
}

// Helper functions

func customerID(n int) string {
	return fmt.Sprintf("C%04d", n)
}

func randAmount(min, max float64) decimal.Decimal {
	return decimal.NewFromFloat(min + rand.Float64()*(max-min)).Round(2)
}
