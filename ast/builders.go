// Constructor functions for programmatically building audit file trees. They are
// used by importers that produce trees from other sources and extensively by tests.
//
// The builders use functional options for the larger entities, following Go idioms
// for configurable constructors. Amounts are given as decimal strings and panic when
// they cannot be parsed, so only pass literals or already validated values.
package ast

import (
	"github.com/shopspring/decimal"
)

// NewDate parses a date (YYYY-MM-DD) or timestamp (YYYY-MM-DDTHH:MM:SS).
//
// Example:
//
//	date, err := ast.NewDate("2024-01-15")
//	if err != nil {
//	    log.Fatal(err)
//	}
func NewDate(s string) (*Date, error) {
	d := &Date{}
	if err := d.UnmarshalText([]byte(s)); err != nil {
		return nil, err
	}
	return d, nil
}

// MustDate is like NewDate but panics on error.
func MustDate(s string) *Date {
	d, err := NewDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// NewAmount parses a decimal string into an amount pointer.
//
// Example:
//
//	amount := ast.NewAmount("45.60")
func NewAmount(value string) *decimal.Decimal {
	d := decimal.RequireFromString(value)
	return &d
}

// NewAuditFile creates an audit file with the given header, master files and payments table.
func NewAuditFile(header *Header, master *MasterFiles, payments *Payments) *AuditFile {
	return &AuditFile{
		Header:          header,
		MasterFiles:     master,
		SourceDocuments: &SourceDocuments{Payments: payments},
	}
}

// NewHeader creates a header covering the reporting period [start, end].
func NewHeader(start, end *Date) *Header {
	return &Header{
		AuditFileVersion: "1.04_01",
		CurrencyCode:     "EUR",
		StartDate:        start,
		EndDate:          end,
		FiscalYear:       start.Year(),
	}
}

// NewCustomer creates a customer master record.
func NewCustomer(id, taxID, name string) *Customer {
	return &Customer{
		CustomerID:    id,
		AccountID:     "Desconhecido",
		CustomerTaxID: taxID,
		CompanyName:   name,
		Country:       "PT",
	}
}

// NewTaxTableEntry creates a percentage based tax table row that never expires.
// Use WithExpiration to set an expiration date.
func NewTaxTableEntry(taxType TaxType, region, code, percentage string) *TaxTableEntry {
	return &TaxTableEntry{
		TaxType:          taxType,
		TaxCountryRegion: region,
		TaxCode:          code,
		Description:      string(taxType) + " " + code,
		TaxPercentage:    NewAmount(percentage),
	}
}

// WithExpiration returns the entry with its expiration date set.
func (e *TaxTableEntry) WithExpiration(date *Date) *TaxTableEntry {
	e.TaxExpirationDate = date
	return e
}

// PaymentsOption is a functional option for configuring a Payments table.
type PaymentsOption func(*Payments)

// NewPayments creates a payments table holding the given payments.
// Declared entries and totals are left unset unless given as options.
//
// Example:
//
//	table := ast.NewPayments([]*ast.Payment{p1, p2},
//	    ast.WithNumberOfEntries(2),
//	    ast.WithTotalCredit("246.00"),
//	    ast.WithTotalDebit("0.00"),
//	)
func NewPayments(payments []*Payment, opts ...PaymentsOption) *Payments {
	p := &Payments{Payment: payments}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// WithNumberOfEntries sets the declared number of payments.
func WithNumberOfEntries(n int) PaymentsOption {
	return func(p *Payments) {
		p.NumberOfEntries = &n
	}
}

// WithTotalDebit sets the declared debit total.
func WithTotalDebit(value string) PaymentsOption {
	return func(p *Payments) {
		p.TotalDebit = NewAmount(value)
	}
}

// WithTotalCredit sets the declared credit total.
func WithTotalCredit(value string) PaymentsOption {
	return func(p *Payments) {
		p.TotalCredit = NewAmount(value)
	}
}

// PaymentOption is a functional option for configuring a Payment.
type PaymentOption func(*Payment)

// NewPayment creates a payment with the given reference and transaction date.
// Additional fields can be set using functional options.
//
// Example:
//
//	payment := ast.NewPayment("RG 2024/1", date,
//	    ast.WithPaymentType(ast.PaymentTypeRG),
//	    ast.WithCustomer("C001"),
//	    ast.WithLines(ast.NewLine(1, ast.WithCredit("100.00"))),
//	)
func NewPayment(ref string, date *Date, opts ...PaymentOption) *Payment {
	p := &Payment{
		PaymentRefNo:    ref,
		TransactionDate: date,
	}
	if date != nil {
		p.Period = int(date.Month())
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// WithPaymentType sets the payment type.
func WithPaymentType(t PaymentType) PaymentOption {
	return func(p *Payment) {
		p.PaymentType = t
	}
}

// WithSystemEntryDate sets the system entry timestamp.
func WithSystemEntryDate(date *Date) PaymentOption {
	return func(p *Payment) {
		p.SystemEntryDate = date
	}
}

// WithCustomer sets the customer identifier.
func WithCustomer(id string) PaymentOption {
	return func(p *Payment) {
		p.CustomerID = id
	}
}

// WithATCUD sets the unique document code.
func WithATCUD(code string) PaymentOption {
	return func(p *Payment) {
		p.ATCUD = code
	}
}

// WithSourceID sets the user that produced the payment.
func WithSourceID(id string) PaymentOption {
	return func(p *Payment) {
		p.SourceID = id
	}
}

// WithStatus sets the document status block.
func WithStatus(status *DocumentStatus) PaymentOption {
	return func(p *Payment) {
		p.DocumentStatus = status
	}
}

// WithLines appends lines to the payment.
func WithLines(lines ...*Line) PaymentOption {
	return func(p *Payment) {
		p.Line = append(p.Line, lines...)
	}
}

// WithTotals sets the declared document totals.
func WithTotals(totals *DocumentTotals) PaymentOption {
	return func(p *Payment) {
		p.DocumentTotals = totals
	}
}

// WithPaymentMethods appends payment methods to the payment.
func WithPaymentMethods(methods ...*PaymentMethod) PaymentOption {
	return func(p *Payment) {
		p.PaymentMethod = append(p.PaymentMethod, methods...)
	}
}

// WithWithholdingTax appends withholding tax entries to the payment.
func WithWithholdingTax(entries ...*WithholdingTax) PaymentOption {
	return func(p *Payment) {
		p.WithholdingTax = append(p.WithholdingTax, entries...)
	}
}

// LineOption is a functional option for configuring a Line.
type LineOption func(*Line)

// NewLine creates a line with the given line number.
func NewLine(number int, opts ...LineOption) *Line {
	l := &Line{LineNumber: number}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// WithCredit sets the credit amount of the line.
func WithCredit(value string) LineOption {
	return func(l *Line) {
		l.CreditAmount = NewAmount(value)
	}
}

// WithDebit sets the debit amount of the line.
func WithDebit(value string) LineOption {
	return func(l *Line) {
		l.DebitAmount = NewAmount(value)
	}
}

// WithSettlement sets the settlement (discount) amount of the line.
func WithSettlement(value string) LineOption {
	return func(l *Line) {
		l.SettlementAmount = NewAmount(value)
	}
}

// WithSourceDocuments appends source document references to the line.
func WithSourceDocuments(docs ...*SourceDocumentID) LineOption {
	return func(l *Line) {
		l.SourceDocumentID = append(l.SourceDocumentID, docs...)
	}
}

// WithTax sets the tax of the line.
func WithTax(tax *Tax) LineOption {
	return func(l *Line) {
		l.Tax = tax
	}
}

// WithExemption sets the tax exemption code and reason of the line.
func WithExemption(code, reason string) LineOption {
	return func(l *Line) {
		l.TaxExemptionCode = code
		l.TaxExemptionReason = reason
	}
}

// NewSourceDocument creates a reference to a settled invoice.
func NewSourceDocument(originatingON string, invoiceDate *Date) *SourceDocumentID {
	return &SourceDocumentID{
		OriginatingON: originatingON,
		InvoiceDate:   invoiceDate,
	}
}

// TaxOption is a functional option for configuring a Tax.
type TaxOption func(*Tax)

// NewTax creates a tax of the given type, region and code.
func NewTax(taxType TaxType, region, code string, opts ...TaxOption) *Tax {
	t := &Tax{
		TaxType:          taxType,
		TaxCountryRegion: region,
		TaxCode:          code,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// NewVAT creates an IVA tax with the given percentage.
func NewVAT(region, code, percentage string) *Tax {
	return NewTax(TaxTypeIVA, region, code, WithPercentage(percentage))
}

// WithPercentage sets the tax percentage.
func WithPercentage(value string) TaxOption {
	return func(t *Tax) {
		t.TaxPercentage = NewAmount(value)
	}
}

// WithTaxAmount sets the fixed tax amount.
func WithTaxAmount(value string) TaxOption {
	return func(t *Tax) {
		t.TaxAmount = NewAmount(value)
	}
}

// TotalsOption is a functional option for configuring DocumentTotals.
type TotalsOption func(*DocumentTotals)

// NewTotals creates document totals from net, tax and gross values.
func NewTotals(net, tax, gross string, opts ...TotalsOption) *DocumentTotals {
	t := &DocumentTotals{
		NetTotal:   NewAmount(net),
		TaxPayable: NewAmount(tax),
		GrossTotal: NewAmount(gross),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// WithCurrency sets the foreign currency block of the totals.
func WithCurrency(code, amount, rate string) TotalsOption {
	return func(t *DocumentTotals) {
		t.Currency = &Currency{
			CurrencyCode:   code,
			CurrencyAmount: NewAmount(amount),
			ExchangeRate:   NewAmount(rate),
		}
	}
}

// StatusOption is a functional option for configuring a DocumentStatus.
type StatusOption func(*DocumentStatus)

// NewStatus creates a status block. Source defaults to a produced document.
func NewStatus(status PaymentStatus, date *Date, opts ...StatusOption) *DocumentStatus {
	s := &DocumentStatus{
		PaymentStatus:     status,
		PaymentStatusDate: date,
		SourcePayment:     SourcePaymentProduced,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// WithReason sets the status reason.
func WithReason(reason string) StatusOption {
	return func(s *DocumentStatus) {
		s.Reason = reason
	}
}

// WithSource sets the origin of the status.
func WithSource(source SourcePayment, id string) StatusOption {
	return func(s *DocumentStatus) {
		s.SourcePayment = source
		s.SourceID = id
	}
}

// NewPaymentMethod creates a payment method.
func NewPaymentMethod(mechanism PaymentMechanism, amount string, date *Date) *PaymentMethod {
	return &PaymentMethod{
		PaymentMechanism: mechanism,
		PaymentAmount:    NewAmount(amount),
		PaymentDate:      date,
	}
}

// NewWithholdingTax creates a withholding tax entry.
func NewWithholdingTax(taxType, amount string) *WithholdingTax {
	return &WithholdingTax{
		WithholdingTaxType:   taxType,
		WithholdingTaxAmount: NewAmount(amount),
	}
}
