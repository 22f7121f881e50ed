package ast

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Payments is the payments table of the source documents section. TotalDebit and
// TotalCredit are the declared sums of the line amounts of all non-annulled payments.
type Payments struct {
	NumberOfEntries *int             `yaml:"NumberOfEntries"`
	TotalDebit      *decimal.Decimal `yaml:"TotalDebit"`
	TotalCredit     *decimal.Decimal `yaml:"TotalCredit"`
	Payment         []*Payment       `yaml:"Payment"`
}

var _ Table = &Payments{}

func (p *Payments) Describe() string {
	return "payments table"
}

func (p *Payments) DeclaredEntries() *int {
	return p.NumberOfEntries
}

// Documents returns the payments in file order, skipping nil entries.
func (p *Payments) Documents() []Document {
	docs := make([]Document, 0, len(p.Payment))
	for _, payment := range p.Payment {
		if payment == nil {
			continue
		}
		docs = append(docs, payment)
	}
	return docs
}

// Payment is a receipt issued for the settlement of one or more invoices.
type Payment struct {
	PaymentRefNo    string            `yaml:"PaymentRefNo"`
	ATCUD           string            `yaml:"ATCUD"`
	Period          int               `yaml:"Period"`
	TransactionID   string            `yaml:"TransactionID"`
	TransactionDate *Date             `yaml:"TransactionDate"`
	PaymentType     PaymentType       `yaml:"PaymentType"`
	Description     string            `yaml:"Description"`
	SystemID        string            `yaml:"SystemID"`
	DocumentStatus  *DocumentStatus   `yaml:"DocumentStatus"`
	PaymentMethod   []*PaymentMethod  `yaml:"PaymentMethod"`
	SourceID        string            `yaml:"SourceID"`
	SystemEntryDate *Date             `yaml:"SystemEntryDate"`
	CustomerID      string            `yaml:"CustomerID"`
	Line            []*Line           `yaml:"Line"`
	DocumentTotals  *DocumentTotals   `yaml:"DocumentTotals"`
	WithholdingTax  []*WithholdingTax `yaml:"WithholdingTax"`
}

var (
	_ LinesHolder       = &Payment{}
	_ TotalsHolder      = &Payment{}
	_ StatusHolder      = &Payment{}
	_ SettlementHolder  = &Payment{}
	_ WithholdingHolder = &Payment{}
)

func (p *Payment) Describe() string {
	if p.PaymentRefNo == "" {
		return "payment"
	}
	return "payment " + p.PaymentRefNo
}

func (p *Payment) Reference() string               { return p.PaymentRefNo }
func (p *Payment) DocumentType() string            { return string(p.PaymentType) }
func (p *Payment) KnownType() bool                 { return p.PaymentType.Valid() }
func (p *Payment) TransactionDay() *Date           { return p.TransactionDate }
func (p *Payment) EntryDate() *Date                { return p.SystemEntryDate }
func (p *Payment) CustomerRef() string             { return p.CustomerID }
func (p *Payment) Lines() []*Line                  { return p.Line }
func (p *Payment) Totals() *DocumentTotals         { return p.DocumentTotals }
func (p *Payment) Status() *DocumentStatus         { return p.DocumentStatus }
func (p *Payment) Methods() []*PaymentMethod       { return p.PaymentMethod }
func (p *Payment) Withholdings() []*WithholdingTax { return p.WithholdingTax }

// IsAnnulled reports whether the payment carries an annulled status.
func (p *Payment) IsAnnulled() bool {
	return p.DocumentStatus != nil && p.DocumentStatus.PaymentStatus == PaymentStatusAnnulled
}

// Line is a settlement line of a payment. Exactly one of DebitAmount and
// CreditAmount is set on a well-formed line.
type Line struct {
	LineNumber         int                 `yaml:"LineNumber"`
	SourceDocumentID   []*SourceDocumentID `yaml:"SourceDocumentID"`
	SettlementAmount   *decimal.Decimal    `yaml:"SettlementAmount"`
	DebitAmount        *decimal.Decimal    `yaml:"DebitAmount"`
	CreditAmount       *decimal.Decimal    `yaml:"CreditAmount"`
	Tax                *Tax                `yaml:"Tax"`
	TaxExemptionReason string              `yaml:"TaxExemptionReason"`
	TaxExemptionCode   string              `yaml:"TaxExemptionCode"`
}

func (l *Line) Describe() string {
	return fmt.Sprintf("line %d", l.LineNumber)
}

// SourceDocumentID references the invoice a line settles.
type SourceDocumentID struct {
	OriginatingON string `yaml:"OriginatingON"`
	InvoiceDate   *Date  `yaml:"InvoiceDate"`
	Description   string `yaml:"Description"`
}

func (s *SourceDocumentID) Describe() string {
	if s.OriginatingON == "" {
		return "source document"
	}
	return "source document " + s.OriginatingON
}

// Tax is the tax applied to a line.
type Tax struct {
	TaxType          TaxType          `yaml:"TaxType"`
	TaxCountryRegion string           `yaml:"TaxCountryRegion"`
	TaxCode          string           `yaml:"TaxCode"`
	TaxPercentage    *decimal.Decimal `yaml:"TaxPercentage"`
	TaxAmount        *decimal.Decimal `yaml:"TaxAmount"`
}

func (t *Tax) Describe() string {
	if t.TaxType == "" {
		return "tax"
	}
	return fmt.Sprintf("tax %s/%s", t.TaxType, t.TaxCode)
}

// DocumentTotals holds the declared totals of a document.
type DocumentTotals struct {
	TaxPayable *decimal.Decimal `yaml:"TaxPayable"`
	NetTotal   *decimal.Decimal `yaml:"NetTotal"`
	GrossTotal *decimal.Decimal `yaml:"GrossTotal"`
	Currency   *Currency        `yaml:"Currency"`
}

func (t *DocumentTotals) Describe() string {
	return "document totals"
}

// Currency declares the gross total converted into a foreign currency.
// CurrencyAmount times ExchangeRate equals the gross total.
type Currency struct {
	CurrencyCode   string           `yaml:"CurrencyCode"`
	CurrencyAmount *decimal.Decimal `yaml:"CurrencyAmount"`
	ExchangeRate   *decimal.Decimal `yaml:"ExchangeRate"`
}

func (c *Currency) Describe() string {
	if c.CurrencyCode == "" {
		return "currency"
	}
	return "currency " + c.CurrencyCode
}

// DocumentStatus holds the status of a document and where it came from.
type DocumentStatus struct {
	PaymentStatus     PaymentStatus `yaml:"PaymentStatus"`
	PaymentStatusDate *Date         `yaml:"PaymentStatusDate"`
	Reason            string        `yaml:"Reason"`
	SourceID          string        `yaml:"SourceID"`
	SourcePayment     SourcePayment `yaml:"SourcePayment"`
}

func (s *DocumentStatus) Describe() string {
	return "document status"
}

// PaymentMethod is one means by which a payment was settled.
type PaymentMethod struct {
	PaymentMechanism PaymentMechanism `yaml:"PaymentMechanism"`
	PaymentAmount    *decimal.Decimal `yaml:"PaymentAmount"`
	PaymentDate      *Date            `yaml:"PaymentDate"`
}

func (m *PaymentMethod) Describe() string {
	if m.PaymentMechanism == "" {
		return "payment method"
	}
	return "payment method " + string(m.PaymentMechanism)
}

// WithholdingTax is an amount withheld from the gross total at payment time.
type WithholdingTax struct {
	WithholdingTaxType        string           `yaml:"WithholdingTaxType"`
	WithholdingTaxDescription string           `yaml:"WithholdingTaxDescription"`
	WithholdingTaxAmount      *decimal.Decimal `yaml:"WithholdingTaxAmount"`
}

func (w *WithholdingTax) Describe() string {
	if w.WithholdingTaxType == "" {
		return "withholding tax"
	}
	return "withholding tax " + w.WithholdingTaxType
}
