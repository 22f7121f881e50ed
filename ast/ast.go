// Package ast defines the in-memory tree of a SAF-T audit file as consumed by the
// validator. The tree mirrors the structure of the XML export (header, master files and
// source documents) but carries decoded values: dates as Date, amounts as decimals and
// business codes as closed enumerations.
//
// The tree is produced by an external loader (see package loader) or built directly in
// code with the constructors in builders.go:
//
//	payment := ast.NewPayment("RG 2024/1", ast.MustDate("2024-03-01"),
//	    ast.WithPaymentType(ast.PaymentTypeRG),
//	    ast.WithCustomer("C001"),
//	    ast.WithLines(
//	        ast.NewLine(1, ast.WithCredit("100.00"), ast.WithTax(ast.NewVAT("PT", "NOR", "23"))),
//	    ),
//	)
//
// Every entity that validation results can be attached to implements Node. Documents
// implement Document plus the capability interfaces for the sub-records they own, so the
// rule set can serve other document kinds that only provide part of the contract.
package ast

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Node is an entity of the audit file tree. Validation results reference nodes by
// identity, so nodes are always handled through pointers.
type Node interface {
	// Describe returns a short human readable label, e.g. "line 3".
	Describe() string
}

// Document is a single transactional record within a source documents table.
type Document interface {
	Node

	// Reference returns the unique document number (e.g. "RG 2024/15").
	Reference() string
	// DocumentType returns the raw document type code.
	DocumentType() string
	// KnownType reports whether DocumentType is a member of the closed set of types.
	KnownType() bool
	// TransactionDay returns the date of the transaction, nil when absent.
	TransactionDay() *Date
	// EntryDate returns the system entry timestamp, nil when absent.
	EntryDate() *Date
	// CustomerRef returns the customer identifier, empty when absent.
	CustomerRef() string
}

// LinesHolder is implemented by documents that carry line items.
type LinesHolder interface {
	Document
	Lines() []*Line
}

// TotalsHolder is implemented by documents that declare totals.
type TotalsHolder interface {
	Document
	Totals() *DocumentTotals
}

// StatusHolder is implemented by documents that carry a status block.
type StatusHolder interface {
	Document
	Status() *DocumentStatus
}

// SettlementHolder is implemented by documents that declare payment methods.
type SettlementHolder interface {
	Document
	Methods() []*PaymentMethod
}

// WithholdingHolder is implemented by documents that declare withholding tax.
type WithholdingHolder interface {
	Document
	Withholdings() []*WithholdingTax
}

// Table is a collection of documents of one kind with declared table-level totals.
type Table interface {
	Node

	// DeclaredEntries returns the declared number of documents, nil when absent.
	DeclaredEntries() *int
	Documents() []Document
}

// AuditFile is the root of the tree.
type AuditFile struct {
	Header          *Header          `yaml:"Header"`
	MasterFiles     *MasterFiles     `yaml:"MasterFiles"`
	SourceDocuments *SourceDocuments `yaml:"SourceDocuments"`
}

// Payments returns the payments table or nil when the file carries none.
func (f *AuditFile) Payments() *Payments {
	if f == nil || f.SourceDocuments == nil {
		return nil
	}
	return f.SourceDocuments.Payments
}

// Header holds the reporting metadata of the audit file. StartDate and EndDate
// delimit the reporting period every document must fall into.
type Header struct {
	AuditFileVersion      string `yaml:"AuditFileVersion"`
	CompanyID             string `yaml:"CompanyID"`
	TaxRegistrationNumber string `yaml:"TaxRegistrationNumber"`
	CompanyName           string `yaml:"CompanyName"`
	FiscalYear            int    `yaml:"FiscalYear"`
	StartDate             *Date  `yaml:"StartDate"`
	EndDate               *Date  `yaml:"EndDate"`
	CurrencyCode          string `yaml:"CurrencyCode"`
	DateCreated           *Date  `yaml:"DateCreated"`
	ProductID             string `yaml:"ProductID"`
	ProductVersion        string `yaml:"ProductVersion"`
}

func (h *Header) Describe() string {
	return "header"
}

// MasterFiles holds the reference entities documents point to.
type MasterFiles struct {
	Customer []*Customer      `yaml:"Customer"`
	TaxTable []*TaxTableEntry `yaml:"TaxTable"`
}

// Customer is a master data customer record.
type Customer struct {
	CustomerID    string `yaml:"CustomerID"`
	AccountID     string `yaml:"AccountID"`
	CustomerTaxID string `yaml:"CustomerTaxID"`
	CompanyName   string `yaml:"CompanyName"`
	Country       string `yaml:"Country"`
}

func (c *Customer) Describe() string {
	return "customer " + c.CustomerID
}

// TaxTableEntry is a row of the tax table. A row is identified by its type, region
// and code; a nil TaxExpirationDate means the row never expires.
type TaxTableEntry struct {
	TaxType           TaxType          `yaml:"TaxType"`
	TaxCountryRegion  string           `yaml:"TaxCountryRegion"`
	TaxCode           string           `yaml:"TaxCode"`
	Description       string           `yaml:"Description"`
	TaxExpirationDate *Date            `yaml:"TaxExpirationDate"`
	TaxPercentage     *decimal.Decimal `yaml:"TaxPercentage"`
	TaxAmount         *decimal.Decimal `yaml:"TaxAmount"`
}

func (e *TaxTableEntry) Describe() string {
	return fmt.Sprintf("tax table entry %s/%s/%s", e.TaxType, e.TaxCountryRegion, e.TaxCode)
}

// SourceDocuments groups the document tables of the audit file.
type SourceDocuments struct {
	Payments *Payments `yaml:"Payments"`
}
