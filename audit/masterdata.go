package audit

import (
	"github.com/robinvdvleuten/saft/ast"
	"github.com/shopspring/decimal"
)

// TaxLookup is the outcome of a tax table lookup.
type TaxLookup int

const (
	// TaxFound means a usable entry matched.
	TaxFound TaxLookup = iota
	// TaxUnknown means no entry exists for the type, region and code.
	TaxUnknown
	// TaxRateMismatch means entries exist but none carries the requested percentage.
	TaxRateMismatch
	// TaxExpired means every matching entry expired before the requested date.
	TaxExpired
)

type taxKey struct {
	taxType ast.TaxType
	region  string
	code    string
}

// Index is a read-only lookup of the master data documents refer to.
type Index struct {
	customers map[string]*ast.Customer
	taxes     map[taxKey][]*ast.TaxTableEntry
}

// NewIndex builds an index from the master files of an audit file. A nil argument
// yields an empty index.
func NewIndex(master *ast.MasterFiles) *Index {
	idx := &Index{
		customers: make(map[string]*ast.Customer),
		taxes:     make(map[taxKey][]*ast.TaxTableEntry),
	}
	if master != nil {
		idx.AddCustomers(master.Customer...)
		idx.AddTaxEntries(master.TaxTable...)
	}
	return idx
}

// AddCustomers registers customers. A later customer replaces an earlier one
// with the same id.
func (i *Index) AddCustomers(customers ...*ast.Customer) {
	for _, c := range customers {
		if c == nil || c.CustomerID == "" {
			continue
		}
		i.customers[c.CustomerID] = c
	}
}

// AddTaxEntries registers tax table rows, typically loaded from an external
// tax table in addition to the ones embedded in the audit file.
func (i *Index) AddTaxEntries(entries ...*ast.TaxTableEntry) {
	for _, e := range entries {
		if e == nil {
			continue
		}
		key := taxKey{e.TaxType, e.TaxCountryRegion, e.TaxCode}
		i.taxes[key] = append(i.taxes[key], e)
	}
}

// Customer returns the customer with the given id.
func (i *Index) Customer(id string) (*ast.Customer, bool) {
	c, ok := i.customers[id]
	return c, ok
}

// TaxEntries returns the rows registered for a type, region and code.
func (i *Index) TaxEntries(taxType ast.TaxType, region, code string) []*ast.TaxTableEntry {
	return i.taxes[taxKey{taxType, region, code}]
}

// LookupTax finds the row for a type, region and code that carries the given
// percentage and is still valid on the given date. A nil percentage matches any
// row, as does a row without a percentage. A row without an expiration date never
// expires. The returned entry is the best candidate found, nil when TaxUnknown.
func (i *Index) LookupTax(taxType ast.TaxType, region, code string, percentage *decimal.Decimal, on *ast.Date) (*ast.TaxTableEntry, TaxLookup) {
	entries := i.TaxEntries(taxType, region, code)
	if len(entries) == 0 {
		return nil, TaxUnknown
	}

	var expired *ast.TaxTableEntry
	for _, e := range entries {
		if percentage != nil && e.TaxPercentage != nil && !e.TaxPercentage.Equal(*percentage) {
			continue
		}
		if e.TaxExpirationDate != nil && !on.IsZero() && e.TaxExpirationDate.BeforeDay(on) {
			expired = e
			continue
		}
		return e, TaxFound
	}

	if expired != nil {
		return expired, TaxExpired
	}
	return entries[0], TaxRateMismatch
}
