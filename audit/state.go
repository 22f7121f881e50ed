package audit

import (
	"github.com/robinvdvleuten/saft/ast"
	"github.com/shopspring/decimal"
)

// State is the running state of one validation pass. It is created when the pass
// starts, advanced once per document in file order and read by the rules of the
// next document. Rules never mutate it.
type State struct {
	// DeclaredDebit and DeclaredCredit are the table totals, nil when absent.
	DeclaredDebit  *decimal.Decimal
	DeclaredCredit *decimal.Decimal

	Credit decimal.Decimal
	Debit  decimal.Decimal
	Net    decimal.Decimal
	Tax    decimal.Decimal
	Gross  decimal.Decimal

	// LastTransactionDate and LastSystemEntryDate are the dates of the most recent
	// document that carried them.
	LastTransactionDate *ast.Date
	LastSystemEntryDate *ast.Date

	// Entries counts every document seen, annulled ones included.
	Entries int

	refs map[string]struct{}
}

// NewState initializes the running state from a payments table.
func NewState(table *ast.Payments) *State {
	s := &State{
		refs: make(map[string]struct{}),
	}
	if table != nil {
		s.DeclaredDebit = table.TotalDebit
		s.DeclaredCredit = table.TotalCredit
	}
	return s
}

// SeenReference reports whether a document with the reference was already folded.
func (s *State) SeenReference(ref string) bool {
	_, ok := s.refs[ref]
	return ok
}

// Apply folds a document delta into the state. Annulled documents advance the
// entry counter and the last seen dates but are excluded from the amounts, as the
// table totals only cover documents in force.
func (s *State) Apply(d *DocumentDelta) {
	s.Entries++

	if d.Reference != "" {
		s.refs[d.Reference] = struct{}{}
	}
	if d.TransactionDate != nil {
		s.LastTransactionDate = d.TransactionDate
	}
	if d.SystemEntryDate != nil {
		s.LastSystemEntryDate = d.SystemEntryDate
	}

	if d.Annulled {
		return
	}

	s.Credit = s.Credit.Add(d.Credit)
	s.Debit = s.Debit.Add(d.Debit)
	s.Net = s.Net.Add(d.Net)
	s.Tax = s.Tax.Add(d.Tax)
	s.Gross = s.Gross.Add(d.Gross)
}
