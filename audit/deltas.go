package audit

import (
	"strings"

	"github.com/robinvdvleuten/saft/ast"
	"github.com/shopspring/decimal"
)

// Validation of a document never touches the running state. It returns a
// DocumentDelta describing the document's contribution instead, and the
// validator folds that delta into the State once every rule has run.

// DocumentDelta is the contribution of one document to the running state.
type DocumentDelta struct {
	Reference string
	Annulled  bool

	// Credit and Debit are the summed line amounts.
	Credit decimal.Decimal
	Debit  decimal.Decimal
	// Net, Tax and Gross are recomputed from the lines at full precision.
	Net   decimal.Decimal
	Tax   decimal.Decimal
	Gross decimal.Decimal

	TransactionDate *ast.Date
	SystemEntryDate *ast.Date
}

// String returns a human-readable representation of the delta
func (d *DocumentDelta) String() string {
	var sb strings.Builder
	sb.WriteString("DocumentDelta{")
	sb.WriteString(d.Reference)
	if d.Annulled {
		sb.WriteString(" annulled")
	}
	sb.WriteString(" credit=")
	sb.WriteString(d.Credit.String())
	sb.WriteString(" debit=")
	sb.WriteString(d.Debit.String())
	sb.WriteString(" net=")
	sb.WriteString(d.Net.String())
	sb.WriteString(" tax=")
	sb.WriteString(d.Tax.String())
	sb.WriteString(" gross=")
	sb.WriteString(d.Gross.String())
	sb.WriteString("}")
	return sb.String()
}
