package audit

import (
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/robinvdvleuten/saft/ast"
)

func TestNewState(t *testing.T) {
	table := ast.NewPayments(nil, ast.WithTotalDebit("1.00"), ast.WithTotalCredit("2.00"))
	s := NewState(table)

	assert.Equal(t, "1", s.DeclaredDebit.String())
	assert.Equal(t, "2", s.DeclaredCredit.String())
	assert.Equal(t, 0, s.Entries)

	empty := NewState(nil)
	assert.Zero(t, empty.DeclaredDebit)
	assert.False(t, empty.SeenReference(""))
}

func TestStateApply(t *testing.T) {
	s := NewState(nil)
	first := ast.MustDate("2024-02-01")
	entry := ast.MustDate("2024-02-01T10:00:00")

	s.Apply(&DocumentDelta{
		Reference:       "RG 2024/1",
		Credit:          MustParseAmount("100.00"),
		Net:             MustParseAmount("100.00"),
		Tax:             MustParseAmount("23.00"),
		Gross:           MustParseAmount("123.00"),
		TransactionDate: first,
		SystemEntryDate: entry,
	})
	s.Apply(&DocumentDelta{
		Reference: "RG 2024/2",
		Debit:     MustParseAmount("10.00"),
	})

	assert.Equal(t, 2, s.Entries)
	assert.True(t, s.SeenReference("RG 2024/1"))
	assert.True(t, s.SeenReference("RG 2024/2"))
	assert.False(t, s.SeenReference("RG 2024/3"))
	assert.Equal(t, "100", s.Credit.String())
	assert.Equal(t, "10", s.Debit.String())
	assert.Equal(t, "123", s.Gross.String())

	// Documents without dates keep the previous ones.
	assert.True(t, s.LastTransactionDate == first)
	assert.True(t, s.LastSystemEntryDate == entry)
}

func TestStateApplyAnnulled(t *testing.T) {
	s := NewState(nil)
	date := ast.MustDate("2024-03-01")

	s.Apply(&DocumentDelta{
		Reference:       "RG 2024/1",
		Annulled:        true,
		Credit:          MustParseAmount("100.00"),
		Gross:           MustParseAmount("123.00"),
		TransactionDate: date,
	})

	assert.Equal(t, 1, s.Entries)
	assert.True(t, s.SeenReference("RG 2024/1"))
	assert.True(t, s.Credit.IsZero())
	assert.True(t, s.Gross.IsZero())
	assert.True(t, s.LastTransactionDate == date)
}
