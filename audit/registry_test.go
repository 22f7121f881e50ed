package audit

import (
	"sync"
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/robinvdvleuten/saft/ast"
)

func entryFor(doc ast.Document, entity ast.Node, code Code) *Entry {
	return &Entry{
		Entity:   entity,
		Document: doc,
		Code:     code,
		Kind:     code.Kind(),
		Severity: code.Severity(),
		Message:  string(code),
	}
}

func TestRegistryDeduplicates(t *testing.T) {
	r := NewRegistry()
	payment := newPayment("RG 2024/1", "2024-02-01")

	assert.True(t, r.Report(entryFor(payment, payment, CodeCustomerID)))
	assert.False(t, r.Report(entryFor(payment, payment, CodeCustomerID)))
	assert.True(t, r.Report(entryFor(payment, payment, CodeTypeUnknown)))

	errCount, warnCount := r.Len()
	assert.Equal(t, 2, errCount)
	assert.Equal(t, 0, warnCount)
}

func TestRegistryDistinctEntitiesSameCode(t *testing.T) {
	r := NewRegistry()
	first := newPayment("RG 2024/1", "2024-02-01")
	second := newPayment("RG 2024/1", "2024-02-01")

	assert.True(t, r.Report(entryFor(first, first, CodeCustomerID)))
	assert.True(t, r.Report(entryFor(second, second, CodeCustomerID)))
	assert.Equal(t, 2, len(r.Entries()))
}

func TestRegistryOrdering(t *testing.T) {
	r := NewRegistry()
	first := newPayment("RG 2024/1", "2024-02-01")
	second := newPayment("RG 2024/2", "2024-02-01")

	r.Report(entryFor(second, second, CodeSystemEntryDateRegression))
	r.Report(entryFor(first, first, CodeTransactionDateRegression))
	r.Report(entryFor(second, second, CodeReferenceMissing))
	r.Report(entryFor(second, second, CodePaymentMethodMissing))
	r.Report(entryFor(first, first, CodeCustomerID))

	assert.Equal(t,
		[]Code{CodeReferenceMissing, CodeSystemEntryDateRegression, CodePaymentMethodMissing, CodeCustomerID, CodeTransactionDateRegression},
		codes(r.Entries()))
	assert.Equal(t,
		[]Code{CodeReferenceMissing, CodeSystemEntryDateRegression, CodeCustomerID, CodeTransactionDateRegression},
		codes(r.Errors()))
	assert.Equal(t, []Code{CodePaymentMethodMissing}, codes(r.Warnings()))
	assert.Equal(t, []Code{CodeReferenceMissing, CodeSystemEntryDateRegression}, codes(r.ErrorsFor(second)))
	assert.Equal(t, []Code{CodePaymentMethodMissing}, codes(r.WarningsFor(second)))
}

func TestRegistryHasErrorsIgnoresWarnings(t *testing.T) {
	r := NewRegistry()
	payment := newPayment("RG 2024/1", "2024-02-01")

	assert.False(t, r.HasErrors())
	r.Report(entryFor(payment, payment, CodePaymentMethodMissing))
	assert.False(t, r.HasErrors())
	r.Report(entryFor(payment, payment, CodeCustomerID))
	assert.True(t, r.HasErrors())
}

func TestRegistryUnknownEntity(t *testing.T) {
	r := NewRegistry()

	assert.Equal(t, 0, len(r.EntriesFor(ast.NewLine(1))))
}

func TestRegistryConcurrentReport(t *testing.T) {
	r := NewRegistry()
	payments := make([]*ast.Payment, 50)
	for i := range payments {
		payments[i] = newPayment("RG 2024/1", "2024-02-01")
	}

	var wg sync.WaitGroup
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, p := range payments {
				r.Report(entryFor(p, p, CodeCustomerID))
			}
		}()
	}
	wg.Wait()

	errCount, _ := r.Len()
	assert.Equal(t, 50, errCount)
	assert.Equal(t, 50, len(r.Errors()))
}

func TestRegistryIDsDiffer(t *testing.T) {
	assert.NotEqual(t, NewRegistry().ID(), NewRegistry().ID())
}

func TestEntryError(t *testing.T) {
	payment := newPayment("RG 2024/1", "2024-02-01")
	table := ast.NewPayments([]*ast.Payment{payment})

	tests := []struct {
		name  string
		entry *Entry
		want  string
	}{
		{
			name:  "Document",
			entry: &Entry{Entity: payment, Document: payment, Message: "customer id is not set"},
			want:  "RG 2024/1: customer id is not set",
		},
		{
			name:  "SubEntity",
			entry: &Entry{Entity: payment.Line[0], Document: payment, Message: "line has no tax"},
			want:  "RG 2024/1: line 1: line has no tax",
		},
		{
			name:  "Table",
			entry: &Entry{Entity: table, Message: "number of entries is not set"},
			want:  "payments table: number of entries is not set",
		},
		{
			name:  "Bare",
			entry: &Entry{Message: "something"},
			want:  "something",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.entry.Error())
		})
	}
}

func TestCodeCatalog(t *testing.T) {
	seen := make(map[Code]bool)
	for i, code := range Codes() {
		assert.False(t, seen[code], "duplicate code %s", code)
		seen[code] = true
		assert.Equal(t, i, code.Rank())
	}

	assert.Equal(t, len(Codes()), Code("not-a-code").Rank())
	assert.Equal(t, SeverityWarning, CodeWithholdingAboveHalf.Severity())
	assert.Equal(t, KindExpiredReference, CodeTaxEntryExpired.Kind())
}

func TestKindAndSeverityText(t *testing.T) {
	text, err := KindToleranceMismatch.MarshalText()
	assert.NoError(t, err)
	assert.Equal(t, KindToleranceMismatch.String(), string(text))

	text, err = SeverityWarning.MarshalText()
	assert.NoError(t, err)
	assert.Equal(t, "warning", string(text))
	assert.Equal(t, "error", SeverityError.String())
}
