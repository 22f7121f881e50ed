package ast

import (
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestNewAmount(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  string
	}{
		{"Positive", "100.50", "100.5"},
		{"Negative", "-42.00", "-42"},
		{"Zero", "0.00", "0"},
		{"Large", "1234567.89", "1234567.89"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amount := NewAmount(tt.value)
			assert.Equal(t, tt.want, amount.String())
		})
	}
}

func TestNewAmountPanics(t *testing.T) {
	assert.Panics(t, func() {
		NewAmount("12,50")
	})
}

func TestNewDate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantErr  bool
		withTime bool
	}{
		{"Valid", "2024-01-15", false, false},
		{"LeapYear", "2024-02-29", false, false},
		{"Timestamp", "2024-01-15T10:30:00", false, true},
		{"Padded", " 2024-01-15 ", false, false},
		{"Invalid", "2024-13-01", true, false},
		{"BadFormat", "01/15/2024", true, false},
		{"Zoned", "2024-01-15T10:30:00Z", true, false},
		{"Empty", "", true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			date, err := NewDate(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				assert.True(t, date == nil)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.withTime, date.HasTime())
		})
	}
}

func TestMustDatePanics(t *testing.T) {
	assert.Panics(t, func() {
		MustDate("not a date")
	})
}

func TestNewHeader(t *testing.T) {
	header := NewHeader(MustDate("2024-01-01"), MustDate("2024-12-31"))

	assert.Equal(t, 2024, header.FiscalYear)
	assert.Equal(t, "EUR", header.CurrencyCode)
	assert.Equal(t, "2024-12-31", header.EndDate.String())
	assert.Equal(t, "header", header.Describe())
}

func TestNewPayment(t *testing.T) {
	date := MustDate("2024-03-15")
	method := NewPaymentMethod(MechanismMultibanco, "123.00", date)

	payment := NewPayment("RG 2024/1", date,
		WithPaymentType(PaymentTypeRG),
		WithATCUD("JFA3M2-1"),
		WithCustomer("C001"),
		WithSourceID("admin"),
		WithSystemEntryDate(MustDate("2024-03-15T09:00:00")),
		WithStatus(NewStatus(PaymentStatusNormal, MustDate("2024-03-15T09:00:00"))),
		WithLines(
			NewLine(1, WithCredit("100.00"), WithTax(NewVAT("PT", "NOR", "23"))),
		),
		WithLines(
			NewLine(2, WithDebit("10.00"), WithSettlement("1.00"), WithExemption("M07", "Isento")),
		),
		WithTotals(NewTotals("90.00", "20.70", "110.70", WithCurrency("USD", "100.00", "1.107"))),
		WithPaymentMethods(method),
		WithWithholdingTax(NewWithholdingTax("IRS", "10.00")),
	)

	assert.Equal(t, "RG 2024/1", payment.Reference())
	assert.Equal(t, "payment RG 2024/1", payment.Describe())
	assert.Equal(t, 3, payment.Period)
	assert.Equal(t, "RG", payment.DocumentType())
	assert.True(t, payment.KnownType())
	assert.Equal(t, "C001", payment.CustomerRef())
	assert.Equal(t, "2024-03-15T09:00:00", payment.EntryDate().String())
	assert.Equal(t, SourcePaymentProduced, payment.Status().SourcePayment)
	assert.False(t, payment.IsAnnulled())

	assert.Equal(t, 2, len(payment.Lines()))
	assert.Equal(t, "line 2", payment.Lines()[1].Describe())
	assert.Equal(t, "M07", payment.Lines()[1].TaxExemptionCode)
	assert.Equal(t, "1", payment.Lines()[1].SettlementAmount.String())
	assert.Equal(t, "tax IVA/NOR", payment.Lines()[0].Tax.Describe())

	assert.Equal(t, "currency USD", payment.Totals().Currency.Describe())
	assert.True(t, payment.Methods()[0] == method)
	assert.Equal(t, "withholding tax IRS", payment.Withholdings()[0].Describe())
}

func TestNewStatusOptions(t *testing.T) {
	status := NewStatus(PaymentStatusAnnulled, MustDate("2024-03-15T09:00:00"),
		WithReason("Duplicated"),
		WithSource(SourcePaymentIntegrated, "erp"),
	)

	assert.Equal(t, "Duplicated", status.Reason)
	assert.Equal(t, SourcePaymentIntegrated, status.SourcePayment)
	assert.Equal(t, "erp", status.SourceID)

	payment := NewPayment("RG 2024/2", MustDate("2024-03-15"), WithStatus(status))
	assert.True(t, payment.IsAnnulled())
}

func TestNewPayments(t *testing.T) {
	first := NewPayment("RG 2024/1", MustDate("2024-03-15"))
	second := NewPayment("RG 2024/2", MustDate("2024-03-16"))

	table := NewPayments([]*Payment{first, nil, second},
		WithNumberOfEntries(2),
		WithTotalDebit("0.00"),
		WithTotalCredit("246.00"),
	)

	assert.Equal(t, 2, *table.DeclaredEntries())
	assert.Equal(t, "246", table.TotalCredit.String())

	docs := table.Documents()
	assert.Equal(t, 2, len(docs))
	assert.Equal(t, "RG 2024/1", docs[0].Reference())
	assert.Equal(t, "RG 2024/2", docs[1].Reference())
}

func TestAuditFilePayments(t *testing.T) {
	var empty *AuditFile
	assert.Zero(t, empty.Payments())
	assert.Zero(t, (&AuditFile{}).Payments())

	table := NewPayments(nil)
	file := NewAuditFile(nil, nil, table)
	assert.True(t, file.Payments() == table)
}

func TestNewTaxTableEntry(t *testing.T) {
	entry := NewTaxTableEntry(TaxTypeIVA, "PT-AC", "RED", "4").WithExpiration(MustDate("2024-06-30"))

	assert.Equal(t, "4", entry.TaxPercentage.String())
	assert.Equal(t, "2024-06-30", entry.TaxExpirationDate.String())
	assert.Equal(t, "tax table entry IVA/PT-AC/RED", entry.Describe())
}
