package ast

import (
	"fmt"
	"strings"
	"time"
)

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02T15:04:05"
)

// Date represents either a calendar date (YYYY-MM-DD) or a local timestamp
// (YYYY-MM-DDTHH:MM:SS). SAF-T uses plain dates for transaction, invoice and period
// dates and timestamps for system entry and status dates.
type Date struct {
	time.Time

	withTime bool
}

// UnmarshalText parses a date or timestamp.
func (d *Date) UnmarshalText(text []byte) error {
	s := strings.TrimSpace(string(text))
	if t, err := time.Parse(dateLayout, s); err == nil {
		d.Time = t
		d.withTime = false
		return nil
	}
	t, err := time.Parse(dateTimeLayout, s)
	if err != nil {
		return fmt.Errorf("invalid date: %s", s)
	}
	d.Time = t
	d.withTime = true
	return nil
}

// MarshalText renders the date in the layout it was parsed from.
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// IsZero returns true if the Date is nil or represents the zero time.
// This method is nil-safe to prevent panics when repr or other libraries
// check if fields are zero-valued.
func (d *Date) IsZero() bool {
	if d == nil {
		return true
	}
	return d.Time.IsZero()
}

// HasTime reports whether the value was given as a timestamp.
func (d *Date) HasTime() bool {
	return d != nil && d.withTime
}

// DateOnly returns the calendar day of the value at midnight UTC.
func (d *Date) DateOnly() time.Time {
	y, m, day := d.Time.Date()
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
}

// BeforeDay reports whether d falls on an earlier calendar day than other.
func (d *Date) BeforeDay(other *Date) bool {
	return d.DateOnly().Before(other.DateOnly())
}

// AfterDay reports whether d falls on a later calendar day than other.
func (d *Date) AfterDay(other *Date) bool {
	return d.DateOnly().After(other.DateOnly())
}

func (d *Date) String() string {
	if d == nil {
		return ""
	}
	if d.withTime {
		return d.Time.Format(dateTimeLayout)
	}
	return d.Time.Format(dateLayout)
}

// TaxType is the tax regime of a line.
type TaxType string

const (
	// TaxTypeIVA is value added tax, always expressed as a percentage.
	TaxTypeIVA TaxType = "IVA"
	// TaxTypeIS is stamp duty, expressed as a percentage or a fixed amount.
	TaxTypeIS TaxType = "IS"
	// TaxTypeNS marks lines not subject to IVA or IS.
	TaxTypeNS TaxType = "NS"
)

// Valid reports whether t is a known tax type.
func (t TaxType) Valid() bool {
	switch t {
	case TaxTypeIVA, TaxTypeIS, TaxTypeNS:
		return true
	default:
		return false
	}
}

// PercentageBased reports whether the regime is always expressed as a percentage.
// Amount-based regimes accept either a percentage or a fixed amount.
func (t TaxType) PercentageBased() bool {
	switch t {
	case TaxTypeIVA, TaxTypeNS:
		return true
	case TaxTypeIS:
		return false
	default:
		return false
	}
}

// UnmarshalText trims surrounding whitespace. Unknown values are kept so that
// validation can report them.
func (t *TaxType) UnmarshalText(text []byte) error {
	*t = TaxType(strings.TrimSpace(string(text)))
	return nil
}

// PaymentType is the type of a payment document.
type PaymentType string

const (
	// PaymentTypeRC is a receipt issued under the cash VAT regime.
	PaymentTypeRC PaymentType = "RC"
	// PaymentTypeRG is any other receipt.
	PaymentTypeRG PaymentType = "RG"
)

// Valid reports whether t is a known payment type.
func (t PaymentType) Valid() bool {
	switch t {
	case PaymentTypeRC, PaymentTypeRG:
		return true
	default:
		return false
	}
}

func (t *PaymentType) UnmarshalText(text []byte) error {
	*t = PaymentType(strings.TrimSpace(string(text)))
	return nil
}

// PaymentStatus is the status of a payment document.
type PaymentStatus string

const (
	PaymentStatusNormal   PaymentStatus = "N"
	PaymentStatusAnnulled PaymentStatus = "A"
)

// Valid reports whether s is a known payment status.
func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentStatusNormal, PaymentStatusAnnulled:
		return true
	default:
		return false
	}
}

func (s *PaymentStatus) UnmarshalText(text []byte) error {
	*s = PaymentStatus(strings.TrimSpace(string(text)))
	return nil
}

// SourcePayment tells where a document originated.
type SourcePayment string

const (
	// SourcePaymentProduced is a document produced by the invoicing application.
	SourcePaymentProduced SourcePayment = "P"
	// SourcePaymentIntegrated is a document integrated from another application.
	SourcePaymentIntegrated SourcePayment = "I"
	// SourcePaymentManual is a manually issued document recovered into the application.
	SourcePaymentManual SourcePayment = "M"
)

// Valid reports whether s is a known source.
func (s SourcePayment) Valid() bool {
	switch s {
	case SourcePaymentProduced, SourcePaymentIntegrated, SourcePaymentManual:
		return true
	default:
		return false
	}
}

func (s *SourcePayment) UnmarshalText(text []byte) error {
	*s = SourcePayment(strings.TrimSpace(string(text)))
	return nil
}

// PaymentMechanism is the means of a payment.
type PaymentMechanism string

const (
	MechanismCreditCard      PaymentMechanism = "CC"
	MechanismDebitCard       PaymentMechanism = "CD"
	MechanismCheque          PaymentMechanism = "CH"
	MechanismCreditTransfer  PaymentMechanism = "CI"
	MechanismGiftCheque      PaymentMechanism = "CO"
	MechanismCompensation    PaymentMechanism = "CS"
	MechanismElectronicMoney PaymentMechanism = "DE"
	MechanismCommercialBill  PaymentMechanism = "LC"
	MechanismMultibanco      PaymentMechanism = "MB"
	MechanismCash            PaymentMechanism = "NU"
	MechanismOther           PaymentMechanism = "OU"
	MechanismBarter          PaymentMechanism = "PR"
	MechanismBankTransfer    PaymentMechanism = "TB"
	MechanismTicket          PaymentMechanism = "TR"
)

// Valid reports whether m is a known payment mechanism.
func (m PaymentMechanism) Valid() bool {
	switch m {
	case MechanismCreditCard, MechanismDebitCard, MechanismCheque, MechanismCreditTransfer,
		MechanismGiftCheque, MechanismCompensation, MechanismElectronicMoney,
		MechanismCommercialBill, MechanismMultibanco, MechanismCash, MechanismOther,
		MechanismBarter, MechanismBankTransfer, MechanismTicket:
		return true
	default:
		return false
	}
}

func (m *PaymentMechanism) UnmarshalText(text []byte) error {
	*m = PaymentMechanism(strings.TrimSpace(string(text)))
	return nil
}
