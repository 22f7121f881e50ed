package audit

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// CurrencyPlaces is the number of fractional digits of declared monetary values.
const CurrencyPlaces = 2

var (
	hundred = decimal.NewFromInt(100)
	two     = decimal.NewFromInt(2)
)

// ParseAmount converts a decimal string to a decimal.Decimal
func ParseAmount(value string) (decimal.Decimal, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return decimal.Zero, fmt.Errorf("amount is empty")
	}

	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount value %q: %w", value, err)
	}

	return d, nil
}

// MustParseAmount is like ParseAmount but panics on error.
// Use only in tests or when you're certain the amount is valid
func MustParseAmount(value string) decimal.Decimal {
	d, err := ParseAmount(value)
	if err != nil {
		panic(err)
	}
	return d
}

// RoundCurrency rounds half away from zero to CurrencyPlaces.
func RoundCurrency(d decimal.Decimal) decimal.Decimal {
	return d.Round(CurrencyPlaces)
}

// AmountEqual reports whether |a-b| <= tolerance. A zero tolerance requires an
// exact match.
func AmountEqual(a, b, tolerance decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThanOrEqual(tolerance)
}

// lineTax computes base * percentage / 100 at full precision.
func lineTax(base, percentage decimal.Decimal) decimal.Decimal {
	return base.Mul(percentage).Div(hundred)
}

// valueOf dereferences an optional amount, treating nil as zero.
func valueOf(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}

// ToleranceConfig holds the configured deltas. Every delta is inclusive and
// defaults to zero, which means an exact match is required.
type ToleranceConfig struct {
	// Line applies to the tax amount of a single line.
	Line decimal.Decimal
	// Currency applies to the converted amount of a currency block.
	Currency decimal.Decimal
	// Table applies to the declared debit and credit totals of the table.
	Table decimal.Decimal
	// TotalDoc applies to the declared totals of a document and its payment sum.
	TotalDoc decimal.Decimal
}

// NewToleranceConfig creates a tolerance configuration requiring exact matches.
func NewToleranceConfig() *ToleranceConfig {
	return &ToleranceConfig{
		Line:     decimal.Zero,
		Currency: decimal.Zero,
		Table:    decimal.Zero,
		TotalDoc: decimal.Zero,
	}
}
