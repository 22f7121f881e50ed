package audit

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Option names recognized by ConfigFromOptions.
const (
	OptionContinuousLines = "continuousLines"
	OptionDeltaLine       = "deltaLine"
	OptionDeltaCurrency   = "deltaCurrency"
	OptionDeltaTable      = "deltaTable"
	OptionDeltaTotalDoc   = "deltaTotalDoc"
)

// Config holds the validator configuration.
type Config struct {
	// ContinuousLines requires line numbers of a document to be exactly 1..n.
	// When false, line numbers only need to be unique.
	ContinuousLines bool
	Tolerance       *ToleranceConfig
}

// NewConfig creates a Config with continuous lines and exact tolerances.
func NewConfig() *Config {
	return &Config{
		ContinuousLines: true,
		Tolerance:       NewToleranceConfig(),
	}
}

// ConfigFromOptions parses an options map into a Config. The first value of an
// option wins. Supports:
//   - continuousLines: true|false
//   - deltaLine, deltaCurrency, deltaTable, deltaTotalDoc: non-negative decimal
func ConfigFromOptions(options map[string][]string) (*Config, error) {
	cfg := NewConfig()

	if vals := options[OptionContinuousLines]; len(vals) > 0 {
		continuous, err := strconv.ParseBool(strings.TrimSpace(vals[0]))
		if err != nil {
			return nil, fmt.Errorf("invalid %s %q, expected true or false", OptionContinuousLines, vals[0])
		}
		cfg.ContinuousLines = continuous
	}

	deltas := []struct {
		name   string
		target *decimal.Decimal
	}{
		{OptionDeltaLine, &cfg.Tolerance.Line},
		{OptionDeltaCurrency, &cfg.Tolerance.Currency},
		{OptionDeltaTable, &cfg.Tolerance.Table},
		{OptionDeltaTotalDoc, &cfg.Tolerance.TotalDoc},
	}

	for _, delta := range deltas {
		vals := options[delta.name]
		if len(vals) == 0 {
			continue
		}

		d, err := ParseAmount(vals[0])
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", delta.name, err)
		}
		if d.IsNegative() {
			return nil, fmt.Errorf("invalid %s %q, must not be negative", delta.name, vals[0])
		}
		*delta.target = d
	}

	return cfg, nil
}

// Options renders the config back into an options map.
func (c *Config) Options() map[string][]string {
	return map[string][]string{
		OptionContinuousLines: {strconv.FormatBool(c.ContinuousLines)},
		OptionDeltaLine:       {c.Tolerance.Line.String()},
		OptionDeltaCurrency:   {c.Tolerance.Currency.String()},
		OptionDeltaTable:      {c.Tolerance.Table.String()},
		OptionDeltaTotalDoc:   {c.Tolerance.TotalDoc.String()},
	}
}

// contextKey is a private type to avoid key collisions in context.
type contextKey struct{}

// WithContext returns a new context with the Config attached.
func (c *Config) WithContext(ctx context.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, c)
}

// ConfigFromContext retrieves the Config from context.
// Returns a default Config if not found.
func ConfigFromContext(ctx context.Context) *Config {
	if cfg, ok := ctx.Value(contextKey{}).(*Config); ok {
		return cfg
	}
	return NewConfig()
}
