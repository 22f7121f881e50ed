// Package audit validates the source documents of a SAF-T audit file against the
// business rules a file must satisfy before it is certified.
//
// A pass walks the payments table in file order. Every payment goes through an
// ordered rule set covering its status, customer, lines, tax, totals, dates,
// payment methods and withholding tax. After the last payment the table level
// declarations (number of entries, debit and credit totals) are reconciled with
// the totals folded from the documents.
//
// Rules never stop at the first violation. Everything they find is recorded in a
// Registry, keyed by the entity the violation belongs to, and can be queried per
// entity or for the whole file. Monetary values are compared as decimals within
// the configured tolerances.
//
// Example usage:
//
//	file, err := loader.Load(ctx, "payments.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	v := audit.New(audit.WithConfig(cfg))
//	if err := v.Process(ctx, file); err != nil {
//	    var verr *audit.ValidationErrors
//	    if errors.As(err, &verr) {
//	        for _, e := range verr.Errors {
//	            fmt.Println(e)
//	        }
//	    }
//	}
package audit

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/robinvdvleuten/saft/ast"
	"github.com/robinvdvleuten/saft/telemetry"
)

// Validator runs validation passes over audit files. Every pass starts with a
// fresh registry unless one is supplied with WithRegistry. A Validator keeps the
// registry and state of its last pass; use separate validators to validate
// files concurrently.
type Validator struct {
	config     *Config
	logger     *zap.Logger
	index      *Index
	taxEntries []*ast.TaxTableEntry
	registry   *Registry
	shared     bool
	state      *State
	completed  bool
}

// Option configures a Validator.
type Option func(*Validator)

// WithConfig sets the configuration. Without it the configuration is taken from
// the context passed to Process.
func WithConfig(cfg *Config) Option {
	return func(v *Validator) {
		v.config = cfg
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(v *Validator) {
		v.logger = logger
	}
}

// WithIndex sets the master data index. Without it the index is built from the
// master files of the audit file being processed.
func WithIndex(index *Index) Option {
	return func(v *Validator) {
		v.index = index
	}
}

// WithTaxEntries adds tax table rows to the index built from the master files.
func WithTaxEntries(entries ...*ast.TaxTableEntry) Option {
	return func(v *Validator) {
		v.taxEntries = append(v.taxEntries, entries...)
	}
}

// WithRegistry sets the registry entries are recorded in and keeps it across
// passes. Sharing a registry between passes over the same tree does not
// duplicate entries.
func WithRegistry(registry *Registry) Option {
	return func(v *Validator) {
		v.registry = registry
		v.shared = true
	}
}

// New creates a validator.
func New(opts ...Option) *Validator {
	v := &Validator{
		logger:   zap.NewNop(),
		registry: NewRegistry(),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Process validates the payments of an audit file. It returns ValidationErrors
// when the pass recorded errors; warnings alone never produce an error. Any other
// error means the pass did not complete and the registry is not authoritative.
//
// Cancellation is checked between documents, never while one is validated.
func (v *Validator) Process(ctx context.Context, file *ast.AuditFile) error {
	if !v.shared {
		v.registry = NewRegistry()
	}
	v.completed = false

	table := file.Payments()
	if table == nil {
		return fmt.Errorf("cannot validate: %w", ErrNoDocuments)
	}

	cfg := v.config
	if cfg == nil {
		cfg = ConfigFromContext(ctx)
	}

	index := v.index
	if index == nil {
		index = NewIndex(file.MasterFiles)
		index.AddTaxEntries(v.taxEntries...)
	}

	v.state = NewState(table)
	docs := table.Documents()
	logger := v.logger.With(zap.String("pass", v.registry.ID().String()))
	val := newValidator(cfg, index, v.state, file.Header, table, v.registry)

	processTimer := telemetry.StartTimer(ctx, fmt.Sprintf("audit.process (%d payments)", len(docs)))
	for _, doc := range docs {
		select {
		case <-ctx.Done():
			processTimer.End()
			logger.Warn("validation cancelled", zap.Int("documents", v.state.Entries))
			return ctx.Err()
		default:
		}

		timer := telemetry.StartTimer(ctx, "audit.document")
		valid, delta := val.validateDocument(doc)
		v.state.Apply(delta)
		timer.End()

		logger.Debug("validated document",
			zap.String("ref", doc.Reference()),
			zap.Bool("valid", valid),
			zap.Stringer("delta", delta),
		)
	}

	tableTimer := telemetry.StartTimer(ctx, "audit.table")
	val.validateTable(v.state.Entries)
	tableTimer.End()
	processTimer.End()
	v.completed = true

	errCount, warnCount := v.registry.Len()
	logger.Info("validation finished",
		zap.Int("documents", v.state.Entries),
		zap.Int("errors", errCount),
		zap.Int("warnings", warnCount),
	)

	if !v.registry.HasErrors() {
		return nil
	}

	entries := v.registry.Errors()
	errs := make([]error, len(entries))
	for i, e := range entries {
		errs[i] = e
	}
	return &ValidationErrors{Errors: errs}
}

// Valid reports whether the last pass completed without recording an error.
func (v *Validator) Valid() bool {
	return v.completed && !v.registry.HasErrors()
}

// Registry returns the registry of the validator.
func (v *Validator) Registry() *Registry {
	return v.registry
}

// State returns the running state of the last pass, nil before the first pass.
func (v *Validator) State() *State {
	return v.state
}
