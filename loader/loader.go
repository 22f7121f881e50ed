// Package loader provides functionality for loading SAF-T audit files, validator
// configuration and external tax tables from disk.
//
// Audit files are read from YAML or JSON (JSON being a subset of YAML) with the field
// names of the SAF-T XML schema. Amounts decode into decimals without passing through
// floating point, dates and timestamps into ast.Date.
//
// The loader supports two modes of operation:
//   - Lenient mode: Unknown fields are ignored, so exports carrying extra data load
//   - Strict mode: Unknown fields are reported as errors
//
// Example usage:
//
//	// Load an audit file
//	file, err := loader.New().Load(ctx, "payments.yaml")
//
//	// Reject fields the audit file tree does not know
//	file, err := loader.New(loader.WithStrict()).Load(ctx, "payments.yaml")
package loader

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/robinvdvleuten/saft/ast"
)

// ErrEmptyFile is returned when an audit file holds no document.
var ErrEmptyFile = errors.New("file is empty")

// Loader handles loading and decoding of audit files.
//
// Configure the loader using functional options passed to New:
//
//	loader := New(WithStrict())
type Loader struct {
	// Strict determines whether fields unknown to the audit file tree are rejected.
	Strict bool
}

// Option configures how files are loaded.
type Option func(*Loader)

// WithStrict configures the loader to reject unknown fields.
func WithStrict() Option {
	return func(l *Loader) {
		l.Strict = true
	}
}

// New creates a new Loader with the given options.
func New(opts ...Option) *Loader {
	l := &Loader{
		Strict: false,
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Load is shorthand for New().Load.
func Load(ctx context.Context, filename string) (*ast.AuditFile, error) {
	return New().Load(ctx, filename)
}

// Load reads and decodes an audit file.
func (l *Loader) Load(ctx context.Context, filename string) (*ast.AuditFile, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filename, err)
	}
	return l.LoadBytes(ctx, filename, data)
}

// LoadBytes decodes an audit file from memory. The filename is only used in errors.
func (l *Loader) LoadBytes(ctx context.Context, filename string, data []byte) (*ast.AuditFile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(l.Strict)

	var file ast.AuditFile
	if err := dec.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to decode %s: %w", filename, ErrEmptyFile)
		}
		return nil, fmt.Errorf("failed to decode %s: %w", filename, err)
	}

	return &file, nil
}
