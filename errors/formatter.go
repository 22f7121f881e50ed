// Package errors provides error formatting infrastructure for audit validation errors.
// It separates error formatting from domain logic, allowing errors to be rendered in
// multiple formats (text, JSON) for different consumers (CLI, CI pipelines, other tools).
//
// The package defines a Formatter interface and provides two implementations:
//   - TextFormatter: Formats errors for command-line output with the offending document
//   - JSONFormatter: Formats errors as structured JSON for machine consumers
//
// Validation entries remain in the audit package, while this package handles the
// presentation layer.
package errors

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/mattn/go-runewidth"

	"github.com/robinvdvleuten/saft/ast"
	"github.com/robinvdvleuten/saft/audit"
	"github.com/robinvdvleuten/saft/output"
)

// Formatter formats errors for output in different formats.
type Formatter interface {
	// Format formats a single error.
	Format(err error) string

	// FormatAll formats multiple errors.
	FormatAll(errs []error) string
}

// TextFormatter formats errors for command-line output.
type TextFormatter struct {
	styles *output.Styles
}

// TextFormatterOption is an option for configuring TextFormatter.
type TextFormatterOption func(*TextFormatter)

// WithStyles enables styled output. Without styles the output is plain text.
func WithStyles(styles *output.Styles) TextFormatterOption {
	return func(tf *TextFormatter) {
		tf.styles = styles
	}
}

// NewTextFormatter creates a new text formatter.
func NewTextFormatter(opts ...TextFormatterOption) *TextFormatter {
	tf := &TextFormatter{}
	for _, opt := range opts {
		opt(tf)
	}
	return tf
}

// Format formats a single error. Validation entries are followed by a summary of
// the document they belong to.
func (tf *TextFormatter) Format(err error) string {
	if e, ok := err.(*audit.Entry); ok {
		return tf.formatEntry(e)
	}

	if e, ok := err.(*audit.ValidationErrors); ok {
		return tf.FormatAll(e.Errors)
	}

	return err.Error()
}

// FormatAll formats multiple errors, separating them with blank lines.
func (tf *TextFormatter) FormatAll(errs []error) string {
	if len(errs) == 0 {
		return ""
	}

	var buf bytes.Buffer
	for i, err := range errs {
		buf.WriteString(tf.Format(err))

		// Add blank line between errors (but not after the last one)
		if i < len(errs)-1 {
			buf.WriteString("\n\n")
		}
	}

	return buf.String()
}

// FormatEntries formats validation entries in the order given.
func (tf *TextFormatter) FormatEntries(entries []*audit.Entry) string {
	errs := make([]error, len(entries))
	for i, e := range entries {
		errs[i] = e
	}
	return tf.FormatAll(errs)
}

func (tf *TextFormatter) formatEntry(e *audit.Entry) string {
	var buf bytes.Buffer

	if e.IsWarning() {
		buf.WriteString(tf.severity("warning: ", true))
	}
	buf.WriteString(e.Error())
	buf.WriteString(" ")
	buf.WriteString(tf.code("[" + string(e.Code) + "]"))

	if e.Document == nil {
		return buf.String()
	}

	buf.WriteString("\n\n")
	tf.writeDocument(&buf, e.Document)

	return buf.String()
}

// writeDocument writes an aligned summary of a document, one field per line.
//
//	   document    RG 2024/15
//	   type        RG
//	   date        2024-03-01
//	   customer    C001
//	   gross       123.00
func (tf *TextFormatter) writeDocument(buf *bytes.Buffer, doc ast.Document) {
	fields := documentFields(doc)

	width := 0
	for _, f := range fields {
		width = max(width, runewidth.StringWidth(f[0]))
	}

	for _, f := range fields {
		buf.WriteString("   ")
		buf.WriteString(runewidth.FillRight(f[0], width+4))
		buf.WriteString(tf.value(f[0], f[1]))
		buf.WriteByte('\n')
	}
}

func documentFields(doc ast.Document) [][2]string {
	ref := doc.Reference()
	if ref == "" {
		ref = "(no reference)"
	}

	fields := [][2]string{{"document", ref}}
	if t := doc.DocumentType(); t != "" {
		fields = append(fields, [2]string{"type", t})
	}
	if date := doc.TransactionDay(); date != nil {
		fields = append(fields, [2]string{"date", date.String()})
	}
	if id := doc.CustomerRef(); id != "" {
		fields = append(fields, [2]string{"customer", id})
	}
	if holder, ok := doc.(ast.TotalsHolder); ok {
		if totals := holder.Totals(); totals != nil && totals.GrossTotal != nil {
			fields = append(fields, [2]string{"gross", totals.GrossTotal.StringFixed(audit.CurrencyPlaces)})
		}
	}

	return fields
}

func (tf *TextFormatter) severity(text string, warning bool) string {
	if tf.styles == nil {
		return text
	}
	return tf.styles.Severity(text, warning)
}

func (tf *TextFormatter) code(text string) string {
	if tf.styles == nil {
		return text
	}
	return tf.styles.Code(text)
}

func (tf *TextFormatter) value(label, text string) string {
	if tf.styles == nil {
		return text
	}
	switch label {
	case "document":
		return tf.styles.Document(text)
	case "gross":
		return tf.styles.Amount(text)
	default:
		return text
	}
}

// JSONFormatter formats errors as JSON.
type JSONFormatter struct{}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// ErrorJSON represents an error in JSON format.
type ErrorJSON struct {
	Type     string         `json:"type"`
	Message  string         `json:"message"`
	Code     string         `json:"code,omitempty"`
	Kind     string         `json:"kind,omitempty"`
	Severity string         `json:"severity,omitempty"`
	Document string         `json:"document,omitempty"`
	Entity   string         `json:"entity,omitempty"`
	Details  map[string]any `json:"details,omitempty"`
}

// Format formats a single error as JSON.
func (jf *JSONFormatter) Format(err error) string {
	errJSON := jf.toJSON(err)
	data, _ := json.Marshal(errJSON)
	return string(data)
}

// FormatAll formats multiple errors as a JSON array.
func (jf *JSONFormatter) FormatAll(errs []error) string {
	jsonErrors := jf.FormatAllToSlice(errs)
	data, _ := json.MarshalIndent(jsonErrors, "", "  ")
	return string(data)
}

// FormatAllToSlice returns errors as a slice of ErrorJSON structs.
func (jf *JSONFormatter) FormatAllToSlice(errs []error) []ErrorJSON {
	result := make([]ErrorJSON, 0, len(errs))
	for _, err := range errs {
		result = append(result, jf.toJSON(err))
	}
	return result
}

// FormatEntriesToSlice returns validation entries as a slice of ErrorJSON structs.
func (jf *JSONFormatter) FormatEntriesToSlice(entries []*audit.Entry) []ErrorJSON {
	result := make([]ErrorJSON, 0, len(entries))
	for _, e := range entries {
		result = append(result, jf.toJSON(e))
	}
	return result
}

// toJSON converts an error to ErrorJSON.
func (jf *JSONFormatter) toJSON(err error) ErrorJSON {
	errJSON := ErrorJSON{
		Type:    fmt.Sprintf("%T", err),
		Message: err.Error(),
	}

	e, ok := err.(*audit.Entry)
	if !ok {
		return errJSON
	}

	errJSON.Message = e.Message
	errJSON.Code = string(e.Code)
	errJSON.Kind = e.Kind.String()
	errJSON.Severity = e.Severity.String()
	if e.Entity != nil {
		errJSON.Entity = e.Entity.Describe()
	}

	if doc := e.GetDocument(); doc != nil {
		errJSON.Document = doc.Reference()
		errJSON.Details = make(map[string]any)
		if date := doc.TransactionDay(); date != nil {
			errJSON.Details["date"] = date.String()
		}
		if id := doc.CustomerRef(); id != "" {
			errJSON.Details["customer"] = id
		}
	}

	return errJSON
}
