package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/robinvdvleuten/saft/audit"
	"github.com/robinvdvleuten/saft/errors"
	"github.com/robinvdvleuten/saft/output"
)

// Report is the outcome of one validation pass as printed by the check command.
type Report struct {
	Pass      string             `json:"pass"`
	File      string             `json:"file"`
	Valid     bool               `json:"valid"`
	Documents int                `json:"documents"`
	Errors    []errors.ErrorJSON `json:"errors"`
	Warnings  []errors.ErrorJSON `json:"warnings"`
	Codes     map[string]int     `json:"codes,omitempty"`

	entries []*audit.Entry
}

// NewReport collects the registry of a finished pass.
func NewReport(filename string, v *audit.Validator) *Report {
	registry := v.Registry()
	jf := errors.NewJSONFormatter()

	r := &Report{
		Pass:     registry.ID().String(),
		File:     filename,
		Valid:    v.Valid(),
		Errors:   jf.FormatEntriesToSlice(registry.Errors()),
		Warnings: jf.FormatEntriesToSlice(registry.Warnings()),
		entries:  registry.Entries(),
	}
	if state := v.State(); state != nil {
		r.Documents = state.Entries
	}

	for _, e := range r.entries {
		if r.Codes == nil {
			r.Codes = make(map[string]int)
		}
		r.Codes[string(e.Code)]++
	}

	return r
}

// WriteJSON writes the report as an indented JSON object.
func (r *Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// WriteText writes the entries and a summary to stderr, and the success line to
// stdout when the pass found no errors.
func (r *Report) WriteText(stdout, stderr io.Writer) {
	if len(r.entries) > 0 {
		tf := errors.NewTextFormatter(errors.WithStyles(output.NewStyles(stderr)))
		_, _ = fmt.Fprintln(stderr, tf.FormatEntries(r.entries))
		_, _ = fmt.Fprintln(stderr)
		_, _ = fmt.Fprint(stderr, r.summary())
		_, _ = fmt.Fprintln(stderr)
	}

	warnings := len(r.Warnings)
	if !r.Valid {
		printError(stderr, fmt.Sprintf("%d validation error(s) found", len(r.Errors)))
		return
	}

	message := fmt.Sprintf("Check passed (%d documents)", r.Documents)
	if warnings > 0 {
		printWarning(stderr, fmt.Sprintf("%d warning(s)", warnings))
	}
	printSuccess(stdout, message)
}

// summary renders the number of entries per code, one code per line.
func (r *Report) summary() string {
	codes := maps.Keys(r.Codes)
	slices.Sort(codes)

	width := 0
	for _, code := range codes {
		width = max(width, runewidth.StringWidth(code))
	}

	var buf strings.Builder
	for _, code := range codes {
		fmt.Fprintf(&buf, "   %s %d\n", runewidth.FillRight(code, width+2), r.Codes[code])
	}
	return buf.String()
}
