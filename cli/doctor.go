package cli

import (
	"context"
	"fmt"

	"github.com/alecthomas/kong"
	"github.com/alecthomas/repr"

	"github.com/robinvdvleuten/saft/loader"
)

// DoctorCmd provides doctor utilities for debugging audit files.
type DoctorCmd struct {
	Dump DumpCmd `cmd:"" help:"Show the decoded tree of an audit file."`
}

// DumpCmd prints the audit file as the validator sees it.
type DumpCmd struct {
	File   FileOrStdin `help:"Audit file in YAML or JSON (use '-' for stdin, or omit for stdin)." arg:"" optional:""`
	Strict bool        `help:"Reject fields unknown to the audit file structure."`
}

// Run executes the dump command.
func (cmd *DumpCmd) Run(ctx *kong.Context) error {
	if err := cmd.File.EnsureContents(stdin); err != nil {
		return err
	}

	var opts []loader.Option
	if cmd.Strict {
		opts = append(opts, loader.WithStrict())
	}

	file, err := cmd.File.Load(context.Background(), loader.New(opts...))
	if err != nil {
		return err
	}

	// OmitZero would call IsZero on nil amounts through their value receiver.
	_, _ = fmt.Fprintln(ctx.Stdout, repr.String(file, repr.Indent("  "), repr.OmitZero(false), repr.OmitEmpty(true)))
	return nil
}
