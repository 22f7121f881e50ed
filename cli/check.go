package cli

import (
	"context"
	stdErrors "errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/alecthomas/kong"
	"go.uber.org/zap"
	"golang.org/x/exp/maps"

	"github.com/robinvdvleuten/saft/ast"
	"github.com/robinvdvleuten/saft/audit"
	"github.com/robinvdvleuten/saft/loader"
	"github.com/robinvdvleuten/saft/output"
	"github.com/robinvdvleuten/saft/telemetry"
)

type CheckCmd struct {
	File     FileOrStdin `help:"Audit file in YAML or JSON (use '-' for stdin, or omit for stdin)." arg:"" optional:""`
	Config   string      `help:"Validator configuration file." short:"c" type:"path"`
	TaxTable string      `help:"XLSX workbook with tax table entries added to the master files." type:"path"`
	TaxSheet string      `help:"Sheet of the tax table workbook (first sheet if empty)."`
	Format   string      `help:"Output format (text, json)." enum:"text,json" default:"text"`
	Strict   bool        `help:"Reject fields unknown to the audit file structure."`
	Watch    bool        `help:"Check again whenever the file changes." short:"w"`

	ContinuousLines string `help:"Require line numbers to run 1..n without gaps (true or false)." placeholder:"BOOL"`
	DeltaLine       string `help:"Tolerance for line tax amounts." placeholder:"AMOUNT"`
	DeltaCurrency   string `help:"Tolerance for foreign currency amounts." placeholder:"AMOUNT"`
	DeltaTable      string `help:"Tolerance for the table debit and credit totals." placeholder:"AMOUNT"`
	DeltaTotalDoc   string `help:"Tolerance for document totals." placeholder:"AMOUNT"`
}

// checkSettings is everything a pass needs besides the audit file.
type checkSettings struct {
	config     *audit.Config
	taxEntries []*ast.TaxTableEntry
	logger     *zap.Logger
}

func (cmd *CheckCmd) Run(ctx *kong.Context, globals *Globals) error {
	if cmd.Watch && cmd.File.IsStdin() {
		return fmt.Errorf("--watch needs an audit file, not stdin")
	}
	if err := cmd.File.EnsureContents(stdin); err != nil {
		return err
	}

	logger, err := globals.Logger(ctx.Stderr)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	settings, err := cmd.settings(logger)
	if err != nil {
		return err
	}

	runCtx := context.Background()

	var collector *telemetry.TimingCollector
	if globals.Telemetry {
		collector = telemetry.NewTimingCollector()
		runCtx = telemetry.WithCollector(runCtx, collector)
	}

	if cmd.Watch {
		runCtx, stop := signal.NotifyContext(runCtx, os.Interrupt)
		defer stop()
		return cmd.watch(runCtx, ctx.Stdout, ctx.Stderr, settings, collector)
	}

	result := cmd.check(runCtx, ctx.Stdout, ctx.Stderr, settings)
	reportTelemetry(ctx.Stderr, collector)

	return result.Err
}

// options merges the configuration file with the flags. Flags win.
func (cmd *CheckCmd) options() (map[string][]string, string, string, error) {
	options := make(map[string][]string)
	taxTable, taxSheet := cmd.TaxTable, cmd.TaxSheet

	if cmd.Config != "" {
		file, err := loader.LoadConfig(cmd.Config)
		if err != nil {
			return nil, "", "", err
		}
		maps.Copy(options, file.Options())

		if taxTable == "" && file.TaxTable != "" {
			taxTable = file.TaxTable
			// Relative to the configuration file.
			if !filepath.IsAbs(taxTable) {
				taxTable = filepath.Join(filepath.Dir(cmd.Config), taxTable)
			}
		}
		if taxSheet == "" {
			taxSheet = file.TaxSheet
		}
	}

	flags := []struct {
		name  string
		value string
	}{
		{audit.OptionContinuousLines, cmd.ContinuousLines},
		{audit.OptionDeltaLine, cmd.DeltaLine},
		{audit.OptionDeltaCurrency, cmd.DeltaCurrency},
		{audit.OptionDeltaTable, cmd.DeltaTable},
		{audit.OptionDeltaTotalDoc, cmd.DeltaTotalDoc},
	}
	for _, f := range flags {
		if f.value != "" {
			options[f.name] = []string{f.value}
		}
	}

	return options, taxTable, taxSheet, nil
}

func (cmd *CheckCmd) settings(logger *zap.Logger) (*checkSettings, error) {
	options, taxTable, taxSheet, err := cmd.options()
	if err != nil {
		return nil, err
	}

	cfg, err := audit.ConfigFromOptions(options)
	if err != nil {
		return nil, err
	}

	s := &checkSettings{config: cfg, logger: logger}
	if taxTable != "" {
		s.taxEntries, err = loader.LoadTaxTable(taxTable, taxSheet)
		if err != nil {
			return nil, err
		}
		logger.Debug("loaded tax table", zap.String("file", taxTable), zap.Int("entries", len(s.taxEntries)))
	}

	return s, nil
}

// check runs one validation pass and prints its report.
func (cmd *CheckCmd) check(ctx context.Context, stdout, stderr io.Writer, s *checkSettings) CommandResult {
	timer := telemetry.StartTimer(ctx, fmt.Sprintf("check %s", filepath.Base(cmd.File.Filename)))
	defer timer.End()

	var opts []loader.Option
	if cmd.Strict {
		opts = append(opts, loader.WithStrict())
	}

	loadTimer := telemetry.StartTimer(ctx, "loader.load")
	file, err := cmd.File.Load(ctx, loader.New(opts...))
	loadTimer.End()
	if err != nil {
		printError(stderr, err.Error())
		return Failure(NewCommandError(1))
	}

	v := audit.New(
		audit.WithConfig(s.config),
		audit.WithLogger(s.logger.With(zap.String("file", cmd.File.Filename))),
		audit.WithTaxEntries(s.taxEntries...),
	)

	err = v.Process(ctx, file)
	var validationErrors *audit.ValidationErrors
	if err != nil && !stdErrors.As(err, &validationErrors) {
		if stdErrors.Is(err, audit.ErrNoDocuments) {
			printError(stderr, err.Error())
			return Failure(NewCommandError(1))
		}
		return Failure(err)
	}

	report := NewReport(cmd.File.GetAbsoluteFilename(), v)
	if cmd.Format == "json" {
		if err := report.WriteJSON(stdout); err != nil {
			return Failure(err)
		}
	} else {
		report.WriteText(stdout, stderr)
	}

	if !report.Valid {
		return Failure(NewCommandError(1))
	}
	return Success()
}

func (cmd *CheckCmd) watch(ctx context.Context, stdout, stderr io.Writer, s *checkSettings, collector *telemetry.TimingCollector) error {
	path := cmd.File.GetAbsoluteFilename()

	watcher, err := newFileWatcher(path, s.logger)
	if err != nil {
		return err
	}

	run := func() {
		if collector != nil {
			collector.Reset()
		}

		result := cmd.check(ctx, stdout, stderr, s)
		var cmdErr *CommandError
		if result.Err != nil && !stdErrors.As(result.Err, &cmdErr) {
			printError(stderr, result.Err.Error())
		}

		reportTelemetry(stderr, collector)
		_, _ = fmt.Fprintln(stdout)
		printInfof(stdout, "Watching %s for changes", pathStyle.Render(path))
	}

	run()
	return watcher.Run(ctx, run)
}

func reportTelemetry(w io.Writer, collector *telemetry.TimingCollector) {
	if collector == nil {
		return
	}
	_, _ = fmt.Fprintln(w)
	collector.Report(w, output.NewStyles(w))
}
