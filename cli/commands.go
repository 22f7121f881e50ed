package cli

import (
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/robinvdvleuten/saft/logging"
)

var (
	Version   = ""
	CommitSHA = ""
)

// stdin is read when no audit file is given.
var stdin io.Reader = os.Stdin

// Globals defines global flags available to all commands.
type Globals struct {
	Telemetry bool   `help:"Show timing telemetry for operations."`
	LogLevel  string `help:"Log level (debug, info, warn, error)." default:"warn" placeholder:"LEVEL"`
	LogJSON   bool   `help:"Write logs as JSON." name:"log-json"`
}

// Logger builds the logger configured by the global flags.
func (g *Globals) Logger(w io.Writer) (*zap.Logger, error) {
	return logging.New(logging.Options{
		Level:  g.LogLevel,
		JSON:   g.LogJSON,
		Output: w,
	})
}

type Commands struct {
	Globals

	Check  CheckCmd  `cmd:"" help:"Validate the payments of a SAF-T audit file."`
	Init   InitCmd   `cmd:"" help:"Write a default validator configuration file."`
	Doctor DoctorCmd `cmd:"" help:"Doctor utilities for debugging audit files."`
}
