// Package logging builds the structured loggers used by the validator and the CLI.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// DefaultLevel is used when Options.Level is empty.
const DefaultLevel = zapcore.WarnLevel

// Options configures New.
type Options struct {
	// Level is a zap level name such as "debug" or "info".
	Level string
	// JSON selects the JSON encoder instead of the console encoder.
	JSON bool
	// Output receives the log lines. Defaults to os.Stderr.
	Output io.Writer
}

// New creates a logger from the given options.
func New(opts Options) (*zap.Logger, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, err
	}

	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var encoder zapcore.Encoder
	if opts.JSON {
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	} else {
		encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	}

	core := zapcore.NewCore(encoder, zapcore.Lock(zapcore.AddSync(out)), zap.NewAtomicLevelAt(level))
	return zap.New(core), nil
}

// ParseLevel parses a level name. An empty name yields DefaultLevel.
func ParseLevel(name string) (zapcore.Level, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return DefaultLevel, nil
	}

	level, err := zapcore.ParseLevel(name)
	if err != nil {
		return DefaultLevel, fmt.Errorf("invalid log level %q: %w", name, err)
	}
	return level, nil
}
