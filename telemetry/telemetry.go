// Package telemetry measures how long the stages of a check take.
//
// A Collector travels on the context, so the loader and the validator can time
// their work without taking it as a parameter. Timers started while another
// timer is running are nested under it, and the collector prints the result as
// a tree once the check is done:
//
//	collector := telemetry.NewTimingCollector()
//	ctx := telemetry.WithCollector(context.Background(), collector)
//
//	timer := telemetry.StartTimer(ctx, "check payments.yaml")
//	file, err := loader.Load(ctx, "payments.yaml") // starts "loader.load"
//	...
//	timer.End()
//
//	collector.Report(os.Stderr, nil)
//
// Timers with the same name under the same parent are printed as one line with
// a count, e.g. "audit.document ×2000".
package telemetry

import (
	"context"
	"io"

	"github.com/robinvdvleuten/saft/output"
)

type collectorKey struct{}

// Collector hands out timers and prints what they recorded.
type Collector interface {
	// Start opens a timer named name under the timer that is running.
	Start(name string) Timer

	// Report prints the recorded timings. styles may be nil for plain output.
	Report(w io.Writer, styles *output.Styles)
}

// Timer is an open measurement.
type Timer interface {
	End()
}

// WithCollector returns a context carrying collector.
func WithCollector(ctx context.Context, collector Collector) context.Context {
	return context.WithValue(ctx, collectorKey{}, collector)
}

// FromContext returns the collector carried by ctx, or one that records nothing.
func FromContext(ctx context.Context) Collector {
	if collector, ok := ctx.Value(collectorKey{}).(Collector); ok {
		return collector
	}
	return discard{}
}

// StartTimer starts a timer on the collector carried by ctx.
func StartTimer(ctx context.Context, name string) Timer {
	return FromContext(ctx).Start(name)
}

// discard is used when telemetry is off.
type discard struct{}

func (discard) Start(string) Timer { return discard{} }

func (discard) End() {}

func (discard) Report(io.Writer, *output.Styles) {}
