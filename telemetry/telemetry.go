// Package telemetry provides hierarchical timing collection for report
// computations. A Collector travels through context so instrumentation stays
// out of function signatures; when no collector is attached, timers are
// no-ops with zero overhead.
package telemetry

import (
	"context"
	"io"
)

type contextKey struct{}

// Collector accumulates timing data for operations.
type Collector interface {
	// Start begins timing an operation. End the returned Timer when the
	// operation completes.
	Start(name string) Timer

	// Report writes the collected timings.
	Report(w io.Writer)
}

// Timer tracks one operation, with optional nested child operations.
type Timer interface {
	End()
	Child(name string) Timer
}

// WithCollector attaches a collector to the context.
func WithCollector(ctx context.Context, c Collector) context.Context {
	return context.WithValue(ctx, contextKey{}, c)
}

// FromContext returns the context's collector, or a no-op collector when
// none is attached.
func FromContext(ctx context.Context) Collector {
	if c, ok := ctx.Value(contextKey{}).(Collector); ok {
		return c
	}
	return noopCollector{}
}

type noopCollector struct{}

func (noopCollector) Start(string) Timer { return noopTimer{} }
func (noopCollector) Report(io.Writer)   {}

type noopTimer struct{}

func (noopTimer) End()               {}
func (noopTimer) Child(string) Timer { return noopTimer{} }
