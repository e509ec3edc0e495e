package telemetry

import (
	"context"
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestFromContextDefaultsToNoop(t *testing.T) {
	c := FromContext(context.Background())

	timer := c.Start("anything")
	timer.Child("nested").End()
	timer.End()

	var b strings.Builder
	c.Report(&b)
	assert.Equal(t, "", b.String())
}

func TestWithCollectorRoundTrip(t *testing.T) {
	collector := NewTimingCollector()
	ctx := WithCollector(context.Background(), collector)
	assert.Equal[Collector](t, collector, FromContext(ctx))
}

func TestTimingCollectorReport(t *testing.T) {
	collector := NewTimingCollector()

	load := collector.Start("load")
	prices := load.Child("prices")
	prices.End()
	transactions := load.Child("transactions")
	transactions.End()
	load.End()

	report := collector.Start("report")
	report.End()

	var b strings.Builder
	collector.Report(&b)
	out := b.String()

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Equal(t, 4, len(lines))
	assert.True(t, strings.HasPrefix(lines[0], "load:"))
	assert.True(t, strings.HasPrefix(lines[1], "  prices:"))
	assert.True(t, strings.HasPrefix(lines[2], "  transactions:"))
	assert.True(t, strings.HasPrefix(lines[3], "report:"))
}

func TestNestedStartFollowsCurrentSpan(t *testing.T) {
	collector := NewTimingCollector()

	outer := collector.Start("outer")
	inner := collector.Start("inner")
	inner.End()
	outer.End()

	var b strings.Builder
	collector.Report(&b)
	lines := strings.Split(strings.TrimRight(b.String(), "\n"), "\n")

	assert.Equal(t, 2, len(lines))
	assert.True(t, strings.HasPrefix(lines[0], "outer:"))
	assert.True(t, strings.HasPrefix(lines[1], "  inner:"))
}
