package telemetry

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// TimingCollector records operations as a tree of timers and reports them as
// a nested duration listing.
type TimingCollector struct {
	mu      sync.Mutex
	roots   []*span
	current *span
}

type span struct {
	name     string
	start    time.Time
	end      time.Time
	parent   *span
	children []*span
}

// NewTimingCollector creates an empty timing collector.
func NewTimingCollector() *TimingCollector {
	return &TimingCollector{}
}

// Start begins timing an operation, nested under the currently running one.
func (c *TimingCollector) Start(name string) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := &span{name: name, start: time.Now(), parent: c.current}
	if c.current == nil {
		c.roots = append(c.roots, s)
	} else {
		c.current.children = append(c.current.children, s)
	}
	c.current = s

	return &timingTimer{collector: c, span: s}
}

// Report writes the recorded timing tree.
func (c *TimingCollector) Report(w io.Writer) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, root := range c.roots {
		writeSpan(w, root, 0)
	}
}

func writeSpan(w io.Writer, s *span, depth int) {
	end := s.end
	if end.IsZero() {
		end = time.Now()
	}
	_, _ = fmt.Fprintf(w, "%*s%s: %s\n", depth*2, "", s.name, formatDuration(end.Sub(s.start)))
	for _, child := range s.children {
		writeSpan(w, child, depth+1)
	}
}

func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%.0fms", float64(d)/float64(time.Millisecond))
	}
	return fmt.Sprintf("%.2fs", float64(d)/float64(time.Second))
}

type timingTimer struct {
	collector *TimingCollector
	span      *span
}

func (t *timingTimer) End() {
	t.collector.mu.Lock()
	defer t.collector.mu.Unlock()

	t.span.end = time.Now()
	if t.collector.current == t.span {
		t.collector.current = t.span.parent
	}
}

func (t *timingTimer) Child(name string) Timer {
	t.collector.mu.Lock()
	defer t.collector.mu.Unlock()

	s := &span{name: name, start: time.Now(), parent: t.span}
	t.span.children = append(t.span.children, s)

	return &timingTimer{collector: t.collector, span: s}
}
