package shell

import (
	"slices"
	"strings"
	"sync"
)

// CounterCollector is an in-memory ingest.MetricsCollector. It exists for the
// batch CLI's end-of-run summary and for tests; a long-running service would
// adapt a real metrics backend behind the same interface instead.
// Safe for concurrent use.
type CounterCollector struct {
	mu     sync.Mutex
	counts map[string]uint64
}

// NewCounterCollector creates an empty collector.
func NewCounterCollector() *CounterCollector {
	return &CounterCollector{counts: make(map[string]uint64)}
}

// IncrementCounter adds 1 to the counter identified by metric and labels.
func (c *CounterCollector) IncrementCounter(metric string, labels map[string]string) {
	key := counterKey(metric, labels)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.counts[key]++
}

// Count returns the current value of the counter identified by metric and labels.
func (c *CounterCollector) Count(metric string, labels map[string]string) uint64 {
	key := counterKey(metric, labels)

	c.mu.Lock()
	defer c.mu.Unlock()

	return c.counts[key]
}

// counterKey builds a stable identity from the metric name and sorted labels.
func counterKey(metric string, labels map[string]string) string {
	if len(labels) == 0 {
		return metric
	}

	names := make([]string, 0, len(labels))
	for name := range labels {
		names = append(names, name)
	}
	slices.Sort(names)

	var key strings.Builder
	key.WriteString(metric)
	for _, name := range names {
		key.WriteByte('|')
		key.WriteString(name)
		key.WriteByte('=')
		key.WriteString(labels[name])
	}

	return key.String()
}
