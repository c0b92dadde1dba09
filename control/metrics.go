// control/metrics.go
// Author: momentics <momentics@gmail.com>
//
// Runtime metrics for the stream helpers: named monotonic counters plus
// free-form gauges. Counters are hit on every parse, so each one owns a
// cache line.

package control

import (
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sys/cpu"
)

// Counter names recorded by the stream helpers.
const (
	MetricParseComplete   = "parse.complete"
	MetricParseIncomplete = "parse.incomplete"
	MetricParseMalformed  = "parse.malformed"
	MetricBytesRead       = "bytes.read"
	MetricHandshakeOK     = "handshake.ok"
	MetricHandshakeFailed = "handshake.failed"
)

// Counter is a monotonically increasing metric.
type Counter struct {
	_ cpu.CacheLinePad
	v atomic.Uint64
	_ cpu.CacheLinePad
}

// Add increments the counter by n.
func (c *Counter) Add(n uint64) { c.v.Add(n) }

// Inc increments the counter by one.
func (c *Counter) Inc() { c.v.Add(1) }

// Load returns the current value.
func (c *Counter) Load() uint64 { return c.v.Load() }

// MetricsRegistry holds counters and gauges.
type MetricsRegistry struct {
	mu       sync.RWMutex
	counters map[string]*Counter
	metrics  map[string]any
	updated  time.Time
}

// NewMetricsRegistry creates an empty registry.
func NewMetricsRegistry() *MetricsRegistry {
	return &MetricsRegistry{
		counters: make(map[string]*Counter),
		metrics:  make(map[string]any),
	}
}

// Counter returns the counter called name, creating it on first use.
// A nil registry returns a detached counter so callers need no nil checks.
func (mr *MetricsRegistry) Counter(name string) *Counter {
	if mr == nil {
		return new(Counter)
	}
	mr.mu.RLock()
	c, ok := mr.counters[name]
	mr.mu.RUnlock()
	if ok {
		return c
	}
	mr.mu.Lock()
	defer mr.mu.Unlock()
	if c, ok = mr.counters[name]; !ok {
		c = new(Counter)
		mr.counters[name] = c
	}
	return c
}

// Set sets or updates a gauge.
func (mr *MetricsRegistry) Set(key string, value any) {
	mr.mu.Lock()
	mr.metrics[key] = value
	mr.updated = time.Now()
	mr.mu.Unlock()
}

// GetSnapshot returns gauges and counter values in one map.
func (mr *MetricsRegistry) GetSnapshot() map[string]any {
	mr.mu.RLock()
	defer mr.mu.RUnlock()
	out := make(map[string]any, len(mr.metrics)+len(mr.counters))
	for k, v := range mr.metrics {
		out[k] = v
	}
	for k, c := range mr.counters {
		out[k] = c.Load()
	}
	return out
}

// CounterNames lists registered counters in sorted order.
func (mr *MetricsRegistry) CounterNames() []string {
	mr.mu.RLock()
	names := make([]string, 0, len(mr.counters))
	for k := range mr.counters {
		names = append(names, k)
	}
	mr.mu.RUnlock()
	sort.Strings(names)
	return names
}

// Updated returns when a gauge last changed.
func (mr *MetricsRegistry) Updated() time.Time {
	mr.mu.RLock()
	defer mr.mu.RUnlock()
	return mr.updated
}
