// control/debug.go
// Author: momentics <momentics@gmail.com>
//
// Named debug probes sampled on demand, e.g. by `wirecheck -stats`.

package control

import (
	"runtime"
	"sort"
	"sync"

	"github.com/momentics/hioload-codec/internal/clock"
)

// DebugProbes maps probe names to sampling functions.
type DebugProbes struct {
	mu     sync.RWMutex
	probes map[string]func() any
}

// NewDebugProbes returns an empty probe set.
func NewDebugProbes() *DebugProbes {
	return &DebugProbes{probes: map[string]func() any{}}
}

// RegisterProbe adds or replaces the probe called name.
func (dp *DebugProbes) RegisterProbe(name string, fn func() any) {
	dp.mu.Lock()
	dp.probes[name] = fn
	dp.mu.Unlock()
}

// Names lists registered probes in sorted order.
func (dp *DebugProbes) Names() []string {
	dp.mu.RLock()
	names := make([]string, 0, len(dp.probes))
	for name := range dp.probes {
		names = append(names, name)
	}
	dp.mu.RUnlock()
	sort.Strings(names)
	return names
}

// DumpState samples every probe. Probes run outside the lock, so a probe
// may itself register probes.
func (dp *DebugProbes) DumpState() map[string]any {
	dp.mu.RLock()
	fns := make(map[string]func() any, len(dp.probes))
	for name, fn := range dp.probes {
		fns[name] = fn
	}
	dp.mu.RUnlock()

	out := make(map[string]any, len(fns))
	for name, fn := range fns {
		out[name] = fn()
	}
	return out
}

// RegisterMetricsProbe exposes a snapshot of mr under "metrics".
func RegisterMetricsProbe(dp *DebugProbes, mr *MetricsRegistry) {
	dp.RegisterProbe("metrics", func() any { return mr.GetSnapshot() })
}

// RegisterPlatformProbes exposes CPU count and the process clocks.
func RegisterPlatformProbes(dp *DebugProbes) {
	dp.RegisterProbe("platform.cpus", func() any { return runtime.NumCPU() })
	dp.RegisterProbe("clock.realtime", func() any { return clock.FormattedNow() })
	dp.RegisterProbe("clock.monotonic_ns", func() any { return clock.MonotonicNow() })
}
