package control_test

import (
	"sync"
	"testing"

	"github.com/momentics/hioload-codec/control"
	"github.com/momentics/hioload-codec/internal/logging"
)

func TestSettingsFromEnv(t *testing.T) {
	t.Setenv("TESTCODEC_MAX_HEADER_BYTES", "1024")
	t.Setenv("TESTCODEC_MAX_CONTENT_LENGTH", "99")
	t.Setenv("TESTCODEC_LOG_LEVEL", "debug")
	t.Setenv("TESTCODEC_SUBPROTOCOL", "chat")

	s, err := control.SettingsFromEnv("TESTCODEC")
	if err != nil {
		t.Fatal(err)
	}
	if s.MaxHeaderBytes != 1024 || s.MaxContentLength != 99 || s.LogLevel != logging.Debug || s.Subprotocol != "chat" {
		t.Errorf("settings = %+v", s)
	}
	if s.ReadChunk != control.DefaultSettings().ReadChunk {
		t.Errorf("unset read chunk = %d, want default", s.ReadChunk)
	}
	l := s.Limits()
	if l.MaxHeaderBytes != 1024 || l.MaxContentLength != 99 {
		t.Errorf("limits = %+v", l)
	}
}

func TestSettingsFromEnvRejectsGarbage(t *testing.T) {
	t.Setenv("TESTCODEC_LOG_LEVEL", "loud")
	if _, err := control.SettingsFromEnv("TESTCODEC"); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestSettingsValidate(t *testing.T) {
	_, err := control.SettingsFromMap(map[string]any{control.KeyReadChunk: 0})
	if err == nil {
		t.Error("zero read chunk accepted")
	}
	_, err = control.SettingsFromMap(map[string]any{control.KeyMaxContentLength: -1})
	if err == nil {
		t.Error("negative content length accepted")
	}
}

func TestWatchReload(t *testing.T) {
	cs := control.NewConfigStore(control.DefaultSettings().Map())
	var got []control.Settings
	var errs []error
	control.Watch(cs, func(s control.Settings) { got = append(got, s) }, func(err error) { errs = append(errs, err) })

	cs.SetConfig(map[string]any{control.KeyReadChunk: 512})
	cs.SetConfig(map[string]any{control.KeyReadChunk: "x"})
	if len(got) != 1 || got[0].ReadChunk != 512 {
		t.Errorf("reloads = %+v", got)
	}
	if len(errs) != 1 {
		t.Errorf("errors = %v", errs)
	}
	if v, _ := cs.Get(control.KeyReadChunk); v != "x" {
		t.Errorf("stored value = %v", v)
	}
}

func TestSettingsOfStore(t *testing.T) {
	s := control.DefaultSettings()
	s.Subprotocol = "superchat"
	got, err := control.SettingsOf(control.NewConfigStore(s.Map()))
	if err != nil || got != s {
		t.Errorf("got %+v, %v; want %+v", got, err, s)
	}
}

func TestCountersConcurrent(t *testing.T) {
	mr := control.NewMetricsRegistry()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				mr.Counter(control.MetricParseComplete).Inc()
			}
		}()
	}
	wg.Wait()
	if v := mr.Counter(control.MetricParseComplete).Load(); v != 8000 {
		t.Errorf("counter = %d, want 8000", v)
	}
	mr.Set("peers", 2)
	snap := mr.GetSnapshot()
	if snap[control.MetricParseComplete] != uint64(8000) || snap["peers"] != 2 {
		t.Errorf("snapshot = %v", snap)
	}
	if names := mr.CounterNames(); len(names) != 1 || names[0] != control.MetricParseComplete {
		t.Errorf("names = %v", names)
	}
}

func TestNilRegistryCounter(t *testing.T) {
	var mr *control.MetricsRegistry
	mr.Counter("x").Inc()
}

func TestDebugProbes(t *testing.T) {
	dp := control.NewDebugProbes()
	mr := control.NewMetricsRegistry()
	mr.Counter(control.MetricHandshakeOK).Add(3)
	control.RegisterMetricsProbe(dp, mr)
	control.RegisterPlatformProbes(dp)

	state := dp.DumpState()
	m, ok := state["metrics"].(map[string]any)
	if !ok || m[control.MetricHandshakeOK] != uint64(3) {
		t.Errorf("metrics probe = %v", state["metrics"])
	}
	if n, ok := state["platform.cpus"].(int); !ok || n < 1 {
		t.Errorf("cpus probe = %v", state["platform.cpus"])
	}
	if s, ok := state["clock.realtime"].(string); !ok || len(s) != 23 {
		t.Errorf("clock probe = %v", state["clock.realtime"])
	}
}
