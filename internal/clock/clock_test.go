package clock

import (
	"regexp"
	"testing"
	"time"
)

var layout = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}\.\d{2}:\d{2}:\d{2}\.\d{3}$`)

func TestFormat(t *testing.T) {
	ts := time.Date(2021, time.March, 7, 4, 5, 6, 789_000_000, time.Local)
	got := Format(ts)
	if got != "2021-03-07.04:05:06.789" {
		t.Errorf("Format = %q", got)
	}
	if len(got) != FormattedSize {
		t.Errorf("len = %d", len(got))
	}
}

func TestFormattedNow(t *testing.T) {
	s := FormattedNow()
	if !layout.MatchString(s) {
		t.Errorf("FormattedNow = %q does not match layout", s)
	}
}

func TestRealtimeNow(t *testing.T) {
	got := RealtimeNow()
	want := time.Now().UnixNano()
	if d := want - got; d < 0 || d > int64(time.Second) {
		t.Errorf("realtime %d differs from time.Now %d", got, want)
	}
}

func TestMonotonicNow(t *testing.T) {
	a := MonotonicNow()
	time.Sleep(time.Millisecond)
	b := MonotonicNow()
	if b-a < int64(time.Millisecond) {
		t.Errorf("monotonic advanced %dns across a 1ms sleep", b-a)
	}
}
