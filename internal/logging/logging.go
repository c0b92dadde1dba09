// File: internal/logging/logging.go
// Package logging provides the leveled line logger used by the stream
// helpers and the CLI, built as a log/slog handler.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Each record is one line:
//
//	[id][YYYY-MM-DD.HH:MM:SS.mmm][level]: message key=value ...

package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/momentics/hioload-codec/internal/clock"
)

// Level is a logging threshold. A record is written when its level is less
// than or equal to the logger threshold; Off writes nothing.
type Level int

const (
	Off Level = iota
	Fatal
	Error
	Warn
	Info
	Debug
	Trace
)

var levelNames = [...]string{"off", "fatal", "error", "warn", "info", "debug", "trace"}

func (l Level) String() string {
	if l < Off || l > Trace {
		return "level(" + strconv.Itoa(int(l)) + ")"
	}
	return levelNames[l]
}

// ParseLevel maps a lower-case level name to its Level.
func ParseLevel(s string) (Level, bool) {
	for i, name := range levelNames {
		if s == name {
			return Level(i), true
		}
	}
	return Off, false
}

// slog levels for Fatal and Trace, which slog does not define.
const (
	LevelFatal = slog.LevelError + 4
	LevelTrace = slog.LevelDebug - 4
)

// SlogLevel maps l onto the slog scale.
func (l Level) SlogLevel() slog.Level {
	switch l {
	case Fatal:
		return LevelFatal
	case Error:
		return slog.LevelError
	case Warn:
		return slog.LevelWarn
	case Info:
		return slog.LevelInfo
	case Debug:
		return slog.LevelDebug
	default:
		return LevelTrace
	}
}

func fromSlog(l slog.Level) Level {
	switch {
	case l >= LevelFatal:
		return Fatal
	case l >= slog.LevelError:
		return Error
	case l >= slog.LevelWarn:
		return Warn
	case l >= slog.LevelInfo:
		return Info
	case l >= slog.LevelDebug:
		return Debug
	default:
		return Trace
	}
}

// Discard is a sink that drops everything.
var Discard io.Writer = io.Discard

// Stderr returns the standard error sink.
func Stderr() io.Writer { return os.Stderr }

// New returns a logger tagged with id writing records at or below threshold to sink.
func New(id string, sink io.Writer, threshold Level) *slog.Logger {
	return slog.New(&lineHandler{
		id:        id,
		sink:      sink,
		mu:        new(sync.Mutex),
		threshold: threshold,
	})
}

// Nop returns a logger that writes nothing.
func Nop() *slog.Logger { return New("", Discard, Off) }

// LogTrace logs at trace level.
func LogTrace(l *slog.Logger, msg string, args ...any) {
	l.Log(context.Background(), LevelTrace, msg, args...)
}

// LogFatal logs at fatal level. It does not exit.
func LogFatal(l *slog.Logger, msg string, args ...any) {
	l.Log(context.Background(), LevelFatal, msg, args...)
}

type lineHandler struct {
	id        string
	sink      io.Writer
	mu        *sync.Mutex
	threshold Level
	prefix    string
	attrs     []byte
}

func (h *lineHandler) Enabled(_ context.Context, l slog.Level) bool {
	return h.threshold != Off && fromSlog(l) <= h.threshold
}

func (h *lineHandler) Handle(_ context.Context, r slog.Record) error {
	t := r.Time
	if t.IsZero() {
		t = time.Unix(0, clock.RealtimeNow())
	}
	buf := make([]byte, 0, 128)
	buf = append(buf, '[')
	buf = append(buf, h.id...)
	buf = append(buf, "]["...)
	buf = clock.AppendFormat(buf, t)
	buf = append(buf, "]["...)
	buf = append(buf, fromSlog(r.Level).String()...)
	buf = append(buf, "]: "...)
	buf = append(buf, r.Message...)
	buf = append(buf, h.attrs...)
	r.Attrs(func(a slog.Attr) bool {
		buf = appendAttr(buf, h.prefix, a)
		return true
	})
	buf = append(buf, '\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.sink.Write(buf)
	return err
}

func (h *lineHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	h2 := *h
	h2.attrs = append([]byte(nil), h.attrs...)
	for _, a := range attrs {
		h2.attrs = appendAttr(h2.attrs, h.prefix, a)
	}
	return &h2
}

func (h *lineHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	h2 := *h
	h2.prefix = h.prefix + name + "."
	return &h2
}

func appendAttr(buf []byte, prefix string, a slog.Attr) []byte {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return buf
	}
	if a.Value.Kind() == slog.KindGroup {
		p := prefix
		if a.Key != "" {
			p += a.Key + "."
		}
		for _, ga := range a.Value.Group() {
			buf = appendAttr(buf, p, ga)
		}
		return buf
	}
	buf = append(buf, ' ')
	buf = append(buf, prefix...)
	buf = append(buf, a.Key...)
	buf = append(buf, '=')
	s := a.Value.String()
	if needsQuote(s) {
		return strconv.AppendQuote(buf, s)
	}
	return append(buf, s...)
}

func needsQuote(s string) bool {
	if s == "" {
		return true
	}
	for i := 0; i < len(s); i++ {
		if c := s[i]; c <= ' ' || c == '"' || c == '=' || c >= 0x7f {
			return true
		}
	}
	return false
}
