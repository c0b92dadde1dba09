// Package highlevel drives the single-shot codecs over byte streams: it
// buffers reads until the HTTP parser is satisfied and performs both sides
// of the WebSocket opening handshake.
package highlevel

import (
	"errors"
	"log/slog"

	"github.com/momentics/hioload-codec/control"
	"github.com/momentics/hioload-codec/core/http1"
	"github.com/momentics/hioload-codec/internal/logging"
)

// Version of the hioload-codec library
const Version = "1.0.0"

// ErrClosed is returned by a MessageReader after Close.
var ErrClosed = errors.New("highlevel: reader closed")

// Options tunes the stream helpers.
type Options struct {
	// ReadChunk is how many bytes each Read asks for.
	ReadChunk int
	// Limits bounds accepted messages.
	Limits http1.Limits
	// Subprotocol is offered by clients and selected by servers when the
	// peer offers it. Empty disables negotiation.
	Subprotocol string
	// Logger receives debug records; nil logs nothing.
	Logger *slog.Logger
	// Metrics receives parse and handshake counters; nil records nothing.
	Metrics *control.MetricsRegistry
}

// DefaultOptions returns options built from control.DefaultSettings.
func DefaultOptions() Options {
	return OptionsFromSettings(control.DefaultSettings(), nil, nil)
}

// OptionsFromSettings builds options from typed settings.
func OptionsFromSettings(s control.Settings, log *slog.Logger, metrics *control.MetricsRegistry) Options {
	return Options{
		ReadChunk:   s.ReadChunk,
		Limits:      s.Limits(),
		Subprotocol: s.Subprotocol,
		Logger:      log,
		Metrics:     metrics,
	}
}

func (o Options) normalized() Options {
	if o.ReadChunk <= 0 {
		o.ReadChunk = control.DefaultSettings().ReadChunk
	}
	if o.Logger == nil {
		o.Logger = logging.Nop()
	}
	return o
}
