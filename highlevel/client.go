// File: highlevel/client.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Client side of the opening handshake over an established byte stream.

package highlevel

import (
	"bytes"
	"fmt"
	"io"

	"github.com/momentics/hioload-codec/control"
	"github.com/momentics/hioload-codec/core/http1"
	"github.com/momentics/hioload-codec/protocol"
)

// ClientHandshake writes an upgrade request for target on host, offering
// opts.Subprotocol, then reads and validates the server's response.
func ClientHandshake(rw io.ReadWriter, host, target string, opts Options) (*Handshake, error) {
	opts = opts.normalized()
	key, err := protocol.MakeKey()
	if err != nil {
		return nil, err
	}

	req := buildRequest(host, target, key, opts.Subprotocol)
	if _, err := rw.Write(req); err != nil {
		opts.Metrics.Counter(control.MetricHandshakeFailed).Inc()
		return nil, fmt.Errorf("highlevel: write upgrade request: %w", err)
	}

	mr := NewMessageReader(rw, http1.Response, opts)
	defer mr.Close()
	resp, err := mr.Next()
	if err != nil {
		opts.Metrics.Counter(control.MetricHandshakeFailed).Inc()
		return nil, fmt.Errorf("highlevel: read upgrade response: %w", err)
	}
	if err := protocol.ValidateServerHandshake(resp, key[:]); err != nil {
		opts.Metrics.Counter(control.MetricHandshakeFailed).Inc()
		opts.Logger.Debug("upgrade refused", "status", resp.StatusCode, "err", err)
		return nil, fmt.Errorf("highlevel: upgrade refused: %w", err)
	}
	sub := string(resp.SecWebSocketProtocol)
	if sub != "" && sub != opts.Subprotocol {
		opts.Metrics.Counter(control.MetricHandshakeFailed).Inc()
		return nil, fmt.Errorf("highlevel: server selected unoffered subprotocol %q", sub)
	}

	opts.Metrics.Counter(control.MetricHandshakeOK).Inc()
	opts.Logger.Debug("upgrade complete", "target", target, "subprotocol", sub)
	return &Handshake{
		Response:    resp,
		Key:         key,
		Subprotocol: sub,
		Buffered:    bytes.Clone(mr.Buffered()),
	}, nil
}

// buildRequest sizes the request with a measuring pass, then fills it.
func buildRequest(host, target string, key protocol.Key, subprotocol string) []byte {
	write := func(dst []byte) int {
		n := http1.WriteRequestLine(dst, http1.MethodGet, target)
		n += http1.WriteHeader(tail(dst, n), "Host", host)
		n += protocol.WriteClientHandshakeHeadersWithKey(tail(dst, n), key, subprotocol)
		return n + http1.WriteHeaderEnd(tail(dst, n))
	}
	buf := make([]byte, write(nil))
	write(buf)
	return buf
}

func tail(b []byte, n int) []byte {
	if n > len(b) {
		return nil
	}
	return b[n:]
}
