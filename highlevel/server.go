// File: highlevel/server.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Server side of the opening handshake over an established byte stream.

package highlevel

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/momentics/hioload-codec/control"
	"github.com/momentics/hioload-codec/core/http1"
	"github.com/momentics/hioload-codec/protocol"
)

// Handshake is the outcome of a completed opening handshake.
type Handshake struct {
	// Request is the client's upgrade request (server side only).
	Request *http1.Message
	// Response is the server's 101 response (client side only).
	Response *http1.Message
	// Key is the Sec-WebSocket-Key the handshake was made with.
	Key protocol.Key
	// Subprotocol is the negotiated subprotocol, or "".
	Subprotocol string
	// Buffered holds bytes read past the handshake: the start of the frame stream.
	Buffered []byte
}

// AcceptHandshake reads one upgrade request from rw, validates it and writes
// the 101 response. A request that is malformed or not a valid upgrade is
// answered with 400 Bad Request and an error.
func AcceptHandshake(rw io.ReadWriter, opts Options) (*Handshake, error) {
	opts = opts.normalized()
	mr := NewMessageReader(rw, http1.Request, opts)
	defer mr.Close()

	req, err := mr.Next()
	if err != nil {
		opts.Metrics.Counter(control.MetricHandshakeFailed).Inc()
		if !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
			writeReject(rw)
		}
		return nil, fmt.Errorf("highlevel: read upgrade request: %w", err)
	}
	if err := protocol.ValidateClientHandshake(req); err != nil {
		opts.Metrics.Counter(control.MetricHandshakeFailed).Inc()
		opts.Logger.Debug("upgrade rejected", "target", string(req.RequestTarget), "err", err)
		writeReject(rw)
		return nil, fmt.Errorf("highlevel: reject upgrade: %w", err)
	}

	hs := &Handshake{
		Request:  req,
		Buffered: bytes.Clone(mr.Buffered()),
	}
	copy(hs.Key[:], req.SecWebSocketKey)
	if opts.Subprotocol != "" && offersProtocol(req.SecWebSocketProtocol, opts.Subprotocol) {
		hs.Subprotocol = opts.Subprotocol
	}

	n := protocol.WriteServerHandshake(nil, req.SecWebSocketKey, hs.Subprotocol)
	resp := make([]byte, n+http1.WriteHeaderEnd(nil))
	protocol.WriteServerHandshake(resp, req.SecWebSocketKey, hs.Subprotocol)
	http1.WriteHeaderEnd(resp[n:])
	if _, err := rw.Write(resp); err != nil {
		opts.Metrics.Counter(control.MetricHandshakeFailed).Inc()
		return nil, fmt.Errorf("highlevel: write upgrade response: %w", err)
	}

	opts.Metrics.Counter(control.MetricHandshakeOK).Inc()
	opts.Logger.Debug("upgrade accepted", "target", string(req.RequestTarget), "subprotocol", hs.Subprotocol)
	return hs, nil
}

func writeReject(w io.Writer) {
	var buf [128]byte
	n := http1.WriteStatusLine(buf[:], 400)
	n += http1.WriteHeader(buf[n:], protocol.HeaderSecWebSocketVersion, protocol.RequiredWebSocketVersion)
	n += http1.WriteHeader(buf[n:], "Content-Length", "0")
	n += http1.WriteHeaderEnd(buf[n:])
	w.Write(buf[:n])
}

// offersProtocol reports whether the comma-separated list contains want.
// Subprotocol tokens are case-sensitive.
func offersProtocol(list []byte, want string) bool {
	for len(list) > 0 {
		var tok []byte
		if i := bytes.IndexByte(list, ','); i >= 0 {
			tok, list = list[:i], list[i+1:]
		} else {
			tok, list = list, nil
		}
		if string(bytes.TrimSpace(tok)) == want {
			return true
		}
	}
	return false
}
