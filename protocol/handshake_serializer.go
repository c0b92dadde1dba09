// File: protocol/handshake_serializer.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Handshake serialization with the http1 measure-then-fill contract: each
// writer returns the full length and fills dst only if it is large enough.

package protocol

import "github.com/momentics/hioload-codec/core/http1"

const (
	HeaderUpgrade              = "Upgrade"
	HeaderConnection           = "Connection"
	HeaderSecWebSocketKey      = "Sec-WebSocket-Key"
	HeaderSecWebSocketAccept   = "Sec-WebSocket-Accept"
	HeaderSecWebSocketProtocol = "Sec-WebSocket-Protocol"
	HeaderSecWebSocketVersion  = "Sec-WebSocket-Version"

	ValueWebSocket = "websocket"
	ValueUpgrade   = "Upgrade"
)

// lineWriter accumulates line lengths and writes each line only while the
// running total still fits in dst.
type lineWriter struct {
	dst []byte
	n   int
}

func (w *lineWriter) add(write func([]byte) int) {
	var room []byte
	if w.n < len(w.dst) {
		room = w.dst[w.n:]
	}
	w.n += write(room)
}

func (w *lineWriter) header(name, value string) {
	w.add(func(b []byte) int { return http1.WriteHeader(b, name, value) })
}

// WriteClientHandshakeHeaders generates a fresh key and writes the client
// upgrade headers for it. The key is returned so the caller can later
// validate the server's accept value.
func WriteClientHandshakeHeaders(dst []byte, protocol string) (int, Key, error) {
	key, err := MakeKey()
	if err != nil {
		return 0, key, err
	}
	return WriteClientHandshakeHeadersWithKey(dst, key, protocol), key, nil
}

// WriteClientHandshakeHeadersWithKey writes Upgrade, Connection,
// Sec-WebSocket-Key, Sec-WebSocket-Protocol and Sec-WebSocket-Version.
// The protocol header is omitted when protocol is empty. The request line,
// Host and the terminating blank line are the caller's.
func WriteClientHandshakeHeadersWithKey(dst []byte, key Key, protocol string) int {
	w := lineWriter{dst: dst}
	w.header(HeaderUpgrade, ValueWebSocket)
	w.header(HeaderConnection, ValueUpgrade)
	w.header(HeaderSecWebSocketKey, key.String())
	if protocol != "" {
		w.header(HeaderSecWebSocketProtocol, protocol)
	}
	w.header(HeaderSecWebSocketVersion, RequiredWebSocketVersion)
	return w.n
}

// WriteServerHandshake writes the 101 status line and the Upgrade,
// Connection, Sec-WebSocket-Accept and Sec-WebSocket-Protocol headers for a
// client key. The protocol header is omitted when protocol is empty.
func WriteServerHandshake(dst []byte, key []byte, protocol string) int {
	accept := ComputeAcceptKey(key)
	w := lineWriter{dst: dst}
	w.add(func(b []byte) int { return http1.WriteStatusLine(b, 101) })
	w.header(HeaderUpgrade, ValueWebSocket)
	w.header(HeaderConnection, ValueUpgrade)
	w.header(HeaderSecWebSocketAccept, accept.String())
	if protocol != "" {
		w.header(HeaderSecWebSocketProtocol, protocol)
	}
	return w.n
}
