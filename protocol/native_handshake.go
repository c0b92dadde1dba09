// File: protocol/native_handshake.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Handshake validation over parsed http1 messages, without net/http.
// Upgrade and Connection must match exactly (ignoring case); token lists such
// as "keep-alive, Upgrade" are rejected.

package protocol

import (
	"bytes"
	"errors"

	"github.com/momentics/hioload-codec/core/http1"
)

var (
	ErrNotHandshake          = errors.New("websocket: message is not a complete handshake of the expected kind")
	ErrInvalidMethod         = errors.New("websocket: handshake request must use GET")
	ErrBadStatus             = errors.New("websocket: handshake response status is not 101")
	ErrInvalidUpgradeHeaders = errors.New("websocket: invalid upgrade headers")
	ErrBadWebSocketVersion   = errors.New("websocket: unsupported version; only '13' is supported")
	ErrMissingWebSocketKey   = errors.New("websocket: missing Sec-WebSocket-Key header")
	ErrInvalidWebSocketKey   = errors.New("websocket: malformed Sec-WebSocket-Key")
	ErrAcceptMismatch        = errors.New("websocket: Sec-WebSocket-Accept mismatch")
)

func validateUpgradeHeaders(m *http1.Message) error {
	if !http1.EqualFold(m.Upgrade, ValueWebSocket) || !http1.EqualFold(m.Connection, ValueUpgrade) {
		return ErrInvalidUpgradeHeaders
	}
	return nil
}

// ValidateClientHandshake checks an upgrade request received by a server.
func ValidateClientHandshake(req *http1.Message) error {
	if !req.Ok() || req.Kind != http1.Request {
		return ErrNotHandshake
	}
	if req.Method != http1.MethodGet {
		return ErrInvalidMethod
	}
	if err := validateUpgradeHeaders(req); err != nil {
		return err
	}
	if string(req.SecWebSocketVersion) != RequiredWebSocketVersion {
		return ErrBadWebSocketVersion
	}
	if req.SecWebSocketKey == nil {
		return ErrMissingWebSocketKey
	}
	if !ValidateKey(req.SecWebSocketKey) {
		return ErrInvalidWebSocketKey
	}
	return nil
}

// ValidateServerHandshake checks a response received by a client that sent key.
// The accept value is compared byte for byte.
func ValidateServerHandshake(resp *http1.Message, key []byte) error {
	if !resp.Ok() || resp.Kind != http1.Response {
		return ErrNotHandshake
	}
	if resp.StatusCode != 101 {
		return ErrBadStatus
	}
	if err := validateUpgradeHeaders(resp); err != nil {
		return err
	}
	want := ComputeAcceptKey(key)
	if !bytes.Equal(resp.SecWebSocketAccept, want[:]) {
		return ErrAcceptMismatch
	}
	return nil
}
