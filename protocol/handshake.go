// File: protocol/handshake.go
// Package protocol implements the RFC 6455 opening handshake on top of the
// core base64 and http1 codecs.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Key generation and Sec-WebSocket-Accept derivation. Both are fixed-size
// values, so they are returned as arrays and never allocate.

package protocol

import (
	"crypto/rand"
	"crypto/sha1"
	"fmt"
	"io"

	"github.com/momentics/hioload-codec/core/base64"
)

const (
	WebSocketGUID            = "258EAFA5-E914-47DA-95CA-C5AB0DC85B11"
	RequiredWebSocketVersion = "13"

	// KeySize is the encoded length of a Sec-WebSocket-Key (16 random bytes).
	KeySize = 24
	// AcceptSize is the encoded length of a Sec-WebSocket-Accept (20-byte SHA-1).
	AcceptSize = 28

	nonceSize = 16
)

// Key is an encoded Sec-WebSocket-Key.
type Key [KeySize]byte

func (k Key) String() string { return string(k[:]) }

// Accept is an encoded Sec-WebSocket-Accept.
type Accept [AcceptSize]byte

func (a Accept) String() string { return string(a[:]) }

// MakeKey returns a fresh key built from crypto/rand.
func MakeKey() (Key, error) {
	return MakeKeyFrom(rand.Reader)
}

// MakeKeyFrom builds a key from 16 bytes read from r.
func MakeKeyFrom(r io.Reader) (Key, error) {
	var nonce [nonceSize]byte
	var k Key
	if _, err := io.ReadFull(r, nonce[:]); err != nil {
		return k, fmt.Errorf("websocket key nonce: %w", err)
	}
	base64.Encode(k[:], nonce[:])
	return k, nil
}

// ValidateKey reports whether key is a canonical Base64 encoding of exactly
// 16 bytes.
func ValidateKey(key []byte) bool {
	if len(key) != KeySize {
		return false
	}
	var raw [18]byte
	n, err := base64.Decode(raw[:], key)
	return err == nil && n == nonceSize
}

// ComputeAcceptKey derives Sec-WebSocket-Accept from a client key:
// Base64(SHA-1(key || GUID)).
func ComputeAcceptKey(key []byte) Accept {
	h := sha1.New()
	h.Write(key)
	io.WriteString(h, WebSocketGUID)
	var sum [sha1.Size]byte
	var a Accept
	base64.Encode(a[:], h.Sum(sum[:0]))
	return a
}
