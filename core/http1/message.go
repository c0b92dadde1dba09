// File: core/http1/message.go
// Package http1 parses and writes HTTP/1.1 messages held in memory.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// The parser is single-shot: callers hand it the whole buffer received so far
// and call it again with a longer buffer until the message is complete or
// rejected. Every []byte in a Message is a view into that buffer.

package http1

import (
	"errors"
	"iter"
)

// Kind selects whether a buffer is parsed as a request or a response.
type Kind uint8

const (
	Request Kind = iota
	Response
)

func (k Kind) String() string {
	if k == Response {
		return "response"
	}
	return "request"
}

// Reasons a message is rejected. Message.Err holds one of them when Valid is false.
var (
	ErrUnknownMethod      = errors.New("http1: unknown method")
	ErrUnsupportedVersion = errors.New("http1: unsupported protocol version")
	ErrBadRequestTarget   = errors.New("http1: malformed request target")
	ErrBadStatusLine      = errors.New("http1: malformed status line")
	ErrBadHeader          = errors.New("http1: malformed header line")
	ErrBadLineEnding      = errors.New("http1: CR not followed by LF")
	ErrTransferEncoding   = errors.New("http1: transfer-encoding not supported")
	ErrBadContentLength   = errors.New("http1: invalid content-length")
	ErrHeaderTooLarge     = errors.New("http1: header section too large")
	ErrBodyTooLarge       = errors.New("http1: body too large")
)

// Message is the result of one parse call.
//
// Complete and Valid classify the buffer:
//   - Complete && Valid: one full message was found; all fields are set.
//   - !Complete && Valid: more bytes are needed; other fields are zero.
//   - !Complete && !Valid: the bytes can never form a message; Err says why
//     and other fields are zero.
//
// The views must not be used after the parsed buffer is freed or modified.
type Message struct {
	Kind     Kind
	Complete bool
	Valid    bool
	Err      error

	// MessageSize is the length of the header section plus the body.
	// Bytes of the buffer beyond it belong to the next message.
	MessageSize   int
	Body          []byte
	ContentLength uint64

	// Request line.
	Method        Method
	RequestTarget []byte

	// Status line.
	StatusCode   int
	ReasonPhrase []byte

	// Known headers. nil means absent, an empty slice means present with an
	// empty value.
	Host                 []byte
	UserAgent            []byte
	Authorization        []byte
	Upgrade              []byte
	Connection           []byte
	Origin               []byte
	SecWebSocketKey      []byte
	SecWebSocketProtocol []byte
	SecWebSocketVersion  []byte
	SecWebSocketAccept   []byte
}

// Ok reports whether the message is complete and valid.
func (m *Message) Ok() bool {
	return m.Complete && m.Valid
}

// Incomplete reports whether the parser needs more bytes.
func (m *Message) Incomplete() bool {
	return !m.Complete && m.Valid
}

// KnownHeaders yields the canonical name and value of every known header
// present in the message, Content-Length excluded.
func (m *Message) KnownHeaders() iter.Seq2[string, []byte] {
	return func(yield func(string, []byte) bool) {
		for f := fieldHost; f <= fieldSecWebSocketAccept; f++ {
			if v := *m.slot(f); v != nil {
				if !yield(fieldNames[f], v) {
					return
				}
			}
		}
	}
}
