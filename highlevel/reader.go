// File: highlevel/reader.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// MessageReader is the "buffer until the parser is satisfied" loop around
// http1.Parse. The parser keeps no state, so every read re-parses the pending
// bytes from the start of the current message.

package highlevel

import (
	"bytes"
	"errors"
	"io"

	"github.com/eapache/queue"

	"github.com/momentics/hioload-codec/api"
	"github.com/momentics/hioload-codec/control"
	"github.com/momentics/hioload-codec/core/http1"
	"github.com/momentics/hioload-codec/pool"
)

var readBuffers = pool.NewBytePool(4096)

// MessageReader reads successive HTTP/1.1 messages of one kind from a stream.
// Several messages arriving in one read are queued and returned in order.
type MessageReader struct {
	r    io.Reader
	kind http1.Kind
	opts Options

	buf      *pool.Buffer
	n        int
	consumed int

	ready   *queue.Queue
	readErr error
	err     error
}

// NewMessageReader returns a reader parsing messages of kind from r.
func NewMessageReader(r io.Reader, kind http1.Kind, opts Options) *MessageReader {
	opts = opts.normalized()
	return &MessageReader{
		r:     r,
		kind:  kind,
		opts:  opts,
		buf:   readBuffers.GetBuffer(opts.ReadChunk),
		ready: queue.New(),
	}
}

// Next returns the next complete message. Its views point into memory owned
// by the message, so it stays valid across later calls.
//
// Malformed input yields an *api.Error with ErrCodeMalformed wrapping the
// http1 sentinel; the reader is then unusable. A stream ending between
// messages yields io.EOF, one ending inside a message io.ErrUnexpectedEOF.
func (mr *MessageReader) Next() (*http1.Message, error) {
	for {
		if mr.ready.Length() > 0 {
			return mr.ready.Remove().(*http1.Message), nil
		}
		if mr.err != nil {
			return nil, mr.err
		}
		if err := mr.drain(); err != nil {
			mr.fail(err)
			continue
		}
		if mr.ready.Length() > 0 {
			continue
		}
		if mr.readErr != nil {
			switch {
			case !errors.Is(mr.readErr, io.EOF):
				mr.fail(mr.readErr)
			case mr.n > 0:
				mr.fail(io.ErrUnexpectedEOF)
			default:
				mr.fail(io.EOF)
			}
			continue
		}
		mr.fill()
	}
}

// Buffered returns bytes read past the last returned message. The slice is
// valid until the next call to Next or Close.
func (mr *MessageReader) Buffered() []byte {
	if mr.buf == nil {
		return nil
	}
	return mr.buf.Bytes()[:mr.n]
}

// Consumed returns the number of stream bytes taken by parsed messages.
func (mr *MessageReader) Consumed() int { return mr.consumed }

// Close releases the read buffer. Queued messages stay readable.
func (mr *MessageReader) Close() error {
	mr.fail(ErrClosed)
	return nil
}

func (mr *MessageReader) fail(err error) {
	if mr.err == nil {
		mr.err = err
	}
	if mr.buf != nil {
		mr.buf.Release()
		mr.buf = nil
		mr.n = 0
	}
}

func (mr *MessageReader) fill() {
	if mr.buf.Len()-mr.n < mr.opts.ReadChunk {
		mr.buf.Resize(mr.n + mr.opts.ReadChunk)
	}
	k, err := mr.r.Read(mr.buf.Bytes()[mr.n:])
	mr.n += k
	mr.opts.Metrics.Counter(control.MetricBytesRead).Add(uint64(k))
	if err != nil {
		mr.readErr = err
	}
}

// drain moves every complete message at the head of the pending bytes into
// the ready queue and compacts what is left.
func (mr *MessageReader) drain() error {
	pending := mr.buf.Bytes()[:mr.n]
	off := 0
	defer func() {
		if off > 0 {
			mr.n = copy(pending, pending[off:])
			mr.consumed += off
		}
	}()
	for off < len(pending) {
		m := mr.opts.Limits.Parse(mr.kind, pending[off:])
		if !m.Valid && off > 0 {
			// Reported by the next call; the bytes may be a frame stream
			// following a handshake.
			return nil
		}
		if !m.Valid {
			mr.opts.Metrics.Counter(control.MetricParseMalformed).Inc()
			mr.opts.Logger.Debug("malformed message", "kind", mr.kind.String(), "offset", mr.consumed+off, "err", m.Err)
			return api.Wrap(api.ErrCodeMalformed, "highlevel: malformed "+mr.kind.String(), m.Err).
				WithContext("offset", mr.consumed+off)
		}
		if !m.Complete {
			mr.opts.Metrics.Counter(control.MetricParseIncomplete).Inc()
			return nil
		}
		mr.opts.Metrics.Counter(control.MetricParseComplete).Inc()

		own := bytes.Clone(pending[off : off+m.MessageSize])
		msg := mr.opts.Limits.Parse(mr.kind, own)
		mr.ready.Add(&msg)
		mr.opts.Logger.Debug("message parsed", "kind", mr.kind.String(), "size", m.MessageSize)
		off += m.MessageSize
	}
	return nil
}
