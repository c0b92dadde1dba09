// Package fake
// Author: momentics <momentics@gmail.com>
//
// Scripted byte streams for testing the stream helpers without sockets.

package fake

import (
	"errors"
	"io"
	"sync"
)

// ErrStreamClosed is returned by Read and Write after Close.
var ErrStreamClosed = errors.New("fake: stream is closed")

// Stream is an io.ReadWriteCloser fed from scripted chunks. Each Read returns
// at most one chunk, so tests control how input is split across reads.
// Writes are recorded.
type Stream struct {
	mu        sync.Mutex
	recv      [][]byte
	sent      [][]byte
	closed    bool
	recvError error
	sendError error
}

// NewStream returns a stream that will deliver chunks in order, then io.EOF.
func NewStream(chunks ...string) *Stream {
	s := &Stream{}
	for _, c := range chunks {
		s.AddRecvData([]byte(c))
	}
	return s
}

// Read implements io.Reader.
func (s *Stream) Read(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return 0, ErrStreamClosed
	}
	if len(s.recv) == 0 {
		if s.recvError != nil {
			return 0, s.recvError
		}
		return 0, io.EOF
	}

	n := copy(p, s.recv[0])
	if n == len(s.recv[0]) {
		s.recv = s.recv[1:]
	} else {
		s.recv[0] = s.recv[0][n:]
	}
	return n, nil
}

// Write implements io.Writer.
func (s *Stream) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return 0, ErrStreamClosed
	}
	if s.sendError != nil {
		return 0, s.sendError
	}
	s.sent = append(s.sent, append([]byte(nil), p...))
	return len(p), nil
}

// Close implements io.Closer.
func (s *Stream) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// SetSendError makes every later Write fail with err.
func (s *Stream) SetSendError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sendError = err
}

// SetRecvError makes Read fail with err, instead of io.EOF, once the
// scripted chunks are exhausted.
func (s *Stream) SetRecvError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recvError = err
}

// AddRecvData queues a chunk for a later Read.
func (s *Stream) AddRecvData(data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recv = append(s.recv, append([]byte(nil), data...))
}

// GetSentData returns everything written so far, one entry per Write.
func (s *Stream) GetSentData() [][]byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	sent := make([][]byte, len(s.sent))
	copy(sent, s.sent)
	return sent
}

// Sent returns everything written so far as one slice.
func (s *Stream) Sent() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []byte
	for _, b := range s.sent {
		out = append(out, b...)
	}
	return out
}
