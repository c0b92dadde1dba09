// File: core/http1/writer.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Measure-then-fill writers. Every writer returns the exact length of its
// output and writes into dst only when len(dst) is at least that length, so
// a caller may size a buffer with a nil dst and write on the second call.

package http1

import (
	"fmt"
	"strconv"
)

const (
	version = "HTTP/1.1"
	crlf    = "\r\n"
)

// ReasonPhrase returns the reason phrase written for code.
// Only the codes the handshake layer emits are known.
func ReasonPhrase(code int) (string, bool) {
	switch code {
	case 101:
		return "Switching Protocols", true
	case 200:
		return "OK", true
	case 400:
		return "Bad Request", true
	case 401:
		return "Unauthorized", true
	case 404:
		return "Not Found", true
	case 503:
		return "Service Unavailable", true
	}
	return "", false
}

// WriteRequestLine writes "METHOD target HTTP/1.1\r\n".
// It panics if m is MethodUnknown.
func WriteRequestLine(dst []byte, m Method, target string) int {
	name := m.String()
	if name == "" {
		panic(fmt.Sprintf("http1: write of unknown method %d", m))
	}
	n := len(name) + 1 + len(target) + 1 + len(version) + len(crlf)
	if len(dst) < n {
		return n
	}
	b := dst[:0]
	b = append(b, name...)
	b = append(b, ' ')
	b = append(b, target...)
	b = append(b, ' ')
	b = append(b, version...)
	_ = append(b, crlf...)
	return n
}

// WriteStatusLine writes "HTTP/1.1 code reason\r\n".
// It panics if ReasonPhrase does not know code.
func WriteStatusLine(dst []byte, code int) int {
	reason, ok := ReasonPhrase(code)
	if !ok {
		panic(fmt.Sprintf("http1: no reason phrase for status %d", code))
	}
	n := len(version) + 1 + 3 + 1 + len(reason) + len(crlf)
	if len(dst) < n {
		return n
	}
	b := dst[:0]
	b = append(b, version...)
	b = append(b, ' ')
	b = strconv.AppendInt(b, int64(code), 10)
	b = append(b, ' ')
	b = append(b, reason...)
	_ = append(b, crlf...)
	return n
}

// WriteHeader writes "name: value\r\n".
func WriteHeader(dst []byte, name, value string) int {
	n := len(name) + 2 + len(value) + len(crlf)
	if len(dst) < n {
		return n
	}
	b := dst[:0]
	b = append(b, name...)
	b = append(b, ':', ' ')
	b = append(b, value...)
	_ = append(b, crlf...)
	return n
}

// WriteHeaderEnd writes the blank line closing a header section.
func WriteHeaderEnd(dst []byte) int {
	if len(dst) >= len(crlf) {
		copy(dst, crlf)
	}
	return len(crlf)
}
