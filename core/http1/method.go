// File: core/http1/method.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package http1

// Method is one of the request methods understood by the parser.
// The set is closed; anything else is rejected.
type Method uint8

const (
	MethodUnknown Method = iota
	MethodGet
	MethodHead
	MethodPost
	MethodPut
	MethodDelete
	MethodConnect
	MethodOptions
	MethodTrace
)

// maxMethodLen is the length of the longest method token (CONNECT, OPTIONS).
const maxMethodLen = 7

var methodNames = [...]string{
	MethodGet:     "GET",
	MethodHead:    "HEAD",
	MethodPost:    "POST",
	MethodPut:     "PUT",
	MethodDelete:  "DELETE",
	MethodConnect: "CONNECT",
	MethodOptions: "OPTIONS",
	MethodTrace:   "TRACE",
}

// String returns the method token, or "" for MethodUnknown.
func (m Method) String() string {
	if int(m) >= len(methodNames) {
		return ""
	}
	return methodNames[m]
}

// ParseMethod matches b case-sensitively against the method set.
func ParseMethod(b []byte) (Method, bool) {
	for m := MethodGet; int(m) < len(methodNames); m++ {
		if string(b) == methodNames[m] {
			return m, true
		}
	}
	return MethodUnknown, false
}

// isMethodPrefix reports whether some method token starts with b.
func isMethodPrefix(b []byte) bool {
	for m := MethodGet; int(m) < len(methodNames); m++ {
		name := methodNames[m]
		if len(b) <= len(name) && string(b) == name[:len(b)] {
			return true
		}
	}
	return false
}
