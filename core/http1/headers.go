// File: core/http1/headers.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Fixed header set. Names are bucketed by length and compared with ASCII
// case folding, so no allocation or map lookup happens per header line.

package http1

// field identifies a header slot in Message.
type field uint8

const (
	fieldNone field = iota
	fieldHost
	fieldUserAgent
	fieldAuthorization
	fieldUpgrade
	fieldConnection
	fieldOrigin
	fieldSecWebSocketKey
	fieldSecWebSocketProtocol
	fieldSecWebSocketVersion
	fieldSecWebSocketAccept
	fieldContentLength
	fieldTransferEncoding
)

var fieldNames = [...]string{
	fieldHost:                 "Host",
	fieldUserAgent:            "User-Agent",
	fieldAuthorization:        "Authorization",
	fieldUpgrade:              "Upgrade",
	fieldConnection:           "Connection",
	fieldOrigin:               "Origin",
	fieldSecWebSocketKey:      "Sec-WebSocket-Key",
	fieldSecWebSocketProtocol: "Sec-WebSocket-Protocol",
	fieldSecWebSocketVersion:  "Sec-WebSocket-Version",
	fieldSecWebSocketAccept:   "Sec-WebSocket-Accept",
	fieldContentLength:        "Content-Length",
	fieldTransferEncoding:     "Transfer-Encoding",
}

func lookupField(name []byte) field {
	switch len(name) {
	case 4:
		return matchField(name, fieldHost)
	case 6:
		return matchField(name, fieldOrigin)
	case 7:
		return matchField(name, fieldUpgrade)
	case 10:
		return matchField(name, fieldUserAgent, fieldConnection)
	case 13:
		return matchField(name, fieldAuthorization)
	case 14:
		return matchField(name, fieldContentLength)
	case 17:
		return matchField(name, fieldSecWebSocketKey, fieldTransferEncoding)
	case 20:
		return matchField(name, fieldSecWebSocketAccept)
	case 21:
		return matchField(name, fieldSecWebSocketVersion)
	case 22:
		return matchField(name, fieldSecWebSocketProtocol)
	}
	return fieldNone
}

func matchField(name []byte, candidates ...field) field {
	for _, f := range candidates {
		if EqualFold(name, fieldNames[f]) {
			return f
		}
	}
	return fieldNone
}

// slot returns the Message field backing a view header.
func (m *Message) slot(f field) *[]byte {
	switch f {
	case fieldHost:
		return &m.Host
	case fieldUserAgent:
		return &m.UserAgent
	case fieldAuthorization:
		return &m.Authorization
	case fieldUpgrade:
		return &m.Upgrade
	case fieldConnection:
		return &m.Connection
	case fieldOrigin:
		return &m.Origin
	case fieldSecWebSocketKey:
		return &m.SecWebSocketKey
	case fieldSecWebSocketProtocol:
		return &m.SecWebSocketProtocol
	case fieldSecWebSocketVersion:
		return &m.SecWebSocketVersion
	case fieldSecWebSocketAccept:
		return &m.SecWebSocketAccept
	}
	return nil
}

var toLowerTable = func() [256]byte {
	var a [256]byte
	for i := range a {
		c := byte(i)
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		a[i] = c
	}
	return a
}()

// EqualFold reports whether b and s are equal under ASCII case folding.
// Unlike bytes.EqualFold it never folds non-ASCII runes.
func EqualFold(b []byte, s string) bool {
	if len(b) != len(s) {
		return false
	}
	for i := 0; i < len(b); i++ {
		if toLowerTable[b[i]] != toLowerTable[s[i]] {
			return false
		}
	}
	return true
}
