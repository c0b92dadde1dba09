// File: core/http1/parser.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Start line, header and body framing. Each step advances a cursor over the
// buffer and returns nil, errNeedMore when the buffer ends mid-step, or a
// sentinel describing the violation.

package http1

import "errors"

var errNeedMore = errors.New("http1: need more data")

// Limits bounds what the parser accepts from untrusted peers.
// A zero field means no limit.
type Limits struct {
	// MaxHeaderBytes caps the start line plus header section, terminator included.
	MaxHeaderBytes int
	// MaxContentLength caps the declared body length.
	MaxContentLength uint64
}

// Parse attempts to parse exactly one message of the given kind from the
// start of buf. It never retains buf and has no state across calls, so
// parsing the same bytes twice yields the same Message.
func Parse(kind Kind, buf []byte) Message {
	return Limits{}.Parse(kind, buf)
}

// ParseRequest is Parse(Request, buf).
func ParseRequest(buf []byte) Message { return Parse(Request, buf) }

// ParseResponse is Parse(Response, buf).
func ParseResponse(buf []byte) Message { return Parse(Response, buf) }

// Parse is the limit-enforcing form of the package-level Parse.
func (l Limits) Parse(kind Kind, buf []byte) Message {
	p := parser{buf: buf, msg: Message{Kind: kind}}
	err := p.run(l)
	switch {
	case err == nil:
		p.msg.Complete = true
		p.msg.Valid = true
		return p.msg
	case err == errNeedMore:
		if !p.headersDone && l.MaxHeaderBytes > 0 && len(buf) > l.MaxHeaderBytes {
			return Message{Kind: kind, Err: ErrHeaderTooLarge}
		}
		return Message{Kind: kind, Valid: true}
	default:
		return Message{Kind: kind, Err: err}
	}
}

type parser struct {
	buf         []byte
	cur         int
	msg         Message
	headersDone bool
	clSeen      bool
}

func (p *parser) run(l Limits) error {
	var err error
	if p.msg.Kind == Request {
		err = p.requestLine()
	} else {
		err = p.statusLine()
	}
	if err != nil {
		return err
	}
	if err = p.headers(); err != nil {
		return err
	}
	p.headersDone = true
	if l.MaxHeaderBytes > 0 && p.cur > l.MaxHeaderBytes {
		return ErrHeaderTooLarge
	}
	if l.MaxContentLength > 0 && p.msg.ContentLength > l.MaxContentLength {
		return ErrBodyTooLarge
	}
	return p.body()
}

func (p *parser) skipSpaces() {
	for p.cur < len(p.buf) && p.buf[p.cur] == ' ' {
		p.cur++
	}
}

// view returns buf[a:b] with capacity clipped so appends never reach
// bytes owned by other fields.
func (p *parser) view(a, b int) []byte {
	return p.buf[a:b:b]
}

// literal consumes lit, failing as soon as a byte differs. versionLen is the
// prefix length whose mismatch means a wrong protocol version rather than
// bad framing after it.
func (p *parser) literal(lit string, versionLen int, after error) error {
	for i := 0; i < len(lit); i++ {
		if p.cur+i == len(p.buf) {
			return errNeedMore
		}
		if p.buf[p.cur+i] != lit[i] {
			if i < versionLen {
				return ErrUnsupportedVersion
			}
			return after
		}
	}
	p.cur += len(lit)
	return nil
}

func (p *parser) requestLine() error {
	i := 0
	for ; ; i++ {
		if i == len(p.buf) {
			return errNeedMore
		}
		if p.buf[i] == ' ' {
			break
		}
		if i >= maxMethodLen || !isMethodPrefix(p.buf[:i+1]) {
			return ErrUnknownMethod
		}
	}
	m, ok := ParseMethod(p.buf[:i])
	if !ok {
		return ErrUnknownMethod
	}
	p.msg.Method = m
	p.cur = i + 1

	p.skipSpaces()
	start := p.cur
	for {
		if p.cur == len(p.buf) {
			return errNeedMore
		}
		c := p.buf[p.cur]
		if c == ' ' {
			break
		}
		if c == '\r' || c == '\n' {
			return ErrBadRequestTarget
		}
		p.cur++
	}
	p.msg.RequestTarget = p.view(start, p.cur)

	p.skipSpaces()
	return p.literal("HTTP/1.1\r\n", 8, ErrBadLineEnding)
}

func (p *parser) statusLine() error {
	if err := p.literal("HTTP/1.1 ", 8, ErrBadStatusLine); err != nil {
		return err
	}
	p.skipSpaces()

	code := 0
	for i := 0; i < 3; i++ {
		if p.cur == len(p.buf) {
			return errNeedMore
		}
		c := p.buf[p.cur]
		lo := byte('0')
		if i == 0 {
			lo = '1'
		}
		if c < lo || c > '9' {
			return ErrBadStatusLine
		}
		code = code*10 + int(c-'0')
		p.cur++
	}
	if p.cur == len(p.buf) {
		return errNeedMore
	}
	if p.buf[p.cur] != ' ' {
		return ErrBadStatusLine
	}
	p.cur++
	p.skipSpaces()
	p.msg.StatusCode = code

	start := p.cur
	for {
		if p.cur == len(p.buf) {
			return errNeedMore
		}
		c := p.buf[p.cur]
		if c == '\r' {
			break
		}
		if c == '\n' {
			return ErrBadLineEnding
		}
		p.cur++
	}
	p.msg.ReasonPhrase = p.view(start, p.cur)
	return p.crlf()
}

// crlf consumes "\r\n" at the cursor.
func (p *parser) crlf() error {
	if p.cur == len(p.buf) {
		return errNeedMore
	}
	if p.buf[p.cur] != '\r' {
		return ErrBadLineEnding
	}
	if p.cur+1 == len(p.buf) {
		return errNeedMore
	}
	if p.buf[p.cur+1] != '\n' {
		return ErrBadLineEnding
	}
	p.cur += 2
	return nil
}

func (p *parser) headers() error {
	for {
		if p.cur == len(p.buf) {
			return errNeedMore
		}
		switch p.buf[p.cur] {
		case '\r':
			return p.crlf()
		case '\n':
			return ErrBadLineEnding
		}
		if err := p.header(); err != nil {
			return err
		}
	}
}

func (p *parser) header() error {
	p.skipSpaces()
	start := p.cur
	for {
		if p.cur == len(p.buf) {
			return errNeedMore
		}
		c := p.buf[p.cur]
		if c == ':' || c == ' ' || c == '\r' || c == '\n' {
			break
		}
		p.cur++
	}
	if p.cur == start {
		return ErrBadHeader
	}
	name := p.buf[start:p.cur]

	p.skipSpaces()
	if p.cur == len(p.buf) {
		return errNeedMore
	}
	if p.buf[p.cur] != ':' {
		return ErrBadHeader
	}
	p.cur++
	p.skipSpaces()

	vstart := p.cur
	for {
		if p.cur == len(p.buf) {
			return errNeedMore
		}
		c := p.buf[p.cur]
		if c == '\r' {
			break
		}
		if c == '\n' {
			return ErrBadHeader
		}
		p.cur++
	}
	vend := p.cur
	for vend > vstart && p.buf[vend-1] == ' ' {
		vend--
	}
	if err := p.crlf(); err != nil {
		return err
	}
	return p.interpret(name, p.view(vstart, vend))
}

func (p *parser) interpret(name, value []byte) error {
	switch f := lookupField(name); f {
	case fieldNone:
		return nil
	case fieldTransferEncoding:
		return ErrTransferEncoding
	case fieldContentLength:
		n, ok := parseContentLength(value)
		if !ok {
			return ErrBadContentLength
		}
		if p.clSeen && n != p.msg.ContentLength {
			return ErrBadContentLength
		}
		p.clSeen = true
		p.msg.ContentLength = n
		return nil
	default:
		*p.msg.slot(f) = value
		return nil
	}
}

func (p *parser) body() error {
	rest := uint64(len(p.buf) - p.cur)
	if p.msg.ContentLength > rest {
		return errNeedMore
	}
	end := p.cur + int(p.msg.ContentLength)
	p.msg.Body = p.view(p.cur, end)
	p.msg.MessageSize = end
	return nil
}

// parseContentLength accepts a run of decimal digits fitting in uint64.
// An empty value means zero.
func parseContentLength(b []byte) (uint64, bool) {
	const cutoff = ^uint64(0) / 10
	var n uint64
	for _, c := range b {
		if c < '0' || c > '9' {
			return 0, false
		}
		if n > cutoff {
			return 0, false
		}
		n *= 10
		d := uint64(c - '0')
		if n+d < n {
			return 0, false
		}
		n += d
	}
	return n, true
}
