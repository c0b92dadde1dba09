// File: core/json/tokenizer.go
// Package json implements a forward-only RFC 8259 lexer over a byte slice.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// The tokenizer validates lexical structure only. Nesting and the order of
// tokens are the caller's concern, and string escapes are left in place.

package json

import (
	"errors"
	"iter"
	"strconv"
)

// ErrTerminated is returned by Next once End or Invalid has been emitted.
var ErrTerminated = errors.New("json: tokenizer already terminated")

// State is the lifecycle of a Tokenizer. Transitions only leave StateRunning.
type State uint8

const (
	StateRunning State = iota
	StateFinished
	StateInvalid
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateFinished:
		return "finished"
	default:
		return "invalid"
	}
}

// Tokenizer is a pull lexer. Copying a Tokenizer value forks the cursor.
type Tokenizer struct {
	data  []byte
	cur   int
	state State
}

// NewTokenizer returns a tokenizer over data. data must stay unchanged while
// the tokenizer and any token it produced are in use.
func NewTokenizer(data []byte) *Tokenizer {
	return &Tokenizer{data: data}
}

// State returns the current lifecycle state.
func (t *Tokenizer) State() State { return t.state }

// Offset returns the cursor position in the input.
func (t *Tokenizer) Offset() int { return t.cur }

// Clone returns an independent copy positioned at the same cursor.
func (t *Tokenizer) Clone() *Tokenizer {
	c := *t
	return &c
}

// Next emits the next token. The terminal tokens End and Invalid are
// emitted once; calling Next afterwards returns ErrTerminated.
func (t *Tokenizer) Next() (Token, error) {
	if t.state != StateRunning {
		return Token{Kind: Invalid, Offset: t.cur}, ErrTerminated
	}

	for t.cur < len(t.data) && isWhitespace(t.data[t.cur]) {
		t.cur++
	}
	if t.cur == len(t.data) {
		t.state = StateFinished
		return Token{Kind: End, Offset: t.cur}, nil
	}

	switch c := t.data[t.cur]; {
	case c == 'n':
		return t.literal("null", Null), nil
	case c == 't':
		return t.literal("true", True), nil
	case c == 'f':
		return t.literal("false", False), nil
	case c == '[':
		return t.single(ArrayBegin), nil
	case c == ']':
		return t.single(ArrayEnd), nil
	case c == '{':
		return t.single(ObjectBegin), nil
	case c == '}':
		return t.single(ObjectEnd), nil
	case c == ',':
		return t.single(Comma), nil
	case c == '-' || isDigit(c):
		return t.lexNumber(), nil
	case c == '"':
		return t.lexString(), nil
	default:
		return t.fail(t.cur), nil
	}
}

// All yields the remaining tokens, ending with End or Invalid.
func (t *Tokenizer) All() iter.Seq[Token] {
	return func(yield func(Token) bool) {
		for t.state == StateRunning {
			tok, _ := t.Next()
			if !yield(tok) {
				return
			}
		}
	}
}

func (t *Tokenizer) fail(start int) Token {
	t.state = StateInvalid
	return Token{Kind: Invalid, Offset: start}
}

func (t *Tokenizer) single(kind Kind) Token {
	tok := Token{Kind: kind, Offset: t.cur}
	t.cur++
	return tok
}

func (t *Tokenizer) literal(word string, kind Kind) Token {
	start := t.cur
	for i := 0; i < len(word); i++ {
		if t.cur == len(t.data) || t.data[t.cur] != word[i] {
			return t.fail(start)
		}
		t.cur++
	}
	return Token{Kind: kind, Offset: start}
}

// lexNumber lexes -? (0 | [1-9][0-9]*) (. [0-9]+)? ([eE] [+-]? [0-9]+)?
func (t *Tokenizer) lexNumber() Token {
	start := t.cur
	if t.data[t.cur] == '-' {
		t.cur++
	}

	if !t.digitAt() {
		return t.fail(start)
	}
	if t.data[t.cur] == '0' {
		t.cur++
		if t.digitAt() {
			return t.fail(start)
		}
	} else {
		t.skipDigits()
	}

	if t.cur < len(t.data) && t.data[t.cur] == '.' {
		t.cur++
		if !t.digitAt() {
			return t.fail(start)
		}
		t.skipDigits()
	}

	if t.cur < len(t.data) && (t.data[t.cur] == 'e' || t.data[t.cur] == 'E') {
		t.cur++
		if t.cur < len(t.data) && (t.data[t.cur] == '+' || t.data[t.cur] == '-') {
			t.cur++
		}
		if !t.digitAt() {
			return t.fail(start)
		}
		t.skipDigits()
	}

	raw := t.data[start:t.cur]
	// The lexeme is grammatical, so the only possible error is ErrRange,
	// for which ParseFloat already returns the saturated value.
	value, _ := strconv.ParseFloat(string(raw), 64)
	return Token{Kind: Number, Number: value, Raw: raw, Offset: start}
}

func (t *Tokenizer) lexString() Token {
	start := t.cur
	t.cur++
	begin := t.cur

	for t.cur < len(t.data) {
		switch c := t.data[t.cur]; c {
		case '"':
			tok := Token{Kind: String, Raw: t.data[begin:t.cur], Offset: start}
			t.cur++
			return tok
		case '\t', '\f', '\n', '\r':
			return t.fail(start)
		case '\\':
			t.cur++
			if t.cur == len(t.data) {
				return t.fail(start)
			}
			switch t.data[t.cur] {
			case '"', '\\', '/', 'b', 'f', 'n', 'r', 't':
			case 'u':
				for i := 0; i < 4; i++ {
					t.cur++
					if t.cur == len(t.data) || !isHex(t.data[t.cur]) {
						return t.fail(start)
					}
				}
			default:
				return t.fail(start)
			}
		}
		t.cur++
	}
	return t.fail(start)
}

func (t *Tokenizer) digitAt() bool {
	return t.cur < len(t.data) && isDigit(t.data[t.cur])
}

func (t *Tokenizer) skipDigits() {
	for t.digitAt() {
		t.cur++
	}
}

func isWhitespace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isHex(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
