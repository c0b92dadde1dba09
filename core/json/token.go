// File: core/json/token.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Token types emitted by the JSON pull lexer.

package json

// Kind identifies the lexical class of a Token.
type Kind uint8

const (
	Invalid Kind = iota
	Null
	True
	False
	Number
	String
	ArrayBegin
	ArrayEnd
	ObjectBegin
	ObjectEnd
	Comma
	End
)

func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case True:
		return "true"
	case False:
		return "false"
	case Number:
		return "number"
	case String:
		return "string"
	case ArrayBegin:
		return "["
	case ArrayEnd:
		return "]"
	case ObjectBegin:
		return "{"
	case ObjectEnd:
		return "}"
	case Comma:
		return ","
	case End:
		return "end"
	default:
		return "invalid"
	}
}

// Token is a single lexical element. Raw borrows from the tokenizer input and
// must not outlive it.
type Token struct {
	Kind Kind

	// Number holds the value of a Number token.
	Number float64

	// Raw is the lexeme of a Number token, or the still-escaped content
	// between the quotes of a String token.
	Raw []byte

	// Offset is the byte offset of the token in the input.
	Offset int
}

// Terminal reports whether no token can follow t.
func (t Token) Terminal() bool {
	return t.Kind == End || t.Kind == Invalid
}
