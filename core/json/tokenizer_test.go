package json_test

import (
	"errors"
	"math"
	"testing"

	"github.com/momentics/hioload-codec/core/json"
)

func kinds(t *testing.T, input string) []json.Kind {
	t.Helper()
	var out []json.Kind
	for tok := range json.NewTokenizer([]byte(input)).All() {
		out = append(out, tok.Kind)
	}
	return out
}

func equalKinds(a, b []json.Kind) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestTokenizerWhitespace(t *testing.T) {
	got := kinds(t, "\t\r \n  \r \t \n")
	if !equalKinds(got, []json.Kind{json.End}) {
		t.Errorf("kinds = %v, want [end]", got)
	}
	if got := kinds(t, ""); !equalKinds(got, []json.Kind{json.End}) {
		t.Errorf("empty input kinds = %v, want [end]", got)
	}
}

func TestTokenizerLiterals(t *testing.T) {
	cases := map[string]json.Kind{
		"null":  json.Null,
		"true":  json.True,
		"false": json.False,
	}
	for in, want := range cases {
		got := kinds(t, in)
		if !equalKinds(got, []json.Kind{want, json.End}) {
			t.Errorf("%q: kinds = %v, want [%v end]", in, got, want)
		}
	}
}

func TestTokenizerNumbers(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"0", 0},
		{"7", 7},
		{"-1", -1},
		{"1.78", 1.78},
		{"-2.45", -2.45},
		{"-0.19", -0.19},
		{"123.45", 123.45},
		{"2e-5", 2e-5},
		{"-3.4e+6", -3.4e6},
		{"1E2", 100},
		{"-0", 0},
	}
	for _, c := range cases {
		tk := json.NewTokenizer([]byte(c.in))
		tok, err := tk.Next()
		if err != nil {
			t.Fatal(err)
		}
		if tok.Kind != json.Number {
			t.Fatalf("%q: kind = %v, want number", c.in, tok.Kind)
		}
		if math.Abs(tok.Number-c.want) > 1e-10 {
			t.Errorf("%q: value = %v, want %v", c.in, tok.Number, c.want)
		}
		if string(tok.Raw) != c.in {
			t.Errorf("%q: raw = %q", c.in, tok.Raw)
		}
		if end, _ := tk.Next(); end.Kind != json.End {
			t.Errorf("%q: trailing kind = %v, want end", c.in, end.Kind)
		}
	}
}

func TestTokenizerNumberOverflow(t *testing.T) {
	tok, _ := json.NewTokenizer([]byte("1e999")).Next()
	if tok.Kind != json.Number || !math.IsInf(tok.Number, 1) {
		t.Errorf("1e999 = %v %v, want +Inf number", tok.Kind, tok.Number)
	}
}

func TestTokenizerStrings(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{`""`, ""},
		{`"7"`, "7"},
		{`"\t"`, `\t`},
		{`"abc \t \r .,\/'"`, `abc \t \r .,\/'`},
		{`"\""`, `\"`},
		{`"\u1234"`, `\u1234`},
		{`"codec"`, "codec"},
	}
	for _, c := range cases {
		data := []byte(c.in)
		tk := json.NewTokenizer(data)
		tok, _ := tk.Next()
		if tok.Kind != json.String {
			t.Fatalf("%q: kind = %v, want string", c.in, tok.Kind)
		}
		if string(tok.Raw) != c.want {
			t.Errorf("%q: raw = %q, want %q", c.in, tok.Raw, c.want)
		}
		if len(tok.Raw) > 0 && &tok.Raw[0] != &data[1] {
			t.Errorf("%q: raw does not borrow from the input", c.in)
		}
		if end, _ := tk.Next(); end.Kind != json.End {
			t.Errorf("%q: trailing kind = %v, want end", c.in, end.Kind)
		}
	}
}

func TestTokenizerMultiple(t *testing.T) {
	input := "null \t truefalse \r { \n ][}\"str\"12.3-12.09 ["
	tk := json.NewTokenizer([]byte(input))
	want := []json.Kind{
		json.Null, json.True, json.False, json.ObjectBegin, json.ArrayEnd,
		json.ArrayBegin, json.ObjectEnd, json.String, json.Number, json.Number,
		json.ArrayBegin, json.End,
	}
	var toks []json.Token
	for tok := range tk.All() {
		toks = append(toks, tok)
	}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(toks), len(want))
	}
	for i, tok := range toks {
		if tok.Kind != want[i] {
			t.Errorf("token %d: kind = %v, want %v", i, tok.Kind, want[i])
		}
	}
	if string(toks[7].Raw) != "str" {
		t.Errorf("string raw = %q", toks[7].Raw)
	}
	if math.Abs(toks[8].Number-12.3) > 1e-10 || math.Abs(toks[9].Number+12.09) > 1e-10 {
		t.Errorf("numbers = %v, %v", toks[8].Number, toks[9].Number)
	}
	if toks[9].Offset != 35 {
		t.Errorf("offset of -12.09 = %d, want 35", toks[9].Offset)
	}
}

func TestTokenizerInvalid(t *testing.T) {
	invalids := []string{
		"m",
		"-",
		"nulln",
		"True",
		"|",
		`" \uabcq"`,
		".4",
		"01",
		"-01",
		"3.4e--5",
		"--4",
		"1.",
		"1ef",
		"9.9 null true false /",
		"false \f",
		`"abc`,
		`"`,
		"\"a\tb\"",
		"\"a\nb\"",
		"\"a\rb\"",
		"\"a\fb\"",
		`"\x"`,
		`"\u12"`,
		`"abc\`,
		"nul",
	}
	for _, in := range invalids {
		got := kinds(t, in)
		if len(got) == 0 || got[len(got)-1] != json.Invalid {
			t.Errorf("%q: kinds = %v, want trailing invalid", in, got)
		}
	}
}

func TestTokenizerTerminalIsSticky(t *testing.T) {
	tk := json.NewTokenizer([]byte("01"))
	if tok, err := tk.Next(); err != nil || tok.Kind != json.Invalid {
		t.Fatalf("first Next = %v, %v", tok.Kind, err)
	}
	if tk.State() != json.StateInvalid {
		t.Errorf("state = %v, want invalid", tk.State())
	}
	if _, err := tk.Next(); !errors.Is(err, json.ErrTerminated) {
		t.Errorf("Next after invalid error = %v, want ErrTerminated", err)
	}

	tk = json.NewTokenizer([]byte(" "))
	tk.Next()
	if tk.State() != json.StateFinished {
		t.Errorf("state = %v, want finished", tk.State())
	}
	if _, err := tk.Next(); !errors.Is(err, json.ErrTerminated) {
		t.Errorf("Next after end error = %v, want ErrTerminated", err)
	}
}

func TestTokenizerClone(t *testing.T) {
	tk := json.NewTokenizer([]byte("[1, 2]"))
	tk.Next()
	fork := tk.Clone()
	a, _ := tk.Next()
	b, _ := fork.Next()
	if a.Kind != json.Number || b.Kind != json.Number || a.Number != b.Number {
		t.Errorf("clone diverged: %v %v / %v %v", a.Kind, a.Number, b.Kind, b.Number)
	}
	tk.Next()
	if tk.Offset() == fork.Offset() {
		t.Error("clone shares cursor with the original")
	}
}

func FuzzTokenizerTerminates(f *testing.F) {
	f.Add([]byte(`{"a": [1, -2.5e3, true, null, "xé"]}`))
	f.Add([]byte("01"))
	f.Fuzz(func(t *testing.T, in []byte) {
		tk := json.NewTokenizer(in)
		for i := 0; i <= len(in)+1; i++ {
			tok, err := tk.Next()
			if err != nil {
				t.Fatalf("unexpected error before terminal token: %v", err)
			}
			if tok.Terminal() {
				return
			}
		}
		t.Fatalf("no terminal token after %d calls", len(in)+2)
	})
}
