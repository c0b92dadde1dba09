// File: core/base64/base64.go
// Package base64 implements the strict RFC 4648 Base64 codec used by the
// WebSocket handshake layer.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Only the standard alphabet with '=' padding is supported. Decoding rejects
// every non-canonical form instead of normalizing it.

package base64

import "errors"

const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"

const (
	pad     = '='
	invalid = 0xff
)

// Decoding errors. Decode never panics on untrusted input; it reports one of these.
var (
	ErrMalformedLength  = errors.New("base64: encoded length is not a multiple of 4")
	ErrInvalidCharacter = errors.New("base64: character outside alphabet")
	ErrMisplacedPadding = errors.New("base64: misplaced padding")
	ErrNonCanonical     = errors.New("base64: non-zero bits adjacent to padding")
	ErrShortBuffer      = errors.New("base64: destination too small")
)

var decodeMap = func() [256]byte {
	var m [256]byte
	for i := range m {
		m[i] = invalid
	}
	for i := 0; i < len(alphabet); i++ {
		m[alphabet[i]] = byte(i)
	}
	return m
}()

// EncodedSize returns the exact length of the encoding of n bytes,
// padding included.
func EncodedSize(n int) int {
	return ((n + 2) / 3) * 4
}

// DecodedSize returns the number of bytes encoded by a padded Base64 value.
// It only inspects the length and the trailing padding; use Decode to validate.
func DecodedSize(encoded []byte) (int, error) {
	n := len(encoded)
	if n == 0 {
		return 0, nil
	}
	if n%4 != 0 {
		return 0, ErrMalformedLength
	}
	pads := 0
	if encoded[n-1] == pad {
		pads++
		if encoded[n-2] == pad {
			pads++
		}
	}
	return 3*(n/4) - pads, nil
}

// Encode writes the Base64 encoding of src into dst and returns the number
// of bytes written. dst must hold at least EncodedSize(len(src)) bytes.
func Encode(dst, src []byte) int {
	size := EncodedSize(len(src))
	if len(dst) < size {
		panic("base64: Encode destination too small")
	}

	in, out := 0, 0
	for full := len(src) / 3 * 3; in < full; in += 3 {
		b0, b1, b2 := src[in], src[in+1], src[in+2]
		dst[out] = alphabet[b0>>2]
		dst[out+1] = alphabet[(b0&0x03)<<4|b1>>4]
		dst[out+2] = alphabet[(b1&0x0f)<<2|b2>>6]
		dst[out+3] = alphabet[b2&0x3f]
		out += 4
	}

	switch len(src) - in {
	case 1:
		b0 := src[in]
		dst[out] = alphabet[b0>>2]
		dst[out+1] = alphabet[(b0&0x03)<<4]
		dst[out+2] = pad
		dst[out+3] = pad
		out += 4
	case 2:
		b0, b1 := src[in], src[in+1]
		dst[out] = alphabet[b0>>2]
		dst[out+1] = alphabet[(b0&0x03)<<4|b1>>4]
		dst[out+2] = alphabet[(b1&0x0f)<<2]
		dst[out+3] = pad
		out += 4
	}
	return out
}

// AppendEncode appends the encoding of src to dst.
func AppendEncode(dst, src []byte) []byte {
	n := len(dst)
	size := EncodedSize(len(src))
	if cap(dst)-n < size {
		grown := make([]byte, n, n+size)
		copy(grown, dst)
		dst = grown
	}
	dst = dst[:n+size]
	Encode(dst[n:], src)
	return dst
}

// EncodeToString returns the encoding of src.
func EncodeToString(src []byte) string {
	buf := make([]byte, EncodedSize(len(src)))
	Encode(buf, src)
	return string(buf)
}

// Decode decodes src into dst and returns the number of bytes written.
// On error the contents of dst are unspecified.
func Decode(dst, src []byte) (int, error) {
	size, err := DecodedSize(src)
	if err != nil {
		return 0, err
	}
	if size == 0 {
		return 0, nil
	}
	if len(dst) < size {
		return 0, ErrShortBuffer
	}

	n := len(src)
	hasPad := src[n-1] == pad
	groups := n / 4
	if hasPad {
		groups--
	}

	in, out := 0, 0
	for i := 0; i < groups; i++ {
		c0, c1, c2, c3 := decodeMap[src[in]], decodeMap[src[in+1]], decodeMap[src[in+2]], decodeMap[src[in+3]]
		if c0|c1|c2|c3 == invalid {
			return 0, groupError(src[in : in+4])
		}
		dst[out] = c0<<2 | c1>>4
		dst[out+1] = c1<<4 | c2>>2
		dst[out+2] = c2<<6 | c3
		in += 4
		out += 3
	}

	if hasPad {
		c0, c1 := decodeMap[src[in]], decodeMap[src[in+1]]
		if c0 == invalid || c1 == invalid {
			return 0, groupError(src[in : in+2])
		}
		dst[out] = c0<<2 | c1>>4
		out++
		if ch2 := src[in+2]; ch2 != pad {
			c2 := decodeMap[ch2]
			if c2 == invalid {
				return 0, ErrInvalidCharacter
			}
			if c2&0x03 != 0 {
				return 0, ErrNonCanonical
			}
			dst[out] = c1<<4 | c2>>2
			out++
		} else if c1&0x0f != 0 {
			return 0, ErrNonCanonical
		}
	}
	return out, nil
}

// DecodeString decodes s into a freshly allocated slice.
func DecodeString(s string) ([]byte, error) {
	src := []byte(s)
	size, err := DecodedSize(src)
	if err != nil {
		return nil, err
	}
	dst := make([]byte, size)
	n, err := Decode(dst, src)
	if err != nil {
		return nil, err
	}
	return dst[:n], nil
}

// groupError classifies a group that failed the alphabet check.
func groupError(group []byte) error {
	for _, c := range group {
		if c == pad {
			return ErrMisplacedPadding
		}
	}
	return ErrInvalidCharacter
}
