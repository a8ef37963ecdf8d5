// Package gf2 implements bit-string arithmetic over GF(2) and the
// step-by-step long-division trace used by the visualizer.
//
// Polynomials are written most-significant coefficient first, so the
// bit-string "1011" is x^3 + x + 1. Leading zeros are kept: a Bits value
// is a positional value, not a normalized polynomial.
package gf2

import (
	"bytes"
	"fmt"
)

// Bits is a sequence of binary digits, each element 0 or 1.
//
// Bits values are treated as immutable. Every function and method in
// this package returns a fresh slice and never writes to its inputs.
type Bits []byte

// ParseError reports a character that is not '0' or '1'.
type ParseError struct {
	Pos  int
	Char rune
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid bit %q at position %d", e.Char, e.Pos)
}

// Parse converts a string of '0' and '1' characters to Bits.
// The empty string parses to an empty Bits.
func Parse(s string) (Bits, error) {
	b := make(Bits, 0, len(s))
	for i, c := range s {
		switch c {
		case '0':
			b = append(b, 0)
		case '1':
			b = append(b, 1)
		default:
			return nil, &ParseError{Pos: i, Char: c}
		}
	}
	return b, nil
}

// MustParse is like Parse but panics on invalid input.
// Use only for literals known to be valid.
func MustParse(s string) Bits {
	b, err := Parse(s)
	if err != nil {
		panic(fmt.Sprintf("gf2.MustParse(%q): %v", s, err))
	}
	return b
}

// Zeros returns n zero bits.
func Zeros(n int) Bits {
	if n < 0 {
		n = 0
	}
	return make(Bits, n)
}

// Len returns the number of bits.
func (b Bits) Len() int { return len(b) }

// String renders the bits as a string of '0' and '1'.
func (b Bits) String() string {
	buf := make([]byte, len(b))
	for i, v := range b {
		buf[i] = '0' + v&1
	}
	return string(buf)
}

// Equal reports whether a and b have the same length and bits.
func (b Bits) Equal(o Bits) bool {
	return bytes.Equal(b, o)
}

// Leading returns the first bit, or 0 for an empty string.
func (b Bits) Leading() byte {
	if len(b) == 0 {
		return 0
	}
	return b[0]
}

// IsZero reports whether every bit is 0. The empty string is zero.
func (b Bits) IsZero() bool {
	for _, v := range b {
		if v != 0 {
			return false
		}
	}
	return true
}

// Slice returns a copy of b[from:to], clamping both bounds to the
// valid range.
func (b Bits) Slice(from, to int) Bits {
	from = clampIndex(from, len(b))
	to = clampIndex(to, len(b))
	if to < from {
		to = from
	}
	out := make(Bits, to-from)
	copy(out, b[from:to])
	return out
}

// Append returns b followed by the given bits.
func (b Bits) Append(bits ...byte) Bits {
	out := make(Bits, len(b), len(b)+len(bits))
	copy(out, b)
	return append(out, bits...)
}

// Concat returns b followed by o.
func (b Bits) Concat(o Bits) Bits {
	return b.Append(o...)
}

// PadLeft returns b left-padded with zeros to length n. If b is already
// at least n bits long it is returned unchanged (as a copy); padding
// never truncates.
func (b Bits) PadLeft(n int) Bits {
	if len(b) >= n {
		return b.Slice(0, len(b))
	}
	out := make(Bits, n)
	copy(out[n-len(b):], b)
	return out
}

// TrimLeadingZeros drops leading zero bits. An all-zero or empty string
// collapses to the single bit 0.
func (b Bits) TrimLeadingZeros() Bits {
	for i, v := range b {
		if v != 0 {
			return b.Slice(i, len(b))
		}
	}
	return Bits{0}
}

// MarshalText encodes the bits as a '0'/'1' string, so JSON and YAML
// show "1011" instead of a base64 blob.
func (b Bits) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// UnmarshalText parses a '0'/'1' string.
func (b *Bits) UnmarshalText(text []byte) error {
	v, err := Parse(string(text))
	if err != nil {
		return err
	}
	*b = v
	return nil
}

// Xor returns the position-by-position exclusive or of a and b.
// It panics if the lengths differ.
func Xor(a, b Bits) Bits {
	if len(a) != len(b) {
		panic(fmt.Sprintf("gf2.Xor: length mismatch %d != %d", len(a), len(b)))
	}
	out := make(Bits, len(a))
	for i := range a {
		out[i] = (a[i] ^ b[i]) & 1
	}
	return out
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i > n {
		return n
	}
	return i
}
