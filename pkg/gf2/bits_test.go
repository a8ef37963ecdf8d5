package gf2

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	b, err := Parse("0101")
	require.NoError(t, err)
	assert.Equal(t, Bits{0, 1, 0, 1}, b)
	assert.Equal(t, "0101", b.String())

	empty, err := Parse("")
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Len())

	_, err = Parse("10a1")
	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, 2, perr.Pos)
	assert.Equal(t, 'a', perr.Char)
}

func TestMustParsePanics(t *testing.T) {
	assert.Panics(t, func() { MustParse("12") })
}

func TestPadLeft(t *testing.T) {
	assert.Equal(t, "00101", MustParse("101").PadLeft(5).String())
	assert.Equal(t, "101", MustParse("101").PadLeft(2).String(), "padding never truncates")
	assert.Equal(t, "", Bits{}.PadLeft(0).String())
}

func TestTrimLeadingZeros(t *testing.T) {
	assert.Equal(t, "101", MustParse("00101").TrimLeadingZeros().String())
	assert.Equal(t, "0", MustParse("0000").TrimLeadingZeros().String())
	assert.Equal(t, "0", Bits{}.TrimLeadingZeros().String())
}

func TestSliceClamps(t *testing.T) {
	b := MustParse("1100")
	assert.Equal(t, "11", b.Slice(0, 2).String())
	assert.Equal(t, "1100", b.Slice(-3, 99).String())
	assert.Equal(t, "", b.Slice(3, 1).String())
}

func TestXor(t *testing.T) {
	assert.Equal(t, "0110", Xor(MustParse("1010"), MustParse("1100")).String())
	assert.Panics(t, func() { Xor(MustParse("1"), MustParse("10")) })
}

func TestBitsDoNotShareStorage(t *testing.T) {
	b := MustParse("10")
	c := b.Append(1)
	c[0] = 0
	assert.Equal(t, "10", b.String())
}

func TestMultiply(t *testing.T) {
	tests := []struct {
		a, b, want string
	}{
		{"1", "1", "1"},
		{"0", "101", "0"},
		{"11", "11", "101"},
		{"101", "11", "1111"},
		{"0011", "011", "101"},
		{"", "1", "0"},
		{"000", "000", "0"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, Multiply(MustParse(tc.a), MustParse(tc.b)).String(), "%s * %s", tc.a, tc.b)
	}
}

func TestMultiplyCommutative(t *testing.T) {
	for i := uint(0); i < 1<<6; i++ {
		for j := uint(0); j < 1<<6; j++ {
			a, b := fromUint(i, 6), fromUint(j, 6)
			require.Equal(t, Multiply(a, b), Multiply(b, a), "i=%d, j=%d", i, j)
		}
	}
}

func fromUint(v uint, width int) Bits {
	b := make(Bits, width)
	for i := width - 1; i >= 0; i-- {
		b[i] = byte(v & 1)
		v >>= 1
	}
	return b
}

func TestAdd(t *testing.T) {
	assert.Equal(t, "1100110000", Add(MustParse("1100101111"), MustParse("11111")).String())
	assert.Equal(t, "0", Add(MustParse("101"), MustParse("0101")).String())
	assert.Equal(t, "1", Add(MustParse(""), MustParse("1")).String())
}

func TestQuotientTimesDivisorPlusRemainder(t *testing.T) {
	for i := uint(1); i < 1<<8; i++ {
		for j := uint(2); j < 1<<4; j++ {
			dividend, divisor := fromUint(i, 8), fromUint(j, 4).TrimLeadingZeros()
			q, r := Divide(dividend, divisor)
			got := Add(Multiply(q, divisor), r)
			require.Equal(t, dividend.TrimLeadingZeros(), got, "i=%d, j=%d", i, j)
		}
	}
}
