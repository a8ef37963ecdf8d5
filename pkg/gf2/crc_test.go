package gf2

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestCRC(t *testing.T) {
	// 11010011101100 with x^3 + x + 1 is the textbook example.
	crc, err := CRC(MustParse("11010011101100"), MustParse("1011"))
	require.NoError(t, err)
	assert.Equal(t, "100", crc.String())

	// The default visualizer dividend is 110011 augmented by four zeros.
	crc, err = CRC(MustParse("110011"), MustParse("11001"))
	require.NoError(t, err)
	assert.Equal(t, "1001", crc.String())
}

func TestCRCRejectsBadGenerator(t *testing.T) {
	for _, g := range []string{"", "1", "0110"} {
		_, err := CRC(MustParse("1011"), MustParse(g))
		assert.True(t, errors.Is(err, ErrInvalidGenerator), "generator %q", g)
	}
}

func TestVerify(t *testing.T) {
	ok, err := Verify(MustParse("11010011101100100"), MustParse("1011"))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = Verify(MustParse("11010011101100101"), MustParse("1011"))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCodewordRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(0, 40).Draw(t, "n")
		msg := make(Bits, n)
		for i := range msg {
			msg[i] = byte(rapid.IntRange(0, 1).Draw(t, "bit"))
		}
		m := rapid.IntRange(2, 17).Draw(t, "m")
		gen := make(Bits, m)
		gen[0] = 1
		for i := 1; i < m; i++ {
			gen[i] = byte(rapid.IntRange(0, 1).Draw(t, "gen bit"))
		}

		cw, err := Codeword(msg, gen)
		require.NoError(t, err)
		assert.Equal(t, n+m-1, cw.Len())

		ok, err := Verify(cw, gen)
		require.NoError(t, err)
		assert.True(t, ok)
	})
}
