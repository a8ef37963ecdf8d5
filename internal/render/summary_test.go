package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mr-Dark-debug/gf2div/pkg/gf2"
)

func TestSummaryRows(t *testing.T) {
	rows := SummaryRows(exampleTrace())
	require.Len(t, rows, 6)

	assert.Equal(t, 1, rows[0].Step)
	assert.Equal(t, 0, rows[0].Offset)
	assert.Equal(t, "11001", rows[0].Operand.String())
	assert.Equal(t, byte(1), rows[0].Bit)

	assert.Equal(t, 5, rows[5].Offset)
	assert.Equal(t, "10000", rows[5].Segment.String())
	assert.Equal(t, "01001", rows[5].Result.String())
}

func TestLongDivision(t *testing.T) {
	out := LongDivision(exampleTrace())
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")

	assert.Equal(t, "1100110000 : 11001 = 100001", lines[0])
	assert.Equal(t, "11001", lines[1])
	assert.Equal(t, " 00001", lines[4])
	assert.Equal(t, "remainder: 1001", lines[len(lines)-1])
	assert.Equal(t, "     01001", lines[len(lines)-2])
}

func TestLongDivisionEqualLength(t *testing.T) {
	out := LongDivision(gf2.Generate(gf2.MustParse("1101"), gf2.MustParse("1011")))
	assert.Contains(t, out, "1101 : 1011 = 1\n")
	assert.Contains(t, out, "remainder: 110\n")
}
