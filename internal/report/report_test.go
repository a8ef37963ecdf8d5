package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mr-Dark-debug/gf2div/internal/database"
	"github.com/Mr-Dark-debug/gf2div/pkg/gf2"
)

func generate(dividend, divisor string) gf2.Trace {
	return gf2.Generate(gf2.MustParse(dividend), gf2.MustParse(divisor))
}

func TestPolynomial(t *testing.T) {
	assert.Equal(t, "x^3 + x + 1", Polynomial(gf2.MustParse("1011")))
	assert.Equal(t, "x^4 + x^3 + 1", Polynomial(gf2.MustParse("11001")))
	assert.Equal(t, "x", Polynomial(gf2.MustParse("010")))
	assert.Equal(t, "0", Polynomial(gf2.MustParse("000")))
	assert.Equal(t, "0", Polynomial(nil))
}

func TestSummarize(t *testing.T) {
	s := Summarize(generate("1100110000", "11001"))
	assert.Equal(t, "100001", s.Quotient)
	assert.Equal(t, "1001", s.Remainder)
	assert.Equal(t, "x^3 + 1", s.RemainderPoly)
	assert.Equal(t, 7, s.StepCount)
	assert.Equal(t, 6, s.Operations)
	assert.True(t, s.Verified)
	assert.Empty(t, s.Warnings)
}

func TestSummarizeDegenerate(t *testing.T) {
	s := Summarize(generate("110", "1"))
	assert.True(t, s.Degenerate)
	assert.Equal(t, "0", s.Quotient)
	assert.Equal(t, "110", s.Remainder)
	assert.True(t, s.Verified)
	require.Len(t, s.Warnings, 1)
	assert.Contains(t, s.Warnings[0], "not carried out")
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("JSON")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, f)

	f, err = ParseFormat("md")
	require.NoError(t, err)
	assert.Equal(t, FormatMarkdown, f)

	_, err = ParseFormat("xml")
	assert.ErrorContains(t, err, "unknown format")
}

func TestPrinterText(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, false, "")
	require.NoError(t, p.Division(generate("1100110000", "11001"), FormatText))

	out := buf.String()
	assert.Contains(t, out, "quotient   100001")
	assert.Contains(t, out, "remainder  1001")
	assert.Contains(t, out, "11001 ⊕ 11001 = 00000")
	assert.Contains(t, out, "✓ quotient·divisor + remainder = dividend")
	assert.NotContains(t, out, "\x1b[", "color must be off")
}

func TestPrinterMarkdown(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, false, "")
	require.NoError(t, p.Division(generate("101", "11"), FormatMarkdown))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "# GF(2) Division Report"))
	assert.Contains(t, out, "| Quotient | `11` | x + 1 |")
	assert.Contains(t, out, "| 1 | `10` | 1 | `11` | `01` | `11` |")
	assert.Contains(t, out, "101 : 11 = 11\n")
}

func TestPrinterJSON(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, true, "")
	require.NoError(t, p.Division(generate("1101", "1011"), FormatJSON))

	var got struct {
		Summary Summary   `json:"summary"`
		Trace   gf2.Trace `json:"trace"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "110", got.Summary.Remainder)
	require.Len(t, got.Trace.Steps, 1)
	assert.Equal(t, "0110", got.Trace.Steps[0].Op.Result.String())
}

func TestAnalyzerHistory(t *testing.T) {
	store, err := database.NewDBService(":memory:")
	require.NoError(t, err)
	defer store.Close()

	for _, in := range [][2]string{{"101", "11"}, {"1100110000", "11001"}, {"111", "11"}} {
		require.NoError(t, store.InsertDivision(database.NewDivision(generate(in[0], in[1]), database.SourceCLI)))
	}

	h, err := NewAnalyzer(store).History(database.DivisionFilter{Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, h.Stats.TotalDivisions)
	assert.Equal(t, "11", h.Stats.TopDivisor)
	assert.Len(t, h.Recent, 2)

	var buf bytes.Buffer
	p := NewPrinter(&buf, false, "%Y")
	require.NoError(t, p.History(h, FormatText))
	assert.Contains(t, buf.String(), "divisions  3 (2 divisors, 0 degenerate, 1 exact)")

	buf.Reset()
	require.NoError(t, p.History(h, FormatMarkdown))
	assert.Contains(t, buf.String(), "| Top Divisor | `11` (2) |")
}
