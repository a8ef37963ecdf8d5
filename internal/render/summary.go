package render

import (
	"strings"

	"github.com/Mr-Dark-debug/gf2div/pkg/gf2"
)

// Row is one XOR block of the written-out long division.
type Row struct {
	Step    int
	Offset  int
	Segment gf2.Bits
	Operand gf2.Bits
	Result  gf2.Bits
	Bit     byte
}

// SummaryRows lists every operation step of t, aligned under the
// dividend by Offset.
func SummaryRows(t gf2.Trace) []Row {
	var rows []Row
	for i, s := range t.Steps {
		if s.Op == nil {
			continue
		}
		rows = append(rows, Row{
			Step:    i,
			Offset:  s.Highlight.Start,
			Segment: s.Segment,
			Operand: s.Op.Operand,
			Result:  s.Op.Result,
			Bit:     s.Op.QuotientBit,
		})
	}
	return rows
}

// LongDivision writes the whole division in the pen-and-paper layout:
//
//	1100110000 : 11001 = 100001
//	11001
//	-----
//	 00001
//	 ...
//
// Each block is shifted right by its window offset.
func LongDivision(t gf2.Trace) string {
	var b strings.Builder
	b.WriteString(t.Dividend.String())
	b.WriteString(" : ")
	b.WriteString(t.Divisor.String())
	b.WriteString(" = ")
	b.WriteString(t.QuotientBits().String())
	b.WriteString("\n")

	rows := SummaryRows(t)
	for _, r := range rows {
		pad := strings.Repeat(" ", r.Offset)
		b.WriteString(pad + r.Segment.String() + "\n")
		b.WriteString(pad + r.Operand.String() + "\n")
		b.WriteString(pad + strings.Repeat("-", r.Operand.Len()) + "\n")
	}
	if len(rows) > 0 {
		last := rows[len(rows)-1]
		b.WriteString(strings.Repeat(" ", last.Offset) + last.Result.String() + "\n")
	}
	b.WriteString("remainder: " + t.Remainder().String() + "\n")
	return b.String()
}
