// Package render projects a single division step into display data:
// which bits to highlight, the explanation text and the long-division
// layout for the summary view. Everything here is a pure function of
// the trace.
package render

import (
	"fmt"
	"strings"

	"github.com/Mr-Dark-debug/gf2div/pkg/gf2"
)

// Class tags a bit position with a display role.
type Class string

const (
	ClassActive         Class = "active"
	ClassBroughtDown    Class = "brought-down"
	ClassNewQuotientBit Class = "quotient-bit-new"
)

// DividendHighlights marks the dividend positions in view for a step.
// Positions outside the dividend are dropped.
func DividendHighlights(step gf2.Step, dividendLen int) map[int][]Class {
	out := make(map[int][]Class)
	for i := step.Highlight.Start; i < step.Highlight.End; i++ {
		if i >= 0 && i < dividendLen {
			out[i] = append(out[i], ClassActive)
		}
	}
	if step.Op != nil && step.Op.HasBroughtDown() && step.Op.BroughtDown < dividendLen {
		out[step.Op.BroughtDown] = append(out[step.Op.BroughtDown], ClassBroughtDown)
	}
	return out
}

// QuotientHighlights marks the quotient bit produced by a step.
func QuotientHighlights(step gf2.Step) map[int]Class {
	if step.Op == nil || step.Op.QuotientIndex == gf2.NoIndex {
		return map[int]Class{}
	}
	return map[int]Class{step.Op.QuotientIndex: ClassNewQuotientBit}
}

// Has reports whether classes contains c.
func Has(classes []Class, c Class) bool {
	for _, x := range classes {
		if x == c {
			return true
		}
	}
	return false
}

// Explain describes step i of the trace in one paragraph.
func Explain(t gf2.Trace, i int) string {
	if i < 0 || i >= t.Len() {
		return "No step data. Check the inputs and start again."
	}
	s := t.Steps[i]
	var b strings.Builder
	fmt.Fprintf(&b, "Step %d: ", i)

	if s.Kind == gf2.KindInitial {
		fmt.Fprintf(&b, "Initial state. Dividend %s, divisor %s. The first segment of the dividend (%s) is examined.",
			t.Dividend, t.Divisor, s.Segment)
		return b.String()
	}

	if t.Degenerate {
		rem, _ := s.FinalRemainder()
		fmt.Fprintf(&b, "The dividend (%s) is shorter than the divisor (%s) or the divisor is a single bit. "+
			"The quotient is 0 and the remainder is %s.", t.Dividend, t.Divisor, rem)
		return b.String()
	}

	op := s.Op
	if op.QuotientBit == 1 {
		fmt.Fprintf(&b, "The leading bit of the current segment (%s) is 1, so the next quotient bit is 1. "+
			"XOR with the divisor (%s) gives %s.", s.Segment, op.Operand, op.Result)
	} else {
		fmt.Fprintf(&b, "The leading bit of the current segment (%s) is 0, so the next quotient bit is 0. "+
			"XOR with zeros (%s) gives %s.", s.Segment, op.Operand, op.Result)
	}

	fmt.Fprintf(&b, " The leftmost bit (%d) is dropped.", op.Result.Leading())
	switch {
	case op.HasBroughtDown():
		fmt.Fprintf(&b, " Bit %d of the dividend (%d) is brought down. New working segment: %s.",
			op.BroughtDown, t.Dividend[op.BroughtDown], op.Carried)
	case op.Terminal:
		b.WriteString(" No bits remain to bring down.")
		fmt.Fprintf(&b, " The final remainder is %s.", op.Remainder)
	default:
		fmt.Fprintf(&b, " No bit remains to bring down. New working segment: %s.", op.Carried)
	}

	if op.Terminal {
		fmt.Fprintf(&b, "\nDivision complete. Quotient %s, remainder %s.", s.Quotient, op.Remainder)
	}
	return b.String()
}
