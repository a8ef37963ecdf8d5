package gf2

import "fmt"

// NoIndex marks an index field that does not point anywhere, such as the
// brought-down bit of a step that consumed the last dividend bit.
const NoIndex = -1

// StepKind discriminates the two shapes a division step can take.
type StepKind int

const (
	// KindInitial is the setup step shown before any XOR is performed.
	KindInitial StepKind = iota
	// KindOperation is a step that produces a quotient bit and an XOR.
	KindOperation
)

func (k StepKind) String() string {
	switch k {
	case KindInitial:
		return "initial"
	case KindOperation:
		return "operation"
	default:
		return "unknown"
	}
}

// MarshalText lets StepKind appear by name in JSON.
func (k StepKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText parses a kind written by MarshalText.
func (k *StepKind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "initial":
		*k = KindInitial
	case "operation":
		*k = KindOperation
	default:
		return fmt.Errorf("unknown step kind %q", text)
	}
	return nil
}

// Range is a half-open interval [Start, End) of dividend indices.
type Range struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Contains reports whether i lies in the range.
func (r Range) Contains(i int) bool { return i >= r.Start && i < r.End }

// Len returns the number of indices covered.
func (r Range) Len() int {
	if r.End < r.Start {
		return 0
	}
	return r.End - r.Start
}

// Operation holds the fields that only exist once a quotient bit has
// been chosen.
type Operation struct {
	QuotientBit   byte `json:"quotient_bit"`
	QuotientIndex int  `json:"quotient_index"`
	Operand       Bits `json:"operand"`
	Result        Bits `json:"result"`
	Carried       Bits `json:"carried"`
	BroughtDown   int  `json:"brought_down"`
	Terminal      bool `json:"terminal"`
	Remainder     Bits `json:"remainder,omitempty"`
}

// HasBroughtDown reports whether a dividend bit was appended this step.
func (o *Operation) HasBroughtDown() bool { return o.BroughtDown != NoIndex }

// Step is one snapshot of the division. Op is nil exactly when Kind is
// KindInitial.
type Step struct {
	Kind      StepKind   `json:"kind"`
	Quotient  Bits       `json:"quotient"`
	Segment   Bits       `json:"segment"`
	Highlight Range      `json:"highlight"`
	Op        *Operation `json:"op,omitempty"`
}

// Terminal reports whether this is the last step of its trace.
func (s Step) Terminal() bool { return s.Op != nil && s.Op.Terminal }

// FinalRemainder returns the remainder carried by a terminal step.
func (s Step) FinalRemainder() (Bits, bool) {
	if !s.Terminal() {
		return nil, false
	}
	return s.Op.Remainder, true
}

// Trace is the complete step sequence for one (dividend, divisor) pair.
type Trace struct {
	Dividend   Bits   `json:"dividend"`
	Divisor    Bits   `json:"divisor"`
	Degenerate bool   `json:"degenerate"`
	Steps      []Step `json:"steps"`
}

// Len returns the number of steps.
func (t Trace) Len() int { return len(t.Steps) }

// Last returns the terminal step. ok is false for an empty trace.
func (t Trace) Last() (Step, bool) {
	if len(t.Steps) == 0 {
		return Step{}, false
	}
	return t.Steps[len(t.Steps)-1], true
}

// QuotientBits returns the final quotient.
func (t Trace) QuotientBits() Bits {
	last, ok := t.Last()
	if !ok {
		return nil
	}
	return last.Quotient
}

// Remainder returns the final remainder.
func (t Trace) Remainder() Bits {
	last, ok := t.Last()
	if !ok {
		return nil
	}
	rem, _ := last.FinalRemainder()
	return rem
}

// Operations counts the steps that performed an XOR.
func (t Trace) Operations() int {
	n := 0
	for _, s := range t.Steps {
		if s.Kind == KindOperation {
			n++
		}
	}
	return n
}

// Generate computes the long-division trace of dividend by divisor.
//
// When the divisor is a single bit or longer than the dividend the
// division is not carried out: the quotient is fixed at "0" and the
// dividend itself becomes the remainder. This holds even for the divisor
// "1", which would otherwise divide everything evenly.
//
// Otherwise the trace starts with a KindInitial step (omitted when the
// dividend and divisor have equal length, since the single operation
// already shows the starting window) followed by one KindOperation step
// per quotient bit.
func Generate(dividend, divisor Bits) Trace {
	t := Trace{
		Dividend: dividend.Slice(0, dividend.Len()),
		Divisor:  divisor.Slice(0, divisor.Len()),
	}
	n, m := dividend.Len(), divisor.Len()

	if m <= 1 || n < m {
		t.Degenerate = true
		t.Steps = []Step{degenerateStep(dividend, divisor)}
		return t
	}

	steps := make([]Step, 0, n-m+2)
	segment := dividend.Slice(0, m)
	if n > m {
		steps = append(steps, Step{
			Kind:      KindInitial,
			Quotient:  Bits{},
			Segment:   segment,
			Highlight: Range{Start: 0, End: m},
		})
	}

	zeros := Zeros(m)
	quotient := Bits{}
	for i := 0; i <= n-m; i++ {
		bit := segment.Leading()
		quotient = quotient.Append(bit)

		operand := zeros
		if bit == 1 {
			operand = divisor
		}
		result := Xor(segment, operand)
		rest := result.Slice(1, m)

		op := &Operation{
			QuotientBit:   bit,
			QuotientIndex: quotient.Len() - 1,
			Operand:       operand.Slice(0, m),
			Result:        result,
			BroughtDown:   NoIndex,
		}

		highlight := Range{Start: i, End: i + m}
		if next := m + i; next < n {
			op.BroughtDown = next
			op.Carried = rest.Append(dividend[next])
			highlight.End = next + 1
		} else {
			op.Carried = rest
			op.Terminal = true
			op.Remainder = rest.PadLeft(m - 1)
		}
		if highlight.End > n {
			highlight.End = n
		}

		steps = append(steps, Step{
			Kind:      KindOperation,
			Quotient:  quotient,
			Segment:   segment,
			Highlight: highlight,
			Op:        op,
		})
		segment = op.Carried
	}

	t.Steps = steps
	return t
}

func degenerateStep(dividend, divisor Bits) Step {
	m := divisor.Len()
	remLen := m - 1
	if remLen < 0 {
		remLen = 0
	}
	segment := dividend.Slice(0, m).PadLeft(m)
	remainder := dividend.PadLeft(remLen)
	return Step{
		Kind:      KindOperation,
		Quotient:  Bits{0},
		Segment:   segment,
		Highlight: Range{Start: 0, End: dividend.Len()},
		Op: &Operation{
			QuotientBit:   0,
			QuotientIndex: NoIndex,
			Operand:       Zeros(m),
			Result:        segment.Slice(0, m),
			Carried:       remainder,
			BroughtDown:   NoIndex,
			Terminal:      true,
			Remainder:     remainder.Slice(0, remainder.Len()),
		},
	}
}

// Divide returns the quotient and remainder of dividend by divisor as
// reported by the terminal step of Generate.
func Divide(dividend, divisor Bits) (quotient, remainder Bits) {
	t := Generate(dividend, divisor)
	return t.QuotientBits(), t.Remainder()
}
