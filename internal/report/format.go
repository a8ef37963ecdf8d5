package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/Mr-Dark-debug/gf2div/internal/render"
	"github.com/Mr-Dark-debug/gf2div/pkg/gf2"
	"github.com/Mr-Dark-debug/gf2div/pkg/timeutil"
)

// Format selects an output encoding.
type Format string

const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
)

// ParseFormat validates a --format value.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatText, FormatMarkdown, FormatJSON:
		return f, nil
	case "md":
		return FormatMarkdown, nil
	default:
		return "", fmt.Errorf("unknown format %q (want text, markdown or json)", s)
	}
}

// Printer writes reports to an output stream. Color is applied only to
// the text format and only when enabled.
type Printer struct {
	w     io.Writer
	color bool

	title  *color.Color
	label  *color.Color
	one    *color.Color
	zero   *color.Color
	good   *color.Color
	warn   *color.Color
	muted  *color.Color
	layout string
}

// NewPrinter returns a printer writing to w. timeLayout is the strftime
// pattern used for history timestamps.
func NewPrinter(w io.Writer, useColor bool, timeLayout string) *Printer {
	p := &Printer{
		w:      w,
		color:  useColor,
		title:  color.New(color.FgCyan, color.Bold),
		label:  color.New(color.FgHiBlack),
		one:    color.New(color.FgHiWhite, color.Bold),
		zero:   color.New(color.FgWhite),
		good:   color.New(color.FgGreen),
		warn:   color.New(color.FgYellow),
		muted:  color.New(color.FgHiBlack),
		layout: timeLayout,
	}
	for _, c := range []*color.Color{p.title, p.label, p.one, p.zero, p.good, p.warn, p.muted} {
		if useColor {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// Division writes the report of trace t in format f.
func (p *Printer) Division(t gf2.Trace, f Format) error {
	s := Summarize(t)
	switch f {
	case FormatJSON:
		return writeJSON(p.w, struct {
			Summary *Summary  `json:"summary"`
			Trace   gf2.Trace `json:"trace"`
		}{s, t})
	case FormatMarkdown:
		_, err := io.WriteString(p.w, Markdown(s, t))
		return err
	default:
		return p.text(s, t)
	}
}

func (p *Printer) bits(b string) string {
	if !p.color {
		return b
	}
	var sb strings.Builder
	for _, c := range b {
		if c == '1' {
			sb.WriteString(p.one.Sprint("1"))
		} else {
			sb.WriteString(p.zero.Sprint("0"))
		}
	}
	return sb.String()
}

func (p *Printer) text(s *Summary, t gf2.Trace) error {
	var b strings.Builder

	b.WriteString(p.title.Sprint("GF(2) long division") + "\n\n")
	row := func(name, bits, poly string) {
		fmt.Fprintf(&b, "  %s %s  %s\n", p.label.Sprintf("%-10s", name), p.bits(bits), p.muted.Sprintf("(%s)", poly))
	}
	row("dividend", s.Dividend, s.DividendPoly)
	row("divisor", s.Divisor, s.DivisorPoly)
	row("quotient", s.Quotient, s.QuotientPoly)
	row("remainder", s.Remainder, s.RemainderPoly)
	fmt.Fprintf(&b, "  %s %d (%d XOR)\n\n", p.label.Sprintf("%-10s", "steps"), s.StepCount, s.Operations)

	for _, r := range render.SummaryRows(t) {
		fmt.Fprintf(&b, "  %s %s%s ⊕ %s = %s\n",
			p.muted.Sprintf("#%-2d q=%d", r.Step, r.Bit),
			strings.Repeat(" ", r.Offset), p.bits(r.Segment.String()),
			p.bits(r.Operand.String()), p.bits(r.Result.String()))
	}

	if s.Verified {
		b.WriteString("\n  " + p.good.Sprint("✓ quotient·divisor + remainder = dividend") + "\n")
	}
	for _, w := range s.Warnings {
		b.WriteString("  " + p.warn.Sprint("⚠ "+w) + "\n")
	}

	_, err := io.WriteString(p.w, b.String())
	return err
}

// Markdown generates a markdown report with a step table and the
// written-out long division.
func Markdown(s *Summary, t gf2.Trace) string {
	var b strings.Builder

	b.WriteString("# GF(2) Division Report\n\n")
	fmt.Fprintf(&b, "**Generated:** %s\n\n", s.GeneratedAt)

	b.WriteString("## Result\n\n")
	b.WriteString("| | Bits | Polynomial |\n")
	b.WriteString("|---|------|------------|\n")
	fmt.Fprintf(&b, "| Dividend | `%s` | %s |\n", s.Dividend, s.DividendPoly)
	fmt.Fprintf(&b, "| Divisor | `%s` | %s |\n", s.Divisor, s.DivisorPoly)
	fmt.Fprintf(&b, "| Quotient | `%s` | %s |\n", s.Quotient, s.QuotientPoly)
	fmt.Fprintf(&b, "| Remainder | `%s` | %s |\n\n", s.Remainder, s.RemainderPoly)

	b.WriteString("## Steps\n\n")
	b.WriteString("| Step | Segment | Quotient bit | Operand | Result | Carried |\n")
	b.WriteString("|------|---------|--------------|---------|--------|---------|\n")
	for i, st := range t.Steps {
		if st.Op == nil {
			fmt.Fprintf(&b, "| %d | `%s` | | | | |\n", i, st.Segment)
			continue
		}
		fmt.Fprintf(&b, "| %d | `%s` | %d | `%s` | `%s` | `%s` |\n",
			i, st.Segment, st.Op.QuotientBit, st.Op.Operand, st.Op.Result, st.Op.Carried)
	}
	b.WriteString("\n")

	b.WriteString("## Long Division\n\n```\n")
	b.WriteString(render.LongDivision(t))
	b.WriteString("```\n")

	if len(s.Warnings) > 0 {
		b.WriteString("\n## Warnings\n\n")
		for _, w := range s.Warnings {
			fmt.Fprintf(&b, "- %s\n", w)
		}
	}

	return b.String()
}

// History writes a history report in format f.
func (p *Printer) History(h *HistoryReport, f Format) error {
	switch f {
	case FormatJSON:
		return writeJSON(p.w, h)
	case FormatMarkdown:
		_, err := io.WriteString(p.w, p.historyMarkdown(h))
		return err
	default:
		return p.historyText(h)
	}
}

func (p *Printer) historyText(h *HistoryReport) error {
	var b strings.Builder

	if st := h.Stats; st != nil {
		b.WriteString(p.title.Sprint("History") + "\n")
		fmt.Fprintf(&b, "  %s %d (%d divisors, %d degenerate, %d exact)\n",
			p.label.Sprintf("%-10s", "divisions"), st.TotalDivisions, st.DistinctDivisors, st.Degenerate, st.ZeroRemainder)
		if st.TotalDivisions > 0 {
			fmt.Fprintf(&b, "  %s %s (%d)\n", p.label.Sprintf("%-10s", "top"), p.bits(st.TopDivisor), st.TopDivisorCount)
			fmt.Fprintf(&b, "  %s %.1f\n", p.label.Sprintf("%-10s", "avg steps"), st.AvgSteps)
		}
		b.WriteString("\n")
	}

	if len(h.Recent) == 0 {
		b.WriteString(p.muted.Sprint("  no divisions recorded") + "\n")
	}
	for _, d := range h.Recent {
		fmt.Fprintf(&b, "  %s  %s  %s ÷ %s = %s r %s\n",
			p.muted.Sprintf("#%-4d", d.ID),
			p.label.Sprint(timeutil.FormatTimestamp(d.CreatedAt, p.layout)),
			p.bits(d.Dividend), p.bits(d.Divisor), p.bits(d.Quotient), p.bits(d.Remainder))
	}

	_, err := io.WriteString(p.w, b.String())
	return err
}

func (p *Printer) historyMarkdown(h *HistoryReport) string {
	var b strings.Builder

	b.WriteString("# gf2div History\n\n")
	fmt.Fprintf(&b, "**Generated:** %s\n\n", h.GeneratedAt)

	if st := h.Stats; st != nil {
		b.WriteString("| Metric | Value |\n")
		b.WriteString("|--------|-------|\n")
		fmt.Fprintf(&b, "| Divisions | %d |\n", st.TotalDivisions)
		fmt.Fprintf(&b, "| Distinct Divisors | %d |\n", st.DistinctDivisors)
		fmt.Fprintf(&b, "| Degenerate | %d |\n", st.Degenerate)
		fmt.Fprintf(&b, "| Zero Remainder | %d |\n", st.ZeroRemainder)
		fmt.Fprintf(&b, "| Average Steps | %.1f |\n", st.AvgSteps)
		if st.TopDivisor != "" {
			fmt.Fprintf(&b, "| Top Divisor | `%s` (%d) |\n", st.TopDivisor, st.TopDivisorCount)
		}
		b.WriteString("\n")
	}

	if len(h.Recent) > 0 {
		b.WriteString("| ID | Time | Dividend | Divisor | Quotient | Remainder |\n")
		b.WriteString("|----|------|----------|---------|----------|-----------|\n")
		for _, d := range h.Recent {
			fmt.Fprintf(&b, "| %d | %s | `%s` | `%s` | `%s` | `%s` |\n",
				d.ID, timeutil.FormatTimestamp(d.CreatedAt, p.layout),
				d.Dividend, d.Divisor, d.Quotient, d.Remainder)
		}
	}
	return b.String()
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding json: %w", err)
	}
	return nil
}
