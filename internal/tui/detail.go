package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Mr-Dark-debug/gf2div/internal/render"
	"github.com/Mr-Dark-debug/gf2div/pkg/gf2"
)

const gridLabelWidth = 10

// ────────────────────────────────────────────────────────────
// Bit grid
// ────────────────────────────────────────────────────────────

// renderGridPanel draws the dividend, divisor and quotient rows with the
// current step's highlights:
//
//	Dividend  1 1 0 0 1 1 0 0 0 0
//	                    ↓
//	Divisor   1 1 0 0 1
//	Quotient          1 0 · · · ·
func renderGridPanel(m *Model, width int) string {
	t := m.player.Trace()
	step, _ := m.player.Current()
	n := t.Dividend.Len()

	classes := render.DividendHighlights(step, n)
	cells := make([]string, n)
	marker := make([]string, n)
	for i, b := range t.Dividend {
		c := classes[i]
		style := bitStyle
		switch {
		case render.Has(c, render.ClassBroughtDown):
			style = bitBroughtDownStyle
		case render.Has(c, render.ClassActive):
			style = bitActiveStyle
		}
		cells[i] = style.Render(bitChar(b))
		marker[i] = " "
		if render.Has(c, render.ClassBroughtDown) {
			marker[i] = bitMarkerStyle.Render("↓")
		}
	}

	divisor := make([]string, t.Divisor.Len())
	for i, b := range t.Divisor {
		divisor[i] = bitStyle.Render(bitChar(b))
	}

	lines := []string{
		gridLabel("Dividend") + strings.Join(cells, " "),
		gridLabel("") + strings.Join(marker, " "),
		gridLabel("Divisor") + strings.Join(divisor, " "),
		gridLabel("Quotient") + renderQuotientRow(t, step),
	}

	return renderPanel("Division", false, lines, width, len(lines)+3)
}

// renderQuotientRow aligns quotient bit k under dividend bit m-1+k, so
// each bit sits under the last dividend bit of the window it came from.
// Bits not produced yet are shown as dots.
func renderQuotientRow(t gf2.Trace, step gf2.Step) string {
	final := t.QuotientBits()
	offset := clamp(t.Dividend.Len()-final.Len(), 0, t.Dividend.Len())

	fresh := render.QuotientHighlights(step)
	cells := make([]string, 0, offset+final.Len())
	for i := 0; i < offset; i++ {
		cells = append(cells, " ")
	}
	for k := 0; k < final.Len(); k++ {
		switch {
		case k >= step.Quotient.Len():
			cells = append(cells, bitPendingStyle.Render("·"))
		case fresh[k] == render.ClassNewQuotientBit:
			cells = append(cells, bitNewQuotientStyle.Render(bitChar(step.Quotient[k])))
		default:
			cells = append(cells, bitStyle.Render(bitChar(step.Quotient[k])))
		}
	}
	return strings.Join(cells, " ")
}

func gridLabel(s string) string {
	return gridLabelStyle.Width(gridLabelWidth).Render(s)
}

func bitChar(b byte) string {
	if b == 1 {
		return "1"
	}
	return "0"
}

// ────────────────────────────────────────────────────────────
// Current values
// ────────────────────────────────────────────────────────────

// renderDetailPanel lists the values of the current step and a progress
// bar over the whole trace.
func renderDetailPanel(m *Model, width, height int) string {
	step, ok := m.player.Current()
	if !ok {
		return renderPanel("Values", m.activePane == PaneDetail,
			[]string{emptyStateStyle.Render("No step data.")}, width, height)
	}

	var lines []string
	lines = append(lines, detailRow("Kind", step.Kind.String()))
	lines = append(lines, detailRow("Segment", step.Segment.String()))
	lines = append(lines, detailRow("Quotient", orDash(step.Quotient)))

	if step.Op != nil {
		lines = append(lines, "")
		lines = append(lines, detailSectionStyle.Render("── Operation ──"))
		lines = append(lines, detailRow("Bit", fmt.Sprintf("%d", step.Op.QuotientBit)))
		lines = append(lines, detailRow("Operand", step.Op.Operand.String()))
		lines = append(lines, detailRow("Result", step.Op.Result.String()))
		lines = append(lines, detailRow("Carried", orDash(step.Op.Carried)))
		if step.Op.HasBroughtDown() {
			lines = append(lines, detailRow("Brought", fmt.Sprintf("bit %d", step.Op.BroughtDown)))
		}
		if rem, ok := step.FinalRemainder(); ok {
			lines = append(lines, detailRow("Remainder", orDash(rem)))
		}
	}

	lines = append(lines, "")
	lines = append(lines, renderProgress(m.player.Index(), m.player.Len(), minBar(width-4)))

	return renderPanel("Values", m.activePane == PaneDetail, lines, width, height)
}

// ── helpers ──

func detailRow(label, value string) string {
	return detailLabelStyle.Width(gridLabelWidth).Render(label) + detailValueStyle.Render(value)
}

func orDash(b gf2.Bits) string {
	if b.Len() == 0 {
		return "-"
	}
	return b.String()
}

func minBar(w int) int {
	return clamp(w, 4, 40)
}

func renderProgress(index, total, barWidth int) string {
	if total == 0 {
		return ""
	}
	filled := barWidth * (index + 1) / total
	bar := progressFilledStyle.Render(strings.Repeat("█", filled)) +
		progressEmptyStyle.Render(strings.Repeat("░", barWidth-filled))
	return lipgloss.JoinHorizontal(lipgloss.Top, bar,
		dimStyle.Render(fmt.Sprintf(" %d%%", (index+1)*100/total)))
}
