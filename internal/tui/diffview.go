package tui

import (
	"strings"

	"github.com/Mr-Dark-debug/gf2div/internal/render"
	"github.com/Mr-Dark-debug/gf2div/pkg/gf2"
)

// renderXorView shows the current XOR bit by bit. Result bits that
// differ from the segment are highlighted and the leading result bit,
// which is dropped before the next step, is struck through.
func renderXorView(step gf2.Step) []string {
	if step.Op == nil {
		return []string{
			xorHeaderStyle.Render("  segment  ") + xorBits(step.Segment, nil, false),
		}
	}

	op := step.Op
	return []string{
		xorHeaderStyle.Render("  segment  ") + xorBits(step.Segment, nil, false),
		xorHeaderStyle.Render("⊕ operand  ") + xorBits(op.Operand, nil, false),
		xorHeaderStyle.Render("           ") + dimStyle.Render(strings.Repeat("─", maxInt(op.Result.Len()*2-1, 1))),
		xorHeaderStyle.Render("= result   ") + xorBits(op.Result, op.Operand, true),
	}
}

// xorBits renders bits. With flips set, positions where flips holds a 1
// are marked as changed. dropLead strikes through the first bit.
func xorBits(bits, flips gf2.Bits, dropLead bool) string {
	cells := make([]string, bits.Len())
	for i, b := range bits {
		switch {
		case dropLead && i == 0:
			cells[i] = xorDropStyle.Render(bitChar(b))
		case flips != nil && i < flips.Len() && flips[i] == 1:
			cells[i] = xorFlipStyle.Render(bitChar(b))
		case flips != nil:
			cells[i] = xorResultStyle.Render(bitChar(b))
		default:
			cells[i] = xorKeepStyle.Render(bitChar(b))
		}
	}
	return strings.Join(cells, " ")
}

// renderXorPanel combines the XOR view with the step explanation.
func renderXorPanel(m *Model, width, height int) string {
	step, _ := m.player.Current()

	lines := renderXorView(step)
	lines = append(lines, "")

	text := render.Explain(m.player.Trace(), m.player.Index())
	wrapped := explainStyle.Width(maxInt(width-4, 10)).Render(text)
	lines = append(lines, strings.Split(wrapped, "\n")...)

	return renderPanel("XOR", m.activePane == PaneXor, lines, width, height)
}
