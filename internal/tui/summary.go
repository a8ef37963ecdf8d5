package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Mr-Dark-debug/gf2div/internal/render"
	"github.com/Mr-Dark-debug/gf2div/internal/report"
)

// renderSummary shows the written-out long division next to the result
// in polynomial form.
func renderSummary(m *Model, height int) string {
	t := m.player.Trace()
	s := report.Summarize(t)

	var lines []string
	lines = append(lines, panelTitleStyle.Render("Summary"), "")
	lines = append(lines, detailRow("Quotient", s.Quotient+dimStyle.Render("  "+s.QuotientPoly)))
	lines = append(lines, detailRow("Remainder", s.Remainder+dimStyle.Render("  "+s.RemainderPoly)))
	lines = append(lines, detailRow("Steps", fmt.Sprintf("%d total, %d XOR", s.StepCount, s.Operations)))
	if s.Verified {
		lines = append(lines, historyExactStyle.Render("✓ quotient·divisor + remainder = dividend"))
	}
	for _, w := range s.Warnings {
		lines = append(lines, historyRemainderStyle.Render(w))
	}

	lines = append(lines, "", detailSectionStyle.Render("── Long division ──"))
	for _, l := range strings.Split(strings.TrimRight(render.LongDivision(t), "\n"), "\n") {
		lines = append(lines, detailValueStyle.Render(l))
	}

	if len(lines) > height {
		lines = lines[:height]
	}
	body := panelStyle.Width(m.width).Render(strings.Join(lines, "\n"))
	return lipgloss.NewStyle().Height(height).Render(body)
}
