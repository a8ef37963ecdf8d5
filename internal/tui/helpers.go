package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Mr-Dark-debug/gf2div/pkg/gf2"
)

// ────────────────────────────────────────────────────────────
// Panel chrome
// ────────────────────────────────────────────────────────────

// renderPanel draws a titled panel. The active panel gets the accent border.
func renderPanel(title string, active bool, lines []string, width, height int) string {
	style, titleStyle := panelStyle, panelTitleDimStyle
	if active {
		style, titleStyle = panelActiveStyle, panelTitleStyle
	}

	content := append([]string{titleStyle.Render(title), ""}, lines...)

	// One line goes to the top border.
	maxLines := maxInt(height-1, 1)
	if len(content) > maxLines {
		content = content[:maxLines]
	}

	return style.Width(width).Height(maxInt(height-1, 1)).Render(strings.Join(content, "\n"))
}

// ────────────────────────────────────────────────────────────
// Step labels
// ────────────────────────────────────────────────────────────

// stepLabel is the one-line description used in the step list.
func stepLabel(s gf2.Step) string {
	switch {
	case s.Op == nil:
		return "init"
	case s.Terminal():
		return fmt.Sprintf("q=%d done", s.Op.QuotientBit)
	default:
		return fmt.Sprintf("q=%d xor", s.Op.QuotientBit)
	}
}

// stepStyle returns the list style for a step kind.
func stepStyle(s gf2.Step) lipgloss.Style {
	switch {
	case s.Op == nil:
		return stepInitStyle
	case s.Terminal():
		return stepDoneStyle
	case s.Op.QuotientBit == 1:
		return stepOneStyle
	default:
		return stepZeroStyle
	}
}

// ────────────────────────────────────────────────────────────
// String helpers
// ────────────────────────────────────────────────────────────

// truncate cuts a string to maxLen and appends "..." if truncated.
func truncate(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// clamp restricts val to [lo, hi].
func clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}

// max returns the larger of a and b.
func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
