package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Mr-Dark-debug/gf2div/pkg/timeutil"
)

// renderHeader produces the top bar:
//
//	GF2DIV  │  1100110000 ÷ 11001  │  Step 3/7  │  ▶ 1.5s
func renderHeader(m *Model) string {
	brand := headerBrandStyle.Render("GF2DIV")
	sep := headerSepStyle.Render(" │ ")

	parts := []string{brand}

	t := m.player.Trace()
	if t.Len() > 0 {
		parts = append(parts, sep,
			headerMetaStyle.Render(fmt.Sprintf("%s ÷ %s", t.Dividend, t.Divisor)),
			sep,
			headerMetaStyle.Render(fmt.Sprintf("Step %d/%d", m.player.Index()+1, t.Len())),
			sep)

		speed := timeutil.FormatInterval(m.player.Interval())
		if m.player.Playing() {
			parts = append(parts, headerPlayingStyle.Render("▶ "+speed))
		} else {
			parts = append(parts, headerMetaStyle.Render("⏸ "+speed))
		}
	} else {
		parts = append(parts, sep, headerMetaStyle.Render("Polynomial Division"))
	}

	return headerBarStyle.Width(m.width).Render(strings.Join(parts, ""))
}

// renderFooter produces the bottom status bar with keyboard hints. It
// always fits on one line: hints are dropped from the middle first, then
// the status text is cut to the room left. Errors win over hints.
func renderFooter(m *Model) string {
	status := statusStyle
	if m.err != nil {
		status = statusErrorStyle
	}

	right := renderHints(fitHints(footerHints(m), m.width))
	room := m.width - lipgloss.Width(right) - 2
	if m.err != nil && room < lipgloss.Width(m.statusMsg)+2 {
		right = ""
		room = m.width
	}

	var left string
	if m.statusMsg != "" && room >= 8 {
		// status styles pad one cell on each side
		left = status.Render(truncate(m.statusMsg, room-2))
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := left + strings.Repeat(" ", gap) + right
	return lipgloss.NewStyle().
		Background(colorBgSurface).
		Width(m.width).
		Render(bar)
}

func footerHints(m *Model) []hint {
	switch m.screen {
	case screenInput:
		return []hint{
			{"tab", "field"},
			{"enter", "apply"},
			{"esc", "cancel"},
			{"ctrl+c", "quit"},
		}
	case screenSummary:
		return []hint{
			{"esc", "back"},
			{"q", "quit"},
		}
	case screenHistory:
		return []hint{
			{"↑↓", "navigate"},
			{"enter", "replay"},
			{"esc", "back"},
			{"q", "quit"},
		}
	}

	hints := []hint{{"space", "play"}}
	if !m.player.Playing() {
		hints = append(hints, hint{"←→", "step"})
	}
	hints = append(hints,
		hint{"r", "reset"},
		hint{"+/-", "speed"},
		hint{"i", "input"},
	)
	if m.player.SummaryAvailable() {
		hints = append(hints, hint{"s", "summary"})
	}
	if m.store != nil {
		hints = append(hints, hint{"H", "history"})
	}
	return append(hints, hint{"q", "quit"})
}

// fitHints drops hints before the last one until the row fits width.
func fitHints(hints []hint, width int) []hint {
	for len(hints) > 1 && lipgloss.Width(renderHints(hints)) > width {
		n := len(hints)
		hints = append(hints[:n-2:n-2], hints[n-1])
	}
	return hints
}

type hint struct {
	key  string
	desc string
}

func renderHints(hints []hint) string {
	var parts []string
	for _, h := range hints {
		parts = append(parts,
			hintKeyStyle.Render(h.key)+" "+hintDescStyle.Render(h.desc))
	}
	return strings.Join(parts, hintDescStyle.Render("  "))
}
