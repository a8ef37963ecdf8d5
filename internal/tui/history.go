package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/Mr-Dark-debug/gf2div/pkg/timeutil"
)

// renderHistory renders the saved-divisions screen.
func renderHistory(m *Model, height int) string {
	if len(m.history) == 0 {
		empty := emptyStateStyle.Render(
			"No divisions recorded yet.\n\n" +
				"Divisions applied from the input form,\n" +
				"the CLI with --save, or the HTTP server appear here.")
		return lipgloss.Place(m.width, height, lipgloss.Center, lipgloss.Center, empty)
	}

	title := panelTitleStyle.Render("History")
	count := dimStyle.Render(fmt.Sprintf("  %d shown", len(m.history)))

	var lines []string
	lines = append(lines, title+count)
	lines = append(lines, "")

	header := fmt.Sprintf("  %-6s %-20s %-14s %-10s %-10s %s",
		"ID", "Dividend", "Divisor", "Quotient", "Remainder", "When")
	lines = append(lines, dimStyle.Render(header))

	contentHeight := maxInt(height-4, 1)
	scrollStart := 0
	if m.selectedHistory >= contentHeight {
		scrollStart = m.selectedHistory - contentHeight + 1
	}
	end := scrollStart + contentHeight
	if end > len(m.history) {
		end = len(m.history)
	}

	for i := scrollStart; i < end; i++ {
		d := m.history[i]

		when := timeutil.RelativeTime(d.CreatedAt)
		if time.Since(timeutil.FromNano(d.CreatedAt)) > 24*time.Hour {
			when = timeutil.FormatTimestamp(d.CreatedAt, m.opts.TimeLayout)
		}

		rem := historyRemainderStyle.Render(fmt.Sprintf("%-10s", truncate(d.Remainder, 10)))
		if strings.Trim(d.Remainder, "0") == "" {
			rem = historyExactStyle.Render(fmt.Sprintf("%-10s", truncate(d.Remainder, 10)))
		}

		line := fmt.Sprintf("%-6d %-20s %-14s %-10s ",
			d.ID, truncate(d.Dividend, 20), truncate(d.Divisor, 14), truncate(d.Quotient, 10))

		if i == m.selectedHistory {
			lines = append(lines, historySelectedStyle.Width(m.width-2).Render(
				line+fmt.Sprintf("%-10s %s", truncate(d.Remainder, 10), when)))
		} else {
			lines = append(lines, historyItemStyle.Render(line+rem+" "+dimStyle.Render(when)))
		}
	}

	return lipgloss.NewStyle().Height(height).Render(strings.Join(lines, "\n"))
}
