package tui

import (
	"fmt"
)

// renderStepsPanel renders the step list in the left pane. Steps up to
// the current one are listed normally, later ones dimmed.
func renderStepsPanel(m *Model, width, height int) string {
	t := m.player.Trace()
	current := m.player.Index()

	// Border, title and blank line come off the top.
	contentHeight := maxInt(height-3, 1)
	innerWidth := maxInt(width-2, 1)

	// Scroll so the current step is visible
	scrollStart := 0
	if current >= contentHeight {
		scrollStart = current - contentHeight + 1
	}
	end := scrollStart + contentHeight
	if end > t.Len() {
		end = t.Len()
	}

	var lines []string
	for i := scrollStart; i < end; i++ {
		s := t.Steps[i]
		text := truncate(fmt.Sprintf("%3d  %-8s %s", i, s.Segment, stepLabel(s)), innerWidth)

		switch {
		case i == current:
			lines = append(lines, stepSelectedStyle.Width(innerWidth).Render(text))
		case i > current:
			lines = append(lines, stepFutureStyle.Render(text))
		case i == 0:
			lines = append(lines, stepNormalStyle.Render(text))
		default:
			lines = append(lines, stepStyle(s).Render(text))
		}
	}

	title := fmt.Sprintf("Steps  %d/%d", current+1, t.Len())
	return renderPanel(title, m.activePane == PaneSteps, lines, width, height)
}
