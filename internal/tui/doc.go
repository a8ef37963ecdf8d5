// Package tui implements the gf2div terminal user interface.
//
// It animates a GF(2) long division one step at a time on top of
// Charmbracelet's BubbleTea and Lipgloss. Playback state lives in a
// player.Controller; everything drawn is derived from the current step.
//
// Component architecture:
//
//	model.go    root model, message routing, Init/Update/View
//	theme.go    centralized color and style definitions
//	header.go   top bar and footer with keyboard hints
//	detail.go   bit grid and current values pane
//	timeline.go step list
//	diffview.go XOR view and step explanation
//	summary.go  long-division summary screen
//	input.go    operand entry form
//	history.go  saved divisions list
//	helpers.go  panel chrome, step labels, truncation
package tui
