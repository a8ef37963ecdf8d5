package tui

import "github.com/charmbracelet/lipgloss"

// ────────────────────────────────────────────────────────────
// Color Palette (GitHub Dark)
// ────────────────────────────────────────────────────────────
//
// All colors are defined here. No ad-hoc color literals anywhere.

var (
	// Base
	colorBg        = lipgloss.Color("#0d1117")
	colorBgSurface = lipgloss.Color("#1c2128")

	// Text
	colorText      = lipgloss.Color("#e6edf3")
	colorTextDim   = lipgloss.Color("#8b949e")
	colorTextMuted = lipgloss.Color("#484f58")

	// Accents
	colorBlue   = lipgloss.Color("#58a6ff")
	colorGreen  = lipgloss.Color("#3fb950")
	colorRed    = lipgloss.Color("#f85149")
	colorYellow = lipgloss.Color("#d29922")
	colorPurple = lipgloss.Color("#bc8cff")
	colorCyan   = lipgloss.Color("#76e3ea")

	// Structural
	colorDivider   = lipgloss.Color("#30363d")
	colorHighlight = lipgloss.Color("#1f6feb")
)

// ────────────────────────────────────────────────────────────
// Component Styles
// ────────────────────────────────────────────────────────────

// Header bar
var (
	headerBarStyle = lipgloss.NewStyle().
			Background(colorBgSurface).
			Foreground(colorText).
			Padding(0, 1)

	headerBrandStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorBlue)

	headerSepStyle = lipgloss.NewStyle().
			Foreground(colorTextMuted)

	headerMetaStyle = lipgloss.NewStyle().
			Foreground(colorTextDim)

	headerPlayingStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorGreen)
)

// Panel chrome
var (
	panelStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.Border{Top: "─"}).
			BorderForeground(colorDivider)

	panelActiveStyle = lipgloss.NewStyle().
				Padding(0, 1).
				Border(lipgloss.Border{Top: "─"}).
				BorderForeground(colorBlue)

	panelTitleStyle = lipgloss.NewStyle().
			Foreground(colorBlue).
			Bold(true)

	panelTitleDimStyle = lipgloss.NewStyle().
				Foreground(colorTextMuted).
				Bold(true)
)

// Bit grid
var (
	bitStyle = lipgloss.NewStyle().
			Foreground(colorTextDim)

	bitActiveStyle = lipgloss.NewStyle().
			Background(colorHighlight).
			Foreground(colorText).
			Bold(true)

	bitBroughtDownStyle = lipgloss.NewStyle().
				Background(colorYellow).
				Foreground(colorBg).
				Bold(true)

	bitNewQuotientStyle = lipgloss.NewStyle().
				Background(colorGreen).
				Foreground(colorBg).
				Bold(true)

	bitPendingStyle = lipgloss.NewStyle().
			Foreground(colorTextMuted)

	bitMarkerStyle = lipgloss.NewStyle().
			Foreground(colorYellow).
			Bold(true)

	gridLabelStyle = lipgloss.NewStyle().
			Foreground(colorBlue)
)

// Step list
var (
	stepNormalStyle = lipgloss.NewStyle().
			Foreground(colorText)

	stepSelectedStyle = lipgloss.NewStyle().
				Background(colorHighlight).
				Foreground(colorText).
				Bold(true)

	stepInitStyle = lipgloss.NewStyle().
			Foreground(colorCyan)

	stepOneStyle = lipgloss.NewStyle().
			Foreground(colorPurple)

	stepZeroStyle = lipgloss.NewStyle().
			Foreground(colorTextDim)

	stepDoneStyle = lipgloss.NewStyle().
			Foreground(colorGreen)

	stepFutureStyle = lipgloss.NewStyle().
			Foreground(colorTextMuted)
)

// Detail pane
var (
	detailLabelStyle = lipgloss.NewStyle().
				Foreground(colorBlue)

	detailValueStyle = lipgloss.NewStyle().
				Foreground(colorText)

	detailSectionStyle = lipgloss.NewStyle().
				Foreground(colorDivider)

	progressFilledStyle = lipgloss.NewStyle().
				Foreground(colorBlue)

	progressEmptyStyle = lipgloss.NewStyle().
				Foreground(colorTextMuted)
)

// XOR view
var (
	xorFlipStyle = lipgloss.NewStyle().
			Foreground(colorYellow).
			Bold(true)

	xorKeepStyle = lipgloss.NewStyle().
			Foreground(colorTextDim)

	xorDropStyle = lipgloss.NewStyle().
			Foreground(colorRed).
			Strikethrough(true)

	xorResultStyle = lipgloss.NewStyle().
			Foreground(colorGreen)

	xorHeaderStyle = lipgloss.NewStyle().
			Foreground(colorBlue).
			Bold(true)

	explainStyle = lipgloss.NewStyle().
			Foreground(colorText)
)

// Footer / status bar
var (
	statusStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Background(colorBgSurface).
			Padding(0, 1)

	statusErrorStyle = lipgloss.NewStyle().
				Foreground(colorRed).
				Background(colorBgSurface).
				Padding(0, 1)

	hintKeyStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Bold(true)

	hintDescStyle = lipgloss.NewStyle().
			Foreground(colorTextMuted)
)

// History list
var (
	historyItemStyle = lipgloss.NewStyle().
				Foreground(colorText).
				Padding(0, 1)

	historySelectedStyle = lipgloss.NewStyle().
				Background(colorHighlight).
				Foreground(colorText).
				Bold(true).
				Padding(0, 1)

	historyExactStyle = lipgloss.NewStyle().
				Foreground(colorGreen)

	historyRemainderStyle = lipgloss.NewStyle().
				Foreground(colorYellow)

	dimStyle = lipgloss.NewStyle().
			Foreground(colorTextDim)

	emptyStateStyle = lipgloss.NewStyle().
			Foreground(colorTextMuted).
			Padding(2, 4)
)

// Input form
var (
	inputLabelStyle = lipgloss.NewStyle().
			Foreground(colorBlue).
			Bold(true)

	inputFieldStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Background(colorBgSurface).
			Padding(0, 1)

	inputFocusedStyle = lipgloss.NewStyle().
				Foreground(colorText).
				Background(colorHighlight).
				Padding(0, 1)

	inputCursorStyle = lipgloss.NewStyle().
				Background(colorBlue).
				Foreground(colorBg)

	inputErrorStyle = lipgloss.NewStyle().
			Foreground(colorRed)
)
