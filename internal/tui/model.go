package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Mr-Dark-debug/gf2div/internal/database"
	"github.com/Mr-Dark-debug/gf2div/internal/player"
	"github.com/Mr-Dark-debug/gf2div/internal/validation"
	"github.com/Mr-Dark-debug/gf2div/pkg/gf2"
	"github.com/Mr-Dark-debug/gf2div/pkg/timeutil"
)

// frameInterval is how often playback is polled while playing.
const frameInterval = 100 * time.Millisecond

// ────────────────────────────────────────────────────────────
// Pane focuses and screens
// ────────────────────────────────────────────────────────────

// Pane represents which UI pane currently has keyboard focus.
type Pane int

const (
	PaneSteps Pane = iota
	PaneDetail
	PaneXor
)

type screen int

const (
	screenVisualize screen = iota
	screenInput
	screenSummary
	screenHistory
)

// ────────────────────────────────────────────────────────────
// Model
// ────────────────────────────────────────────────────────────

// Options configure a new Model.
type Options struct {
	// Store records applied divisions and backs the history screen.
	// Nil disables both.
	Store database.Store

	Dividend string
	Divisor  string
	Interval time.Duration

	// TimeLayout is the strftime pattern for history timestamps.
	TimeLayout   string
	HistoryLimit int
}

// Model is the root BubbleTea model for the gf2div TUI.
// State is organized by concern; rendering is delegated
// to component functions in separate files.
type Model struct {
	store database.Store
	opts  Options

	// Data
	player  *player.Controller
	history []*database.Division

	// UI state
	screen          screen
	activePane      Pane
	selectedHistory int
	width           int
	height          int
	input           inputForm

	// Playback
	tickGen  int
	lastTick time.Time

	// Status
	statusMsg string
	err       error
}

// NewModel creates the TUI model. Invalid start-up operands open the
// input form with the error shown instead of failing.
func NewModel(opts Options) Model {
	if opts.HistoryLimit <= 0 {
		opts.HistoryLimit = 50
	}
	if opts.TimeLayout == "" {
		opts.TimeLayout = timeutil.DefaultLayout
	}

	m := Model{
		store:  opts.Store,
		opts:   opts,
		player: player.New(gf2.Trace{}, opts.Interval),
		input:  newInputForm(opts.Dividend, opts.Divisor),
	}

	dividend, divisor, err := validation.Parse(opts.Dividend, opts.Divisor)
	if err != nil {
		m.screen = screenInput
		m.input.setError(err)
		m.statusMsg = "Enter a dividend and divisor"
		return m
	}
	m.load(gf2.Generate(dividend, divisor))
	return m
}

// Controller exposes the playback state.
func (m Model) Controller() *player.Controller { return m.player }

func (m *Model) load(t gf2.Trace) {
	m.player.Reset(t)
	m.tickGen++
	m.statusMsg = fmt.Sprintf("%s ÷ %s  %d steps", t.Dividend, t.Divisor, t.Len())
}

// ────────────────────────────────────────────────────────────
// Messages
// ────────────────────────────────────────────────────────────

type tickMsg struct {
	gen int
	at  time.Time
}

type historyLoadedMsg []*database.Division

type savedMsg struct{ id int64 }

type errMsg struct{ err error }

func (e errMsg) Error() string { return e.err.Error() }

// ────────────────────────────────────────────────────────────
// Commands
// ────────────────────────────────────────────────────────────

// Init records the start-up division, if one loaded.
func (m Model) Init() tea.Cmd {
	if m.player.Len() == 0 {
		return nil
	}
	return m.saveDivision(m.player.Trace())
}

func tick(gen int) tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return tickMsg{gen: gen, at: t}
	})
}

// startPlayback begins a fresh tick chain. Older chains carry a stale
// generation and die on their next tick.
func (m *Model) startPlayback() tea.Cmd {
	m.tickGen++
	m.lastTick = time.Now()
	return tick(m.tickGen)
}

func (m Model) saveDivision(t gf2.Trace) tea.Cmd {
	if m.store == nil {
		return nil
	}
	store := m.store
	return func() tea.Msg {
		d := database.NewDivision(t, database.SourceTUI)
		if err := store.InsertDivision(d); err != nil {
			return errMsg{fmt.Errorf("saving division: %w", err)}
		}
		return savedMsg{id: d.ID}
	}
}

func (m Model) loadHistory() tea.Cmd {
	store := m.store
	limit := m.opts.HistoryLimit
	return func() tea.Msg {
		divs, err := store.QueryDivisions(database.DivisionFilter{Limit: limit, WithSteps: true})
		if err != nil {
			return errMsg{fmt.Errorf("loading history: %w", err)}
		}
		return historyLoadedMsg(divs)
	}
}

// ────────────────────────────────────────────────────────────
// Update
// ────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tickMsg:
		if msg.gen != m.tickGen || !m.player.Playing() {
			return m, nil
		}
		dt := msg.at.Sub(m.lastTick)
		m.lastTick = msg.at
		m.player.Tick(dt)
		if m.player.Playing() {
			return m, tick(m.tickGen)
		}
		return m, nil

	case historyLoadedMsg:
		m.history = []*database.Division(msg)
		m.selectedHistory = 0
		m.statusMsg = fmt.Sprintf("%d divisions in history", len(m.history))
		return m, nil

	case savedMsg:
		m.statusMsg = fmt.Sprintf("Saved as #%d", msg.id)
		return m, nil

	case errMsg:
		m.err = msg.err
		m.statusMsg = fmt.Sprintf("Error: %v", msg.err)
		return m, nil
	}

	return m, nil
}

// handleKey routes keyboard input based on the current screen.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.screen {
	case screenInput:
		return m.handleInputKey(msg)
	case screenSummary:
		switch key {
		case "q":
			return m, tea.Quit
		case "s", "esc", "enter":
			m.screen = screenVisualize
		}
		return m, nil
	case screenHistory:
		return m.handleHistoryKey(key)
	}

	// ── Visualize ──

	switch key {
	case "q":
		return m, tea.Quit

	case " ", "space":
		m.player.Toggle()
		if m.player.Playing() {
			return m, m.startPlayback()
		}
		return m, nil

	case "right", "l":
		if !m.player.Playing() {
			m.player.Advance()
		}
	case "left", "h":
		if !m.player.Playing() {
			m.player.Retreat()
		}

	case "down", "j":
		if m.activePane == PaneSteps && !m.player.Playing() {
			m.player.Advance()
		}
	case "up", "k":
		if m.activePane == PaneSteps && !m.player.Playing() {
			m.player.Retreat()
		}

	case "home", "g":
		if !m.player.Playing() {
			m.player.Seek(0)
		}
	case "end", "G":
		if !m.player.Playing() {
			m.player.Seek(m.player.Len() - 1)
		}

	case "r":
		m.player.Rewind()
		m.statusMsg = "Reset to step 0"

	case "s":
		if m.player.SummaryAvailable() {
			m.screen = screenSummary
		} else {
			m.statusMsg = "Summary is available at the final step"
		}

	case "+", "=":
		m.player.Faster()
		m.statusMsg = "Speed " + timeutil.FormatInterval(m.player.Interval())
	case "-", "_":
		m.player.Slower()
		m.statusMsg = "Speed " + timeutil.FormatInterval(m.player.Interval())

	case "tab":
		m.activePane = (m.activePane + 1) % 3
	case "shift+tab":
		m.activePane = (m.activePane + 2) % 3

	case "i":
		m.player.Pause()
		t := m.player.Trace()
		m.input = newInputForm(t.Dividend.String(), t.Divisor.String())
		m.screen = screenInput

	case "H":
		if m.store == nil {
			m.statusMsg = "History is disabled"
			return m, nil
		}
		m.player.Pause()
		m.screen = screenHistory
		return m, m.loadHistory()
	}

	return m, nil
}

func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		if m.player.Len() > 0 {
			m.screen = screenVisualize
		}
		return m, nil
	case "tab", "shift+tab", "up", "down":
		m.input.toggleFocus()
		return m, nil
	case "enter":
		dividend, divisor, err := validation.Parse(m.input.values())
		if err != nil {
			// The previous trace stays loaded.
			m.input.setError(err)
			return m, nil
		}
		t := gf2.Generate(dividend, divisor)
		m.load(t)
		m.screen = screenVisualize
		return m, m.saveDivision(t)
	case "backspace":
		m.input.backspace()
		return m, nil
	case "ctrl+u":
		m.input.clear()
		return m, nil
	}

	if msg.Type == tea.KeyRunes {
		m.input.insert(string(msg.Runes))
	}
	return m, nil
}

func (m Model) handleHistoryKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "q":
		return m, tea.Quit
	case "esc", "H":
		m.screen = screenVisualize
	case "j", "down":
		if m.selectedHistory < len(m.history)-1 {
			m.selectedHistory++
		}
	case "k", "up":
		if m.selectedHistory > 0 {
			m.selectedHistory--
		}
	case "enter":
		if m.selectedHistory < len(m.history) {
			d := m.history[m.selectedHistory]
			t, err := d.Trace()
			if err != nil {
				m.err = err
				m.statusMsg = fmt.Sprintf("Error: %v", err)
				return m, nil
			}
			m.load(t)
			m.statusMsg = fmt.Sprintf("Replaying #%d  %s", d.ID, m.statusMsg)
			m.screen = screenVisualize
		}
	}
	return m, nil
}

// ────────────────────────────────────────────────────────────
// View
// ────────────────────────────────────────────────────────────

func (m Model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	header := renderHeader(&m)
	footer := renderFooter(&m)

	bodyHeight := m.height - 2 // header + footer

	var body string
	switch m.screen {
	case screenInput:
		body = renderInput(&m, bodyHeight)
	case screenSummary:
		body = renderSummary(&m, bodyHeight)
	case screenHistory:
		body = renderHistory(&m, bodyHeight)
	default:
		body = m.renderMainLayout(bodyHeight)
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

// renderMainLayout assembles the visualizer: bit grid on top, step list
// and current values side by side, XOR view and explanation below.
func (m Model) renderMainLayout(totalHeight int) string {
	if m.player.Len() == 0 {
		return lipgloss.Place(m.width, totalHeight, lipgloss.Center, lipgloss.Center,
			emptyStateStyle.Render("No step data.\n\nPress i to enter a dividend and divisor."))
	}

	// Responsive: collapse to single pane on narrow terminals
	if m.width < 60 {
		return m.renderCompactLayout(totalHeight)
	}

	grid := renderGridPanel(&m, m.width)
	rest := totalHeight - lipgloss.Height(grid)

	leftWidth := m.width * 40 / 100
	rightWidth := m.width - leftWidth
	midHeight := rest * 55 / 100
	bottomHeight := rest - midHeight

	steps := renderStepsPanel(&m, leftWidth, midHeight)
	detail := renderDetailPanel(&m, rightWidth, midHeight)
	xor := renderXorPanel(&m, m.width, bottomHeight)

	midRow := lipgloss.JoinHorizontal(lipgloss.Top, steps, detail)
	return lipgloss.JoinVertical(lipgloss.Left, grid, midRow, xor)
}

// renderCompactLayout is used when the terminal is narrow (< 60 cols).
// Only the focused pane is shown under the bit grid.
func (m Model) renderCompactLayout(totalHeight int) string {
	grid := renderGridPanel(&m, m.width)
	rest := totalHeight - lipgloss.Height(grid)

	var pane string
	switch m.activePane {
	case PaneDetail:
		pane = renderDetailPanel(&m, m.width, rest)
	case PaneXor:
		pane = renderXorPanel(&m, m.width, rest)
	default:
		pane = renderStepsPanel(&m, m.width, rest)
	}
	return lipgloss.JoinVertical(lipgloss.Left, grid, pane)
}
