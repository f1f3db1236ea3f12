// Package tui provides the terminal user interface for bayboard.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	log "github.com/sirupsen/logrus"

	"github.com/javiermolinar/bayboard/internal/board"
	"github.com/javiermolinar/bayboard/internal/dateutil"
	"github.com/javiermolinar/bayboard/internal/diag"
	"github.com/javiermolinar/bayboard/internal/gesture"
	"github.com/javiermolinar/bayboard/internal/rows"
	"github.com/javiermolinar/bayboard/internal/task"
	"github.com/javiermolinar/bayboard/internal/tui/theme"
)

// Mode represents the current interaction mode.
type Mode int

const (
	ModeNormal   Mode = iota
	ModeRelocate      // dragging a task to another time, day or resource
	ModeResize        // moving one edge of a task
	ModePrompt
	ModeModal
)

type promptKind int

const (
	promptCreate promptKind = iota
	promptComment
)

// Options configures the TUI.
type Options struct {
	Theme  string // built-in theme name or path to a .toml theme
	Start  time.Time
	Days   int
	Logger log.FieldLogger
	Now    func() time.Time
}

// Model is the main TUI model.
type Model struct {
	// Dependencies
	board  *board.Board
	logger log.FieldLogger
	now    func() time.Time

	// Theme and styles
	theme  *theme.Theme
	styles *Styles
	scale  gridScale

	keys keyMap
	help help.Model

	// State
	mode     Mode
	window   dateutil.Window
	baseDays int
	rows     []rows.Row
	row      int // selected row
	day      int // selected day index in the window
	minute   int // cursor minute of day
	clock    time.Time

	// Gesture state
	dx        float64
	targetRow int
	targetDay int
	preview   gesture.Preview

	// Prompt and modal
	prompt     textinput.Model
	promptKind promptKind
	modalTask  string

	// Terminal dimensions
	width  int
	height int
	offset int // first visible body line

	// Messages
	statusMsg string
	statusErr bool
	statusSeq int
}

// New creates a new TUI model over b.
func New(b *board.Board, opts Options) Model {
	if opts.Logger == nil {
		opts.Logger = diag.Discard()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	now := opts.Now()
	if opts.Start.IsZero() {
		opts.Start = now
	}
	if opts.Days <= 0 {
		opts.Days = b.Config().VisibleDays
	}

	t, err := theme.Resolve(opts.Theme)
	if err != nil {
		opts.Logger.WithError(err).Warn("theme fallback")
		t, _ = theme.Load(theme.DefaultName)
	}
	styles := NewStyles(t)

	ti := textinput.New()
	ti.CharLimit = 256
	ti.Width = 48
	ti.TextStyle = styles.PromptStyle
	ti.PromptStyle = styles.PromptStyle

	h := help.New()
	h.Styles.ShortKey = styles.HelpStyle.Bold(true)
	h.Styles.ShortDesc = styles.HelpStyle
	h.Styles.FullKey = styles.HelpStyle.Bold(true)
	h.Styles.FullDesc = styles.HelpStyle

	cfg := b.Config()
	m := Model{
		board:    b,
		logger:   opts.Logger,
		now:      opts.Now,
		theme:    t,
		styles:   styles,
		scale:    newGridScale(cfg),
		keys:     newKeyMap(),
		help:     h,
		mode:     ModeNormal,
		window:   dateutil.NewWindow(opts.Start, opts.Days),
		baseDays: opts.Days,
		minute:   max(cfg.DayStart/60, min(now.Hour(), (cfg.DayEnd-1)/60)) * 60,
		clock:    now,
		prompt:   ti,
	}
	m.refresh()
	if dateutil.SameDay(now, m.window.Start) {
		m.focusCurrentTask()
	}
	return m
}

// Init starts the clock used for the now marker.
func (m Model) Init() tea.Cmd {
	return tick()
}

// Run starts the TUI.
func Run(b *board.Board, opts Options) error {
	p := tea.NewProgram(New(b, opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// refresh rebuilds the row models and clamps the cursor.
func (m *Model) refresh() {
	m.rows = m.board.Rows(m.window)
	m.row = clampIndex(m.row, len(m.rows))
	m.day = clampIndex(m.day, m.window.Days)
	m.targetRow = clampIndex(m.targetRow, len(m.rows))
	m.targetDay = clampIndex(m.targetDay, m.window.Days)
}

func clampIndex(i, n int) int {
	if n <= 0 || i < 0 {
		return 0
	}
	return min(i, n-1)
}

func (m Model) currentRow() (rows.Row, bool) {
	if len(m.rows) == 0 {
		return rows.Row{}, false
	}
	return m.rows[m.row], true
}

func (m Model) currentDate() time.Time {
	return m.window.Start.AddDate(0, 0, m.day)
}

// selectedTask returns the task under the cursor.
func (m Model) selectedTask() *task.Task {
	r, ok := m.currentRow()
	if !ok {
		return nil
	}
	for _, t := range r.TasksOn(m.currentDate()) {
		if t.StartMinute() <= m.minute && m.minute < t.EndMinute() {
			return t
		}
	}
	return nil
}

// focusCurrentTask puts the cursor on the first task running now, if any.
func (m *Model) focusCurrentTask() {
	now := m.now()
	minute := now.Hour()*60 + now.Minute()
	for i, r := range m.rows {
		for d, date := range m.window.Dates() {
			if !dateutil.SameDay(date, now) {
				continue
			}
			for _, t := range r.TasksOn(date) {
				if t.StartMinute() <= minute && minute < t.EndMinute() {
					m.row, m.day, m.minute = i, d, minute
					return
				}
			}
		}
	}
}

// nextTask moves the cursor to the start of the next task on the row,
// wrapping to the first.
func (m *Model) nextTask() bool {
	r, ok := m.currentRow()
	if !ok {
		return false
	}
	tasks := r.TasksOn(m.currentDate())
	if len(tasks) == 0 {
		return false
	}
	for _, t := range tasks {
		if t.StartMinute() > m.minute {
			m.minute = t.StartMinute()
			return true
		}
	}
	m.minute = tasks[0].StartMinute()
	return true
}

func (m *Model) setStatus(msg string, isErr bool) tea.Cmd {
	m.statusMsg = msg
	m.statusErr = isErr
	m.statusSeq++
	return clearStatusAfter(m.statusSeq, 4*time.Second)
}
