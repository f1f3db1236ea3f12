package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/bayboard/internal/availability"
	"github.com/javiermolinar/bayboard/internal/board"
	"github.com/javiermolinar/bayboard/internal/dateutil"
	"github.com/javiermolinar/bayboard/internal/gesture"
	"github.com/javiermolinar/bayboard/internal/rows"
	"github.com/javiermolinar/bayboard/internal/task"
	"github.com/javiermolinar/bayboard/internal/timeline"
)

type tickMsg time.Time

type clearStatusMsg struct{ seq int }

func tick() tea.Cmd {
	return tea.Tick(time.Minute, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func clearStatusAfter(seq int, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return clearStatusMsg{seq: seq} })
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.ensureVisible()
		return m, nil

	case tickMsg:
		m.clock = time.Time(msg)
		return m, tick()

	case clearStatusMsg:
		if msg.seq == m.statusSeq {
			m.statusMsg = ""
			m.statusErr = false
		}
		return m, nil

	case tea.KeyMsg:
		m.logKey(msg)
		var cmd tea.Cmd
		switch m.mode {
		case ModeRelocate, ModeResize:
			cmd = m.handleGestureKey(msg)
		case ModePrompt:
			cmd = m.handlePromptKey(msg)
		case ModeModal:
			cmd = m.handleModalKey(msg)
		default:
			cmd = m.handleNormalKey(msg)
		}
		m.ensureVisible()
		return m, cmd
	}
	return m, nil
}

func (m *Model) setMode(mode Mode, reason string) {
	m.logMode(m.mode, mode, reason)
	m.mode = mode
}

func (m *Model) handleNormalKey(msg tea.KeyMsg) tea.Cmd {
	cfg := m.board.Config()
	step := m.scale.colMinutes()
	lastMinute := m.scale.origin + m.scale.hours*60 - step

	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Up):
		m.row = clampIndex(m.row-1, len(m.rows))
	case key.Matches(msg, m.keys.Down):
		m.row = clampIndex(m.row+1, len(m.rows))
	case key.Matches(msg, m.keys.Left):
		m.minute = timeline.Clamp(m.minute-step, m.scale.origin, lastMinute)
	case key.Matches(msg, m.keys.Right):
		m.minute = timeline.Clamp(m.minute+step, m.scale.origin, lastMinute)
	case key.Matches(msg, m.keys.HourBack):
		m.minute = timeline.Clamp(m.minute-60, m.scale.origin, lastMinute)
	case key.Matches(msg, m.keys.HourFwd):
		m.minute = timeline.Clamp(m.minute+60, m.scale.origin, lastMinute)
	case key.Matches(msg, m.keys.NextTask):
		if !m.nextTask() {
			return m.setStatus("No tasks on this day", false)
		}
	case key.Matches(msg, m.keys.PrevDay):
		m.stepDay(-1)
	case key.Matches(msg, m.keys.NextDay):
		m.stepDay(1)
	case key.Matches(msg, m.keys.PrevWeek):
		m.window = m.window.Shift(-7)
		m.refresh()
	case key.Matches(msg, m.keys.NextWeek):
		m.window = m.window.Shift(7)
		m.refresh()
	case key.Matches(msg, m.keys.Today):
		now := m.now()
		m.window = m.window.Today(now)
		m.day = 0
		m.minute = max(cfg.DayStart/60, min(now.Hour(), (cfg.DayEnd-1)/60)) * 60
		m.refresh()
		m.focusCurrentTask()
	case key.Matches(msg, m.keys.Week):
		if m.window.Days == 7 {
			m.window = dateutil.NewWindow(m.currentDate(), m.baseDays)
			m.day = 0
		} else {
			date := m.currentDate()
			m.window = m.window.Week()
			m.day = int(date.Sub(m.window.Start).Hours()+12) / 24
		}
		m.refresh()
	case key.Matches(msg, m.keys.MoreDays):
		m.window = m.window.Extend(1)
		m.refresh()
	case key.Matches(msg, m.keys.LessDays):
		m.window = m.window.Extend(-1)
		m.refresh()
	case key.Matches(msg, m.keys.Move):
		return m.beginRelocate()
	case key.Matches(msg, m.keys.ResizeBeg):
		return m.beginResize(gesture.EdgeStart)
	case key.Matches(msg, m.keys.ResizeEnd):
		return m.beginResize(gesture.EdgeEnd)
	case key.Matches(msg, m.keys.Create):
		if _, ok := m.currentRow(); !ok {
			return m.setStatus("No resources on the board", true)
		}
		m.openPrompt(promptCreate, "New task at "+timeline.FormatClock(m.minute/60*60))
	case key.Matches(msg, m.keys.Comment):
		t := m.selectedTask()
		if t == nil {
			return m.setStatus("No task selected", true)
		}
		m.openPrompt(promptComment, "Comment on "+t.Description)
	case key.Matches(msg, m.keys.Start):
		return m.act(task.ActionStart, task.Patch{})
	case key.Matches(msg, m.keys.Pause):
		return m.act(task.ActionPause, task.Patch{})
	case key.Matches(msg, m.keys.Finish):
		return m.act(task.ActionFinish, task.Patch{})
	case key.Matches(msg, m.keys.Details):
		t := m.selectedTask()
		if t == nil {
			return nil
		}
		m.modalTask = t.ID
		m.setMode(ModeModal, "details")
	case key.Matches(msg, m.keys.Copy):
		return m.copyTask(m.selectedTask())
	}
	return nil
}

func (m *Model) copyTask(t *task.Task) tea.Cmd {
	if t == nil {
		return m.setStatus("No task selected", true)
	}
	if err := clipboard.WriteAll(taskSummary(t)); err != nil {
		m.logError("copy", err)
		return m.setStatus("Copy failed: "+err.Error(), true)
	}
	return m.setStatus("Copied "+t.Description, false)
}

// stepDay moves the day cursor, sliding the window at its edges.
func (m *Model) stepDay(delta int) {
	next := m.day + delta
	switch {
	case next < 0:
		m.window = m.window.Shift(-1)
		next = 0
	case next >= m.window.Days:
		m.window = m.window.Shift(1)
		next = m.window.Days - 1
	}
	m.day = next
	m.refresh()
}

func (m *Model) act(kind task.ActionKind, p task.Patch) tea.Cmd {
	t := m.selectedTask()
	if t == nil {
		return m.setStatus("No task selected", true)
	}
	if err := m.board.Act(t.ID, kind, p); err != nil {
		m.logError("act", err)
		return m.setStatus(err.Error(), true)
	}
	m.refresh()
	updated, err := m.board.Task(t.ID)
	if err != nil {
		return m.setStatus(err.Error(), true)
	}
	if kind == task.ActionComment {
		return m.setStatus("Comment added", false)
	}
	return m.setStatus(fmt.Sprintf("%s: %s", updated.Description, updated.Status), false)
}

func (m *Model) openPrompt(kind promptKind, placeholder string) {
	m.promptKind = kind
	m.prompt.Reset()
	m.prompt.Placeholder = placeholder
	m.prompt.Focus()
	m.setMode(ModePrompt, "prompt")
}

func (m *Model) closePrompt() {
	m.prompt.Blur()
	m.prompt.Reset()
	m.setMode(ModeNormal, "prompt closed")
}

func (m *Model) handlePromptKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.closePrompt()
		return nil
	case key.Matches(msg, m.keys.Confirm):
		value := strings.TrimSpace(m.prompt.Value())
		kind := m.promptKind
		m.closePrompt()
		if kind == promptComment {
			return m.act(task.ActionComment, task.Patch{Comment: value})
		}
		return m.quickCreate(value)
	}
	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return cmd
}

func (m *Model) quickCreate(description string) tea.Cmd {
	r, ok := m.currentRow()
	if !ok {
		return nil
	}
	if description == "" {
		description = "New task"
	}
	t, err := m.board.QuickCreate(board.Cell{
		ResourceID: r.Resource.ID,
		Date:       m.currentDate(),
		Hour:       m.minute / 60,
		Minute:     m.minute % 60,
	}, description)
	if err != nil {
		m.logError("create", err)
		return m.setStatus(createError(err), true)
	}
	m.refresh()
	m.minute = t.StartMinute()
	return m.setStatus(fmt.Sprintf("Created %s %s", t.Description, t.Timing()), false)
}

func createError(err error) string {
	switch {
	case errors.Is(err, board.ErrCellUnavailable):
		return "Resource is unavailable at this time"
	case errors.Is(err, board.ErrCellOccupied):
		return "A task already starts in this hour"
	case errors.Is(err, board.ErrHourOutOfRange):
		return "Hour is outside the board"
	default:
		return err.Error()
	}
}

func (m *Model) handleModalKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Cancel), key.Matches(msg, m.keys.Confirm), key.Matches(msg, m.keys.Quit):
		m.modalTask = ""
		m.setMode(ModeNormal, "modal closed")
	case key.Matches(msg, m.keys.Copy):
		t, err := m.board.Task(m.modalTask)
		if err != nil {
			return m.setStatus(err.Error(), true)
		}
		return m.copyTask(t)
	}
	return nil
}

func (m *Model) beginRelocate() tea.Cmd {
	t := m.selectedTask()
	if t == nil {
		return m.setStatus("No task selected", true)
	}
	if err := m.board.BeginRelocate(t.ID); err != nil {
		m.logError("relocate", err)
		return m.setStatus(err.Error(), true)
	}
	m.dx = 0
	m.targetRow, m.targetDay = m.row, m.day
	m.setMode(ModeRelocate, "relocate")
	return m.moveGesture(0)
}

func (m *Model) beginResize(edge gesture.Edge) tea.Cmd {
	t := m.selectedTask()
	if t == nil {
		return m.setStatus("No task selected", true)
	}
	if err := m.board.BeginResize(t.ID, edge); err != nil {
		m.logError("resize", err)
		return m.setStatus(err.Error(), true)
	}
	m.dx = 0
	m.targetRow, m.targetDay = m.row, m.day
	m.setMode(ModeResize, "resize "+string(edge))
	return m.moveGesture(0)
}

// moveGesture adds travel, in board pixels, to the running gesture.
func (m *Model) moveGesture(delta float64) tea.Cmd {
	p, err := m.board.Move(m.dx + delta)
	if err != nil {
		m.logError("move", err)
		m.setMode(ModeNormal, "gesture lost")
		return m.setStatus(err.Error(), true)
	}
	m.dx += delta
	m.preview = p
	m.logGesture("move")
	return nil
}

func (m *Model) handleGestureKey(msg tea.KeyMsg) tea.Cmd {
	mapper := m.board.Mapper()
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.board.Cancel()
		m.preview = gesture.Preview{}
		m.setMode(ModeNormal, "gesture cancelled")
		return m.setStatus("Cancelled", false)
	case key.Matches(msg, m.keys.Confirm):
		return m.dropGesture()
	case key.Matches(msg, m.keys.Left):
		return m.moveGesture(-mapper.SnapPixels())
	case key.Matches(msg, m.keys.Right):
		return m.moveGesture(mapper.SnapPixels())
	case key.Matches(msg, m.keys.HourBack):
		return m.moveGesture(-mapper.SlotWidth())
	case key.Matches(msg, m.keys.HourFwd):
		return m.moveGesture(mapper.SlotWidth())
	}
	if m.mode != ModeRelocate {
		return nil
	}
	switch {
	case key.Matches(msg, m.keys.Up):
		m.targetRow = clampIndex(m.targetRow-1, len(m.rows))
	case key.Matches(msg, m.keys.Down):
		m.targetRow = clampIndex(m.targetRow+1, len(m.rows))
	case key.Matches(msg, m.keys.PrevDay):
		m.targetDay = clampIndex(m.targetDay-1, m.window.Days)
	case key.Matches(msg, m.keys.NextDay):
		m.targetDay = clampIndex(m.targetDay+1, m.window.Days)
	}
	return nil
}

// ghost returns the candidate interval of the running gesture and whether
// it is held by an unavailable range.
func (m Model) ghost() (start, end int, held bool) {
	if m.mode == ModeResize {
		return m.preview.Start, m.preview.End, m.preview.Held
	}
	snap, ok := m.board.GestureSnapshot()
	if !ok {
		return 0, 0, false
	}
	cfg := m.board.Config()
	dur := snap.Duration()
	start = timeline.Clamp(snap.Start+m.board.Mapper().ToMinutes(m.dx), cfg.DayStart, cfg.DayEnd-dur)
	end = start + dur
	if m.targetRow < len(m.rows) {
		date := m.window.Start.AddDate(0, 0, m.targetDay)
		held = availability.Intersects(m.board.Disabled(m.rows[m.targetRow].Resource.ID, date), start, end)
	}
	return start, end, held
}

func (m *Model) dropGesture() tea.Cmd {
	drop := gesture.Drop{Dx: m.dx}
	if m.mode == ModeRelocate && m.targetRow < len(m.rows) {
		start, _, _ := m.ghost()
		drop.TargetID = gesture.EncodeTarget(gesture.Target{
			Date:       m.window.Start.AddDate(0, 0, m.targetDay),
			Hour:       start / 60,
			ResourceID: m.rows[m.targetRow].Resource.ID,
		})
	}
	out, err := m.board.End(drop)
	m.preview = gesture.Preview{}
	m.setMode(ModeNormal, "gesture ended")
	if err != nil {
		m.logError("drop", err)
		return m.setStatus(err.Error(), true)
	}
	m.refresh()
	if !out.Committed {
		msg := "Reverted"
		if out.Conflict != nil {
			msg = fmt.Sprintf("Reverted: overlaps %s", out.Conflict)
		}
		return m.setStatus(msg, true)
	}

	if i := rowIndex(m.rows, out.ResourceID); i >= 0 {
		m.row = i
	}
	if d := int(out.Date.Sub(m.window.Start).Hours()+12) / 24; d >= 0 && d < m.window.Days {
		m.day = d
	}
	m.minute = out.Timing.Start() / m.scale.colMinutes() * m.scale.colMinutes()

	verb := "Moved"
	if out.Kind == gesture.KindResize {
		verb = "Resized"
	}
	msg := fmt.Sprintf("%s to %s", verb, out.Timing)
	switch {
	case out.Has(gesture.ReasonConflict):
		msg += " (kept last free timing)"
	case out.Has(gesture.ReasonClamped):
		msg += " (clamped to the day)"
	}
	return m.setStatus(msg, false)
}

func rowIndex(rs []rows.Row, resourceID string) int {
	for i, r := range rs {
		if r.Resource.ID == resourceID {
			return i
		}
	}
	return -1
}

func taskSummary(t *task.Task) string {
	parts := []string{t.Description}
	if t.OrderID != "" {
		parts = append(parts, t.OrderID)
	}
	parts = append(parts, dateutil.FormatDateKey(t.Start), t.Timing().String())
	return strings.Join(parts, " ")
}
