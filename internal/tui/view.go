package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/javiermolinar/bayboard/internal/dateutil"
	"github.com/javiermolinar/bayboard/internal/rows"
	"github.com/javiermolinar/bayboard/internal/task"
	"github.com/javiermolinar/bayboard/internal/timeline"
	"github.com/javiermolinar/bayboard/internal/tui/view"
)

// headerLines is the title, day label and hour ruler lines.
const headerLines = 3

// View renders the model.
func (m Model) View() string {
	return view.Render(m.viewState())
}

func (m Model) viewState() view.ViewState {
	state := view.ViewState{
		Width:       m.width,
		Height:      m.height,
		ModalBg:     m.styles.ModalBgColor,
		Placeholder: "Loading...",
	}
	if m.width == 0 || m.height == 0 {
		return state
	}
	state.Base = m.renderAppContent()
	if m.mode == ModeModal {
		state.Modal = m.renderTaskModal()
	}
	return state
}

func (m Model) renderAppContent() string {
	footer := m.footerViewState()
	bodyH := max(m.height-headerLines-view.FooterHeight(footer), 0)

	lines := []string{m.renderTitle(), m.renderDayHeader(), m.renderRuler()}
	body := m.renderBody()
	end := min(m.offset+bodyH, len(body))
	if m.offset < end {
		lines = append(lines, body[m.offset:end]...)
	}
	for i := range lines {
		lines[i] = ansi.Truncate(lines[i], m.width, "")
	}

	content := view.Fill(strings.Join(lines, "\n"), m.width, m.height-view.FooterHeight(footer), m.styles.colorBg)
	if f := view.RenderFooter(footer); f != "" {
		content += "\n" + f
	}
	return m.styles.AppStyle.Render(content)
}

func (m Model) renderTitle() string {
	title := fmt.Sprintf(" bayboard  %s", m.window)
	switch m.mode {
	case ModeRelocate:
		title += "  [move]"
	case ModeResize:
		title += "  [resize]"
	}
	return m.styles.TitleStyle.Render(title)
}

func (m Model) renderDayHeader() string {
	var b strings.Builder
	b.WriteString(m.styles.RulerStyle.Width(labelWidth).Render(""))
	width := m.scale.dayWidth()
	for _, date := range m.window.Dates() {
		label, today := view.DayLabel(date, m.clock)
		style := m.styles.DayHeaderStyle
		if today {
			style = m.styles.DayHeaderTodayStyle
		}
		b.WriteString(m.styles.SeparatorStyle.Render(" "))
		b.WriteString(style.Width(width).Render(ansi.Truncate(label, width, "")))
	}
	return b.String()
}

func (m Model) renderRuler() string {
	var b strings.Builder
	b.WriteString(m.styles.RulerStyle.Width(labelWidth).Render(""))
	ruler := view.HourRuler(m.scale.origin/60, m.scale.hours, m.scale.perHour)
	for range m.window.Days {
		b.WriteString(m.styles.SeparatorStyle.Render("│"))
		b.WriteString(m.styles.RulerStyle.Render(ruler))
	}
	return b.String()
}

// bodyEntry is a section header (row < 0) or a resource lane.
type bodyEntry struct {
	section *task.Section
	row     int
	top     int
	lines   int
}

// bodyLayout lists the body entries with their first line.
func (m Model) bodyLayout() []bodyEntry {
	var out []bodyEntry
	var current *task.Section
	line := 0
	for i, r := range m.rows {
		if r.Section != current {
			current = r.Section
			out = append(out, bodyEntry{section: current, row: -1, top: line, lines: 1})
			line++
		}
		n := m.rowLines(r)
		out = append(out, bodyEntry{row: i, top: line, lines: n})
		line += n
	}
	return out
}

// rowLines is the tallest stack of the row across the window.
func (m Model) rowLines(r rows.Row) int {
	n := 1
	for _, date := range m.window.Dates() {
		for _, g := range m.board.Geometry(r, date) {
			n = max(n, g.StackCount)
		}
	}
	return min(n, maxRowLines)
}

// ensureVisible scrolls the body so the focused row is on screen.
func (m *Model) ensureVisible() {
	if m.height == 0 {
		return
	}
	focus := m.row
	if m.mode == ModeRelocate {
		focus = m.targetRow
	}
	bodyH := max(m.height-headerLines-view.FooterHeight(m.footerViewState()), 1)
	entries := m.bodyLayout()
	for i, e := range entries {
		if e.row != focus {
			continue
		}
		top := e.top
		if i > 0 && entries[i-1].row < 0 {
			top = entries[i-1].top // show the section header with its first lane
		}
		if top < m.offset {
			m.offset = top
		}
		if e.top+e.lines > m.offset+bodyH {
			m.offset = e.top + e.lines - bodyH
		}
		m.offset = max(m.offset, 0)
		return
	}
}

func (m Model) renderBody() []string {
	if len(m.rows) == 0 {
		return []string{m.styles.HelpStyle.Render(" No resources. Run `bayboard init` to create a sample board.")}
	}
	var out []string
	for _, e := range m.bodyLayout() {
		if e.row < 0 {
			out = append(out, m.renderSection(e.section))
			continue
		}
		out = append(out, m.rowView(e.row, e.lines).render(m.scale, m.styles)...)
	}
	return out
}

func (m Model) renderSection(sec *task.Section) string {
	name := sec.Name
	if sec.Icon != "" {
		name = sec.Icon + " " + name
	}
	width := labelWidth + m.window.Days*(m.scale.dayWidth()+1)
	return m.styles.SectionColor(sec.Color).Width(width).Render(" " + name)
}

// rowView builds the lane model of row i.
func (m Model) rowView(i, lines int) rowView {
	r := m.rows[i]
	selected := m.selectedTask()
	clockMinute := m.clock.Hour()*60 + m.clock.Minute()
	ghostStart, ghostEnd, held := m.ghost()

	rv := rowView{
		label:    r.Resource.Name,
		selected: i == m.row,
		target:   m.mode == ModeRelocate && i == m.targetRow,
		lines:    lines,
	}
	for d, date := range m.window.Dates() {
		dv := dayView{disabled: r.DisabledOn(date), cursorCol: -1, nowCol: -1}
		if dateutil.SameDay(date, m.clock) {
			dv.nowCol = m.scale.nowCol(clockMinute)
		}

		slots := make(map[string][2]int)
		for _, g := range m.board.Geometry(r, date) {
			slots[g.TaskID] = [2]int{g.StackIndex, g.StackCount}
		}
		for _, t := range r.TasksOn(date) {
			s := slots[t.ID]
			top, height := lineBox(s[0], s[1], lines)
			dv.bars = append(dv.bars, bar{
				start:    t.StartMinute(),
				end:      t.EndMinute(),
				label:    t.Description,
				status:   t.Status,
				selected: selected != nil && t.ID == selected.ID && i == m.row && d == m.day,
				top:      top,
				height:   height,
			})
		}

		switch m.mode {
		case ModeRelocate:
			if i == m.targetRow && d == m.targetDay {
				dv.ghost = &bar{start: ghostStart, end: ghostEnd, label: timeline.TimingFromMinutes(ghostStart, ghostEnd).String()}
				dv.ghostHeld = held
			}
		case ModeResize:
			if i == m.row && d == m.day {
				dv.ghost = &bar{start: ghostStart, end: ghostEnd, label: timeline.TimingFromMinutes(ghostStart, ghostEnd).String()}
				dv.ghostHeld = held
			}
		default:
			if i == m.row && d == m.day {
				dv.cursorCol = m.scale.col(m.minute)
			}
		}
		rv.days = append(rv.days, dv)
	}
	return rv
}

func (m Model) footerViewState() view.FooterViewState {
	state := view.FooterViewState{
		InnerW:   m.width,
		HelpLine: m.help.View(m.keys.helpFor(m.mode)),
		Bg:       m.styles.colorBg,
	}
	if m.mode == ModePrompt {
		state.PromptLine = " " + m.prompt.View()
	}
	if m.statusMsg != "" {
		style := m.styles.StatusStyle
		if m.statusErr {
			style = m.styles.StatusErrorStyle
		}
		state.StatusLine = style.Render(" " + m.statusMsg)
	} else if m.mode == ModeNormal {
		state.StatusLine = m.styles.HelpStyle.Render(" " + m.cursorLabel())
	}
	return state
}

// cursorLabel describes the cell under the cursor.
func (m Model) cursorLabel() string {
	r, ok := m.currentRow()
	if !ok {
		return ""
	}
	label := fmt.Sprintf("%s  %s %s", r.Resource.Name, m.currentDate().Format("Mon 02 Jan"), timeline.FormatClock(m.minute))
	if t := m.selectedTask(); t != nil {
		label += fmt.Sprintf("  %s %s [%s]", t.Description, t.Timing(), t.Status)
	}
	return label
}

func (m Model) renderTaskModal() string {
	t, err := m.board.Task(m.modalTask)
	if err != nil {
		return ""
	}
	resource := t.ResourceID
	if r, ok := m.board.Layout().Resource(t.ResourceID); ok {
		resource = r.Name
	}
	body := view.RenderTaskDetailBody(view.TaskDetailModel{
		Description: t.Description,
		OrderID:     t.OrderID,
		Kind:        t.Kind,
		Resource:    resource,
		TimeRange:   fmt.Sprintf("%s (%s)", t.Timing(), timeline.FormatDuration(t.Duration())),
		DateLabel:   t.Start.Format("Monday 02 January 2006"),
		StatusLabel: string(t.Status),
		Subtasks:    t.Subtasks,
		Comments:    t.Comments,
	}, view.TaskDetailStyles{
		BodyStyle:  m.styles.ModalBodyStyle,
		LabelStyle: m.styles.ModalLabelStyle,
		MetaStyle:  m.styles.ModalMetaStyle,
	})
	return view.Modal("Task", body, []string{"[Enter] Close", "[y] Copy"}, 0, m.styles.ModalStyles())
}
