package tui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/javiermolinar/bayboard/internal/availability"
	"github.com/javiermolinar/bayboard/internal/layout"
	"github.com/javiermolinar/bayboard/internal/task"
	"github.com/javiermolinar/bayboard/internal/timeline"
)

const (
	labelWidth      = 18
	maxRowLines     = 3
	maxCharsPerHour = 4
)

// gridScale maps board minutes to terminal columns. It reuses the board's
// coordinate mapper with one column standing in for one pixel.
type gridScale struct {
	cfg     timeline.Config
	cols    timeline.Mapper
	perHour int
	origin  int // first minute shown, on an hour boundary
	hours   int
}

func newGridScale(cfg timeline.Config) gridScale {
	perHour := min(60/cfg.SnapMinutes, maxCharsPerHour)
	return gridScale{
		cfg:     cfg,
		cols:    timeline.NewMapper(float64(perHour), cfg.SnapMinutes),
		perHour: perHour,
		origin:  cfg.DayStart / 60 * 60,
		hours:   cfg.Hours(),
	}
}

func (g gridScale) dayWidth() int {
	return g.hours * g.perHour
}

func (g gridScale) colMinutes() int {
	return 60 / g.perHour
}

// col returns the column a minute falls in.
func (g gridScale) col(minute int) int {
	return int(math.Floor(g.cols.ToPixel(minute-g.origin) + 1e-9))
}

// minuteAt returns the first minute covered by a column.
func (g gridScale) minuteAt(col int) int {
	return g.origin + col*g.colMinutes()
}

// nowCol positions the wall clock without snapping; -1 when off the board.
func (g gridScale) nowCol(minute int) int {
	px, visible := g.cols.Offset(g.origin, g.origin+g.hours*60, minute)
	if !visible || minute < g.cfg.DayStart || minute >= g.cfg.DayEnd {
		return -1
	}
	return int(px)
}

type cellKind int

const (
	cellEmpty cellKind = iota
	cellStripe
	cellUnavailable
	cellBar
	cellBarSelected
	cellGhost
	cellGhostHeld
	cellNow
	cellCursor
)

type cellStyle struct {
	kind   cellKind
	status task.Status
}

type cell struct {
	ch    rune
	style cellStyle
}

// bar is a task or ghost interval on one day.
type bar struct {
	start, end int
	label      string
	status     task.Status
	selected   bool
	top        int // first row line
	height     int // row lines covered
}

func (b bar) onLine(line int) bool {
	return line >= b.top && line < b.top+b.height
}

// dayView is everything needed to draw one day of one row.
type dayView struct {
	disabled  []availability.Range
	bars      []bar
	ghost     *bar
	ghostHeld bool
	cursorCol int
	nowCol    int
}

// cells lays out one terminal line of a day.
func (d dayView) cells(g gridScale, line int) []cell {
	width := g.dayWidth()
	step := g.colMinutes()
	out := make([]cell, width)
	for c := range out {
		m := g.minuteAt(c)
		kind := cellEmpty
		if (c/g.perHour)%2 == 1 {
			kind = cellStripe
		}
		ch := ' '
		if m < g.cfg.DayStart || m >= g.cfg.DayEnd || availability.Intersects(d.disabled, m, m+step) {
			kind, ch = cellUnavailable, '░'
		}
		out[c] = cell{ch: ch, style: cellStyle{kind: kind}}
	}

	if d.nowCol >= 0 && d.nowCol < width {
		out[d.nowCol] = cell{ch: '│', style: cellStyle{kind: cellNow}}
	}

	for _, b := range d.bars {
		if !b.onLine(line) {
			continue
		}
		kind := cellBar
		if b.selected {
			kind = cellBarSelected
		}
		paint(out, g, b, cellStyle{kind: kind, status: b.status})
	}

	if d.ghost != nil {
		kind := cellGhost
		if d.ghostHeld {
			kind = cellGhostHeld
		}
		paint(out, g, *d.ghost, cellStyle{kind: kind})
	}

	if d.cursorCol >= 0 && d.cursorCol < width {
		out[d.cursorCol].style = cellStyle{kind: cellCursor}
		if out[d.cursorCol].ch == ' ' {
			out[d.cursorCol].ch = '▏'
		}
	}
	return out
}

// paint fills the bar's columns and writes its label from the left edge.
func paint(out []cell, g gridScale, b bar, style cellStyle) {
	width := len(out)
	from := timeline.Clamp(g.col(b.start), 0, width)
	to := timeline.Clamp(g.col(b.end), 0, width)
	if to <= from {
		if from >= width {
			return
		}
		to = from + 1
	}
	label := []rune(ansi.Truncate(b.label, to-from, "…"))
	for c := from; c < to; c++ {
		ch := ' '
		if i := c - from; i < len(label) {
			ch = label[i]
		}
		out[c] = cell{ch: ch, style: style}
	}
}

// lineBox converts a stack slot into whole row lines.
func lineBox(index, count, lines int) (top, height int) {
	if count <= 0 || lines <= 1 {
		return 0, max(lines, 1)
	}
	t, h := layout.SlotBox(layout.Slot{Index: index, Count: count}, float64(lines), 0)
	top = int(math.Floor(t + 1e-9))
	bottom := int(math.Round(t + h))
	if bottom <= top {
		bottom = top + 1
	}
	bottom = min(bottom, lines)
	top = min(top, lines-1)
	return top, bottom - top
}

// renderCells joins runs of equally styled cells.
func renderCells(cells []cell, styles *Styles) string {
	var b strings.Builder
	var run []rune
	var current cellStyle
	flush := func() {
		if len(run) > 0 {
			b.WriteString(styles.cell(current).Render(string(run)))
			run = run[:0]
		}
	}
	for i, c := range cells {
		if i == 0 || c.style != current {
			flush()
			current = c.style
		}
		run = append(run, c.ch)
	}
	flush()
	return b.String()
}

func (s *Styles) cell(cs cellStyle) lipgloss.Style {
	switch cs.kind {
	case cellStripe:
		return s.StripeCellStyle
	case cellUnavailable:
		return s.UnavailableStyle
	case cellBar:
		return s.BarStyle(cs.status, false)
	case cellBarSelected:
		return s.BarStyle(cs.status, true)
	case cellGhost:
		return s.GhostStyle
	case cellGhostHeld:
		return s.GhostHeldStyle
	case cellNow:
		return s.NowStyle
	case cellCursor:
		return s.CursorStyle
	default:
		return s.EmptyCellStyle
	}
}

// rowView is one resource lane across the visible days.
type rowView struct {
	label    string
	selected bool
	target   bool
	lines    int
	days     []dayView
}

// render draws the lane as lines of label column plus day cells.
func (r rowView) render(g gridScale, styles *Styles) []string {
	labelStyle := styles.ResourceStyle
	if r.selected || r.target {
		labelStyle = styles.ResourceSelectedStyle
	}
	sep := styles.SeparatorStyle.Render("│")

	out := make([]string, 0, r.lines)
	for line := range r.lines {
		label := ""
		if line == 0 {
			label = " " + ansi.Truncate(r.label, labelWidth-2, "…")
		}
		var b strings.Builder
		b.WriteString(labelStyle.Width(labelWidth).Render(label))
		for _, d := range r.days {
			b.WriteString(sep)
			b.WriteString(renderCells(d.cells(g, line), styles))
		}
		out = append(out, b.String())
	}
	return out
}
