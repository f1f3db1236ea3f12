package ui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/x/ansi"

	"github.com/javiermolinar/bayboard/internal/availability"
	"github.com/javiermolinar/bayboard/internal/gesture"
	"github.com/javiermolinar/bayboard/internal/layout"
	"github.com/javiermolinar/bayboard/internal/rows"
	"github.com/javiermolinar/bayboard/internal/summary"
	"github.com/javiermolinar/bayboard/internal/task"
	"github.com/javiermolinar/bayboard/internal/timeline"
)

// PrintOpts configures row printing.
type PrintOpts struct {
	Geometry     bool // print pixel boxes next to tasks
	MaxDescWidth int  // 0 = derive from the terminal width
}

// CalcMaxDescWidth returns the description width for the current terminal.
func (o PrintOpts) CalcMaxDescWidth(defaultWidth int) int {
	if o.MaxDescWidth > 0 {
		return o.MaxDescWidth
	}
	// indent + time range + status column + geometry
	used := 4 + 12 + 14
	if o.Geometry {
		used += 34
	}
	if w := termWidth() - used; w > defaultWidth {
		return w
	}
	return defaultWidth
}

// PrintRows writes every row of the window, grouped by section.
func PrintRows(w io.Writer, rs []rows.Row, dates []time.Time, geometry func(rows.Row, time.Time) []layout.Geometry, opts PrintOpts) {
	descWidth := opts.CalcMaxDescWidth(24)
	var current *task.Section
	for _, r := range rs {
		if r.Section != current {
			current = r.Section
			fmt.Fprintf(w, "\n%s\n", formatSection(strings.ToUpper(current.Name)))
		}
		header := r.Resource.Name
		if r.Resource.Role != "" {
			header += formatMuted(" (" + r.Resource.Role + ")")
		}
		fmt.Fprintf(w, "  %s\n", formatHeader(header))

		for _, date := range dates {
			fmt.Fprintf(w, "    %s\n", formatMuted(date.Format("Mon 02 Jan")))
			for _, d := range r.DisabledOn(date) {
				fmt.Fprintf(w, "      %s  %s\n", formatRange(d.Start, d.End), formatConflict(string(d.Kind)))
			}
			boxes := make(map[string]layout.Geometry)
			if geometry != nil {
				for _, g := range geometry(r, date) {
					boxes[g.TaskID] = g
				}
			}
			for _, t := range r.TasksOn(date) {
				line := fmt.Sprintf("      %s  %-11s %s", t.Timing(), t.Status, TruncateDesc(t.Description, descWidth))
				if g, ok := boxes[t.ID]; ok && opts.Geometry {
					line += "  " + formatMuted(FormatGeometry(g))
				}
				fmt.Fprintln(w, line)
			}
		}
	}
}

// PrintSummary writes the booked and open hours of every resource.
func PrintSummary(w io.Writer, s *summary.Summary) {
	fmt.Fprintf(w, "\n%s\n", formatSection("LOAD"))
	for _, l := range s.Loads {
		fmt.Fprintf(w, "  %-14s %s\n", TruncateDesc(l.ResourceName, 14), formatLoad(l))
	}
	fmt.Fprintf(w, "  %-14s %s\n", formatHeader("Total"), formatLoad(s.Total))
}

func formatLoad(l summary.Load) string {
	line := fmt.Sprintf("%6s booked / %6s open  %3.0f%%  %d tasks",
		formatHours(l.Booked), formatHours(l.OpenMinutes), l.Utilization()*100, l.Tasks)
	if l.OpenMinutes > 0 && l.Booked > l.OpenMinutes {
		return formatWarn(line)
	}
	return line
}

func formatHours(minutes int) string {
	return fmt.Sprintf("%dh%02d", minutes/60, minutes%60)
}

func formatRange(start, end int) string {
	return timeline.FormatClock(start) + "-" + timeline.FormatClock(end)
}

// FormatGeometry renders a task box as "x=LEFT w=WIDTH y=TOP h=HEIGHT [i/n]".
func FormatGeometry(g layout.Geometry) string {
	return fmt.Sprintf("x=%.0f w=%.0f y=%.1f h=%.1f [%d/%d]",
		g.Left, g.Width, g.Top, g.Height, g.StackIndex+1, g.StackCount)
}

// FormatPreview renders one gesture preview.
func FormatPreview(p gesture.Preview) string {
	s := fmt.Sprintf("%s  x=%.0f w=%.0f", formatRange(p.Start, p.End), p.Left, p.Width)
	if p.Held {
		s += "  " + formatConflict("held")
	}
	return s
}

// FormatOutcome summarizes a released gesture.
func FormatOutcome(o gesture.Outcome) string {
	var b strings.Builder
	if o.Committed {
		b.WriteString(formatOK("committed"))
	} else {
		b.WriteString(formatConflict("reverted"))
	}
	fmt.Fprintf(&b, " %s %s %s on %s", o.Kind, o.TaskID, o.Timing, o.Date.Format(time.DateOnly))
	if o.ResourceID != "" {
		fmt.Fprintf(&b, " (%s)", o.ResourceID)
	}
	for _, r := range o.Reasons {
		b.WriteString(" " + formatWarn(string(r)))
	}
	if o.Conflict != nil {
		fmt.Fprintf(&b, "\n  conflicts with %s", formatConflict(o.Conflict.String()))
	}
	return b.String()
}

// FormatTask renders a task on one line.
func FormatTask(t *task.Task) string {
	s := fmt.Sprintf("%s  %s %s  %s  %s", t.ID, t.Start.Format(time.DateOnly), t.Timing(), t.ResourceID, t.Status)
	if t.Description != "" {
		s += "  " + t.Description
	}
	return s
}

// FormatIssue renders an inconsistent availability report.
func FormatIssue(i availability.Issue) string {
	return fmt.Sprintf("%s %s: %s", i.ResourceID, i.Date.Format(time.DateOnly), i.Reason)
}

// TruncateDesc shortens s to width terminal cells.
func TruncateDesc(s string, width int) string {
	if width <= 0 {
		return s
	}
	return ansi.Truncate(s, width, "…")
}
