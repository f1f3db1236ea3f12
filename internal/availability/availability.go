// Package availability derives the windows in which a resource cannot be
// scheduled from its shift and lunch definitions.
package availability

import (
	"cmp"
	"fmt"
	"slices"
	"time"

	"github.com/javiermolinar/bayboard/internal/task"
	"github.com/javiermolinar/bayboard/internal/timeline"
)

// Kind identifies why a range is unavailable.
type Kind string

const (
	KindBeforeShift Kind = "before_shift"
	KindLunch       Kind = "lunch"
	KindAfterShift  Kind = "after_shift"
	KindOffDay      Kind = "off_day"
)

// Range is a half-open [Start, End) window, in minutes since midnight, during
// which a resource cannot hold tasks on Date.
type Range struct {
	ResourceID string
	Date       time.Time
	Start      int
	End        int
	Kind       Kind
}

// Overlaps reports whether the range intersects [start, end).
func (r Range) Overlaps(start, end int) bool {
	return timeline.Overlaps(r.Start, r.End, start, end)
}

func (r Range) String() string {
	return fmt.Sprintf("%s %s-%s (%s)", r.Date.Format("2006-01-02"),
		timeline.FormatClock(r.Start), timeline.FormatClock(r.End), r.Kind)
}

// Issue describes a work day definition that could not be used as written.
type Issue struct {
	ResourceID string
	Date       time.Time
	Reason     string
}

// Diagnostics receives inconsistent availability reports.
type Diagnostics interface {
	InconsistentAvailability(Issue)
}

type nopDiagnostics struct{}

func (nopDiagnostics) InconsistentAvailability(Issue) {}

// Calculator computes disabled ranges against the global day bounds.
type Calculator struct {
	dayStart int
	dayEnd   int
	diag     Diagnostics
}

// New creates a Calculator for the bounds in cfg. A nil diag discards reports.
func New(cfg timeline.Config, diag Diagnostics) *Calculator {
	if diag == nil {
		diag = nopDiagnostics{}
	}
	return &Calculator{
		dayStart: cfg.DayStart,
		dayEnd:   cfg.DayEnd,
		diag:     diag,
	}
}

// Ranges returns the raw, unmerged disabled ranges of r on date.
// Empty ranges are dropped.
func (c *Calculator) Ranges(r *task.Resource, date time.Time) []Range {
	date = dayOf(date)
	if r == nil {
		return []Range{c.offDay("", date)}
	}

	wd, ok := r.WorkDayFor(date)
	if !ok {
		return []Range{c.offDay(r.ID, date)}
	}
	if wd.ShiftStart >= wd.ShiftEnd {
		c.diag.InconsistentAvailability(Issue{
			ResourceID: r.ID,
			Date:       date,
			Reason: fmt.Sprintf("shift %s-%s is empty, treating %s as off",
				timeline.FormatClock(wd.ShiftStart), timeline.FormatClock(wd.ShiftEnd), wd.Weekday),
		})
		return []Range{c.offDay(r.ID, date)}
	}

	var out []Range
	add := func(start, end int, kind Kind) {
		if start >= end {
			return
		}
		out = append(out, Range{ResourceID: r.ID, Date: date, Start: start, End: end, Kind: kind})
	}

	add(c.dayStart, wd.ShiftStart, KindBeforeShift)
	if wd.HasLunch() {
		if wd.LunchStart < wd.ShiftStart || wd.LunchEnd() > wd.ShiftEnd {
			c.diag.InconsistentAvailability(Issue{
				ResourceID: r.ID,
				Date:       date,
				Reason: fmt.Sprintf("lunch %s-%s falls outside shift %s-%s, ignoring it",
					timeline.FormatClock(wd.LunchStart), timeline.FormatClock(wd.LunchEnd()),
					timeline.FormatClock(wd.ShiftStart), timeline.FormatClock(wd.ShiftEnd)),
			})
		} else {
			add(wd.LunchStart, wd.LunchEnd(), KindLunch)
		}
	}
	add(wd.ShiftEnd, c.dayEnd, KindAfterShift)
	return out
}

// Disabled returns the merged disabled ranges of r on date. This is the set
// every placement is validated against.
func (c *Calculator) Disabled(r *task.Resource, date time.Time) []Range {
	return Merge(c.Ranges(r, date))
}

// Window returns the merged disabled ranges of r across dates.
func (c *Calculator) Window(r *task.Resource, dates []time.Time) []Range {
	var raw []Range
	for _, d := range dates {
		raw = append(raw, c.Ranges(r, d)...)
	}
	return Merge(raw)
}

// Merge sorts ranges by date and start, then folds every range whose start is
// at or before the previous range's end on the same date into it. The merged
// range keeps the kind of the range that opened it.
func Merge(ranges []Range) []Range {
	if len(ranges) == 0 {
		return nil
	}
	sorted := slices.Clone(ranges)
	slices.SortStableFunc(sorted, func(a, b Range) int {
		if c := a.Date.Compare(b.Date); c != 0 {
			return c
		}
		return cmp.Compare(a.Start, b.Start)
	})

	out := []Range{sorted[0]}
	for _, cur := range sorted[1:] {
		last := &out[len(out)-1]
		if cur.Date.Equal(last.Date) && cur.Start <= last.End {
			last.End = max(last.End, cur.End)
			continue
		}
		out = append(out, cur)
	}
	return out
}

// Intersects reports whether [start, end) touches any range.
func Intersects(ranges []Range, start, end int) bool {
	_, ok := FirstConflict(ranges, start, end)
	return ok
}

// FirstConflict returns the first range intersecting [start, end).
func FirstConflict(ranges []Range, start, end int) (Range, bool) {
	for _, r := range ranges {
		if r.Overlaps(start, end) {
			return r, true
		}
	}
	return Range{}, false
}

// On returns the ranges that fall on date.
func On(ranges []Range, date time.Time) []Range {
	date = dayOf(date)
	var out []Range
	for _, r := range ranges {
		if r.Date.Equal(date) {
			out = append(out, r)
		}
	}
	return out
}

func (c *Calculator) offDay(resourceID string, date time.Time) Range {
	return Range{ResourceID: resourceID, Date: date, Start: c.dayStart, End: c.dayEnd, Kind: KindOffDay}
}

func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
