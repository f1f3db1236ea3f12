// Package layout places overlapping tasks of one row and day into
// non-overlapping vertical stacks.
package layout

import (
	"slices"

	"github.com/javiermolinar/bayboard/internal/task"
	"github.com/javiermolinar/bayboard/internal/timeline"
)

// Slot is a task's position within its stack group.
type Slot struct {
	Index int
	Count int
}

// Geometry is the rendered box of one task.
type Geometry struct {
	TaskID     string
	Left       float64
	Width      float64
	Top        float64
	Height     float64
	StackIndex int
	StackCount int
}

// Stack assigns every task a slot using pairwise grouping: the group of T is
// every task whose interval intersects T, including T, ordered by start with
// input order breaking ties. Tasks are expected to share one row and date.
func Stack(tasks []*task.Task) map[string]Slot {
	out := make(map[string]Slot, len(tasks))
	for _, t := range tasks {
		var group []*task.Task
		for _, other := range tasks {
			if other == t || t.OverlapsWith(other) {
				group = append(group, other)
			}
		}
		sortByStart(group)
		out[t.ID] = Slot{Index: slices.Index(group, t), Count: len(group)}
	}
	return out
}

// Cluster assigns slots using transitive grouping: tasks connected through a
// chain of overlaps share one group, so every member reports the same count.
func Cluster(tasks []*task.Task) map[string]Slot {
	sorted := slices.Clone(tasks)
	sortByStart(sorted)

	out := make(map[string]Slot, len(tasks))
	var group []*task.Task
	groupEnd := 0
	flush := func() {
		for i, t := range group {
			out[t.ID] = Slot{Index: i, Count: len(group)}
		}
		group = group[:0]
	}
	for _, t := range sorted {
		if len(group) > 0 && (t.StartMinute() >= groupEnd || !t.Date().Equal(group[0].Date())) {
			flush()
		}
		if len(group) == 0 {
			groupEnd = t.EndMinute()
		}
		group = append(group, t)
		groupEnd = max(groupEnd, t.EndMinute())
	}
	flush()
	return out
}

// Assign dispatches to Stack or Cluster according to g.
func Assign(tasks []*task.Task, g timeline.Grouping) map[string]Slot {
	if g == timeline.GroupTransitive {
		return Cluster(tasks)
	}
	return Stack(tasks)
}

// SlotBox returns the vertical placement of a slot inside a row.
func SlotBox(s Slot, rowHeight, gap float64) (top, height float64) {
	if s.Count <= 0 {
		return 0, rowHeight
	}
	height = (rowHeight - float64(s.Count-1)*gap) / float64(s.Count)
	if height < 0 {
		height = 0
	}
	return float64(s.Index) * (height + gap), height
}

// Place computes the box of every task in input order.
func Place(tasks []*task.Task, cfg timeline.Config, m timeline.Mapper) []Geometry {
	slots := Assign(tasks, cfg.StackGrouping)
	out := make([]Geometry, 0, len(tasks))
	for _, t := range tasks {
		s := slots[t.ID]
		left, width := m.Span(cfg.DayStart, t.StartMinute(), t.EndMinute())
		top, height := SlotBox(s, cfg.RowHeightPx, cfg.StackGapPx)
		out = append(out, Geometry{
			TaskID:     t.ID,
			Left:       left,
			Width:      width,
			Top:        top,
			Height:     height,
			StackIndex: s.Index,
			StackCount: s.Count,
		})
	}
	return out
}

func sortByStart(tasks []*task.Task) {
	slices.SortStableFunc(tasks, func(a, b *task.Task) int {
		return a.Start.Compare(b.Start)
	})
}
