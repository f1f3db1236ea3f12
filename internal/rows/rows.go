// Package rows builds the per-resource view models the board renders.
package rows

import (
	"time"

	"github.com/javiermolinar/bayboard/internal/availability"
	"github.com/javiermolinar/bayboard/internal/dateutil"
	"github.com/javiermolinar/bayboard/internal/task"
)

// Row is one resource's lane over the visible window.
type Row struct {
	Section  *task.Section
	Resource *task.Resource
	Disabled []availability.Range // merged, for every day in the window
	Tasks    []*task.Task         // start falls in the window, sorted by start
}

// TasksOn returns the row's tasks starting on date.
func (r Row) TasksOn(date time.Time) []*task.Task {
	var out []*task.Task
	for _, t := range r.Tasks {
		if dateutil.SameDay(t.Start, date) {
			out = append(out, t)
		}
	}
	return out
}

// DisabledOn returns the row's disabled ranges on date.
func (r Row) DisabledOn(date time.Time) []availability.Range {
	return availability.On(r.Disabled, date)
}

// Build returns one row per section and resource, sections ordered by their
// Order field. It holds no state; call it again whenever an input changes.
func Build(b *task.Board, tasks []*task.Task, calc *availability.Calculator, w dateutil.Window) []Row {
	if b == nil {
		return nil
	}
	dates := w.Dates()

	byResource := make(map[string][]*task.Task)
	for _, t := range tasks {
		if !w.Contains(t.Start) {
			continue
		}
		byResource[t.ResourceID] = append(byResource[t.ResourceID], t)
	}

	var out []Row
	for _, sec := range b.OrderedSections() {
		for _, res := range sec.Resources {
			mine := byResource[res.ID]
			task.SortByStart(mine)
			out = append(out, Row{
				Section:  sec,
				Resource: res,
				Disabled: calc.Window(res, dates),
				Tasks:    mine,
			})
		}
	}
	return out
}

// Find returns the row of the given resource.
func Find(rows []Row, resourceID string) (Row, bool) {
	for _, r := range rows {
		if r.Resource.ID == resourceID {
			return r, true
		}
	}
	return Row{}, false
}
