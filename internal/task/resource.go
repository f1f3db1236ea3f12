package task

import (
	"slices"
	"time"
)

// WorkDay is a resource's working hours for one weekday.
// Clock values are minutes since midnight. Lunch is absent when
// LunchMinutes is zero.
type WorkDay struct {
	Weekday      time.Weekday
	ShiftStart   int
	ShiftEnd     int
	LunchStart   int
	LunchMinutes int
}

// HasLunch reports whether a lunch break is defined.
func (w WorkDay) HasLunch() bool {
	return w.LunchMinutes > 0
}

// LunchEnd returns the minute the lunch break ends.
func (w WorkDay) LunchEnd() int {
	return w.LunchStart + w.LunchMinutes
}

// Resource is an operator or bay that tasks are assigned to.
type Resource struct {
	ID       string
	Name     string
	Role     string
	Avatar   string
	WorkDays []WorkDay
}

// WorkDayFor returns the first work day defined for the weekday of date.
func (r *Resource) WorkDayFor(date time.Time) (WorkDay, bool) {
	for _, wd := range r.WorkDays {
		if wd.Weekday == date.Weekday() {
			return wd, true
		}
	}
	return WorkDay{}, false
}

// Section groups resources for display.
type Section struct {
	ID          string
	Name        string
	Description string
	Order       int
	Color       string
	Icon        string
	Resources   []*Resource
}

// Board is the static layout of sections and resources.
type Board struct {
	Sections []*Section
}

// OrderedSections returns sections sorted by Order, keeping file order for ties.
func (b *Board) OrderedSections() []*Section {
	out := slices.Clone(b.Sections)
	slices.SortStableFunc(out, func(x, y *Section) int {
		return x.Order - y.Order
	})
	return out
}

// Resource finds a resource by ID.
func (b *Board) Resource(id string) (*Resource, bool) {
	for _, s := range b.Sections {
		for _, r := range s.Resources {
			if r.ID == id {
				return r, true
			}
		}
	}
	return nil, false
}

// SectionOf returns the first section containing the resource.
func (b *Board) SectionOf(resourceID string) (*Section, bool) {
	for _, s := range b.Sections {
		for _, r := range s.Resources {
			if r.ID == resourceID {
				return s, true
			}
		}
	}
	return nil, false
}

// Resources returns every resource in display order.
func (b *Board) Resources() []*Resource {
	var out []*Resource
	for _, s := range b.OrderedSections() {
		out = append(out, s.Resources...)
	}
	return out
}
