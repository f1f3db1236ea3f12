// Package task defines the core domain types for bayboard.
package task

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/javiermolinar/bayboard/internal/timeline"
)

// Validation errors.
var (
	ErrEmptyID         = errors.New("task id cannot be empty")
	ErrEmptyResource   = errors.New("task must be assigned to a resource")
	ErrEndBeforeStart  = errors.New("end time must be after start time")
	ErrInvalidStatus   = errors.New("status must be one of pending, in_progress, paused, finished")
	ErrUnknownResource = errors.New("unknown resource")
)

// Domain errors.
var (
	ErrTaskNotFound  = errors.New("task not found")
	ErrDuplicateTask = errors.New("task already exists")
)

// Status represents the state of a task.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusPaused     Status = "paused"
	StatusFinished   Status = "finished"
)

// Valid returns true if the status is a known value.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusPaused, StatusFinished:
		return true
	default:
		return false
	}
}

// ParseStatus converts a string to a Status. Empty means pending.
func ParseStatus(s string) (Status, error) {
	if s == "" {
		return StatusPending, nil
	}
	st := Status(s)
	if !st.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
	return st, nil
}

// Task is a bar on the board, assigned to one resource.
type Task struct {
	ID          string
	ResourceID  string
	SectionID   string
	Kind        string // operation type, e.g. "maintenance"
	OrderID     string
	Description string
	Start       time.Time
	End         time.Time
	Status      Status
	Subtasks    []string
	Comments    []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Validate checks the task invariants.
func (t *Task) Validate() error {
	if t.ID == "" {
		return ErrEmptyID
	}
	if t.ResourceID == "" {
		return ErrEmptyResource
	}
	if !t.End.After(t.Start) {
		return fmt.Errorf("%w: task %s (%s-%s)", ErrEndBeforeStart, t.ID,
			t.Start.Format("2006-01-02 15:04"), t.End.Format("2006-01-02 15:04"))
	}
	if !t.Status.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, t.Status)
	}
	return nil
}

// StartMinute returns the start as minutes since midnight.
func (t *Task) StartMinute() int {
	return timeline.MinuteOfDay(t.Start)
}

// EndMinute returns the end as minutes since midnight of the start day.
// An end that falls on a later day counts from the start day's midnight.
func (t *Task) EndMinute() int {
	days := int(truncateToDay(t.End).Sub(truncateToDay(t.Start)).Hours() / 24)
	return days*timeline.MinutesPerDay + timeline.MinuteOfDay(t.End)
}

// Duration returns the task duration in minutes.
func (t *Task) Duration() int {
	return int(t.End.Sub(t.Start).Minutes())
}

// Date returns the calendar day the task starts on.
func (t *Task) Date() time.Time {
	return truncateToDay(t.Start)
}

// Timing returns the task's clock interval as a Timing.
func (t *Task) Timing() timeline.Timing {
	return timeline.TimingFromMinutes(t.StartMinute(), t.EndMinute())
}

// OverlapsWith returns true if both tasks start on the same day and their
// half-open clock intervals intersect.
func (t *Task) OverlapsWith(other *Task) bool {
	if other == nil {
		return false
	}
	if !t.Date().Equal(other.Date()) {
		return false
	}
	return timeline.Overlaps(t.StartMinute(), t.EndMinute(), other.StartMinute(), other.EndMinute())
}

// ApplyTiming sets the clock times from tm on the task's start day.
func (t *Task) ApplyTiming(tm timeline.Timing) {
	t.Start, t.End = tm.Apply(t.Start)
}

// MoveTo places the task on date at [start, end) minutes.
func (t *Task) MoveTo(date time.Time, start, end int) {
	t.Start = timeline.At(date, start)
	t.End = timeline.At(date, end)
}

// Clone returns a deep copy of the task.
func (t *Task) Clone() *Task {
	c := *t
	c.Subtasks = slices.Clone(t.Subtasks)
	c.Comments = slices.Clone(t.Comments)
	return &c
}

// SortByStart orders tasks by start time, keeping input order for ties.
func SortByStart(tasks []*Task) {
	slices.SortStableFunc(tasks, func(a, b *Task) int {
		return a.Start.Compare(b.Start)
	})
}

// truncateToDay removes the time component from a time.Time.
func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
