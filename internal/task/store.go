package task

import (
	"fmt"
	"time"
)

// Store holds the task collection the board reads and mutates.
// Implementations are not required to be safe for concurrent use.
type Store interface {
	// List returns every task, in insertion order.
	List() []*Task

	// Get retrieves a task by ID.
	Get(id string) (*Task, error)

	// Add inserts a new task. Returns ErrDuplicateTask if the ID exists.
	Add(t *Task) error

	// Put replaces an existing task. Returns ErrTaskNotFound otherwise.
	Put(t *Task) error

	// ListByDateRange returns tasks starting within [start, end] (inclusive days).
	ListByDateRange(start, end time.Time) []*Task
}

// MemStore is an in-memory Store.
type MemStore struct {
	order []string
	tasks map[string]*Task
}

// NewMemStore creates a store seeded with tasks.
func NewMemStore(tasks ...*Task) (*MemStore, error) {
	s := &MemStore{tasks: make(map[string]*Task)}
	for _, t := range tasks {
		if err := s.Add(t); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// List returns every task, in insertion order.
func (s *MemStore) List() []*Task {
	out := make([]*Task, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.tasks[id])
	}
	return out
}

// Get retrieves a task by ID.
func (s *MemStore) Get(id string) (*Task, error) {
	t, ok := s.tasks[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}
	return t, nil
}

// Add inserts a new task after validating it.
func (s *MemStore) Add(t *Task) error {
	if err := t.Validate(); err != nil {
		return err
	}
	if _, ok := s.tasks[t.ID]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateTask, t.ID)
	}
	s.tasks[t.ID] = t
	s.order = append(s.order, t.ID)
	return nil
}

// Put replaces an existing task after validating it.
func (s *MemStore) Put(t *Task) error {
	if err := t.Validate(); err != nil {
		return err
	}
	if _, ok := s.tasks[t.ID]; !ok {
		return fmt.Errorf("%w: %s", ErrTaskNotFound, t.ID)
	}
	s.tasks[t.ID] = t
	return nil
}

// ListByDateRange returns tasks whose start day is within [start, end].
func (s *MemStore) ListByDateRange(start, end time.Time) []*Task {
	from := truncateToDay(start)
	to := truncateToDay(end)
	var out []*Task
	for _, t := range s.List() {
		d := t.Date()
		if d.Before(from) || d.After(to) {
			continue
		}
		out = append(out, t)
	}
	return out
}
