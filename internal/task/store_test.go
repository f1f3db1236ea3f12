package task

import (
	"errors"
	"testing"
	"time"
)

func TestMemStore(t *testing.T) {
	a := newTestTask("a", at(9, 0), at(10, 0))
	b := newTestTask("b", at(11, 0), at(12, 0))
	s, err := NewMemStore(a, b)
	if err != nil {
		t.Fatalf("NewMemStore: %v", err)
	}

	if got := s.List(); len(got) != 2 || got[0].ID != "a" || got[1].ID != "b" {
		t.Fatalf("List() = %v", got)
	}

	if _, err := s.Get("zzz"); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("Get(unknown) = %v, want ErrTaskNotFound", err)
	}
	if err := s.Add(newTestTask("a", at(9, 0), at(10, 0))); !errors.Is(err, ErrDuplicateTask) {
		t.Errorf("Add(duplicate) = %v, want ErrDuplicateTask", err)
	}
	if err := s.Add(newTestTask("bad", at(10, 0), at(9, 0))); !errors.Is(err, ErrEndBeforeStart) {
		t.Errorf("Add(invalid) = %v, want ErrEndBeforeStart", err)
	}

	updated := a.Clone()
	updated.Description = "changed"
	if err := s.Put(updated); err != nil {
		t.Fatalf("Put: %v", err)
	}
	got, _ := s.Get("a")
	if got.Description != "changed" {
		t.Error("Put did not replace the task")
	}
	if err := s.Put(newTestTask("ghost", at(9, 0), at(10, 0))); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("Put(unknown) = %v, want ErrTaskNotFound", err)
	}
}

func TestMemStore_ListByDateRange(t *testing.T) {
	monday := newTestTask("mon", at(9, 0), at(10, 0))
	tuesday := newTestTask("tue", at(9, 0), at(10, 0))
	tuesday.Start = tuesday.Start.AddDate(0, 0, 1)
	tuesday.End = tuesday.End.AddDate(0, 0, 1)
	s, err := NewMemStore(monday, tuesday)
	if err != nil {
		t.Fatal(err)
	}

	day := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)
	got := s.ListByDateRange(day, day)
	if len(got) != 1 || got[0].ID != "mon" {
		t.Errorf("single day = %v", got)
	}
	got = s.ListByDateRange(day, day.AddDate(0, 0, 1))
	if len(got) != 2 {
		t.Errorf("two days = %d tasks", len(got))
	}
}
