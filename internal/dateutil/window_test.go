package dateutil

import (
	"testing"
	"time"
)

func TestWindow_Dates(t *testing.T) {
	w := NewWindow(time.Date(2025, 1, 6, 15, 0, 0, 0, time.UTC), 3)
	dates := w.Dates()
	if len(dates) != 3 {
		t.Fatalf("got %d dates", len(dates))
	}
	for i, d := range dates {
		want := time.Date(2025, 1, 6+i, 0, 0, 0, 0, time.UTC)
		if !d.Equal(want) {
			t.Errorf("date %d = %v, want %v", i, d, want)
		}
	}
	if w.String() != "2025-01-06..2025-01-08" {
		t.Errorf("String() = %q", w.String())
	}
}

func TestWindow_Contains(t *testing.T) {
	w := NewWindow(time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC), 2)
	tests := []struct {
		name string
		at   time.Time
		want bool
	}{
		{"first day", time.Date(2025, 1, 6, 9, 0, 0, 0, time.UTC), true},
		{"last day late", time.Date(2025, 1, 7, 23, 59, 0, 0, time.UTC), true},
		{"day before", time.Date(2025, 1, 5, 23, 0, 0, 0, time.UTC), false},
		{"day after", time.Date(2025, 1, 8, 0, 0, 0, 0, time.UTC), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := w.Contains(tt.at); got != tt.want {
				t.Errorf("Contains(%v) = %v, want %v", tt.at, got, tt.want)
			}
		})
	}
}

func TestWindow_Navigation(t *testing.T) {
	wed := time.Date(2025, 1, 8, 0, 0, 0, 0, time.UTC)
	w := NewWindow(wed, 1)

	if got := w.Shift(-1).Start; !got.Equal(wed.AddDate(0, 0, -1)) {
		t.Errorf("Shift(-1) start = %v", got)
	}
	if got := w.Extend(4); got.Days != 5 || !got.Start.Equal(wed) {
		t.Errorf("Extend(4) = %+v", got)
	}
	if got := w.Extend(-10); got.Days != 1 {
		t.Errorf("Extend(-10) days = %d, want 1", got.Days)
	}

	week := w.Week()
	if week.Days != 7 || !week.Start.Equal(time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Week() = %+v", week)
	}
	if NewWindow(wed, 0).Days != 1 {
		t.Error("NewWindow should raise days to one")
	}

	now := time.Date(2025, 2, 1, 10, 0, 0, 0, time.UTC)
	if got := w.Extend(2).Today(now); got.Days != 3 || !got.Start.Equal(time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Today() = %+v", got)
	}
}
