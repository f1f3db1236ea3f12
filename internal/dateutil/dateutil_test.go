package dateutil

import (
	"errors"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	t.Run("valid date", func(t *testing.T) {
		got, err := ParseDate("2025-01-15")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := time.Date(2025, 1, 15, 0, 0, 0, 0, time.Local)
		if !got.Equal(want) {
			t.Errorf("got %v, want %v", got, want)
		}
	})

	t.Run("empty defaults to today", func(t *testing.T) {
		got, err := ParseDate("")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		today := TruncateToDay(time.Now())
		if !got.Equal(today) {
			t.Errorf("got %v, want %v", got, today)
		}
	})

	t.Run("invalid format", func(t *testing.T) {
		_, err := ParseDate("01-15-2025")
		if !errors.Is(err, ErrInvalidDateFormat) {
			t.Errorf("got error %v, want %v", err, ErrInvalidDateFormat)
		}
	})
}

func TestParseWeekday(t *testing.T) {
	tests := []struct {
		input   string
		want    time.Weekday
		wantErr bool
	}{
		{input: "monday", want: time.Monday},
		{input: " Sunday ", want: time.Sunday},
		{input: "FRIDAY", want: time.Friday},
		{input: "lunes", wantErr: true},
		{input: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseWeekday(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidWeekday) {
					t.Errorf("got error %v, want %v", err, ErrInvalidWeekday)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("ParseWeekday(%q) = %v, %v", tt.input, got, err)
			}
		})
	}
}

func TestWeekRange(t *testing.T) {
	tests := []struct {
		name       string
		input      time.Time
		wantMonday time.Time
		wantSunday time.Time
	}{
		{
			name:       "Monday input returns same Monday",
			input:      time.Date(2025, 1, 6, 10, 30, 0, 0, time.UTC), // Monday
			wantMonday: time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC),
			wantSunday: time.Date(2025, 1, 12, 0, 0, 0, 0, time.UTC),
		},
		{
			name:       "Wednesday returns previous Monday",
			input:      time.Date(2025, 1, 8, 14, 0, 0, 0, time.UTC), // Wednesday
			wantMonday: time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC),
			wantSunday: time.Date(2025, 1, 12, 0, 0, 0, 0, time.UTC),
		},
		{
			name:       "Sunday returns previous Monday and same Sunday",
			input:      time.Date(2025, 1, 12, 23, 59, 0, 0, time.UTC), // Sunday
			wantMonday: time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC),
			wantSunday: time.Date(2025, 1, 12, 0, 0, 0, 0, time.UTC),
		},
		{
			name:       "Friday returns previous Monday",
			input:      time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC), // Friday
			wantMonday: time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC),
			wantSunday: time.Date(2025, 1, 12, 0, 0, 0, 0, time.UTC),
		},
		{
			name:       "Saturday returns previous Monday",
			input:      time.Date(2025, 1, 11, 12, 0, 0, 0, time.UTC), // Saturday
			wantMonday: time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC),
			wantSunday: time.Date(2025, 1, 12, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotMonday, gotSunday := WeekRange(tt.input)
			if !gotMonday.Equal(tt.wantMonday) {
				t.Errorf("monday: got %v, want %v", gotMonday, tt.wantMonday)
			}
			if !gotSunday.Equal(tt.wantSunday) {
				t.Errorf("sunday: got %v, want %v", gotSunday, tt.wantSunday)
			}
		})
	}
}

func TestTruncateToDay(t *testing.T) {
	input := time.Date(2025, 1, 15, 14, 30, 45, 123456789, time.UTC)
	got := TruncateToDay(input)
	want := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestSameDay(t *testing.T) {
	a := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	if !SameDay(a, a.Add(23*time.Hour)) {
		t.Error("expected same day")
	}
	if SameDay(a, a.Add(24*time.Hour)) {
		t.Error("expected different days")
	}
}

func TestParseRelativeDate(t *testing.T) {
	// Reference date: Friday, January 10, 2025
	friday := time.Date(2025, 1, 10, 14, 30, 0, 0, time.UTC)

	tests := []struct {
		name  string
		input string
		want  time.Time
	}{
		{name: "empty returns today", input: "", want: time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)},
		{name: "TODAY uppercase", input: "TODAY", want: time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)},
		{name: "tomorrow", input: "tomorrow", want: time.Date(2025, 1, 11, 0, 0, 0, 0, time.UTC)},
		{name: "yesterday", input: "yesterday", want: time.Date(2025, 1, 9, 0, 0, 0, 0, time.UTC)},
		{name: "monday from friday", input: "monday", want: time.Date(2025, 1, 13, 0, 0, 0, 0, time.UTC)},
		{name: "friday from friday is next week", input: "friday", want: time.Date(2025, 1, 17, 0, 0, 0, 0, time.UTC)},
		{name: "next-saturday", input: "next-saturday", want: time.Date(2025, 1, 11, 0, 0, 0, 0, time.UTC)},
		{name: "prev-monday", input: "prev-monday", want: time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)},
		{name: "prev-friday is a week ago", input: "prev-friday", want: time.Date(2025, 1, 3, 0, 0, 0, 0, time.UTC)},
		{name: "next-week", input: "next-week", want: time.Date(2025, 1, 17, 0, 0, 0, 0, time.UTC)},
		{name: "prev-week", input: "prev-week", want: time.Date(2025, 1, 3, 0, 0, 0, 0, time.UTC)},
		{name: "absolute past date", input: "2024-12-30", want: time.Date(2024, 12, 30, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRelativeDate(tt.input, friday)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseRelativeDate_Errors(t *testing.T) {
	friday := time.Date(2025, 1, 10, 14, 30, 0, 0, time.UTC)
	for _, input := range []string{"next-month", "prev-someday", "someday", "01/10/2025"} {
		t.Run(input, func(t *testing.T) {
			if _, err := ParseRelativeDate(input, friday); !errors.Is(err, ErrInvalidDateFormat) {
				t.Errorf("got error %v, want %v", err, ErrInvalidDateFormat)
			}
		})
	}
}
