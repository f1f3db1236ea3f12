package dateutil

import "time"

// Window is the run of consecutive days shown on the board.
type Window struct {
	Start time.Time
	Days  int
}

// NewWindow returns a window of days starting at the day of start.
// Days below one are raised to one.
func NewWindow(start time.Time, days int) Window {
	return Window{Start: TruncateToDay(start), Days: max(days, 1)}
}

// Dates returns every day in the window, in order.
func (w Window) Dates() []time.Time {
	out := make([]time.Time, 0, w.Days)
	for i := range w.Days {
		out = append(out, w.Start.AddDate(0, 0, i))
	}
	return out
}

// Last returns the final day of the window.
func (w Window) Last() time.Time {
	return w.Start.AddDate(0, 0, w.Days-1)
}

// Contains reports whether t falls on a day inside the window.
func (w Window) Contains(t time.Time) bool {
	d := TruncateToDay(t.In(w.Start.Location()))
	return !d.Before(w.Start) && !d.After(w.Last())
}

// Shift moves the window by days, keeping its length.
func (w Window) Shift(days int) Window {
	return Window{Start: w.Start.AddDate(0, 0, days), Days: w.Days}
}

// Extend appends n days to the end of the window.
func (w Window) Extend(n int) Window {
	return Window{Start: w.Start, Days: max(w.Days+n, 1)}
}

// Week returns the Monday-to-Sunday window containing the window start.
func (w Window) Week() Window {
	monday, _ := WeekRange(w.Start)
	return Window{Start: monday, Days: 7}
}

// Today returns a window of the same length starting today.
func (w Window) Today(now time.Time) Window {
	return NewWindow(now, w.Days)
}

// String renders the window as "YYYY-MM-DD" or "YYYY-MM-DD..YYYY-MM-DD".
func (w Window) String() string {
	if w.Days <= 1 {
		return FormatDateKey(w.Start)
	}
	return FormatDateKey(w.Start) + ".." + FormatDateKey(w.Last())
}
