package timeline

import (
	"fmt"
	"time"
)

// Timing is the committed output of a resize or relocation gesture. Both
// ends count minutes from midnight of the start day, so an end of 24:00 or
// later falls on a following day.
type Timing struct {
	StartHour   int
	StartMinute int
	EndHour     int
	EndMinute   int
}

// TimingFromMinutes builds a Timing from minutes since midnight.
func TimingFromMinutes(start, end int) Timing {
	return Timing{
		StartHour:   start / 60,
		StartMinute: start % 60,
		EndHour:     end / 60,
		EndMinute:   end % 60,
	}
}

// Start returns the start in minutes since midnight.
func (t Timing) Start() int {
	return t.StartHour*60 + t.StartMinute
}

// End returns the end in minutes since midnight.
func (t Timing) End() int {
	return t.EndHour*60 + t.EndMinute
}

// Duration returns the timing length in minutes.
func (t Timing) Duration() int {
	return t.End() - t.Start()
}

// Apply returns the instants of the timing on the calendar day of start.
func (t Timing) Apply(start time.Time) (time.Time, time.Time) {
	return At(start, t.Start()), At(start, t.End())
}

// String returns "HH:MM-HH:MM".
func (t Timing) String() string {
	return fmt.Sprintf("%s-%s", FormatClock(t.Start()), FormatClock(t.End()))
}
