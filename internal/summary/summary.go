// Package summary aggregates booked and open time per resource over a window.
package summary

import (
	"time"

	"github.com/javiermolinar/bayboard/internal/rows"
	"github.com/javiermolinar/bayboard/internal/task"
	"github.com/javiermolinar/bayboard/internal/timeline"
)

// Load is the booked and open time of one resource.
type Load struct {
	SectionID    string
	ResourceID   string
	ResourceName string
	OpenMinutes  int // board minutes not covered by a disabled range
	Booked       int // minutes of tasks starting in the window
	Tasks        int
	ByStatus     map[task.Status]int
}

// Utilization returns Booked/OpenMinutes, or 0 when the resource has no
// open time.
func (l Load) Utilization() float64 {
	if l.OpenMinutes <= 0 {
		return 0
	}
	return float64(l.Booked) / float64(l.OpenMinutes)
}

// Summary holds the loads of every row plus their totals.
type Summary struct {
	Start time.Time
	End   time.Time
	Loads []Load
	Total Load
}

// Summarize builds the load of each row over dates.
func Summarize(rs []rows.Row, dates []time.Time, cfg timeline.Config) *Summary {
	s := &Summary{Total: Load{ByStatus: map[task.Status]int{}}}
	if len(dates) > 0 {
		s.Start, s.End = dates[0], dates[len(dates)-1]
	}

	span := cfg.DayEnd - cfg.DayStart
	for _, r := range rs {
		l := Load{
			ResourceID:   r.Resource.ID,
			ResourceName: r.Resource.Name,
			ByStatus:     map[task.Status]int{},
		}
		if r.Section != nil {
			l.SectionID = r.Section.ID
		}
		for _, d := range dates {
			open := span
			for _, rg := range r.DisabledOn(d) {
				lo := max(rg.Start, cfg.DayStart)
				hi := min(rg.End, cfg.DayEnd)
				if hi > lo {
					open -= hi - lo
				}
			}
			l.OpenMinutes += max(open, 0)
		}
		for _, t := range r.Tasks {
			l.Booked += t.Duration()
			l.Tasks++
			l.ByStatus[t.Status]++
		}

		s.Total.OpenMinutes += l.OpenMinutes
		s.Total.Booked += l.Booked
		s.Total.Tasks += l.Tasks
		for st, n := range l.ByStatus {
			s.Total.ByStatus[st] += n
		}
		s.Loads = append(s.Loads, l)
	}
	return s
}
