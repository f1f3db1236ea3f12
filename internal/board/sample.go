package board

import (
	"fmt"
	"time"

	"github.com/javiermolinar/bayboard/internal/dateutil"
	"github.com/javiermolinar/bayboard/internal/task"
	"github.com/javiermolinar/bayboard/internal/timeline"
)

func weekShift(days []time.Weekday, start, end, lunch, lunchMinutes int) []task.WorkDay {
	out := make([]task.WorkDay, 0, len(days))
	for _, d := range days {
		out = append(out, task.WorkDay{
			Weekday:      d,
			ShiftStart:   start,
			ShiftEnd:     end,
			LunchStart:   lunch,
			LunchMinutes: lunchMinutes,
		})
	}
	return out
}

// Sample returns a small workshop board with a few tasks on day.
func Sample(day time.Time) (*task.Board, []*task.Task) {
	weekdays := []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday}
	withSaturday := append(weekdays[:len(weekdays):len(weekdays)], time.Saturday)

	b := &task.Board{Sections: []*task.Section{
		{
			ID: "shop", Name: "Workshop", Order: 1, Color: "#8caaee",
			Resources: []*task.Resource{
				{ID: "ana", Name: "Ana Ruiz", Role: "mechanic", WorkDays: weekShift(weekdays, 8*60, 17*60, 13*60, 30)},
				{ID: "ben", Name: "Ben Ortiz", Role: "mechanic", WorkDays: weekShift(withSaturday, 7*60, 15*60, 12*60, 45)},
			},
		},
		{
			ID: "wash", Name: "Wash bay", Order: 2, Color: "#a6d189",
			Resources: []*task.Resource{
				{ID: "carla", Name: "Carla Vidal", Role: "washer", WorkDays: weekShift(withSaturday, 9*60, 18*60, 14*60, 60)},
			},
		},
	}}

	day = dateutil.TruncateToDay(day)
	mk := func(n int, res, section, kind, desc string, start, end int) *task.Task {
		return &task.Task{
			ID:          fmt.Sprintf("t%d", n),
			ResourceID:  res,
			SectionID:   section,
			Kind:        kind,
			OrderID:     fmt.Sprintf("WO-%04d", 100+n),
			Description: desc,
			Start:       timeline.At(day, start),
			End:         timeline.At(day, end),
			Status:      task.StatusPending,
		}
	}
	tasks := []*task.Task{
		mk(1, "ana", "shop", "maintenance", "Oil change", 9*60, 10*60),
		mk(2, "ana", "shop", "repair", "Brake pads", 9*60+30, 11*60),
		mk(3, "ana", "shop", "inspection", "Pre-ITV check", 14*60, 15*60+30),
		mk(4, "ben", "shop", "repair", "Clutch", 8*60, 11*60+45),
		mk(5, "carla", "wash", "wash", "Full detail", 10*60, 12*60),
	}
	tasks[0].Subtasks = []string{"drain oil", "replace filter"}
	return b, tasks
}
