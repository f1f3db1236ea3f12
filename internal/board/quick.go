package board

import (
	"fmt"
	"time"

	"github.com/javiermolinar/bayboard/internal/availability"
	"github.com/javiermolinar/bayboard/internal/dateutil"
	"github.com/javiermolinar/bayboard/internal/task"
	"github.com/javiermolinar/bayboard/internal/timeline"
)

// Cell is a click on one hour of one day in a resource's row. Minute is
// the offset of the click inside the hour.
type Cell struct {
	ResourceID string
	Date       time.Time
	Hour       int
	Minute     int
}

// QuickCreate adds a pending task of the configured default length starting
// at the top of the clicked hour. It refuses clicks on unavailable minutes,
// tasks that would run into a disabled range or past the day end, and hours
// in which a task already starts.
func (b *Board) QuickCreate(c Cell, description string) (*task.Task, error) {
	res, ok := b.layout.Resource(c.ResourceID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", task.ErrUnknownResource, c.ResourceID)
	}
	if c.Hour*60 < b.cfg.DayStart/60*60 || c.Hour*60 >= b.cfg.DayEnd {
		return nil, fmt.Errorf("%w: %02d:00", ErrHourOutOfRange, c.Hour)
	}

	date := dateutil.TruncateToDay(c.Date)
	start := c.Hour * 60
	end := start + b.cfg.QuickCreateMinutes
	if end > b.cfg.DayEnd {
		return nil, fmt.Errorf("%w: %s ends after %s", ErrCellUnavailable,
			timeline.TimingFromMinutes(start, end), timeline.FormatClock(b.cfg.DayEnd))
	}
	clicked := start + timeline.Clamp(c.Minute, 0, 59)
	disabled := b.calc.Disabled(res, date)
	for _, r := range disabled {
		if clicked >= r.Start && clicked < r.End {
			return nil, fmt.Errorf("%w: %s", ErrCellUnavailable, r)
		}
	}
	if r, hit := availability.FirstConflict(disabled, start, end); hit {
		return nil, fmt.Errorf("%w: %s overlaps %s", ErrCellUnavailable, timeline.TimingFromMinutes(start, end), r)
	}
	for _, t := range b.store.ListByDateRange(date, date) {
		if t.ResourceID == res.ID && t.Start.Hour() == c.Hour {
			return nil, fmt.Errorf("%w: %s", ErrCellOccupied, t.ID)
		}
	}

	sec, _ := b.layout.SectionOf(res.ID)
	now := b.now()
	t := &task.Task{
		ID:          b.newID(),
		ResourceID:  res.ID,
		Description: description,
		Start:       timeline.At(date, start),
		End:         timeline.At(date, end),
		Status:      task.StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if sec != nil {
		t.SectionID = sec.ID
	}
	if err := b.store.Add(t); err != nil {
		return nil, err
	}
	b.logger.WithField("task", t.ID).WithField("cell", fmt.Sprintf("%s %02d:00", dateutil.FormatDateKey(date), c.Hour)).Info("task created")
	if b.onCreate != nil {
		b.onCreate(t)
	}
	return t, nil
}

// Disabled returns the merged disabled ranges of a resource on date.
func (b *Board) Disabled(resourceID string, date time.Time) []availability.Range {
	res, _ := b.layout.Resource(resourceID)
	return b.calc.Disabled(res, date)
}
