package timeline

import (
	"errors"
	"fmt"
)

// Grouping selects how overlapping tasks are gathered into stacks.
type Grouping string

const (
	// GroupPairwise groups each task with the tasks that intersect it directly.
	GroupPairwise Grouping = "pairwise"
	// GroupTransitive groups whole overlap chains together.
	GroupTransitive Grouping = "transitive"
)

// Defaults used when a Config field is left at zero.
const (
	DefaultSnapMinutes        = 15
	DefaultQuickCreateMinutes = 60
	DefaultMinResizeMinutes   = 15
	DefaultVisibleDays        = 1
	DefaultSlotWidthPx        = 120
	DefaultRowHeightPx        = 60
	DefaultStackGapPx         = 2
)

// Config is the immutable timeline configuration threaded through every
// engine call. Clock values are minutes since midnight.
type Config struct {
	DayStart           int
	DayEnd             int
	SnapMinutes        int
	QuickCreateMinutes int
	VisibleDays        int
	MinResizeMinutes   int

	SlotWidthPx   float64 // width of one hour
	RowHeightPx   float64
	StackGapPx    float64
	StackGrouping Grouping
}

// DefaultConfig returns a 07:00-20:00 board with 15 minute snapping.
func DefaultConfig() Config {
	return Config{
		DayStart:           7 * 60,
		DayEnd:             20 * 60,
		SnapMinutes:        DefaultSnapMinutes,
		QuickCreateMinutes: DefaultQuickCreateMinutes,
		VisibleDays:        DefaultVisibleDays,
		MinResizeMinutes:   DefaultMinResizeMinutes,
		SlotWidthPx:        DefaultSlotWidthPx,
		RowHeightPx:        DefaultRowHeightPx,
		StackGapPx:         DefaultStackGapPx,
		StackGrouping:      GroupPairwise,
	}
}

// Validate checks bounds and granularities.
func (c Config) Validate() error {
	if c.DayStart < 0 || c.DayEnd > MinutesPerDay {
		return fmt.Errorf("day bounds must lie within 00:00-24:00, got %s-%s",
			FormatClock(c.DayStart), FormatClock(c.DayEnd))
	}
	if c.DayStart >= c.DayEnd {
		return errors.New("day_start must be before day_end")
	}
	if c.SnapMinutes <= 0 || 60%c.SnapMinutes != 0 {
		return fmt.Errorf("snap_minutes must divide an hour, got %d", c.SnapMinutes)
	}
	if c.QuickCreateMinutes <= 0 {
		return errors.New("quick_create_minutes must be positive")
	}
	if c.MinResizeMinutes <= 0 {
		return errors.New("min_resize_minutes must be positive")
	}
	if c.VisibleDays <= 0 {
		return errors.New("visible_days must be positive")
	}
	if c.SlotWidthPx <= 0 {
		return errors.New("slot_width_px must be positive")
	}
	if c.RowHeightPx <= 0 || c.StackGapPx < 0 {
		return errors.New("row_height_px must be positive and stack_gap_px non-negative")
	}
	switch c.StackGrouping {
	case GroupPairwise, GroupTransitive, "":
	default:
		return fmt.Errorf("invalid stack_grouping: %s", c.StackGrouping)
	}
	return nil
}

// Hours returns the number of hour columns between DayStart and DayEnd,
// counting a partial last hour as a full column.
func (c Config) Hours() int {
	first := c.DayStart / 60
	last := (c.DayEnd + 59) / 60
	return last - first
}

// Mapper returns the coordinate mapper for this configuration.
func (c Config) Mapper() Mapper {
	return NewMapper(c.SlotWidthPx, c.SnapMinutes)
}
