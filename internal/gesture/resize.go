package gesture

import (
	"github.com/javiermolinar/bayboard/internal/availability"
	"github.com/javiermolinar/bayboard/internal/task"
	"github.com/javiermolinar/bayboard/internal/timeline"
)

// BeginResize starts moving one edge of t. The resource's disabled ranges
// for the task's date are computed here, once, and reused for every move.
func (c *Controller) BeginResize(t *task.Task, edge Edge) error {
	if edge != EdgeStart && edge != EdgeEnd {
		return ErrInvalidEdge
	}
	if err := c.begin(t, KindResize); err != nil {
		return err
	}
	c.edge = edge
	c.disabled = c.calc.Disabled(c.resource(t.ResourceID), c.snap.Date)
	c.lastStart, c.lastEnd = c.snap.Start, c.snap.End
	return nil
}

func (c *Controller) moveResize(dx float64) Preview {
	c.dx = dx
	s := c.snap
	delta := c.mapper.ToMinutes(dx)
	minDur := c.cfg.MinResizeMinutes

	start, end := s.Start, s.End
	var clamped bool
	switch c.edge {
	case EdgeStart:
		raw := s.Start + delta
		start = timeline.Clamp(raw, c.cfg.DayStart, s.End-minDur)
		clamped = start != raw
	default:
		raw := s.End + delta
		end = timeline.Clamp(raw, s.Start+minDur, c.cfg.DayEnd)
		clamped = end != raw
	}

	held := availability.Intersects(c.disabled, start, end)
	c.held = held
	if !held {
		c.lastStart, c.lastEnd = start, end
		c.clamped = clamped
	}

	left, width := c.mapper.Span(c.cfg.DayStart, c.lastStart, c.lastEnd)
	return Preview{
		Kind:   KindResize,
		TaskID: s.TaskID,
		Left:   left,
		Width:  width,
		Start:  c.lastStart,
		End:    c.lastEnd,
		Held:   held,
	}
}

func (c *Controller) endResize() Outcome {
	s := c.snap
	out := Outcome{
		Kind:       KindResize,
		TaskID:     s.TaskID,
		Committed:  true,
		Timing:     timeline.TimingFromMinutes(c.lastStart, c.lastEnd),
		Date:       s.Date,
		ResourceID: s.ResourceID,
		SectionID:  s.SectionID,
	}
	if c.held {
		out.Reasons = append(out.Reasons, ReasonConflict)
	}
	if c.clamped {
		out.Reasons = append(out.Reasons, ReasonClamped)
	}
	return out
}
