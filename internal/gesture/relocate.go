package gesture

import (
	"time"

	"github.com/javiermolinar/bayboard/internal/availability"
	"github.com/javiermolinar/bayboard/internal/task"
	"github.com/javiermolinar/bayboard/internal/timeline"
)

// BeginRelocate starts dragging t. The task's duration is fixed for the
// whole gesture.
func (c *Controller) BeginRelocate(t *task.Task) error {
	return c.begin(t, KindRelocate)
}

// moveRelocate is purely visual: the bar follows the pointer unsnapped and
// nothing is validated.
func (c *Controller) moveRelocate(dx float64) Preview {
	c.dx = dx
	left, width := c.mapper.Span(c.cfg.DayStart, c.snap.Start, c.snap.End)
	return Preview{
		Kind:   KindRelocate,
		TaskID: c.snap.TaskID,
		Left:   left + dx,
		Width:  width,
		Start:  c.snap.Start,
		End:    c.snap.End,
	}
}

func (c *Controller) endRelocate(d Drop) Outcome {
	s := c.snap
	out := Outcome{Kind: KindRelocate, TaskID: s.TaskID}

	date := s.Date
	resourceID, sectionID := s.ResourceID, s.SectionID

	target, ok := DecodeTarget(d.TargetID)
	if !ok {
		out.Reasons = append(out.Reasons, ReasonFallbackTarget)
	} else {
		y, m, day := target.Date.Date()
		date = time.Date(y, m, day, 0, 0, 0, 0, s.Date.Location())
		if target.ResourceID != "" {
			if r := c.resource(target.ResourceID); r != nil {
				resourceID = r.ID
				if sec, found := c.board.SectionOf(r.ID); found {
					sectionID = sec.ID
				}
			} else {
				out.Reasons = append(out.Reasons, ReasonFallbackTarget)
			}
		}
	}

	duration := s.Duration()
	raw := s.Start + c.mapper.ToMinutes(d.Dx)
	start := timeline.Clamp(raw, c.cfg.DayStart, c.cfg.DayEnd-duration)
	if start != raw {
		out.Reasons = append(out.Reasons, ReasonClamped)
	}
	end := start + duration

	disabled := c.calc.Disabled(c.resource(resourceID), date)
	if r, hit := availability.FirstConflict(disabled, start, end); hit {
		out.Reasons = append(out.Reasons, ReasonConflict)
		out.Conflict = &r
		out.Timing = s.Timing()
		out.Date = s.Date
		out.ResourceID = s.ResourceID
		out.SectionID = s.SectionID
		return out
	}

	out.Committed = true
	out.Timing = timeline.TimingFromMinutes(start, end)
	out.Date = date
	out.ResourceID = resourceID
	out.SectionID = sectionID
	return out
}
