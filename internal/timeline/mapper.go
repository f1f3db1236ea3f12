package timeline

import "math"

// Mapper converts between minutes and pixel offsets at snap resolution.
// The mapping is lossy below one snap step: ToPixel(ToMinutes(ToPixel(x)))
// always equals ToPixel(x), but ToMinutes(ToPixel(x)) need not equal x.
type Mapper struct {
	slotWidthPx float64
	snapMinutes int
}

// NewMapper creates a Mapper for an hour width and snap granularity.
// Non-positive values fall back to the package defaults.
func NewMapper(slotWidthPx float64, snapMinutes int) Mapper {
	if slotWidthPx <= 0 {
		slotWidthPx = DefaultSlotWidthPx
	}
	if snapMinutes <= 0 {
		snapMinutes = DefaultSnapMinutes
	}
	return Mapper{slotWidthPx: slotWidthPx, snapMinutes: snapMinutes}
}

// SlotWidth returns the width of one hour in pixels.
func (m Mapper) SlotWidth() float64 {
	return m.slotWidthPx
}

// SnapMinutes returns the snap granularity.
func (m Mapper) SnapMinutes() int {
	return m.snapMinutes
}

// PxPerMinute returns the horizontal scale.
func (m Mapper) PxPerMinute() float64 {
	return m.slotWidthPx / 60
}

// SnapPixels returns the width of one snap step.
func (m Mapper) SnapPixels() float64 {
	return m.PxPerMinute() * float64(m.snapMinutes)
}

// ToPixel converts minutes to pixels, rounded to the nearest snap step.
func (m Mapper) ToPixel(minutes int) float64 {
	steps := math.Round(float64(minutes) / float64(m.snapMinutes))
	return steps * m.SnapPixels()
}

// ToMinutes converts pixels to minutes, rounded to the nearest snap step.
func (m Mapper) ToMinutes(px float64) int {
	steps := math.Round(px / m.SnapPixels())
	return int(steps) * m.snapMinutes
}

// Span returns the left offset and width of [start,end) relative to dayStart.
func (m Mapper) Span(dayStart, start, end int) (left, width float64) {
	return m.ToPixel(start - dayStart), m.ToPixel(end - start)
}

// Offset positions a minute of the day inside [dayStart, dayEnd] without
// snapping, for indicators that follow the wall clock. visible is false when
// the minute falls outside the window, in which case the offset is clamped.
func (m Mapper) Offset(dayStart, dayEnd, minute int) (px float64, visible bool) {
	visible = minute >= dayStart && minute <= dayEnd
	minute = Clamp(minute, dayStart, dayEnd)
	return float64(minute-dayStart) * m.PxPerMinute(), visible
}
