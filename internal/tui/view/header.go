package view

import (
	"strconv"
	"strings"
	"time"
)

// DayLabel formats a date column label and reports whether it is today.
func DayLabel(date, today time.Time) (string, bool) {
	label := date.Format("Mon 02 Jan")
	if sameDay(date, today) {
		return "*" + label + "*", true
	}
	return label, false
}

// HourRuler lays out hour numbers starting at firstHour, each in a cell of
// width columns.
func HourRuler(firstHour, hours, width int) string {
	if width <= 0 {
		return ""
	}
	var b strings.Builder
	for h := firstHour; h < firstHour+hours; h++ {
		cell := strconv.Itoa(h % 24)
		if len(cell) < 2 {
			cell = "0" + cell
		}
		if len(cell) > width {
			cell = cell[:width]
		}
		b.WriteString(cell)
		b.WriteString(strings.Repeat(" ", width-len(cell)))
	}
	return b.String()
}

func sameDay(a, b time.Time) bool {
	ya, ma, da := a.Date()
	yb, mb, db := b.Date()
	return ya == yb && ma == mb && da == db
}
