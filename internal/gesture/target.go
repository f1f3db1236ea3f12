package gesture

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	targetPrefix  = "time-"
	targetUserSep = "-user-"
	targetDate    = "2006-01-02"
)

// Target identifies a drop cell on the board: one hour of one day in one
// resource's row. ResourceID may be empty when the cell carries no row.
type Target struct {
	Date       time.Time
	Hour       int
	ResourceID string
}

// EncodeTarget renders t as "time-YYYY-MM-DD_H-user-<resourceID>".
func EncodeTarget(t Target) string {
	id := fmt.Sprintf("%s%s_%d", targetPrefix, t.Date.Format(targetDate), t.Hour)
	if t.ResourceID != "" {
		id += targetUserSep + t.ResourceID
	}
	return id
}

// String implements fmt.Stringer.
func (t Target) String() string {
	return EncodeTarget(t)
}

// DecodeTarget parses an identifier produced by EncodeTarget. It never panics;
// ok is false for anything it cannot parse, and callers fall back to the
// gesture's original date and resource.
func DecodeTarget(s string) (Target, bool) {
	rest, found := strings.CutPrefix(s, targetPrefix)
	if !found {
		return Target{}, false
	}

	cell, resourceID, _ := strings.Cut(rest, targetUserSep)
	datePart, hourPart, found := strings.Cut(cell, "_")
	if !found {
		return Target{}, false
	}

	date, err := time.ParseInLocation(targetDate, datePart, time.Local)
	if err != nil {
		return Target{}, false
	}
	hour, err := strconv.Atoi(hourPart)
	if err != nil || hour < 0 || hour > 23 {
		return Target{}, false
	}

	return Target{Date: date, Hour: hour, ResourceID: resourceID}, true
}
