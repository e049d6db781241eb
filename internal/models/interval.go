package models

import (
	"fmt"
	"time"
)

// TimeLayout is the textual time format used at the API boundary
// (day-month-year hour:minute).
const TimeLayout = "02-01-2006 15:04"

// TimeInterval is a half-open time range at minute granularity.
type TimeInterval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Validate requires the end to be strictly after the start. Zero-length
// and inverted intervals are rejected before any conflict check runs.
func (i TimeInterval) Validate() error {
	if !i.End.After(i.Start) {
		return fmt.Errorf("end time %s must be after start time %s",
			i.End.Format(TimeLayout), i.Start.Format(TimeLayout))
	}
	return nil
}

// Overlaps reports whether two intervals intersect under half-open
// semantics: an interval ending exactly when another begins does not
// overlap, so back-to-back bookings are legal.
func (i TimeInterval) Overlaps(other TimeInterval) bool {
	return i.Start.Before(other.End) && other.Start.Before(i.End)
}

func (i TimeInterval) String() string {
	return i.Start.Format(TimeLayout) + " to " + i.End.Format(TimeLayout)
}

// ParseInterval builds a TimeInterval from the boundary's textual form.
// Parse failures are reported to the caller, never silently coerced.
func ParseInterval(start, end string) (TimeInterval, error) {
	s, err := time.Parse(TimeLayout, start)
	if err != nil {
		return TimeInterval{}, fmt.Errorf("invalid start time %q: expected %s", start, TimeLayout)
	}
	e, err := time.Parse(TimeLayout, end)
	if err != nil {
		return TimeInterval{}, fmt.Errorf("invalid end time %q: expected %s", end, TimeLayout)
	}
	return TimeInterval{Start: s, End: e}, nil
}
