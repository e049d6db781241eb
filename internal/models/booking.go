package models

import "time"

// Booking reserves a classroom for a course over a time interval. The
// owning classroom's collection is the sole owner; Room is a non-owning
// back-reference kept for convenience lookups. ID stays stable across
// edits so callers can keep addressing the same booking.
type Booking struct {
	ID       string       `json:"id"`
	Room     string       `json:"room"`
	Course   string       `json:"course"`
	Interval TimeInterval `json:"interval"`
}

// BookingConflict describes the existing booking a proposal collides with.
type BookingConflict struct {
	BookingID string    `json:"booking_id"`
	Room      string    `json:"room"`
	Course    string    `json:"course"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
}

// BookingConflictError is returned when a proposed interval overlaps an
// existing booking in the same classroom.
type BookingConflictError struct {
	Message  string          `json:"message"`
	Conflict BookingConflict `json:"conflict"`
}

// Error implements the error interface for conflict errors.
func (e *BookingConflictError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return e.Message
}

// NewBookingConflictError builds the conflict error for an offending booking.
func NewBookingConflictError(existing *Booking) *BookingConflictError {
	return &BookingConflictError{
		Message: "overlaps with " + existing.Course + " from " + existing.Interval.String(),
		Conflict: BookingConflict{
			BookingID: existing.ID,
			Room:      existing.Room,
			Course:    existing.Course,
			Start:     existing.Interval.Start,
			End:       existing.Interval.End,
		},
	}
}
