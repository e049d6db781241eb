package models

import "github.com/google/uuid"

// Classroom aggregates the bookings made against one room. Bookings keep
// insertion order, not time order.
type Classroom struct {
	RoomNumber string     `json:"room_number"`
	Type       string     `json:"type"`
	Capacity   int        `json:"capacity"`
	Bookings   []*Booking `json:"bookings"`
}

// NewClassroom constructs an empty classroom.
func NewClassroom(roomNumber, roomType string, capacity int) *Classroom {
	return &Classroom{RoomNumber: roomNumber, Type: roomType, Capacity: capacity}
}

// FindOverlap returns the first booking whose interval overlaps the given
// one, skipping excludeID. The skip lets an edit check its new interval
// against every other booking without detaching the booking under edit.
func (c *Classroom) FindOverlap(interval TimeInterval, excludeID string) *Booking {
	for _, existing := range c.Bookings {
		if existing.ID == excludeID {
			continue
		}
		if interval.Overlaps(existing.Interval) {
			return existing
		}
	}
	return nil
}

// AddBooking appends a new booking. Conflict and validity checks are the
// caller's responsibility; this is a pure collection operation.
func (c *Classroom) AddBooking(course string, interval TimeInterval) *Booking {
	booking := &Booking{
		ID:       uuid.NewString(),
		Room:     c.RoomNumber,
		Course:   course,
		Interval: interval,
	}
	c.Bookings = append(c.Bookings, booking)
	return booking
}

// FindBooking returns the booking with the given id, or nil.
func (c *Classroom) FindBooking(id string) *Booking {
	for _, b := range c.Bookings {
		if b.ID == id {
			return b
		}
	}
	return nil
}

// RemoveBooking detaches the booking with the given id. Removing an
// absent booking is a no-op.
func (c *Classroom) RemoveBooking(id string) bool {
	for idx, b := range c.Bookings {
		if b.ID == id {
			c.Bookings = append(c.Bookings[:idx], c.Bookings[idx+1:]...)
			return true
		}
	}
	return false
}
