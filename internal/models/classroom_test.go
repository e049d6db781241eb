package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassroomFindOverlapExcludesID(t *testing.T) {
	room := NewClassroom("R101", "Lecture Hall", 120)
	booking := room.AddBooking("CS101", mustInterval(t, "21-09-2026 09:00", "21-09-2026 11:00"))

	proposal := mustInterval(t, "21-09-2026 10:00", "21-09-2026 12:00")

	require.NotNil(t, room.FindOverlap(proposal, ""))
	// Excluding the booking under edit lets it move onto its own slot.
	assert.Nil(t, room.FindOverlap(proposal, booking.ID))
}

func TestClassroomAddAndRemoveBooking(t *testing.T) {
	room := NewClassroom("R202", "Computer Lab", 30)

	first := room.AddBooking("CS101", mustInterval(t, "21-09-2026 09:00", "21-09-2026 10:00"))
	second := room.AddBooking("ENG201", mustInterval(t, "21-09-2026 10:00", "21-09-2026 11:00"))

	require.Len(t, room.Bookings, 2)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, "R202", first.Room)

	assert.True(t, room.RemoveBooking(first.ID))
	assert.False(t, room.RemoveBooking(first.ID))
	require.Len(t, room.Bookings, 1)
	assert.Equal(t, second.ID, room.Bookings[0].ID)
	assert.Nil(t, room.FindBooking(first.ID))
}

func TestNewBookingConflictError(t *testing.T) {
	room := NewClassroom("R101", "Lecture Hall", 120)
	existing := room.AddBooking("CS101", mustInterval(t, "21-09-2026 09:00", "21-09-2026 11:00"))

	conflictErr := NewBookingConflictError(existing)
	assert.Contains(t, conflictErr.Error(), "CS101")
	assert.Contains(t, conflictErr.Error(), "21-09-2026 09:00")
	assert.Equal(t, existing.ID, conflictErr.Conflict.BookingID)
	assert.Equal(t, "R101", conflictErr.Conflict.Room)
}
