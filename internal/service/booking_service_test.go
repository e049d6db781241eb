package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ameliakool/SCMS/internal/directory"
	"github.com/ameliakool/SCMS/internal/models"
	"github.com/ameliakool/SCMS/internal/store"
	appErrors "github.com/ameliakool/SCMS/pkg/errors"
)

func newTestDirectory(t *testing.T, rooms ...string) *directory.Directory {
	t.Helper()
	st, err := store.NewFileStore(t.TempDir())
	require.NoError(t, err)
	dir := directory.New(st, nil)
	dir.Load(context.Background())

	require.NoError(t, dir.Update(context.Background(), func(s *directory.State) error {
		for _, room := range rooms {
			s.Classrooms = append(s.Classrooms, models.NewClassroom(room, "Lecture Hall", 100))
		}
		return nil
	}))
	return dir
}

func assertErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	assert.Equal(t, code, appErrors.FromError(err).Code)
}

func TestBookingCreateAndBackToBack(t *testing.T) {
	svc := NewBookingService(newTestDirectory(t, "R101"), nil, nil, nil)
	ctx := context.Background()

	first, err := svc.Create(ctx, CreateBookingRequest{
		Room: "R101", Course: "CS101",
		StartTime: "21-09-2026 09:00", EndTime: "21-09-2026 11:00",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, first.ID)
	assert.Equal(t, "R101", first.Room)

	// An interval starting exactly when another ends is legal.
	second, err := svc.Create(ctx, CreateBookingRequest{
		Room: "R101", Course: "ENG201",
		StartTime: "21-09-2026 11:00", EndTime: "21-09-2026 12:00",
	})
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	bookings, err := svc.ListByRoom(ctx, "R101")
	require.NoError(t, err)
	require.Len(t, bookings, 2)
	assert.Equal(t, "CS101", bookings[0].Course)
	assert.Equal(t, "ENG201", bookings[1].Course)
}

func TestBookingCreateConflictLeavesCollectionUntouched(t *testing.T) {
	svc := NewBookingService(newTestDirectory(t, "R101"), nil, nil, nil)
	ctx := context.Background()

	existing, err := svc.Create(ctx, CreateBookingRequest{
		Room: "R101", Course: "CS101",
		StartTime: "21-09-2026 09:00", EndTime: "21-09-2026 11:00",
	})
	require.NoError(t, err)

	_, err = svc.Create(ctx, CreateBookingRequest{
		Room: "R101", Course: "MATH1",
		StartTime: "21-09-2026 10:00", EndTime: "21-09-2026 10:30",
	})
	assertErrorCode(t, err, appErrors.ErrConflict.Code)

	var conflictErr *models.BookingConflictError
	require.True(t, errors.As(err, &conflictErr))
	assert.Equal(t, existing.ID, conflictErr.Conflict.BookingID)
	assert.Equal(t, "CS101", conflictErr.Conflict.Course)

	bookings, err := svc.ListByRoom(ctx, "R101")
	require.NoError(t, err)
	require.Len(t, bookings, 1)
	assert.Equal(t, *existing, bookings[0])
}

func TestBookingCreateSameSlotDifferentRooms(t *testing.T) {
	svc := NewBookingService(newTestDirectory(t, "R101", "R202"), nil, nil, nil)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateBookingRequest{
		Room: "R101", Course: "CS101",
		StartTime: "21-09-2026 09:00", EndTime: "21-09-2026 11:00",
	})
	require.NoError(t, err)

	// Conflict detection is scoped per classroom.
	_, err = svc.Create(ctx, CreateBookingRequest{
		Room: "R202", Course: "CS101",
		StartTime: "21-09-2026 09:00", EndTime: "21-09-2026 11:00",
	})
	require.NoError(t, err)
}

func TestBookingCreateUnknownRoom(t *testing.T) {
	svc := NewBookingService(newTestDirectory(t, "R101"), nil, nil, nil)

	_, err := svc.Create(context.Background(), CreateBookingRequest{
		Room: "R999", Course: "CS101",
		StartTime: "21-09-2026 09:00", EndTime: "21-09-2026 11:00",
	})
	assertErrorCode(t, err, appErrors.ErrNotFound.Code)
}

func TestBookingCreateInvalidInterval(t *testing.T) {
	svc := NewBookingService(newTestDirectory(t, "R101"), nil, nil, nil)
	ctx := context.Background()

	cases := []struct {
		name       string
		start, end string
	}{
		{"end before start", "21-09-2026 11:00", "21-09-2026 09:00"},
		{"zero length", "21-09-2026 09:00", "21-09-2026 09:00"},
		{"malformed start", "2026/09/21 09:00", "21-09-2026 11:00"},
		{"malformed end", "21-09-2026 09:00", "eleven"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(ctx, CreateBookingRequest{
				Room: "R101", Course: "CS101",
				StartTime: tc.start, EndTime: tc.end,
			})
			assertErrorCode(t, err, appErrors.ErrValidation.Code)
		})
	}

	bookings, err := svc.ListByRoom(ctx, "R101")
	require.NoError(t, err)
	assert.Empty(t, bookings, "rejected proposals must not insert")
}

func TestBookingUpdateConflictLeavesBookingUnchanged(t *testing.T) {
	svc := NewBookingService(newTestDirectory(t, "R101"), nil, nil, nil)
	ctx := context.Background()

	anchor, err := svc.Create(ctx, CreateBookingRequest{
		Room: "R101", Course: "CS101",
		StartTime: "21-09-2026 09:00", EndTime: "21-09-2026 11:00",
	})
	require.NoError(t, err)

	target, err := svc.Create(ctx, CreateBookingRequest{
		Room: "R101", Course: "ENG201",
		StartTime: "21-09-2026 11:00", EndTime: "21-09-2026 12:00",
	})
	require.NoError(t, err)

	// Moving ENG201 onto CS101's slot must fail and change nothing.
	_, err = svc.Update(ctx, target.ID, UpdateBookingRequest{
		Course:    "ENG201",
		StartTime: "21-09-2026 10:30", EndTime: "21-09-2026 11:30",
	})
	assertErrorCode(t, err, appErrors.ErrConflict.Code)

	var conflictErr *models.BookingConflictError
	require.True(t, errors.As(err, &conflictErr))
	assert.Equal(t, anchor.ID, conflictErr.Conflict.BookingID)

	bookings, err := svc.ListByRoom(ctx, "R101")
	require.NoError(t, err)
	require.Len(t, bookings, 2)
	assert.Equal(t, *anchor, bookings[0])
	assert.Equal(t, *target, bookings[1])
}

func TestBookingUpdateOntoOwnSlot(t *testing.T) {
	svc := NewBookingService(newTestDirectory(t, "R101"), nil, nil, nil)
	ctx := context.Background()

	booking, err := svc.Create(ctx, CreateBookingRequest{
		Room: "R101", Course: "CS101",
		StartTime: "21-09-2026 09:00", EndTime: "21-09-2026 11:00",
	})
	require.NoError(t, err)

	// Re-submitting a booking's own interval only overlaps itself,
	// which the scan excludes.
	updated, err := svc.Update(ctx, booking.ID, UpdateBookingRequest{
		Course:    "CS102",
		StartTime: "21-09-2026 09:00", EndTime: "21-09-2026 11:00",
	})
	require.NoError(t, err)
	assert.Equal(t, booking.ID, updated.ID)
	assert.Equal(t, "CS102", updated.Course)
	assert.Equal(t, booking.Interval, updated.Interval)
}

func TestBookingUpdatePreservesIDAndPosition(t *testing.T) {
	svc := NewBookingService(newTestDirectory(t, "R101"), nil, nil, nil)
	ctx := context.Background()

	first, err := svc.Create(ctx, CreateBookingRequest{
		Room: "R101", Course: "CS101",
		StartTime: "21-09-2026 09:00", EndTime: "21-09-2026 10:00",
	})
	require.NoError(t, err)

	_, err = svc.Create(ctx, CreateBookingRequest{
		Room: "R101", Course: "ENG201",
		StartTime: "21-09-2026 10:00", EndTime: "21-09-2026 11:00",
	})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, first.ID, UpdateBookingRequest{
		Course:    "CS101",
		StartTime: "21-09-2026 08:00", EndTime: "21-09-2026 09:00",
	})
	require.NoError(t, err)
	assert.Equal(t, first.ID, updated.ID)

	bookings, err := svc.ListByRoom(ctx, "R101")
	require.NoError(t, err)
	require.Len(t, bookings, 2)
	assert.Equal(t, first.ID, bookings[0].ID, "edit must not move the booking")
}

func TestBookingUpdateUnknownID(t *testing.T) {
	svc := NewBookingService(newTestDirectory(t, "R101"), nil, nil, nil)

	_, err := svc.Update(context.Background(), "missing", UpdateBookingRequest{
		Course:    "CS101",
		StartTime: "21-09-2026 09:00", EndTime: "21-09-2026 11:00",
	})
	assertErrorCode(t, err, appErrors.ErrNotFound.Code)
}

func TestBookingDelete(t *testing.T) {
	svc := NewBookingService(newTestDirectory(t, "R101"), nil, nil, nil)
	ctx := context.Background()

	booking, err := svc.Create(ctx, CreateBookingRequest{
		Room: "R101", Course: "CS101",
		StartTime: "21-09-2026 09:00", EndTime: "21-09-2026 11:00",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, booking.ID))

	bookings, err := svc.ListByRoom(ctx, "R101")
	require.NoError(t, err)
	assert.Empty(t, bookings)

	// Deleting an unknown id is a no-op.
	assert.NoError(t, svc.Delete(ctx, booking.ID))

	// The freed slot is immediately bookable again.
	_, err = svc.Create(ctx, CreateBookingRequest{
		Room: "R101", Course: "MATH1",
		StartTime: "21-09-2026 09:00", EndTime: "21-09-2026 11:00",
	})
	require.NoError(t, err)
}

func TestBookingListAllOrdering(t *testing.T) {
	svc := NewBookingService(newTestDirectory(t, "R101", "R202"), nil, nil, nil)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateBookingRequest{
		Room: "R202", Course: "ENG201",
		StartTime: "21-09-2026 13:00", EndTime: "21-09-2026 14:00",
	})
	require.NoError(t, err)

	_, err = svc.Create(ctx, CreateBookingRequest{
		Room: "R101", Course: "CS101",
		StartTime: "21-09-2026 09:00", EndTime: "21-09-2026 10:00",
	})
	require.NoError(t, err)

	_, err = svc.Create(ctx, CreateBookingRequest{
		Room: "R101", Course: "MATH1",
		StartTime: "21-09-2026 10:00", EndTime: "21-09-2026 11:00",
	})
	require.NoError(t, err)

	// Classroom order first, insertion order within a classroom.
	all := svc.ListAll(ctx)
	require.Len(t, all, 3)
	assert.Equal(t, "CS101", all[0].Course)
	assert.Equal(t, "MATH1", all[1].Course)
	assert.Equal(t, "ENG201", all[2].Course)
}

func TestBookingListByRoomUnknownRoom(t *testing.T) {
	svc := NewBookingService(newTestDirectory(t, "R101"), nil, nil, nil)

	_, err := svc.ListByRoom(context.Background(), "R999")
	assertErrorCode(t, err, appErrors.ErrNotFound.Code)
}

func TestBookingCreateMissingFields(t *testing.T) {
	svc := NewBookingService(newTestDirectory(t, "R101"), nil, nil, nil)

	_, err := svc.Create(context.Background(), CreateBookingRequest{Room: "R101"})
	assertErrorCode(t, err, appErrors.ErrValidation.Code)
}
