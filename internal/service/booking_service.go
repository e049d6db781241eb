package service

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/ameliakool/SCMS/internal/directory"
	"github.com/ameliakool/SCMS/internal/models"
	appErrors "github.com/ameliakool/SCMS/pkg/errors"
	"github.com/ameliakool/SCMS/pkg/events"
)

// CreateBookingRequest describes payload for creating a booking. Times
// are textual in the day-month-year hour:minute layout.
type CreateBookingRequest struct {
	Room      string `json:"room" validate:"required"`
	Course    string `json:"course" validate:"required"`
	StartTime string `json:"start_time" validate:"required"`
	EndTime   string `json:"end_time" validate:"required"`
}

// UpdateBookingRequest updates an existing booking in place.
type UpdateBookingRequest struct {
	Course    string `json:"course" validate:"required"`
	StartTime string `json:"start_time" validate:"required"`
	EndTime   string `json:"end_time" validate:"required"`
}

// BookingService coordinates the booking mutation protocol. Every
// operation is atomic from the caller's perspective: validation and the
// conflict scan both pass before any state changes, and a failed
// operation leaves the classroom's collection untouched.
type BookingService struct {
	dir       *directory.Directory
	validator *validator.Validate
	logger    *zap.Logger
	events    *events.Publisher
}

// NewBookingService instantiates BookingService. The events publisher
// may be nil.
func NewBookingService(dir *directory.Directory, validate *validator.Validate, logger *zap.Logger, publisher *events.Publisher) *BookingService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BookingService{dir: dir, validator: validate, logger: logger, events: publisher}
}

// Create inserts a new booking after conflict detection. Insertion is
// single and conflict-gated.
func (s *BookingService) Create(ctx context.Context, req CreateBookingRequest) (*models.Booking, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid booking payload")
	}
	interval, err := parseAndValidateInterval(req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}

	var created models.Booking
	err = s.dir.Update(ctx, func(st *directory.State) error {
		room := st.Classroom(req.Room)
		if room == nil {
			return appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("classroom %s not found", req.Room))
		}
		if existing := room.FindOverlap(interval, ""); existing != nil {
			return conflictError(existing)
		}
		created = *room.AddBooking(req.Course, interval)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.events.PublishBooking(ctx, events.BookingCreated, &created)
	s.logger.Info("booking created",
		zap.String("booking_id", created.ID),
		zap.String("room", created.Room),
		zap.String("course", created.Course))
	return &created, nil
}

// Update edits a booking in place. The conflict scan runs against every
// other booking in the same classroom using the proposed interval; the
// booking under edit is excluded by id rather than detached, so no reader
// ever observes it missing. On failure the booking is left unchanged.
func (s *BookingService) Update(ctx context.Context, id string, req UpdateBookingRequest) (*models.Booking, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid booking payload")
	}
	interval, err := parseAndValidateInterval(req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}

	var updated models.Booking
	err = s.dir.Update(ctx, func(st *directory.State) error {
		room, booking := st.FindBooking(id)
		if booking == nil {
			return appErrors.Clone(appErrors.ErrNotFound, "booking not found")
		}
		if existing := room.FindOverlap(interval, booking.ID); existing != nil {
			return conflictError(existing)
		}
		booking.Course = req.Course
		booking.Interval = interval
		updated = *booking
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.events.PublishBooking(ctx, events.BookingUpdated, &updated)
	s.logger.Info("booking updated",
		zap.String("booking_id", updated.ID),
		zap.String("room", updated.Room))
	return &updated, nil
}

// Delete removes a booking. Removing an unknown id is a no-op, not an
// error.
func (s *BookingService) Delete(ctx context.Context, id string) error {
	var removed *models.Booking
	err := s.dir.Update(ctx, func(st *directory.State) error {
		room, booking := st.FindBooking(id)
		if booking == nil {
			return nil
		}
		cp := *booking
		room.RemoveBooking(id)
		removed = &cp
		return nil
	})
	if err != nil {
		return err
	}

	if removed != nil {
		s.events.PublishBooking(ctx, events.BookingDeleted, removed)
		s.logger.Info("booking deleted",
			zap.String("booking_id", removed.ID),
			zap.String("room", removed.Room))
	}
	return nil
}

// ListByRoom returns a classroom's bookings in insertion order.
func (s *BookingService) ListByRoom(ctx context.Context, roomNumber string) ([]models.Booking, error) {
	var bookings []models.Booking
	var missing bool
	s.dir.View(func(st *directory.State) {
		room := st.Classroom(roomNumber)
		if room == nil {
			missing = true
			return
		}
		bookings = copyBookings(room.Bookings)
	})
	if missing {
		return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("classroom %s not found", roomNumber))
	}
	return bookings, nil
}

// ListAll flattens bookings across every classroom, preserving classroom
// order and per-classroom insertion order. The result is derived, never
// stored.
func (s *BookingService) ListAll(ctx context.Context) []models.Booking {
	var bookings []models.Booking
	s.dir.View(func(st *directory.State) {
		for _, room := range st.Classrooms {
			bookings = append(bookings, copyBookings(room.Bookings)...)
		}
	})
	return bookings
}

func copyBookings(src []*models.Booking) []models.Booking {
	out := make([]models.Booking, 0, len(src))
	for _, b := range src {
		out = append(out, *b)
	}
	return out
}

func parseAndValidateInterval(start, end string) (models.TimeInterval, error) {
	interval, err := models.ParseInterval(start, end)
	if err != nil {
		return models.TimeInterval{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, err.Error())
	}
	if err := interval.Validate(); err != nil {
		return models.TimeInterval{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, err.Error())
	}
	return interval, nil
}

func conflictError(existing *models.Booking) error {
	domainErr := models.NewBookingConflictError(existing)
	return appErrors.Wrap(domainErr, appErrors.ErrConflict.Code, appErrors.ErrConflict.Status,
		fmt.Sprintf("booking conflict: %s", domainErr.Message))
}
