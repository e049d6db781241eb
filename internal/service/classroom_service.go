package service

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/ameliakool/SCMS/internal/directory"
	"github.com/ameliakool/SCMS/internal/models"
	appErrors "github.com/ameliakool/SCMS/pkg/errors"
)

// CreateClassroomRequest describes payload for registering a classroom.
type CreateClassroomRequest struct {
	RoomNumber string `json:"room_number" validate:"required"`
	Type       string `json:"type" validate:"required"`
	Capacity   int    `json:"capacity" validate:"required,gt=0"`
}

// ClassroomService manages the classroom registry. Classrooms are never
// deleted.
type ClassroomService struct {
	dir       *directory.Directory
	validator *validator.Validate
	logger    *zap.Logger
}

// NewClassroomService instantiates ClassroomService.
func NewClassroomService(dir *directory.Directory, validate *validator.Validate, logger *zap.Logger) *ClassroomService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ClassroomService{dir: dir, validator: validate, logger: logger}
}

// Create registers a new classroom with a unique room number.
func (s *ClassroomService) Create(ctx context.Context, req CreateClassroomRequest) (*models.Classroom, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid classroom payload")
	}

	var created models.Classroom
	err := s.dir.Update(ctx, func(st *directory.State) error {
		if st.Classroom(req.RoomNumber) != nil {
			return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("classroom %s already exists", req.RoomNumber))
		}
		room := models.NewClassroom(req.RoomNumber, req.Type, req.Capacity)
		st.Classrooms = append(st.Classrooms, room)
		created = *room
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("classroom created", zap.String("room", created.RoomNumber))
	return &created, nil
}

// Get returns a classroom with its bookings.
func (s *ClassroomService) Get(ctx context.Context, roomNumber string) (*models.Classroom, error) {
	var found *models.Classroom
	s.dir.View(func(st *directory.State) {
		if room := st.Classroom(roomNumber); room != nil {
			cp := *room
			cp.Bookings = nil
			for _, b := range room.Bookings {
				bc := *b
				cp.Bookings = append(cp.Bookings, &bc)
			}
			found = &cp
		}
	})
	if found == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("classroom %s not found", roomNumber))
	}
	return found, nil
}

// List returns every classroom in registry order.
func (s *ClassroomService) List(ctx context.Context) []models.Classroom {
	var rooms []models.Classroom
	s.dir.View(func(st *directory.State) {
		rooms = make([]models.Classroom, 0, len(st.Classrooms))
		for _, room := range st.Classrooms {
			cp := *room
			cp.Bookings = nil
			for _, b := range room.Bookings {
				bc := *b
				cp.Bookings = append(cp.Bookings, &bc)
			}
			rooms = append(rooms, cp)
		}
	})
	return rooms
}
