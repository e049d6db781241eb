package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/ameliakool/SCMS/internal/directory"
	"github.com/ameliakool/SCMS/internal/models"
	appErrors "github.com/ameliakool/SCMS/pkg/errors"
)

// CreateStudentRequest holds payload for registering students.
type CreateStudentRequest struct {
	ID     string `json:"id" validate:"required"`
	Name   string `json:"name" validate:"required"`
	Degree string `json:"degree" validate:"required"`
	Email  string `json:"email" validate:"required"`
}

// UpdateStudentRequest holds payload for editing students. The id is
// immutable.
type UpdateStudentRequest struct {
	Name   string `json:"name" validate:"required"`
	Degree string `json:"degree" validate:"required"`
	Email  string `json:"email" validate:"required"`
}

// StudentService handles student record management.
type StudentService struct {
	dir       *directory.Directory
	validator *validator.Validate
	logger    *zap.Logger
}

// NewStudentService constructs the student service.
func NewStudentService(dir *directory.Directory, validate *validator.Validate, logger *zap.Logger) *StudentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentService{dir: dir, validator: validate, logger: logger}
}

// Create registers a new student. The id must be unique
// (case-insensitive) and the email an institutional .edu address.
func (s *StudentService) Create(ctx context.Context, req CreateStudentRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid student payload")
	}
	if !models.ValidEduEmail(req.Email) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "email must be a valid .edu address")
	}

	var created models.Student
	err := s.dir.Update(ctx, func(st *directory.State) error {
		if st.Student(req.ID) != nil {
			return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("student id %s already exists", req.ID))
		}
		student := &models.Student{ID: req.ID, Name: req.Name, Degree: req.Degree, Email: req.Email}
		st.Students = append(st.Students, student)
		created = *student
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("student created", zap.String("student_id", created.ID))
	return &created, nil
}

// Update edits a student's mutable fields.
func (s *StudentService) Update(ctx context.Context, id string, req UpdateStudentRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid student payload")
	}
	if !models.ValidEduEmail(req.Email) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "email must be a valid .edu address")
	}

	var updated models.Student
	err := s.dir.Update(ctx, func(st *directory.State) error {
		student := st.Student(id)
		if student == nil {
			return appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		student.Name = req.Name
		student.Degree = req.Degree
		student.Email = req.Email
		updated = *student
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes a student record. Unknown ids are a no-op.
func (s *StudentService) Delete(ctx context.Context, id string) error {
	return s.dir.Update(ctx, func(st *directory.State) error {
		for idx, student := range st.Students {
			if strings.EqualFold(student.ID, id) {
				st.Students = append(st.Students[:idx], st.Students[idx+1:]...)
				return nil
			}
		}
		return nil
	})
}

// List returns students, optionally filtered by an id or name search term.
func (s *StudentService) List(ctx context.Context, search string) []models.Student {
	search = strings.ToLower(strings.TrimSpace(search))
	var students []models.Student
	s.dir.View(func(st *directory.State) {
		for _, student := range st.Students {
			if search != "" &&
				!strings.EqualFold(student.ID, search) &&
				!strings.Contains(strings.ToLower(student.Name), search) {
				continue
			}
			students = append(students, *student)
		}
	})
	return students
}

// Get returns one student by id.
func (s *StudentService) Get(ctx context.Context, id string) (*models.Student, error) {
	var found *models.Student
	s.dir.View(func(st *directory.State) {
		if student := st.Student(id); student != nil {
			cp := *student
			found = &cp
		}
	})
	if found == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}
	return found, nil
}
