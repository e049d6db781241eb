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

// CreateResourceRequest holds payload for registering resources.
type CreateResourceRequest struct {
	ID     string `json:"id" validate:"required"`
	Name   string `json:"name" validate:"required"`
	Type   string `json:"type" validate:"required"`
	Status string `json:"status" validate:"omitempty,oneof=Available Maintenance"`
}

// UpdateResourceRequest holds payload for editing resources.
type UpdateResourceRequest struct {
	Name string `json:"name" validate:"required"`
	Type string `json:"type" validate:"required"`
}

// ResourceService handles checkable resource management and the
// checkout/return workflow.
type ResourceService struct {
	dir       *directory.Directory
	validator *validator.Validate
	logger    *zap.Logger
}

// NewResourceService constructs the resource service.
func NewResourceService(dir *directory.Directory, validate *validator.Validate, logger *zap.Logger) *ResourceService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ResourceService{dir: dir, validator: validate, logger: logger}
}

// Create registers a new resource.
func (s *ResourceService) Create(ctx context.Context, req CreateResourceRequest) (*models.Resource, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid resource payload")
	}
	status := req.Status
	if status == "" {
		status = models.ResourceAvailable
	}

	var created models.Resource
	err := s.dir.Update(ctx, func(st *directory.State) error {
		if st.Resource(req.ID) != nil {
			return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("resource id %s already exists", req.ID))
		}
		resource := &models.Resource{ID: req.ID, Name: req.Name, Type: req.Type, Status: status}
		st.Resources = append(st.Resources, resource)
		created = *resource
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("resource created", zap.String("resource_id", created.ID))
	return &created, nil
}

// Update edits a resource's name and type.
func (s *ResourceService) Update(ctx context.Context, id string, req UpdateResourceRequest) (*models.Resource, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid resource payload")
	}

	var updated models.Resource
	err := s.dir.Update(ctx, func(st *directory.State) error {
		resource := st.Resource(id)
		if resource == nil {
			return appErrors.Clone(appErrors.ErrNotFound, "resource not found")
		}
		resource.Name = req.Name
		resource.Type = req.Type
		updated = *resource
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes a resource record. Unknown ids are a no-op.
func (s *ResourceService) Delete(ctx context.Context, id string) error {
	return s.dir.Update(ctx, func(st *directory.State) error {
		for idx, resource := range st.Resources {
			if strings.EqualFold(resource.ID, id) {
				st.Resources = append(st.Resources[:idx], st.Resources[idx+1:]...)
				return nil
			}
		}
		return nil
	})
}

// List returns resources, optionally filtered by an id or name search term.
func (s *ResourceService) List(ctx context.Context, search string) []models.Resource {
	search = strings.ToLower(strings.TrimSpace(search))
	var resources []models.Resource
	s.dir.View(func(st *directory.State) {
		for _, resource := range st.Resources {
			if search != "" &&
				!strings.EqualFold(resource.ID, search) &&
				!strings.Contains(strings.ToLower(resource.Name), search) {
				continue
			}
			resources = append(resources, *resource)
		}
	})
	return resources
}

// Checkout lends a resource to a registered student. Only registered
// students can check out resources.
func (s *ResourceService) Checkout(ctx context.Context, resourceID, studentID string) (*models.Resource, error) {
	studentID = strings.TrimSpace(studentID)
	if studentID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "student id is required")
	}

	var updated models.Resource
	err := s.dir.Update(ctx, func(st *directory.State) error {
		resource := st.Resource(resourceID)
		if resource == nil {
			return appErrors.Clone(appErrors.ErrNotFound, "resource not found")
		}
		student := st.Student(studentID)
		if student == nil {
			return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("student id %s not found", studentID))
		}
		if resource.IsCheckedOut() {
			return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("resource already checked out to %s", resource.CheckedOutBy))
		}
		resource.CheckOut(student.ID)
		updated = *resource
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("resource checked out",
		zap.String("resource_id", updated.ID),
		zap.String("student_id", updated.CheckedOutBy))
	return &updated, nil
}

// Return puts a resource back in circulation. Returning an already
// available resource is a no-op.
func (s *ResourceService) Return(ctx context.Context, resourceID string) (*models.Resource, error) {
	var updated models.Resource
	err := s.dir.Update(ctx, func(st *directory.State) error {
		resource := st.Resource(resourceID)
		if resource == nil {
			return appErrors.Clone(appErrors.ErrNotFound, "resource not found")
		}
		resource.Return()
		updated = *resource
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}
