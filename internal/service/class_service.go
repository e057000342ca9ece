package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/luct-faculty/reporting-api/internal/models"
	"github.com/luct-faculty/reporting-api/internal/repository"
	appErrors "github.com/luct-faculty/reporting-api/pkg/errors"
)

type classRepository interface {
	List(ctx context.Context, filter models.ClassFilter) ([]models.Class, error)
	FindByID(ctx context.Context, id int64) (*models.Class, error)
	Create(ctx context.Context, class *models.Class) error
	Update(ctx context.Context, id int64, className, venue *string) error
	Delete(ctx context.Context, id int64) (bool, error)
}

// CreateClassRequest carries the payload for adding a class.
type CreateClassRequest struct {
	ClassName string  `json:"class_name" validate:"required"`
	Venue     *string `json:"venue"`
}

// UpdateClassRequest carries a partial class update.
type UpdateClassRequest struct {
	ClassName *string `json:"class_name"`
	Venue     *string `json:"venue"`
}

// ClassService manages the class catalogue.
type ClassService struct {
	repo      classRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewClassService constructs a ClassService instance.
func NewClassService(repo classRepository, validate *validator.Validate, logger *zap.Logger) *ClassService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &ClassService{repo: repo, validator: validate, logger: logger}
}

// List returns classes, optionally filtered by name.
func (s *ClassService) List(ctx context.Context, filter models.ClassFilter) ([]models.Class, error) {
	classes, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list classes")
	}
	return classes, nil
}

// Get returns one class by id.
func (s *ClassService) Get(ctx context.Context, id int64) (*models.Class, error) {
	class, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "class not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch class")
	}
	return class, nil
}

// Create adds a class.
func (s *ClassService) Create(ctx context.Context, req CreateClassRequest) (*models.Class, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "class_name is required")
	}

	class := &models.Class{ClassName: req.ClassName, Venue: req.Venue}
	if err := s.repo.Create(ctx, class); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create class")
	}

	s.logger.Info("class created", zap.Int64("class_id", class.ClassID), zap.String("class_name", class.ClassName))
	return class, nil
}

// Update changes the class name and/or venue. At least one field is
// required.
func (s *ClassService) Update(ctx context.Context, id int64, req UpdateClassRequest) error {
	if req.ClassName == nil && req.Venue == nil {
		return appErrors.Clone(appErrors.ErrValidation, "class_name or venue is required")
	}
	if req.ClassName != nil && *req.ClassName == "" {
		return appErrors.Clone(appErrors.ErrValidation, "class_name cannot be empty")
	}

	if err := s.repo.Update(ctx, id, req.ClassName, req.Venue); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "class not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update class")
	}
	return nil
}

// Delete removes a class. Classes referenced by reports cannot be
// deleted and surface as a conflict.
func (s *ClassService) Delete(ctx context.Context, id int64) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrClassReferenced) {
			return appErrors.Clone(appErrors.ErrConflict, "class is referenced by existing reports")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete class")
	}
	if !deleted {
		return appErrors.Clone(appErrors.ErrNotFound, "class not found")
	}
	return nil
}
