package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/Abdullah149081/summer-camp-server/internal/models"
	"github.com/Abdullah149081/summer-camp-server/internal/repository"
	appErrors "github.com/Abdullah149081/summer-camp-server/pkg/errors"
)

type classRepository interface {
	FindByID(ctx context.Context, id string) (*models.Class, error)
	ListAll(ctx context.Context) ([]models.Class, error)
	ListApproved(ctx context.Context) ([]models.Class, error)
	ListByInstructor(ctx context.Context, email string) ([]models.Class, error)
	TopApproved(ctx context.Context, limit int) ([]models.Class, error)
	Create(ctx context.Context, class *models.Class) error
	UpdateStatus(ctx context.Context, id string, status models.ClassStatus) error
	UpdateFeedback(ctx context.Context, id, feedback string) error
}

// CreateClassRequest is the instructor's new-class payload.
type CreateClassRequest struct {
	Name            string  `json:"name" validate:"required"`
	Image           string  `json:"image"`
	InstructorName  string  `json:"instructorName" validate:"required"`
	InstructorEmail string  `json:"instructorEmail" validate:"required,email"`
	Seats           int     `json:"seats" validate:"gte=0"`
	Price           float64 `json:"price" validate:"gte=0"`
}

// UpdateStatusRequest moves a class through review.
type UpdateStatusRequest struct {
	Status models.ClassStatus `json:"status" validate:"required,oneof=approve denied"`
}

// UpdateFeedbackRequest attaches admin feedback.
type UpdateFeedbackRequest struct {
	Feedback string `json:"feedback" validate:"required"`
}

// ClassService provides class listing use cases.
type ClassService struct {
	repo      classRepository
	cache     listingCache
	validator *validator.Validate
	logger    *zap.Logger
	topLimit  int
	cacheTTL  time.Duration
}

// NewClassService constructs a ClassService instance.
func NewClassService(repo classRepository, cache listingCache, validate *validator.Validate, logger *zap.Logger, topLimit int, cacheTTL time.Duration) *ClassService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	if topLimit <= 0 {
		topLimit = 6
	}
	return &ClassService{repo: repo, cache: cache, validator: validate, logger: logger, topLimit: topLimit, cacheTTL: cacheTTL}
}

// Create submits a new class for review. Status always starts pending; an
// instructor cannot approve their own listing.
func (s *ClassService) Create(ctx context.Context, req CreateClassRequest) (*models.Class, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid class payload")
	}

	class := &models.Class{
		Name:            req.Name,
		Image:           req.Image,
		InstructorName:  req.InstructorName,
		InstructorEmail: req.InstructorEmail,
		Seats:           req.Seats,
		Price:           req.Price,
		Status:          models.ClassStatusPending,
	}
	if err := s.repo.Create(ctx, class); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create class")
	}
	return class, nil
}

// ListAll returns every class for the admin console.
func (s *ClassService) ListAll(ctx context.Context) ([]models.Class, error) {
	classes, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list classes")
	}
	return classes, nil
}

// ListApproved returns the public catalog.
func (s *ClassService) ListApproved(ctx context.Context) ([]models.Class, error) {
	classes, err := s.repo.ListApproved(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list approved classes")
	}
	return classes, nil
}

// ListByInstructor returns an instructor's own classes.
func (s *ClassService) ListByInstructor(ctx context.Context, email string) ([]models.Class, error) {
	classes, err := s.repo.ListByInstructor(ctx, email)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list instructor classes")
	}
	return classes, nil
}

// TopClasses returns the most enrolled approved classes, cached when warm.
func (s *ClassService) TopClasses(ctx context.Context) ([]models.Class, error) {
	if s.cache != nil {
		var cached []models.Class
		if err := s.cache.Get(ctx, repository.CacheKeyTopClasses, &cached); err == nil {
			return cached, nil
		}
	}

	classes, err := s.repo.TopApproved(ctx, s.topLimit)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list top classes")
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, repository.CacheKeyTopClasses, classes, s.cacheTTL); err != nil {
			s.logger.Warn("failed to cache top classes", zap.Error(err))
		}
	}
	return classes, nil
}

// UpdateStatus approves or denies a class.
func (s *ClassService) UpdateStatus(ctx context.Context, id string, req UpdateStatusRequest) (*models.Class, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "status must be approve or denied")
	}
	if err := s.repo.UpdateStatus(ctx, id, req.Status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "class not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update class status")
	}
	if s.cache != nil {
		s.cache.Delete(ctx, repository.CacheKeyTopClasses)
	}
	return s.reload(ctx, id)
}

// UpdateFeedback records review feedback on a class.
func (s *ClassService) UpdateFeedback(ctx context.Context, id string, req UpdateFeedbackRequest) (*models.Class, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "feedback is required")
	}
	if err := s.repo.UpdateFeedback(ctx, id, req.Feedback); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "class not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update class feedback")
	}
	return s.reload(ctx, id)
}

func (s *ClassService) reload(ctx context.Context, id string) (*models.Class, error) {
	class, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to reload class")
	}
	return class, nil
}
