package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/Abdullah149081/summer-camp-server/internal/models"
	appErrors "github.com/Abdullah149081/summer-camp-server/pkg/errors"
)

type selectionRepository interface {
	FindByID(ctx context.Context, id string) (*models.SelectedClass, error)
	ListByEmail(ctx context.Context, email string) ([]models.SelectedClass, error)
	Create(ctx context.Context, selection *models.SelectedClass) error
	Delete(ctx context.Context, id string) error
}

// CreateSelectionRequest is the student's pick-a-class payload.
type CreateSelectionRequest struct {
	ClassID   string  `json:"classId" validate:"required"`
	Email     string  `json:"email" validate:"required,email"`
	ClassName string  `json:"className" validate:"required"`
	Image     string  `json:"image"`
	Price     float64 `json:"price" validate:"gte=0"`
}

// SelectionService manages pending class selections.
type SelectionService struct {
	repo      selectionRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewSelectionService constructs a SelectionService instance.
func NewSelectionService(repo selectionRepository, validate *validator.Validate, logger *zap.Logger) *SelectionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &SelectionService{repo: repo, validator: validate, logger: logger}
}

// Create records a pending selection for a student.
func (s *SelectionService) Create(ctx context.Context, req CreateSelectionRequest) (*models.SelectedClass, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid selection payload")
	}

	selection := &models.SelectedClass{
		ClassID:   req.ClassID,
		Email:     req.Email,
		ClassName: req.ClassName,
		Image:     req.Image,
		Price:     req.Price,
	}
	if err := s.repo.Create(ctx, selection); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create selection")
	}
	return selection, nil
}

// Get returns one selection by id.
func (s *SelectionService) Get(ctx context.Context, id string) (*models.SelectedClass, error) {
	selection, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "selection not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load selection")
	}
	return selection, nil
}

// ListByEmail returns a student's pending selections.
func (s *SelectionService) ListByEmail(ctx context.Context, email string) ([]models.SelectedClass, error) {
	selections, err := s.repo.ListByEmail(ctx, email)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list selections")
	}
	return selections, nil
}

// Delete removes a selection after checking the requester owns it.
func (s *SelectionService) Delete(ctx context.Context, id, requesterEmail string) error {
	selection, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "selection not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load selection")
	}
	if selection.Email != requesterEmail {
		return appErrors.Clone(appErrors.ErrForbidden, "selection belongs to another student")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// Already removed, possibly by a concurrent settlement.
			return nil
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete selection")
	}
	return nil
}
