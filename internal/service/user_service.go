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

type userRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	ListInstructors(ctx context.Context) ([]models.User, error)
	TopInstructors(ctx context.Context, limit int) ([]models.User, error)
	Create(ctx context.Context, user *models.User) error
	UpdateRole(ctx context.Context, id string, role models.UserRole) error
}

type listingCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string)
}

// CreateUserRequest is the idempotent first-sign-in payload.
type CreateUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required"`
	PhotoURL string `json:"photoURL"`
}

// UserService provides user and role use cases.
type UserService struct {
	repo      userRepository
	cache     listingCache
	validator *validator.Validate
	logger    *zap.Logger
	topLimit  int
	cacheTTL  time.Duration
}

// NewUserService constructs a UserService instance.
func NewUserService(repo userRepository, cache listingCache, validate *validator.Validate, logger *zap.Logger, topLimit int, cacheTTL time.Duration) *UserService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	if topLimit <= 0 {
		topLimit = 6
	}
	return &UserService{repo: repo, cache: cache, validator: validate, logger: logger, topLimit: topLimit, cacheTTL: cacheTTL}
}

// List returns all users, admin only.
func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list users")
	}
	return users, nil
}

// Create registers a user on first sign-in. When the email already exists it
// is a no-op reporting created=false, matching the idempotent contract.
func (s *UserService) Create(ctx context.Context, req CreateUserRequest) (*models.User, bool, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid user payload")
	}

	existing, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check existing user")
	}
	if existing != nil {
		return existing, false, nil
	}

	user := &models.User{
		Email:    req.Email,
		Name:     req.Name,
		PhotoURL: req.PhotoURL,
		Role:     models.RoleNone,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create user")
	}
	return user, true, nil
}

// RoleFlags resolves the admin/instructor flags for an email. An unknown
// email yields both flags false rather than an error.
func (s *UserService) RoleFlags(ctx context.Context, email string) (models.RoleFlags, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.RoleFlags{}, nil
		}
		return models.RoleFlags{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to look up role")
	}
	return models.RoleFlags{
		Admin:      user.Role == models.RoleAdmin,
		Instructor: user.Role == models.RoleInstructor,
	}, nil
}

// FindRoleByEmail returns the stored role for an email, RoleNone if unknown.
// Guards consult this so a promotion applies without re-login.
func (s *UserService) FindRoleByEmail(ctx context.Context, email string) (models.UserRole, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.RoleNone, nil
		}
		return models.RoleNone, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to look up role")
	}
	return user.Role, nil
}

// Promote grants the given role to a user addressed by record id.
func (s *UserService) Promote(ctx context.Context, id string, role models.UserRole) (*models.User, error) {
	if role != models.RoleAdmin && role != models.RoleInstructor {
		return nil, appErrors.Clone(appErrors.ErrValidation, "role must be admin or instructor")
	}
	if err := s.repo.UpdateRole(ctx, id, role); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "user not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update role")
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to reload user")
	}
	if role == models.RoleInstructor {
		s.invalidateTopInstructors(ctx)
	}
	return user, nil
}

// ListInstructors returns every instructor for the public listing.
func (s *UserService) ListInstructors(ctx context.Context) ([]models.User, error) {
	instructors, err := s.repo.ListInstructors(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list instructors")
	}
	return instructors, nil
}

// TopInstructors returns the most popular instructors by totalStudents,
// served from cache when warm.
func (s *UserService) TopInstructors(ctx context.Context) ([]models.User, error) {
	if s.cache != nil {
		var cached []models.User
		if err := s.cache.Get(ctx, repository.CacheKeyTopInstructors, &cached); err == nil {
			return cached, nil
		}
	}

	instructors, err := s.repo.TopInstructors(ctx, s.topLimit)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list top instructors")
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, repository.CacheKeyTopInstructors, instructors, s.cacheTTL); err != nil {
			s.logger.Warn("failed to cache top instructors", zap.Error(err))
		}
	}
	return instructors, nil
}

func (s *UserService) invalidateTopInstructors(ctx context.Context) {
	if s.cache != nil {
		s.cache.Delete(ctx, repository.CacheKeyTopInstructors)
	}
}
