package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/Abdullah149081/summer-camp-server/internal/models"
	appErrors "github.com/Abdullah149081/summer-camp-server/pkg/errors"
)

type bannerRepository interface {
	List(ctx context.Context) ([]models.Banner, error)
}

// BannerService serves the seeded promotional banners.
type BannerService struct {
	repo   bannerRepository
	logger *zap.Logger
}

// NewBannerService constructs a BannerService instance.
func NewBannerService(repo bannerRepository, logger *zap.Logger) *BannerService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BannerService{repo: repo, logger: logger}
}

// List returns every banner.
func (s *BannerService) List(ctx context.Context) ([]models.Banner, error) {
	banners, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list banners")
	}
	return banners, nil
}
