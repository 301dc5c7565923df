package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Abdullah149081/summer-camp-server/internal/models"
)

// BannerRepository reads seeded promotional banners.
type BannerRepository struct {
	db *sqlx.DB
}

// NewBannerRepository constructs the repository.
func NewBannerRepository(db *sqlx.DB) *BannerRepository {
	return &BannerRepository{db: db}
}

// List returns every banner in seed order.
func (r *BannerRepository) List(ctx context.Context) ([]models.Banner, error) {
	const query = `SELECT id, title, subtitle, image, created_at FROM banners ORDER BY created_at ASC`
	var banners []models.Banner
	if err := r.db.SelectContext(ctx, &banners, query); err != nil {
		return nil, fmt.Errorf("list banners: %w", err)
	}
	return banners, nil
}

// Create inserts a banner, used by seed tooling only.
func (r *BannerRepository) Create(ctx context.Context, banner *models.Banner) error {
	if banner.ID == "" {
		banner.ID = uuid.NewString()
	}
	if banner.CreatedAt.IsZero() {
		banner.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO banners (id, title, subtitle, image, created_at) VALUES (:id, :title, :subtitle, :image, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, banner); err != nil {
		return fmt.Errorf("create banner: %w", err)
	}
	return nil
}
