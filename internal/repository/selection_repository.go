package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Abdullah149081/summer-camp-server/internal/models"
)

// SelectionRepository handles persistence of pending class selections.
type SelectionRepository struct {
	db *sqlx.DB
}

// NewSelectionRepository constructs the repository.
func NewSelectionRepository(db *sqlx.DB) *SelectionRepository {
	return &SelectionRepository{db: db}
}

// FindByID returns a selection by its ID.
func (r *SelectionRepository) FindByID(ctx context.Context, id string) (*models.SelectedClass, error) {
	const query = `SELECT id, class_id, email, class_name, image, price, created_at FROM selected_classes WHERE id = $1 LIMIT 1`
	var selection models.SelectedClass
	if err := r.db.GetContext(ctx, &selection, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find selection by id: %w", err)
	}
	return &selection, nil
}

// ListByEmail returns a student's pending selections.
func (r *SelectionRepository) ListByEmail(ctx context.Context, email string) ([]models.SelectedClass, error) {
	const query = `SELECT id, class_id, email, class_name, image, price, created_at FROM selected_classes WHERE email = $1 ORDER BY created_at DESC`
	var selections []models.SelectedClass
	if err := r.db.SelectContext(ctx, &selections, query, email); err != nil {
		return nil, fmt.Errorf("list selections: %w", err)
	}
	return selections, nil
}

// Create persists a new selection.
func (r *SelectionRepository) Create(ctx context.Context, selection *models.SelectedClass) error {
	if selection.ID == "" {
		selection.ID = uuid.NewString()
	}
	if selection.CreatedAt.IsZero() {
		selection.CreatedAt = time.Now().UTC()
	}

	const query = `INSERT INTO selected_classes (id, class_id, email, class_name, image, price, created_at)
        VALUES (:id, :class_id, :email, :class_name, :image, :price, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, selection); err != nil {
		return fmt.Errorf("create selection: %w", err)
	}
	return nil
}

// Delete removes a selection by its ID.
func (r *SelectionRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM selected_classes WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete selection: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete selection: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
