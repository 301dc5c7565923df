package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Abdullah149081/summer-camp-server/internal/models"
)

func newSelectionRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestSelectionRepositoryCreateAndFind(t *testing.T) {
	db, mock, cleanup := newSelectionRepoMock(t)
	defer cleanup()
	repo := NewSelectionRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO selected_classes")).
		WillReturnResult(sqlmock.NewResult(1, 1))

	selection := &models.SelectedClass{
		ClassID:   "class-1",
		Email:     "student@example.com",
		ClassName: "Archery",
		Price:     49.99,
	}
	require.NoError(t, repo.Create(context.Background(), selection))
	assert.NotEmpty(t, selection.ID)

	rows := sqlmock.NewRows([]string{"id", "class_id", "email", "class_name", "image", "price", "created_at"}).
		AddRow(selection.ID, "class-1", "student@example.com", "Archery", "", 49.99, time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, class_id, email, class_name, image, price, created_at FROM selected_classes WHERE id = $1")).
		WithArgs(selection.ID).
		WillReturnRows(rows)

	found, err := repo.FindByID(context.Background(), selection.ID)
	require.NoError(t, err)
	assert.Equal(t, "student@example.com", found.Email)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSelectionRepositoryDeleteMissing(t *testing.T) {
	db, mock, cleanup := newSelectionRepoMock(t)
	defer cleanup()
	repo := NewSelectionRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM selected_classes WHERE id = $1")).
		WithArgs("ghost").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), "ghost")
	assert.ErrorIs(t, err, sql.ErrNoRows)
	require.NoError(t, mock.ExpectationsWereMet())
}
