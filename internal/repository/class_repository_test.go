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

func newClassRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func classRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name", "image", "instructor_name", "instructor_email", "seats", "price", "total_enrolled", "status", "feedback", "created_at", "updated_at"})
}

func TestClassRepositoryCreateDefaultsToPending(t *testing.T) {
	db, mock, cleanup := newClassRepoMock(t)
	defer cleanup()
	repo := NewClassRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO classes")).
		WillReturnResult(sqlmock.NewResult(1, 1))

	class := &models.Class{
		Name:            "Archery",
		InstructorName:  "Coach",
		InstructorEmail: "coach@example.com",
		Seats:           10,
		Price:           49.99,
	}
	require.NoError(t, repo.Create(context.Background(), class))
	assert.NotEmpty(t, class.ID)
	assert.Equal(t, models.ClassStatusPending, class.Status)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestClassRepositoryListApproved(t *testing.T) {
	db, mock, cleanup := newClassRepoMock(t)
	defer cleanup()
	repo := NewClassRepository(db)

	rows := classRows().
		AddRow("class-1", "Archery", "", "Coach", "coach@example.com", 10, 49.99, 3, models.ClassStatusApproved, nil, time.Now(), time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("FROM classes WHERE status = $1 ORDER BY created_at DESC")).
		WithArgs(models.ClassStatusApproved).
		WillReturnRows(rows)

	classes, err := repo.ListApproved(context.Background())
	require.NoError(t, err)
	require.Len(t, classes, 1)
	assert.Equal(t, models.ClassStatusApproved, classes[0].Status)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestClassRepositoryTopApproved(t *testing.T) {
	db, mock, cleanup := newClassRepoMock(t)
	defer cleanup()
	repo := NewClassRepository(db)

	rows := classRows().
		AddRow("class-2", "Kayaking", "", "Coach", "coach@example.com", 5, 30, 9, models.ClassStatusApproved, nil, time.Now(), time.Now()).
		AddRow("class-1", "Archery", "", "Coach", "coach@example.com", 10, 49.99, 3, models.ClassStatusApproved, nil, time.Now(), time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY total_enrolled DESC LIMIT $2")).
		WithArgs(models.ClassStatusApproved, 6).
		WillReturnRows(rows)

	classes, err := repo.TopApproved(context.Background(), 6)
	require.NoError(t, err)
	require.Len(t, classes, 2)
	assert.Equal(t, 9, classes[0].TotalEnrolled)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestClassRepositoryUpdateStatusMissing(t *testing.T) {
	db, mock, cleanup := newClassRepoMock(t)
	defer cleanup()
	repo := NewClassRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE classes SET status = $2, updated_at = $3 WHERE id = $1")).
		WithArgs("ghost", models.ClassStatusApproved, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateStatus(context.Background(), "ghost", models.ClassStatusApproved)
	assert.ErrorIs(t, err, sql.ErrNoRows)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestClassRepositoryUpdateFeedback(t *testing.T) {
	db, mock, cleanup := newClassRepoMock(t)
	defer cleanup()
	repo := NewClassRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE classes SET feedback = $2, updated_at = $3 WHERE id = $1")).
		WithArgs("class-1", "needs a syllabus", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.UpdateFeedback(context.Background(), "class-1", "needs a syllabus"))
	require.NoError(t, mock.ExpectationsWereMet())
}
