package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Abdullah149081/summer-camp-server/internal/models"
	appErrors "github.com/Abdullah149081/summer-camp-server/pkg/errors"
)

// PaymentRepository persists payment history, enrollments and the settlement
// sequence that keeps them consistent with classes, selections and users.
type PaymentRepository struct {
	db *sqlx.DB
}

// NewPaymentRepository constructs the repository.
func NewPaymentRepository(db *sqlx.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

// ListByEmail returns a student's payment history, most recent first.
func (r *PaymentRepository) ListByEmail(ctx context.Context, email string) ([]models.PaymentHistory, error) {
	const query = `SELECT id, email, transaction_id, amount, class_id, class_name, paid_at FROM payment_histories WHERE email = $1 ORDER BY paid_at DESC`
	var payments []models.PaymentHistory
	if err := r.db.SelectContext(ctx, &payments, query, email); err != nil {
		return nil, fmt.Errorf("list payment history: %w", err)
	}
	return payments, nil
}

// ListEnrolledByEmail returns a student's confirmed enrollments.
func (r *PaymentRepository) ListEnrolledByEmail(ctx context.Context, email string) ([]models.EnrolledClass, error) {
	const query = `SELECT id, email, instructor_email, class_id, class_name, enrolled_at FROM enrolled_classes WHERE email = $1 ORDER BY enrolled_at DESC`
	var enrolled []models.EnrolledClass
	if err := r.db.SelectContext(ctx, &enrolled, query, email); err != nil {
		return nil, fmt.Errorf("list enrolled classes: %w", err)
	}
	return enrolled, nil
}

// Settle applies the five-step payment settlement in one transaction:
// insert the payment record, insert the enrollment record, drop the matching
// selection, take one seat on the class, credit the instructor. Counter
// updates are single atomic statements, so concurrent settlements for the
// same class serialize at the database and seats can never go negative.
// Any failure rolls back the whole sequence.
func (r *PaymentRepository) Settle(ctx context.Context, payment *models.PaymentHistory, enrollment *models.EnrolledClass) (*models.PaymentResult, error) {
	if payment.ID == "" {
		payment.ID = uuid.NewString()
	}
	if payment.PaidAt.IsZero() {
		payment.PaidAt = time.Now().UTC()
	}
	if enrollment.ID == "" {
		enrollment.ID = uuid.NewString()
	}
	if enrollment.EnrolledAt.IsZero() {
		enrollment.EnrolledAt = payment.PaidAt
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin settlement: %w", err)
	}

	result, err := r.settle(ctx, tx, payment, enrollment)
	if err != nil {
		tx.Rollback() //nolint:errcheck
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit settlement: %w", err)
	}
	return result, nil
}

func (r *PaymentRepository) settle(ctx context.Context, tx *sqlx.Tx, payment *models.PaymentHistory, enrollment *models.EnrolledClass) (*models.PaymentResult, error) {
	const insertPayment = `INSERT INTO payment_histories (id, email, transaction_id, amount, class_id, class_name, paid_at)
        VALUES (:id, :email, :transaction_id, :amount, :class_id, :class_name, :paid_at)`
	if _, err := tx.NamedExecContext(ctx, insertPayment, payment); err != nil {
		return nil, fmt.Errorf("insert payment record: %w", err)
	}

	const insertEnrollment = `INSERT INTO enrolled_classes (id, email, instructor_email, class_id, class_name, enrolled_at)
        VALUES (:id, :email, :instructor_email, :class_id, :class_name, :enrolled_at)`
	if _, err := tx.NamedExecContext(ctx, insertEnrollment, enrollment); err != nil {
		return nil, fmt.Errorf("insert enrollment record: %w", err)
	}

	// Best effort: the student may never have selected the class explicitly.
	const deleteSelection = `DELETE FROM selected_classes WHERE class_id = $1 AND email = $2`
	deleted, err := tx.ExecContext(ctx, deleteSelection, enrollment.ClassID, payment.Email)
	if err != nil {
		return nil, fmt.Errorf("remove selection: %w", err)
	}
	removed, err := deleted.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("remove selection: %w", err)
	}

	const takeSeat = `UPDATE classes SET seats = seats - 1, total_enrolled = total_enrolled + 1, updated_at = $2 WHERE id = $1 AND seats > 0`
	seatResult, err := tx.ExecContext(ctx, takeSeat, enrollment.ClassID, time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("take class seat: %w", err)
	}
	seatRows, err := seatResult.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("take class seat: %w", err)
	}
	if seatRows == 0 {
		exists, err := r.rowExists(ctx, tx, `SELECT 1 FROM classes WHERE id = $1`, enrollment.ClassID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "class not found")
		}
		return nil, appErrors.ErrClassFull
	}

	const creditInstructor = `UPDATE users SET total_students = total_students + 1, updated_at = $2 WHERE email = $1`
	creditResult, err := tx.ExecContext(ctx, creditInstructor, enrollment.InstructorEmail, time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("credit instructor: %w", err)
	}
	creditRows, err := creditResult.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("credit instructor: %w", err)
	}
	if creditRows == 0 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "instructor not found")
	}

	return &models.PaymentResult{
		PaymentID:         payment.ID,
		EnrollmentID:      enrollment.ID,
		SelectionsRemoved: removed,
		ClassUpdated:      seatRows == 1,
		InstructorUpdated: creditRows == 1,
	}, nil
}

func (r *PaymentRepository) rowExists(ctx context.Context, tx *sqlx.Tx, query string, args ...interface{}) (bool, error) {
	var one int
	if err := tx.GetContext(ctx, &one, query+" LIMIT 1", args...); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("existence check: %w", err)
	}
	return true, nil
}
