package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/Abdullah149081/summer-camp-server/internal/models"
	"github.com/Abdullah149081/summer-camp-server/internal/repository"
	appErrors "github.com/Abdullah149081/summer-camp-server/pkg/errors"
	"github.com/Abdullah149081/summer-camp-server/pkg/export"
	"github.com/Abdullah149081/summer-camp-server/pkg/payment"
)

type settlementRepository interface {
	Settle(ctx context.Context, payment *models.PaymentHistory, enrollment *models.EnrolledClass) (*models.PaymentResult, error)
	ListByEmail(ctx context.Context, email string) ([]models.PaymentHistory, error)
	ListEnrolledByEmail(ctx context.Context, email string) ([]models.EnrolledClass, error)
}

type receiptExporter interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

// CreateIntentRequest carries the amount the payer is about to charge.
type CreateIntentRequest struct {
	Price float64 `json:"price" validate:"required,gt=0"`
}

// CreateIntentResponse returns the provider's client secret.
type CreateIntentResponse struct {
	ClientSecret string `json:"clientSecret"`
}

// SettleRequest submits a completed payment together with the enrollment it
// pays for; both are written as one logical transaction.
type SettleRequest struct {
	PaymentHistory settlePayment    `json:"paymentHistory" validate:"required"`
	EnrolledClass  settleEnrollment `json:"enrolledClass" validate:"required"`
}

type settlePayment struct {
	Email         string  `json:"email" validate:"required,email"`
	TransactionID string  `json:"transactionId" validate:"required"`
	Amount        float64 `json:"amount" validate:"required,gt=0"`
	ClassID       string  `json:"classId" validate:"required"`
	ClassName     string  `json:"className"`
}

type settleEnrollment struct {
	Email           string `json:"email" validate:"required,email"`
	InstructorEmail string `json:"instructorEmail" validate:"required,email"`
	ClassID         string `json:"classId" validate:"required"`
	ClassName       string `json:"className"`
}

// PaymentService orchestrates payment intents, the enrollment settlement and
// per-student history.
type PaymentService struct {
	repo      settlementRepository
	intents   payment.IntentCreator
	cache     listingCache
	exporter  receiptExporter
	validator *validator.Validate
	logger    *zap.Logger
}

// NewPaymentService constructs a PaymentService instance.
func NewPaymentService(repo settlementRepository, intents payment.IntentCreator, cache listingCache, exporter receiptExporter, validate *validator.Validate, logger *zap.Logger) *PaymentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &PaymentService{repo: repo, intents: intents, cache: cache, exporter: exporter, validator: validate, logger: logger}
}

// CreateIntent converts the price to integer cents and asks the provider for
// a client secret the payer's browser completes the charge with.
func (s *PaymentService) CreateIntent(ctx context.Context, req CreateIntentRequest) (*CreateIntentResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "price must be positive")
	}

	amountCents := int64(math.Round(req.Price * 100))
	secret, err := s.intents.CreateIntent(ctx, amountCents)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create payment intent")
	}
	return &CreateIntentResponse{ClientSecret: secret}, nil
}

// Settle runs the five-step enrollment settlement for a captured payment and
// returns the composite per-step result. The sequence is atomic: on any
// failure no record is kept and no counter moves.
func (s *PaymentService) Settle(ctx context.Context, req SettleRequest) (*models.PaymentResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payment payload")
	}
	if req.PaymentHistory.Email != req.EnrolledClass.Email {
		return nil, appErrors.Clone(appErrors.ErrValidation, "payment and enrollment emails do not match")
	}
	if req.PaymentHistory.ClassID != req.EnrolledClass.ClassID {
		return nil, appErrors.Clone(appErrors.ErrValidation, "payment and enrollment reference different classes")
	}

	history := &models.PaymentHistory{
		Email:         req.PaymentHistory.Email,
		TransactionID: req.PaymentHistory.TransactionID,
		Amount:        req.PaymentHistory.Amount,
		ClassID:       req.PaymentHistory.ClassID,
		ClassName:     req.PaymentHistory.ClassName,
	}
	enrollment := &models.EnrolledClass{
		Email:           req.EnrolledClass.Email,
		InstructorEmail: req.EnrolledClass.InstructorEmail,
		ClassID:         req.EnrolledClass.ClassID,
		ClassName:       req.EnrolledClass.ClassName,
	}

	result, err := s.repo.Settle(ctx, history, enrollment)
	if err != nil {
		return nil, err
	}

	// Counters moved, both top listings are stale now.
	if s.cache != nil {
		s.cache.Delete(ctx, repository.CacheKeyTopInstructors, repository.CacheKeyTopClasses)
	}

	s.logger.Info("payment settled",
		zap.String("payment_id", result.PaymentID),
		zap.String("class_id", enrollment.ClassID),
		zap.String("student", history.Email),
		zap.Int64("selections_removed", result.SelectionsRemoved),
	)
	return result, nil
}

// History returns a student's payment records, most recent first.
func (s *PaymentService) History(ctx context.Context, email string) ([]models.PaymentHistory, error) {
	payments, err := s.repo.ListByEmail(ctx, email)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list payment history")
	}
	return payments, nil
}

// Enrolled returns the classes a student has paid for.
func (s *PaymentService) Enrolled(ctx context.Context, email string) ([]models.EnrolledClass, error) {
	enrolled, err := s.repo.ListEnrolledByEmail(ctx, email)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list enrolled classes")
	}
	return enrolled, nil
}

// ExportHistoryPDF renders a student's payment history as a PDF receipt.
func (s *PaymentService) ExportHistoryPDF(ctx context.Context, email string) ([]byte, error) {
	payments, err := s.History(ctx, email)
	if err != nil {
		return nil, err
	}

	data := export.Dataset{Headers: []string{"Date", "Class", "Transaction", "Amount"}}
	for _, p := range payments {
		data.Rows = append(data.Rows, map[string]string{
			"Date":        p.PaidAt.UTC().Format(time.RFC3339),
			"Class":       p.ClassName,
			"Transaction": p.TransactionID,
			"Amount":      fmt.Sprintf("%.2f", p.Amount),
		})
	}

	pdf, err := s.exporter.Render(data, fmt.Sprintf("Payment history for %s", email))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render payment history")
	}
	return pdf, nil
}
