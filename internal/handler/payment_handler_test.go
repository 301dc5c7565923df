package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Abdullah149081/summer-camp-server/internal/middleware"
	"github.com/Abdullah149081/summer-camp-server/internal/models"
	"github.com/Abdullah149081/summer-camp-server/internal/service"
)

type stubSettlementRepo struct {
	result      *models.PaymentResult
	settleCalls int
}

func (s *stubSettlementRepo) Settle(_ context.Context, _ *models.PaymentHistory, _ *models.EnrolledClass) (*models.PaymentResult, error) {
	s.settleCalls++
	return s.result, nil
}

func (s *stubSettlementRepo) ListByEmail(_ context.Context, _ string) ([]models.PaymentHistory, error) {
	return nil, nil
}

func (s *stubSettlementRepo) ListEnrolledByEmail(_ context.Context, _ string) ([]models.EnrolledClass, error) {
	return nil, nil
}

func settleBody() *bytes.Buffer {
	return bytes.NewBufferString(`{
		"paymentHistory": {"email": "student@example.com", "transactionId": "tx-1", "amount": 49.99, "classId": "class-1", "className": "Archery"},
		"enrolledClass": {"email": "student@example.com", "instructorEmail": "coach@example.com", "classId": "class-1", "className": "Archery"}
	}`)
}

func newSettleContext(t *testing.T, claims *models.JWTClaims) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = httptest.NewRequest(http.MethodPost, "/payments", settleBody())
	c.Request.Header.Set("Content-Type", "application/json")
	if claims != nil {
		c.Set(middleware.ContextUserKey, claims)
	}
	return c, recorder
}

func TestPaymentHandlerSettleSuccess(t *testing.T) {
	repo := &stubSettlementRepo{result: &models.PaymentResult{
		PaymentID:         "pay-1",
		EnrollmentID:      "enr-1",
		SelectionsRemoved: 1,
		ClassUpdated:      true,
		InstructorUpdated: true,
	}}
	svc := service.NewPaymentService(repo, nil, nil, nil, nil, nil)
	h := NewPaymentHandler(svc)

	c, recorder := newSettleContext(t, &models.JWTClaims{Email: "student@example.com"})
	h.Settle(c)

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, 1, repo.settleCalls)
	assert.Contains(t, recorder.Body.String(), "pay-1")
}

func TestPaymentHandlerSettleRejectsOtherStudents(t *testing.T) {
	repo := &stubSettlementRepo{}
	svc := service.NewPaymentService(repo, nil, nil, nil, nil, nil)
	h := NewPaymentHandler(svc)

	c, recorder := newSettleContext(t, &models.JWTClaims{Email: "intruder@example.com"})
	h.Settle(c)

	assert.Equal(t, http.StatusForbidden, recorder.Code)
	assert.Equal(t, 0, repo.settleCalls)
}

func TestPaymentHandlerSettleRequiresClaims(t *testing.T) {
	repo := &stubSettlementRepo{}
	svc := service.NewPaymentService(repo, nil, nil, nil, nil, nil)
	h := NewPaymentHandler(svc)

	c, recorder := newSettleContext(t, nil)
	h.Settle(c)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.Equal(t, 0, repo.settleCalls)
}

func TestPaymentHandlerSettleRejectsBadPayload(t *testing.T) {
	repo := &stubSettlementRepo{}
	svc := service.NewPaymentService(repo, nil, nil, nil, nil, nil)
	h := NewPaymentHandler(svc)

	gin.SetMode(gin.TestMode)
	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = httptest.NewRequest(http.MethodPost, "/payments", bytes.NewBufferString("{"))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set(middleware.ContextUserKey, &models.JWTClaims{Email: "student@example.com"})

	h.Settle(c)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, 0, repo.settleCalls)
}
