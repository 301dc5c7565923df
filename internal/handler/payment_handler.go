package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Abdullah149081/summer-camp-server/internal/middleware"
	"github.com/Abdullah149081/summer-camp-server/internal/service"
	appErrors "github.com/Abdullah149081/summer-camp-server/pkg/errors"
	"github.com/Abdullah149081/summer-camp-server/pkg/response"
)

// PaymentHandler exposes payment intents, settlement and history.
type PaymentHandler struct {
	service *service.PaymentService
}

// NewPaymentHandler constructs a payment handler.
func NewPaymentHandler(svc *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{service: svc}
}

// CreateIntent godoc
// @Summary Create a payment intent
// @Tags Payments
// @Accept json
// @Produce json
// @Param payload body service.CreateIntentRequest true "Price payload"
// @Success 200 {object} response.Envelope
// @Router /create-payment-intent [post]
func (h *PaymentHandler) CreateIntent(c *gin.Context) {
	var req service.CreateIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	intent, err := h.service.CreateIntent(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, intent, nil)
}

// Settle godoc
// @Summary Settle a completed payment into an enrollment
// @Tags Payments
// @Accept json
// @Produce json
// @Param payload body service.SettleRequest true "Payment and enrollment payload"
// @Success 200 {object} response.Envelope
// @Router /payments [post]
func (h *PaymentHandler) Settle(c *gin.Context) {
	var req service.SettleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	claims := middleware.ClaimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	if req.PaymentHistory.Email != claims.Email {
		response.Error(c, appErrors.Clone(appErrors.ErrForbidden, "cannot settle a payment for another student"))
		return
	}

	result, err := h.service.Settle(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// History returns the student's payment records, newest first.
func (h *PaymentHandler) History(c *gin.Context) {
	payments, err := h.service.History(c.Request.Context(), c.Param("email"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, payments, nil)
}

// Enrolled returns the student's confirmed enrollments.
func (h *PaymentHandler) Enrolled(c *gin.Context) {
	enrolled, err := h.service.Enrolled(c.Request.Context(), c.Param("email"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, enrolled, nil)
}

// ExportHistory streams the payment history as a PDF receipt.
func (h *PaymentHandler) ExportHistory(c *gin.Context) {
	email := c.Param("email")
	pdf, err := h.service.ExportHistoryPDF(c.Request.Context(), email)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "payments-"+email+".pdf"))
	c.Data(http.StatusOK, "application/pdf", pdf)
}
