package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Abdullah149081/summer-camp-server/internal/models"
	"github.com/Abdullah149081/summer-camp-server/internal/service"
	appErrors "github.com/Abdullah149081/summer-camp-server/pkg/errors"
	"github.com/Abdullah149081/summer-camp-server/pkg/response"
)

// AuthHandler exposes token issuance.
type AuthHandler struct {
	service *service.AuthService
}

// NewAuthHandler constructs an auth handler.
func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{service: svc}
}

// IssueToken godoc
// @Summary Issue an access token for a signed-in identity
// @Tags Auth
// @Accept json
// @Produce json
// @Param payload body models.TokenRequest true "Identity payload"
// @Success 200 {object} response.Envelope
// @Router /jwt [post]
func (h *AuthHandler) IssueToken(c *gin.Context) {
	var req models.TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	token, err := h.service.IssueToken(req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, token, nil)
}
