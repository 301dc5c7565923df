package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Abdullah149081/summer-camp-server/internal/middleware"
	"github.com/Abdullah149081/summer-camp-server/internal/service"
	appErrors "github.com/Abdullah149081/summer-camp-server/pkg/errors"
	"github.com/Abdullah149081/summer-camp-server/pkg/response"
)

// SelectionHandler exposes pending-selection endpoints.
type SelectionHandler struct {
	service *service.SelectionService
}

// NewSelectionHandler constructs a selection handler.
func NewSelectionHandler(svc *service.SelectionService) *SelectionHandler {
	return &SelectionHandler{service: svc}
}

// Create records a selection; the payload email must match the token.
func (h *SelectionHandler) Create(c *gin.Context) {
	var req service.CreateSelectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	claims := middleware.ClaimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	if req.Email != claims.Email {
		response.Error(c, appErrors.Clone(appErrors.ErrForbidden, "cannot select a class for another student"))
		return
	}

	selection, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, selection)
}

// Get returns one selection by id.
func (h *SelectionHandler) Get(c *gin.Context) {
	selection, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, selection, nil)
}

// List returns the authenticated student's selections.
func (h *SelectionHandler) List(c *gin.Context) {
	selections, err := h.service.ListByEmail(c.Request.Context(), c.Query("email"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, selections, nil)
}

// Delete removes a selection owned by the requester.
func (h *SelectionHandler) Delete(c *gin.Context) {
	claims := middleware.ClaimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	if err := h.service.Delete(c.Request.Context(), c.Param("id"), claims.Email); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
