package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Abdullah149081/summer-camp-server/internal/models"
	"github.com/Abdullah149081/summer-camp-server/internal/service"
	appErrors "github.com/Abdullah149081/summer-camp-server/pkg/errors"
	"github.com/Abdullah149081/summer-camp-server/pkg/response"
)

// UserHandler exposes user and role endpoints.
type UserHandler struct {
	service *service.UserService
}

// NewUserHandler constructs a user handler.
func NewUserHandler(svc *service.UserService) *UserHandler {
	return &UserHandler{service: svc}
}

// List godoc
// @Summary List all users
// @Tags Users
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /users [get]
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, users, nil)
}

// Create godoc
// @Summary Register a user on first sign-in
// @Tags Users
// @Accept json
// @Produce json
// @Param payload body service.CreateUserRequest true "User payload"
// @Success 200 {object} response.Envelope
// @Success 201 {object} response.Envelope
// @Router /users [post]
func (h *UserHandler) Create(c *gin.Context) {
	var req service.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	user, created, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	if !created {
		response.Message(c, http.StatusOK, "user already exists")
		return
	}
	response.Created(c, user)
}

// RoleFlags godoc
// @Summary Role flags for an email
// @Tags Users
// @Produce json
// @Param email path string true "User email"
// @Success 200 {object} response.Envelope
// @Router /users/role/{email} [get]
func (h *UserHandler) RoleFlags(c *gin.Context) {
	flags, err := h.service.RoleFlags(c.Request.Context(), c.Param("email"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, flags, nil)
}

// Instructors lists every instructor.
func (h *UserHandler) Instructors(c *gin.Context) {
	instructors, err := h.service.ListInstructors(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, instructors, nil)
}

// TopInstructors lists the most popular instructors.
func (h *UserHandler) TopInstructors(c *gin.Context) {
	instructors, err := h.service.TopInstructors(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, instructors, nil)
}

// PromoteAdmin grants the admin role by record id.
func (h *UserHandler) PromoteAdmin(c *gin.Context) {
	h.promote(c, models.RoleAdmin)
}

// PromoteInstructor grants the instructor role by record id.
func (h *UserHandler) PromoteInstructor(c *gin.Context) {
	h.promote(c, models.RoleInstructor)
}

func (h *UserHandler) promote(c *gin.Context, role models.UserRole) {
	user, err := h.service.Promote(c.Request.Context(), c.Param("id"), role)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, user, nil)
}
