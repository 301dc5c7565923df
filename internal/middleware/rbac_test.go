package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/Abdullah149081/summer-camp-server/internal/models"
)

type stubRoleSource struct {
	roles map[string]models.UserRole
}

func (s *stubRoleSource) FindRoleByEmail(_ context.Context, email string) (models.UserRole, error) {
	if role, ok := s.roles[email]; ok {
		return role, nil
	}
	return models.RoleNone, nil
}

func withClaims(email string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ContextUserKey, &models.JWTClaims{Email: email})
		c.Next()
	}
}

func okHandler(c *gin.Context) {
	c.Status(http.StatusOK)
}

func TestRequireRoleAllowsMatchingRole(t *testing.T) {
	gin.SetMode(gin.TestMode)
	roles := &stubRoleSource{roles: map[string]models.UserRole{"admin@example.com": models.RoleAdmin}}
	r := gin.New()
	r.GET("/admin", withClaims("admin@example.com"), RequireRole(roles, models.RoleAdmin), okHandler)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireRoleRejectsWrongRole(t *testing.T) {
	gin.SetMode(gin.TestMode)
	roles := &stubRoleSource{roles: map[string]models.UserRole{"coach@example.com": models.RoleInstructor}}
	r := gin.New()
	r.GET("/admin", withClaims("coach@example.com"), RequireRole(roles, models.RoleAdmin), okHandler)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireRoleRejectsUnknownUser(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/admin", withClaims("nobody@example.com"), RequireRole(&stubRoleSource{}, models.RoleAdmin), okHandler)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireRoleRejectsMissingClaims(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/admin", RequireRole(&stubRoleSource{}, models.RoleAdmin), okHandler)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireSelfEmailMatches(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me/:email", withClaims("student@example.com"), RequireSelfEmail("email"), okHandler)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me/student@example.com", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireSelfEmailRejectsOtherStudents(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me/:email", withClaims("student@example.com"), RequireSelfEmail("email"), okHandler)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me/other@example.com", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireSelfQueryEmail(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/selected", withClaims("student@example.com"), RequireSelfQueryEmail("email"), okHandler)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/selected?email=student@example.com", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/selected?email=other@example.com", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/selected", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)
}
