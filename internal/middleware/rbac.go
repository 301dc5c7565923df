package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/Abdullah149081/summer-camp-server/internal/models"
	appErrors "github.com/Abdullah149081/summer-camp-server/pkg/errors"
	"github.com/Abdullah149081/summer-camp-server/pkg/response"
)

// RoleSource resolves the stored role for an email. Guards consult the store
// rather than a role claim so promotions apply without re-login.
type RoleSource interface {
	FindRoleByEmail(ctx context.Context, email string) (models.UserRole, error)
}

// RequireRole allows the request only when the authenticated user holds the
// given role. Pure read, fails closed before any handler runs.
func RequireRole(roles RoleSource, required models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := ClaimsFromContext(c)
		if claims == nil {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}

		role, err := roles.FindRoleByEmail(c.Request.Context(), claims.Email)
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}
		if role != required {
			response.Error(c, appErrors.ErrForbidden)
			c.Abort()
			return
		}

		c.Next()
	}
}

// RequireSelfEmail enforces that the :param email equals the token's email,
// protecting endpoints that return one student's private data.
func RequireSelfEmail(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		requireEmailMatch(c, c.Param(param))
	}
}

// RequireSelfQueryEmail is the query-string variant of RequireSelfEmail.
func RequireSelfQueryEmail(query string) gin.HandlerFunc {
	return func(c *gin.Context) {
		requireEmailMatch(c, c.Query(query))
	}
}

func requireEmailMatch(c *gin.Context, email string) {
	claims := ClaimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		c.Abort()
		return
	}
	if email == "" || email != claims.Email {
		response.Error(c, appErrors.ErrForbidden)
		c.Abort()
		return
	}
	c.Next()
}
