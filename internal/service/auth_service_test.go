package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Abdullah149081/summer-camp-server/internal/models"
	appErrors "github.com/Abdullah149081/summer-camp-server/pkg/errors"
)

func newAuthService(expiration time.Duration) *AuthService {
	return NewAuthService(nil, nil, AuthConfig{
		Secret:     "test-secret",
		Expiration: expiration,
		Issuer:     "summer-camp-server",
	})
}

func TestAuthServiceIssueAndValidate(t *testing.T) {
	svc := newAuthService(time.Hour)

	resp, err := svc.IssueToken(models.TokenRequest{Email: "student@example.com", Name: "Student"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, int64(3600), resp.ExpiresIn)

	claims, err := svc.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "student@example.com", claims.Email)
	assert.Equal(t, "Student", claims.Name)
	assert.Equal(t, "summer-camp-server", claims.Issuer)
}

func TestAuthServiceIssueRequiresEmail(t *testing.T) {
	svc := newAuthService(time.Hour)

	_, err := svc.IssueToken(models.TokenRequest{Name: "No Email"})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}

func TestAuthServiceRejectsExpiredToken(t *testing.T) {
	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, &models.JWTClaims{
		Email: "student@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		},
	})
	signed, err := expired.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	svc := newAuthService(time.Hour)
	_, err = svc.ValidateToken(signed)
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErr.Code)
}

func TestAuthServiceRejectsMissingEmailClaim(t *testing.T) {
	anonymous := jwt.NewWithClaims(jwt.SigningMethodHS256, &models.JWTClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	signed, err := anonymous.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	svc := newAuthService(time.Hour)
	_, err = svc.ValidateToken(signed)
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErr.Code)
}

func TestAuthServiceRejectsWrongSecret(t *testing.T) {
	svc := newAuthService(time.Hour)
	resp, err := svc.IssueToken(models.TokenRequest{Email: "student@example.com"})
	require.NoError(t, err)

	other := NewAuthService(nil, nil, AuthConfig{Secret: "different-secret", Expiration: time.Hour})
	_, err = other.ValidateToken(resp.Token)
	require.Error(t, err)
}

func TestAuthServiceRejectsGarbage(t *testing.T) {
	svc := newAuthService(time.Hour)
	_, err := svc.ValidateToken("not-a-token")
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErr.Code)
}
