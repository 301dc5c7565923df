package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// TokenRequest carries the identity payload the client submits after signing
// in with the upstream identity provider.
type TokenRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name"`
	PhotoURL string `json:"photoURL"`
}

// TokenResponse returns the signed access token.
type TokenResponse struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expires_in"`
}

// JWTClaims represents the JWT payload for access tokens. Email is the
// identity every downstream guard keys on.
type JWTClaims struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
	jwt.RegisteredClaims
}
