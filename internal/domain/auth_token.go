package domain

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrNoAuthToken is returned when an authentication token is required but not provided.
	ErrNoAuthToken = kindError(ErrUnauthorized, "no auth token")
	// ErrInvalidAuthToken is returned when a token's signature is invalid or it has expired.
	ErrInvalidAuthToken = kindError(ErrUnauthorized, "invalid auth token")
	// ErrTokenGeneration is returned when a token cannot be signed.
	ErrTokenGeneration = errors.New("token generation failed")
)

// AuthToken holds the claims of a signed bearer token.
type AuthToken struct {
	Username string `json:"username"`

	jwt.RegisteredClaims
}

// AuthTokenResponse represents a response containing an authentication token.
type AuthTokenResponse struct {
	Token string `json:"token"`
}
