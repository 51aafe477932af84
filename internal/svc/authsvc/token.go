package authsvc

import (
	"crypto/rsa"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mkrupp/messagely/internal/domain"
)

const tokenIssuer = "messagely"

// TokenIssuer signs and validates bearer tokens carrying a username.
// Tokens are JWTs signed with RSASSA-PSS (PS256).
type TokenIssuer struct {
	key      *rsa.PrivateKey
	duration time.Duration
	now      func() time.Time
}

// NewTokenIssuer creates a TokenIssuer signing with key. Tokens expire after duration.
func NewTokenIssuer(key *rsa.PrivateKey, duration time.Duration) *TokenIssuer {
	return &TokenIssuer{
		key:      key,
		duration: duration,
		now:      time.Now,
	}
}

// Issue returns a signed token for username.
func (ti *TokenIssuer) Issue(username string) (string, domain.AuthToken, error) {
	now := ti.now()

	claims := domain.AuthToken{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ti.duration)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodPS256, &claims).SignedString(ti.key)
	if err != nil {
		return "", domain.AuthToken{}, errors.Join(domain.ErrTokenGeneration, fmt.Errorf("sign token: %w", err))
	}

	return signed, claims, nil
}

// Validate verifies the token signature and expiry and returns its claims.
// Every failure wraps domain.ErrInvalidAuthToken.
func (ti *TokenIssuer) Validate(tokenString string) (domain.AuthToken, error) {
	var claims domain.AuthToken

	token, err := jwt.ParseWithClaims(tokenString, &claims,
		func(*jwt.Token) (any, error) {
			return &ti.key.PublicKey, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodPS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(ti.now),
	)
	if err != nil {
		return domain.AuthToken{}, errors.Join(domain.ErrInvalidAuthToken, fmt.Errorf("parse token: %w", err))
	}

	if !token.Valid || claims.Username == "" {
		return domain.AuthToken{}, domain.ErrInvalidAuthToken
	}

	return claims, nil
}
