package authsvc

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkrupp/messagely/internal/domain"
)

func TestTokenIssuer_Expiry(t *testing.T) {
	t.Parallel()

	key, err := GeneratePrivateKey(DefaultKeySize)
	require.NoError(t, err)

	now := time.Date(2026, 5, 6, 7, 8, 9, 0, time.UTC)
	issuer := NewTokenIssuer(key, time.Hour)
	issuer.now = func() time.Time { return now }

	token, claims, err := issuer.Issue("alice")
	require.NoError(t, err)
	assert.True(t, now.Add(time.Hour).Equal(claims.ExpiresAt.Time))
	assert.True(t, now.Equal(claims.IssuedAt.Time))

	now = now.Add(59 * time.Minute)

	_, err = issuer.Validate(token)
	require.NoError(t, err)

	now = now.Add(2 * time.Minute)

	_, err = issuer.Validate(token)
	require.ErrorIs(t, err, domain.ErrInvalidAuthToken)
	require.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestTokenIssuer_RejectsOtherAlgorithms(t *testing.T) {
	t.Parallel()

	key, err := GeneratePrivateKey(DefaultKeySize)
	require.NoError(t, err)

	issuer := NewTokenIssuer(key, time.Hour)

	claims := domain.AuthToken{
		Username: "alice",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}

	rs256, err := jwt.NewWithClaims(jwt.SigningMethodRS256, &claims).SignedString(key)
	require.NoError(t, err)

	_, err = issuer.Validate(rs256)
	require.ErrorIs(t, err, domain.ErrInvalidAuthToken)
}

func TestTokenIssuer_RequiresUsername(t *testing.T) {
	t.Parallel()

	key, err := GeneratePrivateKey(DefaultKeySize)
	require.NoError(t, err)

	issuer := NewTokenIssuer(key, time.Hour)

	token, _, err := issuer.Issue("")
	require.NoError(t, err)

	_, err = issuer.Validate(token)
	require.ErrorIs(t, err, domain.ErrInvalidAuthToken)
}
