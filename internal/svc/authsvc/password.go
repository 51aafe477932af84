package authsvc

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/mkrupp/messagely/internal/domain"
)

// PasswordHasher is a one-way, salted password hash.
type PasswordHasher interface {
	// Hash returns an opaque digest of password.
	Hash(password string) ([]byte, error)

	// Verify reports whether password matches the digest.
	Verify(password string, hash []byte) bool
}

// BcryptHasher implements PasswordHasher with bcrypt.
type BcryptHasher struct {
	// Cost is the bcrypt work factor
	Cost int
}

var _ PasswordHasher = BcryptHasher{}

// Hash implements PasswordHasher.Hash.
func (h BcryptHasher) Hash(password string) ([]byte, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.Cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			err = errors.Join(domain.ErrInvalidInput, err)
		}

		return nil, fmt.Errorf("bcrypt: %w", err)
	}

	return hash, nil
}

// Verify implements PasswordHasher.Verify.
func (h BcryptHasher) Verify(password string, hash []byte) bool {
	return bcrypt.CompareHashAndPassword(hash, []byte(password)) == nil
}
