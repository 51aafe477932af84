package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by repositories and services that callers are
// expected to branch on wraps exactly one of these; check with errors.Is.
var (
	// ErrInvalidInput marks missing or malformed input.
	ErrInvalidInput = errors.New("invalid input")
	// ErrConflict marks a violated uniqueness constraint.
	ErrConflict = errors.New("conflict")
	// ErrNotFound marks a lookup that matched no rows.
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized marks a requester that lacks permission for the operation.
	ErrUnauthorized = errors.New("unauthorized")
)

// ErrAccessDenied is returned when the requester may not see or change a resource.
var ErrAccessDenied = kindError(ErrUnauthorized, "access denied")

func kindError(kind error, msg string) error {
	return fmt.Errorf("%w: %s", kind, msg)
}
