// ABOUTME: Error taxonomy shared by storage, API, and CLI layers.
// ABOUTME: Sentinels for lookup/auth/uniqueness failures plus ValidationError.
package models

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a user or setting lookup matches nothing.
	ErrNotFound = errors.New("not found")

	// ErrDuplicate is returned when a user name or secret is already taken.
	ErrDuplicate = errors.New("already exists")

	// ErrUnauthorized is returned when a name/secret pair does not match.
	// Unknown names and wrong secrets both produce it.
	ErrUnauthorized = errors.New("unauthorized")
)

// ValidationError reports malformed or out-of-range input.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Invalid builds a ValidationError for field.
func Invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err wraps a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
