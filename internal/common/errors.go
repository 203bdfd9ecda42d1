// Package common defines shared constants and sentinel errors used across
// client and server layers of Onepass. Callers should use errors.Is to
// match these values.
package common

import (
	"errors"
	"fmt"
)

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal = errors.New("internal error")

	// Input errors.
	ErrUsernameInvalid = errors.New("UsernameInvalid")
	ErrMissingField    = errors.New("MissingField")

	// Identity errors.
	ErrUsernameTaken      = errors.New("UsernameTaken")
	ErrUserNotFound       = errors.New("UserNotFound")
	ErrAccessUnauthorized = errors.New("AccessUnauthorized")

	// Vault errors.
	ErrEntryNotFound = errors.New("EntryNotFound")

	// ErrIntegrity reports stored ciphertext that failed authentication.
	ErrIntegrity = errors.New("IntegrityFailure")

	// Session lifecycle errors.
	ErrTokenInvalid = errors.New("TokenInvalid")
	ErrTokenExpired = errors.New("TokenExpired")
)

// MissingFieldError names the required field that was absent.
// errors.Is(err, ErrMissingField) holds for every MissingFieldError.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMissingField.Error(), e.Field)
}

func (e *MissingFieldError) Is(target error) bool {
	return target == ErrMissingField
}

// MissingField is a shorthand for &MissingFieldError{Field: field}.
func MissingField(field string) error {
	return &MissingFieldError{Field: field}
}
