package domain

import (
	"errors"
	"fmt"
)

var (
	ErrProfileNotFound      = errors.New("profile not found")
	ErrReadingNotFound      = errors.New("reading not found")
	ErrUserNotFound         = errors.New("user not found")
	ErrUserAlreadyExists    = errors.New("user already exists")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrInvalidToken         = errors.New("invalid token")
	ErrTokenRevoked         = errors.New("token revoked")
	ErrUnauthenticated      = errors.New("usuário não autenticado")
	ErrOnboardingIncomplete = errors.New("onboarding step incomplete")
	ErrDraftNotFound        = errors.New("onboarding draft not found")
)

// ValidationError is an input problem caught before any network call. Title
// and Message are user-facing.
type ValidationError struct {
	Title   string
	Message string
}

func NewValidationError(title, message string) *ValidationError {
	return &ValidationError{Title: title, Message: message}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Title, e.Message)
}

// IsValidation reports whether err wraps a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
