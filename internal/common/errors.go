// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
)

// Domain error kinds. Handlers map these to responses; storage and engine
// code wraps them with context via fmt.Errorf and %w.
var (
	// ErrUnauthorized means no identity was resolved, or the caller tried to
	// touch an entity owned by another user.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrNotFound means a referenced entity does not exist for the caller.
	ErrNotFound = errors.New("not found")
	// ErrInvalidState means a lifecycle transition was attempted from a state
	// that does not permit it.
	ErrInvalidState = errors.New("invalid state")
	// ErrConstraintViolation means a storage uniqueness constraint fired.
	ErrConstraintViolation = errors.New("constraint violation")
	// ErrDuplicateEntry means an identical row already exists.
	ErrDuplicateEntry = errors.New("duplicate entry")
	// ErrInvalidCredentials means email/password verification failed.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Configuration errors.
	ErrMissingConfig = errors.New("missing configuration")
	ErrInvalidConfig = errors.New("invalid configuration")
)

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}
