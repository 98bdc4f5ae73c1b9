package usecase

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrUserNotFound is returned when a user cannot be found by email or ID.
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailAlreadyExists is returned when attempting to create a user with an email that already exists.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrInvalidCredentials is returned when the email or password is wrong.
	// It does not say which, so callers cannot probe for registered emails.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrInvalidUser is returned when a user to be created is incomplete.
	ErrInvalidUser = errors.New("invalid user")
)

// ThrottledError is returned when too many failed logins were recorded for
// an email and client address.
type ThrottledError struct {
	RetryAfter time.Duration
}

func (e *ThrottledError) Error() string {
	return fmt.Sprintf("too many login attempts, retry after %s", e.RetryAfter)
}
