package access

import "errors"

// ErrForbidden matches every ForbiddenError via errors.Is.
var ErrForbidden = errors.New("forbidden")

// ForbiddenError is returned when the actor's role lacks the capability an
// operation requires. Message is safe to show to the caller.
type ForbiddenError struct {
	Message string
}

// Deny builds a ForbiddenError with the given caller-facing message.
func Deny(message string) error {
	return &ForbiddenError{Message: message}
}

func (e *ForbiddenError) Error() string {
	return e.Message
}

// Is lets errors.Is(err, ErrForbidden) match any ForbiddenError.
func (e *ForbiddenError) Is(target error) bool {
	return target == ErrForbidden
}
