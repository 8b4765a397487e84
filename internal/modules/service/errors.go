package service

import "errors"

// Domain outcomes the handlers map to status codes. Conditional-write
// failures from the store never escape this package as raw errors; they are
// translated here.
var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("already exists")
	ErrGone     = errors.New("gone")
)

// ValidationError rejects bad input shape or bounds before any store call.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

func validationErr(reason string) error {
	return &ValidationError{Reason: reason}
}
