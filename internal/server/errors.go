package server

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a referenced poll or option does not exist.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateVote is returned when a voter has already voted on a poll.
	ErrDuplicateVote = errors.New("already voted on this poll")
	// ErrLoginRequired is returned when an anonymous voter hits a poll that
	// requires an authenticated identity.
	ErrLoginRequired = errors.New("login required")
	// ErrForbidden is returned when the caller is not allowed to act on the
	// poll (non-owner edit, delete, or private results access).
	ErrForbidden = errors.New("forbidden")
)

// ValidationError reports malformed input. It is surfaced to the user
// directly and never retried.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func validationErr(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
