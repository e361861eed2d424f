package service

import (
	"errors"

	"github.com/lib/pq"
)

// Typed errors returned by the core operations. Handlers translate these to
// HTTP status codes; callers test with errors.Is.
var (
	ErrNotFound          = errors.New("not found")
	ErrForbidden         = errors.New("forbidden")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrMissingField      = errors.New("missing required field")
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrInvalidReference  = errors.New("related record does not exist")
	ErrDuplicateFeedback = errors.New("feedback already submitted for this complaint")
	ErrDuplicateEmail    = errors.New("email already registered")
	ErrConflict          = errors.New("complaint was modified concurrently")

	// ErrNotificationDispatch is a non-fatal warning: the triggering state
	// change is already committed and must not be rolled back.
	ErrNotificationDispatch = errors.New("notification dispatch failed")
)

// isUniqueViolation reports whether err is a PostgreSQL unique constraint
// violation (code 23505), used to map index hits on feedback and user email
// to their typed duplicates.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}
