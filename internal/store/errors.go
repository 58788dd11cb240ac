package store

import (
	"errors"

	"tasktracker/internal/task"
)

var (
	ErrNotFound         = errors.New("task not found")
	ErrAlreadyCompleted = errors.New("task is already completed")
	ErrInvalidID        = errors.New("invalid task id")
	ErrEmptyTitle       = task.ErrEmptyTitle
	ErrInvalidDate      = task.ErrInvalidDate
)

// Reason returns the short name of a user-facing failure, or "" when err
// is not one of the store's named failures.
func Reason(err error) string {
	switch {
	case errors.Is(err, ErrEmptyTitle):
		return "empty-title"
	case errors.Is(err, ErrNotFound):
		return "not-found"
	case errors.Is(err, ErrAlreadyCompleted):
		return "already-completed"
	case errors.Is(err, ErrInvalidDate):
		return "invalid-date"
	case errors.Is(err, ErrInvalidID):
		return "invalid-id-format"
	default:
		return ""
	}
}

// IsUserError reports whether err is caused by the caller's input rather
// than by storage.
func IsUserError(err error) bool {
	return Reason(err) != ""
}
