package errors

import "errors"

var (
	ErrNotFound = errors.New("event not found")

	ErrLockHeld = errors.New("allocation lock is held by another booking")

	ErrInvalidTimeRange = errors.New("end time must be after start time")
)
