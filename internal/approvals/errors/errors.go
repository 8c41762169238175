package errors

import "errors"

var (
	ErrNotFound = errors.New("request not found")

	// ErrAlreadyReviewed is returned when a review targets a request that
	// has already left the pending state.
	ErrAlreadyReviewed = errors.New("request has already been reviewed")
)
