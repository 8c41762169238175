package errors

import "errors"

var (
	ErrNotFound = errors.New("resource not found")

	ErrUnknownType = errors.New("unknown resource type")
)
