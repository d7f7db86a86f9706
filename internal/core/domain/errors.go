package domain

import "errors"

var (
	// ErrNotFound: a lookup by identifier found nothing.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput: malformed filter or mutation parameters.
	ErrInvalidInput = errors.New("invalid input")
)
