package content

import "errors"

var (
	// ErrInvalidID is returned when an identifier is not a well-formed ObjectID hex string.
	ErrInvalidID = errors.New("invalid id")
	// ErrNotFound is returned when no document matches a lookup.
	ErrNotFound = errors.New("not found")
)
