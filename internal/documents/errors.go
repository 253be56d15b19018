package documents

import "errors"

var (
	// ErrNotFound signals an unknown document id.
	ErrNotFound = errors.New("document not found")
	// ErrInvalidInput signals an upload rejected by validation before
	// any record was created.
	ErrInvalidInput = errors.New("invalid input")
)
