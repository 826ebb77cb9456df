package document

import "errors"

// Errors returned by document operations.
var (
	// ErrOffsetOutOfRange indicates an offset is outside the document.
	ErrOffsetOutOfRange = errors.New("document: offset out of range")

	// ErrRangeInvalid indicates an invalid range (e.g., end < start).
	ErrRangeInvalid = errors.New("document: invalid range")

	// ErrLineOutOfRange indicates a line number outside the document.
	ErrLineOutOfRange = errors.New("document: line out of range")
)
