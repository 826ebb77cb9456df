package snippet

import (
	"errors"
	"fmt"
)

// Marker errors.
var (
	// ErrUnterminated indicates a "${" without a closing brace.
	ErrUnterminated = errors.New("snippet: unterminated marker")

	// ErrBadOrdinal indicates a numeric header prefix outside 0..3.
	ErrBadOrdinal = errors.New("snippet: invalid ordinal")

	// ErrEmptyTitle indicates a marker with no title.
	ErrEmptyTitle = errors.New("snippet: empty title")
)

// MarkerError describes a marker that was copied through as literal text.
type MarkerError struct {
	Offset int    // byte offset of "${" in the template
	Raw    string // marker source text
	Err    error
}

// Error implements the error interface.
func (e *MarkerError) Error() string {
	return fmt.Sprintf("snippet: malformed marker %q at offset %d: %v", e.Raw, e.Offset, e.Err)
}

// Unwrap returns the underlying error.
func (e *MarkerError) Unwrap() error {
	return e.Err
}
