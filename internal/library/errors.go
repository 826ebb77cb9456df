package library

import (
	"errors"
	"fmt"
)

// Library errors.
var (
	// ErrWatcherClosed is returned by a closed watcher.
	ErrWatcherClosed = errors.New("library: watcher closed")
)

// ParseError indicates the library file is not valid TOML.
type ParseError struct {
	Path string
	Err  error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("library: parsing %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// ValidationError indicates an entry that cannot be used.
type ValidationError struct {
	Section string
	Index   int
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("library: %s[%d]: %s", e.Section, e.Index, e.Message)
}
