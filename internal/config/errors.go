package config

import (
	"errors"
	"fmt"
)

// Configuration errors.
var (
	// ErrUnknownBackend indicates a suggest backend that is not recognized.
	ErrUnknownBackend = errors.New("config: unknown suggest backend")
	// ErrUnknownLevel indicates an unrecognized log level.
	ErrUnknownLevel = errors.New("config: unknown log level")
)

// ParseError indicates the configuration file is not valid TOML.
type ParseError struct {
	Path   string
	Line   int
	Column int
	Err    error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("config: parse error in %s at line %d, column %d: %v", e.Path, e.Line, e.Column, e.Err)
	}
	return fmt.Sprintf("config: parse error in %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// EnvError indicates an environment variable whose value has the wrong
// type.
type EnvError struct {
	Var   string
	Value string
	Err   error
}

// Error implements the error interface.
func (e *EnvError) Error() string {
	return fmt.Sprintf("config: %s=%q: %v", e.Var, e.Value, e.Err)
}

// Unwrap returns the underlying error.
func (e *EnvError) Unwrap() error {
	return e.Err
}

// ValidationError indicates a setting outside its allowed range.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Message)
}

// Unwrap returns the underlying error, if any.
func (e *ValidationError) Unwrap() error {
	return e.Err
}
