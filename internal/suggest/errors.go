package suggest

import (
	"errors"
	"fmt"
)

// Suggestion errors.
var (
	// ErrNoEndpoint indicates a client configured without an endpoint.
	ErrNoEndpoint = errors.New("suggest: no endpoint configured")

	// ErrRateLimited indicates a request skipped by the client-side limiter.
	ErrRateLimited = errors.New("suggest: rate limited")

	// ErrMalformedResponse indicates a response body that is not valid JSON.
	ErrMalformedResponse = errors.New("suggest: malformed response")

	// ErrEmptyCompletion indicates a chat model returned no choices.
	ErrEmptyCompletion = errors.New("suggest: model returned no choices")
)

// StatusError reports a non-2xx response from the service.
type StatusError struct {
	Code int
	Body string
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("suggest: service returned status %d", e.Code)
	}
	return fmt.Sprintf("suggest: service returned status %d: %s", e.Code, e.Body)
}
