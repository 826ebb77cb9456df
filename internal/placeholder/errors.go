package placeholder

import "errors"

// Session errors.
var (
	// ErrNotActive is returned when an operation needs an active session.
	ErrNotActive = errors.New("placeholder: session not active")
)
