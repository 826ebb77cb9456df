package async

import "errors"

// Errors returned by the loop.
var (
	// ErrLoopClosed is returned when posting to a closed loop.
	ErrLoopClosed = errors.New("async: loop closed")
)
