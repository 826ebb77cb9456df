package assist

import "errors"

// ErrClosed is returned by operations on a closed engine.
var ErrClosed = errors.New("assist: engine closed")
