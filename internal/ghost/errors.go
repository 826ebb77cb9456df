package ghost

import "errors"

// Ghost errors.
var (
	// ErrNoSelection indicates an accept with nothing selected.
	ErrNoSelection = errors.New("ghost: no suggestion selected")
)
