package completion

import "errors"

// Completion errors.
var (
	// ErrNoCompletionsFunc indicates a script that does not define the
	// completions function.
	ErrNoCompletionsFunc = errors.New("completion: script does not define completions")

	// ErrSourceClosed is returned by a closed source.
	ErrSourceClosed = errors.New("completion: source closed")
)
