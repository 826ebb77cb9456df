package async

import (
	"context"
	"sync"
)

// Token identifies one task started on a Flight. Zero is never issued.
type Token uint64

// Flight runs at most one task at a time. Starting a task cancels the
// previous one, and a superseded task's result is never delivered.
type Flight[T any] struct {
	mu     sync.Mutex
	poster Poster
	seq    uint64
	active Token
	cancel context.CancelFunc
}

// NewFlight creates a flight that delivers results through poster.
func NewFlight[T any](poster Poster) *Flight[T] {
	if poster == nil {
		poster = Inline
	}
	return &Flight[T]{poster: poster}
}

// Start cancels any task in progress and runs task on a new goroutine.
// When task returns, done is posted to the UI thread and called only if
// the task is still the current one.
func (f *Flight[T]) Start(parent context.Context, task func(ctx context.Context) (T, error), done func(T, error)) Token {
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)

	f.mu.Lock()
	if f.cancel != nil {
		f.cancel()
	}
	f.seq++
	tok := Token(f.seq)
	f.active = tok
	f.cancel = cancel
	f.mu.Unlock()

	go func() {
		v, err := task(ctx)
		f.poster.Post(func() {
			if !f.finish(tok) {
				return
			}
			done(v, err)
		})
	}()
	return tok
}

// finish clears tok if it is still current and reports whether it was.
func (f *Flight[T]) finish(tok Token) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.active != tok {
		return false
	}
	f.active = 0
	if f.cancel != nil {
		f.cancel()
		f.cancel = nil
	}
	return true
}

// Cancel cancels the current task, if any. Its result will be dropped.
func (f *Flight[T]) Cancel() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.cancel != nil {
		f.cancel()
		f.cancel = nil
	}
	f.active = 0
}

// Pending returns true while a task is outstanding.
func (f *Flight[T]) Pending() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.active != 0
}

// Current returns the token of the outstanding task, or zero.
func (f *Flight[T]) Current() Token {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.active
}
