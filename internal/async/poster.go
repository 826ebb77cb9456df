package async

import (
	"context"
	"sync"
)

// Poster marshals fn onto the thread that owns editor state.
type Poster interface {
	Post(fn func())
}

// PosterFunc adapts a function to the Poster interface.
type PosterFunc func(fn func())

// Post calls f(fn).
func (f PosterFunc) Post(fn func()) { f(fn) }

// Inline runs posted functions immediately on the caller's goroutine.
// Only suitable when the caller already is the UI thread, as in tests.
var Inline Poster = PosterFunc(func(fn func()) { fn() })

// Loop is a Poster whose functions are executed by whoever drains it,
// normally the host's event loop.
type Loop struct {
	mu     sync.Mutex
	queue  chan func()
	closed bool
}

// NewLoop creates a loop with the given queue capacity.
func NewLoop(capacity int) *Loop {
	if capacity <= 0 {
		capacity = 64
	}
	return &Loop{queue: make(chan func(), capacity)}
}

// Post enqueues fn. It blocks while the queue is full and drops fn once
// the loop is closed.
func (l *Loop) Post(fn func()) {
	_ = l.TryPost(fn)
}

// TryPost is Post that reports ErrLoopClosed.
func (l *Loop) TryPost(fn func()) (err error) {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return ErrLoopClosed
	}
	l.mu.Unlock()

	defer func() {
		// Close may race with a blocked send.
		if recover() != nil {
			err = ErrLoopClosed
		}
	}()
	l.queue <- fn
	return nil
}

// C exposes the queue so a host can select on it alongside its own events.
// Received functions must be called on the UI thread.
func (l *Loop) C() <-chan func() {
	return l.queue
}

// Step runs the next posted function, blocking until one arrives or ctx is
// done. It returns false when ctx is done or the loop is closed.
func (l *Loop) Step(ctx context.Context) bool {
	select {
	case fn, ok := <-l.queue:
		if !ok {
			return false
		}
		fn()
		return true
	case <-ctx.Done():
		return false
	}
}

// RunPending runs every function already queued without blocking and
// returns how many ran.
func (l *Loop) RunPending() int {
	n := 0
	for {
		select {
		case fn, ok := <-l.queue:
			if !ok {
				return n
			}
			fn()
			n++
		default:
			return n
		}
	}
}

// Run processes posted functions until ctx is done or the loop is closed.
func (l *Loop) Run(ctx context.Context) {
	for l.Step(ctx) {
	}
}

// Close stops accepting new functions. Queued functions remain drainable.
func (l *Loop) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return
	}
	l.closed = true
	close(l.queue)
}
