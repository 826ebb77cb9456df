package async

import (
	"sync"
	"time"
)

// IdleTimer fires a callback on the UI thread after a quiet period.
//
// Resets coalesce: however many times Reset is called, at most one fire is
// pending and it happens delay after the last Reset. A fire that was
// already in flight when Reset or Stop ran is discarded on the UI thread
// by its sequence number.
type IdleTimer struct {
	mu       sync.Mutex
	delay    time.Duration
	sched    Scheduler
	poster   Poster
	timer    Timer
	pending  bool
	seq      uint64 // detects stale fires
	callback func()
}

// NewIdleTimer creates a stopped idle timer.
func NewIdleTimer(delay time.Duration, sched Scheduler, poster Poster, callback func()) *IdleTimer {
	if sched == nil {
		sched = RealScheduler{}
	}
	if poster == nil {
		poster = Inline
	}
	return &IdleTimer{
		delay:    delay,
		sched:    sched,
		poster:   poster,
		callback: callback,
	}
}

// Reset (re)starts the quiet period.
func (t *IdleTimer) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.pending = true
	t.seq++
	currentSeq := t.seq

	if t.timer != nil {
		t.timer.Stop()
	}

	t.timer = t.sched.AfterFunc(t.delay, func() {
		t.poster.Post(func() { t.fire(currentSeq) })
	})
}

func (t *IdleTimer) fire(seq uint64) {
	t.mu.Lock()
	if !t.pending || t.seq != seq || t.callback == nil {
		t.mu.Unlock()
		return
	}
	t.pending = false
	t.timer = nil
	cb := t.callback
	t.mu.Unlock()
	cb()
}

// Stop cancels any pending fire. A stopped timer stays stopped until the
// next Reset.
func (t *IdleTimer) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.seq++
	t.pending = false
}

// Pending returns true while a fire is scheduled.
func (t *IdleTimer) Pending() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.pending
}

// SetDelay changes the quiet period used by subsequent Resets.
func (t *IdleTimer) SetDelay(d time.Duration) {
	t.mu.Lock()
	t.delay = d
	t.mu.Unlock()
}

// Delay returns the quiet period.
func (t *IdleTimer) Delay() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.delay
}
