package async

import (
	"sort"
	"sync"
	"time"
)

// Timer is a scheduled callback that can be stopped.
type Timer interface {
	// Stop prevents the callback from running. It returns false if the
	// callback already ran or was stopped.
	Stop() bool
}

// Scheduler runs callbacks after a delay.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Timer
}

// RealScheduler schedules with time.AfterFunc. Callbacks run on their own
// goroutine.
type RealScheduler struct{}

// AfterFunc implements Scheduler.
func (RealScheduler) AfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}

// ManualScheduler is a Scheduler driven by an explicit clock. Callbacks run
// synchronously inside Advance, in due order.
type ManualScheduler struct {
	mu     sync.Mutex
	now    time.Duration
	nextID uint64
	timers []*manualTimer
}

type manualTimer struct {
	s     *ManualScheduler
	id    uint64
	at    time.Duration
	fn    func()
	fired bool
	dead  bool
}

// NewManualScheduler creates a manual scheduler at time zero.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

// AfterFunc implements Scheduler.
func (s *ManualScheduler) AfterFunc(d time.Duration, fn func()) Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	t := &manualTimer{s: s, id: s.nextID, at: s.now + d, fn: fn}
	s.timers = append(s.timers, t)
	return t
}

// Now returns the elapsed manual time.
func (s *ManualScheduler) Now() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

// Pending returns the number of timers that have not fired or been stopped.
func (s *ManualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, t := range s.timers {
		if !t.fired && !t.dead {
			n++
		}
	}
	return n
}

// Advance moves the clock forward by d, running every callback that falls
// due. Callbacks scheduled by other callbacks run too if they fall due
// within the window.
func (s *ManualScheduler) Advance(d time.Duration) {
	s.mu.Lock()
	target := s.now + d
	s.mu.Unlock()

	for {
		s.mu.Lock()
		due := s.nextDueLocked(target)
		if due == nil {
			s.now = target
			s.compactLocked()
			s.mu.Unlock()
			return
		}
		due.fired = true
		s.now = due.at
		s.mu.Unlock()
		due.fn()
	}
}

func (s *ManualScheduler) nextDueLocked(target time.Duration) *manualTimer {
	var live []*manualTimer
	for _, t := range s.timers {
		if !t.fired && !t.dead && t.at <= target {
			live = append(live, t)
		}
	}
	if len(live) == 0 {
		return nil
	}
	sort.Slice(live, func(i, j int) bool {
		if live[i].at != live[j].at {
			return live[i].at < live[j].at
		}
		return live[i].id < live[j].id
	})
	return live[0]
}

func (s *ManualScheduler) compactLocked() {
	kept := s.timers[:0]
	for _, t := range s.timers {
		if !t.fired && !t.dead {
			kept = append(kept, t)
		}
	}
	s.timers = kept
}

func (t *manualTimer) Stop() bool {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	if t.fired || t.dead {
		return false
	}
	t.dead = true
	return true
}
