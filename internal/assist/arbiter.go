package assist

import "github.com/dshills/reportassist/internal/logging"

// Mode names the subsystem that currently owns keyboard input.
type Mode uint8

const (
	// ModeNone means plain editing; the idle timer may run.
	ModeNone Mode = iota
	// ModePopup means the completion popup is open.
	ModePopup
	// ModeGhosts means ghost suggestions are showing.
	ModeGhosts
	// ModePlaceholder means a snippet placeholder session is active.
	ModePlaceholder

	modeCount
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeNone:
		return "none"
	case ModePopup:
		return "popup"
	case ModeGhosts:
		return "ghosts"
	case ModePlaceholder:
		return "placeholder"
	default:
		return "unknown"
	}
}

// Arbiter keeps the input modes mutually exclusive. Entering a mode runs
// the teardown of the mode it replaces.
type Arbiter struct {
	mode     Mode
	teardown [modeCount]func()
	logger   *logging.Logger
}

// NewArbiter creates an arbiter in ModeNone.
func NewArbiter(logger *logging.Logger) *Arbiter {
	return &Arbiter{logger: logging.OrNull(logger).WithComponent("arbiter")}
}

// OnTeardown sets the function that shuts mode m down when another mode
// replaces it.
func (a *Arbiter) OnTeardown(m Mode, fn func()) {
	if m < modeCount {
		a.teardown[m] = fn
	}
}

// Mode returns the active mode.
func (a *Arbiter) Mode() Mode {
	return a.mode
}

// Is reports whether m is the active mode.
func (a *Arbiter) Is(m Mode) bool {
	return a.mode == m
}

// Enter makes m the active mode, tearing down the previous one.
// The previous mode is already inactive while its teardown runs, so
// teardowns that call Leave do nothing.
func (a *Arbiter) Enter(m Mode) {
	if m == a.mode {
		return
	}
	prev := a.mode
	a.mode = ModeNone
	if prev != ModeNone {
		if fn := a.teardown[prev]; fn != nil {
			fn()
		}
	}
	a.mode = m
	a.logger.Debug("mode %s -> %s", prev, m)
}

// Leave returns to ModeNone if m is active. It reports whether it did;
// the mode's teardown is not run.
func (a *Arbiter) Leave(m Mode) bool {
	if a.mode != m || m == ModeNone {
		return false
	}
	a.mode = ModeNone
	a.logger.Debug("mode %s -> none", m)
	return true
}

// Reset tears down the active mode.
func (a *Arbiter) Reset() {
	a.Enter(ModeNone)
}
