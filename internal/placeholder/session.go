package placeholder

import (
	"unicode"

	"github.com/google/uuid"

	"github.com/dshills/reportassist/internal/engine/document"
	"github.com/dshills/reportassist/internal/input/key"
	"github.com/dshills/reportassist/internal/logging"
	"github.com/dshills/reportassist/internal/snippet"
)

// Editor is the text surface a session edits. Replace must report the
// change back through ApplyChange before returning.
type Editor interface {
	Replace(start, end int64, text string) error
	Select(anchor, head int64)
}

// ExitReason says why a session ended.
type ExitReason uint8

const (
	// ExitCompleted means the last placeholder was committed.
	ExitCompleted ExitReason = iota
	// ExitEscape means the user pressed Escape.
	ExitEscape
	// ExitExternal means the host deactivated the session.
	ExitExternal
)

// String returns the reason name.
func (r ExitReason) String() string {
	switch r {
	case ExitCompleted:
		return "completed"
	case ExitEscape:
		return "escape"
	case ExitExternal:
		return "external"
	default:
		return "unknown"
	}
}

// Span is an absolute placeholder range for display.
type Span struct {
	Index   int
	Start   int64
	Length  int64
	Current bool
}

// Session walks the placeholders of one expansion.
type Session struct {
	editor Editor
	logger *logging.Logger
	onExit func(ExitReason)

	id           string
	active       bool
	insertOffset int64
	fields       []snippet.Placeholder
	spans        []span
	current      int
	chooser      *Chooser
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the session's logger.
func WithLogger(l *logging.Logger) Option {
	return func(s *Session) {
		s.logger = l
	}
}

// WithExitHook registers fn to run whenever an active session ends.
func WithExitHook(fn func(ExitReason)) Option {
	return func(s *Session) {
		s.onExit = fn
	}
}

// New creates an inactive session editing through editor.
func New(editor Editor, opts ...Option) *Session {
	s := &Session{editor: editor, current: -1}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = logging.OrNull(s.logger).WithComponent("placeholder")
	return s
}

// Enter starts a session for an expansion whose text has already been
// inserted at insertOffset. It selects the first non-empty placeholder and
// reports whether the session became active. An active session is ended
// first.
func (s *Session) Enter(insertOffset int64, res snippet.ExpansionResult) bool {
	if s.active {
		s.Exit(ExitExternal)
	}

	s.insertOffset = insertOffset
	s.fields = make([]snippet.Placeholder, len(res.Placeholders))
	s.spans = make([]span, len(res.Placeholders))
	for i, ph := range res.Placeholders {
		s.fields[i] = ph.Clone()
		s.spans[i] = span{start: insertOffset + int64(ph.Start), length: int64(ph.Length)}
	}

	first := s.nextNonEmpty(-1)
	if first < 0 {
		s.reset()
		return false
	}
	s.id = uuid.New().String()
	s.active = true
	s.logger.WithField("session", s.id).Debug("entered with %d placeholders", len(s.fields))
	s.focus(first)
	return true
}

// Active reports whether the session is active.
func (s *Session) Active() bool {
	return s.active
}

// ID identifies the current activation; empty when inactive.
func (s *Session) ID() string {
	return s.id
}

// CurrentIndex returns the current placeholder index, or -1.
func (s *Session) CurrentIndex() int {
	if !s.active {
		return -1
	}
	return s.current
}

// Current returns the current placeholder with offsets relative to the
// insertion point.
func (s *Session) Current() (snippet.Placeholder, bool) {
	if !s.active {
		return snippet.Placeholder{}, false
	}
	return s.relative(s.current), true
}

// CurrentRange returns the absolute range of the current placeholder.
func (s *Session) CurrentRange() (start, end int64, ok bool) {
	if !s.active {
		return 0, 0, false
	}
	sp := s.spans[s.current]
	return sp.start, sp.end(), true
}

// InsertOffset returns where the expansion was inserted.
func (s *Session) InsertOffset() int64 {
	return s.insertOffset
}

// Placeholders returns every placeholder with offsets relative to the
// insertion point.
func (s *Session) Placeholders() []snippet.Placeholder {
	out := make([]snippet.Placeholder, len(s.fields))
	for i := range s.fields {
		out[i] = s.relative(i)
	}
	return out
}

func (s *Session) relative(i int) snippet.Placeholder {
	ph := s.fields[i].Clone()
	ph.Start = int(s.spans[i].start - s.insertOffset)
	ph.Length = int(s.spans[i].length)
	return ph
}

// Spans returns the absolute ranges of all placeholders.
func (s *Session) Spans() []Span {
	if !s.active {
		return nil
	}
	out := make([]Span, len(s.spans))
	for i, sp := range s.spans {
		out[i] = Span{Index: i, Start: sp.start, Length: sp.length, Current: i == s.current}
	}
	return out
}

// Chooser returns the option chooser of the current placeholder, or nil.
func (s *Session) Chooser() *Chooser {
	if !s.active {
		return nil
	}
	return s.chooser
}

// ApplyChange renormalizes every placeholder after a document change.
func (s *Session) ApplyChange(c document.Change) {
	if !s.active {
		return
	}
	for i := range s.spans {
		s.spans[i] = adjust(s.spans[i], i, s.current, c)
	}
	switch {
	case c.Offset+c.RemovedLen() <= s.insertOffset:
		s.insertOffset += c.Delta()
	case c.Offset < s.insertOffset:
		s.insertOffset = c.Offset + c.InsertedLen()
	}
	if s.insertOffset > s.spans[0].start {
		s.insertOffset = s.spans[0].start
	}
}

// HandleKey processes a key while active and reports whether it was
// consumed. Unconsumed keys are ordinary editing.
func (s *Session) HandleKey(ev key.Event) bool {
	if !s.active {
		return false
	}
	if ev.IsModified() {
		return false
	}

	switch ev.Key {
	case key.KeyEscape:
		s.Exit(ExitEscape)
		return true
	case key.KeyTab, key.KeyEnter:
		s.Commit()
		return true
	}

	c := s.chooser
	if c == nil {
		return false
	}
	switch {
	case ev.Key == key.KeyUp:
		c.MoveUp()
		return true
	case ev.Key == key.KeyDown:
		c.MoveDown()
		return true
	case ev.IsSpace():
		c.Toggle()
		return true
	case ev.IsRune() && (unicode.IsLetter(ev.Rune) || unicode.IsDigit(ev.Rune)):
		c.TypeKey(ev.Rune)
		return true
	}
	return false
}

// Commit applies the current placeholder's choice, if it has options, and
// moves to the next non-empty placeholder or ends the session.
func (s *Session) Commit() {
	if !s.active {
		return
	}
	ph := s.fields[s.current]
	if s.chooser != nil && ph.Kind != snippet.FreeText {
		if vals := s.chooser.Values(); len(vals) > 0 {
			text := vals[0]
			if ph.Kind == snippet.MultiSelect {
				text = ph.Join(vals)
			}
			sp := s.spans[s.current]
			if err := s.editor.Replace(sp.start, sp.end(), text); err != nil {
				s.logger.Warn("applying option for %q: %v", ph.Title, err)
			}
		}
	}
	s.advance()
}

func (s *Session) advance() {
	next := s.nextNonEmpty(s.current)
	if next < 0 {
		end := s.spans[s.current].end()
		s.Exit(ExitCompleted)
		s.editor.Select(end, end)
		return
	}
	s.focus(next)
}

func (s *Session) nextNonEmpty(after int) int {
	for i := after + 1; i < len(s.spans); i++ {
		if s.spans[i].length > 0 {
			return i
		}
	}
	return -1
}

func (s *Session) focus(i int) {
	s.current = i
	s.chooser = nil
	if ph := s.fields[i]; ph.Kind != snippet.FreeText && ph.HasOptions() {
		s.chooser = newChooser(ph)
	}
	sp := s.spans[i]
	s.editor.Select(sp.start, sp.end())
}

// Exit ends the session, leaving the text as edited.
func (s *Session) Exit(reason ExitReason) {
	if !s.active {
		return
	}
	s.logger.WithField("session", s.id).Debug("exited: %s", reason)
	s.reset()
	if s.onExit != nil {
		s.onExit(reason)
	}
}

func (s *Session) reset() {
	s.active = false
	s.id = ""
	s.current = -1
	s.chooser = nil
	s.fields = nil
	s.spans = nil
}
