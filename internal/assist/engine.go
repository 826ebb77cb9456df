package assist

import (
	"time"

	"github.com/dshills/reportassist/internal/completion"
	"github.com/dshills/reportassist/internal/engine/document"
	"github.com/dshills/reportassist/internal/ghost"
	"github.com/dshills/reportassist/internal/logging"
	"github.com/dshills/reportassist/internal/placeholder"
	"github.com/dshills/reportassist/internal/popup"
	"github.com/dshills/reportassist/internal/snippet"
	"github.com/dshills/reportassist/internal/suggest"
)

// Config configures an Engine.
type Config struct {
	// Source feeds the completion popup. Nil disables the popup.
	Source completion.Source
	// MinChars is the shortest word that opens the popup.
	MinChars int
	// Suggest configures idle suggestion fetching. A nil client disables it.
	Suggest suggest.FetcherConfig
	// Clock is used for date macros; nil means time.Now.
	Clock  func() time.Time
	Logger *logging.Logger
}

// Engine is the suggestion engine of one editor.
type Engine struct {
	doc    *document.Document
	sel    document.Selection
	logger *logging.Logger

	arbiter *Arbiter
	popup   *popup.Controller
	ghosts  *ghost.Set
	session *placeholder.Session
	fetcher *suggest.Fetcher

	expand []snippet.ExpandOption

	// shield is positive while the engine applies a ghost acceptance,
	// which must not count as a rejecting user edit.
	shield int

	unlisten func()
	closed   bool
}

// New creates an engine over doc with the caret at the end of the text.
func New(doc *document.Document, cfg Config) *Engine {
	logger := logging.OrNull(cfg.Logger)
	e := &Engine{
		doc:     doc,
		sel:     document.Caret(doc.Len()),
		logger:  logger.WithComponent("assist"),
		arbiter: NewArbiter(logger),
		ghosts:  ghost.NewSet(),
	}
	if cfg.Clock != nil {
		e.expand = append(e.expand, snippet.WithClock(cfg.Clock))
	}

	e.popup = popup.New(cfg.Source,
		popup.WithMinChars(cfg.MinChars),
		popup.WithLogger(logger),
		popup.WithOpenHook(func() { e.enter(ModePopup) }),
	)
	e.session = placeholder.New(sessionEditor{e},
		placeholder.WithLogger(logger),
		placeholder.WithExitHook(e.onSessionExit),
	)
	if cfg.Suggest.Logger == nil {
		cfg.Suggest.Logger = logger
	}
	e.fetcher = suggest.NewFetcher(cfg.Suggest, doc.Snapshot, e.idleGate, e.deliver)

	e.arbiter.OnTeardown(ModePopup, e.popup.Close)
	e.arbiter.OnTeardown(ModeGhosts, e.ghosts.Clear)
	e.arbiter.OnTeardown(ModePlaceholder, func() { e.session.Exit(placeholder.ExitExternal) })

	e.unlisten = doc.OnChange(e.onChange)
	e.fetcher.Touch()
	return e
}

// Document returns the edited document.
func (e *Engine) Document() *document.Document {
	return e.doc
}

// Selection returns the current selection.
func (e *Engine) Selection() document.Selection {
	return e.sel
}

// Mode returns the subsystem that owns input.
func (e *Engine) Mode() Mode {
	return e.arbiter.Mode()
}

// Popup returns the completion popup for rendering.
func (e *Engine) Popup() *popup.Controller {
	return e.popup
}

// Ghosts returns the ghost suggestion set for rendering.
func (e *Engine) Ghosts() *ghost.Set {
	return e.ghosts
}

// Session returns the placeholder session.
func (e *Engine) Session() *placeholder.Session {
	return e.session
}

// Fetcher returns the idle suggestion fetcher.
func (e *Engine) Fetcher() *suggest.Fetcher {
	return e.fetcher
}

// SetStudy replaces the metadata sent with suggestion requests.
func (e *Engine) SetStudy(s suggest.StudyContext) {
	e.fetcher.SetStudy(s)
}

// SetSelection moves the caret or selection, as a mouse click would.
func (e *Engine) SetSelection(sel document.Selection) {
	e.sel = e.clampSelection(sel)
	if e.popup.IsOpen() {
		e.popup.Close()
		e.arbiter.Leave(ModePopup)
	}
	e.activity()
}

// Scrolled reports a scroll of the editor viewport.
func (e *Engine) Scrolled() {
	e.activity()
}

// DeactivateSession ends the placeholder session, if any, leaving the
// text as edited.
func (e *Engine) DeactivateSession() {
	e.session.Exit(placeholder.ExitExternal)
}

// InsertSnippet expands template at the selection and starts a
// placeholder session when it has editable fields.
func (e *Engine) InsertSnippet(template string) error {
	if e.closed {
		return ErrClosed
	}
	start, end := e.sel.Start(), e.sel.End()
	return e.expandAt(start, end, template)
}

// Close stops timers and requests and detaches from the document.
func (e *Engine) Close() {
	if e.closed {
		return
	}
	e.closed = true
	e.arbiter.Reset()
	e.fetcher.Stop()
	if e.unlisten != nil {
		e.unlisten()
	}
}

// onChange runs for every document change. The session renormalizes its
// placeholders before anything else looks at them.
func (e *Engine) onChange(c document.Change) {
	e.session.ApplyChange(c)
	e.sel = e.sel.Map(c)
	if e.shield > 0 {
		return
	}
	if !e.ghosts.IsEmpty() {
		e.ghosts.Clear()
		e.arbiter.Leave(ModeGhosts)
	}
	e.fetcher.Cancel()
}

// enter switches modes. Any mode other than none stops idle fetching.
func (e *Engine) enter(m Mode) {
	e.arbiter.Enter(m)
	if m != ModeNone {
		e.fetcher.Stop()
	}
}

// activity restarts the idle timer unless a mode is active.
func (e *Engine) activity() {
	if e.closed || !e.arbiter.Is(ModeNone) {
		return
	}
	e.fetcher.Touch()
}

func (e *Engine) idleGate() bool {
	return !e.closed && e.arbiter.Is(ModeNone)
}

func (e *Engine) deliver(res suggest.Result) {
	log := e.logger.WithField("request", res.RequestID)
	switch {
	case e.closed:
		return
	case res.Err != nil:
		return
	case !e.arbiter.Is(ModeNone):
		log.Debug("discarding suggestions: mode %s is active", e.arbiter.Mode())
		return
	case res.Revision != e.doc.Revision():
		log.Debug("discarding suggestions for stale revision %d", res.Revision)
		return
	}
	items := ghost.Prepare(res.Suggestions, e.doc)
	if len(items) == 0 {
		return
	}
	e.enter(ModeGhosts)
	e.ghosts.Replace(items)
	log.Debug("showing %d ghost suggestions", e.ghosts.Len())
}

func (e *Engine) onSessionExit(reason placeholder.ExitReason) {
	e.logger.Debug("placeholder session ended: %s", reason)
	if e.arbiter.Leave(ModePlaceholder) {
		e.activity()
	}
}

// expandAt replaces [start, end) with the expansion of template.
func (e *Engine) expandAt(start, end int64, template string) error {
	// Placeholder offsets are measured on the expansion, so it must already
	// be in the document's line ending form.
	tpl := snippet.Parse(document.NormalizeLineEndings(template))
	for _, p := range tpl.Problems {
		e.logger.Debug("snippet marker kept as text: %v", p)
	}
	res := tpl.Expand(e.expand...)
	if err := e.doc.Replace(start, end, res.Text); err != nil {
		return err
	}
	e.sel = document.Caret(start + int64(len(res.Text)))
	if e.session.Enter(start, res) {
		e.enter(ModePlaceholder)
	}
	return nil
}

func (e *Engine) clampSelection(sel document.Selection) document.Selection {
	n := e.doc.Len()
	clamp := func(o int64) int64 {
		if o < 0 {
			return 0
		}
		if o > n {
			return n
		}
		return o
	}
	return document.NewSelection(clamp(sel.Anchor), clamp(sel.Head))
}

// sessionEditor lets the placeholder session edit through the engine.
type sessionEditor struct {
	e *Engine
}

func (s sessionEditor) Replace(start, end int64, text string) error {
	return s.e.doc.Replace(start, end, text)
}

func (s sessionEditor) Select(anchor, head int64) {
	s.e.sel = s.e.clampSelection(document.NewSelection(anchor, head))
}
