package popup

import (
	"unicode"
	"unicode/utf8"

	"github.com/dshills/reportassist/internal/completion"
	"github.com/dshills/reportassist/internal/input/key"
	"github.com/dshills/reportassist/internal/logging"
)

const (
	// DefaultMinChars is the shortest word that opens the popup.
	DefaultMinChars = 2
	// DefaultMaxItems caps the number of rows shown.
	DefaultMaxItems = 50
)

// Commit is a request to replace the typed word with an item.
type Commit struct {
	Item completion.Item
	// Start and End delimit the word being replaced.
	Start, End int64
	// TrailingSpace asks the host to type a space after the insertion.
	TrailingSpace bool
}

// Decision tells the host what to do with a key the popup has seen.
type Decision struct {
	// Commit, when set, must be applied before anything else.
	Commit *Commit
	// Consumed means the key must not reach the document.
	Consumed bool
}

// Controller is the state of one editor's completion popup.
type Controller struct {
	source   completion.Source
	minChars int
	maxItems int
	logger   *logging.Logger

	open     bool
	items    []completion.Item
	selected int

	// start and end delimit the word the items were matched against.
	start, end int64
	word       string

	// last query, so repeated keystrokes with the same word are free
	lastStart int64
	lastWord  string
	queried   bool

	onOpen func()
}

// Option configures a Controller.
type Option func(*Controller)

// WithMinChars sets the shortest word that opens the popup.
func WithMinChars(n int) Option {
	return func(c *Controller) {
		if n > 0 {
			c.minChars = n
		}
	}
}

// WithMaxItems caps the number of items kept after ranking.
func WithMaxItems(n int) Option {
	return func(c *Controller) {
		if n > 0 {
			c.maxItems = n
		}
	}
}

// WithLogger sets the controller's logger.
func WithLogger(l *logging.Logger) Option {
	return func(c *Controller) {
		c.logger = l
	}
}

// WithOpenHook registers fn to run whenever the popup goes from closed to
// open.
func WithOpenHook(fn func()) Option {
	return func(c *Controller) {
		c.onOpen = fn
	}
}

// New creates a closed popup backed by source.
func New(source completion.Source, opts ...Option) *Controller {
	c := &Controller{
		source:   source,
		minChars: DefaultMinChars,
		maxItems: DefaultMaxItems,
		selected: -1,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = logging.OrNull(c.logger).WithComponent("popup")
	return c
}

// IsOpen reports whether the dropdown is showing.
func (c *Controller) IsOpen() bool {
	return c.open
}

// Items returns the ranked items.
func (c *Controller) Items() []completion.Item {
	return append([]completion.Item(nil), c.items...)
}

// Selected returns the highlighted index, or -1.
func (c *Controller) Selected() int {
	return c.selected
}

// SelectedItem returns the highlighted item.
func (c *Controller) SelectedItem() (completion.Item, bool) {
	if !c.open || c.selected < 0 || c.selected >= len(c.items) {
		return completion.Item{}, false
	}
	return c.items[c.selected], true
}

// Word returns the word the items were matched against and its range.
func (c *Controller) Word() (word string, start, end int64) {
	return c.word, c.start, c.end
}

// MinChars returns the opening threshold.
func (c *Controller) MinChars() int {
	return c.minChars
}

// Update recomputes the word before caret after a character was typed or
// erased, and requeries the source when the word changed.
func (c *Controller) Update(t Text, caret int64) {
	start, word := WordBefore(t, caret)
	if c.queried && start == c.lastStart && word == c.lastWord {
		return
	}
	c.queried = true
	c.lastStart, c.lastWord = start, word

	if utf8.RuneCountInString(word) < c.minChars || c.source == nil {
		c.Close()
		return
	}

	line := t.LineAt(caret)
	ctx := completion.Context{
		Word:      word,
		WordStart: start,
		Caret:     caret,
		LineText:  t.LineText(line),
	}
	items := completion.Rank(c.source.Completions(ctx), word)
	if len(items) > c.maxItems {
		items = items[:c.maxItems]
	}
	if len(items) == 0 {
		c.Close()
		return
	}

	c.items = items
	c.word = word
	c.start, c.end = start, caret
	c.selected = completion.ExactIndex(items, word)
	c.logger.Debug("%d items for %q", len(items), word)
	if !c.open {
		c.open = true
		if c.onOpen != nil {
			c.onOpen()
		}
	}
}

// Close hides the popup and forgets the last query.
func (c *Controller) Close() {
	c.open = false
	c.items = nil
	c.selected = -1
	c.word = ""
	c.start, c.end = 0, 0
	c.queried = false
}

// MoveUp highlights the previous item, wrapping to the last.
func (c *Controller) MoveUp() {
	if !c.open || len(c.items) == 0 {
		return
	}
	if c.selected <= 0 {
		c.selected = len(c.items) - 1
		return
	}
	c.selected--
}

// MoveDown highlights the next item, wrapping to the first.
func (c *Controller) MoveDown() {
	if !c.open || len(c.items) == 0 {
		return
	}
	c.selected = (c.selected + 1) % len(c.items)
}

// Select highlights item i; -1 clears the highlight.
func (c *Controller) Select(i int) {
	if i < -1 || i >= len(c.items) {
		return
	}
	c.selected = i
}

// Commit closes the popup and returns the highlighted item with the
// range it replaces.
func (c *Controller) Commit() (Commit, error) {
	it, ok := c.SelectedItem()
	if !ok {
		return Commit{}, ErrNoSelection
	}
	cm := Commit{Item: it, Start: c.start, End: c.end}
	c.logger.Debug("commit %s %q", it.Kind, it.Text)
	c.Close()
	return cm, nil
}

// HandleKey decides what a key does while the popup is open. The host
// applies Commit first, then the key itself unless Consumed. Keys that
// move the caret are followed by a call to CaretMoved.
func (c *Controller) HandleKey(ev key.Event) Decision {
	if !c.open || ev.IsModified() {
		return Decision{}
	}

	switch ev.Key {
	case key.KeyEscape:
		c.Close()
		return Decision{Consumed: true}
	case key.KeyUp:
		c.MoveUp()
		return Decision{Consumed: true}
	case key.KeyDown:
		c.MoveDown()
		return Decision{Consumed: true}
	case key.KeyEnter, key.KeyTab:
		if cm, err := c.Commit(); err == nil {
			return Decision{Commit: &cm, Consumed: true}
		}
		c.Close()
		return Decision{}
	case key.KeySpace:
		if cm, err := c.Commit(); err == nil {
			cm.TrailingSpace = true
			return Decision{Commit: &cm, Consumed: true}
		}
		c.Close()
		return Decision{}
	case key.KeyRune:
		if r := ev.Rune; !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			if cm, err := c.Commit(); err == nil {
				return Decision{Commit: &cm}
			}
		}
	}
	return Decision{}
}

// CaretMoved reacts to a caret movement made by k. Home and End close the
// popup when the caret leaves the matched word; Left and Right re-match
// the word under the caret.
func (c *Controller) CaretMoved(t Text, caret int64, k key.Key) {
	if !c.open {
		return
	}
	switch k {
	case key.KeyHome, key.KeyEnd:
		if caret < c.start || caret > c.end {
			c.Close()
		}
	case key.KeyLeft, key.KeyRight:
		start, end := WordAround(t, caret)
		word := t.TextRange(start, end)
		c.start, c.end, c.word = start, end, word
		c.selected = completion.ExactIndex(c.items, word)
	}
}
