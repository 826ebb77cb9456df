package placeholder

import (
	"strings"

	"github.com/dshills/reportassist/internal/snippet"
)

// Chooser is the inline option list of a choice placeholder.
type Chooser struct {
	options   []snippet.Option
	multi     bool
	highlight int
	toggled   []int
	keyBuf    string
}

func newChooser(ph snippet.Placeholder) *Chooser {
	return &Chooser{
		options: append([]snippet.Option(nil), ph.Options...),
		multi:   ph.Kind == snippet.MultiSelect,
	}
}

// Options returns the options in template order.
func (c *Chooser) Options() []snippet.Option {
	return append([]snippet.Option(nil), c.options...)
}

// Multi reports whether options can be toggled.
func (c *Chooser) Multi() bool {
	return c.multi
}

// Highlighted returns the highlighted option index.
func (c *Chooser) Highlighted() int {
	return c.highlight
}

// MoveUp highlights the previous option, stopping at the first.
func (c *Chooser) MoveUp() {
	if c.highlight > 0 {
		c.highlight--
	}
	c.keyBuf = ""
}

// MoveDown highlights the next option, stopping at the last.
func (c *Chooser) MoveDown() {
	if c.highlight < len(c.options)-1 {
		c.highlight++
	}
	c.keyBuf = ""
}

// TypeKey extends the typed key with r and highlights the option whose key
// matches. Keys may be several characters long; when nothing starts with
// the accumulated text the buffer restarts at r. It reports whether an
// option matched exactly.
func (c *Chooser) TypeKey(r rune) bool {
	c.keyBuf += string(r)
	if !c.anyPrefix(c.keyBuf) {
		c.keyBuf = string(r)
	}
	for i, o := range c.options {
		if strings.EqualFold(o.Key, c.keyBuf) {
			c.highlight = i
			return true
		}
	}
	return false
}

func (c *Chooser) anyPrefix(p string) bool {
	p = strings.ToLower(p)
	for _, o := range c.options {
		if strings.HasPrefix(strings.ToLower(o.Key), p) {
			return true
		}
	}
	return false
}

// Toggle flips membership of the highlighted option. Only MultiSelect
// choosers toggle; it reports whether anything changed.
func (c *Chooser) Toggle() bool {
	if !c.multi || len(c.options) == 0 {
		return false
	}
	for i, idx := range c.toggled {
		if idx == c.highlight {
			c.toggled = append(c.toggled[:i:i], c.toggled[i+1:]...)
			return true
		}
	}
	c.toggled = append(c.toggled, c.highlight)
	return true
}

// IsToggled reports whether option i is selected.
func (c *Chooser) IsToggled(i int) bool {
	for _, idx := range c.toggled {
		if idx == i {
			return true
		}
	}
	return false
}

// Toggled returns the selected option indexes in selection order.
func (c *Chooser) Toggled() []int {
	return append([]int(nil), c.toggled...)
}

// Values returns the texts a commit would use: the toggled options in
// selection order, or the highlighted option when nothing is toggled.
func (c *Chooser) Values() []string {
	if len(c.options) == 0 {
		return nil
	}
	if c.multi && len(c.toggled) > 0 {
		vals := make([]string, len(c.toggled))
		for i, idx := range c.toggled {
			vals[i] = c.options[idx].Value
		}
		return vals
	}
	return []string{c.options[c.highlight].Value}
}
