package completion

import "strings"

// Kind classifies a completion item.
type Kind uint8

const (
	// KindToken inserts its text.
	KindToken Kind = iota
	// KindHotkey replaces the trigger with canned text.
	KindHotkey
	// KindSnippet replaces the trigger with an expanded template and starts
	// a placeholder session.
	KindSnippet
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindToken:
		return "token"
	case KindHotkey:
		return "hotkey"
	case KindSnippet:
		return "snippet"
	default:
		return "unknown"
	}
}

// ParseKind parses "token", "hotkey" or "snippet". Unknown names are tokens.
func ParseKind(s string) Kind {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "hotkey":
		return KindHotkey
	case "snippet":
		return KindSnippet
	default:
		return KindToken
	}
}

// Item is one completion candidate.
type Item struct {
	// Text is what the popup shows and what the typed word is matched against.
	Text        string
	Description string
	Priority    float64
	Kind        Kind
	// Insert is the hotkey expansion or snippet template. Empty for tokens.
	Insert string
}

// InsertText returns the text that replaces the typed word on commit.
func (i Item) InsertText() string {
	if i.Insert != "" {
		return i.Insert
	}
	return i.Text
}

// Context describes the caret position a source is asked about.
type Context struct {
	// Word is the partial word before the caret.
	Word string
	// WordStart and Caret are document byte offsets.
	WordStart int64
	Caret     int64
	// LineText is the full text of the caret's line.
	LineText string
}

// Source produces completion candidates.
type Source interface {
	Completions(ctx Context) []Item
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc func(ctx Context) []Item

// Completions calls f(ctx).
func (f SourceFunc) Completions(ctx Context) []Item { return f(ctx) }

// Composite concatenates the items of several sources. When two sources
// return the same kind and text, the first one wins.
type Composite []Source

// Completions implements Source.
func (c Composite) Completions(ctx Context) []Item {
	type key struct {
		kind Kind
		text string
	}
	seen := make(map[key]bool)
	var out []Item
	for _, src := range c {
		if src == nil {
			continue
		}
		for _, it := range src.Completions(ctx) {
			k := key{it.Kind, strings.ToLower(it.Text)}
			if seen[k] {
				continue
			}
			seen[k] = true
			out = append(out, it)
		}
	}
	return out
}
