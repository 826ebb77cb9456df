package completion

import (
	"strings"

	"github.com/dshills/reportassist/internal/library"
)

// Base priorities by kind.
const (
	TokenPriority   = 1.0
	HotkeyPriority  = 1.5
	SnippetPriority = 1.5
)

// LibrarySource offers every library entry whose text or trigger starts
// with the typed word, ignoring case.
type LibrarySource struct {
	store *library.Store
}

// NewLibrarySource creates a source reading from store.
func NewLibrarySource(store *library.Store) *LibrarySource {
	return &LibrarySource{store: store}
}

// Completions implements Source.
func (s *LibrarySource) Completions(ctx Context) []Item {
	if ctx.Word == "" {
		return nil
	}
	lib := s.store.Library()
	w := strings.ToLower(ctx.Word)
	match := func(text string) bool {
		return strings.HasPrefix(strings.ToLower(text), w)
	}

	var items []Item
	for _, t := range lib.Tokens {
		if match(t.Text) {
			items = append(items, Item{
				Text:        t.Text,
				Description: t.Description,
				Priority:    TokenPriority,
				Kind:        KindToken,
			})
		}
	}
	for _, h := range lib.Hotkeys {
		if match(h.Trigger) {
			desc := h.Description
			if desc == "" {
				desc = h.Text
			}
			items = append(items, Item{
				Text:        h.Trigger,
				Description: desc,
				Priority:    HotkeyPriority,
				Kind:        KindHotkey,
				Insert:      h.Text,
			})
		}
	}
	for _, sn := range lib.Snippets {
		if match(sn.Trigger) {
			desc := sn.Description
			if desc == "" {
				desc = sn.ParsedTemplate().Preview()
			}
			items = append(items, Item{
				Text:        sn.Trigger,
				Description: desc,
				Priority:    SnippetPriority,
				Kind:        KindSnippet,
				Insert:      sn.Template,
			})
		}
	}
	return items
}
