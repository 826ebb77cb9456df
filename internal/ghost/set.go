package ghost

import (
	"fmt"
	"sort"
	"strings"
)

// Suggestion is a candidate replacement for one line. Line is 0-based.
type Suggestion struct {
	Line int
	Text string
}

// String returns a debug representation.
func (s Suggestion) String() string {
	return fmt.Sprintf("%d:%q", s.Line, s.Text)
}

// Set is the ordered list of ghost suggestions and a selection index.
// The zero value is an empty set.
type Set struct {
	items    []Suggestion
	selected int // -1 when empty
}

// NewSet creates an empty set.
func NewSet() *Set {
	return &Set{selected: -1}
}

// Replace installs items, sorted by line. When two items target the same
// line the later one wins. The first item is selected.
func (s *Set) Replace(items []Suggestion) {
	byLine := make(map[int]int, len(items))
	out := make([]Suggestion, 0, len(items))
	for _, it := range items {
		if i, ok := byLine[it.Line]; ok {
			out[i] = it
			continue
		}
		byLine[it.Line] = len(out)
		out = append(out, it)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Line < out[j].Line })

	s.items = out
	if len(out) == 0 {
		s.selected = -1
	} else {
		s.selected = 0
	}
}

// Clear empties the set.
func (s *Set) Clear() {
	s.items = nil
	s.selected = -1
}

// Len returns the number of suggestions.
func (s *Set) Len() int {
	return len(s.items)
}

// IsEmpty returns true if the set holds no suggestions.
func (s *Set) IsEmpty() bool {
	return len(s.items) == 0
}

// Items returns a copy of the suggestions in line order.
func (s *Set) Items() []Suggestion {
	return append([]Suggestion(nil), s.items...)
}

// SelectedIndex returns the selected index, or -1.
func (s *Set) SelectedIndex() int {
	if len(s.items) == 0 {
		return -1
	}
	return s.selected
}

// Selected returns the selected suggestion.
func (s *Set) Selected() (Suggestion, bool) {
	i := s.SelectedIndex()
	if i < 0 {
		return Suggestion{}, false
	}
	return s.items[i], true
}

// MoveUp selects the previous suggestion, stopping at the first.
func (s *Set) MoveUp() bool {
	return s.Select(s.selected - 1)
}

// MoveDown selects the next suggestion, stopping at the last.
func (s *Set) MoveDown() bool {
	return s.Select(s.selected + 1)
}

// Select clamps i into range and selects it. It reports whether the
// selection changed.
func (s *Set) Select(i int) bool {
	if len(s.items) == 0 {
		return false
	}
	if i < 0 {
		i = 0
	}
	if i >= len(s.items) {
		i = len(s.items) - 1
	}
	changed := i != s.selected
	s.selected = i
	return changed
}

// ForLine returns the suggestion targeting line.
func (s *Set) ForLine(line int) (Suggestion, bool) {
	for _, it := range s.items {
		if it.Line == line {
			return it, true
		}
	}
	return Suggestion{}, false
}

// remove deletes entry i and reclamps the selection onto a neighbour.
func (s *Set) remove(i int) {
	s.items = append(s.items[:i:i], s.items[i+1:]...)
	switch {
	case len(s.items) == 0:
		s.selected = -1
	case s.selected >= len(s.items):
		s.selected = len(s.items) - 1
	}
}

// LineReplacer replaces the full text of a line.
type LineReplacer interface {
	LineCount() int
	ReplaceLine(line int, text string) error
}

// AcceptSelected replaces the selected suggestion's line with its trimmed
// text and removes it from the set.
func (s *Set) AcceptSelected(doc LineReplacer) (Suggestion, error) {
	sel, ok := s.Selected()
	if !ok {
		return Suggestion{}, ErrNoSelection
	}
	if err := doc.ReplaceLine(sel.Line, strings.TrimSpace(sel.Text)); err != nil {
		return Suggestion{}, fmt.Errorf("accepting suggestion for line %d: %w", sel.Line, err)
	}
	s.remove(s.selected)
	return sel, nil
}
