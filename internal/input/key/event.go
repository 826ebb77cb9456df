package key

import (
	"unicode"
)

// Event represents a single key press.
type Event struct {
	// Key identifies the key pressed.
	Key Key

	// Rune is the character for KeyRune events.
	Rune rune

	// Modifiers contains the active modifier keys.
	Modifiers Modifier
}

// NewRuneEvent creates a key event for a character.
func NewRuneEvent(r rune, mods Modifier) Event {
	if r == ' ' {
		return Event{Key: KeySpace, Rune: ' ', Modifiers: mods}
	}
	return Event{Key: KeyRune, Rune: r, Modifiers: mods}
}

// NewSpecialEvent creates a key event for a special key.
func NewSpecialEvent(k Key, mods Modifier) Event {
	e := Event{Key: k, Modifiers: mods}
	if k == KeySpace {
		e.Rune = ' '
	}
	return e
}

// IsRune returns true if this is a character key event.
func (e Event) IsRune() bool {
	return e.Key == KeyRune && e.Rune != 0
}

// IsModified returns true if a command modifier is pressed.
// Shift alone is not considered a command modifier.
func (e Event) IsModified() bool {
	return e.Modifiers&(ModCtrl|ModAlt|ModMeta) != 0
}

// Char returns the printable character this event would type, if any.
// Space is reported as ' '. Modified events never type.
func (e Event) Char() (rune, bool) {
	if e.IsModified() {
		return 0, false
	}
	switch {
	case e.Key == KeySpace:
		return ' ', true
	case e.IsRune() && unicode.IsPrint(e.Rune):
		return e.Rune, true
	}
	return 0, false
}

// IsSpace returns true if the event is the space bar.
func (e Event) IsSpace() bool {
	return e.Key == KeySpace || (e.Key == KeyRune && e.Rune == ' ')
}

// IsAltArrow returns true for Alt+Arrow chords, which hosts use for focus
// navigation.
func (e Event) IsAltArrow() bool {
	return e.Key.IsArrowKey() && e.Modifiers.HasAlt()
}

// String returns a representation such as "a", "Enter" or "Alt+Up".
func (e Event) String() string {
	name := e.Key.String()
	if e.Key == KeyRune {
		name = string(e.Rune)
	}
	if mods := e.Modifiers.String(); mods != "" {
		return mods + "+" + name
	}
	return name
}
