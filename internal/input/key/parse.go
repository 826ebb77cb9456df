package key

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Parse errors
var (
	ErrEmptySpec   = errors.New("key: empty key specification")
	ErrInvalidSpec = errors.New("key: invalid key specification")
)

// Parse parses a key specification such as "a", "Enter" or "Alt+Up".
func Parse(spec string) (Event, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Event{}, ErrEmptySpec
	}

	var mods Modifier
	keyPart := spec
	if len(spec) > 1 && strings.Contains(spec, "+") {
		parts := strings.Split(spec, "+")
		keyPart = parts[len(parts)-1]
		if keyPart == "" {
			// "Ctrl++" names the plus key itself.
			keyPart = "+"
			parts = parts[:len(parts)-1]
		}
		for _, p := range parts[:len(parts)-1] {
			m, ok := parseModifier(p)
			if !ok {
				return Event{}, fmt.Errorf("%w: unknown modifier %q", ErrInvalidSpec, p)
			}
			mods |= m
		}
	}

	if utf8.RuneCountInString(keyPart) == 1 {
		r, _ := utf8.DecodeRuneInString(keyPart)
		return NewRuneEvent(r, mods), nil
	}
	k := KeyFromName(keyPart)
	if k == KeyNone {
		return Event{}, fmt.Errorf("%w: unknown key %q", ErrInvalidSpec, keyPart)
	}
	return NewSpecialEvent(k, mods), nil
}

// MustParse is like Parse but panics on error. Intended for tests and tables.
func MustParse(spec string) Event {
	e, err := Parse(spec)
	if err != nil {
		panic(err)
	}
	return e
}
