package snippet

import (
	"strings"
	"unicode"
)

// Kind is the placeholder type selected by the marker ordinal.
type Kind uint8

const (
	// FreeText is typed over by the user (ordinal 0 or omitted).
	FreeText Kind = iota
	// SingleChoice picks one option (ordinal 1).
	SingleChoice
	// MultiSelect toggles any number of options (ordinal 2).
	MultiSelect
	// Replacement picks one option by multi-character key (ordinal 3).
	Replacement
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case FreeText:
		return "FreeText"
	case SingleChoice:
		return "SingleChoice"
	case MultiSelect:
		return "MultiSelect"
	case Replacement:
		return "Replacement"
	default:
		return "Unknown"
	}
}

// kindForOrdinal maps 0..3 to a Kind.
func kindForOrdinal(n int) Kind {
	return Kind(n)
}

// Macro identifies a marker whose initial text is computed at expansion.
type Macro uint8

const (
	// MacroNone marks an ordinary placeholder.
	MacroNone Macro = iota
	// MacroDate expands to the current date in DateLayout.
	MacroDate
	// MacroNumber expands to "0".
	MacroNumber
)

// Option is one key/value pair of a placeholder's defaults.
type Option struct {
	Key   string
	Value string
}

// Placeholder is an editable region of an expanded snippet.
// Start and Length are byte offsets relative to the insertion point.
type Placeholder struct {
	Ordinal   int
	Kind      Kind
	Title     string
	Metadata  []string
	Options   []Option
	Joiner    string
	Bilateral bool
	Macro     Macro

	Start  int
	Length int
}

// End returns Start+Length.
func (p Placeholder) End() int {
	return p.Start + p.Length
}

// HasOptions reports whether the placeholder offers choices.
func (p Placeholder) HasOptions() bool {
	return len(p.Options) > 0
}

// OptionIndex returns the index of the option whose key equals key,
// ignoring case, or -1.
func (p Placeholder) OptionIndex(key string) int {
	for i, o := range p.Options {
		if strings.EqualFold(o.Key, key) {
			return i
		}
	}
	return -1
}

// Separator returns the text placed between joined MultiSelect values.
func (p Placeholder) Separator() string {
	j := strings.TrimSpace(p.Joiner)
	switch {
	case j == "":
		return " "
	case isWord(j):
		return " " + j + " "
	default:
		return j + " "
	}
}

// Join combines selected option values in selection order.
func (p Placeholder) Join(values []string) string {
	if p.Bilateral {
		return Combine(values)
	}
	return strings.Join(values, p.Separator())
}

// Clone returns a deep copy.
func (p Placeholder) Clone() Placeholder {
	c := p
	c.Metadata = append([]string(nil), p.Metadata...)
	c.Options = append([]Option(nil), p.Options...)
	return c
}

func isWord(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return s != ""
}
