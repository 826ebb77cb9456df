package ghost

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Filter thresholds.
const (
	// MinSuggestionChars is the minimum normalized length of a suggestion.
	MinSuggestionChars = 6
	// MaxTrivialExtension is the largest normalized length difference at
	// which a suggestion that extends (or truncates) its line is trivial.
	MaxTrivialExtension = 3
)

// Key reduces text to lowercase letters and digits, the form in which
// suggestions are compared with the lines they replace.
func Key(text string) string {
	var b strings.Builder
	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}

// IsWeak reports whether candidate adds too little over original to be
// worth showing: it is too short, identical after normalization, or only
// differs by a few characters at the end.
func IsWeak(original, candidate string) bool {
	ck := Key(candidate)
	ok := Key(original)

	clen := utf8.RuneCountInString(ck)
	if clen < MinSuggestionChars {
		return true
	}
	if ck == ok {
		return true
	}
	olen := utf8.RuneCountInString(ok)
	diff := clen - olen
	if diff < 0 {
		diff = -diff
	}
	if diff <= MaxTrivialExtension && (strings.HasPrefix(ck, ok) || strings.HasPrefix(ok, ck)) {
		return true
	}
	return false
}

// Normalize collapses whitespace (line breaks included) to single spaces,
// trims, and returns the text with one leading space and a trailing period.
// Blank text stays empty.
func Normalize(text string) string {
	t := strings.Join(strings.Fields(text), " ")
	if t == "" {
		return ""
	}
	if !strings.HasSuffix(t, ".") {
		t += "."
	}
	return " " + t
}

// Lines gives read access to the document a response is applied to.
type Lines interface {
	LineCount() int
	LineText(line int) string
}

// Prepare converts a service response into set entries: each line number
// is clamped into the document, weak suggestions are dropped and text is
// normalized. The result is ready for Set.Replace.
func Prepare(raw []Suggestion, doc Lines) []Suggestion {
	n := doc.LineCount()
	if n <= 0 {
		return nil
	}
	out := make([]Suggestion, 0, len(raw))
	for _, r := range raw {
		line := r.Line
		if line < 0 {
			line = 0
		}
		if line >= n {
			line = n - 1
		}
		if IsWeak(doc.LineText(line), r.Text) {
			continue
		}
		text := Normalize(r.Text)
		if text == "" {
			continue
		}
		out = append(out, Suggestion{Line: line, Text: text})
	}
	return out
}
