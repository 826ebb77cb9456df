package popup

import "unicode"

// Text is the read-only view of the document the controller needs.
type Text interface {
	Len() int64
	RuneBefore(offset int64) (rune, int)
	RuneAt(offset int64) (rune, int)
	TextRange(start, end int64) string
	LineAt(offset int64) int
	LineText(line int) string
	LineStartOffset(line int) int64
	LineEndOffset(line int) int64
}

// IsWordRune reports whether r can be part of a trigger word.
func IsWordRune(r rune) bool {
	return unicode.IsLetter(r)
}

// WordBefore returns the run of letters ending at caret.
func WordBefore(t Text, caret int64) (start int64, word string) {
	start = caret
	for start > 0 {
		r, size := t.RuneBefore(start)
		if size == 0 || !IsWordRune(r) {
			break
		}
		start -= int64(size)
	}
	return start, t.TextRange(start, caret)
}

// WordAround returns the run of letters containing caret, extending in
// both directions.
func WordAround(t Text, caret int64) (start, end int64) {
	start, _ = WordBefore(t, caret)
	end = caret
	n := t.Len()
	for end < n {
		r, size := t.RuneAt(end)
		if size == 0 || !IsWordRune(r) {
			break
		}
		end += int64(size)
	}
	return start, end
}
