package document

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// Listener is called after every document change.
type Listener func(Change)

type listenerEntry struct {
	id int
	fn Listener
}

// Document is a mutable UTF-8 text buffer organized into lines.
type Document struct {
	text       string
	lineStarts []ByteOffset
	revision   uint64

	listeners []listenerEntry
	nextID    int
}

// New creates a document with initial content.
// CRLF and CR line endings are normalized to LF.
func New(text string) *Document {
	d := &Document{text: NormalizeLineEndings(text)}
	d.reindex()
	return d
}

// NormalizeLineEndings converts CRLF and CR line endings to LF. Callers that
// derive offsets from text they insert must measure the normalized form.
func NormalizeLineEndings(s string) string {
	if !strings.ContainsRune(s, '\r') {
		return s
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

func (d *Document) reindex() {
	d.lineStarts = d.lineStarts[:0]
	d.lineStarts = append(d.lineStarts, 0)
	for i := 0; i < len(d.text); i++ {
		if d.text[i] == '\n' {
			d.lineStarts = append(d.lineStarts, ByteOffset(i+1))
		}
	}
}

// Read operations

// Text returns the full document content.
func (d *Document) Text() string {
	return d.text
}

// Len returns the document length in bytes.
func (d *Document) Len() ByteOffset {
	return ByteOffset(len(d.text))
}

// Revision returns a counter incremented by every change.
func (d *Document) Revision() uint64 {
	return d.revision
}

// TextRange returns the text in [start, end).
// The range is clamped to the document bounds.
func (d *Document) TextRange(start, end ByteOffset) string {
	start = d.clamp(start)
	end = d.clamp(end)
	if end < start {
		return ""
	}
	return d.text[start:end]
}

// LineCount returns the number of lines. An empty document has one line.
func (d *Document) LineCount() int {
	return len(d.lineStarts)
}

// LineStartOffset returns the offset of the first byte of a line.
// Out-of-range lines are clamped.
func (d *Document) LineStartOffset(line int) ByteOffset {
	line = d.clampLine(line)
	return d.lineStarts[line]
}

// LineEndOffset returns the offset of the end of a line, before its newline.
func (d *Document) LineEndOffset(line int) ByteOffset {
	line = d.clampLine(line)
	if line+1 < len(d.lineStarts) {
		return d.lineStarts[line+1] - 1
	}
	return d.Len()
}

// LineText returns the text of a line without its newline.
func (d *Document) LineText(line int) string {
	return d.text[d.LineStartOffset(line):d.LineEndOffset(line)]
}

// LineAt returns the 0-based line containing offset.
func (d *Document) LineAt(offset ByteOffset) int {
	offset = d.clamp(offset)
	// First line start greater than offset, minus one.
	i := sort.Search(len(d.lineStarts), func(i int) bool {
		return d.lineStarts[i] > offset
	})
	return i - 1
}

// RuneBefore returns the rune ending at offset and its size.
// Returns utf8.RuneError and 0 at the start of the document.
func (d *Document) RuneBefore(offset ByteOffset) (rune, int) {
	offset = d.clamp(offset)
	if offset == 0 {
		return utf8.RuneError, 0
	}
	return utf8.DecodeLastRuneInString(d.text[:offset])
}

// RuneAt returns the rune starting at offset and its size.
// Returns utf8.RuneError and 0 at the end of the document.
func (d *Document) RuneAt(offset ByteOffset) (rune, int) {
	offset = d.clamp(offset)
	if offset >= d.Len() {
		return utf8.RuneError, 0
	}
	return utf8.DecodeRuneInString(d.text[offset:])
}

// Snapshot returns the current text and revision.
// Strings are immutable, so the snapshot is safe to hand to other goroutines.
func (d *Document) Snapshot() (string, uint64) {
	return d.text, d.revision
}

// Write operations

// Insert inserts text at offset.
func (d *Document) Insert(offset ByteOffset, text string) error {
	return d.Replace(offset, offset, text)
}

// Delete removes the text in [start, end).
func (d *Document) Delete(start, end ByteOffset) error {
	return d.Replace(start, end, "")
}

// Replace replaces the text in [start, end) with text and notifies listeners.
// A replacement that changes nothing is not reported.
func (d *Document) Replace(start, end ByteOffset, text string) error {
	if start < 0 || start > d.Len() {
		return ErrOffsetOutOfRange
	}
	if end < start || end > d.Len() {
		return ErrRangeInvalid
	}

	text = NormalizeLineEndings(text)
	old := d.text[start:end]
	if old == "" && text == "" {
		return nil
	}

	d.text = d.text[:start] + text + d.text[end:]
	d.reindex()
	d.revision++

	d.notify(Change{
		Offset:   start,
		OldText:  old,
		NewText:  text,
		Revision: d.revision,
	})
	return nil
}

// ReplaceLine replaces the whole text of a line, keeping its newline.
func (d *Document) ReplaceLine(line int, text string) error {
	if line < 0 || line >= d.LineCount() {
		return ErrLineOutOfRange
	}
	return d.Replace(d.LineStartOffset(line), d.LineEndOffset(line), text)
}

// SetText replaces the entire content.
func (d *Document) SetText(text string) error {
	return d.Replace(0, d.Len(), text)
}

// Listeners

// OnChange registers a listener and returns a function that removes it.
// Listeners run in registration order.
func (d *Document) OnChange(fn Listener) func() {
	d.nextID++
	id := d.nextID
	d.listeners = append(d.listeners, listenerEntry{id: id, fn: fn})
	return func() {
		for i, l := range d.listeners {
			if l.id == id {
				d.listeners = append(d.listeners[:i:i], d.listeners[i+1:]...)
				return
			}
		}
	}
}

func (d *Document) notify(c Change) {
	// Copy so listeners may unsubscribe while being notified.
	listeners := append([]listenerEntry(nil), d.listeners...)
	for _, l := range listeners {
		l.fn(c)
	}
}

func (d *Document) clamp(offset ByteOffset) ByteOffset {
	if offset < 0 {
		return 0
	}
	if offset > d.Len() {
		return d.Len()
	}
	return offset
}

func (d *Document) clampLine(line int) int {
	if line < 0 {
		return 0
	}
	if line >= len(d.lineStarts) {
		return len(d.lineStarts) - 1
	}
	return line
}
