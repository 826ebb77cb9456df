package assist

import (
	"unicode/utf8"

	"github.com/dshills/reportassist/internal/completion"
	"github.com/dshills/reportassist/internal/engine/document"
	"github.com/dshills/reportassist/internal/input/key"
	"github.com/dshills/reportassist/internal/popup"
)

// pageLines is how far PageUp and PageDown move the caret.
const pageLines = 10

// HandleKey routes one key press and reports whether the engine consumed
// it. Alt+Arrow chords and command chords the engine does not know are
// left to the host.
func (e *Engine) HandleKey(ev key.Event) bool {
	if e.closed || ev.IsAltArrow() {
		return false
	}

	// An active session claims Tab, Enter, Escape and its chooser keys;
	// anything else is ordinary editing inside the placeholder.
	if e.session.Active() && e.session.HandleKey(ev) {
		return true
	}

	if !e.ghosts.IsEmpty() {
		if e.handleGhostKey(ev) {
			return true
		}
	}

	if e.popup.IsOpen() {
		d := e.popup.HandleKey(ev)
		if d.Commit != nil {
			e.applyCommit(*d.Commit)
		}
		if !e.popup.IsOpen() {
			e.arbiter.Leave(ModePopup)
		}
		// A snippet commit selects its first placeholder; the key that
		// triggered it must not overwrite that.
		if d.Consumed || (d.Commit != nil && e.session.Active()) {
			e.activity()
			return true
		}
	}

	if !e.edit(ev) {
		return false
	}
	e.activity()
	return true
}

// handleGhostKey handles keys while ghosts are showing. Every key other
// than selection movement and acceptance rejects the set; it reports
// whether the key was fully handled.
func (e *Engine) handleGhostKey(ev key.Event) bool {
	if !ev.IsModified() {
		switch ev.Key {
		case key.KeyUp:
			e.ghosts.MoveUp()
			return true
		case key.KeyDown:
			e.ghosts.MoveDown()
			return true
		case key.KeyTab:
			e.acceptGhost()
			return true
		case key.KeyEscape:
			e.rejectGhosts()
			e.activity()
			return true
		}
	}
	e.rejectGhosts()
	return false
}

func (e *Engine) acceptGhost() {
	e.shield++
	sug, err := e.ghosts.AcceptSelected(e.doc)
	e.shield--
	if err != nil {
		e.logger.Warn("accepting suggestion: %v", err)
	} else {
		e.logger.Debug("accepted suggestion for line %d", sug.Line)
	}
	if e.ghosts.IsEmpty() {
		e.arbiter.Leave(ModeGhosts)
		e.activity()
	}
}

func (e *Engine) rejectGhosts() {
	e.ghosts.Clear()
	e.arbiter.Leave(ModeGhosts)
}

// applyCommit replaces the typed word with a popup item. Snippets start a
// placeholder session.
func (e *Engine) applyCommit(cm popup.Commit) {
	e.arbiter.Leave(ModePopup)
	if cm.Item.Kind == completion.KindSnippet {
		if err := e.expandAt(cm.Start, cm.End, cm.Item.InsertText()); err != nil {
			e.logger.Warn("expanding snippet %q: %v", cm.Item.Text, err)
			return
		}
		if cm.TrailingSpace && !e.session.Active() {
			e.insert(" ")
		}
		return
	}

	text := document.NormalizeLineEndings(cm.Item.InsertText())
	if cm.TrailingSpace {
		text += " "
	}
	if err := e.doc.Replace(cm.Start, cm.End, text); err != nil {
		e.logger.Warn("committing %q: %v", cm.Item.Text, err)
		return
	}
	e.sel = document.Caret(cm.Start + int64(len(text)))
}

// edit applies a key as plain text editing.
func (e *Engine) edit(ev key.Event) bool {
	if r, ok := ev.Char(); ok {
		e.insert(string(r))
		e.refreshPopup()
		return true
	}
	if ev.IsModified() {
		return false
	}

	extend := ev.Modifiers.HasShift()
	switch ev.Key {
	case key.KeyEnter:
		e.insert("\n")
	case key.KeyTab:
		e.insert("\t")
	case key.KeyBackspace:
		e.deleteBackward()
		if e.popup.IsOpen() {
			e.refreshPopup()
		}
	case key.KeyDelete:
		e.deleteForward()
	case key.KeyLeft:
		e.moveTo(e.leftOf(extend), extend, ev.Key)
	case key.KeyRight:
		e.moveTo(e.rightOf(extend), extend, ev.Key)
	case key.KeyUp:
		e.moveTo(e.vertical(-1), extend, ev.Key)
	case key.KeyDown:
		e.moveTo(e.vertical(1), extend, ev.Key)
	case key.KeyPageUp:
		e.moveTo(e.vertical(-pageLines), extend, ev.Key)
	case key.KeyPageDown:
		e.moveTo(e.vertical(pageLines), extend, ev.Key)
	case key.KeyHome:
		e.moveTo(e.doc.LineStartOffset(e.doc.LineAt(e.sel.Head)), extend, ev.Key)
	case key.KeyEnd:
		e.moveTo(e.doc.LineEndOffset(e.doc.LineAt(e.sel.Head)), extend, ev.Key)
	case key.KeyEscape:
	default:
		return false
	}
	return true
}

// refreshPopup re-matches the word before the caret. The popup stays
// closed while a session is active.
func (e *Engine) refreshPopup() {
	if e.session.Active() {
		return
	}
	e.popup.Update(e.doc, e.sel.Head)
	if !e.popup.IsOpen() {
		e.arbiter.Leave(ModePopup)
	}
}

// insert replaces the selection with text and leaves the caret after it.
func (e *Engine) insert(text string) {
	text = document.NormalizeLineEndings(text)
	start := e.sel.Start()
	if err := e.doc.Replace(start, e.sel.End(), text); err != nil {
		e.logger.Warn("inserting text: %v", err)
		return
	}
	e.sel = document.Caret(start + int64(len(text)))
}

func (e *Engine) deleteBackward() {
	start, end := e.sel.Start(), e.sel.End()
	if start == end {
		_, size := e.doc.RuneBefore(start)
		start -= int64(size)
	}
	e.deleteRange(start, end)
}

func (e *Engine) deleteForward() {
	start, end := e.sel.Start(), e.sel.End()
	if start == end {
		_, size := e.doc.RuneAt(end)
		end += int64(size)
	}
	e.deleteRange(start, end)
}

func (e *Engine) deleteRange(start, end int64) {
	if start == end {
		return
	}
	if err := e.doc.Delete(start, end); err != nil {
		e.logger.Warn("deleting text: %v", err)
		return
	}
	e.sel = document.Caret(start)
}

func (e *Engine) leftOf(extend bool) int64 {
	if !extend && !e.sel.IsEmpty() {
		return e.sel.Start()
	}
	_, size := e.doc.RuneBefore(e.sel.Head)
	return e.sel.Head - int64(size)
}

func (e *Engine) rightOf(extend bool) int64 {
	if !extend && !e.sel.IsEmpty() {
		return e.sel.End()
	}
	_, size := e.doc.RuneAt(e.sel.Head)
	return e.sel.Head + int64(size)
}

// vertical returns the caret moved by n lines, keeping its rune column.
func (e *Engine) vertical(n int) int64 {
	head := e.sel.Head
	line := e.doc.LineAt(head)
	col := utf8.RuneCountInString(e.doc.TextRange(e.doc.LineStartOffset(line), head))

	target := line + n
	if target < 0 {
		target = 0
	}
	if last := e.doc.LineCount() - 1; target > last {
		target = last
	}
	text := e.doc.LineText(target)
	off := 0
	for i := 0; i < col && off < len(text); i++ {
		_, size := utf8.DecodeRuneInString(text[off:])
		off += size
	}
	return e.doc.LineStartOffset(target) + int64(off)
}

func (e *Engine) moveTo(head int64, extend bool, k key.Key) {
	if extend {
		e.sel = e.clampSelection(document.NewSelection(e.sel.Anchor, head))
	} else {
		e.sel = e.clampSelection(document.Caret(head))
	}
	if e.popup.IsOpen() {
		e.popup.CaretMoved(e.doc, e.sel.Head, k)
		if !e.popup.IsOpen() {
			e.arbiter.Leave(ModePopup)
		}
	}
}
