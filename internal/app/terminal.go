package app

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/dshills/reportassist/internal/assist"
	"github.com/dshills/reportassist/internal/engine/document"
	"github.com/dshills/reportassist/internal/input/key"
)

const (
	// wheelLines is how far one wheel notch scrolls.
	wheelLines = 3

	// maxPopupRows caps the visible height of the completion list.
	maxPopupRows = 8

	ghostArrow = " » "
)

// Terminal hosts an application on a tcell screen. All engine calls happen
// on the goroutine running Run.
type Terminal struct {
	app    *Application
	screen tcell.Screen
	theme  Theme

	top    int
	follow bool
	status string
}

// NewTerminal creates a host for app drawing on screen. The screen is
// initialized by Run.
func NewTerminal(app *Application, screen tcell.Screen) *Terminal {
	return &Terminal{
		app:    app,
		screen: screen,
		theme:  DefaultTheme(),
		follow: true,
	}
}

// NewScreen creates the terminal screen for the current tty.
func NewScreen() (tcell.Screen, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, &InitError{Component: "terminal", Err: err}
	}
	return s, nil
}

// SetStatus replaces the status line message.
func (t *Terminal) SetStatus(format string, args ...any) {
	t.status = fmt.Sprintf(format, args...)
}

// Run initializes the screen and processes terminal events and posted
// engine work until ctx is done or the user quits.
func (t *Terminal) Run(ctx context.Context) error {
	if err := t.screen.Init(); err != nil {
		return &InitError{Component: "terminal", Err: err}
	}
	defer t.screen.Fini()
	t.screen.EnableMouse()
	t.screen.EnablePaste()

	events := make(chan tcell.Event, 64)
	quit := make(chan struct{})
	defer close(quit)
	go t.screen.ChannelEvents(events, quit)

	t.Draw()
	for {
		select {
		case <-ctx.Done():
			return nil
		case fn, ok := <-t.app.loop.C():
			if !ok {
				return nil
			}
			fn()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if err := t.Handle(ev); err != nil {
				if errors.Is(err, ErrQuit) {
					return nil
				}
				return err
			}
		}
		t.Draw()
	}
}

// Handle processes one terminal event. It returns ErrQuit when the user
// asks to leave.
func (t *Terminal) Handle(ev tcell.Event) error {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return t.handleKey(ev)
	case *tcell.EventMouse:
		t.handleMouse(ev)
	case *tcell.EventResize:
		t.screen.Sync()
	}
	return nil
}

func (t *Terminal) handleKey(ev *tcell.EventKey) error {
	switch {
	case isChord(ev, tcell.KeyCtrlQ, 'q'):
		return ErrQuit
	case isChord(ev, tcell.KeyCtrlS, 's'):
		if err := t.app.Save(); err != nil {
			t.SetStatus("%v", err)
			t.app.logger.Warn("%v", err)
		} else {
			t.SetStatus("saved %s", filepath.Base(t.app.opts.File))
		}
		return nil
	}

	k, ok := key.FromTcell(ev)
	if !ok {
		return nil
	}
	t.status = ""
	t.follow = true
	t.app.engine.HandleKey(k)
	return nil
}

// isChord matches a control chord. Some terminals report these as the
// control key code, others as a rune with the Ctrl modifier.
func isChord(ev *tcell.EventKey, k tcell.Key, r rune) bool {
	if ev.Key() == k {
		return true
	}
	return ev.Key() == tcell.KeyRune && ev.Modifiers()&tcell.ModCtrl != 0 &&
		(ev.Rune() == r || ev.Rune() == r-'a'+'A')
}

func (t *Terminal) handleMouse(ev *tcell.EventMouse) {
	doc := t.app.doc
	switch btn := ev.Buttons(); {
	case btn&tcell.WheelUp != 0:
		t.scroll(-wheelLines)
	case btn&tcell.WheelDown != 0:
		t.scroll(wheelLines)
	case btn&tcell.Button1 != 0:
		x, y := ev.Position()
		line := t.top + y
		if y >= t.viewHeight() || line >= doc.LineCount() {
			return
		}
		t.follow = true
		t.app.engine.SetSelection(document.Caret(offsetForColumn(doc, line, x)))
	}
}

func (t *Terminal) scroll(n int) {
	last := t.app.doc.LineCount() - 1
	top := t.top + n
	if top > last {
		top = last
	}
	if top < 0 {
		top = 0
	}
	if top == t.top {
		return
	}
	t.top = top
	t.follow = false
	t.app.engine.Scrolled()
}

func (t *Terminal) viewHeight() int {
	_, h := t.screen.Size()
	if h <= 1 {
		return h
	}
	return h - 1
}

// Draw repaints the whole screen.
func (t *Terminal) Draw() {
	t.screen.Clear()
	eng := t.app.engine
	doc := t.app.doc
	sel := eng.Selection()
	caretLine := doc.LineAt(sel.Head)
	viewH := t.viewHeight()

	if t.follow {
		if caretLine < t.top {
			t.top = caretLine
		} else if viewH > 0 && caretLine >= t.top+viewH {
			t.top = caretLine - viewH + 1
		}
	}

	decs := eng.Decorations()
	for y := 0; y < viewH; y++ {
		line := t.top + y
		if line >= doc.LineCount() {
			break
		}
		t.drawLine(y, line, decs, sel)
	}

	cx, cy := -1, -1
	if caretLine >= t.top && caretLine < t.top+viewH {
		cx, cy = columnForOffset(doc, sel.Head), caretLine-t.top
		t.screen.ShowCursor(cx, cy)
	} else {
		t.screen.HideCursor()
	}
	if cy >= 0 {
		t.drawLists(cx, cy, viewH)
	}
	t.drawStatus()
	t.screen.Show()
}

func (t *Terminal) drawLine(y, line int, decs []assist.Decoration, sel document.Selection) {
	doc := t.app.doc
	w, _ := t.screen.Size()
	start := doc.LineStartOffset(line)
	text := doc.LineText(line)

	var ghost *assist.Decoration
	for i := range decs {
		d := &decs[i]
		if isGhost(d.Kind) && d.Start == start {
			ghost = d
		}
	}

	x := 0
	for i, r := range text {
		if x >= w {
			return
		}
		off := start + int64(i)
		style := t.styleAt(off, decs, sel)
		if ghost != nil {
			style = t.theme.GhostLine
		}
		if r == '\t' {
			r = ' '
		}
		t.screen.SetContent(x, y, r, nil, style)
		x += runeWidth(r)
	}

	// An empty placeholder still needs to be visible.
	for _, d := range decs {
		if !isGhost(d.Kind) && d.Length == 0 && d.Start >= start && d.Start <= start+int64(len(text)) {
			px := columnForOffset(doc, d.Start)
			if px < w {
				mainc, _, _, _ := t.screen.GetContent(px, y)
				if mainc == 0 {
					mainc = ' '
				}
				t.screen.SetContent(px, y, mainc, nil, t.placeholderStyle(d.Kind))
			}
		}
	}

	if ghost != nil {
		style := t.theme.GhostText
		if ghost.Kind == assist.DecorGhostSelected {
			style = t.theme.GhostTextSelected
		}
		t.drawText(x, y, w, ghostArrow+ghost.Text, style)
	}
}

func (t *Terminal) styleAt(off int64, decs []assist.Decoration, sel document.Selection) tcell.Style {
	if !sel.IsEmpty() && off >= sel.Start() && off < sel.End() {
		return t.theme.Selection
	}
	for _, d := range decs {
		if !isGhost(d.Kind) && off >= d.Start && off < d.Start+d.Length {
			return t.placeholderStyle(d.Kind)
		}
	}
	return t.theme.Text
}

func (t *Terminal) placeholderStyle(k assist.DecorationKind) tcell.Style {
	if k == assist.DecorPlaceholderCurrent {
		return t.theme.PlaceholderCurrent
	}
	return t.theme.Placeholder
}

func isGhost(k assist.DecorationKind) bool {
	return k == assist.DecorGhost || k == assist.DecorGhostSelected
}

// listRow is one row of a drop-down list.
type listRow struct {
	label    string
	detail   string
	selected bool
}

// drawLists draws the completion popup, or the option chooser of the
// current placeholder, under the caret.
func (t *Terminal) drawLists(cx, cy, viewH int) {
	eng := t.app.engine
	var rows []listRow

	if p := eng.Popup(); eng.Mode() == assist.ModePopup && p.IsOpen() {
		for i, it := range p.Items() {
			rows = append(rows, listRow{label: it.Text, detail: it.Description, selected: i == p.Selected()})
		}
	} else if s := eng.Session(); s.Active() {
		if ch := s.Chooser(); ch != nil {
			for i, o := range ch.Options() {
				mark := ""
				if ch.Multi() {
					mark = "[ ] "
					if ch.IsToggled(i) {
						mark = "[x] "
					}
				}
				rows = append(rows, listRow{label: mark + o.Key + "  " + o.Value, selected: i == ch.Highlighted()})
			}
		}
	}
	if len(rows) == 0 {
		return
	}

	// Keep the highlighted row inside the visible window.
	n := len(rows)
	if n > maxPopupRows {
		n = maxPopupRows
	}
	first := 0
	for i, r := range rows {
		if r.selected && i >= n {
			first = i - n + 1
		}
	}
	rows = rows[first : first+n]

	width := 0
	for _, r := range rows {
		rw := uniseg.StringWidth(r.label) + 2
		if r.detail != "" {
			rw += uniseg.StringWidth(r.detail) + 2
		}
		width = max(width, rw)
	}

	y := cy + 1
	if y+n > viewH && cy-n >= 0 {
		y = cy - n
	}
	sw, _ := t.screen.Size()
	x := cx
	if x+width > sw {
		x = sw - width
	}
	if x < 0 {
		x = 0
	}

	for i, r := range rows {
		style, detail := t.theme.Popup, t.theme.PopupDescription
		if r.selected {
			style, detail = t.theme.PopupSelected, t.theme.PopupSelected
		}
		row := y + i
		t.fill(x, row, x+width, style)
		end := t.drawText(x+1, row, x+width, r.label, style)
		if r.detail != "" {
			t.drawText(end+2, row, x+width, r.detail, detail)
		}
	}
}

func (t *Terminal) drawStatus() {
	w, h := t.screen.Size()
	if h == 0 {
		return
	}
	y := h - 1
	t.fill(0, y, w, t.theme.Status)

	name := "[no file]"
	if f := t.app.opts.File; f != "" {
		name = filepath.Base(f)
	}
	left := " " + name
	if m := t.app.engine.Mode(); m != assist.ModeNone {
		left += "  " + strings.ToUpper(m.String())
	}
	if ph, ok := t.app.engine.Session().Current(); ok && ph.Title != "" {
		left += "  " + ph.Title
	}
	if t.status != "" {
		left += "  " + t.status
	}
	t.drawText(0, y, w, left, t.theme.Status)

	right := "^S save  ^Q quit "
	if rx := w - uniseg.StringWidth(right); rx > uniseg.StringWidth(left)+1 {
		t.drawText(rx, y, w, right, t.theme.Status)
	}
}

// drawText draws s from x, clipped at limit, and returns the column after
// the last cell drawn.
func (t *Terminal) drawText(x, y, limit int, s string, style tcell.Style) int {
	for _, r := range s {
		rw := runeWidth(r)
		if x+rw > limit {
			break
		}
		t.screen.SetContent(x, y, r, nil, style)
		x += rw
	}
	return x
}

func (t *Terminal) fill(x, y, limit int, style tcell.Style) {
	for ; x < limit; x++ {
		t.screen.SetContent(x, y, ' ', nil, style)
	}
}

func runeWidth(r rune) int {
	if r == '\t' {
		return 1
	}
	if w := uniseg.StringWidth(string(r)); w > 0 {
		return w
	}
	return 1
}

// columnForOffset returns the screen column of off within its line.
func columnForOffset(doc *document.Document, off int64) int {
	line := doc.LineAt(off)
	col := 0
	for _, r := range doc.TextRange(doc.LineStartOffset(line), off) {
		col += runeWidth(r)
	}
	return col
}

// offsetForColumn returns the offset of the cell at column x of line,
// clamped to the line end.
func offsetForColumn(doc *document.Document, line, x int) int64 {
	start := doc.LineStartOffset(line)
	col := 0
	for i, r := range doc.LineText(line) {
		rw := runeWidth(r)
		if col+rw > x {
			return start + int64(i)
		}
		col += rw
	}
	return doc.LineEndOffset(line)
}
