package app

import (
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
)

func newTestTerminal(t *testing.T, report string) (*Terminal, tcell.SimulationScreen, string) {
	t.Helper()
	app, file := newTestApp(t, "", report)
	sim := tcell.NewSimulationScreen("UTF-8")
	if err := sim.Init(); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(sim.Fini)
	sim.SetSize(40, 10)
	return NewTerminal(app, sim), sim, file
}

func rowText(s tcell.Screen, y int) string {
	w, _ := s.Size()
	var b strings.Builder
	for x := 0; x < w; x++ {
		r, _, _, _ := s.GetContent(x, y)
		if r == 0 {
			r = ' '
		}
		b.WriteRune(r)
	}
	return strings.TrimRight(b.String(), " ")
}

func screenText(s tcell.Screen) string {
	_, h := s.Size()
	rows := make([]string, h)
	for y := range rows {
		rows[y] = rowText(s, y)
	}
	return strings.Join(rows, "\n")
}

func typeKeys(t *testing.T, term *Terminal, s string) {
	t.Helper()
	for _, r := range s {
		if err := term.Handle(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)); err != nil {
			t.Fatal(err)
		}
	}
}

func pressKey(t *testing.T, term *Terminal, k tcell.Key) error {
	t.Helper()
	return term.Handle(tcell.NewEventKey(k, 0, tcell.ModNone))
}

func TestTerminal_DrawsDocumentAndStatus(t *testing.T) {
	term, sim, _ := newTestTerminal(t, "FINDINGS:\nLiver normal.")
	term.Draw()

	if got := rowText(sim, 0); got != "FINDINGS:" {
		t.Errorf("row 0 = %q", got)
	}
	if got := rowText(sim, 1); got != "Liver normal." {
		t.Errorf("row 1 = %q", got)
	}
	status := rowText(sim, 9)
	if !strings.Contains(status, "report.txt") || !strings.Contains(status, "^Q quit") {
		t.Errorf("status = %q", status)
	}
}

func TestTerminal_PopupCommitAndSave(t *testing.T) {
	term, sim, file := newTestTerminal(t, "")
	typeKeys(t, term, "lu")
	term.Draw()

	if got := rowText(sim, 1); !strings.Contains(got, "lung") {
		t.Fatalf("row 1 = %q, want the popup", got)
	}
	if !strings.Contains(rowText(sim, 9), "POPUP") {
		t.Errorf("status = %q", rowText(sim, 9))
	}

	if err := pressKey(t, term, tcell.KeyDown); err != nil {
		t.Fatal(err)
	}
	if err := pressKey(t, term, tcell.KeyEnter); err != nil {
		t.Fatal(err)
	}
	term.Draw()
	if got := rowText(sim, 0); !strings.HasPrefix(got, "lung") {
		t.Errorf("row 0 = %q after commit", got)
	}
	if got := rowText(sim, 1); got != "" {
		t.Errorf("row 1 = %q, popup should be closed", got)
	}

	if err := pressKey(t, term, tcell.KeyCtrlS); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(file)
	if err != nil {
		t.Fatal(err)
	}
	if want := term.app.Engine().Document().Text(); string(data) != want || !strings.HasPrefix(want, "lung") {
		t.Errorf("saved %q", data)
	}
	term.Draw()
	if !strings.Contains(rowText(sim, 9), "saved report.txt") {
		t.Errorf("status = %q", rowText(sim, 9))
	}
}

func TestTerminal_SnippetChooser(t *testing.T) {
	term, sim, _ := newTestTerminal(t, "")
	typeKeys(t, term, "sidek")
	if err := pressKey(t, term, tcell.KeyDown); err != nil {
		t.Fatal(err)
	}
	if err := pressKey(t, term, tcell.KeyTab); err != nil {
		t.Fatal(err)
	}
	term.Draw()

	screen := screenText(sim)
	if !strings.Contains(screen, "r  right") {
		t.Errorf("chooser not drawn:\n%s", screen)
	}
	status := rowText(sim, 9)
	if !strings.Contains(status, "PLACEHOLDER") || !strings.Contains(status, "side") {
		t.Errorf("status = %q", status)
	}
}

func TestTerminal_Quit(t *testing.T) {
	term, _, _ := newTestTerminal(t, "")
	if err := pressKey(t, term, tcell.KeyCtrlQ); !errors.Is(err, ErrQuit) {
		t.Errorf("Ctrl+Q = %v, want ErrQuit", err)
	}
	err := term.Handle(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModCtrl))
	if !errors.Is(err, ErrQuit) {
		t.Errorf("Ctrl+q rune = %v, want ErrQuit", err)
	}
}

func TestTerminal_MouseClickMovesCaret(t *testing.T) {
	term, _, _ := newTestTerminal(t, "abc\ndefgh")
	term.Draw()
	if err := term.Handle(tcell.NewEventMouse(3, 1, tcell.Button1, tcell.ModNone)); err != nil {
		t.Fatal(err)
	}
	if got := term.app.Engine().Selection().Head; got != 7 {
		t.Errorf("caret = %d, want 7", got)
	}
	// Past the end of the line clamps to the line end.
	if err := term.Handle(tcell.NewEventMouse(30, 0, tcell.Button1, tcell.ModNone)); err != nil {
		t.Fatal(err)
	}
	if got := term.app.Engine().Selection().Head; got != 3 {
		t.Errorf("caret = %d, want 3", got)
	}
}

func TestTerminal_WheelScrolls(t *testing.T) {
	lines := make([]string, 30)
	for i := range lines {
		lines[i] = "line"
	}
	term, _, _ := newTestTerminal(t, strings.Join(lines, "\n"))
	term.Draw()
	top := term.top

	if err := term.Handle(tcell.NewEventMouse(0, 0, tcell.WheelUp, tcell.ModNone)); err != nil {
		t.Fatal(err)
	}
	if term.top != top-wheelLines {
		t.Errorf("top = %d, want %d", term.top, top-wheelLines)
	}
	term.Draw()
	if term.top != top-wheelLines {
		t.Error("redraw snapped back to the caret after scrolling")
	}
}

func TestColumnMapping(t *testing.T) {
	term, _, _ := newTestTerminal(t, "a\tb\nçé")
	doc := term.app.doc
	if got := columnForOffset(doc, 2); got != 2 {
		t.Errorf("columnForOffset(2) = %d", got)
	}
	// Line 1 starts at 4; "ç" is two bytes.
	if got := offsetForColumn(doc, 1, 1); got != 6 {
		t.Errorf("offsetForColumn(1, 1) = %d, want 6", got)
	}
}
