package assist

import (
	"testing"

	"github.com/dshills/reportassist/internal/completion"
	"github.com/dshills/reportassist/internal/popup"
)

func (h *harness) selected() string {
	sel := h.engine.Selection()
	return h.doc.TextRange(sel.Start(), sel.End())
}

func TestEngine_CRLFSnippetKeepsPlaceholderSpans(t *testing.T) {
	h := newHarness(t, "", nil)
	if err := h.engine.InsertSnippet("Findings:\r\n${0^aaa} and ${0^bbb}."); err != nil {
		t.Fatal(err)
	}

	if got := h.doc.Text(); got != "Findings:\naaa and bbb." {
		t.Fatalf("text = %q", got)
	}
	if got := h.selected(); got != "aaa" {
		t.Errorf("first placeholder selects %q, want %q", got, "aaa")
	}
	decs := h.engine.Decorations()
	if len(decs) != 2 || decs[0].Start != 10 || decs[1].Start != 18 {
		t.Errorf("decorations = %+v", decs)
	}

	h.press("Tab")
	if got := h.selected(); got != "bbb" {
		t.Errorf("second placeholder selects %q, want %q", got, "bbb")
	}
	h.press("Tab")
	if h.engine.Session().Active() {
		t.Fatal("session still active")
	}
	if got := h.engine.Selection().Head; got != h.doc.Len()-1 {
		t.Errorf("caret = %d, want %d", got, h.doc.Len()-1)
	}
}

func TestEngine_CRLFInsertKeepsCaretInDocument(t *testing.T) {
	tests := []struct {
		name string
		run  func(h *harness)
		want string
	}{
		{
			name: "typed text",
			run:  func(h *harness) { h.engine.insert("a\r\nb") },
			want: "a\nb",
		},
		{
			name: "hotkey commit",
			run: func(h *harness) {
				h.engine.applyCommit(popup.Commit{
					Item:          completion.Item{Text: "two", Kind: completion.KindHotkey, Insert: "one\r\ntwo\rthree"},
					TrailingSpace: true,
				})
			},
			want: "one\ntwo\nthree ",
		},
		{
			name: "plain snippet",
			run: func(h *harness) {
				if err := h.engine.InsertSnippet("x\r\ny"); err != nil {
					t.Fatal(err)
				}
			},
			want: "x\ny",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, "", nil)
			tt.run(h)
			if got := h.doc.Text(); got != tt.want {
				t.Fatalf("text = %q, want %q", got, tt.want)
			}
			if got := h.engine.Selection().Head; got != h.doc.Len() {
				t.Errorf("caret = %d, document length %d", got, h.doc.Len())
			}
		})
	}
}
