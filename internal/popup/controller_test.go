package popup

import (
	"errors"
	"testing"

	"github.com/dshills/reportassist/internal/completion"
	"github.com/dshills/reportassist/internal/engine/document"
	"github.com/dshills/reportassist/internal/input/key"
)

func staticSource(texts ...string) completion.Source {
	return completion.SourceFunc(func(ctx completion.Context) []completion.Item {
		var out []completion.Item
		for _, t := range texts {
			out = append(out, completion.Item{Text: t, Priority: 1})
		}
		return out
	})
}

type countingSource struct {
	calls int
	inner completion.Source
}

func (s *countingSource) Completions(ctx completion.Context) []completion.Item {
	s.calls++
	return s.inner.Completions(ctx)
}

func TestWordBefore(t *testing.T) {
	tests := []struct {
		text      string
		caret     int64
		wantStart int64
		wantWord  string
	}{
		{"hello", 5, 0, "hello"},
		{"a hel", 5, 2, "hel"},
		{"x1abc", 5, 2, "abc"},
		{"abc ", 4, 4, ""},
		{"é nod", 6, 3, "nod"},
		{"nödul", 6, 0, "nödul"},
		{"", 0, 0, ""},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			start, word := WordBefore(document.New(tt.text), tt.caret)
			if start != tt.wantStart || word != tt.wantWord {
				t.Errorf("WordBefore() = (%d, %q), want (%d, %q)", start, word, tt.wantStart, tt.wantWord)
			}
		})
	}
}

func TestWordAround(t *testing.T) {
	doc := document.New("the liver is")
	start, end := WordAround(doc, 6)
	if start != 4 || end != 9 {
		t.Errorf("WordAround() = (%d, %d), want (4, 9)", start, end)
	}
}

func TestController_OpensAtMinChars(t *testing.T) {
	c := New(staticSource("liver", "lung"), WithMinChars(2))
	doc := document.New("l")
	c.Update(doc, 1)
	if c.IsOpen() {
		t.Fatal("opened below the minimum")
	}
	doc = document.New("li")
	c.Update(doc, 2)
	if !c.IsOpen() {
		t.Fatal("did not open at the minimum")
	}
	if c.Selected() != -1 {
		t.Errorf("Selected() = %d, want none", c.Selected())
	}
	word, start, end := c.Word()
	if word != "li" || start != 0 || end != 2 {
		t.Errorf("Word() = %q [%d,%d)", word, start, end)
	}
}

func TestController_RanksAndPreselectsExact(t *testing.T) {
	c := New(staticSource("Lungs", "lung", "alung", "lunge"))
	doc := document.New("the lung")
	c.Update(doc, doc.Len())

	items := c.Items()
	if items[0].Text != "lung" {
		t.Errorf("first item = %q", items[0].Text)
	}
	if got, ok := c.SelectedItem(); !ok || got.Text != "lung" {
		t.Errorf("SelectedItem() = %v, %v", got, ok)
	}
	if items[len(items)-1].Text != "alung" {
		t.Errorf("last item = %q", items[len(items)-1].Text)
	}
}

func TestController_SkipsUnchangedWord(t *testing.T) {
	src := &countingSource{inner: staticSource("liver")}
	c := New(src)
	doc := document.New("liv")
	c.Update(doc, 3)
	c.Update(doc, 3)
	if src.calls != 1 {
		t.Errorf("source called %d times, want 1", src.calls)
	}
}

func TestController_ClosesWhenNothingMatches(t *testing.T) {
	c := New(staticSource())
	c.Update(document.New("abc"), 3)
	if c.IsOpen() {
		t.Error("opened with no items")
	}
}

func TestController_MaxItems(t *testing.T) {
	c := New(staticSource("aa", "ab", "ac", "ad"), WithMaxItems(2))
	c.Update(document.New("aa"), 2)
	if len(c.Items()) != 2 {
		t.Errorf("len(Items()) = %d", len(c.Items()))
	}
}

func TestController_Navigation(t *testing.T) {
	c := New(staticSource("abc", "abd", "abe"))
	c.Update(document.New("ab"), 2)

	c.MoveDown()
	if c.Selected() != 0 {
		t.Errorf("from none, Down = %d", c.Selected())
	}
	c.MoveUp()
	if c.Selected() != 2 {
		t.Errorf("Up from first wraps to %d", c.Selected())
	}
	c.MoveDown()
	if c.Selected() != 0 {
		t.Errorf("Down from last wraps to %d", c.Selected())
	}
}

func TestController_HandleKey(t *testing.T) {
	tests := []struct {
		name         string
		selected     int
		spec         string
		wantCommit   bool
		wantConsumed bool
		wantSpace    bool
		wantOpen     bool
	}{
		{"enter commits", 0, "Enter", true, true, false, false},
		{"enter without selection", -1, "Enter", false, false, false, false},
		{"tab commits", 0, "Tab", true, true, false, false},
		{"space commits with space", 0, "Space", true, true, true, false},
		{"space without selection", -1, "Space", false, false, false, false},
		{"punctuation commits first", 0, ",", true, false, false, false},
		{"punctuation without selection", -1, ".", false, false, false, true},
		{"letter types", 0, "x", false, false, false, true},
		{"digit types", 0, "4", false, false, false, true},
		{"escape closes", 0, "Escape", false, true, false, false},
		{"down navigates", 0, "Down", false, true, false, true},
		{"alt arrow passes", 0, "Alt+Down", false, false, false, true},
		{"backspace types", 0, "Backspace", false, false, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(staticSource("abc", "abd"))
			c.Update(document.New("ab"), 2)
			c.Select(tt.selected)

			d := c.HandleKey(key.MustParse(tt.spec))
			if (d.Commit != nil) != tt.wantCommit {
				t.Fatalf("Commit = %v, want %v", d.Commit, tt.wantCommit)
			}
			if d.Consumed != tt.wantConsumed {
				t.Errorf("Consumed = %v, want %v", d.Consumed, tt.wantConsumed)
			}
			if d.Commit != nil {
				if d.Commit.TrailingSpace != tt.wantSpace {
					t.Errorf("TrailingSpace = %v", d.Commit.TrailingSpace)
				}
				if d.Commit.Start != 0 || d.Commit.End != 2 {
					t.Errorf("commit range = [%d,%d)", d.Commit.Start, d.Commit.End)
				}
			}
			if c.IsOpen() != tt.wantOpen {
				t.Errorf("IsOpen() = %v, want %v", c.IsOpen(), tt.wantOpen)
			}
		})
	}
}

func TestController_CommitWithoutSelection(t *testing.T) {
	c := New(staticSource("abc"))
	if _, err := c.Commit(); !errors.Is(err, ErrNoSelection) {
		t.Errorf("Commit() error = %v", err)
	}
}

func TestController_HomeEndClosesOutsideWord(t *testing.T) {
	doc := document.New("the liv")
	c := New(staticSource("liver"))
	c.Update(doc, 7)

	c.CaretMoved(doc, 7, key.KeyEnd)
	if !c.IsOpen() {
		t.Fatal("End within the word closed the popup")
	}
	c.CaretMoved(doc, 0, key.KeyHome)
	if c.IsOpen() {
		t.Error("Home outside the word left the popup open")
	}
}

func TestController_LeftRightReselects(t *testing.T) {
	doc := document.New("lung liver")
	c := New(staticSource("lung", "liver"))
	c.Update(doc, 2) // word "lu"
	if c.Selected() != -1 {
		t.Fatalf("Selected() = %d", c.Selected())
	}

	c.CaretMoved(doc, 3, key.KeyRight)
	got, ok := c.SelectedItem()
	if !ok || got.Text != "lung" {
		t.Errorf("after Right, SelectedItem() = %v, %v", got, ok)
	}
	if _, start, end := c.Word(); start != 0 || end != 4 {
		t.Errorf("word range = [%d,%d)", start, end)
	}

	c.CaretMoved(doc, 4, key.KeyLeft)
	c.CaretMoved(doc, 5, key.KeyRight)
	if got, ok := c.SelectedItem(); !ok || got.Text != "liver" {
		t.Errorf("caret at the next word, SelectedItem() = %v, %v", got, ok)
	}
}

func TestController_OpenHook(t *testing.T) {
	opened := 0
	c := New(staticSource("abc", "abd"), WithOpenHook(func() { opened++ }))
	c.Update(document.New("ab"), 2)
	c.Update(document.New("abc"), 3)
	if opened != 1 {
		t.Errorf("open hook ran %d times, want 1", opened)
	}
}
