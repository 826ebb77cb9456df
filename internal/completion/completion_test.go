package completion

import (
	"testing"

	"github.com/dshills/reportassist/internal/library"
)

func TestRank_OrderAndTieBreak(t *testing.T) {
	items := []Item{
		{Text: "hyperdense", Priority: 1},
		{Text: "hyper", Priority: 1},
		{Text: "Hypodense", Priority: 1},
		{Text: "hypodense", Priority: 1},
		{Text: "chyperx", Priority: 1},
	}
	got := Rank(items, "hyper")

	if got[0].Text != "hyper" {
		t.Errorf("first = %q, want exact match", got[0].Text)
	}
	if got[1].Text != "hyperdense" {
		t.Errorf("second = %q, want prefix match", got[1].Text)
	}
	if got[len(got)-1].Text == "hyper" {
		t.Error("exact match sorted last")
	}
	// equal priority: case-insensitive text order
	var hypo []string
	for _, it := range got {
		if it.Text == "Hypodense" || it.Text == "hypodense" {
			hypo = append(hypo, it.Text)
		}
	}
	if len(hypo) != 2 || hypo[0] != "Hypodense" {
		t.Errorf("tie order = %v", hypo)
	}
	if items[0].Priority != 1 {
		t.Error("Rank modified its input")
	}
}

func TestAdjustPriority(t *testing.T) {
	exact := AdjustPriority(Item{Text: "liver"}, "liver")
	prefix := AdjustPriority(Item{Text: "livers"}, "liver")
	longPrefix := AdjustPriority(Item{Text: "liverish-lesion"}, "liver")
	contains := AdjustPriority(Item{Text: "deliver"}, "liver")

	if !(exact.Priority > prefix.Priority && prefix.Priority > longPrefix.Priority && longPrefix.Priority > contains.Priority) {
		t.Errorf("priorities exact=%v prefix=%v long=%v contains=%v",
			exact.Priority, prefix.Priority, longPrefix.Priority, contains.Priority)
	}
}

func TestExactIndex(t *testing.T) {
	items := []Item{{Text: "Liver"}, {Text: "lung"}}
	if ExactIndex(items, "liver") != 0 {
		t.Error("ExactIndex should ignore case")
	}
	if ExactIndex(items, "li") != -1 {
		t.Error("partial word should not match")
	}
}

func TestLibrarySource(t *testing.T) {
	store := library.NewStore(&library.Library{
		Tokens:   []library.Token{{Text: "Normal"}, {Text: "nodule"}, {Text: "mass"}},
		Hotkeys:  []library.Hotkey{{Trigger: "nad", Text: "No acute disease."}},
		Snippets: []library.Snippet{{Trigger: "nosnip", Template: "${1^side=l^left|r^right} kidney"}},
	})
	src := NewLibrarySource(store)

	items := src.Completions(Context{Word: "no"})
	kinds := map[string]Kind{}
	for _, it := range items {
		kinds[it.Text] = it.Kind
	}
	if len(items) != 3 {
		t.Fatalf("items = %+v", items)
	}
	if kinds["Normal"] != KindToken || kinds["nodule"] != KindToken || kinds["nosnip"] != KindSnippet {
		t.Errorf("kinds = %v", kinds)
	}

	items = src.Completions(Context{Word: "NA"})
	if len(items) != 1 || items[0].InsertText() != "No acute disease." {
		t.Errorf("hotkey items = %+v", items)
	}

	items = src.Completions(Context{Word: "nos"})
	if len(items) != 1 || items[0].Description != "left kidney" {
		t.Errorf("snippet description = %+v", items)
	}

	if got := src.Completions(Context{}); got != nil {
		t.Errorf("empty word returned %v", got)
	}
}

func TestComposite_Dedupes(t *testing.T) {
	a := SourceFunc(func(Context) []Item { return []Item{{Text: "Liver", Description: "a"}} })
	b := SourceFunc(func(Context) []Item {
		return []Item{{Text: "liver", Description: "b"}, {Text: "lung"}}
	})
	items := Composite{a, nil, b}.Completions(Context{Word: "l"})
	if len(items) != 2 || items[0].Description != "a" {
		t.Errorf("items = %+v", items)
	}
}
