package completion

import (
	"errors"
	"testing"
)

const luaScript = `
function completions(word, line)
  if word == "boom" then error("kaboom") end
  local out = {}
  if string.sub("pneumothorax", 1, #word) == word then
    table.insert(out, "pneumothorax")
  end
  table.insert(out, { text = "pnx", insert = "No pneumothorax.", kind = "hotkey", priority = 4 })
  table.insert(out, { description = "no text, skipped" })
  return out
end
`

func TestLuaSource(t *testing.T) {
	src, err := NewLuaSource(luaScript)
	if err != nil {
		t.Fatalf("NewLuaSource() error: %v", err)
	}
	defer src.Close()

	items := src.Completions(Context{Word: "pneu"})
	if len(items) != 2 {
		t.Fatalf("items = %+v", items)
	}
	if items[0].Text != "pneumothorax" || items[0].Kind != KindToken {
		t.Errorf("items[0] = %+v", items[0])
	}
	if items[1].Kind != KindHotkey || items[1].InsertText() != "No pneumothorax." || items[1].Priority != 4 {
		t.Errorf("items[1] = %+v", items[1])
	}

	if got := src.Completions(Context{Word: "boom"}); got != nil {
		t.Errorf("script error should yield no items, got %v", got)
	}
}

func TestLuaSource_Sandboxed(t *testing.T) {
	src, err := NewLuaSource(`
function completions(word)
  return { tostring(io == nil), tostring(os == nil), tostring(dofile == nil) }
end`)
	if err != nil {
		t.Fatal(err)
	}
	defer src.Close()
	for _, it := range src.Completions(Context{Word: "x"}) {
		if it.Text != "true" {
			t.Errorf("unsafe global reachable: %+v", src.Completions(Context{Word: "x"}))
			break
		}
	}
}

func TestLuaSource_Errors(t *testing.T) {
	if _, err := NewLuaSource(`x = 1`); !errors.Is(err, ErrNoCompletionsFunc) {
		t.Errorf("missing function err = %v", err)
	}
	if _, err := NewLuaSource(`function (`); err == nil {
		t.Error("syntax error should fail")
	}

	src, err := NewLuaSource(`function completions() while true do end end`)
	if err != nil {
		t.Fatal(err)
	}
	defer src.Close()
	if got := src.Completions(Context{Word: "x"}); got != nil {
		t.Errorf("timed out script returned %v", got)
	}

	src.Close()
	if _, err := src.call(Context{}); !errors.Is(err, ErrSourceClosed) {
		t.Errorf("closed source err = %v", err)
	}
}
