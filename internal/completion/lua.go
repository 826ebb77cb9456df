package completion

import (
	"context"
	"fmt"
	"sync"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/reportassist/internal/logging"
)

// DefaultLuaTimeout bounds a single completions call.
const DefaultLuaTimeout = 50 * time.Millisecond

// LuaSource asks a user script for completions. The script defines
//
//	function completions(word, line)
//	  return { "plain", { text = "nad", insert = "No acute disease.", kind = "hotkey" } }
//	end
//
// Entries may be strings or tables with text, description, priority, kind
// and insert fields. Script errors are logged and yield no items.
type LuaSource struct {
	mu      sync.Mutex
	L       *lua.LState
	timeout time.Duration
	logger  *logging.Logger
	closed  bool
}

// LuaOption configures a LuaSource.
type LuaOption func(*LuaSource)

// WithLuaTimeout bounds each completions call.
func WithLuaTimeout(d time.Duration) LuaOption {
	return func(s *LuaSource) {
		s.timeout = d
	}
}

// WithLuaLogger sets the source's logger.
func WithLuaLogger(l *logging.Logger) LuaOption {
	return func(s *LuaSource) {
		s.logger = l
	}
}

// NewLuaSource runs code in a fresh sandboxed state.
func NewLuaSource(code string, opts ...LuaOption) (*LuaSource, error) {
	return newLuaSource(opts, func(L *lua.LState) error { return L.DoString(code) })
}

// NewLuaSourceFile runs the script at path in a fresh sandboxed state.
func NewLuaSourceFile(path string, opts ...LuaOption) (*LuaSource, error) {
	return newLuaSource(opts, func(L *lua.LState) error { return L.DoFile(path) })
}

func newLuaSource(opts []LuaOption, load func(*lua.LState) error) (*LuaSource, error) {
	s := &LuaSource{timeout: DefaultLuaTimeout}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = logging.OrNull(s.logger).WithComponent("completion.lua")

	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	openSafeLibraries(L)
	if err := load(L); err != nil {
		L.Close()
		return nil, fmt.Errorf("loading completion script: %w", err)
	}
	if fn := L.GetGlobal("completions"); fn.Type() != lua.LTFunction {
		L.Close()
		return nil, ErrNoCompletionsFunc
	}
	s.L = L
	return s, nil
}

// openSafeLibraries opens base, table, string and math, then removes the
// loaders that could reach the file system.
func openSafeLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require"} {
		L.SetGlobal(name, lua.LNil)
	}
}

// Completions implements Source.
func (s *LuaSource) Completions(cctx Context) []Item {
	items, err := s.call(cctx)
	if err != nil {
		s.logger.Warn("completions(%q) failed: %v", cctx.Word, err)
		return nil
	}
	return items
}

func (s *LuaSource) call(cctx Context) (items []Item, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrSourceClosed
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	s.L.SetContext(ctx)
	defer s.L.RemoveContext()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
	}()

	err = s.L.CallByParam(lua.P{
		Fn:      s.L.GetGlobal("completions"),
		NRet:    1,
		Protect: true,
	}, lua.LString(cctx.Word), lua.LString(cctx.LineText))
	if err != nil {
		return nil, err
	}
	ret := s.L.Get(-1)
	s.L.Pop(1)

	tbl, ok := ret.(*lua.LTable)
	if !ok {
		if ret == lua.LNil {
			return nil, nil
		}
		return nil, fmt.Errorf("completions returned %s, want table", ret.Type())
	}
	tbl.ForEach(func(_, v lua.LValue) {
		if it, ok := itemFromLua(v); ok {
			items = append(items, it)
		}
	})
	return items, nil
}

func itemFromLua(v lua.LValue) (Item, bool) {
	switch v := v.(type) {
	case lua.LString:
		if v == "" {
			return Item{}, false
		}
		return Item{Text: string(v), Priority: TokenPriority, Kind: KindToken}, true
	case *lua.LTable:
		text := lua.LVAsString(v.RawGetString("text"))
		if text == "" {
			return Item{}, false
		}
		it := Item{
			Text:        text,
			Description: lua.LVAsString(v.RawGetString("description")),
			Kind:        ParseKind(lua.LVAsString(v.RawGetString("kind"))),
			Insert:      lua.LVAsString(v.RawGetString("insert")),
			Priority:    TokenPriority,
		}
		if p, ok := v.RawGetString("priority").(lua.LNumber); ok {
			it.Priority = float64(p)
		}
		return it, true
	}
	return Item{}, false
}

// Close releases the Lua state.
func (s *LuaSource) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.L.Close()
}
