package key

import "strings"

// Modifier is a bit set of held modifier keys.
type Modifier uint8

// Modifier bits. Meta is Cmd on macOS.
const (
	ModNone  Modifier = 0
	ModShift Modifier = 1 << (iota - 1)
	ModCtrl
	ModAlt
	ModMeta
)

// modifierNames lists the bits in the order String prints them.
var modifierNames = [...]struct {
	mod  Modifier
	name string
}{
	{ModCtrl, "Ctrl"},
	{ModAlt, "Alt"},
	{ModShift, "Shift"},
	{ModMeta, "Meta"},
}

// Has reports whether any bit of mod is held.
func (m Modifier) Has(mod Modifier) bool {
	return m&mod != 0
}

// HasShift reports whether Shift is held. Shift extends the selection.
func (m Modifier) HasShift() bool { return m.Has(ModShift) }

// HasAlt reports whether Alt is held. Alt+Arrow belongs to the host.
func (m Modifier) HasAlt() bool { return m.Has(ModAlt) }

// String joins the held modifiers with "+", e.g. "Ctrl+Alt".
func (m Modifier) String() string {
	var parts []string
	for _, n := range modifierNames {
		if m.Has(n.mod) {
			parts = append(parts, n.name)
		}
	}
	return strings.Join(parts, "+")
}

// parseModifier accepts the names String prints, case-insensitively, plus
// "Cmd" for Meta.
func parseModifier(name string) (Modifier, bool) {
	name = strings.TrimSpace(name)
	if strings.EqualFold(name, "cmd") {
		return ModMeta, true
	}
	for _, n := range modifierNames {
		if strings.EqualFold(name, n.name) {
			return n.mod, true
		}
	}
	return ModNone, false
}
