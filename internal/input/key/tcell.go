package key

import "github.com/gdamore/tcell/v2"

// FromTcell converts a tcell key event. The second result is false for keys
// the engine has no use for (function keys, control chords).
func FromTcell(ev *tcell.EventKey) (Event, bool) {
	mods := fromTcellMod(ev.Modifiers())
	if ev.Key() == tcell.KeyRune {
		return NewRuneEvent(ev.Rune(), mods), true
	}
	k := fromTcellKey(ev.Key())
	if k == KeyNone {
		return Event{}, false
	}
	return NewSpecialEvent(k, mods), true
}

func fromTcellKey(k tcell.Key) Key {
	switch k {
	case tcell.KeyEscape:
		return KeyEscape
	case tcell.KeyEnter:
		return KeyEnter
	case tcell.KeyTab:
		return KeyTab
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return KeyBackspace
	case tcell.KeyDelete:
		return KeyDelete
	case tcell.KeyHome:
		return KeyHome
	case tcell.KeyEnd:
		return KeyEnd
	case tcell.KeyPgUp:
		return KeyPageUp
	case tcell.KeyPgDn:
		return KeyPageDown
	case tcell.KeyUp:
		return KeyUp
	case tcell.KeyDown:
		return KeyDown
	case tcell.KeyLeft:
		return KeyLeft
	case tcell.KeyRight:
		return KeyRight
	default:
		return KeyNone
	}
}

func fromTcellMod(m tcell.ModMask) Modifier {
	var result Modifier
	if m&tcell.ModShift != 0 {
		result |= ModShift
	}
	if m&tcell.ModCtrl != 0 {
		result |= ModCtrl
	}
	if m&tcell.ModAlt != 0 {
		result |= ModAlt
	}
	if m&tcell.ModMeta != 0 {
		result |= ModMeta
	}
	return result
}
