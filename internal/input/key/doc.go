// Package key provides the key event model consumed by the suggestion engine.
//
// This package defines:
//
//   - Key: identifies a special key, or KeyRune for characters
//   - Modifier: Ctrl, Alt, Shift, Meta
//   - Event: a single key press
//
// Key specifications used by tests and configuration can be written as
// "a", "Enter", "Tab", "Alt+Up" or "Ctrl+Space". Terminal hosts convert
// tcell events with FromTcell.
package key
