package app

import (
	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// Theme holds the styles the terminal host paints with.
type Theme struct {
	Text               tcell.Style
	Selection          tcell.Style
	Placeholder        tcell.Style
	PlaceholderCurrent tcell.Style
	GhostLine          tcell.Style
	GhostText          tcell.Style
	GhostTextSelected  tcell.Style
	Popup              tcell.Style
	PopupSelected      tcell.Style
	PopupDescription   tcell.Style
	Status             tcell.Style
}

// DefaultTheme returns the built-in palette.
func DefaultTheme() Theme {
	base := tcell.StyleDefault
	return Theme{
		Text:               base,
		Selection:          base.Reverse(true),
		Placeholder:        base.Background(hex("#2f3b54")),
		PlaceholderCurrent: base.Background(hex("#5f87af")).Foreground(hex("#ffffff")),
		GhostLine:          base.Foreground(hex("#8a8a8a")),
		GhostText:          base.Foreground(hex("#5faf5f")).Italic(true),
		GhostTextSelected:  base.Foreground(hex("#87d787")).Bold(true),
		Popup:              base.Background(hex("#303030")).Foreground(hex("#d0d0d0")),
		PopupSelected:      base.Background(hex("#5f87af")).Foreground(hex("#ffffff")),
		PopupDescription:   base.Background(hex("#303030")).Foreground(hex("#8a8a8a")),
		Status:             base.Background(hex("#3a3a3a")).Foreground(hex("#e4e4e4")),
	}
}

// hex converts a "#rrggbb" string to a terminal color. Invalid input maps
// to the terminal default.
func hex(s string) tcell.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		return tcell.ColorDefault
	}
	r, g, b := c.RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
