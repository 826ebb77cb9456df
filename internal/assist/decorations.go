package assist

// DecorationKind classifies a highlighted region.
type DecorationKind uint8

const (
	// DecorGhost marks a line with a pending ghost suggestion.
	DecorGhost DecorationKind = iota
	// DecorGhostSelected marks the line of the selected suggestion.
	DecorGhostSelected
	// DecorPlaceholder marks a snippet placeholder.
	DecorPlaceholder
	// DecorPlaceholderCurrent marks the placeholder being edited.
	DecorPlaceholderCurrent
)

// String returns the kind name.
func (k DecorationKind) String() string {
	switch k {
	case DecorGhost:
		return "ghost"
	case DecorGhostSelected:
		return "ghost-selected"
	case DecorPlaceholder:
		return "placeholder"
	case DecorPlaceholderCurrent:
		return "placeholder-current"
	default:
		return "unknown"
	}
}

// Decoration is a region the renderer should highlight.
type Decoration struct {
	Start  int64
	Length int64
	Kind   DecorationKind
	// Text is the proposed replacement for ghost decorations.
	Text string
}

// Decorations returns the regions to highlight for the current state,
// ordered by start offset. Call it on every repaint.
func (e *Engine) Decorations() []Decoration {
	switch e.arbiter.Mode() {
	case ModeGhosts:
		return e.ghostDecorations()
	case ModePlaceholder:
		return e.placeholderDecorations()
	}
	return nil
}

func (e *Engine) ghostDecorations() []Decoration {
	items := e.ghosts.Items()
	sel := e.ghosts.SelectedIndex()
	out := make([]Decoration, 0, len(items))
	for i, g := range items {
		if g.Line >= e.doc.LineCount() {
			continue
		}
		start := e.doc.LineStartOffset(g.Line)
		kind := DecorGhost
		if i == sel {
			kind = DecorGhostSelected
		}
		out = append(out, Decoration{
			Start:  start,
			Length: e.doc.LineEndOffset(g.Line) - start,
			Kind:   kind,
			Text:   g.Text,
		})
	}
	return out
}

func (e *Engine) placeholderDecorations() []Decoration {
	spans := e.session.Spans()
	out := make([]Decoration, 0, len(spans))
	for _, sp := range spans {
		kind := DecorPlaceholder
		if sp.Current {
			kind = DecorPlaceholderCurrent
		}
		out = append(out, Decoration{Start: sp.Start, Length: sp.Length, Kind: kind})
	}
	return out
}
