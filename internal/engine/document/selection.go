package document

// Selection represents a range of selected text.
// Anchor is where the selection started; Head is the caret.
// When Anchor == Head the selection is just a caret.
type Selection struct {
	Anchor ByteOffset
	Head   ByteOffset
}

// NewSelection creates a selection from anchor to head.
func NewSelection(anchor, head ByteOffset) Selection {
	return Selection{Anchor: anchor, Head: head}
}

// Caret creates a selection with no extent.
func Caret(offset ByteOffset) Selection {
	return Selection{Anchor: offset, Head: offset}
}

// IsEmpty returns true if the selection has no extent.
func (s Selection) IsEmpty() bool {
	return s.Anchor == s.Head
}

// Start returns the lower bound of the selection.
func (s Selection) Start() ByteOffset {
	if s.Anchor <= s.Head {
		return s.Anchor
	}
	return s.Head
}

// End returns the upper bound of the selection.
func (s Selection) End() ByteOffset {
	if s.Anchor >= s.Head {
		return s.Anchor
	}
	return s.Head
}

// Len returns the selection length in bytes.
func (s Selection) Len() ByteOffset {
	return s.End() - s.Start()
}

// Collapse returns a caret at the head.
func (s Selection) Collapse() Selection {
	return Caret(s.Head)
}

// Map maps the selection through a change.
func (s Selection) Map(c Change) Selection {
	if s.IsEmpty() {
		return Caret(c.MapOffset(s.Head, true))
	}
	if s.Anchor <= s.Head {
		return Selection{Anchor: c.MapOffset(s.Anchor, false), Head: c.MapOffset(s.Head, true)}
	}
	return Selection{Anchor: c.MapOffset(s.Anchor, true), Head: c.MapOffset(s.Head, false)}
}
