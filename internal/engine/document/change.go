package document

import "fmt"

// ByteOffset is a byte position in the document.
type ByteOffset = int64

// Change describes a single mutation of the document.
// Offset is where the edit happened; OldText was removed from that offset
// and NewText was inserted in its place.
type Change struct {
	Offset  ByteOffset
	OldText string
	NewText string

	// Revision is the document revision after the change.
	Revision uint64
}

// RemovedLen returns the number of bytes removed by the change.
func (c Change) RemovedLen() ByteOffset {
	return ByteOffset(len(c.OldText))
}

// InsertedLen returns the number of bytes inserted by the change.
func (c Change) InsertedLen() ByteOffset {
	return ByteOffset(len(c.NewText))
}

// Delta returns the change in document length.
func (c Change) Delta() ByteOffset {
	return c.InsertedLen() - c.RemovedLen()
}

// String returns a human-readable representation of the change.
func (c Change) String() string {
	switch {
	case c.OldText == "":
		return fmt.Sprintf("Insert(%d, %q)", c.Offset, c.NewText)
	case c.NewText == "":
		return fmt.Sprintf("Delete(%d, %d)", c.Offset, c.Offset+c.RemovedLen())
	default:
		return fmt.Sprintf("Replace(%d, %d) with %q", c.Offset, c.Offset+c.RemovedLen(), c.NewText)
	}
}

// MapOffset maps an offset from before the change to after it.
// Offsets inside the removed range collapse to the end of the inserted text
// when stickEnd is true, otherwise to the change offset.
func (c Change) MapOffset(off ByteOffset, stickEnd bool) ByteOffset {
	end := c.Offset + c.RemovedLen()
	switch {
	case off < c.Offset:
		return off
	case off >= end && !(off == c.Offset && !stickEnd):
		return off + c.Delta()
	case stickEnd:
		return c.Offset + c.InsertedLen()
	default:
		return c.Offset
	}
}
