// Package document provides the offset-addressable text buffer that the
// suggestion engine edits and observes.
//
// A Document stores UTF-8 text and a line index. Every mutation is reported
// to registered listeners as a Change describing the offset, the removed
// text, and the inserted text, so that position-dependent state (placeholder
// segments, caret, ghost targets) can be renormalized before anything else
// reads it.
//
// Basic usage:
//
//	doc := document.New("Findings:\n")
//	unsubscribe := doc.OnChange(func(c document.Change) {
//	    fmt.Println(c.Offset, c.RemovedLen(), c.InsertedLen())
//	})
//	defer unsubscribe()
//	_ = doc.Insert(doc.Len(), "No acute findings.")
//
// Documents are owned by a single editor and are not safe for concurrent
// mutation; readers on other goroutines should use Snapshot.
package document
