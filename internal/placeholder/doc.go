// Package placeholder implements the navigation session that walks the
// placeholders of an expanded snippet.
//
// A Session is owned by one editor. It is Inactive until Enter is called
// with an expansion that has at least one non-empty placeholder, then
// Active on one placeholder at a time. Tab or Enter commits the current
// placeholder (applying a chosen option, if any) and moves to the next
// non-empty one; Escape leaves immediately without undoing anything.
//
// Every document change seen while active must be passed to ApplyChange
// before anything else reads placeholder positions, so that all
// placeholders stay correctly placed, ordered and non-overlapping.
package placeholder
