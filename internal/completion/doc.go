// Package completion produces candidates for the word-trigger popup.
//
// A Source is a synchronous pull function: given the word being typed it
// returns unordered Items. Rank adjusts each item's priority against the
// typed word and orders the result for display.
//
// Sources provided here:
//
//   - LibrarySource: tokens, hotkeys and snippets from a library.Store
//   - LuaSource: a user script defining completions(word, line)
//   - Composite: concatenation of several sources
package completion
