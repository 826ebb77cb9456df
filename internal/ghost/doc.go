// Package ghost holds the set of remotely suggested line replacements
// shown as overlays, and decides which of them are worth showing.
//
// A Set is ordered by line with at most one suggestion per line. It is
// either empty or every entry targets a line that existed when the set was
// filled. Prepare turns a raw service response into such a set: line
// numbers are clamped, weak suggestions dropped and text normalized.
package ghost
