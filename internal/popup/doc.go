// Package popup drives the word-trigger completion dropdown.
//
// The Controller owns no text. The host tells it when a character was
// typed or the caret moved, asks it what to do with each key, and applies
// any Commit it returns. Words are runs of Unicode letters ending at the
// caret; the dropdown opens once the word reaches the configured minimum
// length.
package popup
