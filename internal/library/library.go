// Package library loads the user's completion library: plain tokens,
// hotkey expansions and snippet templates, stored as TOML.
//
//	words = ["hydronephrosis", "hypoattenuation"]
//
//	[[token]]
//	text = "unremarkable"
//	description = "normal finding"
//
//	[[hotkey]]
//	trigger = "nad"
//	text = "No acute disease."
//
//	[[snippet]]
//	trigger = "imp"
//	description = "Impression"
//	template = "Impression: ${0^No acute findings.}"
package library

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/reportassist/internal/snippet"
)

// Token is a plain completion word.
type Token struct {
	Text        string `toml:"text"`
	Description string `toml:"description"`
}

// Hotkey expands a short trigger into canned text.
type Hotkey struct {
	Trigger     string `toml:"trigger"`
	Text        string `toml:"text"`
	Description string `toml:"description"`
}

// Snippet expands a trigger into a placeholder template.
type Snippet struct {
	Trigger     string `toml:"trigger"`
	Template    string `toml:"template"`
	Description string `toml:"description"`
}

// Library is the parsed library file.
type Library struct {
	Words    []string  `toml:"words"`
	Tokens   []Token   `toml:"token"`
	Hotkeys  []Hotkey  `toml:"hotkey"`
	Snippets []Snippet `toml:"snippet"`
}

// Empty returns an empty library.
func Empty() *Library {
	return &Library{}
}

// Parse decodes and validates library TOML. source names the input in
// errors.
func Parse(source string, data []byte) (*Library, error) {
	var lib Library
	if err := toml.Unmarshal(data, &lib); err != nil {
		return nil, &ParseError{Path: source, Err: err}
	}
	lib.normalize()
	if err := lib.Validate(); err != nil {
		return nil, err
	}
	return &lib, nil
}

// Load reads the library at path. A missing file yields an empty library.
func Load(path string) (*Library, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Empty(), nil
		}
		return nil, fmt.Errorf("reading library %s: %w", path, err)
	}
	return Parse(path, data)
}

// normalize folds Words into Tokens and trims keys.
func (l *Library) normalize() {
	for _, w := range l.Words {
		if w = strings.TrimSpace(w); w != "" {
			l.Tokens = append(l.Tokens, Token{Text: w})
		}
	}
	l.Words = nil
	for i := range l.Tokens {
		l.Tokens[i].Text = strings.TrimSpace(l.Tokens[i].Text)
	}
	for i := range l.Hotkeys {
		l.Hotkeys[i].Trigger = strings.TrimSpace(l.Hotkeys[i].Trigger)
	}
	for i := range l.Snippets {
		l.Snippets[i].Trigger = strings.TrimSpace(l.Snippets[i].Trigger)
	}
}

// Validate checks every entry. Triggers must be non-empty and unique per
// section. Snippet templates are parsed but malformed markers are allowed.
func (l *Library) Validate() error {
	var errs []error
	for i, t := range l.Tokens {
		if t.Text == "" {
			errs = append(errs, &ValidationError{Section: "token", Index: i, Message: "empty text"})
		}
	}
	seen := make(map[string]bool)
	for i, h := range l.Hotkeys {
		switch {
		case h.Trigger == "":
			errs = append(errs, &ValidationError{Section: "hotkey", Index: i, Message: "empty trigger"})
		case h.Text == "":
			errs = append(errs, &ValidationError{Section: "hotkey", Index: i, Message: "empty text"})
		case seen[strings.ToLower(h.Trigger)]:
			errs = append(errs, &ValidationError{Section: "hotkey", Index: i, Message: fmt.Sprintf("duplicate trigger %q", h.Trigger)})
		}
		seen[strings.ToLower(h.Trigger)] = true
	}
	seen = make(map[string]bool)
	for i, s := range l.Snippets {
		switch {
		case s.Trigger == "":
			errs = append(errs, &ValidationError{Section: "snippet", Index: i, Message: "empty trigger"})
		case s.Template == "":
			errs = append(errs, &ValidationError{Section: "snippet", Index: i, Message: "empty template"})
		case seen[strings.ToLower(s.Trigger)]:
			errs = append(errs, &ValidationError{Section: "snippet", Index: i, Message: fmt.Sprintf("duplicate trigger %q", s.Trigger)})
		}
		seen[strings.ToLower(s.Trigger)] = true
	}
	return errors.Join(errs...)
}

// ParsedTemplate parses the snippet's template.
func (s Snippet) ParsedTemplate() *snippet.Template {
	return snippet.Parse(s.Template)
}

// Size returns the number of entries.
func (l *Library) Size() int {
	return len(l.Tokens) + len(l.Hotkeys) + len(l.Snippets)
}
