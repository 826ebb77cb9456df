package snippet

import (
	"strconv"
	"strings"
	"time"
)

// Segment is one piece of a parsed template: literal text, or a marker.
type Segment struct {
	// Text is the literal text, or the marker source for marker segments.
	Text string
	// Marker is nil for literal segments. Its Start/Length are unset.
	Marker *Placeholder
}

// IsLiteral reports whether the segment is literal text.
func (s Segment) IsLiteral() bool {
	return s.Marker == nil
}

// Template is a parsed snippet template.
type Template struct {
	Raw      string
	Segments []Segment
	// Problems lists markers that were copied through as literal text.
	Problems []error
}

// Parse parses raw in one pass. It never fails; malformed markers become
// literal text and are recorded in Problems.
func Parse(raw string) *Template {
	t := &Template{Raw: raw}
	var lit strings.Builder

	flush := func() {
		if lit.Len() > 0 {
			t.Segments = append(t.Segments, Segment{Text: lit.String()})
			lit.Reset()
		}
	}

	i := 0
	for i < len(raw) {
		open := strings.Index(raw[i:], "${")
		if open < 0 {
			lit.WriteString(raw[i:])
			break
		}
		open += i
		lit.WriteString(raw[i:open])

		end := strings.IndexByte(raw[open+2:], '}')
		if end < 0 {
			t.Problems = append(t.Problems, &MarkerError{Offset: open, Raw: raw[open:], Err: ErrUnterminated})
			lit.WriteString(raw[open:])
			break
		}
		end += open + 2
		source := raw[open : end+1]

		ph, err := parseMarker(raw[open+2 : end])
		if err != nil {
			t.Problems = append(t.Problems, &MarkerError{Offset: open, Raw: source, Err: err})
			lit.WriteString(source)
		} else {
			flush()
			t.Segments = append(t.Segments, Segment{Text: source, Marker: ph})
		}
		i = end + 1
	}
	flush()
	return t
}

// parseMarker parses the content between "${" and "}".
func parseMarker(content string) (*Placeholder, error) {
	header, defaults, hasDefaults := strings.Cut(content, "=")
	parts := strings.Split(header, "^")

	ph := &Placeholder{Kind: FreeText}
	explicit := false
	if len(parts) >= 2 && isDigits(parts[0]) {
		n, err := strconv.Atoi(parts[0])
		if err != nil || n > 3 {
			return nil, ErrBadOrdinal
		}
		ph.Ordinal = n
		ph.Kind = kindForOrdinal(n)
		parts = parts[1:]
		explicit = true
	}

	ph.Title = strings.TrimSpace(parts[0])
	if ph.Title == "" {
		return nil, ErrEmptyTitle
	}
	for _, m := range parts[1:] {
		m = strings.TrimSpace(m)
		if m == "" {
			continue
		}
		ph.Metadata = append(ph.Metadata, m)
		switch {
		case strings.EqualFold(m, "bilateral"):
			ph.Bilateral = true
		case ph.Joiner == "":
			ph.Joiner = strings.ToLower(m)
		}
	}

	if hasDefaults {
		ph.Options = parseOptions(defaults)
	}

	if !explicit && len(ph.Metadata) == 0 && !hasDefaults {
		switch strings.ToLower(ph.Title) {
		case "date":
			ph.Macro = MacroDate
		case "number":
			ph.Macro = MacroNumber
		}
	}
	return ph, nil
}

// parseOptions parses "k^v|k2^v2|bare". Empty entries are skipped.
func parseOptions(raw string) []Option {
	var opts []Option
	for _, tok := range strings.Split(raw, "|") {
		key, value, found := strings.Cut(tok, "^")
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if !found {
			value = key
		}
		if key == "" || value == "" {
			continue
		}
		opts = append(opts, Option{Key: key, Value: value})
	}
	return opts
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// IsSnippet reports whether the template contains at least one marker.
func (t *Template) IsSnippet() bool {
	for _, s := range t.Segments {
		if s.Marker != nil {
			return true
		}
	}
	return false
}

// Placeholders returns the parsed markers in template order.
func (t *Template) Placeholders() []Placeholder {
	var out []Placeholder
	for _, s := range t.Segments {
		if s.Marker != nil {
			out = append(out, s.Marker.Clone())
		}
	}
	return out
}

// ExpansionResult is the text produced by a template and the placeholders
// inside it, with offsets relative to the start of Text.
type ExpansionResult struct {
	Text         string
	Placeholders []Placeholder
}

// ExpandOption configures Expand.
type ExpandOption func(*expandConfig)

type expandConfig struct {
	now func() time.Time
}

// WithClock sets the clock used by the date macro.
func WithClock(now func() time.Time) ExpandOption {
	return func(c *expandConfig) {
		c.now = now
	}
}

// DateLayout is the format of the date macro.
const DateLayout = "2006-01-02"

// Expand instantiates the template. Each placeholder starts out showing its
// title, or the macro value.
func (t *Template) Expand(opts ...ExpandOption) ExpansionResult {
	cfg := expandConfig{now: time.Now}
	for _, opt := range opts {
		opt(&cfg)
	}

	var b strings.Builder
	var phs []Placeholder
	for _, s := range t.Segments {
		if s.Marker == nil {
			b.WriteString(s.Text)
			continue
		}
		ph := s.Marker.Clone()
		initial := ph.Title
		switch ph.Macro {
		case MacroDate:
			initial = cfg.now().Format(DateLayout)
		case MacroNumber:
			initial = "0"
		}
		ph.Start = b.Len()
		ph.Length = len(initial)
		b.WriteString(initial)
		phs = append(phs, ph)
	}
	return ExpansionResult{Text: b.String(), Placeholders: phs}
}

// Preview renders the template with each choice placeholder showing its
// first option. Used for completion descriptions.
func (t *Template) Preview(opts ...ExpandOption) string {
	res := t.Expand(opts...)
	var b strings.Builder
	last := 0
	for _, ph := range res.Placeholders {
		b.WriteString(res.Text[last:ph.Start])
		if ph.Kind != FreeText && ph.HasOptions() {
			b.WriteString(ph.Options[0].Value)
		} else {
			b.WriteString(res.Text[ph.Start:ph.End()])
		}
		last = ph.End()
	}
	b.WriteString(res.Text[last:])
	return b.String()
}
