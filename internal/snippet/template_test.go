package snippet

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestExpand_FreeTextScenario(t *testing.T) {
	tpl := Parse("Impression: ${0^No acute findings.}")
	res := tpl.Expand()

	if res.Text != "Impression: No acute findings." {
		t.Fatalf("Text = %q", res.Text)
	}
	if len(res.Placeholders) != 1 {
		t.Fatalf("placeholders = %d, want 1", len(res.Placeholders))
	}
	ph := res.Placeholders[0]
	if ph.Kind != FreeText {
		t.Errorf("Kind = %v, want FreeText", ph.Kind)
	}
	if got := res.Text[ph.Start:ph.End()]; got != "No acute findings." {
		t.Errorf("segment = %q", got)
	}
	if ph.End() != len(res.Text) {
		t.Errorf("placeholder should span the suffix, end = %d len = %d", ph.End(), len(res.Text))
	}
}

func TestParse_Kinds(t *testing.T) {
	tests := []struct {
		raw     string
		kind    Kind
		title   string
		options []Option
	}{
		{"${finding}", FreeText, "finding", nil},
		{"${0^finding}", FreeText, "finding", nil},
		{"${1^side=l^left|r^right}", SingleChoice, "side", []Option{{"l", "left"}, {"r", "right"}}},
		{"${2^sites^and=li^left insula|ri^right insula}", MultiSelect, "sites", []Option{{"li", "left insula"}, {"ri", "right insula"}}},
		{"${3^grade=aa^mild|bb^severe}", Replacement, "grade", []Option{{"aa", "mild"}, {"bb", "severe"}}},
		{"${1^x=yes|no}", SingleChoice, "x", []Option{{"yes", "yes"}, {"no", "no"}}},
		{"${1^x=a^A||b^B|}", SingleChoice, "x", []Option{{"a", "A"}, {"b", "B"}}},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			tpl := Parse(tt.raw)
			if len(tpl.Problems) != 0 {
				t.Fatalf("Problems = %v", tpl.Problems)
			}
			phs := tpl.Placeholders()
			if len(phs) != 1 {
				t.Fatalf("placeholders = %d", len(phs))
			}
			ph := phs[0]
			if ph.Kind != tt.kind || ph.Title != tt.title {
				t.Errorf("got kind=%v title=%q, want %v %q", ph.Kind, ph.Title, tt.kind, tt.title)
			}
			if len(ph.Options) != len(tt.options) {
				t.Fatalf("options = %v, want %v", ph.Options, tt.options)
			}
			for i := range tt.options {
				if ph.Options[i] != tt.options[i] {
					t.Errorf("option %d = %v, want %v", i, ph.Options[i], tt.options[i])
				}
			}
		})
	}
}

func TestParse_Metadata(t *testing.T) {
	ph := Parse("${2^sites^or^bilateral=a^A}").Placeholders()[0]
	if ph.Joiner != "or" || !ph.Bilateral {
		t.Errorf("joiner=%q bilateral=%v", ph.Joiner, ph.Bilateral)
	}
	if len(ph.Metadata) != 2 {
		t.Errorf("Metadata = %v", ph.Metadata)
	}
}

func TestParse_MalformedMarkersAreLiteral(t *testing.T) {
	tests := []struct {
		raw  string
		want error
	}{
		{"a ${7^bad=x^y} b", ErrBadOrdinal},
		{"a ${} b", ErrEmptyTitle},
		{"a ${1^=x^y} b", ErrEmptyTitle},
		{"a ${open b", ErrUnterminated},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			tpl := Parse(tt.raw)
			if len(tpl.Problems) != 1 {
				t.Fatalf("Problems = %v", tpl.Problems)
			}
			if !errors.Is(tpl.Problems[0], tt.want) {
				t.Errorf("problem = %v, want %v", tpl.Problems[0], tt.want)
			}
			var me *MarkerError
			if !errors.As(tpl.Problems[0], &me) || me.Offset != 2 {
				t.Errorf("MarkerError offset wrong: %v", tpl.Problems[0])
			}
			res := tpl.Expand()
			if res.Text != tt.raw {
				t.Errorf("Text = %q, want raw copy %q", res.Text, tt.raw)
			}
			if len(res.Placeholders) != 0 {
				t.Errorf("placeholders = %d, want 0", len(res.Placeholders))
			}
		})
	}
}

func TestParse_MalformedDoesNotAbortOthers(t *testing.T) {
	res := Parse("${9^x} then ${1^side=l^left}").Expand()
	if res.Text != "${9^x} then side" {
		t.Errorf("Text = %q", res.Text)
	}
	if len(res.Placeholders) != 1 || res.Placeholders[0].Start != len("${9^x} then ") {
		t.Errorf("placeholders = %+v", res.Placeholders)
	}
}

func TestExpand_RoundTrip(t *testing.T) {
	templates := []string{
		"",
		"plain text only",
		"${a}${b}",
		"The ${1^side=l^left|r^right} ${0^structure} is ${2^state^or=n^normal|a^abnormal}.",
		"Müller ${0^größe} ende",
		"x ${bad ${0^ok} y",
	}
	for _, raw := range templates {
		tpl := Parse(raw)
		res := tpl.Expand()

		var want strings.Builder
		for _, s := range tpl.Segments {
			if s.IsLiteral() {
				want.WriteString(s.Text)
			} else {
				want.WriteString(s.Marker.Title)
			}
		}
		if res.Text != want.String() {
			t.Errorf("Expand(%q) = %q, want %q", raw, res.Text, want.String())
		}

		prevEnd := 0
		for _, ph := range res.Placeholders {
			if ph.Start < prevEnd {
				t.Errorf("%q: placeholder %q overlaps previous", raw, ph.Title)
			}
			if got := res.Text[ph.Start:ph.End()]; got != ph.Title {
				t.Errorf("%q: segment %q != title %q", raw, got, ph.Title)
			}
			prevEnd = ph.End()
		}
	}
}

func TestExpand_Macros(t *testing.T) {
	clock := func() time.Time { return time.Date(2024, 3, 9, 10, 0, 0, 0, time.UTC) }
	res := Parse("Date: ${date}, count ${number}, ${1^date=a^b}").Expand(WithClock(clock))

	if res.Text != "Date: 2024-03-09, count 0, date" {
		t.Fatalf("Text = %q", res.Text)
	}
	if res.Placeholders[0].Macro != MacroDate || res.Placeholders[1].Macro != MacroNumber {
		t.Errorf("macros = %v %v", res.Placeholders[0].Macro, res.Placeholders[1].Macro)
	}
	if res.Placeholders[2].Macro != MacroNone {
		t.Error("explicit ordinal markers are never macros")
	}
	if res.Placeholders[0].Length != len("2024-03-09") {
		t.Errorf("date length = %d", res.Placeholders[0].Length)
	}
}

func TestPreview(t *testing.T) {
	got := Parse("The ${1^side=l^left|r^right} ${0^lobe}").Preview()
	if got != "The left lobe" {
		t.Errorf("Preview() = %q", got)
	}
}

func TestPlaceholder_Join(t *testing.T) {
	tests := []struct {
		joiner    string
		bilateral bool
		values    []string
		want      string
	}{
		{"and", false, []string{"left insula", "right insula"}, "left insula and right insula"},
		{"", false, []string{"a", "b"}, "a b"},
		{",", false, []string{"a", "b", "c"}, "a, b, c"},
		{"or", false, []string{"x"}, "x"},
		{"", true, []string{"left insula", "right insula"}, "bilateral insula"},
	}
	for _, tt := range tests {
		ph := Placeholder{Kind: MultiSelect, Joiner: tt.joiner, Bilateral: tt.bilateral}
		if got := ph.Join(tt.values); got != tt.want {
			t.Errorf("Join(%v) joiner=%q = %q, want %q", tt.values, tt.joiner, got, tt.want)
		}
	}
}
