package snippet

import "testing"

func TestCombine(t *testing.T) {
	tests := []struct {
		name   string
		tokens []string
		want   string
	}{
		{"empty", nil, ""},
		{"single", []string{"left insula"}, "left insula"},
		{"pair", []string{"left insula", "right insula"}, "bilateral insula"},
		{"case insensitive base", []string{"Left Insula", "right insula"}, "bilateral Insula"},
		{"mixed", []string{"left insula", "thalamus", "right insula", "pons"}, "bilateral insula, thalamus, and pons"},
		{"two", []string{"right lung", "heart"}, "right lung and heart"},
		{"bilateral passthrough", []string{"bilateral kidneys"}, "bilateral kidneys"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Combine(tt.tokens); got != tt.want {
				t.Errorf("Combine(%v) = %q, want %q", tt.tokens, got, tt.want)
			}
		})
	}
}

func TestCombineFromText(t *testing.T) {
	if got := CombineFromText("left insula AND right insula, pons"); got != "bilateral insula and pons" {
		t.Errorf("CombineFromText() = %q", got)
	}
	if got := CombineFromText("   "); got != "" {
		t.Errorf("blank input = %q", got)
	}
}
