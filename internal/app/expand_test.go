package app

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestExpand(t *testing.T) {
	now := func() time.Time { return time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC) }
	tests := []struct {
		name     string
		template string
		want     []string
	}{
		{
			name:     "plain text",
			template: "No acute findings.",
			want:     []string{"No acute findings."},
		},
		{
			name:     "choice placeholder",
			template: "The ${1^side=l^left|r^right} kidney.",
			want:     []string{"#", "KIND", "side", "l=left r=right"},
		},
		{
			name:     "malformed marker",
			template: "Size ${0^",
			want:     []string{"warning:"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := Expand(&buf, tt.template, now); err != nil {
				t.Fatal(err)
			}
			for _, w := range tt.want {
				if !strings.Contains(buf.String(), w) {
					t.Errorf("output missing %q:\n%s", w, buf.String())
				}
			}
		})
	}
}
