package app

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dshills/reportassist/internal/snippet"
)

// Expand writes the expansion of template followed by a table of its
// placeholders. Markers that could not be parsed are listed last.
func Expand(w io.Writer, template string, now func() time.Time) error {
	tpl := snippet.Parse(template)
	var opts []snippet.ExpandOption
	if now != nil {
		opts = append(opts, snippet.WithClock(now))
	}
	res := tpl.Expand(opts...)

	if _, err := fmt.Fprintln(w, res.Text); err != nil {
		return err
	}
	if len(res.Placeholders) > 0 {
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "#\tKIND\tRANGE\tTITLE\tOPTIONS")
		for i, ph := range res.Placeholders {
			fmt.Fprintf(tw, "%d\t%s\t[%d,%d)\t%s\t%s\n", i, ph.Kind, ph.Start, ph.End(), ph.Title, formatOptions(ph))
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}
	for _, p := range tpl.Problems {
		if _, err := fmt.Fprintf(w, "warning: %v\n", p); err != nil {
			return err
		}
	}
	return nil
}

func formatOptions(ph snippet.Placeholder) string {
	if len(ph.Options) == 0 {
		return "-"
	}
	parts := make([]string, len(ph.Options))
	for i, o := range ph.Options {
		parts[i] = o.Key + "=" + o.Value
	}
	s := strings.Join(parts, " ")
	if ph.Kind == snippet.MultiSelect {
		s += " (joined with \"" + strings.TrimSpace(ph.Separator()) + "\")"
	}
	return s
}
