package snippet

import "strings"

// Combine merges laterality pairs and formats the result as a list.
// "left insula" and "right insula" become "bilateral insula"; a lone side
// is kept. Combined entries come first, then the rest in input order.
func Combine(tokens []string) string {
	type sides struct {
		base        string
		left, right bool
	}
	var bases []*sides
	byBase := make(map[string]*sides)
	var singles []string

	for _, tok := range tokens {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		head, base, ok := strings.Cut(tok, " ")
		base = strings.TrimSpace(base)
		if ok && base != "" {
			switch strings.ToLower(head) {
			case "left", "right":
				k := strings.ToLower(base)
				s, seen := byBase[k]
				if !seen {
					s = &sides{base: base}
					byBase[k] = s
					bases = append(bases, s)
				}
				if strings.EqualFold(head, "left") {
					s.left = true
				} else {
					s.right = true
				}
				continue
			}
		}
		singles = append(singles, tok)
	}

	result := make([]string, 0, len(bases)+len(singles))
	for _, s := range bases {
		switch {
		case s.left && s.right:
			result = append(result, "bilateral "+s.base)
		case s.left:
			result = append(result, "left "+s.base)
		default:
			result = append(result, "right "+s.base)
		}
	}
	result = append(result, singles...)
	return FormatList(result)
}

// CombineFromText splits raw on commas and " and " before combining.
func CombineFromText(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}
	var tokens []string
	for _, part := range strings.Split(replaceFold(raw, " and ", ","), ",") {
		if p := strings.TrimSpace(part); p != "" {
			tokens = append(tokens, p)
		}
	}
	return Combine(tokens)
}

// FormatList renders "A", "A and B", or "A, B, and C".
func FormatList(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	case 2:
		return items[0] + " and " + items[1]
	default:
		return strings.Join(items[:len(items)-1], ", ") + ", and " + items[len(items)-1]
	}
}

// replaceFold replaces every ASCII case-insensitive occurrence of old.
func replaceFold(s, old, repl string) string {
	lower := asciiLower(s)
	lowOld := asciiLower(old)
	var b strings.Builder
	i := 0
	for {
		j := strings.Index(lower[i:], lowOld)
		if j < 0 {
			b.WriteString(s[i:])
			return b.String()
		}
		b.WriteString(s[i : i+j])
		b.WriteString(repl)
		i += j + len(old)
	}
}

func asciiLower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + 'a' - 'A'
		}
	}
	return string(b)
}
