package completion

import (
	"sort"
	"strings"
)

// AdjustPriority boosts an item against the typed word: exact matches
// most, then prefix matches, then substring matches, plus a bonus that
// grows as the item's length approaches the word's.
func AdjustPriority(item Item, word string) Item {
	text := strings.ToLower(item.Text)
	w := strings.ToLower(word)

	switch {
	case w == "":
	case text == w:
		item.Priority += 3
	case strings.HasPrefix(text, w):
		item.Priority += 2
	case strings.Contains(text, w):
		item.Priority += 0.5
	}

	diff := len(item.Text) - len(word)
	if diff < 0 {
		diff = -diff
	}
	item.Priority += 1 / (1 + float64(diff))
	return item
}

// Rank adjusts every item against word and sorts by priority descending,
// then text ascending ignoring case. The input slice is not modified.
func Rank(items []Item, word string) []Item {
	out := make([]Item, len(items))
	for i, it := range items {
		out[i] = AdjustPriority(it, word)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Priority != out[j].Priority {
			return out[i].Priority > out[j].Priority
		}
		li, lj := strings.ToLower(out[i].Text), strings.ToLower(out[j].Text)
		if li != lj {
			return li < lj
		}
		return out[i].Text < out[j].Text
	})
	return out
}

// ExactIndex returns the index of the item whose text equals word ignoring
// case, or -1.
func ExactIndex(items []Item, word string) int {
	for i, it := range items {
		if strings.EqualFold(it.Text, word) {
			return i
		}
	}
	return -1
}
