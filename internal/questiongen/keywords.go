package questiongen

import (
	"regexp"
	"strings"
)

// commonWords are frequent long words that make poor key terms.
var commonWords = map[string]bool{
	"about": true, "after": true, "again": true, "below": true, "could": true,
	"every": true, "first": true, "found": true, "great": true, "house": true,
	"large": true, "learn": true, "never": true, "other": true, "place": true,
	"small": true, "study": true, "think": true, "where": true, "which": true,
	"world": true, "would": true, "write": true, "their": true, "there": true,
	"these": true, "those": true,
}

var punctuation = regexp.MustCompile(`[^\w\s]`)

// Keywords returns up to five distinct words longer than four letters from
// text, lower-cased and in order of first appearance.
func Keywords(text string) []string {
	return keywords(text, 5)
}

func keywords(text string, limit int) []string {
	var out []string
	seen := make(map[string]bool)
	for _, w := range strings.Fields(punctuation.ReplaceAllString(strings.ToLower(text), "")) {
		if len(w) <= 4 || commonWords[w] || seen[w] {
			continue
		}
		seen[w] = true
		out = append(out, w)
		if len(out) == limit {
			break
		}
	}
	return out
}
