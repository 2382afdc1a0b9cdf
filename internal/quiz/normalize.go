package quiz

import (
	"regexp"
	"strings"
)

// nonWord matches anything outside ASCII word characters and whitespace.
var nonWord = regexp.MustCompile(`[^\w\s]`)

// Normalize lower-cases s, strips punctuation and trims surrounding
// whitespace. Letters outside ASCII are stripped along with punctuation.
func Normalize(s string) string {
	return strings.TrimSpace(nonWord.ReplaceAllString(strings.ToLower(s), ""))
}
