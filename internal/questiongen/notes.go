package questiongen

import (
	"regexp"
	"strings"
)

// DefaultNotesLimit is how many characters of the notes are sent to a model.
const DefaultNotesLimit = 1500

var (
	urlPattern   = regexp.MustCompile(`https?://\S+`)
	queryPattern = regexp.MustCompile(`&\w+=\S+`)
	spacePattern = regexp.MustCompile(`\s+`)
)

// CleanNotes truncates notes to limit characters, then strips URLs and
// stray query fragments and collapses whitespace. A limit <= 0 keeps the
// whole text.
func CleanNotes(notes string, limit int) string {
	if limit > 0 {
		if r := []rune(notes); len(r) > limit {
			notes = string(r[:limit])
		}
	}
	notes = urlPattern.ReplaceAllString(notes, "")
	notes = queryPattern.ReplaceAllString(notes, "")
	notes = spacePattern.ReplaceAllString(notes, " ")
	return strings.TrimSpace(notes)
}
