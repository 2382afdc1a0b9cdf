package quiz

import (
	"strings"
	"unicode/utf8"

	"github.com/agext/levenshtein"
)

// Threshold is the largest normalized edit distance that still counts as a
// match. 0 means identical strings, 1 means nothing in common.
const Threshold = 0.4

// Match is the outcome of comparing one term against an answer.
type Match struct {
	Matched bool
	// Word is the best-scoring token, empty when the answer has no tokens.
	Word     string
	Distance float64
}

// KeyTermMatch is the outcome of comparing several terms against an answer.
type KeyTermMatch struct {
	Matched bool
	// Terms holds every matching term in input order.
	Terms []string
}

// MatchTerm reports whether term approximately occurs in answer.
//
// The answer is normalized and split on whitespace; the term is only
// lower-cased and is scored against each token on its own, spaces and
// all. The first best token in scan order wins ties.
func MatchTerm(answer, term string) Match {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return Match{Distance: 1}
	}

	tokens := strings.Fields(Normalize(answer))
	if len(tokens) == 0 {
		return Match{Distance: 1}
	}

	best := Match{Distance: 2}
	for _, tok := range tokens {
		if d := distance(term, tok); d < best.Distance {
			best = Match{Word: tok, Distance: d}
		}
	}

	best.Matched = best.Distance <= Threshold
	return best
}

// MatchAnyKeyTerm reports whether at least one of terms matches answer.
func MatchAnyKeyTerm(answer string, terms []string) KeyTermMatch {
	var out KeyTermMatch
	for _, t := range terms {
		if MatchTerm(answer, t).Matched {
			out.Terms = append(out.Terms, t)
		}
	}
	out.Matched = len(out.Terms) > 0
	return out
}

// distance is the Levenshtein distance divided by the longer rune length.
func distance(a, b string) float64 {
	longest := max(utf8.RuneCountInString(a), utf8.RuneCountInString(b))
	if longest == 0 {
		return 0
	}
	return float64(levenshtein.Distance(a, b, nil)) / float64(longest)
}
