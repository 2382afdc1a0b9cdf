package questiongen

import "github.com/abhisek/studybuddy/internal/quiz"

// promptKey identifies a question for duplicate detection.
func promptKey(q quiz.Question) string {
	return string(q.Type) + "|" + quiz.Normalize(q.Prompt)
}

// dedupe drops questions whose normalized prompt repeats an earlier one of
// the same type. Order is preserved.
func dedupe(qs []quiz.Question) []quiz.Question {
	seen := make(map[string]bool, len(qs))
	out := qs[:0:0]
	for _, q := range qs {
		k := promptKey(q)
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, q)
	}
	return out
}
