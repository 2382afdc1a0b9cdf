package quiz

// IsCorrect decides whether a is a correct answer to q. It never panics on
// malformed input: a missing correct value, an answer of the wrong kind or
// an unknown question type all grade as incorrect.
func IsCorrect(q Question, a Answer) bool {
	if !a.Answered() {
		return false
	}

	switch q.Type {
	case MultipleChoice:
		i, ok := a.Choice()
		return ok && q.CorrectIndex != nil && i == *q.CorrectIndex

	case TrueFalse:
		b, ok := a.Bool()
		return ok && q.CorrectBool != nil && b == *q.CorrectBool

	case FillBlank:
		text, ok := a.Text()
		if !ok || q.CorrectText == nil {
			return false
		}
		return MatchTerm(text, *q.CorrectText).Matched

	case ShortAnswer:
		// Free responses without key terms are ungraded and always pass.
		if len(q.KeyTerms) == 0 {
			return true
		}
		text, ok := a.Text()
		return ok && MatchAnyKeyTerm(text, q.KeyTerms).Matched
	}

	return false
}
