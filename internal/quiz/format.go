package quiz

import "strings"

// Display strings shared by the on-screen review and exported reports.
const (
	NotAnswered          = "Not answered"
	InvalidOption        = "Invalid option"
	InvalidAnswer        = "Invalid answer"
	InvalidCorrectOption = "Invalid correct option"
	NotSpecified         = "Not specified"
	AnyReasonableAnswer  = "Any reasonable answer"
	UnknownType          = "Unknown type"
)

// FormatUserAnswer renders a for display next to q.
func FormatUserAnswer(q Question, a Answer) string {
	if !a.Answered() {
		return NotAnswered
	}

	switch q.Type {
	case MultipleChoice:
		i, ok := a.Choice()
		if !ok || i < 0 || i >= len(q.Options) {
			return InvalidOption
		}
		return q.Options[i]

	case TrueFalse:
		b, ok := a.Bool()
		if !ok {
			return InvalidAnswer
		}
		return boolLabel(b)

	case FillBlank, ShortAnswer:
		text, ok := a.Text()
		if !ok {
			return InvalidAnswer
		}
		return text
	}

	return InvalidAnswer
}

// FormatCorrectAnswer renders the expected answer of q.
func FormatCorrectAnswer(q Question) string {
	switch q.Type {
	case MultipleChoice:
		if q.CorrectIndex == nil || *q.CorrectIndex < 0 || *q.CorrectIndex >= len(q.Options) {
			return InvalidCorrectOption
		}
		return q.Options[*q.CorrectIndex]

	case TrueFalse:
		if q.CorrectBool == nil {
			return NotSpecified
		}
		return boolLabel(*q.CorrectBool)

	case FillBlank:
		if q.CorrectText == nil || *q.CorrectText == "" {
			return NotSpecified
		}
		return *q.CorrectText

	case ShortAnswer:
		if len(q.KeyTerms) == 0 {
			return AnyReasonableAnswer
		}
		return "Key terms: " + strings.Join(q.KeyTerms, ", ")
	}

	return UnknownType
}

func boolLabel(b bool) string {
	if b {
		return "True"
	}
	return "False"
}

var modeLabels = map[string]string{
	string(MultipleChoice): "Multiple Choice",
	string(TrueFalse):      "True/False",
	string(FillBlank):      "Fill in the Blank",
	string(ShortAnswer):    "Short Answer",
	ModeRandom:             "Random Mode",
}

var difficultyLabels = map[string]string{
	"beginner":     "Beginner",
	"intermediate": "Intermediate",
	"expert":       "Expert",
}

// ModeLabel returns the display name of a practice mode, or mode itself
// when it is not recognised.
func ModeLabel(mode string) string {
	if l, ok := modeLabels[mode]; ok {
		return l
	}
	return mode
}

// DifficultyLabel returns the display name of a difficulty level.
func DifficultyLabel(level string) string {
	if l, ok := difficultyLabels[level]; ok {
		return l
	}
	return level
}

// TruncatePrompt shortens s to at most limit runes, marking the cut with
// an ellipsis.
func TruncatePrompt(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit]) + "..."
}
