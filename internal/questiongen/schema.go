package questiongen

import (
	"strings"

	"github.com/abhisek/studybuddy/internal/llm"
	"github.com/abhisek/studybuddy/internal/quiz"
)

// QuestionSetSchema defines the JSON reply for structured generation. Every
// question carries every field so the schema works in strict mode; fields
// outside a question's type are left empty.
var QuestionSetSchema = &llm.Schema{
	Name:        "question-set",
	Description: "Practice questions generated from study notes",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type":     "array",
				"minItems": 1,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"type": map[string]any{
							"type":        "string",
							"enum":        []any{"multiple-choice", "true-false", "fill-blank", "short-answer"},
							"description": "How the question is answered",
						},
						"question": map[string]any{
							"type":        "string",
							"description": "The question or statement shown to the student",
						},
						"options": map[string]any{
							"type":        "array",
							"items":       map[string]any{"type": "string"},
							"description": "Exactly 4 options for multiple-choice, otherwise empty",
						},
						"correct_index": map[string]any{
							"type":        "integer",
							"minimum":     0,
							"maximum":     3,
							"description": "0-based index of the correct option for multiple-choice, otherwise 0",
						},
						"answer": map[string]any{
							"type":        "string",
							"description": `"true" or "false" for true-false, the missing text for fill-blank, otherwise empty`,
						},
						"key_terms": map[string]any{
							"type":        "array",
							"items":       map[string]any{"type": "string"},
							"description": "Key terms for short-answer, otherwise empty",
						},
					},
					"required":             []any{"type", "question", "options", "correct_index", "answer", "key_terms"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"questions"},
		"additionalProperties": false,
	},
}

// questionSetOutput is the raw structured reply before conversion.
type questionSetOutput struct {
	Questions []questionOutput `json:"questions"`
}

type questionOutput struct {
	Type         string   `json:"type"`
	Question     string   `json:"question"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correct_index"`
	Answer       string   `json:"answer"`
	KeyTerms     []string `json:"key_terms"`
}

// toQuestion converts a structured reply item. Only the fields of the
// item's own type are read.
func (o questionOutput) toQuestion() quiz.Question {
	prompt := strings.TrimSpace(o.Question)
	switch quiz.Type(o.Type) {
	case quiz.MultipleChoice:
		opts := make([]string, 0, len(o.Options))
		for _, opt := range o.Options {
			opts = append(opts, strings.TrimSpace(opt))
		}
		return quiz.NewMultipleChoice(prompt, opts, o.CorrectIndex)
	case quiz.TrueFalse:
		switch strings.ToLower(strings.TrimSpace(o.Answer)) {
		case "true":
			return quiz.NewTrueFalse(trueOrFalsePrefix(prompt), true)
		case "false":
			return quiz.NewTrueFalse(trueOrFalsePrefix(prompt), false)
		}
		return quiz.Question{Type: quiz.TrueFalse, Prompt: prompt}
	case quiz.FillBlank:
		return quiz.NewFillBlank(prompt, strings.TrimSpace(o.Answer))
	case quiz.ShortAnswer:
		return quiz.NewShortAnswer(prompt, cleanTerms(o.KeyTerms)...)
	}
	return quiz.Question{Type: quiz.Type(o.Type), Prompt: prompt}
}

func cleanTerms(terms []string) []string {
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}
