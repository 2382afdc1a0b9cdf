package questionbank

import "github.com/abhisek/studybuddy/internal/llm"

// Schema describes a bank document. YAML banks are converted to JSON and
// checked against the same schema.
var Schema = &llm.Schema{
	Name:        "question-bank",
	Description: "A saved set of practice questions",
	Definition: map[string]any{
		"type":     "object",
		"required": []any{"questions"},
		"properties": map[string]any{
			"mode":       map[string]any{"type": "string"},
			"difficulty": map[string]any{"type": "string"},
			"questions": map[string]any{
				"type":     "array",
				"minItems": 1,
				"items": map[string]any{
					"type":     "object",
					"required": []any{"type", "question"},
					"properties": map[string]any{
						"type": map[string]any{
							"enum": []any{"multiple-choice", "true-false", "fill-blank", "short-answer"},
						},
						"question": map[string]any{"type": "string", "minLength": 1},
						"options": map[string]any{
							"type":     "array",
							"items":    map[string]any{"type": "string"},
							"minItems": 2,
						},
						"correctAnswerIndex": map[string]any{"type": "integer", "minimum": 0},
						"correctAnswer":      map[string]any{"type": []any{"boolean", "string", "number"}},
						"keyTerms": map[string]any{
							"type":  "array",
							"items": map[string]any{"type": "string"},
						},
					},
				},
			},
		},
	},
}

func validateDocument(raw []byte) error {
	return llm.ValidateJSON(Schema, raw)
}
