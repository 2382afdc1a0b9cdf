package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var flashcardSchema = &Schema{
	Name: "flashcards-test",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"cards": map[string]any{
				"type":     "array",
				"minItems": 1,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"front": map[string]any{"type": "string", "minLength": 1},
						"back":  map[string]any{"type": "string"},
						"level": map[string]any{"type": "string", "enum": []any{"beginner", "expert"}},
						"weight": map[string]any{"type": "number", "minimum": 0},
					},
					"required": []any{"front", "back"},
				},
			},
		},
		"required": []any{"cards"},
	},
}

func TestValidateJSON(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		ok   bool
	}{
		{"minimal", `{"cards":[{"front":"ATP?","back":"energy"}]}`, true},
		{"with optionals", `{"cards":[{"front":"ATP?","back":"energy","level":"expert","weight":0.5}]}`, true},
		{"missing back", `{"cards":[{"front":"ATP?"}]}`, false},
		{"empty front", `{"cards":[{"front":"","back":"x"}]}`, false},
		{"unknown level", `{"cards":[{"front":"a","back":"b","level":"guru"}]}`, false},
		{"negative weight", `{"cards":[{"front":"a","back":"b","weight":-1}]}`, false},
		{"no cards", `{"cards":[]}`, false},
		{"cards not array", `{"cards":"a,b"}`, false},
		{"not json", `{cards:`, false},
		{"empty", ``, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateJSON(flashcardSchema, []byte(tt.raw))
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			var inv *ErrInvalidResponse
			require.ErrorAs(t, err, &inv)
			assert.Equal(t, tt.raw, string(inv.Content))
		})
	}
}

func TestValidateJSON_NilSchemaAcceptsAnything(t *testing.T) {
	assert.NoError(t, ValidateJSON(nil, []byte(`not even json`)))
}

func TestValidateJSON_ReusesCompiledSchema(t *testing.T) {
	s := &Schema{Name: "reuse-test", Definition: map[string]any{"type": "integer"}}
	require.NoError(t, ValidateJSON(s, []byte(`3`)))

	first, err := schemas.get(s)
	require.NoError(t, err)
	second, err := schemas.get(&Schema{Name: "reuse-test", Definition: map[string]any{"type": "string"}})
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func TestValidateJSON_BadDefinition(t *testing.T) {
	s := &Schema{Name: "broken-test", Definition: map[string]any{"type": 42}}
	var inv *ErrInvalidResponse
	assert.ErrorAs(t, ValidateJSON(s, []byte(`{}`)), &inv)
}
