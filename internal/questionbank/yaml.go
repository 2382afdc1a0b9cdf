package questionbank

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

func decodeYAML(data []byte) (*Bank, error) {
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBank, err)
	}
	raw, err := json.Marshal(v)
	if err != nil {
		// Non-string map keys, e.g. "1: foo".
		return nil, fmt.Errorf("%w: %v", ErrInvalidBank, err)
	}
	return fromDocument(raw)
}

func encodeYAML(b *Bank) ([]byte, error) {
	data, err := yaml.Marshal(b.toDocument())
	if err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}
	return data, nil
}
