package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// registry holds compiled schemas keyed by Schema.Name. Names are assumed
// stable: a second Schema with the same name reuses the first compilation.
type registry struct {
	mu       sync.RWMutex
	compiled map[string]*jsonschema.Schema
}

var schemas = &registry{compiled: map[string]*jsonschema.Schema{}}

func (r *registry) get(s *Schema) (*jsonschema.Schema, error) {
	r.mu.RLock()
	sch, ok := r.compiled[s.Name]
	r.mu.RUnlock()
	if ok {
		return sch, nil
	}

	doc, err := json.Marshal(s.Definition)
	if err != nil {
		return nil, fmt.Errorf("encode definition: %w", err)
	}
	def, err := jsonschema.UnmarshalJSON(bytes.NewReader(doc))
	if err != nil {
		return nil, fmt.Errorf("decode definition: %w", err)
	}

	url := "mem://schemas/" + s.Name + ".json"
	c := jsonschema.NewCompiler()
	if err := c.AddResource(url, def); err != nil {
		return nil, err
	}
	sch, err = c.Compile(url)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.compiled[s.Name] = sch
	r.mu.Unlock()
	return sch, nil
}

// ValidateJSON checks raw against s. A nil schema accepts anything.
// Failures are reported as *ErrInvalidResponse so callers can retry.
func ValidateJSON(s *Schema, raw []byte) error {
	if s == nil {
		return nil
	}
	invalid := func(format string, args ...any) error {
		return &ErrInvalidResponse{Content: raw, Err: fmt.Errorf(format, args...)}
	}

	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return invalid("not json: %w", err)
	}
	sch, err := schemas.get(s)
	if err != nil {
		return invalid("schema %s: %w", s.Name, err)
	}
	if err := sch.Validate(doc); err != nil {
		return invalid("does not match %s: %w", s.Name, err)
	}
	return nil
}
