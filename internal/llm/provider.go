package llm

import (
	"context"
	"encoding/json"
	"strings"
)

// Provider sends one prompt to a language model.
type Provider interface {
	// Generate returns the model output. With req.Schema set the content
	// has already been checked against it.
	Generate(ctx context.Context, req Request) (*Response, error)

	ModelID() string
}

// Request is a single generation call.
type Request struct {
	System   string
	Messages []Message

	// Schema asks the vendor for structured output and is enforced on
	// the reply. Nil means free text.
	Schema *Schema

	MaxTokens int

	// Zero values for the sampling knobs leave the vendor default.
	Temperature float64
	TopP        float64
}

type Message struct {
	Role    Role
	Content string
}

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// UserMessage wraps content as a one-message conversation.
func UserMessage(content string) []Message {
	return []Message{{Role: RoleUser, Content: content}}
}

// Schema is a named JSON Schema document. Name doubles as the compile
// cache key, so it must be unique per definition.
type Schema struct {
	Name        string
	Description string
	Definition  map[string]any
}

// Normalized stop reasons.
const (
	StopEnd       = "end"
	StopMaxTokens = "max_tokens"
	StopError     = "error"
)

type Response struct {
	// Content is JSON when the request carried a Schema, text otherwise.
	Content    json.RawMessage
	Usage      Usage
	Model      string
	StopReason string
}

// Text returns Content as trimmed text.
func (r *Response) Text() string {
	if r == nil {
		return ""
	}
	return strings.TrimSpace(string(r.Content))
}

type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// finish applies the checks every adapter shares once the vendor reply
// is decoded: structured replies cut off by the token limit are rejected
// before schema validation.
func finish(req Request, resp *Response) (*Response, error) {
	if req.Schema != nil && resp.StopReason == StopMaxTokens {
		return nil, &ErrMaxTokensExceeded{Content: resp.Content}
	}
	if err := ValidateJSON(req.Schema, resp.Content); err != nil {
		return nil, err
	}
	return resp, nil
}

// pick returns the vendor model ID for a short alias, or name unchanged.
func pick(name string, aliases map[string]string) string {
	if id, ok := aliases[name]; ok {
		return id
	}
	return name
}
