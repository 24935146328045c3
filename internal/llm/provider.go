// Package llm sends single-turn prompts to a hosted model and returns JSON
// that has been checked against a schema.
package llm

import (
	"context"
	"encoding/json"
)

// Provider completes one prompt.
type Provider interface {
	// Complete sends p and returns the model's reply. When p.Schema is set
	// the reply has already been validated against it.
	Complete(ctx context.Context, p Prompt) (*Completion, error)

	// ModelID returns the model identifier requests are sent to.
	ModelID() string
}

// Prompt is a system instruction plus one user message.
type Prompt struct {
	// Purpose labels the request in logs.
	Purpose     string
	System      string
	User        string
	Schema      *Schema
	MaxTokens   int
	Temperature float64
}

// Completion is a model reply.
type Completion struct {
	// JSON is the reply body. Without a schema it is whatever text the
	// model produced.
	JSON json.RawMessage
	// Model is the model that actually served the request.
	Model     string
	Usage     Usage
	Truncated bool
}

// Usage counts tokens for one request.
type Usage struct {
	InputTokens  int
	OutputTokens int
}

// Schema is a JSON Schema the reply must satisfy. Name doubles as the
// structured-output name sent to providers that need one.
type Schema struct {
	Name        string
	Description string
	Definition  map[string]any
}

// resolveModel expands a short alias into a full model id.
func resolveModel(name string, aliases map[string]string) string {
	if id, ok := aliases[name]; ok {
		return id
	}
	return name
}
