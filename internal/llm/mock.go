package llm

import (
	"context"
	"encoding/json"
	"sync"
)

// MockResponse is one scripted reply.
type MockResponse struct {
	Content json.RawMessage
	Err     error
}

// MockProvider replays scripted replies in order and records prompts.
// Replies are not checked against the prompt's schema. With nothing left
// to replay it reports the provider as unavailable, so callers fall back
// to their offline behaviour.
type MockProvider struct {
	mu      sync.Mutex
	replies []MockResponse
	Calls   []Prompt
}

// NewMockProvider creates a mock with the given replies.
func NewMockProvider(replies ...MockResponse) *MockProvider {
	return &MockProvider{replies: replies}
}

func (m *MockProvider) ModelID() string { return "mock" }

func (m *MockProvider) Complete(_ context.Context, p Prompt) (*Completion, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, p)
	if len(m.replies) == 0 {
		return nil, &Error{Kind: KindUnavailable, Provider: "mock"}
	}
	r := m.replies[0]
	m.replies = m.replies[1:]
	if r.Err != nil {
		return nil, r.Err
	}
	return &Completion{JSON: r.Content, Model: "mock"}, nil
}

// CallCount returns how many prompts were received.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}
