package mock

import (
	"context"

	"github.com/poiesic/memoir/ai"
)

// MockCompleter is a test double for ai.Completer.
// It allows custom behavior injection via function fields.
type MockCompleter struct {
	// CompleteFunc is called by Complete if set.
	// If nil, returns the prompt input echoed back with a fixed prefix.
	CompleteFunc func(ctx context.Context, prompt ai.Prompt) (string, error)

	callCount int
	prompts   []ai.Prompt
}

// NewMockCompleter creates a mock completer with default echo behavior.
func NewMockCompleter() *MockCompleter {
	return &MockCompleter{}
}

// Complete records the prompt and returns a canned completion.
func (m *MockCompleter) Complete(ctx context.Context, prompt ai.Prompt) (string, error) {
	m.callCount++
	m.prompts = append(m.prompts, prompt)

	if m.CompleteFunc != nil {
		return m.CompleteFunc(ctx, prompt)
	}

	return "completion: " + prompt.Input, nil
}

// CallCount returns the number of times Complete was called.
func (m *MockCompleter) CallCount() int {
	return m.callCount
}

// Prompts returns every prompt passed to Complete, in call order.
func (m *MockCompleter) Prompts() []ai.Prompt {
	return m.prompts
}

// LastPrompt returns the most recent prompt, or the zero value if
// Complete was never called.
func (m *MockCompleter) LastPrompt() ai.Prompt {
	if len(m.prompts) == 0 {
		return ai.Prompt{}
	}
	return m.prompts[len(m.prompts)-1]
}

// Reset clears recorded calls and custom functions.
func (m *MockCompleter) Reset() {
	m.callCount = 0
	m.prompts = nil
	m.CompleteFunc = nil
}
