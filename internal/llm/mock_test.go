package llm

import (
	"context"
)

// mockClient implements Client for tests.
type mockClient struct {
	completeFn func(ctx context.Context, prompt string) (string, error)
	prompts    []string
}

func (m *mockClient) Complete(ctx context.Context, prompt string) (string, error) {
	m.prompts = append(m.prompts, prompt)
	if m.completeFn != nil {
		return m.completeFn(ctx, prompt)
	}
	return "", nil
}

func (m *mockClient) Close() error { return nil }

// newTestClassifier wires a Classifier around a mock client without
// touching the network.
func newTestClassifier(client Client) *Classifier {
	c, _ := NewClassifier(context.Background(), Config{}, nil)
	c.client = client
	return c
}
