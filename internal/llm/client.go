package llm

import (
	"context"
)

// Client defines the interface for LLM providers. Implementations return
// the raw text of the model's reply; parsing is the caller's concern.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
	Close() error
}
