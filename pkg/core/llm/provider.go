package llm

import (
	"context"
)

// Provider is the interface for all LLM providers.
// Each call is independent request/response: no conversation history is
// carried between calls.
type Provider interface {
	Generate(ctx context.Context, systemPrompt string, userPrompt string) (string, error)
}
