package analyst

import (
	"context"
	"fmt"
	"time"

	"strategic_analyst/pkg/core/filing"
)

// AIProvider is the generative-model collaborator boundary.
type AIProvider interface {
	Generate(ctx context.Context, systemPrompt string, userPrompt string) (string, error)
}

// InsightExtractor sends a built prompt to the model and returns the raw
// response text. Stateless apart from the provider handle; every call is an
// independent single-turn request.
type InsightExtractor struct {
	provider AIProvider
	retries  int
	backoff  time.Duration
}

// NewInsightExtractor creates an extractor with baseline semantics: one
// attempt, no retry.
func NewInsightExtractor(provider AIProvider) *InsightExtractor {
	return &InsightExtractor{
		provider: provider,
		retries:  0,
		backoff:  2 * time.Second,
	}
}

// SetRetries enables bounded retry on upstream failures. Parse failures are
// never retried here: a broken prompt-schema contract reproduces
// deterministically, retrying it only burns quota.
func (e *InsightExtractor) SetRetries(n int) {
	if n < 0 {
		n = 0
	}
	e.retries = n
}

// Extract performs the model call for a task kind, failing with
// filing.ErrUpstream when the collaborator errors or times out.
func (e *InsightExtractor) Extract(ctx context.Context, kind TaskKind, prompt string) (string, error) {
	if e.provider == nil {
		return "", fmt.Errorf("no AI provider configured")
	}

	var lastErr error
	for attempt := 0; attempt <= e.retries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return "", fmt.Errorf("%w: %v", filing.ErrUpstream, ctx.Err())
			case <-time.After(e.backoff * time.Duration(attempt)):
			}
		}

		resp, err := e.provider.Generate(ctx, SystemPrompt(kind), prompt)
		if err == nil {
			return resp, nil
		}
		lastErr = err
	}

	return "", fmt.Errorf("%w: %v", filing.ErrUpstream, lastErr)
}
