// Package llm talks to generative-model providers.
package llm

import "context"

// Provider completes a conversation.
type Provider interface {
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)
	// Name returns the provider name used in logs and metrics.
	Name() string
}
