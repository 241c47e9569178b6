package providers

import (
	"context"
)

// Config represents one completion request to an LLM provider
type Config struct {
	Model       string
	Temperature float64
	MaxTokens   int
	System      string
	Prompt      string
}

// Provider defines the interface for an LLM provider
type Provider interface {
	Complete(ctx context.Context, config Config) (string, error)
}
