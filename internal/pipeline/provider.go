package pipeline

import (
	"fmt"
	"os"

	"github.com/forgelab/assetforge/internal/gemini"
	"github.com/forgelab/assetforge/internal/ollama"
	"github.com/forgelab/assetforge/internal/openai"
	"github.com/forgelab/assetforge/internal/providers"
)

// NewProvider maps a provider name to its implementation.
func NewProvider(name string) (providers.Provider, error) {
	switch name {
	case "openai":
		return openai.New(), nil
	case "gemini":
		return gemini.New(), nil
	case "ollama":
		return ollama.New(), nil
	default:
		return nil, fmt.Errorf("unsupported provider: %s (supported: openai, gemini, ollama)", name)
	}
}

// DefaultModel picks the model for a provider when none was given, honoring
// the provider's model environment variable first.
func DefaultModel(provider string) string {
	switch provider {
	case "openai":
		if model := os.Getenv("OPENAI_MODEL"); model != "" {
			return model
		}
		return "gpt-4o"
	case "gemini":
		if model := os.Getenv("GEMINI_MODEL"); model != "" {
			return model
		}
		return "gemini-1.5-pro"
	case "ollama":
		if model := os.Getenv("OLLAMA_MODEL"); model != "" {
			return model
		}
		return "mistral-small3.2:24b"
	}
	return ""
}
