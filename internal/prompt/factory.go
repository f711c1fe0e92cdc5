package prompt

import (
	"context"
	"fmt"

	"github.com/iksnae/stickyboard/internal"
)

// Providers understood by NewCompleter
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// NewCompleter builds the completer for the configured provider
func NewCompleter(ctx context.Context, cfg internal.LLMConfig) (Completer, error) {
	switch cfg.Provider {
	case "", ProviderOpenAI:
		return NewOpenAIClient(cfg.APIKey, cfg.BaseURL, cfg.TimeoutDuration()), nil
	case ProviderGemini:
		client, err := NewGeminiClient(ctx, cfg.APIKey, cfg.TimeoutDuration())
		if err != nil {
			return nil, err
		}
		return client, nil
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
}

// ModelFor returns the model to request for cfg, falling back to the
// provider default. An OpenAI model name left over in a gemini config is
// replaced as well.
func ModelFor(cfg internal.LLMConfig) string {
	switch cfg.Provider {
	case ProviderGemini:
		if cfg.Model == "" || cfg.Model == DefaultOpenAIModel {
			return DefaultGeminiModel
		}
	default:
		if cfg.Model == "" {
			return DefaultOpenAIModel
		}
	}
	return cfg.Model
}
