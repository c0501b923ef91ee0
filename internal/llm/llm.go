// Package llm adapts hosted and local language models to insight.Backend.
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"textinsight/internal/config"
	"textinsight/internal/insight"
)

var (
	ErrUnknownProvider = errors.New("unknown llm provider")
	ErrEmptyResponse   = errors.New("no text content in response")
)

// defaultMaxTokens caps replies; summaries and three topics fit comfortably.
const defaultMaxTokens = 1024

// New builds the backend selected by cfg.Provider. It returns a nil Backend
// and no error when the provider has no credential, which puts the
// generator in deterministic mode.
func New(ctx context.Context, cfg config.LLMConfig) (insight.Backend, error) {
	if _, ok := knownProviders[cfg.Provider]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, cfg.Provider)
	}
	if !cfg.Enabled() {
		return nil, nil
	}

	switch cfg.Provider {
	case config.ProviderOpenAI:
		return NewOpenAI(cfg.OpenAIAPIKey, cfg.Model, cfg.Temperature, cfg.OpenAIBaseURL), nil
	case config.ProviderAnthropic:
		return NewAnthropic(cfg.AnthropicAPIKey, cfg.Model, cfg.Temperature), nil
	case config.ProviderOllama:
		o, err := NewOllama(cfg.OllamaURL(), cfg.Model, cfg.Temperature)
		if err != nil {
			return nil, err
		}
		return o, nil
	default:
		g, err := NewGemini(ctx, cfg.GeminiAPIKey, cfg.Model, cfg.Temperature)
		if err != nil {
			return nil, err
		}
		return g, nil
	}
}

var knownProviders = map[string]struct{}{
	config.ProviderOpenAI:    {},
	config.ProviderAnthropic: {},
	config.ProviderOllama:    {},
	config.ProviderGemini:    {},
}

func joinText(parts []string) (string, error) {
	text := strings.Join(parts, "")
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}
