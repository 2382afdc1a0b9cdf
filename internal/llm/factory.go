package llm

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/abhisek/studybuddy/internal/store"
)

// NewProvider creates a Provider from configuration, wrapped with retry
// and logging middleware: caller → retry → logging → base. Every attempt
// is therefore recorded. eventRepo and logger may be nil.
func NewProvider(ctx context.Context, cfg Config, eventRepo store.EventRepo, logger *slog.Logger) (Provider, error) {
	var base Provider
	var err error

	switch cfg.Provider {
	case ProviderAnthropic:
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case ProviderOpenAI:
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case ProviderGemini:
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case ProviderOpenRouter:
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case ProviderOllama:
		base, err = NewOllamaProvider(cfg.Ollama)
	case ProviderMock:
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	logged := WithLogging(base, cfg.Provider, eventRepo, logger)
	return WithRetry(logged, cfg.Retry), nil
}

// Resolve picks the effective configuration: cfg when its provider is
// usable, otherwise the first provider whose vendor API key is in the
// environment. The returned bool is false when neither works.
func Resolve(cfg Config) (Config, bool) {
	if cfg.Validate() == nil {
		return cfg, true
	}
	if found, ok := DiscoverConfig(); ok {
		found.Retry = cfg.Retry
		found.Timeout = cfg.Timeout
		return found, true
	}
	return cfg, false
}
