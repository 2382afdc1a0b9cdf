package llm

import (
	"errors"
	"fmt"
	"os"
	"time"
)

// Provider names accepted by Config.Provider.
const (
	ProviderAnthropic  = "anthropic"
	ProviderOpenAI     = "openai"
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
	ProviderOllama     = "ollama"
	ProviderMock       = "mock"
)

// Config holds all LLM provider configuration.
type Config struct {
	// Provider selects which LLM provider to use.
	Provider string `mapstructure:"provider"`

	Anthropic  AnthropicConfig  `mapstructure:"anthropic"`
	OpenAI     OpenAIConfig     `mapstructure:"openai"`
	Gemini     GeminiConfig     `mapstructure:"gemini"`
	OpenRouter OpenRouterConfig `mapstructure:"openrouter"`
	Ollama     OllamaConfig     `mapstructure:"ollama"`
	Retry      RetryConfig      `mapstructure:"retry"`

	// Timeout bounds a single generation including retries.
	Timeout time.Duration `mapstructure:"timeout"`
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"` // Default: "claude-haiku"
}

// OpenAIConfig holds OpenAI-specific configuration.
type OpenAIConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`    // Default: "gpt-4o-mini"
	BaseURL string `mapstructure:"base_url"` // Optional override for compatible APIs.
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"` // Default: "gemini-flash"
}

// OpenRouterConfig holds OpenRouter-specific configuration.
type OpenRouterConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url"` // Default: "https://openrouter.ai/api/v1"
}

// OllamaConfig targets a local Ollama server through its OpenAI-compatible
// endpoint. No API key is needed.
type OllamaConfig struct {
	BaseURL string `mapstructure:"base_url"` // Default: "http://localhost:11434/v1"
	Model   string `mapstructure:"model"`    // Default: "llama3"
}

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int           `mapstructure:"max_attempts"`
	InitialWait time.Duration `mapstructure:"initial_wait"`
	MaxWait     time.Duration `mapstructure:"max_wait"`
	Multiplier  float64       `mapstructure:"multiplier"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Provider: ProviderOllama,
		Anthropic: AnthropicConfig{
			Model: "claude-haiku",
		},
		OpenAI: OpenAIConfig{
			Model: "gpt-4o-mini",
		},
		Gemini: GeminiConfig{
			Model: "gemini-flash",
		},
		OpenRouter: OpenRouterConfig{
			Model: "google/gemini-2.0-flash-exp",
		},
		Ollama: OllamaConfig{
			BaseURL: defaultOllamaBaseURL,
			Model:   "llama3",
		},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 1 * time.Second,
			MaxWait:     8 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 90 * time.Second,
	}
}

// ApplyEnv overlays STUDYBUDDY_* environment variables onto cfg.
func ApplyEnv(cfg Config) Config {
	set := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}

	set(&cfg.Provider, "STUDYBUDDY_LLM_PROVIDER")
	set(&cfg.Anthropic.APIKey, "STUDYBUDDY_ANTHROPIC_API_KEY")
	set(&cfg.Anthropic.Model, "STUDYBUDDY_ANTHROPIC_MODEL")
	set(&cfg.OpenAI.APIKey, "STUDYBUDDY_OPENAI_API_KEY")
	set(&cfg.OpenAI.Model, "STUDYBUDDY_OPENAI_MODEL")
	set(&cfg.OpenAI.BaseURL, "STUDYBUDDY_OPENAI_BASE_URL")
	set(&cfg.Gemini.APIKey, "STUDYBUDDY_GEMINI_API_KEY")
	set(&cfg.Gemini.Model, "STUDYBUDDY_GEMINI_MODEL")
	set(&cfg.OpenRouter.APIKey, "STUDYBUDDY_OPENROUTER_API_KEY")
	set(&cfg.OpenRouter.Model, "STUDYBUDDY_OPENROUTER_MODEL")
	set(&cfg.Ollama.BaseURL, "STUDYBUDDY_OLLAMA_BASE_URL")
	set(&cfg.Ollama.Model, "STUDYBUDDY_OLLAMA_MODEL")

	return cfg
}

// ConfigFromEnv builds a Config from environment variables, falling back
// to defaults for unset values.
func ConfigFromEnv() Config {
	return ApplyEnv(DefaultConfig())
}

// vendorKeys lists the vendors' own API key variables in discovery order,
// with where each key goes in a Config.
var vendorKeys = []struct {
	env      string
	provider string
	key      func(*Config) *string
}{
	{"GEMINI_API_KEY", ProviderGemini, func(c *Config) *string { return &c.Gemini.APIKey }},
	{"OPENAI_API_KEY", ProviderOpenAI, func(c *Config) *string { return &c.OpenAI.APIKey }},
	{"ANTHROPIC_API_KEY", ProviderAnthropic, func(c *Config) *string { return &c.Anthropic.APIKey }},
	{"OPENROUTER_API_KEY", ProviderOpenRouter, func(c *Config) *string { return &c.OpenRouter.APIKey }},
}

// DiscoverConfig returns defaults for the first vendor whose standard API
// key variable is set.
func DiscoverConfig() (Config, bool) {
	for _, v := range vendorKeys {
		if k := os.Getenv(v.env); k != "" {
			cfg := DefaultConfig()
			cfg.Provider = v.provider
			*v.key(&cfg) = k
			return cfg, true
		}
	}
	return Config{}, false
}

// Validate reports what is missing for the selected provider to work.
func (c Config) Validate() error {
	switch c.Provider {
	case ProviderMock:
		return nil
	case ProviderOllama:
		if c.Ollama.Model == "" {
			return errors.New("ollama needs a model name")
		}
		return nil
	}
	for _, v := range vendorKeys {
		if v.provider != c.Provider {
			continue
		}
		if *v.key(&c) == "" {
			return fmt.Errorf("%s needs an API key (STUDYBUDDY_%s)", c.Provider, v.env)
		}
		return nil
	}
	return fmt.Errorf("unknown LLM provider %q", c.Provider)
}
