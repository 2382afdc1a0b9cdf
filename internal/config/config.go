// Package config loads studybuddy settings from .env, an optional YAML
// file and STUDYBUDDY_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/abhisek/studybuddy/internal/llm"
	"github.com/abhisek/studybuddy/internal/store"
)

// EnvPrefix is prepended to every environment override, with dots in the
// key replaced by underscores: server.addr becomes STUDYBUDDY_SERVER_ADDR.
const EnvPrefix = "STUDYBUDDY"

// Persistence backends.
const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// Config holds all application configuration.
type Config struct {
	Server      ServerConfig      `mapstructure:"server"`
	LLM         llm.Config        `mapstructure:"llm"`
	Generation  GenerationConfig  `mapstructure:"generation"`
	Persistence PersistenceConfig `mapstructure:"persistence"`
	Events      EventsConfig      `mapstructure:"events"`
	Log         LogConfig         `mapstructure:"log"`
}

// ServerConfig configures `studybuddy serve`.
type ServerConfig struct {
	Addr        string   `mapstructure:"addr" validate:"required"`
	GinMode     string   `mapstructure:"gin_mode" validate:"oneof=debug release test"`
	CORSOrigins []string `mapstructure:"cors_origins"`
}

// GenerationConfig controls question generation.
type GenerationConfig struct {
	// Endpoint, when set, points the TUI at a running question service
	// instead of calling a provider directly.
	Endpoint     string `mapstructure:"endpoint" validate:"omitempty,url"`
	DefaultCount int    `mapstructure:"default_count" validate:"min=1,ltefield=MaxCount"`
	MaxCount     int    `mapstructure:"max_count" validate:"min=1"`
	NotesLimit   int    `mapstructure:"notes_limit" validate:"min=1"`
	Structured   bool   `mapstructure:"structured"`
}

// PersistenceConfig selects where the session configuration is kept.
type PersistenceConfig struct {
	Backend    string        `mapstructure:"backend" validate:"oneof=sqlite redis memory"`
	SQLitePath string        `mapstructure:"sqlite_path"`
	RedisURL   string        `mapstructure:"redis_url"`
	Namespace  string        `mapstructure:"namespace" validate:"required"`
	MaxAge     time.Duration `mapstructure:"max_age" validate:"gt=0"`
}

// EventsConfig configures the domain event bus. Kafka forwarding is
// enabled when at least one broker is listed.
type EventsConfig struct {
	KafkaBrokers []string `mapstructure:"kafka_brokers"`
	Topic        string   `mapstructure:"topic" validate:"required"`
}

// LogConfig configures the slog handler.
type LogConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=text json"`
}

// Load reads configuration. An empty path searches for studybuddy.yaml in
// the working directory and the data directory; a missing file there is
// not an error. A non-empty path must exist.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}
	return load(viper.New(), path)
}

func load(v *viper.Viper, path string) (*Config, error) {
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("studybuddy")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if dir, err := store.DataDir(); err == nil {
			v.AddConfigPath(dir)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	// Short-form provider variables such as STUDYBUDDY_OPENAI_API_KEY.
	cfg.LLM = llm.ApplyEnv(cfg.LLM)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// setDefaults registers every key so AutomaticEnv can override it during
// Unmarshal, including keys whose default is empty.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":5001")
	v.SetDefault("server.gin_mode", "release")
	v.SetDefault("server.cors_origins", []string{"*"})

	d := llm.DefaultConfig()
	v.SetDefault("llm.provider", d.Provider)
	v.SetDefault("llm.timeout", d.Timeout)
	v.SetDefault("llm.anthropic.api_key", "")
	v.SetDefault("llm.anthropic.model", d.Anthropic.Model)
	v.SetDefault("llm.openai.api_key", "")
	v.SetDefault("llm.openai.model", d.OpenAI.Model)
	v.SetDefault("llm.openai.base_url", "")
	v.SetDefault("llm.gemini.api_key", "")
	v.SetDefault("llm.gemini.model", d.Gemini.Model)
	v.SetDefault("llm.openrouter.api_key", "")
	v.SetDefault("llm.openrouter.model", d.OpenRouter.Model)
	v.SetDefault("llm.openrouter.base_url", "")
	v.SetDefault("llm.ollama.base_url", d.Ollama.BaseURL)
	v.SetDefault("llm.ollama.model", d.Ollama.Model)
	v.SetDefault("llm.retry.max_attempts", d.Retry.MaxAttempts)
	v.SetDefault("llm.retry.initial_wait", d.Retry.InitialWait)
	v.SetDefault("llm.retry.max_wait", d.Retry.MaxWait)
	v.SetDefault("llm.retry.multiplier", d.Retry.Multiplier)

	v.SetDefault("generation.endpoint", "")
	v.SetDefault("generation.default_count", 5)
	v.SetDefault("generation.max_count", 50)
	v.SetDefault("generation.notes_limit", 1500)
	v.SetDefault("generation.structured", true)

	v.SetDefault("persistence.backend", BackendSQLite)
	v.SetDefault("persistence.sqlite_path", "")
	v.SetDefault("persistence.redis_url", "redis://localhost:6379/0")
	v.SetDefault("persistence.namespace", "studybuddy")
	v.SetDefault("persistence.max_age", 7*24*time.Hour)

	v.SetDefault("events.kafka_brokers", []string{})
	v.SetDefault("events.topic", "studybuddy.events")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

// Default returns the configuration Load produces with no file and no
// environment overrides.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	// Defaults always decode.
	_ = v.Unmarshal(&cfg)
	return &cfg
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks field constraints. Provider credentials are not checked
// here; llm.Resolve decides whether a usable provider exists.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	if c.Persistence.Backend == BackendRedis && c.Persistence.RedisURL == "" {
		return errors.New("invalid config: persistence.redis_url is required for the redis backend")
	}
	return nil
}
