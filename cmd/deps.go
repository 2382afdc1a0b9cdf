package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/abhisek/studybuddy/internal/cache"
	"github.com/abhisek/studybuddy/internal/config"
	"github.com/abhisek/studybuddy/internal/events"
	"github.com/abhisek/studybuddy/internal/llm"
	"github.com/abhisek/studybuddy/internal/persist"
	"github.com/abhisek/studybuddy/internal/questiongen"
	"github.com/abhisek/studybuddy/internal/store"
)

// newProvider builds the configured LLM provider. It returns nil when no
// provider is configured or discoverable from the environment.
func newProvider(ctx context.Context, cfg *config.Config, repo store.EventRepo, logger *slog.Logger) llm.Provider {
	resolved, ok := llm.Resolve(cfg.LLM)
	if !ok {
		logger.Warn("LLM provider not configured, using local question generation")
		return nil
	}
	p, err := llm.NewProvider(ctx, resolved, repo, logger)
	if err != nil {
		logger.Warn("LLM provider unavailable, using local question generation", "error", err)
		return nil
	}
	logger.Info("LLM provider ready", "provider", resolved.Provider, "model", p.ModelID())
	return p
}

// newGenerator picks the question source: a running serve instance when an
// endpoint is configured, otherwise the LLM with local fallback.
func newGenerator(cfg *config.Config, provider llm.Provider, logger *slog.Logger) questiongen.Generator {
	if cfg.Generation.Endpoint != "" {
		logger.Info("using remote question service", "endpoint", cfg.Generation.Endpoint)
		return questiongen.NewRemote(cfg.Generation.Endpoint, &http.Client{Timeout: cfg.LLM.Timeout + 30*time.Second})
	}

	local := questiongen.NewLocalGenerator(nil)
	if provider == nil {
		return local
	}

	genCfg := questiongen.DefaultConfig()
	genCfg.Structured = cfg.Generation.Structured
	genCfg.NotesLimit = cfg.Generation.NotesLimit
	if cfg.LLM.Timeout > 0 {
		genCfg.Timeout = cfg.LLM.Timeout
	}
	return &questiongen.FallbackGenerator{
		Primary:   questiongen.New(provider, local, genCfg, logger),
		Secondary: local,
		Logger:    logger,
	}
}

// openKV returns the key-value backend for the persistence gateway. The
// returned close func is never nil.
func openKV(ctx context.Context, cfg *config.Config, st *store.Store) (persist.KV, func(), error) {
	p := cfg.Persistence
	switch p.Backend {
	case config.BackendRedis:
		client, err := cache.Dial(ctx, p.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		return cache.NewRedisKV(client, p.Namespace, p.MaxAge), func() { client.Close() }, nil
	case config.BackendMemory:
		return persist.NewMemoryKV(), func() {}, nil
	}
	if st == nil {
		return nil, nil, fmt.Errorf("persistence backend %q needs the database", p.Backend)
	}
	return st.KV(p.Namespace), func() {}, nil
}

// newBus creates the event bus. Finished rounds are recorded when results
// is non-nil, and every event is forwarded to Kafka when brokers are
// configured.
func newBus(ctx context.Context, cfg *config.Config, results store.ResultRepo, logger *slog.Logger) (*events.Bus, func(), error) {
	bus := events.NewBus(logger)
	closers := []func() error{bus.Close}
	closeAll := func() {
		for _, c := range closers {
			if err := c(); err != nil {
				logger.Warn("close event bus", "error", err)
			}
		}
	}

	if results != nil {
		if err := bus.Handle(ctx, "result-recorder", events.TopicResultRecorded, events.RecordResults(results)); err != nil {
			closeAll()
			return nil, nil, err
		}
	}

	if brokers := cfg.Events.KafkaBrokers; len(brokers) > 0 {
		pub, err := events.NewKafkaPublisher(brokers, logger)
		if err != nil {
			closeAll()
			return nil, nil, err
		}
		fwd := events.NewForwarder(pub, cfg.Events.Topic, logger)
		if err := fwd.Attach(ctx, bus); err != nil {
			fwd.Close()
			closeAll()
			return nil, nil, err
		}
		// The bus drains before the publisher closes.
		closers = append(closers, fwd.Close)
	}
	return bus, closeAll, nil
}
