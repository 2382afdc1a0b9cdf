// Package server exposes question generation and notes extraction over
// HTTP for browser clients and for the TUI's remote generator.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-chi/cors"

	"github.com/abhisek/studybuddy/internal/llm"
	"github.com/abhisek/studybuddy/internal/questiongen"
)

// Defaults for Options fields left zero.
const (
	DefaultMaxCount       = 50
	DefaultMaxUploadBytes = 10 << 20
	shutdownTimeout       = 5 * time.Second
)

// Options configures a Server.
type Options struct {
	// Generator answers POST /api/generate-questions. Required.
	Generator questiongen.Generator

	// Provider answers GET /api/test-llm. Nil reports the probe as
	// unavailable.
	Provider llm.Provider

	// MaxCount caps the requested question count.
	MaxCount int

	// MaxUploadBytes caps POST /api/extract-text bodies.
	MaxUploadBytes int64

	// CORSOrigins lists allowed browser origins; "*" allows any.
	CORSOrigins []string

	// GinMode is debug, release or test.
	GinMode string

	Logger *slog.Logger
}

// Server is the HTTP question service.
type Server struct {
	opts    Options
	engine  *gin.Engine
	handler http.Handler
	logger  *slog.Logger
}

// New builds the router.
func New(opts Options) *Server {
	if opts.MaxCount <= 0 {
		opts.MaxCount = DefaultMaxCount
	}
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = DefaultMaxUploadBytes
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	if opts.GinMode != "" {
		gin.SetMode(opts.GinMode)
	}

	s := &Server{opts: opts, logger: opts.Logger.With("component", "server")}

	s.engine = gin.New()
	s.engine.Use(gin.Recovery(), requestLogger(s.logger))
	s.engine.MaxMultipartMemory = opts.MaxUploadBytes
	s.routes()

	s.handler = cors.Handler(cors.Options{
		AllowedOrigins: opts.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
		MaxAge:         300,
	})(s.engine)
	return s
}

func (s *Server) routes() {
	s.engine.GET("/health", s.health)

	api := s.engine.Group("/api")
	api.POST("/generate-questions", s.generateQuestions)
	api.GET("/test-llm", s.testLLM)
	api.POST("/extract-text", s.extractText)
}

// Handler returns the CORS-wrapped router.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Run serves on addr until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("question service listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down question service")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// requestLogger logs one line per request.
func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		level := slog.LevelInfo
		if c.Writer.Status() >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		logger.Log(c.Request.Context(), level, "request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP())
	}
}
