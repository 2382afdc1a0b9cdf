package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/studybuddy/internal/logging"
	"github.com/abhisek/studybuddy/internal/server"
	"github.com/abhisek/studybuddy/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP question generation service",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.Server.Addr = addr
		}
		logger := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stderr)
		ctx := cmd.Context()

		// LLM calls are recorded when the database is reachable.
		var eventRepo store.EventRepo
		if dbPath, err := resolveDBPath(cfg); err == nil {
			if st, err := store.Open(dbPath); err == nil {
				defer st.Close()
				eventRepo = st.EventRepo()
			} else {
				logger.Warn("LLM events will not be recorded", "error", err)
			}
		}

		provider := newProvider(ctx, cfg, eventRepo, logger)
		// The service itself never forwards to another endpoint.
		cfg.Generation.Endpoint = ""
		srv := server.New(server.Options{
			Generator:   newGenerator(cfg, provider, logger),
			Provider:    provider,
			MaxCount:    cfg.Generation.MaxCount,
			CORSOrigins: cfg.Server.CORSOrigins,
			GinMode:     cfg.Server.GinMode,
			Logger:      logger,
		})
		return srv.Run(ctx, cfg.Server.Addr)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides server.addr)")
}
