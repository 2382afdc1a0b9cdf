package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/abhisek/studybuddy/internal/app"
	"github.com/abhisek/studybuddy/internal/config"
	"github.com/abhisek/studybuddy/internal/logging"
	"github.com/abhisek/studybuddy/internal/persist"
	"github.com/abhisek/studybuddy/internal/questionbank"
	"github.com/abhisek/studybuddy/internal/screen"
	"github.com/abhisek/studybuddy/internal/screens/home"
	"github.com/abhisek/studybuddy/internal/screens/practice"
	"github.com/abhisek/studybuddy/internal/store"
)

type tuiFlags struct {
	bank      string
	ephemeral bool
	exportDir string
}

var practiceCmd = &cobra.Command{
	Use:   "practice",
	Short: "Start the interactive practice app",
	RunE: func(cmd *cobra.Command, args []string) error {
		var f tuiFlags
		f.bank, _ = cmd.Flags().GetString("bank")
		f.ephemeral, _ = cmd.Flags().GetBool("ephemeral")
		f.exportDir, _ = cmd.Flags().GetString("export-dir")
		return runTUI(cmd, f)
	},
}

func init() {
	practiceCmd.Flags().String("bank", "", "Practice a saved question bank (.yaml, .json or .xlsx) instead of generating")
	practiceCmd.Flags().Bool("ephemeral", false, "Keep nothing on disk: in-memory settings and no results history")
	practiceCmd.Flags().String("export-dir", ".", "Directory for exported reports")
}

// runTUI builds the dependencies and launches the TUI. Logs go to a file in
// the data directory because the terminal belongs to the renderer.
func runTUI(cmd *cobra.Command, f tuiFlags) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if f.exportDir == "" {
		f.exportDir = "."
	}

	dataDir, err := store.DataDir()
	if err != nil {
		return fmt.Errorf("resolve data dir: %w", err)
	}
	logFile, err := logging.OpenFile(dataDir)
	if err != nil {
		return err
	}
	defer logFile.Close()
	logger := logging.New(cfg.Log.Level, cfg.Log.Format, logFile)

	var st *store.Store
	var results store.ResultRepo
	var eventRepo store.EventRepo
	if f.ephemeral {
		cfg.Persistence.Backend = config.BackendMemory
	} else {
		dbPath, err := resolveDBPath(cfg)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		st, err = store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()
		results = st.ResultRepo()
		eventRepo = st.EventRepo()
	}

	kv, closeKV, err := openKV(ctx, cfg, st)
	if err != nil {
		return fmt.Errorf("open settings store: %w", err)
	}
	defer closeKV()
	gw := persist.NewGateway(kv, logger, persist.WithMaxAge(cfg.Persistence.MaxAge))

	bus, closeBus, err := newBus(ctx, cfg, results, logger)
	if err != nil {
		return fmt.Errorf("start event bus: %w", err)
	}
	defer closeBus()

	practiceOpts := practice.Options{
		Gateway:   gw,
		Bus:       bus,
		Results:   results,
		ExportDir: f.exportDir,
		Logger:    logger,
	}
	if f.bank != "" {
		if err := useBank(&practiceOpts, f.bank, logger); err != nil {
			return err
		}
	} else {
		practiceOpts.Generator = newGenerator(cfg, newProvider(ctx, cfg, eventRepo, logger), logger)
	}

	root := home.New(home.Options{
		NewPractice: func() screen.Screen { return practice.New(practiceOpts) },
		Results:     results,
		ExportDir:   f.exportDir,
	})

	logger.Info("starting tui", "backend", cfg.Persistence.Backend, "bank", f.bank)
	return app.Run(ctx, app.Options{Root: root, Gateway: gw, Logger: logger})
}

// useBank points the practice screen at a saved question bank. Its notes
// and mode are preset so the round can start right away.
func useBank(opts *practice.Options, path string, logger *slog.Logger) error {
	bank, err := questionbank.Load(path)
	if err != nil {
		return fmt.Errorf("load question bank: %w", err)
	}
	opts.Generator = questionbank.NewGenerator(bank, true)
	opts.Notes = "Question bank " + filepath.Base(path)
	opts.Mode = bank.Mode
	logger.Info("loaded question bank", "path", path, "questions", len(bank.Questions), "mode", bank.Mode)
	return nil
}
