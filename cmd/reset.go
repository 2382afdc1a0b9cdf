package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/studybuddy/internal/config"
	"github.com/abhisek/studybuddy/internal/logging"
	"github.com/abhisek/studybuddy/internal/persist"
	"github.com/abhisek/studybuddy/internal/store"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Forget the saved notes, practice settings and theme",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		var st *store.Store
		if cfg.Persistence.Backend == config.BackendSQLite {
			dbPath, err := resolveDBPath(cfg)
			if err != nil {
				return fmt.Errorf("resolve database path: %w", err)
			}
			if st, err = store.Open(dbPath); err != nil {
				return fmt.Errorf("open database: %w", err)
			}
			defer st.Close()
		}

		kv, closeKV, err := openKV(cmd.Context(), cfg, st)
		if err != nil {
			return err
		}
		defer closeKV()

		persist.NewGateway(kv, logging.Discard()).Clear(cmd.Context())
		fmt.Println("Saved settings cleared.")
		return nil
	},
}
