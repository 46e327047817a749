package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/CamiloBarros/todolist/internal/logger"
	"github.com/CamiloBarros/todolist/internal/store"
)

var errMissingDatabaseURL = errors.New("database url is required (set database.url or DATABASE_URL)")

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := appConfig
		if cfg.Database.URL == "" {
			return errMissingDatabaseURL
		}

		ctx := cmd.Context()
		db, err := store.NewDBConfig(cfg.Database.URL).Connect(ctx)
		if err != nil {
			return err
		}
		defer db.Close()

		if err := store.Migrate(ctx, db); err != nil {
			return err
		}

		logger.CLI().Info("schema applied")
		return nil
	},
}
