package cli

import (
	"github.com/spf13/cobra"

	"github.com/CamiloBarros/todolist/internal/config"
	"github.com/CamiloBarros/todolist/internal/logger"
)

// Global configuration variables
var (
	configFile string
	appConfig  *config.Config
)

// Version is stamped at build time.
var Version = "dev"

func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "todolist",
		Short: "TodoList - personal task management backend",
		Long: `TodoList is the backend service for a personal task manager:
users authenticate, organize tasks with categories and tags, filter and
paginate task lists, and view aggregate statistics.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if configFile == "" {
				configFile = config.GetConfigPath()
			}
			cfg, err := config.Load(configFile)
			if err != nil {
				return err
			}
			appConfig = cfg
			logger.Init(cfg.Log.Level)
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default: todolist.yaml)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)

	return rootCmd
}
