package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/CamiloBarros/todolist/internal/auth"
	"github.com/CamiloBarros/todolist/internal/category"
	"github.com/CamiloBarros/todolist/internal/httpapi"
	"github.com/CamiloBarros/todolist/internal/logger"
	"github.com/CamiloBarros/todolist/internal/stats"
	"github.com/CamiloBarros/todolist/internal/store"
	"github.com/CamiloBarros/todolist/internal/tag"
	"github.com/CamiloBarros/todolist/internal/task"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func runServe(ctx context.Context) error {
	cfg := appConfig
	if err := cfg.Validate(); err != nil {
		return err
	}

	log := logger.CLI()

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dbCfg := store.NewDBConfig(cfg.Database.URL)
	dbCfg.MaxOpenConns = cfg.Database.MaxOpenConns
	dbCfg.MaxIdleConns = cfg.Database.MaxIdleConns
	dbCfg.ConnMaxLifetime = cfg.Database.ConnMaxLifetime

	db, err := dbCfg.Connect(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	if cfg.Database.AutoMigrate {
		if err := store.Migrate(ctx, db); err != nil {
			return err
		}
		log.Info("schema applied")
	}

	server := httpapi.NewServer(
		auth.NewService(db, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL),
		task.NewService(db, task.Limits{
			DefaultPageSize: cfg.Pagination.DefaultLimit,
			MaxPageSize:     cfg.Pagination.MaxLimit,
		}),
		stats.NewService(db),
		category.NewService(db),
		tag.NewService(db),
	)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      server.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", addr)
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}
