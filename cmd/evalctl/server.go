package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/doodlesbykumbi/lecture-eval/pkg/audit"
	"github.com/doodlesbykumbi/lecture-eval/pkg/config"
	"github.com/doodlesbykumbi/lecture-eval/pkg/logging"
	"github.com/doodlesbykumbi/lecture-eval/pkg/server"
	"github.com/doodlesbykumbi/lecture-eval/pkg/server/endpoints"
)

const shutdownTimeout = 10 * time.Second

func defaultBindAddress() string {
	if addr := os.Getenv("BIND_ADDRESS"); addr != "" {
		return addr
	}
	return "0.0.0.0"
}

func defaultPort() string {
	if port := os.Getenv("PORT"); port != "" {
		return port
	}
	return "8000"
}

func defaultPortInt() int {
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			return p
		}
	}
	return 8000
}

// serverCmd represents the server command
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Run the lecture evaluation API server",
	Long: `Run the lecture evaluation API server.

With the json storage backend (the default) the data files are created in
data_dir if missing. With the postgres backend DATABASE_URL is required and
database migrations are run on startup; use --no-migrate to skip.

The configuration file is watched; rating bounds, list limits and the admin
token secret are reloaded when it changes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		logger, err := logging.GetLogger(cfg.LogLevel)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Invalid log level %q: %v\n", cfg.LogLevel, err)
			os.Exit(1)
		}
		defer func() { _ = logger.Sync() }()

		noMigrate, _ := cmd.Flags().GetBool("no-migrate")
		if cfg.StorageBackend == config.BackendPostgres && !noMigrate {
			logger.Info("running database migrations")
			if err := runMigrations(); err != nil {
				fmt.Fprintf(os.Stderr, "Migration failed: %v\n", err)
				os.Exit(1)
			}
		}

		stores, closeStores, err := openStores(cfg, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Unable to open storage: %v\n", err)
			os.Exit(1)
		}
		defer closeStores()

		host, _ := cmd.Flags().GetString("bind-address")
		port, _ := cmd.Flags().GetString("port")
		s := server.NewServer(stores, cfg, logger, host, port)

		auditor, err := newAuditor(cfg, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Unable to open audit store: %v\n", err)
			os.Exit(1)
		}
		defer func() { _ = auditor.Close() }()
		s.Auditor = auditor

		if err := endpoints.RegisterAll(s); err != nil {
			fmt.Fprintf(os.Stderr, "Unable to register endpoints: %v\n", err)
			os.Exit(1)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		go watchConfig(ctx, s, cfg.ConfigFilePath(), logger)

		errCh := make(chan error, 1)
		go func() {
			logger.Info("running server", zap.String("addr", "http://"+s.Addr()))
			errCh <- s.Start()
		}()

		select {
		case err := <-errCh:
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("server failed", zap.Error(err))
				os.Exit(1)
			}
		case <-ctx.Done():
			logger.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := s.Shutdown(shutdownCtx); err != nil {
				logger.Error("graceful shutdown failed", zap.Error(err))
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)

	serverCmd.Flags().StringP("port", "p", defaultPort(), "server listen port")
	serverCmd.Flags().StringP("bind-address", "b", defaultBindAddress(), "server bind address")
	serverCmd.Flags().Bool("no-migrate", false, "skip running database migrations on start")
}

func newAuditor(cfg *config.EvalConfig, logger *zap.Logger) (*audit.Auditor, error) {
	if !cfg.AuditEnabled {
		return audit.NewAuditor(nil, nil, logger, false), nil
	}
	store, err := audit.NewStore()
	if err != nil {
		return nil, err
	}
	return audit.NewAuditor(audit.NewLogger(), store, logger, true), nil
}

// watchConfig applies reloaded configuration until ctx is done
func watchConfig(ctx context.Context, s *server.Server, path string, logger *zap.Logger) {
	err := config.Watch(ctx, path, func(cfg *config.EvalConfig) {
		s.SetConfig(cfg)
		logger.Info("configuration reloaded",
			zap.String("path", path),
			zap.Int("rating_min", cfg.RatingMin),
			zap.Int("rating_max", cfg.RatingMax),
			zap.Int("list_limit_max", cfg.ListLimitMax),
		)
	}, func(err error) {
		logger.Warn("configuration reload failed", zap.Error(err))
	})
	if err != nil {
		logger.Warn("configuration file is not watched", zap.String("path", path), zap.Error(err))
	}
}
