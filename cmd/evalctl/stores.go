package main

import (
	"context"
	"fmt"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/doodlesbykumbi/lecture-eval/pkg/config"
	"github.com/doodlesbykumbi/lecture-eval/pkg/db"
	"github.com/doodlesbykumbi/lecture-eval/pkg/logging"
	"github.com/doodlesbykumbi/lecture-eval/pkg/server"
	gormstore "github.com/doodlesbykumbi/lecture-eval/pkg/server/store/gorm"
	"github.com/doodlesbykumbi/lecture-eval/pkg/server/store/jsonfile"
)

// loadConfig loads and validates the configuration
func loadConfig() (*config.EvalConfig, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// openStores builds the stores of the configured backend. The returned
// close function releases the backend's resources.
func openStores(cfg *config.EvalConfig, log *zap.Logger) (server.Stores, func(), error) {
	switch cfg.StorageBackend {
	case config.BackendJSON:
		js := jsonfile.New(afero.NewOsFs(), cfg.DataDir)
		if err := js.EnsureFiles(); err != nil {
			return server.Stores{}, nil, fmt.Errorf("failed to prepare data files: %w", err)
		}
		log.Info("using json storage", zap.String("data_dir", cfg.DataDir))
		return server.Stores{
			Users:       js,
			Lecturers:   js,
			Evaluations: js,
			Health:      js,
		}, func() {}, nil

	case config.BackendPostgres:
		database, err := db.Connect(db.Config{LogLevel: cfg.LogLevel})
		if err != nil {
			return server.Stores{}, nil, err
		}
		log.Info("using postgres storage")
		closeDB := func() {
			if sqlDB, err := database.DB(); err == nil {
				_ = sqlDB.Close()
			}
		}
		return server.Stores{
			Users:       gormstore.NewUsersStore(database),
			Lecturers:   gormstore.NewLecturersStore(database),
			Evaluations: gormstore.NewEvaluationsStore(database),
			Health:      gormstore.NewHealthStore(database),
		}, closeDB, nil
	}

	return server.Stores{}, nil, fmt.Errorf("unsupported storage backend %q", cfg.StorageBackend)
}

// withStores opens the configured backend, runs fn and releases the backend
func withStores(fn func(ctx context.Context, stores server.Stores, cfg *config.EvalConfig) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, err := logging.GetLogger(logging.LevelNone)
	if err != nil {
		return err
	}

	stores, closeStores, err := openStores(cfg, logger)
	if err != nil {
		return fmt.Errorf("unable to open storage: %w", err)
	}
	defer closeStores()

	return fn(context.Background(), stores, cfg)
}
