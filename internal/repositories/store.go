package repositories

import (
	"context"
	"fmt"
	"log/slog"

	portsrepo "github.com/SscSPs/isp_bookkeeping_app/internal/core/ports/repositories"
	"github.com/SscSPs/isp_bookkeeping_app/internal/platform/config"
	"github.com/SscSPs/isp_bookkeeping_app/internal/repositories/database/mongodb"
	"github.com/SscSPs/isp_bookkeeping_app/internal/repositories/database/pgsql"
	"github.com/SscSPs/isp_bookkeeping_app/internal/repositories/database/sqlite"
	"github.com/SscSPs/isp_bookkeeping_app/internal/repositories/file"
	"github.com/SscSPs/isp_bookkeeping_app/internal/repositories/memory"
	"github.com/SscSPs/isp_bookkeeping_app/pkg/database"
)

// OpenStateRepository opens the store selected by cfg.StoreDriver. For postgres it
// also applies pending migrations. The caller owns the returned repository and must Close it.
func OpenStateRepository(ctx context.Context, cfg *config.Config, logger *slog.Logger) (portsrepo.StateRepositoryFacade, error) {
	logger = logger.With(slog.String("store_driver", string(cfg.StoreDriver)))

	switch cfg.StoreDriver {
	case config.StoreMemory:
		logger.Warn("Using in-memory store; state is lost on restart")
		return memory.New(), nil

	case config.StoreFile:
		repo, err := file.Open(cfg.DataFilePath, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to open data file: %w", err)
		}
		logger.Info("Using file store", slog.String("path", cfg.DataFilePath))
		return repo, nil

	case config.StoreSQLite:
		repo, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		logger.Info("Using sqlite store", slog.String("path", cfg.SQLitePath))
		return repo, nil

	case config.StorePostgres:
		pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, logger)
		if err != nil {
			return nil, err
		}
		if err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, logger); err != nil {
			pool.Close()
			return nil, err
		}
		return pgsql.NewRepositoryProvider(pool).StateRepo, nil

	case config.StoreMongo:
		client, err := database.NewMongoClient(ctx, cfg.MongoURI, logger)
		if err != nil {
			return nil, err
		}
		return mongodb.NewMongoStateRepository(client, cfg.MongoDatabase), nil

	default:
		return nil, fmt.Errorf("unsupported store driver %q", cfg.StoreDriver)
	}
}
