// Package repository provides the interfaces of storage.
package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/KretovDmitry/golinks/internal/config"
	"github.com/KretovDmitry/golinks/internal/errs"
	"github.com/KretovDmitry/golinks/internal/models"
	"github.com/KretovDmitry/golinks/internal/repository/filestore"
	"github.com/KretovDmitry/golinks/internal/repository/memstore"
	"github.com/KretovDmitry/golinks/internal/repository/postgres"
	"github.com/KretovDmitry/golinks/migrations"
	sqldblogger "github.com/simukti/sqldb-logger"
	"github.com/simukti/sqldb-logger/logadapter/zapadapter"
	"go.uber.org/zap"
)

// MappingStorage is the interface of the shortcut to destination table.
type MappingStorage interface {
	// Resolve retrieves a mapping by its shortcut; pure lookup.
	Resolve(ctx context.Context, shortcut models.Shortcut) (*models.Mapping, error)

	// Save inserts a mapping or overwrites the entry with the same
	// shortcut, then persists the table.
	Save(ctx context.Context, m *models.Mapping) error

	// All returns a snapshot of the whole mapping table.
	All(ctx context.Context) (map[models.Shortcut]models.Destination, error)

	// Ping checks the health of the storage.
	Ping(ctx context.Context) error
}

// Interface implementation guards.
var (
	_ MappingStorage = (*memstore.MappingRepository)(nil)
	_ MappingStorage = (*filestore.FileStore)(nil)
	_ MappingStorage = (*postgres.MappingRepository)(nil)
)

// NewMappingStore returns one of the MappingStorage implementations
// based on the configuration. Could be in memory, file storage or postgres.
func NewMappingStore(config *config.Config, logger *zap.Logger) (MappingStorage, error) {
	// Check for dependencies that can lead to panic.
	if config == nil {
		return nil, fmt.Errorf("%w: config", errs.ErrNilDependency)
	}
	if logger == nil {
		return nil, fmt.Errorf("%w: logger", errs.ErrNilDependency)
	}

	// Init postgres mapping repository if DSN is provided.
	if config.DSN != "" {
		// Connect to the postgres.
		db, err := sql.Open("pgx", config.DSN)
		if err != nil {
			return nil, fmt.Errorf("failed to open the database: %w", err)
		}

		// Log every query to the database.
		db = sqldblogger.OpenDriver(config.DSN, db.Driver(), zapadapter.New(logger))

		// Check connectivity and DSN correctness.
		if err = db.Ping(); err != nil {
			return nil, fmt.Errorf("failed to connect to the database: %w", err)
		}

		// Bring the schema up to date.
		if err = migrations.Up(db); err != nil {
			return nil, fmt.Errorf("failed to migrate DB: %w", err)
		}

		return postgres.NewMappingRepository(db, logger)
	}

	logger.Info("DSN is not provided, initializing file storage")

	store, err := filestore.NewFileStore(config, logger)
	if err != nil {
		return nil, fmt.Errorf("new file repository: %w", err)
	}

	if config.FileStoragePath != "" {
		logger.Info("file storage initialized",
			zap.String("path", config.FileStoragePath))
	}

	return store, nil
}
