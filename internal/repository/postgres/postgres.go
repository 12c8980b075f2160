package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/KretovDmitry/golinks/internal/errs"
	"github.com/KretovDmitry/golinks/internal/models"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"
)

// MappingRepository is a postgres-backed storage for the mapping table.
type MappingRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewMappingRepository creates a new postgres mapping repository
// over an already opened database handle.
func NewMappingRepository(db *sql.DB, logger *zap.Logger) (*MappingRepository, error) {
	if db == nil {
		return nil, fmt.Errorf("%w: *sql.DB", errs.ErrNilDependency)
	}
	if logger == nil {
		return nil, fmt.Errorf("%w: logger", errs.ErrNilDependency)
	}
	return &MappingRepository{db: db, logger: logger}, nil
}

// Save inserts a mapping record or overwrites the destination of an
// existing shortcut. A successful return implies the record is
// committed and durable.
func (mr *MappingRepository) Save(ctx context.Context, m *models.Mapping) error {
	const q = `
		INSERT INTO mapping
			(id, shortcut, destination)
		VALUES
			($1, $2, $3)
	`

	_, err := mr.db.ExecContext(ctx, q, m.ID, m.Shortcut, m.Destination)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			// the shortcut already exists, overwrite its destination
			if pgErr.Code == pgerrcode.UniqueViolation {
				return mr.update(ctx, m)
			}
			// create a new error with additional context
			return fmt.Errorf("save mapping with query (%s): %w",
				formatQuery(q), formatPgError(pgErr),
			)
		}

		return fmt.Errorf("save mapping with query (%s): %w", formatQuery(q), err)
	}

	return nil
}

// update overwrites the destination of an existing shortcut.
func (mr *MappingRepository) update(ctx context.Context, m *models.Mapping) error {
	const q = `
		UPDATE
			mapping
		SET
			destination = $2
		WHERE
			shortcut = $1
	`

	_, err := mr.db.ExecContext(ctx, q, m.Shortcut, m.Destination)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			return fmt.Errorf("update mapping with query (%s): %w",
				formatQuery(q), formatPgError(pgErr),
			)
		}

		return fmt.Errorf("update mapping with query (%s): %w", formatQuery(q), err)
	}

	return nil
}

// Resolve retrieves a mapping record from the database by its shortcut.
// If the record does not exist, ErrNotFound is returned.
func (mr *MappingRepository) Resolve(ctx context.Context, shortcut models.Shortcut) (*models.Mapping, error) {
	const q = `
		SELECT
			id, shortcut, destination
		FROM
			mapping
		WHERE
			shortcut = $1
	`

	m := new(models.Mapping)
	err := mr.db.QueryRowContext(ctx, q, shortcut).Scan(
		&m.ID,
		&m.Shortcut,
		&m.Destination,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", shortcut, errs.ErrNotFound)
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			// Create a new error with additional context.
			return nil, fmt.Errorf("retrieve mapping with query (%s): %w",
				formatQuery(q), formatPgError(pgErr),
			)
		}

		return nil, fmt.Errorf("retrieve mapping with query (%s): %w", formatQuery(q), err)
	}

	return m, nil
}

// All retrieves the whole mapping table from the database.
func (mr *MappingRepository) All(ctx context.Context) (map[models.Shortcut]models.Destination, error) {
	const q = `
		SELECT
			shortcut, destination
		FROM
			mapping
	`

	rows, err := mr.db.QueryContext(ctx, q)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			return nil, fmt.Errorf("retrieve mappings with query (%s): %w",
				formatQuery(q), formatPgError(pgErr),
			)
		}

		return nil, fmt.Errorf("retrieve mappings with query (%s): %w", formatQuery(q), err)
	}
	defer func() {
		if err = rows.Close(); err != nil {
			mr.logger.Error("close rows", zap.Error(err))
		}
	}()

	all := make(map[models.Shortcut]models.Destination)
	for rows.Next() {
		var (
			shortcut    models.Shortcut
			destination models.Destination
		)

		if err = rows.Scan(&shortcut, &destination); err != nil {
			return nil, fmt.Errorf(
				"retrieve mappings with query (%s): %w", formatQuery(q), err,
			)
		}

		all[shortcut] = destination
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("retrieve mappings with query (%s): %w", formatQuery(q), err)
	}

	return all, nil
}

// Ping verifies the connection to the database is alive.
func (mr *MappingRepository) Ping(ctx context.Context) error {
	return mr.db.PingContext(ctx)
}

// formatQuery removes tabs and replaces newlines with spaces in the given query string.
func formatQuery(q string) string {
	return strings.ReplaceAll(strings.ReplaceAll(q, "\t", ""), "\n", " ")
}

// formatPgError formats a PgError into a human-friendly error message.
func formatPgError(err *pgconn.PgError) error {
	return fmt.Errorf("SQL Error: %s, Detail: %s, Where: %s, Code: %s, SQLState: %s",
		err.Message,
		err.Detail,
		err.Where,
		err.Code,
		err.SQLState(),
	)
}
