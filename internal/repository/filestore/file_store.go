// Package filestore persists the mapping table to a plain-text file,
// one "shortcut=url" pair per line. The file is meant to be
// hand-editable and is conventionally named "config".
package filestore

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/KretovDmitry/golinks/internal/config"
	"github.com/KretovDmitry/golinks/internal/errs"
	"github.com/KretovDmitry/golinks/internal/models"
	"github.com/KretovDmitry/golinks/internal/repository/memstore"
	"go.uber.org/zap"
)

// separator between the shortcut and the destination on a line.
// Shortcuts must not contain it; destinations may.
const separator = "="

// FileStore is a file-backed storage for the mapping table.
// The whole table is cached in memory; every save rewrites the file.
type FileStore struct {
	// cache is an in-memory mapping repository holding the table.
	cache *memstore.MappingRepository
	// path to the backing file. Empty path disables persistence.
	path   string
	logger *zap.Logger
	// mu serializes mutations so that back-to-back saves
	// cannot interleave partial writes.
	mu sync.Mutex
}

// NewFileStore creates a FileStore and loads the mapping table from the
// backing file. Malformed lines are logged and skipped so that a
// hand-edited file cannot take the service down. An unreadable file is
// an error: the caller should treat it as fatal at startup.
func NewFileStore(config *config.Config, logger *zap.Logger) (*FileStore, error) {
	if config == nil {
		return nil, fmt.Errorf("%w: config", errs.ErrNilDependency)
	}
	if logger == nil {
		return nil, fmt.Errorf("%w: logger", errs.ErrNilDependency)
	}

	fs := &FileStore{
		cache:  memstore.NewMappingRepository(),
		path:   config.FileStoragePath,
		logger: logger,
	}

	if !fs.writeToFileRequired() {
		logger.Info("file storage path isn't set, using in memory storage")
		return fs, nil
	}

	if err := fs.load(); err != nil {
		return nil, fmt.Errorf("load mapping table: %w", err)
	}

	return fs, nil
}

// load reads the backing file into the cache.
// The file is created when it does not exist yet.
func (fs *FileStore) load() error {
	file, err := os.OpenFile(fs.path, os.O_RDONLY|os.O_CREATE, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		shortcut, destination, found := strings.Cut(line, separator)
		if !found || shortcut == "" || destination == "" {
			fs.logger.Warn("skipping malformed mapping line",
				zap.String("file", fs.path),
				zap.Int("line", lineNo),
			)
			continue
		}

		// Later duplicates win, so appended overrides keep working.
		err = fs.cache.Save(context.TODO(), &models.Mapping{
			Shortcut:    models.Shortcut(shortcut),
			Destination: models.NormalizeDestination(destination),
		})
		if err != nil {
			return fmt.Errorf("save record: %w", err)
		}
	}

	return scanner.Err()
}

// Resolve retrieves a mapping from the cache by its shortcut.
func (fs *FileStore) Resolve(ctx context.Context, shortcut models.Shortcut) (*models.Mapping, error) {
	return fs.cache.Resolve(ctx, shortcut)
}

// All returns a snapshot of the whole mapping table.
func (fs *FileStore) All(ctx context.Context) (map[models.Shortcut]models.Destination, error) {
	return fs.cache.All(ctx)
}

// Save inserts or overwrites a mapping and rewrites the backing file.
// The in-memory table keeps the change even when the flush fails;
// the returned error then wraps ErrPersistence to signal that the
// change may be lost on restart.
func (fs *FileStore) Save(ctx context.Context, m *models.Mapping) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	if err := fs.cache.Save(ctx, m); err != nil {
		return fmt.Errorf("save record: %w", err)
	}

	if !fs.writeToFileRequired() {
		return nil
	}

	if err := fs.flush(ctx); err != nil {
		return fmt.Errorf("%w: %v", errs.ErrPersistence, err)
	}

	return nil
}

// flush writes the full table to a temp file, syncs it and renames it
// over the target, so the file on disk is never half-written and a
// success implies durability.
func (fs *FileStore) flush(ctx context.Context) error {
	table, err := fs.cache.All(ctx)
	if err != nil {
		return err
	}

	shortcuts := make([]string, 0, len(table))
	for shortcut := range table {
		shortcuts = append(shortcuts, string(shortcut))
	}
	sort.Strings(shortcuts)

	tmp, err := os.CreateTemp(filepath.Dir(fs.path), filepath.Base(fs.path)+".tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	w := bufio.NewWriter(tmp)
	for _, shortcut := range shortcuts {
		if _, err = fmt.Fprintf(w, "%s%s%s\n",
			shortcut, separator, table[models.Shortcut(shortcut)],
		); err != nil {
			tmp.Close()
			return fmt.Errorf("write record: %w", err)
		}
	}

	if err = w.Flush(); err != nil {
		tmp.Close()
		return fmt.Errorf("flush records: %w", err)
	}

	if err = tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}

	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err = os.Rename(tmp.Name(), fs.path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}

	return nil
}

// Ping is a placeholder method that returns an error
// indicating that the database is not connected [ErrDBNotConnected].
func (fs *FileStore) Ping(context.Context) error {
	return errs.ErrDBNotConnected
}

// writeToFileRequired returns true if the mapping table should be
// persisted. Persistence is disabled by an empty file storage path.
func (fs *FileStore) writeToFileRequired() bool {
	return fs.path != ""
}
