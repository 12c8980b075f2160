package memstore

import (
	"context"
	"fmt"
	"sync"

	"github.com/KretovDmitry/golinks/internal/errs"
	"github.com/KretovDmitry/golinks/internal/models"
)

// MappingRepository is an in-memory implementation of the MappingStorage
// interface. It stores the mapping table in a map and is safe for
// concurrent use.
type MappingRepository struct {
	// store is a map that holds the mapping table.
	store map[models.Shortcut]models.Mapping
	// mu is a mutex that protects the store map from concurrent access.
	mu sync.RWMutex
}

// NewMappingRepository creates a new instance of the MappingRepository
// with an empty mapping table.
func NewMappingRepository() *MappingRepository {
	return &MappingRepository{store: make(map[models.Shortcut]models.Mapping)}
}

// Resolve retrieves a mapping by its shortcut.
// If the shortcut is not found, it returns ErrNotFound.
func (r *MappingRepository) Resolve(_ context.Context, shortcut models.Shortcut) (*models.Mapping, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, found := r.store[shortcut]
	if !found {
		return nil, fmt.Errorf("%s: %w", shortcut, errs.ErrNotFound)
	}

	return &record, nil
}

// Save inserts a mapping into the store or overwrites the entry
// with the same shortcut.
func (r *MappingRepository) Save(_ context.Context, m *models.Mapping) error {
	r.mu.Lock()
	r.store[m.Shortcut] = *m
	r.mu.Unlock()

	return nil
}

// All returns a snapshot of the whole mapping table.
func (r *MappingRepository) All(_ context.Context) (map[models.Shortcut]models.Destination, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make(map[models.Shortcut]models.Destination, len(r.store))
	for shortcut, record := range r.store {
		all[shortcut] = record.Destination
	}

	return all, nil
}

// Ping is a placeholder method that returns an error
// indicating that the database is not connected [ErrDBNotConnected].
func (r *MappingRepository) Ping(_ context.Context) error {
	return errs.ErrDBNotConnected
}
