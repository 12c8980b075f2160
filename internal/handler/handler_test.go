package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/KretovDmitry/golinks/internal/errs"
	"github.com/KretovDmitry/golinks/internal/models"
	"github.com/KretovDmitry/golinks/internal/repository"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var errIntentionallyNotWorkingMethod = errors.New("intentionally not working method")

// mockStore must implement the MappingStorage interface.
type mockStore struct {
	table     map[models.Shortcut]models.Destination
	saveCalls int
}

func initMockStore(records ...*models.Mapping) *mockStore {
	s := &mockStore{table: make(map[models.Shortcut]models.Destination)}
	for _, m := range records {
		s.table[m.Shortcut] = m.Destination
	}
	return s
}

func (s *mockStore) Resolve(_ context.Context, shortcut models.Shortcut) (*models.Mapping, error) {
	destination, found := s.table[shortcut]
	if !found {
		return nil, fmt.Errorf("%s: %w", shortcut, errs.ErrNotFound)
	}
	return &models.Mapping{Shortcut: shortcut, Destination: destination}, nil
}

func (s *mockStore) Save(_ context.Context, m *models.Mapping) error {
	s.saveCalls++
	s.table[m.Shortcut] = m.Destination
	return nil
}

func (s *mockStore) All(context.Context) (map[models.Shortcut]models.Destination, error) {
	return s.table, nil
}

func (s *mockStore) Ping(context.Context) error {
	return errs.ErrDBNotConnected
}

// brokenStore simulates errors with storage operations.
type brokenStore struct {
	mockStore
}

func (s *brokenStore) Save(context.Context, *models.Mapping) error {
	return fmt.Errorf("%w: %w", errs.ErrPersistence, errIntentionallyNotWorkingMethod)
}

func (s *brokenStore) Resolve(context.Context, models.Shortcut) (*models.Mapping, error) {
	return nil, errIntentionallyNotWorkingMethod
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		store   *mockStore
		logger  *zap.Logger
		wantErr bool
	}{
		{
			name:    "positive test #1",
			store:   initMockStore(),
			logger:  zap.NewNop(),
			wantErr: false,
		},
		{
			name:    "negative test #1: nil store",
			store:   nil,
			logger:  zap.NewNop(),
			wantErr: true,
		},
		{
			name:    "negative test #2: nil logger",
			store:   initMockStore(),
			logger:  nil,
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var err error
			if tt.store == nil {
				_, err = New(nil, tt.logger)
			} else {
				_, err = New(tt.store, tt.logger)
			}
			if !assert.Equal(t, tt.wantErr, err != nil) {
				t.Errorf("Error message: %s\n", err)
			}
		})
	}
}

// newTestRouter registers the handler routes the way main does.
func newTestRouter(t *testing.T, store repository.MappingStorage) chi.Router {
	t.Helper()

	h, err := New(store, zap.NewNop())
	require.NoError(t, err)

	r := chi.NewRouter()
	r.Get("/go/{shortcut}", h.Redirect)
	r.Get("/save", h.Save)

	return r
}

func getResponseTextPayload(t *testing.T, res *http.Response) string {
	t.Helper()

	resBody, err := io.ReadAll(res.Body)
	res.Body.Close()
	require.NoError(t, err)
	return strings.TrimSpace(string(resBody))
}
