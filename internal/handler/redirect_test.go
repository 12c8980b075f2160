package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/KretovDmitry/golinks/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedirect(t *testing.T) {
	tests := []struct {
		name           string
		shortcut       string
		store          *mockStore
		assertResponse func(t *testing.T, res *http.Response)
	}{
		{
			name:     "positive test #1",
			shortcut: "gh",
			store: initMockStore(&models.Mapping{
				Shortcut:    "gh",
				Destination: "https://github.com",
			}),
			assertResponse: func(t *testing.T, res *http.Response) {
				defer res.Body.Close()
				assert.Equal(t, http.StatusFound, res.StatusCode)
				assert.Equal(t, "https://github.com", res.Header.Get("Location"))
			},
		},
		{
			name:     "positive test #2",
			shortcut: "docs",
			store: initMockStore(&models.Mapping{
				Shortcut:    "docs",
				Destination: "https://go.dev/doc/",
			}),
			assertResponse: func(t *testing.T, res *http.Response) {
				defer res.Body.Close()
				assert.Equal(t, http.StatusFound, res.StatusCode)
				assert.Equal(t, "https://go.dev/doc/", res.Header.Get("Location"))
			},
		},
		{
			name:     "shortcuts are case-sensitive",
			shortcut: "GH",
			store: initMockStore(&models.Mapping{
				Shortcut:    "gh",
				Destination: "https://github.com",
			}),
			assertResponse: func(t *testing.T, res *http.Response) {
				defer res.Body.Close()
				assert.Equal(t, http.StatusNotFound, res.StatusCode)
			},
		},
		{
			name:     "unknown shortcut",
			shortcut: "unknown",
			store:    initMockStore(),
			assertResponse: func(t *testing.T, res *http.Response) {
				defer res.Body.Close()
				assert.Equal(t, http.StatusNotFound, res.StatusCode)
				assert.Equal(t, "not found: unknown shortcut: unknown",
					getResponseTextPayload(t, res))
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRouter(t, tt.store)

			req := httptest.NewRequest(http.MethodGet, "/go/"+tt.shortcut, http.NoBody)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			tt.assertResponse(t, w.Result())
		})
	}
}

func TestRedirect_BrokenStore(t *testing.T) {
	r := newTestRouter(t, &brokenStore{})

	req := httptest.NewRequest(http.MethodGet, "/go/gh", http.NoBody)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusInternalServerError, res.StatusCode)
}

func TestRedirect_ListMappings(t *testing.T) {
	store := initMockStore(
		&models.Mapping{Shortcut: "gh", Destination: "https://github.com"},
		&models.Mapping{Shortcut: "docs", Destination: "https://go.dev/doc/"},
	)
	r := newTestRouter(t, store)

	req := httptest.NewRequest(http.MethodGet,
		"/go/"+url.PathEscape(eyesShortcut), http.NoBody)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	res := w.Result()
	defer res.Body.Close()

	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "application/json", res.Header.Get("Content-Type"))

	var table map[models.Shortcut]models.Destination
	require.NoError(t, json.NewDecoder(res.Body).Decode(&table))
	assert.Equal(t, map[models.Shortcut]models.Destination{
		"gh":   "https://github.com",
		"docs": "https://go.dev/doc/",
	}, table)
}

func TestRedirect_ListMappingsEmpty(t *testing.T) {
	r := newTestRouter(t, initMockStore())

	req := httptest.NewRequest(http.MethodGet,
		"/go/"+url.PathEscape(eyesShortcut), http.NoBody)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	res := w.Result()
	defer res.Body.Close()

	assert.Equal(t, http.StatusOK, res.StatusCode)

	var table map[models.Shortcut]models.Destination
	require.NoError(t, json.NewDecoder(res.Body).Decode(&table))
	assert.Empty(t, table)
}
