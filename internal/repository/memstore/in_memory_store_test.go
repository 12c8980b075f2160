package memstore

import (
	"context"
	"sync"
	"testing"

	"github.com/KretovDmitry/golinks/internal/errs"
	"github.com/KretovDmitry/golinks/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMappingRepository_SaveResolveRoundTrip(t *testing.T) {
	r := NewMappingRepository()
	ctx := context.Background()

	require.NoError(t, r.Save(ctx, models.NewMapping("gh", "https://github.com")))

	record, err := r.Resolve(ctx, "gh")
	require.NoError(t, err)
	assert.Equal(t, models.Destination("https://github.com"), record.Destination)
}

func TestMappingRepository_Overwrite(t *testing.T) {
	r := NewMappingRepository()
	ctx := context.Background()

	require.NoError(t, r.Save(ctx, models.NewMapping("gh", "https://a.com")))
	require.NoError(t, r.Save(ctx, models.NewMapping("gh", "https://b.com")))

	record, err := r.Resolve(ctx, "gh")
	require.NoError(t, err)
	assert.Equal(t, models.Destination("https://b.com"), record.Destination)
}

func TestMappingRepository_NotFound(t *testing.T) {
	r := NewMappingRepository()

	_, err := r.Resolve(context.Background(), "unknown")
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestMappingRepository_AllReturnsSnapshot(t *testing.T) {
	r := NewMappingRepository()
	ctx := context.Background()

	require.NoError(t, r.Save(ctx, models.NewMapping("gh", "https://github.com")))

	table, err := r.All(ctx)
	require.NoError(t, err)

	// Mutating the snapshot must not affect the store.
	table["gh"] = "https://mutated.example.com"

	record, err := r.Resolve(ctx, "gh")
	require.NoError(t, err)
	assert.Equal(t, models.Destination("https://github.com"), record.Destination)
}

func TestMappingRepository_ConcurrentAccess(t *testing.T) {
	r := NewMappingRepository()
	ctx := context.Background()

	var wg sync.WaitGroup
	for _, m := range []*models.Mapping{
		models.NewMapping("gh", "https://github.com"),
		models.NewMapping("docs", "https://go.dev/doc/"),
		models.NewMapping("pkg", "https://pkg.go.dev"),
	} {
		wg.Add(1)
		go func(m *models.Mapping) {
			defer wg.Done()
			assert.NoError(t, r.Save(ctx, m))
		}(m)
	}
	wg.Wait()

	table, err := r.All(ctx)
	require.NoError(t, err)
	assert.Len(t, table, 3)
}

func TestMappingRepository_Ping(t *testing.T) {
	r := NewMappingRepository()
	assert.ErrorIs(t, r.Ping(context.Background()), errs.ErrDBNotConnected)
}
