//go:build integration

package catalog_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sfujino/vidiary/internal/catalog"
	"github.com/sfujino/vidiary/internal/repository"
	"github.com/sfujino/vidiary/internal/repository/common"
)

// TestCatalog_WriteThrough exercises the full path: every cache state must
// be backed by a durable row.
func TestCatalog_WriteThrough(t *testing.T) {
	pool := common.SetupTestDB(t)
	repo := repository.NewEntryRepository(pool)
	cat := catalog.NewCatalog(repo, slog.Default())

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	require.NoError(t, cat.Bootstrap(ctx))
	assert.Empty(t, cat.Entries())

	first, err := cat.Add(ctx, catalog.NewEntry{
		Name:         "Morning walk",
		URI:          "file:///library/videos/a.mp4",
		ThumbnailURI: "file:///library/thumbnails/a.jpg",
		Duration:     5.0,
	})
	require.NoError(t, err)

	// Creation timestamps have millisecond precision; keep them distinct
	time.Sleep(2 * time.Millisecond)

	second, err := cat.Add(ctx, catalog.NewEntry{
		Name:     "Evening run",
		URI:      "file:///library/videos/b.mp4",
		Duration: 5.0,
	})
	require.NoError(t, err)

	// Newest first in the cache
	entries := cat.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, second.ID, entries[0].ID)
	assert.Equal(t, first.ID, entries[1].ID)

	// The durable store agrees with the cache
	records, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, second.ID, records[0].ID)

	// A fresh catalog over the same store sees the same state
	fresh := catalog.NewCatalog(repo, slog.Default())
	require.NoError(t, fresh.Bootstrap(ctx))
	assert.Len(t, fresh.Entries(), 2)
	got, ok := fresh.GetByID(first.ID)
	require.True(t, ok)
	assert.Equal(t, first.Name, got.Name)
	assert.True(t, first.CreatedAt.Equal(got.CreatedAt))

	// Update persists and survives a reload
	newDesc := "rewritten"
	require.NoError(t, cat.Update(ctx, first.ID, catalog.EntryUpdate{Description: &newDesc}))
	record, err := repo.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "rewritten", record.Description)

	// Delete removes both the row and the cached entry
	removed, err := cat.Delete(ctx, second.ID)
	require.NoError(t, err)
	require.NotNil(t, removed)

	record, err = repo.GetByID(ctx, second.ID)
	require.NoError(t, err)
	assert.Nil(t, record)

	_, ok = cat.GetByID(second.ID)
	assert.False(t, ok)
}
