package repository

import (
	"context"

	"github.com/sfujino/vidiary/internal/model"
)

// EntryRepository defines operations for VideoRecord persistence
type EntryRepository interface {
	// Insert creates a new video record
	Insert(ctx context.Context, record *model.VideoRecord) error

	// GetByID retrieves a video record by its ID.
	// Returns (nil, nil) when no row matches; absence is not an error.
	GetByID(ctx context.Context, id string) (*model.VideoRecord, error)

	// ListAll retrieves all video records ordered by createdAt descending
	ListAll(ctx context.Context) ([]*model.VideoRecord, error)

	// Update applies a partial update to the row matching id. Only known
	// mutable columns are applied; unknown field names are ignored.
	// Returns the number of rows affected; 0 means no row matched.
	Update(ctx context.Context, id string, fields map[string]any) (int64, error)

	// Delete removes the row matching id. Returns the number of rows
	// affected; 0 means no row matched and is not an error.
	Delete(ctx context.Context, id string) (int64, error)
}
