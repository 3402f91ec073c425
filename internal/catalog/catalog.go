package catalog

import (
	"context"
	"time"

	"github.com/sfujino/vidiary/internal/model"
)

// EventKind identifies the mutation behind a catalog Event.
type EventKind string

const (
	EventLoaded  EventKind = "loaded"
	EventAdded   EventKind = "added"
	EventUpdated EventKind = "updated"
	EventDeleted EventKind = "deleted"
)

// Event is published to subscribers after a confirmed catalog mutation.
type Event struct {
	Kind  EventKind
	Entry model.VideoEntry
}

// NewEntry carries the caller-supplied fields of an entry to be created;
// id and createdAt are assigned by the catalog.
type NewEntry struct {
	Name         string
	Description  string
	URI          string
	ThumbnailURI string
	Duration     float64
}

// EntryUpdate is a partial update; nil fields are left untouched.
// id and createdAt cannot be updated.
type EntryUpdate struct {
	Name         *string
	Description  *string
	URI          *string
	ThumbnailURI *string
	Duration     *float64
}

// IDGenerator produces a globally-unique opaque string per created entry.
type IDGenerator func() string

// Clock produces the creation timestamp for new entries.
type Clock func() time.Time

// Catalog is the in-session, always-sorted view of all video entries.
// Mutations are written through to the durable store before the in-memory
// view changes, so the view never shows an entry that is not durable.
type Catalog interface {
	// Bootstrap loads all stored records into the catalog, replacing its
	// contents wholesale. Safe to call more than once; entries are never
	// duplicated.
	Bootstrap(ctx context.Context) error

	// Add assigns an id and creation time, persists the entry, and on
	// success inserts it into the view. Returns (nil, err) on failure with
	// the view unmodified.
	Add(ctx context.Context, entry NewEntry) (*model.VideoEntry, error)

	// Update persists a partial update, then merges it into the cached
	// entry if present. A missing id is a silent no-op.
	Update(ctx context.Context, id string, update EntryUpdate) error

	// Delete removes the stored row, then the cached entry. Returns the
	// removed entry so the caller can clean up its assets; (nil, nil) when
	// the id was not present.
	Delete(ctx context.Context, id string) (*model.VideoEntry, error)

	// GetByID looks up the cached entry only; no store fallback.
	GetByID(id string) (model.VideoEntry, bool)

	// Entries returns a copy of the current view, newest first.
	Entries() []model.VideoEntry

	// Subscribe registers a channel that receives events after confirmed
	// mutations. Sends are non-blocking; a full channel drops the event.
	Subscribe(ch chan<- Event)
}
