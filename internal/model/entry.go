package model

import (
	"strings"
	"time"

	"github.com/sfujino/vidiary/internal/errors"
)

// CreatedAtLayout is the canonical serialization of createdAt in the videos
// table. Fixed-width millisecond UTC, so the TEXT column sorts
// lexicographically in timestamp order.
const CreatedAtLayout = "2006-01-02T15:04:05.000Z"

// VideoEntry represents one diary clip and its metadata as seen by the
// application. ID and CreatedAt are assigned once, at creation.
type VideoEntry struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	URI          string    `json:"uri"`
	ThumbnailURI string    `json:"thumbnailUri"`
	CreatedAt    time.Time `json:"createdAt"`
	Duration     float64   `json:"duration"` // seconds; the cropping service produces fixed 5s clips
}

// VideoRecord is the storage-native shape of a VideoEntry: all columns of
// the videos table as flat primitives, createdAt as CreatedAtLayout text.
type VideoRecord struct {
	ID           string  `json:"id" db:"id"`
	Name         string  `json:"name" db:"name"`
	Description  string  `json:"description" db:"description"`
	URI          string  `json:"uri" db:"uri"`
	ThumbnailURI string  `json:"thumbnailUri" db:"thumbnailUri"`
	CreatedAt    string  `json:"createdAt" db:"createdAt"`
	Duration     float64 `json:"duration" db:"duration"`
}

// Record converts an entry to its storage representation. Sub-millisecond
// precision is truncated by the layout; the catalog's clock never produces
// it in the first place.
func (e VideoEntry) Record() VideoRecord {
	return VideoRecord{
		ID:           e.ID,
		Name:         e.Name,
		Description:  e.Description,
		URI:          e.URI,
		ThumbnailURI: e.ThumbnailURI,
		CreatedAt:    e.CreatedAt.UTC().Format(CreatedAtLayout),
		Duration:     e.Duration,
	}
}

// Entry converts a record back to the rich representation.
func (r VideoRecord) Entry() (VideoEntry, error) {
	createdAt, err := time.Parse(CreatedAtLayout, r.CreatedAt)
	if err != nil {
		return VideoEntry{}, errors.Wrap(err, errors.CodeInternal, "invalid createdAt in stored record")
	}
	return VideoEntry{
		ID:           r.ID,
		Name:         r.Name,
		Description:  r.Description,
		URI:          r.URI,
		ThumbnailURI: r.ThumbnailURI,
		CreatedAt:    createdAt,
		Duration:     r.Duration,
	}, nil
}

// Validate checks the fields this layer is responsible for before
// persistence. Asset URIs are not checked for existence here.
func (e VideoEntry) Validate() error {
	if e.ID == "" {
		return errors.New(errors.CodeInvalidArg, "entry id is required")
	}
	if strings.TrimSpace(e.Name) == "" {
		return errors.New(errors.CodeInvalidArg, "entry name is required")
	}
	if e.URI == "" {
		return errors.New(errors.CodeInvalidArg, "entry uri is required")
	}
	return nil
}
