package catalog

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sfujino/vidiary/internal/model"
	"github.com/sfujino/vidiary/internal/repository"
)

// service implements Catalog over an EntryRepository
type service struct {
	repo   repository.EntryRepository
	ids    IDGenerator
	clock  Clock
	logger *slog.Logger

	mu      sync.RWMutex
	entries []model.VideoEntry // sorted by CreatedAt descending
	subs    []chan<- Event
}

// NewCatalog creates a Catalog with the default collaborators: uuid ids and
// a millisecond-truncated UTC clock. Millisecond truncation keeps the
// entry/record timestamp round trip exact.
func NewCatalog(repo repository.EntryRepository, logger *slog.Logger) Catalog {
	return NewCatalogWithCollaborators(repo, uuid.NewString, utcNowMillis, logger)
}

// NewCatalogWithCollaborators creates a Catalog with custom id and clock
// collaborators (for testing)
func NewCatalogWithCollaborators(repo repository.EntryRepository, ids IDGenerator, clock Clock, logger *slog.Logger) Catalog {
	if logger == nil {
		logger = slog.Default()
	}
	return &service{
		repo:   repo,
		ids:    ids,
		clock:  clock,
		logger: logger,
	}
}

func utcNowMillis() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

func (s *service) Bootstrap(ctx context.Context) error {
	records, err := s.repo.ListAll(ctx)
	if err != nil {
		s.logger.Error("failed to load catalog from store", "error", err)
		return err
	}

	entries := make([]model.VideoEntry, 0, len(records))
	for _, record := range records {
		entry, err := record.Entry()
		if err != nil {
			s.logger.Error("failed to convert stored record", "id", record.ID, "error", err)
			return err
		}
		entries = append(entries, entry)
	}
	sortEntries(entries)

	s.mu.Lock()
	s.entries = entries
	s.mu.Unlock()

	s.logger.Debug("catalog loaded", "count", len(entries))
	s.notify(Event{Kind: EventLoaded})
	return nil
}

func (s *service) Add(ctx context.Context, entry NewEntry) (*model.VideoEntry, error) {
	created := model.VideoEntry{
		ID:           s.ids(),
		Name:         entry.Name,
		Description:  entry.Description,
		URI:          entry.URI,
		ThumbnailURI: entry.ThumbnailURI,
		CreatedAt:    s.clock(),
		Duration:     entry.Duration,
	}
	if err := created.Validate(); err != nil {
		return nil, err
	}

	// Write-through: the store insert must succeed before the view changes
	record := created.Record()
	if err := s.repo.Insert(ctx, &record); err != nil {
		s.logger.Error("failed to add entry", "id", created.ID, "error", err)
		return nil, err
	}

	s.mu.Lock()
	s.entries = append(s.entries, created)
	sortEntries(s.entries)
	s.mu.Unlock()

	s.notify(Event{Kind: EventAdded, Entry: created})
	return &created, nil
}

func (s *service) Update(ctx context.Context, id string, update EntryUpdate) error {
	fields := update.fields()
	if len(fields) == 0 {
		return nil
	}

	affected, err := s.repo.Update(ctx, id, fields)
	if err != nil {
		s.logger.Error("failed to update entry", "id", id, "error", err)
		return err
	}
	if affected == 0 {
		s.logger.Debug("update matched no stored entry", "id", id)
	}

	s.mu.Lock()
	var updated *model.VideoEntry
	for i := range s.entries {
		if s.entries[i].ID == id {
			update.apply(&s.entries[i])
			entry := s.entries[i]
			updated = &entry
			break
		}
	}
	sortEntries(s.entries)
	s.mu.Unlock()

	if updated != nil {
		s.notify(Event{Kind: EventUpdated, Entry: *updated})
	}
	return nil
}

func (s *service) Delete(ctx context.Context, id string) (*model.VideoEntry, error) {
	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		s.logger.Error("failed to delete entry", "id", id, "error", err)
		return nil, err
	}
	if affected == 0 {
		s.logger.Debug("delete matched no stored entry", "id", id)
	}

	s.mu.Lock()
	var removed *model.VideoEntry
	for i := range s.entries {
		if s.entries[i].ID == id {
			entry := s.entries[i]
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			removed = &entry
			break
		}
	}
	s.mu.Unlock()

	if removed != nil {
		s.notify(Event{Kind: EventDeleted, Entry: *removed})
	}
	return removed, nil
}

func (s *service) GetByID(id string) (model.VideoEntry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, entry := range s.entries {
		if entry.ID == id {
			return entry, true
		}
	}
	return model.VideoEntry{}, false
}

func (s *service) Entries() []model.VideoEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.VideoEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

func (s *service) Subscribe(ch chan<- Event) {
	s.mu.Lock()
	s.subs = append(s.subs, ch)
	s.mu.Unlock()
}

// notify delivers an event to all subscribers without blocking; a
// subscriber with a full channel misses the event
func (s *service) notify(event Event) {
	s.mu.RLock()
	subs := make([]chan<- Event, len(s.subs))
	copy(subs, s.subs)
	s.mu.RUnlock()

	for _, ch := range subs {
		select {
		case ch <- event:
		default:
		}
	}
}

// fields flattens an EntryUpdate into record column names for the store
func (u EntryUpdate) fields() map[string]any {
	fields := make(map[string]any)
	if u.Name != nil {
		fields["name"] = *u.Name
	}
	if u.Description != nil {
		fields["description"] = *u.Description
	}
	if u.URI != nil {
		fields["uri"] = *u.URI
	}
	if u.ThumbnailURI != nil {
		fields["thumbnailUri"] = *u.ThumbnailURI
	}
	if u.Duration != nil {
		fields["duration"] = *u.Duration
	}
	return fields
}

func (u EntryUpdate) apply(entry *model.VideoEntry) {
	if u.Name != nil {
		entry.Name = *u.Name
	}
	if u.Description != nil {
		entry.Description = *u.Description
	}
	if u.URI != nil {
		entry.URI = *u.URI
	}
	if u.ThumbnailURI != nil {
		entry.ThumbnailURI = *u.ThumbnailURI
	}
	if u.Duration != nil {
		entry.Duration = *u.Duration
	}
}

// sortEntries keeps the view ordered newest first, with the id as a
// deterministic tie-break for equal timestamps
func sortEntries(entries []model.VideoEntry) {
	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].CreatedAt.Equal(entries[j].CreatedAt) {
			return entries[i].CreatedAt.After(entries[j].CreatedAt)
		}
		return entries[i].ID < entries[j].ID
	})
}
