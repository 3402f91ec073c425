package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVideoEntry_RecordRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		entry VideoEntry
	}{
		{
			name: "full entry",
			entry: VideoEntry{
				ID:           "4f57c9a1-0b2d-4a7e-9a1f-3e8d2c6b5a41",
				Name:         "Morning walk",
				Description:  "First try with the new camera",
				URI:          "file:///library/videos/a.mp4",
				ThumbnailURI: "file:///library/thumbnails/a.jpg",
				CreatedAt:    time.Date(2025, 3, 14, 9, 26, 53, 589000000, time.UTC),
				Duration:     5.0,
			},
		},
		{
			name: "empty optional fields",
			entry: VideoEntry{
				ID:        "e1",
				Name:      "Untitled",
				URI:       "file:///library/videos/b.mp4",
				CreatedAt: time.Date(2024, 12, 31, 23, 59, 59, 999000000, time.UTC),
				Duration:  5.0,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record := tt.entry.Record()
			back, err := record.Entry()
			require.NoError(t, err)
			assert.Equal(t, tt.entry, back)
		})
	}
}

func TestVideoRecord_EntryRoundTrip(t *testing.T) {
	record := VideoRecord{
		ID:           "e2",
		Name:         "Evening run",
		Description:  "",
		URI:          "file:///library/videos/c.mp4",
		ThumbnailURI: "file:///library/thumbnails/c.jpg",
		CreatedAt:    "2025-06-01T18:30:00.250Z",
		Duration:     5.0,
	}

	entry, err := record.Entry()
	require.NoError(t, err)
	assert.Equal(t, record, entry.Record())
}

func TestVideoRecord_Entry_InvalidCreatedAt(t *testing.T) {
	record := VideoRecord{
		ID:        "e3",
		Name:      "Broken",
		URI:       "file:///x.mp4",
		CreatedAt: "yesterday",
	}

	_, err := record.Entry()
	assert.Error(t, err)
}

func TestVideoEntry_Record_TruncatesSubMillisecond(t *testing.T) {
	entry := VideoEntry{
		ID:        "e4",
		Name:      "Precise",
		URI:       "file:///x.mp4",
		CreatedAt: time.Date(2025, 1, 2, 3, 4, 5, 123456789, time.UTC),
	}

	record := entry.Record()
	assert.Equal(t, "2025-01-02T03:04:05.123Z", record.CreatedAt)
}

func TestCreatedAtLayout_SortsLexicographically(t *testing.T) {
	earlier := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	later := earlier.Add(time.Millisecond)

	a := VideoEntry{CreatedAt: earlier}.Record().CreatedAt
	b := VideoEntry{CreatedAt: later}.Record().CreatedAt
	assert.Less(t, a, b)
}

func TestVideoEntry_Validate(t *testing.T) {
	tests := []struct {
		name    string
		entry   VideoEntry
		wantErr bool
	}{
		{
			name:    "valid entry",
			entry:   VideoEntry{ID: "id1", Name: "A name", URI: "file:///a.mp4"},
			wantErr: false,
		},
		{
			name:    "missing id",
			entry:   VideoEntry{Name: "A name", URI: "file:///a.mp4"},
			wantErr: true,
		},
		{
			name:    "empty name",
			entry:   VideoEntry{ID: "id1", Name: "", URI: "file:///a.mp4"},
			wantErr: true,
		},
		{
			name:    "blank name",
			entry:   VideoEntry{ID: "id1", Name: "   ", URI: "file:///a.mp4"},
			wantErr: true,
		},
		{
			name:    "missing uri",
			entry:   VideoEntry{ID: "id1", Name: "A name"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.entry.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
