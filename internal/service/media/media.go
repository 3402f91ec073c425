package media

import "context"

// ClipSeconds is the fixed length of every diary clip.
const ClipSeconds = 5.0

// ProcessedClip is the result of cropping a source video: the clip asset,
// its generated thumbnail, and the clip duration in seconds.
type ProcessedClip struct {
	URI          string
	ThumbnailURI string
	Duration     float64
}

// Processor is the media cropping/thumbnailing collaborator. When Crop
// fails, no clip assets are usable and no entry may be constructed.
type Processor interface {
	// Crop cuts a ClipSeconds-long segment starting at startSeconds out of
	// the source video and generates a mid-clip thumbnail for it.
	Crop(ctx context.Context, sourceURI string, startSeconds float64) (*ProcessedClip, error)

	// Thumbnail extracts a single frame from videoURI at the given offset
	// and returns the path of the written image.
	Thumbnail(ctx context.Context, videoURI string, atSeconds float64) (string, error)

	// ProbeDuration returns the duration of a video in seconds.
	ProbeDuration(ctx context.Context, videoURI string) (float64, error)
}
