package media

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"

	"github.com/sfujino/vidiary/internal/errors"
	"github.com/sfujino/vidiary/internal/service/common"
)

// ffmpegProcessor implements Processor by shelling out to ffmpeg/ffprobe
type ffmpegProcessor struct {
	cmdRunner  common.CmdRunner
	libraryDir string
	ids        func() string
}

// NewFFmpegProcessor creates a Processor writing clips and thumbnails under
// libraryDir (videos/ and thumbnails/ subdirectories)
func NewFFmpegProcessor(libraryDir string) Processor {
	return NewFFmpegProcessorWithCmdRunner(common.NewCmdRunner(), libraryDir)
}

// NewFFmpegProcessorWithCmdRunner creates a Processor with a custom
// CmdRunner (for testing)
func NewFFmpegProcessorWithCmdRunner(cmdRunner common.CmdRunner, libraryDir string) Processor {
	return &ffmpegProcessor{
		cmdRunner:  cmdRunner,
		libraryDir: libraryDir,
		ids:        uuid.NewString,
	}
}

// Crop cuts a fixed-length segment out of the source video
func (p *ffmpegProcessor) Crop(ctx context.Context, sourceURI string, startSeconds float64) (*ProcessedClip, error) {
	if sourceURI == "" {
		return nil, errors.New(errors.CodeInvalidArg, "source video is required")
	}
	if startSeconds < 0 {
		return nil, errors.New(errors.CodeInvalidArg, "start offset must not be negative")
	}

	videosDir := filepath.Join(p.libraryDir, "videos")
	if err := os.MkdirAll(videosDir, 0755); err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "failed to create videos directory")
	}

	outputPath := filepath.Join(videosDir, p.ids()+".mp4")

	args := []string{
		"-ss", formatSeconds(startSeconds),
		"-i", sourceURI,
		"-t", formatSeconds(ClipSeconds),
		"-c:v", "mpeg4",
		"-c:a", "aac",
		"-b:a", "128k",
		"-y",
		outputPath,
	}

	if out, err := p.cmdRunner.Run(ctx, "ffmpeg", args...); err != nil {
		return nil, errors.Wrap(err, errors.CodeExternal, "ffmpeg crop failed: "+string(out))
	}

	// Thumbnail is taken from the middle of the produced clip
	thumbnailURI, err := p.Thumbnail(ctx, outputPath, ClipSeconds/2)
	if err != nil {
		// The clip without its thumbnail is unusable; remove it
		os.Remove(outputPath)
		return nil, err
	}

	return &ProcessedClip{
		URI:          outputPath,
		ThumbnailURI: thumbnailURI,
		Duration:     ClipSeconds,
	}, nil
}

// Thumbnail extracts a single frame as a JPEG
func (p *ffmpegProcessor) Thumbnail(ctx context.Context, videoURI string, atSeconds float64) (string, error) {
	if videoURI == "" {
		return "", errors.New(errors.CodeInvalidArg, "video path is required")
	}

	thumbnailsDir := filepath.Join(p.libraryDir, "thumbnails")
	if err := os.MkdirAll(thumbnailsDir, 0755); err != nil {
		return "", errors.Wrap(err, errors.CodeInternal, "failed to create thumbnails directory")
	}

	thumbnailPath := filepath.Join(thumbnailsDir, p.ids()+".jpg")

	args := []string{
		"-ss", formatSeconds(atSeconds),
		"-i", videoURI,
		"-vframes", "1",
		"-q:v", "2",
		"-y",
		thumbnailPath,
	}

	if out, err := p.cmdRunner.Run(ctx, "ffmpeg", args...); err != nil {
		return "", errors.Wrap(err, errors.CodeExternal, "ffmpeg thumbnail generation failed: "+string(out))
	}

	return thumbnailPath, nil
}

// ffprobeFormat represents the ffprobe JSON output structure
type ffprobeFormat struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

// ProbeDuration returns the duration of a video in seconds using ffprobe
func (p *ffmpegProcessor) ProbeDuration(ctx context.Context, videoURI string) (float64, error) {
	if videoURI == "" {
		return 0, errors.New(errors.CodeInvalidArg, "video path is required")
	}

	args := []string{
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		videoURI,
	}

	out, err := p.cmdRunner.Run(ctx, "ffprobe", args...)
	if err != nil {
		return 0, errors.Wrap(err, errors.CodeExternal, "ffprobe failed")
	}

	var info ffprobeFormat
	if err := json.Unmarshal(out, &info); err != nil {
		return 0, errors.Wrap(err, errors.CodeInternal, "failed to parse ffprobe output")
	}

	duration, err := strconv.ParseFloat(info.Format.Duration, 64)
	if err != nil {
		return 0, errors.Wrap(err, errors.CodeInternal, "failed to parse video duration")
	}

	return duration, nil
}

func formatSeconds(s float64) string {
	return strconv.FormatFloat(s, 'f', -1, 64)
}
