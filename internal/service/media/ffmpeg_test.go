package media

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// mockCmdRunner is a testify mock of common.CmdRunner
type mockCmdRunner struct {
	mock.Mock
}

func (m *mockCmdRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	called := m.Called(ctx, name, args)
	if out := called.Get(0); out != nil {
		return out.([]byte), called.Error(1)
	}
	return nil, called.Error(1)
}

func hasPrefixArgs(prefix ...string) func(args []string) bool {
	return func(args []string) bool {
		if len(args) < len(prefix) {
			return false
		}
		for i, want := range prefix {
			if args[i] != want {
				return false
			}
		}
		return true
	}
}

func TestFFmpegProcessor_Crop(t *testing.T) {
	runner := new(mockCmdRunner)
	libraryDir := t.TempDir()

	// Crop command: fixed 5s segment starting at the requested offset
	runner.On("Run", mock.Anything, "ffmpeg", mock.MatchedBy(hasPrefixArgs(
		"-ss", "2.5", "-i", "/media/source.mp4", "-t", "5",
		"-c:v", "mpeg4", "-c:a", "aac", "-b:a", "128k",
	))).Return([]byte(""), nil).Once()

	// Thumbnail from the middle of the clip
	runner.On("Run", mock.Anything, "ffmpeg", mock.MatchedBy(hasPrefixArgs(
		"-ss", "2.5",
	))).Return([]byte(""), nil).Once()

	processor := NewFFmpegProcessorWithCmdRunner(runner, libraryDir)
	clip, err := processor.Crop(context.Background(), "/media/source.mp4", 2.5)
	require.NoError(t, err)
	require.NotNil(t, clip)

	assert.Equal(t, ClipSeconds, clip.Duration)
	assert.Contains(t, clip.URI, libraryDir)
	assert.Contains(t, clip.URI, ".mp4")
	assert.Contains(t, clip.ThumbnailURI, ".jpg")

	runner.AssertExpectations(t)
}

func TestFFmpegProcessor_Crop_FFmpegFailure(t *testing.T) {
	runner := new(mockCmdRunner)
	runner.On("Run", mock.Anything, "ffmpeg", mock.Anything).
		Return([]byte("moov atom not found"), assert.AnError)

	processor := NewFFmpegProcessorWithCmdRunner(runner, t.TempDir())
	clip, err := processor.Crop(context.Background(), "/media/broken.mp4", 0)
	require.Error(t, err)
	assert.Nil(t, clip)
	assert.Contains(t, err.Error(), "ffmpeg crop failed")
}

func TestFFmpegProcessor_Crop_InvalidInput(t *testing.T) {
	processor := NewFFmpegProcessorWithCmdRunner(new(mockCmdRunner), t.TempDir())

	_, err := processor.Crop(context.Background(), "", 0)
	assert.Error(t, err)

	_, err = processor.Crop(context.Background(), "/media/a.mp4", -1)
	assert.Error(t, err)
}

func TestFFmpegProcessor_Thumbnail(t *testing.T) {
	runner := new(mockCmdRunner)
	runner.On("Run", mock.Anything, "ffmpeg", mock.MatchedBy(hasPrefixArgs(
		"-ss", "1.25", "-i", "/media/clip.mp4", "-vframes", "1", "-q:v", "2",
	))).Return([]byte(""), nil)

	processor := NewFFmpegProcessorWithCmdRunner(runner, t.TempDir())
	path, err := processor.Thumbnail(context.Background(), "/media/clip.mp4", 1.25)
	require.NoError(t, err)
	assert.Contains(t, path, "thumbnails")
	assert.Contains(t, path, ".jpg")

	runner.AssertExpectations(t)
}

func TestFFmpegProcessor_ProbeDuration(t *testing.T) {
	tests := []struct {
		name    string
		output  []byte
		runErr  error
		want    float64
		wantErr bool
	}{
		{
			name:   "valid ffprobe output",
			output: []byte(`{"format": {"duration": "12.480000"}}`),
			want:   12.48,
		},
		{
			name:    "ffprobe failure",
			output:  []byte(""),
			runErr:  assert.AnError,
			wantErr: true,
		},
		{
			name:    "malformed json",
			output:  []byte("not json"),
			wantErr: true,
		},
		{
			name:    "missing duration",
			output:  []byte(`{"format": {}}`),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := new(mockCmdRunner)
			runner.On("Run", mock.Anything, "ffprobe", mock.Anything).
				Return(tt.output, tt.runErr)

			processor := NewFFmpegProcessorWithCmdRunner(runner, t.TempDir())
			got, err := processor.ProbeDuration(context.Background(), "/media/clip.mp4")

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
