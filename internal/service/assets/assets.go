// Package assets manages the files referenced by catalog entries: importing
// source media into the library and removing assets after a delete.
package assets

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/sfujino/vidiary/internal/errors"
)

// Store is the filesystem collaborator for entry assets.
type Store interface {
	// Import copies a source file into the library's imports directory and
	// returns the new path. The original is left in place.
	Import(ctx context.Context, sourcePath string) (string, error)

	// Remove deletes an asset file. A missing file is not an error.
	Remove(path string) error
}

type store struct {
	libraryDir string
	logger     *slog.Logger
}

// NewStore creates an asset Store rooted at libraryDir.
func NewStore(libraryDir string, logger *slog.Logger) Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &store{libraryDir: libraryDir, logger: logger}
}

func (s *store) Import(ctx context.Context, sourcePath string) (string, error) {
	if sourcePath == "" {
		return "", errors.New(errors.CodeInvalidArg, "source path is required")
	}

	src, err := os.Open(sourcePath)
	if err != nil {
		return "", errors.Wrap(err, errors.CodeInvalidArg, "failed to open source file")
	}
	defer src.Close()

	importsDir := filepath.Join(s.libraryDir, "imports")
	if err := os.MkdirAll(importsDir, 0755); err != nil {
		return "", errors.Wrap(err, errors.CodeInternal, "failed to create imports directory")
	}

	destPath := filepath.Join(importsDir, uuid.NewString()+filepath.Ext(sourcePath))

	// Write to a temp name first so a partial copy never looks importable
	tmp, err := os.CreateTemp(importsDir, ".import-*")
	if err != nil {
		return "", errors.Wrap(err, errors.CodeInternal, "failed to create import file")
	}
	tmpPath := tmp.Name()

	if _, err := io.Copy(tmp, src); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return "", errors.Wrap(err, errors.CodeInternal, "failed to copy source file")
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return "", errors.Wrap(err, errors.CodeInternal, "failed to finish import copy")
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		os.Remove(tmpPath)
		return "", errors.Wrap(err, errors.CodeInternal, "failed to place imported file")
	}

	return destPath, nil
}

func (s *store) Remove(path string) error {
	if path == "" {
		return nil
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, errors.CodeInternal, "failed to remove asset")
	}
	return nil
}

// CleanupAsync removes an entry's asset files in the background. Failures
// are logged, never propagated: the logical delete has already succeeded.
// The returned channel closes when cleanup finishes, for callers that are
// about to exit.
func CleanupAsync(s Store, logger *slog.Logger, paths ...string) <-chan struct{} {
	if logger == nil {
		logger = slog.Default()
	}
	done := make(chan struct{})
	go func() {
		defer close(done)
		for _, path := range paths {
			if path == "" {
				continue
			}
			if err := s.Remove(path); err != nil {
				logger.Warn("asset cleanup failed", "path", path, "error", err)
			}
		}
	}()
	return done
}
