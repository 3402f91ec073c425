package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	plain := New(CodeNotFound, "entry not found")
	assert.Equal(t, "NOT_FOUND: entry not found", plain.Error())

	wrapped := Wrap(stderrors.New("disk I/O"), CodeStorageWrite, "failed to insert")
	assert.Equal(t, "STORAGE_WRITE_ERROR: failed to insert (caused by: disk I/O)", wrapped.Error())
}

func TestAppError_Unwrap(t *testing.T) {
	cause := stderrors.New("root cause")
	wrapped := Wrap(cause, CodeStorageRead, "read failed")

	assert.ErrorIs(t, wrapped, cause)
	// Still unwraps through further wrapping
	outer := fmt.Errorf("outer: %w", wrapped)
	assert.ErrorIs(t, outer, cause)
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, CodeStorageInit, CodeOf(New(CodeStorageInit, "x")))
	assert.Equal(t, CodeInternal, CodeOf(stderrors.New("plain")))

	// Finds the AppError through wrapping
	wrapped := fmt.Errorf("context: %w", New(CodeStorageConstraint, "dup"))
	assert.Equal(t, CodeStorageConstraint, CodeOf(wrapped))
}

func TestHasCode(t *testing.T) {
	err := New(CodeStorageWrite, "x")
	assert.True(t, HasCode(err, CodeStorageWrite))
	assert.False(t, HasCode(err, CodeStorageRead))
	assert.False(t, HasCode(nil, CodeStorageWrite))
}
