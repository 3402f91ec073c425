package errors

import (
	stderrors "errors"
	"fmt"
)

// AppError is an application-specific error type
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// creates a new AppError
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// wraps an error with a code and message
func Wrap(err error, code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// CodeOf returns the code of the outermost AppError in err's chain,
// or CodeInternal when err is not an AppError.
func CodeOf(err error) string {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeInternal
}

// HasCode reports whether err carries the given code.
func HasCode(err error, code string) bool {
	return err != nil && CodeOf(err) == code
}

// Error code constants
const (
	CodeStorageInit       = "STORAGE_INIT_ERROR"       // connection/schema failure, fatal to the session
	CodeStorageRead       = "STORAGE_READ_ERROR"       // read I/O failure, recoverable
	CodeStorageWrite      = "STORAGE_WRITE_ERROR"      // write I/O failure, mutation must not be assumed applied
	CodeStorageConstraint = "STORAGE_CONSTRAINT_ERROR" // duplicate id, indicates an id-generation defect
	CodeNotFound          = "NOT_FOUND"
	CodeInvalidArg        = "INVALID_ARGUMENT"
	CodeExternal          = "EXTERNAL_ERROR" // ffmpeg or other collaborator failure
	CodeInternal          = "INTERNAL_ERROR"
)
