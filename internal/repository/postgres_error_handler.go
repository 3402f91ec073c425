package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	apperrors "github.com/sfujino/vidiary/internal/errors"
)

// handlePostgreSQLError converts PostgreSQL-specific errors to the storage
// error taxonomy. fallbackCode is the code for the operation class the
// caller was performing (read vs write); constraint and schema failures
// override it.
func handlePostgreSQLError(err error, fallbackCode, operation string) *apperrors.AppError {
	if err == nil {
		return nil
	}

	// Check if it's a PostgreSQL error
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		// Driver/network level failure: keep the operation's own code
		return apperrors.Wrap(err, fallbackCode, operation)
	}

	// Map PostgreSQL error codes to storage error codes
	switch pgErr.Code {
	case "23505": // UNIQUE_VIOLATION
		// Only the primary key is unique on videos; a duplicate id means
		// the identifier generator misbehaved
		return apperrors.Wrap(err, apperrors.CodeStorageConstraint, "video with this id already exists")

	case "23502": // NOT_NULL_VIOLATION
		return apperrors.Wrap(err, apperrors.CodeInvalidArg, "required field is missing")

	case "23514": // CHECK_VIOLATION
		return apperrors.Wrap(err, apperrors.CodeInvalidArg, "data violates check constraint")

	case "42P01": // UNDEFINED_TABLE
		return apperrors.Wrap(err, apperrors.CodeStorageInit, "database schema error: videos table not found")

	case "42703": // UNDEFINED_COLUMN
		return apperrors.Wrap(err, apperrors.CodeStorageInit, "database schema error: column not found")

	case "08000", "08003", "08006": // CONNECTION_EXCEPTION variants
		return apperrors.Wrap(err, fallbackCode, "database connection error")

	case "53300": // TOO_MANY_CONNECTIONS
		return apperrors.Wrap(err, fallbackCode, "database connection limit reached")

	default:
		// Unknown PostgreSQL error, keep the code for debugging
		message := operation + " (PostgreSQL code: " + pgErr.Code + ")"
		return apperrors.Wrap(err, fallbackCode, message)
	}
}
