package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	apperrors "github.com/sfujino/vidiary/internal/errors"
	"github.com/sfujino/vidiary/internal/model"
)

// Pool interface for abstracting pgx connection pool
type Pool interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
	Close()
}

// updatableColumns lists the columns a partial update may touch, in the
// order the SET clause is built. id and createdAt are immutable.
var updatableColumns = []string{"name", "description", "uri", "thumbnailUri", "duration"}

// entryRepository implements EntryRepository using PostgreSQL
type entryRepository struct {
	pool Pool
}

// NewEntryRepository creates a new instance of EntryRepository
func NewEntryRepository(pool Pool) EntryRepository {
	return &entryRepository{
		pool: pool,
	}
}

// Insert creates a new video record
func (r *entryRepository) Insert(ctx context.Context, record *model.VideoRecord) error {
	sql := `INSERT INTO videos (id, name, description, uri, "thumbnailUri", "createdAt", duration) VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.pool.Exec(ctx, sql,
		record.ID, record.Name, record.Description, record.URI,
		record.ThumbnailURI, record.CreatedAt, record.Duration)
	if err != nil {
		return handlePostgreSQLError(err, apperrors.CodeStorageWrite, "failed to insert video record")
	}
	return nil
}

// GetByID retrieves a video record by its ID
func (r *entryRepository) GetByID(ctx context.Context, id string) (*model.VideoRecord, error) {
	sql := `SELECT id, name, description, uri, "thumbnailUri", "createdAt", duration FROM videos WHERE id = $1`
	row := r.pool.QueryRow(ctx, sql, id)

	var record model.VideoRecord
	err := row.Scan(&record.ID, &record.Name, &record.Description, &record.URI,
		&record.ThumbnailURI, &record.CreatedAt, &record.Duration)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, handlePostgreSQLError(err, apperrors.CodeStorageRead, "failed to get video record")
	}

	return &record, nil
}

// ListAll retrieves all video records ordered by createdAt descending
func (r *entryRepository) ListAll(ctx context.Context) ([]*model.VideoRecord, error) {
	sql := `SELECT id, name, description, uri, "thumbnailUri", "createdAt", duration FROM videos ORDER BY "createdAt" DESC`
	rows, err := r.pool.Query(ctx, sql)
	if err != nil {
		return nil, handlePostgreSQLError(err, apperrors.CodeStorageRead, "failed to list video records")
	}
	defer rows.Close()

	records := []*model.VideoRecord{}
	for rows.Next() {
		var record model.VideoRecord
		err := rows.Scan(&record.ID, &record.Name, &record.Description, &record.URI,
			&record.ThumbnailURI, &record.CreatedAt, &record.Duration)
		if err != nil {
			return nil, handlePostgreSQLError(err, apperrors.CodeStorageRead, "failed to scan video row")
		}
		records = append(records, &record)
	}

	if err := rows.Err(); err != nil {
		return nil, handlePostgreSQLError(err, apperrors.CodeStorageRead, "failed to iterate video rows")
	}

	return records, nil
}

// Update applies a partial update to the row matching id
func (r *entryRepository) Update(ctx context.Context, id string, fields map[string]any) (int64, error) {
	setClauses := make([]string, 0, len(updatableColumns))
	args := []any{id}

	for _, col := range updatableColumns {
		value, ok := fields[col]
		if !ok {
			continue
		}
		args = append(args, value)
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", quoteColumn(col), len(args)))
	}

	// Nothing recognizable to update; mirrors the no-op contract
	if len(setClauses) == 0 {
		return 0, nil
	}

	sql := fmt.Sprintf("UPDATE videos SET %s WHERE id = $1", strings.Join(setClauses, ", "))
	tag, err := r.pool.Exec(ctx, sql, args...)
	if err != nil {
		return 0, handlePostgreSQLError(err, apperrors.CodeStorageWrite, "failed to update video record")
	}
	return tag.RowsAffected(), nil
}

// Delete removes the row matching id
func (r *entryRepository) Delete(ctx context.Context, id string) (int64, error) {
	sql := "DELETE FROM videos WHERE id = $1"
	tag, err := r.pool.Exec(ctx, sql, id)
	if err != nil {
		return 0, handlePostgreSQLError(err, apperrors.CodeStorageWrite, "failed to delete video record")
	}
	return tag.RowsAffected(), nil
}

// quoteColumn preserves the camelCase column names of the videos table,
// which PostgreSQL would otherwise fold to lowercase.
func quoteColumn(col string) string {
	if strings.ToLower(col) != col {
		return `"` + col + `"`
	}
	return col
}
