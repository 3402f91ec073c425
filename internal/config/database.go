package config

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	apperrors "github.com/sfujino/vidiary/internal/errors"
)

// NewDatabasePool creates a new PostgreSQL connection pool
func NewDatabasePool(ctx context.Context, config *Config) (*pgxpool.Pool, error) {
	dbConfig, err := config.ParseDatabaseConfig()
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeStorageInit, "failed to parse database config")
	}

	// Create pgxpool config
	poolConfig, err := pgxpool.ParseConfig(dbConfig.ConnectionString())
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeStorageInit, "failed to parse database config")
	}

	// Configure connection pool settings
	poolConfig.MaxConns = dbConfig.MaxConns
	poolConfig.MinConns = dbConfig.MinConns
	poolConfig.MaxConnLifetime = dbConfig.MaxConnLifetime
	poolConfig.MaxConnIdleTime = dbConfig.MaxConnIdleTime

	// Create connection pool with timeout
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeStorageInit, "failed to create connection pool")
	}

	// Test the connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, apperrors.Wrap(err, apperrors.CodeStorageInit, "failed to ping database")
	}

	return pool, nil
}

// OpenStore initializes the durable store for a session: it ensures the
// schema exists, then opens the connection pool. Any failure here is fatal
// to the session; callers must not proceed to data operations.
func OpenStore(ctx context.Context, config *Config) (*pgxpool.Pool, error) {
	if err := MigrateUp(config.DatabaseURL); err != nil {
		return nil, err
	}
	pool, err := NewDatabasePool(ctx, config)
	if err != nil {
		return nil, err
	}
	return pool, nil
}

// CloseDatabasePool gracefully closes the database connection pool
func CloseDatabasePool(pool *pgxpool.Pool) {
	if pool != nil {
		pool.Close()
	}
}
