package config

import (
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	apperrors "github.com/sfujino/vidiary/internal/errors"
	"github.com/sfujino/vidiary/migrations"
)

// MigrateUp applies the embedded schema migrations. Idempotent: an already
// current schema is not an error.
func MigrateUp(databaseURL string) error {
	source, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return apperrors.Wrap(err, apperrors.CodeStorageInit, "failed to load embedded migrations")
	}

	m, err := migrate.NewWithSourceInstance("iofs", source, databaseURL)
	if err != nil {
		return apperrors.Wrap(err, apperrors.CodeStorageInit, "failed to create migrate instance")
	}
	defer m.Close()

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return apperrors.Wrap(err, apperrors.CodeStorageInit, "failed to run migrations")
	}

	return nil
}
