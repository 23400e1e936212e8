package storage

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// MigrationResult reports the schema version before and after Migrate.
type MigrationResult struct {
	PreVersion  uint
	PostVersion uint
}

// Migrate applies every pending migration found at sourceURL, for example
// "file://migrations".
func Migrate(db *sql.DB, sourceURL string) (MigrationResult, error) {
	var result MigrationResult

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return result, fmt.Errorf("postgres.WithInstance: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(sourceURL, "postgres", driver)
	if err != nil {
		return result, fmt.Errorf("migrate.NewWithDatabaseInstance: %w", err)
	}

	pre, _, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return result, fmt.Errorf("m.Version.preMigrationVersion: %w", err)
	}
	result.PreVersion = pre

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return result, fmt.Errorf("m.Up: %w", err)
	}

	post, _, err := m.Version()
	if err != nil {
		return result, fmt.Errorf("m.Version.postMigrationVersion: %w", err)
	}
	result.PostVersion = post
	return result, nil
}
