package state

import (
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Migrate runs all pending database migrations.
func (s *SQLiteStore) Migrate() error {
	if err := s.checkOpen(); err != nil {
		return err
	}
	if err := MigrateWithDB(s.db); err != nil {
		return err
	}
	s.logger.Debug("state database migrated", "path", s.path)
	return nil
}

// MigrateWithDB runs migrations using a raw database connection.
func MigrateWithDB(db *sql.DB) error {
	goose.SetBaseFS(migrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect("sqlite"); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}
	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// MigrationVersion returns the current migration version.
func (s *SQLiteStore) MigrationVersion() (int64, error) {
	if err := s.checkOpen(); err != nil {
		return 0, err
	}
	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("sqlite"); err != nil {
		return 0, fmt.Errorf("failed to set dialect: %w", err)
	}
	return goose.GetDBVersion(s.db)
}
