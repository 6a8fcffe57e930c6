package state

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver (pure Go)
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db     *sql.DB
	path   string
	logger *slog.Logger
}

var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore creates a new SQLite state store instance.
// If logger is nil, a discard logger is used.
func NewSQLiteStore(logger *slog.Logger) *SQLiteStore {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &SQLiteStore{logger: logger}
}

// NewWithDB wraps an already open database. Migrate is not run.
func NewWithDB(db *sql.DB, logger *slog.Logger) *SQLiteStore {
	s := NewSQLiteStore(logger)
	s.db = db
	return s
}

// Open opens a connection to the SQLite database.
// Use ":memory:" for an in-memory database.
func (s *SQLiteStore) Open(path string) error {
	dsn := ":memory:"
	if path != ":memory:" {
		dsn = "file:" + path + "?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return fmt.Errorf("failed to open sqlite database: %w", err)
	}
	// one connection: SQLite has a single writer and :memory: is per connection
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping sqlite database: %w", err)
	}

	s.db = db
	s.path = path
	s.logger.Debug("state database opened", "path", path)
	return nil
}

// Close closes the SQLite database connection.
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Path returns the database path passed to Open.
func (s *SQLiteStore) Path() string {
	return s.path
}

// generateID creates a new UUID.
func generateID() string {
	return uuid.New().String()
}

func (s *SQLiteStore) checkOpen() error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}
	return nil
}
