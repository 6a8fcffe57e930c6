// Package state persists named store snapshots and statement history in a
// SQLite database.
package state

import (
	"context"
	"errors"
	"time"

	"github.com/leapstack-labs/minisql/pkg/core"
)

// ErrSnapshotNotFound is returned when no snapshot has the requested name.
var ErrSnapshotNotFound = errors.New("snapshot not found")

// Store is the persistence interface used by the CLI and server.
type Store interface {
	Open(path string) error
	Close() error
	Migrate() error

	SaveSnapshot(ctx context.Context, name string, snap core.Snapshot) error
	LoadSnapshot(ctx context.Context, name string) (core.Snapshot, error)
	ListSnapshots(ctx context.Context) ([]SnapshotInfo, error)
	DeleteSnapshot(ctx context.Context, name string) error

	RecordHistory(ctx context.Context, entry HistoryEntry) error
	ListHistory(ctx context.Context, limit int) ([]HistoryEntry, error)
}

// SnapshotInfo describes a stored snapshot without its payload.
type SnapshotInfo struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	Size      int       `json:"size"` // payload bytes
}

// HistoryEntry is one executed statement.
type HistoryEntry struct {
	ID           string        `json:"id"`
	SessionID    string        `json:"sessionId"`
	SQL          string        `json:"sql"`
	Success      bool          `json:"success"`
	RowsAffected *int          `json:"rowsAffected,omitempty"`
	Error        string        `json:"error,omitempty"`
	Duration     time.Duration `json:"duration"`
	ExecutedAt   time.Time     `json:"executedAt"`
}
