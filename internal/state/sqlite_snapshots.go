package state

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/leapstack-labs/minisql/pkg/core"
)

// SaveSnapshot stores snap under name, replacing any snapshot of that name.
func (s *SQLiteStore) SaveSnapshot(ctx context.Context, name string, snap core.Snapshot) error {
	if err := s.checkOpen(); err != nil {
		return err
	}
	if name == "" {
		return fmt.Errorf("snapshot name is required")
	}

	payload, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot %s: %w", name, err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO snapshots (id, name, created_at, payload)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			created_at = excluded.created_at,
			payload = excluded.payload
	`, generateID(), name, time.Now().UTC(), string(payload))
	if err != nil {
		return fmt.Errorf("save snapshot %s: %w", name, err)
	}

	s.logger.Debug("snapshot saved", "name", name, "tables", len(snap.Tables), "bytes", len(payload))
	return nil
}

// LoadSnapshot returns the snapshot stored under name.
// Numbers in row data are returned as json.Number.
func (s *SQLiteStore) LoadSnapshot(ctx context.Context, name string) (core.Snapshot, error) {
	if err := s.checkOpen(); err != nil {
		return core.Snapshot{}, err
	}

	var payload string
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM snapshots WHERE name = ?`, name).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Snapshot{}, fmt.Errorf("%w: %s", ErrSnapshotNotFound, name)
	}
	if err != nil {
		return core.Snapshot{}, fmt.Errorf("load snapshot %s: %w", name, err)
	}

	var snap core.Snapshot
	dec := json.NewDecoder(bytes.NewReader([]byte(payload)))
	dec.UseNumber()
	if err := dec.Decode(&snap); err != nil {
		return core.Snapshot{}, fmt.Errorf("decode snapshot %s: %w", name, err)
	}
	return snap, nil
}

// ListSnapshots returns all snapshots, newest first.
func (s *SQLiteStore) ListSnapshots(ctx context.Context) ([]SnapshotInfo, error) {
	if err := s.checkOpen(); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, created_at, length(payload)
		FROM snapshots
		ORDER BY created_at DESC, name
	`)
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var infos []SnapshotInfo
	for rows.Next() {
		var info SnapshotInfo
		if err := rows.Scan(&info.ID, &info.Name, &info.CreatedAt, &info.Size); err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		infos = append(infos, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate snapshots: %w", err)
	}
	return infos, nil
}

// DeleteSnapshot removes the snapshot stored under name.
func (s *SQLiteStore) DeleteSnapshot(ctx context.Context, name string) error {
	if err := s.checkOpen(); err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx, `DELETE FROM snapshots WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("delete snapshot %s: %w", name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete snapshot %s: %w", name, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrSnapshotNotFound, name)
	}

	s.logger.Debug("snapshot deleted", "name", name)
	return nil
}
