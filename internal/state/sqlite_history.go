package state

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// RecordHistory appends an executed statement to the history. ID and
// ExecutedAt are filled in when empty.
func (s *SQLiteStore) RecordHistory(ctx context.Context, entry HistoryEntry) error {
	if err := s.checkOpen(); err != nil {
		return err
	}
	if entry.ID == "" {
		entry.ID = generateID()
	}
	if entry.ExecutedAt.IsZero() {
		entry.ExecutedAt = time.Now().UTC()
	}

	var rowsAffected sql.NullInt64
	if entry.RowsAffected != nil {
		rowsAffected = sql.NullInt64{Int64: int64(*entry.RowsAffected), Valid: true}
	}
	var errMsg sql.NullString
	if entry.Error != "" {
		errMsg = sql.NullString{String: entry.Error, Valid: true}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO history (id, session_id, sql, success, rows_affected, error, duration_ms, executed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, entry.ID, entry.SessionID, entry.SQL, entry.Success, rowsAffected, errMsg,
		entry.Duration.Milliseconds(), entry.ExecutedAt)
	if err != nil {
		return fmt.Errorf("record history: %w", err)
	}
	return nil
}

// ListHistory returns the most recent entries, newest first. A limit <= 0
// returns everything.
func (s *SQLiteStore) ListHistory(ctx context.Context, limit int) ([]HistoryEntry, error) {
	if err := s.checkOpen(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = -1
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, session_id, sql, success, rows_affected, error, duration_ms, executed_at
		FROM history
		ORDER BY executed_at DESC, rowid DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []HistoryEntry
	for rows.Next() {
		var (
			e            HistoryEntry
			rowsAffected sql.NullInt64
			errMsg       sql.NullString
			durationMs   int64
		)
		if err := rows.Scan(&e.ID, &e.SessionID, &e.SQL, &e.Success, &rowsAffected, &errMsg,
			&durationMs, &e.ExecutedAt); err != nil {
			return nil, fmt.Errorf("scan history: %w", err)
		}
		if rowsAffected.Valid {
			n := int(rowsAffected.Int64)
			e.RowsAffected = &n
		}
		e.Error = errMsg.String
		e.Duration = time.Duration(durationMs) * time.Millisecond
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history: %w", err)
	}
	return entries, nil
}
