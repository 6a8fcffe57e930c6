package state

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/minisql/internal/testutil"
	"github.com/leapstack-labs/minisql/pkg/core"
)

func setupTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store := NewSQLiteStore(testutil.NewTestLogger(t))
	require.NoError(t, store.Open(testutil.StatePath(t)))
	require.NoError(t, store.Migrate())
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func sampleSnapshot() core.Snapshot {
	return core.Snapshot{Tables: []core.TableSnapshot{{
		Name: "users",
		Schema: core.TableSchema{
			Name:    "users",
			Columns: []core.Column{{Name: "id", Type: "INT", Constraints: []string{"PRIMARY KEY"}}},
		},
		Data: []core.Row{{"id": int64(1)}},
	}}}
}

func TestSQLiteStore_OpenMigrate(t *testing.T) {
	store := NewSQLiteStore(nil)
	require.NoError(t, store.Open(":memory:"))
	defer store.Close()
	require.NoError(t, store.Migrate())

	for _, table := range []string{"snapshots", "history"} {
		rows, err := store.db.Query("SELECT 1 FROM " + table + " LIMIT 1")
		require.NoError(t, err, "table %s", table)
		_ = rows.Close()
	}

	version, err := store.MigrationVersion()
	require.NoError(t, err)
	assert.Equal(t, int64(1), version)

	// migrating twice is a no-op
	require.NoError(t, store.Migrate())
}

func TestSQLiteStore_NotOpened(t *testing.T) {
	store := NewSQLiteStore(nil)
	ctx := context.Background()
	assert.Error(t, store.Migrate())
	assert.Error(t, store.SaveSnapshot(ctx, "x", core.Snapshot{}))
	_, err := store.ListHistory(ctx, 10)
	assert.Error(t, err)
	assert.NoError(t, store.Close())
}

func TestSQLiteStore_SnapshotLifecycle(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveSnapshot(ctx, "base", sampleSnapshot()))

	snap, err := store.LoadSnapshot(ctx, "base")
	require.NoError(t, err)
	require.Len(t, snap.Tables, 1)
	assert.Equal(t, "users", snap.Tables[0].Name)
	assert.Equal(t, json.Number("1"), snap.Tables[0].Data[0]["id"])

	// saving under the same name replaces
	require.NoError(t, store.SaveSnapshot(ctx, "base", core.Snapshot{Tables: []core.TableSnapshot{}}))
	snap, err = store.LoadSnapshot(ctx, "base")
	require.NoError(t, err)
	assert.Empty(t, snap.Tables)

	require.NoError(t, store.SaveSnapshot(ctx, "other", sampleSnapshot()))
	infos, err := store.ListSnapshots(ctx)
	require.NoError(t, err)
	require.Len(t, infos, 2)
	names := []string{infos[0].Name, infos[1].Name}
	assert.ElementsMatch(t, []string{"base", "other"}, names)
	for _, info := range infos {
		assert.NotEmpty(t, info.ID)
		assert.Positive(t, info.Size)
		assert.False(t, info.CreatedAt.IsZero())
	}

	require.NoError(t, store.DeleteSnapshot(ctx, "base"))
	_, err = store.LoadSnapshot(ctx, "base")
	assert.True(t, errors.Is(err, ErrSnapshotNotFound))
	assert.True(t, errors.Is(store.DeleteSnapshot(ctx, "base"), ErrSnapshotNotFound))

	assert.Error(t, store.SaveSnapshot(ctx, "", sampleSnapshot()))
}

func TestSQLiteStore_History(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	one := 1

	entries := []HistoryEntry{
		{SessionID: "s1", SQL: "CREATE TABLE t (a INT)", Success: true, Duration: 3 * time.Millisecond, ExecutedAt: base},
		{SessionID: "s1", SQL: "INSERT INTO t (a) VALUES (1)", Success: true, RowsAffected: &one, ExecutedAt: base.Add(time.Second)},
		{SessionID: "s1", SQL: "SELECT * FROM nope", Error: "Table 'nope' does not exist", ExecutedAt: base.Add(2 * time.Second)},
	}
	for _, e := range entries {
		require.NoError(t, store.RecordHistory(ctx, e))
	}

	got, err := store.ListHistory(ctx, 0)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "SELECT * FROM nope", got[0].SQL)
	assert.False(t, got[0].Success)
	assert.Equal(t, "Table 'nope' does not exist", got[0].Error)
	assert.Nil(t, got[0].RowsAffected)

	require.NotNil(t, got[1].RowsAffected)
	assert.Equal(t, 1, *got[1].RowsAffected)
	assert.Equal(t, 3*time.Millisecond, got[2].Duration)
	assert.NotEmpty(t, got[2].ID)

	limited, err := store.ListHistory(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestSQLiteStore_DatabaseErrors(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	store := NewWithDB(db, testutil.NewTestLogger(t))
	ctx := context.Background()

	mock.ExpectExec("INSERT INTO snapshots").WillReturnError(errors.New("disk full"))
	err = store.SaveSnapshot(ctx, "base", sampleSnapshot())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "save snapshot base: disk full")

	mock.ExpectQuery("SELECT payload FROM snapshots").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"payload"}))
	_, err = store.LoadSnapshot(ctx, "missing")
	assert.True(t, errors.Is(err, ErrSnapshotNotFound))

	mock.ExpectQuery("SELECT payload FROM snapshots").
		WithArgs("corrupt").
		WillReturnRows(sqlmock.NewRows([]string{"payload"}).AddRow("{not json"))
	_, err = store.LoadSnapshot(ctx, "corrupt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode snapshot corrupt")

	mock.ExpectExec("INSERT INTO history").WillReturnError(errors.New("locked"))
	assert.Error(t, store.RecordHistory(ctx, HistoryEntry{SQL: "SELECT 1"}))

	mock.ExpectQuery("FROM history").WillReturnError(errors.New("locked"))
	_, err = store.ListHistory(ctx, 5)
	assert.Error(t, err)

	mock.ExpectExec("DELETE FROM snapshots").
		WithArgs("gone").
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.True(t, errors.Is(store.DeleteSnapshot(ctx, "gone"), ErrSnapshotNotFound))

	assert.NoError(t, mock.ExpectationsWereMet())
}
