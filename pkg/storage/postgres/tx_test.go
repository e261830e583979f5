package postgres_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"sitecontact/pkg/storage"
	"sitecontact/pkg/storage/postgres"

	"github.com/stretchr/testify/require"
)

// countByName counts stored messages with the given sender name.
func countByName(t *testing.T, db *sql.DB, name string) int {
	t.Helper()
	row := db.QueryRowContext(context.Background(), `SELECT COUNT(*) FROM contact_messages WHERE name = $1`, name)
	var c int
	require.NoError(t, row.Scan(&c))

	return c
}

func TestPgSQL_Begin_SuccessAndAlreadyInTx(t *testing.T) {
	pg, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	txStorage, err := pg.Begin(ctx)
	require.NoError(t, err)
	require.NotNil(t, txStorage)

	// the tx handle wraps a *sql.Tx
	inner, ok := txStorage.(*postgres.PgSQL)
	require.True(t, ok)
	_, isTx := inner.DB.(*sql.Tx)
	require.True(t, isTx)

	_, err = inner.Begin(ctx)
	require.ErrorIs(t, err, storage.ErrAlreadyInTx)

	require.NoError(t, inner.Rollback())
}

func TestPgSQL_Commit_SuccessAndNotInTx(t *testing.T) {
	pg, cleanup := setupTestDB(t)
	defer cleanup()

	db := pg.DB.(*sql.DB)
	ctx := context.Background()

	require.ErrorIs(t, pg.Commit(), storage.ErrNotInTx)

	txStorage, err := pg.Begin(ctx)
	require.NoError(t, err)

	msg := sampleMessage(42)
	_, err = txStorage.StoreMessage(ctx, msg)
	require.NoError(t, err)
	// not visible outside the tx yet
	require.Equal(t, 0, countByName(t, db, msg.Name))

	require.NoError(t, txStorage.Commit())
	require.Equal(t, 1, countByName(t, db, msg.Name))
}

func TestPgSQL_Rollback_SuccessAndNotInTx(t *testing.T) {
	pg, cleanup := setupTestDB(t)
	defer cleanup()

	db := pg.DB.(*sql.DB)
	ctx := context.Background()

	require.ErrorIs(t, pg.Rollback(), storage.ErrNotInTx)

	txStorage, err := pg.Begin(ctx)
	require.NoError(t, err)

	msg := sampleMessage(99)
	_, err = txStorage.StoreMessage(ctx, msg)
	require.NoError(t, err)

	require.NoError(t, txStorage.Rollback())
	require.Equal(t, 0, countByName(t, db, msg.Name))
}

func TestPgSQL_WithTx_CommitAndRollback(t *testing.T) {
	pg, cleanup := setupTestDB(t)
	defer cleanup()

	db := pg.DB.(*sql.DB)
	ctx := context.Background()

	committed := sampleMessage(7)
	err := pg.WithTx(ctx, func(s storage.AllStorage) error {
		_, e := s.StoreMessage(ctx, committed)

		return e //nolint: wrapcheck
	})
	require.NoError(t, err)
	require.Equal(t, 1, countByName(t, db, committed.Name))

	boom := errors.New("boom")
	rolledBack := sampleMessage(9)
	err = pg.WithTx(ctx, func(s storage.AllStorage) error {
		_, _ = s.StoreMessage(ctx, rolledBack)

		return boom
	})
	require.ErrorIs(t, err, boom)
	require.Equal(t, 0, countByName(t, db, rolledBack.Name))
}
