package postgres_test

import (
	"context"
	"fmt"
	"sitecontact/pkg/domain"
	"sitecontact/pkg/storage"
	"testing"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func sampleMessage(i int) domain.ContactMessage {
	return domain.ContactMessage{
		Name:    fmt.Sprintf("Ann %d", i),
		Email:   "a@x.com",
		Subject: "Hi",
		Message: "Test",
	}
}

func TestPgSQL_StoreMessage(t *testing.T) {
	pgSQL, cleanup := setupTestDB(t)
	t.Cleanup(cleanup)
	ctx := context.Background()

	stored, err := pgSQL.StoreMessage(ctx, sampleMessage(1))
	require.NoError(t, err)
	require.NotEqual(t, domain.MessageID(uuid.Nil), stored.ID, "id is generated")
	require.False(t, stored.CreatedAt.IsZero(), "created_at is defaulted")
	require.True(t, stored.NotifiedAt.IsZero())
	require.Equal(t, sampleMessage(1).Request(), stored.Request())

	got, err := pgSQL.MessageByID(ctx, stored.ID)
	require.NoError(t, err)
	require.Equal(t, stored.ID, got.ID)
	require.Equal(t, stored.Request(), got.Request())

	missing, err := pgSQL.MessageByID(ctx, domain.MessageID(uuid.New()))
	require.NoError(t, err)
	require.Nil(t, missing)
}

func TestPgSQL_Messages_Pagination(t *testing.T) {
	pgSQL, cleanup := setupTestDB(t)
	t.Cleanup(cleanup)
	ctx := context.Background()

	for i := range 5 {
		_, err := pgSQL.StoreMessage(ctx, sampleMessage(i))
		require.NoError(t, err)
		// distinct created_at values keep the cursor strict
		time.Sleep(5 * time.Millisecond)
	}

	first, err := pgSQL.Messages(ctx, storage.MessageCursor{}, 2)
	require.NoError(t, err)
	require.Len(t, first.Messages, 2)
	require.NotNil(t, first.NextCursor)
	require.Equal(t, "Ann 4", first.Messages[0].Name, "newest first")
	require.Equal(t, "Ann 3", first.Messages[1].Name)

	second, err := pgSQL.Messages(ctx, *first.NextCursor, 2)
	require.NoError(t, err)
	require.Len(t, second.Messages, 2)
	require.Equal(t, "Ann 2", second.Messages[0].Name)

	last, err := pgSQL.Messages(ctx, *second.NextCursor, 2)
	require.NoError(t, err)
	require.Len(t, last.Messages, 1)
	require.Nil(t, last.NextCursor)
	require.Equal(t, "Ann 0", last.Messages[0].Name)
}

func TestPgSQL_Messages_PaginationWithEqualCreatedAt(t *testing.T) {
	pgSQL, cleanup := setupTestDB(t)
	t.Cleanup(cleanup)
	ctx := context.Background()

	// concurrent submits can share a created_at; the page boundary falls
	// between rows with the same timestamp
	createdAt := time.Date(2024, 5, 1, 10, 0, 0, 123456000, time.UTC)
	for i := range 3 {
		_, err := pgSQL.Builder.Insert("contact_messages").Rows(goqu.Record{
			"name":       fmt.Sprintf("Ann %d", i),
			"email":      "a@x.com",
			"subject":    "Hi",
			"message":    "Test",
			"created_at": createdAt,
		}).Executor().ExecContext(ctx)
		require.NoError(t, err)
	}

	seen := map[domain.MessageID]int{}
	cursor := storage.MessageCursor{}
	for pages := 0; ; pages++ {
		require.Less(t, pages, 5, "pagination does not terminate")

		page, err := pgSQL.Messages(ctx, cursor, 1)
		require.NoError(t, err)
		for _, msg := range page.Messages {
			require.True(t, msg.CreatedAt.Equal(createdAt))
			seen[msg.ID]++
		}
		if page.NextCursor == nil {
			break
		}
		cursor = *page.NextCursor
	}

	require.Len(t, seen, 3, "every message is listed")
	for id, n := range seen {
		require.Equal(t, 1, n, "message %s listed once", id)
	}
}

func TestPgSQL_MarkNotified(t *testing.T) {
	pgSQL, cleanup := setupTestDB(t)
	t.Cleanup(cleanup)
	ctx := context.Background()

	stored, err := pgSQL.StoreMessage(ctx, sampleMessage(1))
	require.NoError(t, err)

	updated, err := pgSQL.MarkNotified(ctx, stored.ID)
	require.NoError(t, err)
	require.True(t, updated)

	updated, err = pgSQL.MarkNotified(ctx, stored.ID)
	require.NoError(t, err)
	require.False(t, updated, "already notified")

	got, err := pgSQL.MessageByID(ctx, stored.ID)
	require.NoError(t, err)
	require.False(t, got.NotifiedAt.IsZero())

	updated, err = pgSQL.MarkNotified(ctx, domain.MessageID(uuid.New()))
	require.NoError(t, err)
	require.False(t, updated)
}

func TestPgSQL_WithTx_RollbackDiscardsMessage(t *testing.T) {
	pgSQL, cleanup := setupTestDB(t)
	t.Cleanup(cleanup)
	ctx := context.Background()

	var id domain.MessageID
	err := pgSQL.WithTx(ctx, func(tx storage.AllStorage) error {
		stored, err := tx.StoreMessage(ctx, sampleMessage(1))
		require.NoError(t, err)
		id = stored.ID

		return fmt.Errorf("abort")
	})
	require.Error(t, err)

	got, err := pgSQL.MessageByID(ctx, id)
	require.NoError(t, err)
	require.Nil(t, got)
}
