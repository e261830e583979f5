package postgres

import (
	"context"
	"fmt"
	"sitecontact/pkg/domain"
	"sitecontact/pkg/storage"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
)

const (
	messagesTable = "contact_messages"
)

// StoreMessage inserts a contact message; ID, created_at and notified_at are
// left to the database defaults.
func (p *PgSQL) StoreMessage(ctx context.Context, msg domain.ContactMessage) (*domain.ContactMessage, error) {
	var row PgContactMessage
	row.FromDomain(msg)

	var stored PgContactMessage
	if _, err := p.Builder.Insert(messagesTable).
		Rows(row).
		Returning(&PgContactMessage{}).
		Executor().ScanStructContext(ctx, &stored); err != nil {
		return nil, fmt.Errorf("could not store contact message into pg: %w", err)
	}

	return stored.ToDomain(), nil
}

// MessageByID returns a message by its ID, or nil when not found.
func (p *PgSQL) MessageByID(ctx context.Context, id domain.MessageID) (*domain.ContactMessage, error) {
	var row PgContactMessage
	found, err := p.Builder.From(messagesTable).
		Where(goqu.I("id").Eq(uuid.UUID(id))).
		Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not fetch contact message by id: %w", err)
	}
	if !found {
		return nil, nil
	}

	return row.ToDomain(), nil
}

// Messages returns a page of messages ordered by created_at DESC, id DESC.
// The row comparison keeps the cursor strict when created_at values collide.
func (p *PgSQL) Messages(ctx context.Context, cursor storage.MessageCursor, limit uint) (storage.Messages, error) {
	ds := p.Builder.From(messagesTable)
	if !cursor.IsZero() {
		ds = ds.Where(goqu.L("(created_at, id) < (?, ?)", cursor.CreatedAt, uuid.UUID(cursor.ID)))
	}

	// fetch one extra to determine if there is a next page
	var rows []PgContactMessage
	if err := ds.Order(goqu.I("created_at").Desc(), goqu.I("id").Desc()).
		Limit(limit + 1).
		Executor().ScanStructsContext(ctx, &rows); err != nil {
		return storage.Messages{}, fmt.Errorf("could not fetch contact messages from pg: %w", err)
	}

	var nextCursor *storage.MessageCursor
	if uint(len(rows)) > limit {
		rows = rows[:limit]
		if limit > 0 {
			last := rows[len(rows)-1]
			nextCursor = &storage.MessageCursor{
				CreatedAt: last.CreatedAt,
				ID:        domain.MessageID(last.ID),
			}
		}
	}

	return storage.Messages{
		Messages:   pgMessagesToDomain(rows),
		NextCursor: nextCursor,
	}, nil
}

// MarkNotified stamps notified_at once; a second call updates nothing.
func (p *PgSQL) MarkNotified(ctx context.Context, id domain.MessageID) (bool, error) {
	res, err := p.Builder.Update(messagesTable).
		Set(goqu.Record{"notified_at": goqu.L("CURRENT_TIMESTAMP")}).
		Where(
			goqu.I("id").Eq(uuid.UUID(id)),
			goqu.I("notified_at").IsNull(),
		).Executor().ExecContext(ctx)
	if err != nil {
		return false, fmt.Errorf("could not mark contact message notified in pg: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("could not read affected rows: %w", err)
	}

	return n > 0, nil
}
