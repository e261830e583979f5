package storage

import (
	"context"
	"sitecontact/pkg/domain"
	"time"
)

// MessageCursor is a keyset position in the created_at DESC, id DESC order.
// Messages sharing a created_at are told apart by ID.
type MessageCursor struct {
	CreatedAt time.Time
	ID        domain.MessageID
}

// IsZero reports whether c points at the start of the list.
func (c MessageCursor) IsZero() bool {
	return c.CreatedAt.IsZero()
}

// Messages groups a page of contact messages with the cursor of the next page.
type Messages struct {
	// Messages contains the current page, newest first.
	Messages []domain.ContactMessage
	// NextCursor is the position of the last message of the page; nil on the last page.
	NextCursor *MessageCursor
}

// ContactStorage persists accepted contact messages.
type ContactStorage interface {
	// StoreMessage inserts msg and returns the stored row, including the
	// generated ID and CreatedAt.
	StoreMessage(ctx context.Context, msg domain.ContactMessage) (*domain.ContactMessage, error)
	// MessageByID returns a message by ID, or nil when it does not exist.
	MessageByID(ctx context.Context, id domain.MessageID) (*domain.ContactMessage, error)
	// Messages returns up to limit messages strictly after cursor in the
	// created_at DESC, id DESC order (from the newest when cursor is zero).
	Messages(ctx context.Context, cursor MessageCursor, limit uint) (Messages, error)
	// MarkNotified sets notified_at for a message that was not notified yet.
	// It reports whether a row was updated.
	MarkNotified(ctx context.Context, id domain.MessageID) (bool, error)
}
