package contact

import (
	"errors"
	"sitecontact/pkg/domain"
	"sitecontact/pkg/serrors"
	"sitecontact/pkg/storage"
	"strings"
	"time"

	"github.com/google/uuid"
)

// cursorSep separates the created_at and ID parts of a page cursor.
const cursorSep = "|"

// EncodeCursor renders c as "<RFC3339Nano created_at>|<uuid>".
func EncodeCursor(c storage.MessageCursor) string {
	return c.CreatedAt.UTC().Format(time.RFC3339Nano) + cursorSep + c.ID.String()
}

// ParseCursor reads a cursor written by EncodeCursor. The empty string is the
// start of the list.
func ParseCursor(raw string) (storage.MessageCursor, error) {
	if raw == "" {
		return storage.MessageCursor{}, nil
	}

	ts, id, ok := strings.Cut(raw, cursorSep)
	if !ok {
		return storage.MessageCursor{}, serrors.Wrap(serrors.ErrBadRequest, errors.New("missing separator"), "invalid cursor")
	}
	createdAt, err := time.Parse(time.RFC3339Nano, ts)
	if err != nil {
		return storage.MessageCursor{}, serrors.Wrap(serrors.ErrBadRequest, err, "invalid cursor")
	}
	msgID, err := uuid.Parse(id)
	if err != nil {
		return storage.MessageCursor{}, serrors.Wrap(serrors.ErrBadRequest, err, "invalid cursor")
	}

	return storage.MessageCursor{CreatedAt: createdAt, ID: domain.MessageID(msgID)}, nil
}
