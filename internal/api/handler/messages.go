package handler

import (
	"net/http"
	"sitecontact/pkg/domain"
	"sitecontact/pkg/serrors"
	"strconv"
	"time"

	"github.com/go-faster/jx"
)

// Messages handles GET /admin/messages?cursor=&limit=. It must be mounted
// behind SecHandler.Middleware.
func (h Handler) Messages(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	q := r.URL.Query()
	var limit uint64
	if raw := q.Get("limit"); raw != "" {
		l, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			h.writeError(ctx, w, serrors.Wrap(serrors.ErrBadRequest, err, "invalid limit"))

			return
		}
		limit = l
	}

	msgs, next, err := h.Service.Messages(ctx, q.Get("cursor"), uint(limit))
	if err != nil {
		h.writeError(ctx, w, err)

		return
	}

	writeJSON(w, http.StatusOK, EncodeMessages(msgs, next))
}

// EncodeMessages renders a page of messages as
// {"items": [...], "nextCursor": "..."}; nextCursor is omitted on the last page.
func EncodeMessages(msgs []domain.ContactMessage, next string) []byte {
	var e jx.Encoder
	e.Obj(func(e *jx.Encoder) {
		e.Field("items", func(e *jx.Encoder) {
			e.Arr(func(e *jx.Encoder) {
				for _, m := range msgs {
					encodeMessage(e, m)
				}
			})
		})
		if next != "" {
			e.Field("nextCursor", func(e *jx.Encoder) { e.Str(next) })
		}
	})

	return e.Bytes()
}

func encodeMessage(e *jx.Encoder, m domain.ContactMessage) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("id", func(e *jx.Encoder) { e.Str(m.ID.String()) })
		e.Field("name", func(e *jx.Encoder) { e.Str(m.Name) })
		e.Field("email", func(e *jx.Encoder) { e.Str(m.Email) })
		e.Field("subject", func(e *jx.Encoder) { e.Str(m.Subject) })
		e.Field("message", func(e *jx.Encoder) { e.Str(m.Message) })
		e.Field("createdAt", func(e *jx.Encoder) { e.Str(m.CreatedAt.UTC().Format(time.RFC3339Nano)) })
		if !m.NotifiedAt.IsZero() {
			e.Field("notifiedAt", func(e *jx.Encoder) { e.Str(m.NotifiedAt.UTC().Format(time.RFC3339Nano)) })
		}
	})
}
