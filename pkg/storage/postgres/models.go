package postgres

import (
	"database/sql"
	"sitecontact/pkg/domain"
	"time"

	"github.com/google/uuid"
)

// PgContactMessage is the row shape of the contact_messages table.
type PgContactMessage struct {
	ID uuid.UUID `db:"id" goqu:"skipinsert"`

	Name    string `db:"name"`
	Email   string `db:"email"`
	Subject string `db:"subject"`
	Message string `db:"message"`

	CreatedAt  time.Time    `db:"created_at"  goqu:"skipinsert"`
	NotifiedAt sql.NullTime `db:"notified_at" goqu:"skipinsert"`
}

func (p *PgContactMessage) ToDomain() *domain.ContactMessage {
	return &domain.ContactMessage{
		ID:         domain.MessageID(p.ID),
		Name:       p.Name,
		Email:      p.Email,
		Subject:    p.Subject,
		Message:    p.Message,
		CreatedAt:  p.CreatedAt,
		NotifiedAt: p.NotifiedAt.Time,
	}
}

func (p *PgContactMessage) FromDomain(msg domain.ContactMessage) {
	*p = PgContactMessage{
		ID:        uuid.UUID(msg.ID),
		Name:      msg.Name,
		Email:     msg.Email,
		Subject:   msg.Subject,
		Message:   msg.Message,
		CreatedAt: msg.CreatedAt,
		NotifiedAt: sql.NullTime{
			Time:  msg.NotifiedAt,
			Valid: !msg.NotifiedAt.IsZero(),
		},
	}
}

func pgMessagesToDomain(rows []PgContactMessage) []domain.ContactMessage {
	out := make([]domain.ContactMessage, 0, len(rows))
	for i := range rows {
		out = append(out, *rows[i].ToDomain())
	}

	return out
}
