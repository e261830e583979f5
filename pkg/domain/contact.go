package domain

import (
	"time"

	"github.com/google/uuid"
)

// ContactRequest is the payload of a single contact form submission. It is
// built fresh from the four form fields on every submit and never persisted
// by the client. No invariant holds beyond "fields are what the user typed".
type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// IsZero reports whether every field is empty.
func (r ContactRequest) IsZero() bool {
	return r == ContactRequest{}
}

// MessageID uniquely identifies an accepted contact message.
type MessageID uuid.UUID

// String returns the canonical UUID text form.
func (id MessageID) String() string { return uuid.UUID(id).String() }

// ContactMessage is a contact request accepted and stored by the server.
type ContactMessage struct {
	// ID is the unique identifier of the message.
	ID MessageID `json:"id"`

	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`

	// CreatedAt is the time the message was accepted.
	CreatedAt time.Time `json:"createdAt"`
	// NotifiedAt is when the site owner was notified; zero means not yet.
	NotifiedAt time.Time `json:"notifiedAt"`
}

// Request returns the request fields of the stored message.
func (m ContactMessage) Request() ContactRequest {
	return ContactRequest{
		Name:    m.Name,
		Email:   m.Email,
		Subject: m.Subject,
		Message: m.Message,
	}
}
