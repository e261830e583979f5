package contact

import (
	"context"
	"sitecontact/pkg/domain"
)

//go:generate mockgen -package mockcontact -source=interface.go -destination=mock/mockcontact.go *
type Service interface {
	Submit(ctx context.Context, req domain.ContactRequest) (*domain.ContactMessage, error)
	Messages(ctx context.Context, cursor string, limit uint) ([]domain.ContactMessage, string, error)
	Notify(ctx context.Context, id domain.MessageID) error
}
