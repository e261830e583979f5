// Package notifier defines how the site owner is told about a new contact
// message, plus a zap-backed implementation used when no delivery channel is
// configured.
package notifier

import (
	"context"
	"errors"
	"sitecontact/pkg/domain"
	"sitecontact/pkg/logger"
	"sitecontact/pkg/serrors"
	"time"

	"go.uber.org/zap"
)

// Notifier delivers a contact message to the site owner.
//
//go:generate mockgen -package mocknotifier -source=interface.go -destination=mock/mocknotifier.go *
type Notifier interface {
	// Notify delivers msg. A *RateLimitError means the channel asked us to
	// slow down; callers should retry after RetryAfter.
	Notify(ctx context.Context, msg domain.ContactMessage) error
}

// RateLimitError reports that the delivery channel throttled us.
type RateLimitError struct {
	// RetryAfter is how long the channel asked us to wait; zero if unknown.
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return "notification rate limited, retry after " + e.RetryAfter.String()
}

// Is makes a RateLimitError match serrors.ErrRateLimited.
func (e *RateLimitError) Is(target error) bool {
	return target == serrors.ErrRateLimited
}

// RetryAfter returns the wait requested by a *RateLimitError in err's chain.
func RetryAfter(err error) (time.Duration, bool) {
	var rl *RateLimitError
	if errors.As(err, &rl) {
		return rl.RetryAfter, true
	}

	return 0, false
}

// LogNotifier writes the message to the context logger.
type LogNotifier struct{}

// Ensure LogNotifier conforms to the Notifier interface at compile time.
var _ Notifier = LogNotifier{}

func (LogNotifier) Notify(ctx context.Context, msg domain.ContactMessage) error {
	logger.Info(ctx, "new contact message",
		zap.String("id", msg.ID.String()),
		zap.String("name", msg.Name),
		zap.String("email", msg.Email),
		zap.String("subject", msg.Subject),
		zap.Int("length", len(msg.Message)),
		zap.Time("createdAt", msg.CreatedAt))

	return nil
}
