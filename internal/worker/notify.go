package worker

import (
	"context"
	"errors"
	"fmt"
	"sitecontact/internal/contact"
	"sitecontact/pkg/domain"
	"sitecontact/pkg/logger"
	"sitecontact/pkg/notifier"
	"sitecontact/pkg/serrors"

	"github.com/google/uuid"
	"github.com/riverqueue/river"
	"go.uber.org/zap"
)

// NotifyWorker is a River worker delivering stored contact messages to the
// site owner through contact.Service.
//
// Error handling: a message that no longer exists cancels the job. A
// throttled delivery snoozes the job for the wait the channel asked for,
// which does not count as an attempt. Other errors are returned so River
// retries with its default backoff.
type NotifyWorker struct {
	river.WorkerDefaults[contact.NotifyJobArgs]

	service contact.Service
}

// NewNotifyWorker constructs a NotifyWorker using the provided service.
func NewNotifyWorker(service contact.Service) *NotifyWorker {
	return &NotifyWorker{service: service}
}

// Work executes a single notify job.
func (w *NotifyWorker) Work(ctx context.Context, job *river.Job[contact.NotifyJobArgs]) error {
	ctx = logger.WithFields(ctx,
		zap.Int64("jobID", job.ID),
		zap.Int("attempt", job.Attempt),
		zap.String("messageID", job.Args.MessageID))

	id, err := uuid.Parse(job.Args.MessageID)
	if err != nil {
		return river.JobCancel(fmt.Errorf("invalid message ID: %w", err)) //nolint: wrapcheck
	}

	if err := w.service.Notify(ctx, domain.MessageID(id)); err != nil {
		if errors.Is(err, serrors.ErrNotFound) {
			logger.Warn(ctx, "message to notify no longer exists")

			return river.JobCancel(err) //nolint: wrapcheck
		}

		if errors.Is(err, serrors.ErrRateLimited) {
			wait, _ := notifier.RetryAfter(err)
			if wait <= 0 {
				wait = DefaultRateLimitSnooze
			}
			logger.Warn(ctx, "owner notification rate limited", zap.Duration("snooze", wait))

			return river.JobSnooze(wait) //nolint: wrapcheck
		}

		logger.Error(ctx, "error notifying owner", zap.Error(err))

		return fmt.Errorf("could not notify owner: %w", err)
	}

	logger.Info(ctx, "owner notified")

	return nil
}
