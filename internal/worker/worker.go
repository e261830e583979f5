// Package worker runs the background jobs of the contact service on River.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"sitecontact/internal/contact"
	"sitecontact/pkg/logger"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"
	"go.uber.org/zap/exp/zapslog"
)

// DefaultRateLimitSnooze is used when a throttled channel gave no Retry-After.
const DefaultRateLimitSnooze = time.Minute

// Start registers the notify worker and starts a River client processing up
// to maxWorkers jobs at once. The caller stops the returned client.
func Start(ctx context.Context, dbPool *pgxpool.Pool, service contact.Service, maxWorkers int) (*river.Client[pgx.Tx], error) {
	if maxWorkers <= 0 {
		maxWorkers = 1
	}

	workers := river.NewWorkers()
	if err := river.AddWorkerSafely(workers, NewNotifyWorker(service)); err != nil {
		return nil, fmt.Errorf("could not register notify worker: %w", err)
	}

	riverClient, err := river.NewClient(riverpgxv5.New(dbPool), &river.Config{
		Queues: map[string]river.QueueConfig{
			river.QueueDefault: {MaxWorkers: maxWorkers},
		},
		Workers: workers,
		Logger:  slog.New(zapslog.NewHandler(logger.Get(ctx).Core())),
	})
	if err != nil {
		return nil, fmt.Errorf("could not create river queue client: %w", err)
	}

	if err := riverClient.Start(ctx); err != nil {
		return nil, fmt.Errorf("could not start river queue client: %w", err)
	}

	return riverClient, nil
}
