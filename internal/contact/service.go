package contact

import (
	"context"
	"fmt"
	"sitecontact/internal/config"
	"sitecontact/pkg/domain"
	"sitecontact/pkg/logger"
	"sitecontact/pkg/notifier"
	"sitecontact/pkg/serrors"
	"sitecontact/pkg/storage"
	"strings"
	"unicode/utf8"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const (
	// DefaultPageSize is used by Messages when no limit is given.
	DefaultPageSize uint = 20
	// MaxPageSize is the largest page Messages returns.
	MaxPageSize uint = 100

	instrumentationName = "sitecontact/internal/contact"
)

// Options configure validation and job enqueueing.
type Options struct {
	// MaxMessageLength is the maximum number of characters in a message.
	// Zero disables the check.
	MaxMessageLength int
	// NotifyMaxAttempts is passed to River as the notify job's MaxAttempts.
	NotifyMaxAttempts int
}

// NewOptions constructs an Options value from the provided application config.
func NewOptions(cfg *config.Config) Options {
	return Options{
		MaxMessageLength:  cfg.Contact.MaxMessageLength,
		NotifyMaxAttempts: cfg.Contact.NotifyMaxAttempts,
	}
}

type service struct {
	options  Options
	storage  storage.Storage
	notifier notifier.Notifier

	tracer      trace.Tracer
	submissions metric.Int64Counter
}

// Submit validates req, stores it and queues the owner notification in a
// single transaction.
func (s *service) Submit(ctx context.Context, req domain.ContactRequest) (msg *domain.ContactMessage, err error) {
	ctx, span := s.tracer.Start(ctx, "contact.Submit")
	defer func() {
		s.submissions.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcomeLabel(err))))
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	req = domain.ContactRequest{
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.TrimSpace(req.Email),
		Subject: strings.TrimSpace(req.Subject),
		Message: strings.TrimSpace(req.Message),
	}
	if req.Name == "" || req.Email == "" || req.Subject == "" || req.Message == "" {
		return nil, serrors.With(serrors.ErrBadRequest, "All fields are required.")
	}
	if s.options.MaxMessageLength > 0 && utf8.RuneCountInString(req.Message) > s.options.MaxMessageLength {
		return nil, serrors.With(serrors.ErrBadRequest, "Message is too long.")
	}

	if err := s.storage.WithTx(ctx, func(tx storage.AllStorage) error {
		stored, err := tx.StoreMessage(ctx, domain.ContactMessage{
			Name:    req.Name,
			Email:   req.Email,
			Subject: req.Subject,
			Message: req.Message,
		})
		if err != nil {
			return fmt.Errorf("could not store message: %w", err)
		}
		msg = stored

		if _, err := tx.AddJob(ctx, NotifyJobArgs{
			MessageID:   stored.ID.String(),
			maxAttempts: s.options.NotifyMaxAttempts,
		}, nil); err != nil {
			return fmt.Errorf("could not add notify job: %w", err)
		}

		return nil
	}); err != nil {
		return nil, fmt.Errorf("could not submit message: %w", err)
	}

	span.SetAttributes(attribute.String("message.id", msg.ID.String()))
	logger.Info(ctx, "contact message stored", zap.String("messageID", msg.ID.String()))

	return msg, nil
}

// Messages returns a page of stored messages, newest first. The cursor is the
// opaque value returned by the previous page (see EncodeCursor).
func (s *service) Messages(ctx context.Context, cursor string, limit uint) ([]domain.ContactMessage, string, error) {
	pos, err := ParseCursor(cursor)
	if err != nil {
		return nil, "", err
	}

	switch {
	case limit == 0:
		limit = DefaultPageSize
	case limit > MaxPageSize:
		limit = MaxPageSize
	}

	page, err := s.storage.Messages(ctx, pos, limit)
	if err != nil {
		return nil, "", fmt.Errorf("could not get messages: %w", err)
	}

	var next string
	if page.NextCursor != nil {
		next = EncodeCursor(*page.NextCursor)
	}

	return page.Messages, next, nil
}

// Notify delivers a stored message to the site owner. Messages already
// notified are skipped. Delivery is at-least-once: the notified stamp is
// written after the webhook succeeds, so a failed stamp leads to a retried
// job and a repeated webhook call.
func (s *service) Notify(ctx context.Context, id domain.MessageID) error {
	ctx, span := s.tracer.Start(ctx, "contact.Notify", trace.WithAttributes(attribute.String("message.id", id.String())))
	defer span.End()

	msg, err := s.storage.MessageByID(ctx, id)
	if err != nil {
		return fmt.Errorf("could not get message: %w", err)
	}
	if msg == nil {
		return serrors.With(serrors.ErrNotFound, "message not found")
	}
	if !msg.NotifiedAt.IsZero() {
		logger.Debug(ctx, "message already notified", zap.Time("notifiedAt", msg.NotifiedAt))

		return nil
	}

	if err := s.notifier.Notify(ctx, *msg); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())

		return fmt.Errorf("could not notify owner: %w", err)
	}

	if _, err := s.storage.MarkNotified(ctx, id); err != nil {
		return fmt.Errorf("could not mark message notified: %w", err)
	}

	return nil
}

func outcomeLabel(err error) string {
	switch {
	case err == nil:
		return "accepted"
	case serrors.KindOf(err) == serrors.ErrBadRequest:
		return "rejected"
	default:
		return "failed"
	}
}

// New creates a contact Service backed by the provided storage and notifier.
// Instruments come from the global otel providers.
func New(storage storage.Storage, notifier notifier.Notifier, options Options) Service {
	submissions, err := otel.Meter(instrumentationName).Int64Counter("contact.submissions",
		metric.WithDescription("Contact form submissions by outcome."))
	if err != nil {
		otel.Handle(err)
		submissions, _ = noop.NewMeterProvider().Meter(instrumentationName).Int64Counter("contact.submissions")
	}

	return &service{
		options:     options,
		storage:     storage,
		notifier:    notifier,
		tracer:      otel.Tracer(instrumentationName),
		submissions: submissions,
	}
}
