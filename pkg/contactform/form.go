package contactform

import (
	"context"
	"fmt"
	"io"
	"sync"
	"sync/atomic"

	"sitecontact/pkg/domain"
	"sitecontact/pkg/logger"
	"sitecontact/pkg/serrors"

	"go.uber.org/zap"
)

// ErrSubmissionInFlight is returned by Handler.Submit when a previous
// submission has not resolved yet and overlapping submissions are disabled.
var ErrSubmissionInFlight = serrors.With(serrors.ErrConflict, "a submission is already in flight")

// Fields gives access to the four contact inputs.
type Fields interface {
	// Values returns the current input values.
	Values() domain.ContactRequest
	// Reset clears every input.
	Reset()
}

// StatusRegion displays the outcome of the most recent submission.
type StatusRegion interface {
	SetStatus(text string)
}

// HandlerOption customizes a Handler.
type HandlerOption func(*Handler)

// WithOverlappingSubmissions disables the single in-flight guard. Overlapping
// submissions then race on the status region and the last one to resolve wins.
func WithOverlappingSubmissions() HandlerOption {
	return func(h *Handler) {
		h.allowOverlap = true
	}
}

// Handler is the form submission handler. It owns no state besides the
// in-flight flag; the inputs and the status element are injected.
type Handler struct {
	submitter Submitter
	fields    Fields
	status    StatusRegion

	allowOverlap bool
	inFlight     atomic.Bool
}

// NewHandler binds submitter to a form's fields and status region.
func NewHandler(submitter Submitter, fields Fields, status StatusRegion, opts ...HandlerOption) *Handler {
	h := &Handler{
		submitter: submitter,
		fields:    fields,
		status:    status,
	}
	for _, opt := range opts {
		opt(h)
	}

	return h
}

// Submit runs one submission: it shows SendingText, sends the current field
// values once and then shows the outcome. On success the fields are cleared;
// on failure they keep their values.
//
// Submit blocks until the request resolves. It returns ErrSubmissionInFlight,
// without sending anything or touching the status, when another submission is
// still pending.
func (h *Handler) Submit(ctx context.Context) (Outcome, error) {
	if !h.allowOverlap {
		if !h.inFlight.CompareAndSwap(false, true) {
			return nil, ErrSubmissionInFlight
		}
		defer h.inFlight.Store(false)
	}

	h.status.SetStatus(SendingText)
	req := h.fields.Values()

	outcome := h.submitter.Submit(ctx, req)
	switch o := outcome.(type) {
	case Success:
		// visitor details stay out of info logs
		logger.Info(ctx, "contact request sent")
		logger.Debug(ctx, "contact request sender", zap.String("email", req.Email))
		h.status.SetStatus(o.StatusText())
		h.fields.Reset()
	case Failure:
		logger.Warn(ctx, "contact request failed", zap.String("reason", o.Reason), zap.Error(o.Err))
		h.status.SetStatus(o.StatusText())
	default:
		return nil, fmt.Errorf("unexpected outcome %T", outcome)
	}

	return outcome, nil
}

// InFlight reports whether a guarded submission is pending.
func (h *Handler) InFlight() bool {
	return h.inFlight.Load()
}

// FormValues is an in-memory Fields implementation safe for concurrent use.
type FormValues struct {
	mu  sync.Mutex
	req domain.ContactRequest
}

// Ensure FormValues conforms to the Fields interface at compile time.
var _ Fields = (*FormValues)(nil)

// NewFormValues returns inputs pre-filled with req.
func NewFormValues(req domain.ContactRequest) *FormValues {
	return &FormValues{req: req}
}

func (f *FormValues) Values() domain.ContactRequest {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.req
}

func (f *FormValues) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.req = domain.ContactRequest{}
}

// Set replaces every input value.
func (f *FormValues) Set(req domain.ContactRequest) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.req = req
}

// WriterStatus is a StatusRegion that writes each status as a line to W and
// remembers the last one.
type WriterStatus struct {
	W io.Writer

	mu   sync.Mutex
	last string
}

// Ensure WriterStatus conforms to the StatusRegion interface at compile time.
var _ StatusRegion = (*WriterStatus)(nil)

func (s *WriterStatus) SetStatus(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.last = text
	if s.W != nil {
		_, _ = fmt.Fprintln(s.W, text)
	}
}

// Text returns the status currently displayed.
func (s *WriterStatus) Text() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.last
}
