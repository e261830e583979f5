// Package handler implements the HTTP handlers of the contact service: the
// public contact endpoint used by the site's form and the admin endpoints.
package handler

import (
	"context"
	"errors"
	"net/http"
	"sitecontact/internal/contact"
	"sitecontact/pkg/logger"
	"sitecontact/pkg/serrors"

	"github.com/go-faster/jx"
	"go.uber.org/zap"
)

// DefaultMaxBodyBytes is used when Deps.MaxBodyBytes is not set.
const DefaultMaxBodyBytes int64 = 64 << 10

// Deps are the collaborators of the handlers.
type Deps struct {
	Service contact.Service

	// MaxBodyBytes caps the size of a contact request body.
	MaxBodyBytes int64
}

type Handler struct {
	Deps
}

func New(deps Deps) *Handler {
	if deps.MaxBodyBytes <= 0 {
		deps.MaxBodyBytes = DefaultMaxBodyBytes
	}

	return &Handler{Deps: deps}
}

// ErrorResponse is the HTTP rendition of an error.
type ErrorResponse struct {
	StatusCode int
	// Code is the serrors kind name, e.g. "BAD_REQUEST".
	Code string
	// Message is safe to show to the client.
	Message string
}

// NewError maps err to an ErrorResponse by its serrors kind. Messages of
// internal errors are never exposed.
func (h Handler) NewError(ctx context.Context, err error) *ErrorResponse {
	var (
		kind   serrors.Kind = serrors.ErrInternal
		status              = http.StatusInternalServerError
		msg                 = "internal error"
	)

	for _, m := range kindMappings {
		if errors.Is(err, m.kind) {
			kind, status = m.kind, m.status
			msg = serrors.MessageOf(err, m.message)

			break
		}
	}

	if status >= http.StatusInternalServerError {
		logger.Error(ctx, "request failed", zap.Error(err))
		if kind == serrors.ErrInternal {
			msg = "internal error"
		}
	} else {
		logger.Debug(ctx, "request rejected", zap.Error(err))
	}

	return &ErrorResponse{
		StatusCode: status,
		Code:       kind.Error(),
		Message:    msg,
	}
}

var kindMappings = []struct { //nolint: gochecknoglobals
	kind    serrors.Kind
	status  int
	message string
}{
	{serrors.ErrBadRequest, http.StatusBadRequest, "bad request"},
	{serrors.ErrMalformed, http.StatusBadRequest, "malformed request"},
	{serrors.ErrUnauthorized, http.StatusUnauthorized, "unauthorized"},
	{serrors.ErrNotFound, http.StatusNotFound, "resource not found"},
	{serrors.ErrConflict, http.StatusConflict, "conflict"},
	{serrors.ErrRejected, http.StatusUnprocessableEntity, "request rejected"},
	{serrors.ErrRateLimited, http.StatusTooManyRequests, "too many requests"},
	{serrors.ErrUnavailable, http.StatusServiceUnavailable, "service unavailable"},
	{serrors.ErrInternal, http.StatusInternalServerError, "internal error"},
}

// writeError writes err as {"code": ..., "message": ...}.
func (h Handler) writeError(ctx context.Context, w http.ResponseWriter, err error) {
	res := h.NewError(ctx, err)

	var e jx.Encoder
	e.Obj(func(e *jx.Encoder) {
		e.Field("code", func(e *jx.Encoder) { e.Str(res.Code) })
		e.Field("message", func(e *jx.Encoder) { e.Str(res.Message) })
	})
	writeJSON(w, res.StatusCode, e.Bytes())
}

func writeJSON(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}
