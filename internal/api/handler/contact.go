package handler

import (
	"errors"
	"io"
	"net/http"
	"sitecontact/pkg/contactwire"
	"sitecontact/pkg/controller"
	"sitecontact/pkg/logger"

	"go.uber.org/zap"
)

const (
	// SavedMessage is shown by the form after a message was accepted.
	SavedMessage = "Thanks! Your message was saved."

	invalidBodyMessage = "Invalid request body."
	tooLargeMessage    = "Request body too large."
	methodMessage      = "Method not allowed."
)

// Access log outcomes of Contact.
const (
	OutcomeSent       = "sent"
	OutcomeRejected   = "rejected"
	OutcomeFailed     = "failed"
	OutcomeBadRequest = "bad_request"
)

// Contact handles POST /contact. Every response, success or not, is a
// contactwire.Response so the form can show it as is.
func (h Handler) Contact(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		controller.SetOutcome(ctx, OutcomeBadRequest)
		writeContact(w, http.StatusMethodNotAllowed, contactwire.Response{Error: methodMessage})

		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		controller.SetOutcome(ctx, OutcomeBadRequest)
		if errors.As(err, &tooLarge) {
			writeContact(w, http.StatusRequestEntityTooLarge, contactwire.Response{Error: tooLargeMessage})

			return
		}
		logger.Warn(ctx, "could not read contact request body", zap.Error(err))
		writeContact(w, http.StatusBadRequest, contactwire.Response{Error: invalidBodyMessage})

		return
	}

	req, err := contactwire.DecodeRequest(body)
	if err != nil {
		logger.Debug(ctx, "invalid contact request body", zap.Error(err))
		controller.SetOutcome(ctx, OutcomeBadRequest)
		writeContact(w, http.StatusBadRequest, contactwire.Response{Error: invalidBodyMessage})

		return
	}

	if _, err := h.Service.Submit(ctx, req); err != nil {
		res := h.NewError(ctx, err)
		if res.StatusCode >= http.StatusInternalServerError {
			controller.SetOutcome(ctx, OutcomeFailed)
		} else {
			controller.SetOutcome(ctx, OutcomeRejected)
		}
		writeContact(w, res.StatusCode, contactwire.Response{Error: res.Message})

		return
	}

	controller.SetOutcome(ctx, OutcomeSent)
	writeContact(w, http.StatusOK, contactwire.Response{OK: true, Msg: SavedMessage})
}

func writeContact(w http.ResponseWriter, status int, res contactwire.Response) {
	w.Header().Set("Content-Type", contactwire.ContentType)
	w.WriteHeader(status)
	_, _ = w.Write(contactwire.EncodeResponse(res))
}
