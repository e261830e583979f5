// Package contactform turns a contact form submit into a single JSON request
// to the contact endpoint and reflects the outcome in a status region.
//
// The form's inputs and its status element are injected through the Fields
// and StatusRegion interfaces, so the same Handler drives a browser binding,
// a CLI or a test double.
package contactform

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"

	"sitecontact/pkg/contactwire"
	"sitecontact/pkg/domain"
	"sitecontact/pkg/serrors"
)

// Path is the fixed path of the contact endpoint relative to the site root.
const Path = "/contact"

// Submitter sends one contact request and reports its outcome.
//
//go:generate mockgen -package mockcontactform -source=client.go -destination=mock/mockcontactform.go *
type Submitter interface {
	// Submit sends req exactly once. It never retries and always returns a
	// non-nil Outcome.
	Submit(ctx context.Context, req domain.ContactRequest) Outcome
}

// Client posts contact requests to a site's contact endpoint. It is safe for
// concurrent use.
type Client struct {
	httpClient *http.Client // httpClient performs the request; its Timeout, if any, applies
	endpoint   string       // endpoint is baseURL + Path
}

// Ensure Client conforms to the Submitter interface at compile time.
var _ Submitter = (*Client)(nil)

// New constructs a Client for the site at baseURL (e.g. "https://example.com").
// An empty baseURL yields the relative path, which is only useful with a
// custom RoundTripper.
func New(httpClient *http.Client, baseURL string) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{
		httpClient: httpClient,
		endpoint:   strings.TrimRight(baseURL, "/") + Path,
	}
}

// Submit posts req as JSON and classifies the answer.
//
// The body is decoded before the status is checked, so a failure status
// carrying {"error": "..."} surfaces that text. A body that is not JSON fails
// with DefaultFailureReason whatever the status.
func (c *Client) Submit(ctx context.Context, req domain.ContactRequest) Outcome {
	httpReq, err := http.NewRequestWithContext(ctx,
		http.MethodPost,
		c.endpoint,
		bytes.NewReader(contactwire.EncodeRequest(req)))
	if err != nil {
		return Failure{
			Reason: DefaultFailureReason,
			Err:    serrors.Wrap(serrors.ErrInternal, err, "could not create request"),
		}
	}
	httpReq.Header.Set("Content-Type", contactwire.ContentType)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return Failure{
			Reason: DefaultFailureReason,
			Err:    serrors.Wrap(serrors.ErrUnavailable, err, "could not send request"),
		}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return Failure{
			Reason: DefaultFailureReason,
			Err:    serrors.Wrap(serrors.ErrUnavailable, err, "could not read response body"),
		}
	}

	res, err := contactwire.DecodeResponse(b)
	if err != nil {
		return Failure{
			Reason: DefaultFailureReason,
			Err:    serrors.Wrap(serrors.ErrMalformed, err, "could not decode response (status %d)", resp.StatusCode),
		}
	}

	reason := res.Error
	if reason == "" {
		reason = DefaultFailureReason
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Failure{
			Reason: reason,
			Err:    serrors.With(serrors.ErrUnavailable, "contact endpoint answered %d", resp.StatusCode),
		}
	}
	if !res.OK {
		return Failure{
			Reason: reason,
			Err:    serrors.With(serrors.ErrRejected, "contact request rejected: %s", reason),
		}
	}

	msg := res.Msg
	if msg == "" {
		msg = DefaultSuccessMessage
	}

	return Success{Message: msg}
}
