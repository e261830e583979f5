// Package webhook provides a notifier.Notifier that posts a chat-style JSON
// payload ({"text": "..."}) to an incoming-webhook URL.
package webhook

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"sitecontact/pkg/domain"
	"sitecontact/pkg/notifier"
	"strconv"
	"strings"
	"time"

	"github.com/go-faster/jx"
)

// maxErrorBody caps how much of a failed response is kept in the error.
const maxErrorBody = 512

// Notifier posts contact messages to a webhook. It is safe for concurrent use.
type Notifier struct {
	httpClient *http.Client // httpClient performs HTTP requests to the webhook
	url        string       // url is the incoming-webhook endpoint
}

// Ensure Notifier conforms to the notifier.Notifier interface at compile time.
var _ notifier.Notifier = (*Notifier)(nil)

// New constructs a Notifier posting to url with httpClient.
func New(httpClient *http.Client, url string) *Notifier {
	return &Notifier{
		httpClient: httpClient,
		url:        url,
	}
}

// Payload renders the webhook body for msg.
func Payload(msg domain.ContactMessage) []byte {
	var e jx.Encoder
	e.Obj(func(e *jx.Encoder) {
		e.Field("text", func(e *jx.Encoder) {
			e.Str(fmt.Sprintf("New contact message from %s <%s>\nSubject: %s\n\n%s",
				msg.Name, msg.Email, msg.Subject, msg.Message))
		})
		e.Field("id", func(e *jx.Encoder) {
			e.Str(msg.ID.String())
		})
	})

	return e.Bytes()
}

// ParseRetryAfter reads a Retry-After header given in seconds or as an HTTP date.
func ParseRetryAfter(h http.Header, now time.Time) time.Duration {
	v := strings.TrimSpace(h.Get("Retry-After"))
	if v == "" {
		return 0
	}
	if secs, err := strconv.Atoi(v); err == nil {
		if secs < 0 {
			return 0
		}

		return time.Duration(secs) * time.Second
	}
	if at, err := http.ParseTime(v); err == nil {
		if d := at.Sub(now); d > 0 {
			return d
		}
	}

	return 0
}

// Notify posts msg to the webhook.
func (n *Notifier) Notify(ctx context.Context, msg domain.ContactMessage) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(Payload(msg)))
	if err != nil {
		return fmt.Errorf("could not create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("could not send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode == http.StatusTooManyRequests {
		return &notifier.RateLimitError{RetryAfter: ParseRetryAfter(resp.Header, time.Now())}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

		return fmt.Errorf("webhook answered %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)

	return nil
}
