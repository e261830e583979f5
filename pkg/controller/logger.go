package controller

import (
	"context"
	"net"
	"net/http"
	"sitecontact/pkg/logger"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// statusRecorder wraps http.ResponseWriter to capture the final HTTP status
// code written by the downstream handler.
type statusRecorder struct {
	http.ResponseWriter

	status int
}

// WriteHeader records the status code and forwards the call to the underlying writer.
func (rec *statusRecorder) WriteHeader(code int) {
	rec.status = code
	rec.ResponseWriter.WriteHeader(code)
}

// GetClientIP attempts to determine the originating client IP address for the
// given request by checking X-Forwarded-For and X-Real-IP headers before
// falling back to the connection's remote address.
func GetClientIP(r *http.Request) string {
	// check X-Forwarded-For first
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		// may contain multiple IPs: "client, proxy1, proxy2"
		ips := strings.Split(xff, ",")

		return strings.TrimSpace(ips[0]) // the first is original client
	}

	// then check X-Real-IP
	if xrip := r.Header.Get("X-Real-IP"); xrip != "" {
		return xrip
	}

	// fallback to RemoteAddr
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}

	return ip
}

// CtxKey is a string-based type used for storing values in request contexts.
type CtxKey string

const (
	// RequestIDKey is the context key under which the current request ID is stored.
	RequestIDKey CtxKey = "RequestID"
	// RequestIDHeader carries the request ID in both directions.
	RequestIDHeader = "X-Request-Id"

	accessKey CtxKey = "Access"
)

// access collects what the handlers learned about a request for its access
// log line. WithLogger owns it; Route and SetOutcome fill it in.
type access struct {
	route   string
	outcome string
}

func accessFrom(ctx context.Context) *access {
	a, _ := ctx.Value(accessKey).(*access)

	return a
}

// RequestID returns the ID WithLogger assigned to the request, or "".
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(RequestIDKey).(string)

	return id
}

// Route tags requests served by next with pattern, e.g. "/contact", so the
// access log can group them without the raw URL.
func Route(pattern string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if a := accessFrom(r.Context()); a != nil {
			a.route = pattern
		}
		next.ServeHTTP(w, r)
	})
}

// SetOutcome records a handler level result such as "sent" or "rejected" on
// the access log line. Without it the outcome is derived from the status code.
func SetOutcome(ctx context.Context, outcome string) {
	if a := accessFrom(ctx); a != nil {
		a.outcome = outcome
	}
}

func statusOutcome(status int) string {
	switch {
	case status >= http.StatusInternalServerError:
		return "server_error"
	case status >= http.StatusBadRequest:
		return "client_error"
	default:
		return "ok"
	}
}

// WithLogger returns a middleware that assigns a request ID (taken from
// X-Request-Id when the client sent one, echoed back in the response), injects
// a request-scoped logger, and writes one access log line per request with the
// route and outcome.
func WithLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}
		w.Header().Set(RequestIDHeader, requestID)

		entry := &access{}
		ctx := context.WithValue(r.Context(), RequestIDKey, requestID)
		ctx = context.WithValue(ctx, accessKey, entry)
		ctx = logger.WithFields(ctx, zap.String("requestID", requestID))

		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r.WithContext(ctx))

		route := entry.route
		if route == "" {
			route = "unmatched"
		}
		outcome := entry.outcome
		if outcome == "" {
			outcome = statusOutcome(rec.status)
		}

		logger.Info(ctx, "access log",
			zap.String("route", route),
			zap.String("outcome", outcome),
			zap.Int("status_code", rec.status),
			zap.Float64("latency", time.Since(start).Seconds()),
			zap.String("client_ip", GetClientIP(r)),
			zap.String("user_agent", r.UserAgent()),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("referer", r.Referer()),
		)
	})
}
