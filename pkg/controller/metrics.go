package controller

import (
	"fmt"
	"net/http"
	"sitecontact/pkg/metrics"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// WithMetrics returns a middleware recording request latency in the
// http_request_duration_seconds histogram, labeled by method and status code.
// The histogram is registered on reg.
func WithMetrics(reg prometheus.Registerer) (func(http.Handler) http.Handler, error) {
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Latency of HTTP requests.",
		Buckets: metrics.DefaultBuckets,
	}, []string{"method", "code"})
	if err := reg.Register(latency); err != nil {
		return nil, fmt.Errorf("could not register latency histogram: %w", err)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			latency.WithLabelValues(r.Method, strconv.Itoa(rec.status)).Observe(time.Since(start).Seconds())
		})
	}, nil
}
