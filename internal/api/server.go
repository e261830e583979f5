// Package api configures and exposes the HTTP server, routes,
// metrics, docs and related middleware for the site contact service.
package api

import (
	_ "embed"
	"fmt"
	"net/http"
	"sitecontact/internal/api/handler"
	"sitecontact/internal/config"
	"sitecontact/pkg/controller"
	"sitecontact/pkg/contactform"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/swaggest/swgui/v5emb"
)

// v1Spec contains the embedded OpenAPI specification of the API.
//
//go:embed specs/v1.yaml
var v1Spec []byte

// AdminMessagesPath lists stored messages; it requires a bearer token.
const AdminMessagesPath = "/admin/messages"

// Options holds configuration for the HTTP server and its dependencies.
// It is typically created from a config.Config via NewOptions.
// All durations are used to configure server timeouts, and zero values
// should be considered as using the defaults provided by net/http where applicable.
type Options struct {
	// SecHandlerOptions configures bearer authentication of the admin endpoints.
	// Admin endpoints are not mounted when no public key is configured.
	SecHandlerOptions *handler.SecHandlerOptions

	// Addr is the TCP address the server listens on, e.g. ":8080".
	Addr string
	// ReadTimeout is the maximum duration for reading the entire request, including the body.
	ReadTimeout time.Duration
	// ReadHeaderTimeout is the amount of time allowed to read request headers.
	ReadHeaderTimeout time.Duration
	// WriteTimeout is the maximum duration before timing out writes of the response.
	WriteTimeout time.Duration
	// IdleTimeout is the maximum amount of time to wait for the next request when keep-alives are enabled.
	IdleTimeout time.Duration
	// RequestTimeout is the global timeout applied via http.TimeoutHandler for handling requests.
	RequestTimeout time.Duration
	// MaxHeaderBytes controls the maximum number of bytes the server
	// will read parsing the request header's keys and values, including the request line.
	MaxHeaderBytes int
	// MaxBodyBytes caps the size of a contact request body.
	MaxBodyBytes int64
	// MetricsPath is the HTTP path at which Prometheus metrics are served.
	MetricsPath string
	// StaticDir, when set, is served at "/".
	StaticDir string

	// Registerer and Gatherer back the metrics endpoint; nil means the
	// Prometheus defaults.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// NewOptions constructs an Options value from the provided application configuration.
// It maps HTTP server-related settings from config.Config to the Options used by the API server.
func NewOptions(cfg *config.Config) Options {
	return Options{
		SecHandlerOptions: handler.NewSecHandlerOptions(cfg),

		Addr:              cfg.HTTP.Addr,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
		RequestTimeout:    cfg.HTTP.RequestTimeout,
		MaxHeaderBytes:    cfg.HTTP.MaxHeaderBytes,
		MaxBodyBytes:      cfg.HTTP.MaxBodyBytes,
		MetricsPath:       cfg.HTTP.MetricsPath,
		StaticDir:         cfg.HTTP.StaticDir,
	}
}

type Deps struct {
	handler.Deps
}

// NewServer wires up and returns a configured *http.Server using the provided Options.
// It sets up:
// - Prometheus metrics endpoint (MetricsPath)
// - Embedded OpenAPI v1 spec and Swagger UI
// - POST /contact and the authenticated admin routes
// - pprof endpoints for profiling
// - the static site, when configured
// It also wraps the mux with CORS, logging and latency middlewares and applies a request timeout.
func NewServer(deps Deps, opts Options) (*http.Server, error) {
	if opts.Registerer == nil {
		opts.Registerer = prometheus.DefaultRegisterer
	}
	if opts.Gatherer == nil {
		opts.Gatherer = prometheus.DefaultGatherer
	}

	mux := http.NewServeMux()

	// prometheus metrics server
	if opts.MetricsPath != "" {
		mux.Handle(opts.MetricsPath, controller.Route(opts.MetricsPath, promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{})))
	}

	// v1 specs file
	mux.HandleFunc("/specs/v1.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write(v1Spec)
	})
	// v1 api swagger playground
	mux.Handle("/v1/docs/", v5emb.New(
		"Site Contact Service",
		"/specs/v1.yaml",
		"/v1/docs/",
	))

	deps.MaxBodyBytes = opts.MaxBodyBytes
	h := handler.New(deps.Deps)
	mux.Handle(contactform.Path, controller.Route(contactform.Path, http.HandlerFunc(h.Contact)))

	if opts.SecHandlerOptions != nil && opts.SecHandlerOptions.PublicKey != "" {
		secHandler, err := handler.NewSecHandler(opts.SecHandlerOptions)
		if err != nil {
			return nil, fmt.Errorf("could not create sec handler: %w", err)
		}
		mux.Handle("GET "+AdminMessagesPath, controller.Route(AdminMessagesPath, secHandler.Middleware(h, http.HandlerFunc(h.Messages))))
	}

	// pprof
	mux.Handle("/debug/pprof/", http.StripPrefix("/debug/pprof", controller.PprofMux()))

	if opts.StaticDir != "" {
		mux.Handle("/", http.FileServer(http.Dir(opts.StaticDir)))
	}

	// cors
	httpHandler := controller.WithCORS(mux)

	// latency
	withMetrics, err := controller.WithMetrics(opts.Registerer)
	if err != nil {
		return nil, fmt.Errorf("could not create metrics middleware: %w", err)
	}
	httpHandler = withMetrics(httpHandler)

	// logger
	httpHandler = controller.WithLogger(httpHandler)

	if opts.RequestTimeout > 0 {
		httpHandler = http.TimeoutHandler(httpHandler, opts.RequestTimeout, `{"ok":false,"error":"request timed out"}`)
	}

	return &http.Server{
		Addr:              opts.Addr,
		Handler:           httpHandler,
		ReadTimeout:       opts.ReadTimeout,
		ReadHeaderTimeout: opts.ReadHeaderTimeout,
		WriteTimeout:      opts.WriteTimeout,
		IdleTimeout:       opts.IdleTimeout,
		MaxHeaderBytes:    opts.MaxHeaderBytes,
	}, nil
}
