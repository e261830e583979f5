package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"sitecontact/internal/api"
	"sitecontact/internal/api/handler"
	"sitecontact/internal/config"
	"sitecontact/internal/contact"
	"sitecontact/internal/worker"
	"sitecontact/pkg/logger"
	"sitecontact/pkg/metrics"
	"sitecontact/pkg/notifier"
	"sitecontact/pkg/notifier/webhook"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

func setupServer(ctx context.Context, cfg *config.Config, service contact.Service) func(ctx context.Context) {
	opts := api.NewOptions(cfg)
	if opts.SecHandlerOptions.PublicKey == "" {
		logger.Warn(ctx, "jwt public key is not configured, admin endpoints are disabled")
	}

	server, err := api.NewServer(api.Deps{
		Deps: handler.Deps{Service: service},
	}, opts)
	if err != nil {
		logger.Fatal(ctx, "could not create webserver", zap.Error(err))
	}

	go func() {
		logger.Info(ctx, "starting webserver...", zap.String("addr", cfg.HTTP.Addr))
		if err := server.ListenAndServe(); err != nil {
			if !errors.Is(err, http.ErrServerClosed) {
				logger.Error(ctx, "could not start webserver", zap.Error(err))
			}
		}
	}()

	return func(ctx context.Context) {
		logger.Info(ctx, "stopping webserver...")
		if err := server.Shutdown(ctx); err != nil {
			logger.Error(ctx, "could not stop webserver", zap.Error(err))
		}
	}
}

// setupMeterProvider installs the global otel meter provider exporting to
// the default Prometheus registry.
func setupMeterProvider(ctx context.Context) func(ctx context.Context) {
	mp, err := metrics.NewMeterProvider(prometheus.DefaultRegisterer)
	if err != nil {
		logger.Fatal(ctx, "could not create meter provider", zap.Error(err))
	}
	otel.SetMeterProvider(mp)

	return func(ctx context.Context) {
		if err := mp.Shutdown(ctx); err != nil {
			logger.Warn(ctx, "could not shut down meter provider", zap.Error(err))
		}
	}
}

func getNotifier(ctx context.Context, cfg *config.Config) notifier.Notifier {
	if cfg.Notifier.WebhookURL == "" {
		logger.Info(ctx, "no notifier webhook configured, logging new messages instead")

		return notifier.LogNotifier{}
	}

	return webhook.New(&http.Client{Timeout: cfg.Notifier.Timeout}, cfg.Notifier.WebhookURL)
}

func serveCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Starts API server and background workers",
		Run: func(cmd *cobra.Command, args []string) {
			ctx, _ := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

			stopMetrics := setupMeterProvider(ctx)

			strg, closeStrg := getPostgres(ctx, cfg)
			defer closeStrg()

			service := contact.New(strg, getNotifier(ctx, cfg), contact.NewOptions(cfg))

			riverClient, err := worker.Start(ctx, strg.Pool, service, cfg.Contact.Workers)
			if err != nil {
				logger.Fatal(ctx, "could not start workers", zap.Error(err))
			}

			stopWebserver := setupServer(ctx, cfg, service)

			// wait for interrupt
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.GracefulShutdownTimeout)
			defer cancel()

			stopWebserver(shutdownCtx)

			logger.Info(shutdownCtx, "stopping workers...")
			if err := riverClient.Stop(shutdownCtx); err != nil {
				logger.Error(shutdownCtx, "could not stop workers", zap.Error(err))
			}

			stopMetrics(shutdownCtx)
		},
	}

	return cmd
}
