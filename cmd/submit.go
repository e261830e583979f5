package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sitecontact/internal/config"
	"sitecontact/pkg/contactform"
	"sitecontact/pkg/domain"
	"sitecontact/pkg/logger"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// errSubmitFailed makes the command exit non-zero after the failure status
// was already printed.
var errSubmitFailed = errors.New("submission failed")

// submitCommand constructs the 'submit' subcommand that fills the contact
// form from flags and submits it, printing each status line to stdout.
func submitCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "submit",
		Short:         "Submits the contact form to the configured site",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if cfg.Client.Timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, cfg.Client.Timeout)
				defer cancel()
			}

			baseURL, _ := cmd.Flags().GetString("url")
			if baseURL == "" {
				baseURL = cfg.Client.BaseURL
			}

			var req domain.ContactRequest
			req.Name, _ = cmd.Flags().GetString("name")
			req.Email, _ = cmd.Flags().GetString("email")
			req.Subject, _ = cmd.Flags().GetString("subject")
			req.Message, _ = cmd.Flags().GetString("message")

			fields := contactform.NewFormValues(req)
			status := &contactform.WriterStatus{W: os.Stdout}
			h := contactform.NewHandler(contactform.New(http.DefaultClient, baseURL), fields, status)

			outcome, err := h.Submit(ctx)
			if err != nil {
				logger.Error(ctx, "could not submit contact form", zap.Error(err))

				return err //nolint: wrapcheck
			}
			if _, ok := outcome.(contactform.Failure); ok {
				return errSubmitFailed
			}

			return nil
		},
	}

	cmd.Flags().String("url", "", "Site base URL (defaults to client.baseURL from the config)")
	cmd.Flags().String("name", "", "Your name")
	cmd.Flags().String("email", "", "Your email")
	cmd.Flags().String("subject", "", "Subject")
	cmd.Flags().String("message", "", "Message")

	return cmd
}
