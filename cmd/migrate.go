package main

import (
	"context"
	root "sitecontact"
	"sitecontact/internal/config"
	"sitecontact/pkg/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// migrateCommand constructs the 'migrate' subcommand. It creates the
// contact_messages table and River's job tables used by the notify worker.
func migrateCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Creates or upgrades the contact message and job queue tables",
		Run: func(cmd *cobra.Command, args []string) {
			ctx := context.Background()

			strg, closeStrg := getPostgres(ctx, cfg)
			defer closeStrg()

			versions, err := strg.Migrate(ctx, root.Migrations)
			if err != nil {
				logger.Fatal(ctx, "could not migrate database", zap.Error(err))
			}

			logger.Info(ctx, "database migrated",
				zap.Int64("contactSchemaVersion", versions.Contact),
				zap.Int("riverVersion", versions.River),
				zap.Ints("riverApplied", versions.RiverApplied),
			)
		},
	}

	return cmd
}
