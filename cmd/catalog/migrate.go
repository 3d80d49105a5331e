package main

import (
	"github.com/go-faster/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"MySupplements/internal/config"
	"MySupplements/internal/migrations"
	"MySupplements/pkg/kit"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the products table and seed rows in --database-url",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load(cmd.Flags())
		if err != nil {
			return err
		}
		if cfg.DatabaseURL == "" {
			return errors.New("--database-url (or CATALOG_DATABASE_URL) is required")
		}

		log, err := kit.NewLogger(service, cfg.LogLevel)
		if err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()

		changed, err := migrations.Up(cfg.DatabaseURL, log)
		if err != nil {
			return err
		}
		if !changed {
			log.Info("no migrations to apply")
			return nil
		}
		log.Info("migrations applied", zap.String("driver", "pgx5"))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
