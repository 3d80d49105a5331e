package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"MySupplements/internal/catalog"
	"MySupplements/internal/config"
	"MySupplements/pkg/kit"
)

const service = "catalog"

var rootCmd = &cobra.Command{
	Use:           service,
	Short:         "MySupplements read-only product catalog",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runServe(cmd)
	},
}

func init() {
	config.RegisterFlags(rootCmd.PersistentFlags())
}

func main() {
	ctx, stop := kit.SignalContext(context.Background())
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		rootCmd.PrintErrln("error:", err)
		stop()
		os.Exit(1)
	}
}

// openSource picks the dataset source: postgres, then a dataset file, then
// the built-in records.
func openSource(ctx context.Context, cfg config.Config) (catalog.Source, func(), error) {
	switch {
	case cfg.DatabaseURL != "":
		db, err := catalog.OpenPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return catalog.NewPostgresSource(db), func() { _ = db.Close() }, nil
	case cfg.DatasetFile != "":
		return catalog.NewFileSource(cfg.DatasetFile), func() {}, nil
	default:
		return catalog.SeedSource{}, func() {}, nil
	}
}

func loadStore(ctx context.Context, cfg config.Config) (*catalog.Store, catalog.Source, error) {
	src, closeSrc, err := openSource(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	defer closeSrc()

	store, err := catalog.LoadStore(ctx, src)
	if err != nil {
		return nil, nil, err
	}
	return store, src, nil
}
