package main

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"MySupplements/internal/catalog"
	"MySupplements/internal/config"
	"MySupplements/pkg/kit"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Load the catalog and serve the HTTP API",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runServe(cmd)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command) error {
	ctx := cmd.Context()

	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return err
	}

	log, err := kit.NewLogger(service, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	store, src, err := loadStore(ctx, cfg)
	if err != nil {
		log.Fatal("catalog load failed", zap.Error(err), zap.String("source", cfg.DatasetSource()))
	}
	log.Info("catalog loaded", zap.String("source", src.Name()), zap.Int("records", store.Len()))

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	s := &catalog.Server{Store: store, Log: log}
	h := catalog.NewHandler(s, catalog.HTTPDeps{
		Log:             log,
		Service:         service,
		Registry:        reg,
		MetricsEnabled:  cfg.Metrics.Enabled,
		MetricsToken:    cfg.Metrics.Token,
		SearchPerMinute: cfg.RateLimit.SearchPerMinute,
	})

	s.SetReady(true)
	go func() {
		<-ctx.Done()
		s.SetReady(false)
	}()

	if err := kit.RunHTTPServer(ctx, cfg.HTTPAddr, h, log, cfg.ShutdownTimeout); err != nil {
		log.Error("http server stopped", zap.Error(err))
		return err
	}
	return nil
}
