package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/jonathan/cv-generator/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  `Start an HTTP server that exposes the generation endpoints, the template catalog, health and Prometheus metrics.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides server.port)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	rt, err := newRuntime(ctx, true)
	if err != nil {
		return err
	}
	defer rt.Close()

	cfg := rt.cfg
	if servePort > 0 {
		cfg.Server.Port = servePort
	}

	deps := server.Deps{
		Generator: rt.gen,
		Metrics:   rt.metrics,
		Logger:    rt.logger,
		Checks:    map[string]server.HealthCheck{},
		PDFState:  rt.pool.BreakerState,
	}
	if rt.cache != nil {
		deps.Checks["redis"] = rt.cache.Ping
	}
	if rt.db != nil {
		deps.Profiles = rt.db
		deps.Checks["database"] = rt.db.Ping
	}

	srv := server.New(server.Config{
		Addr:         cfg.Addr(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}, deps)
	return srv.Start()
}
