package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/DjordjeVuckovic/elastictea/internal/metrics"
	"github.com/DjordjeVuckovic/elastictea/internal/recipe"
	"github.com/DjordjeVuckovic/elastictea/internal/server"
	"github.com/DjordjeVuckovic/elastictea/pkg/brew"
	"github.com/DjordjeVuckovic/elastictea/pkg/elastictea"
	"github.com/DjordjeVuckovic/elastictea/pkg/es"
	pkgserver "github.com/DjordjeVuckovic/elastictea/pkg/server"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	cfg, err := LoadConfig()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		slog.Error("brew failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *AppConfig, logger *slog.Logger) error {
	r, err := recipe.LoadFile(cfg.RecipePath)
	if err != nil {
		return err
	}

	client, err := es.NewClient(*cfg.ES)
	if err != nil {
		return err
	}
	if err := client.Ping(ctx); err != nil {
		return err
	}
	slog.Info("Connected to Elasticsearch", "addresses", client.Addresses())

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	connectorMetrics := metrics.NewConnector(reg)
	brewMetrics := metrics.NewBrew(reg)

	status := server.NewStatus(r.Name)
	serverCtx, stopServer := context.WithCancel(ctx)
	defer stopServer()

	if cfg.Status.Enabled() {
		srv := server.NewServer(cfg.Status, pkgserver.NewClusterHealthChecker(client, 2*time.Second), status, reg)
		go func() {
			if err := srv.Start(serverCtx); err != nil {
				slog.Error("status server stopped", "error", err)
			}
		}()
	}

	pot, err := buildPot(ctx, client, r,
		elastictea.WithLogger(logger),
		elastictea.WithRecorder(connectorMetrics))
	if err != nil {
		return err
	}

	if cfg.Progress {
		if bar := withProgress(ctx, client, r, pot); bar != nil {
			defer bar.Finish()
		}
	}

	slog.Info("Brewing recipe",
		"recipe", r.Name,
		"fills", len(r.Fills),
		"pours", len(r.Pours),
		"workers", cfg.Workers)

	status.Start()
	stats, err := pot.Brew(ctx, brew.NewBrewery(cfg.Workers, brew.WithBreweryLogger(logger)))

	var batches, records int64
	if stats != nil {
		batches, records = stats.Batches, stats.Records
	}
	status.Finish(batches, records, err)
	brewMetrics.Finished(r.Name, batches, records, err)

	if err != nil {
		return err
	}

	slog.Info("Recipe brewed",
		"recipe", r.Name,
		"batches", stats.Batches,
		"records", stats.Records,
		"dropped", stats.Dropped,
		"duration", stats.Duration)
	return nil
}
