// Package main provides the entry point for the paper catalog service.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/scholarstack/paper-catalog-service/internal/browse"
	"github.com/scholarstack/paper-catalog-service/internal/catalog"
	"github.com/scholarstack/paper-catalog-service/internal/config"
	"github.com/scholarstack/paper-catalog-service/internal/dataset"
	"github.com/scholarstack/paper-catalog-service/internal/latex"
	"github.com/scholarstack/paper-catalog-service/internal/observability"
	httpserver "github.com/scholarstack/paper-catalog-service/internal/server/http"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Best-effort .env for local development; real deployments use the
	// environment directly.
	_ = godotenv.Load()

	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// Set up structured logging.
	logger := observability.NewLogger(observability.LoggingConfig{
		Level:      cfg.Logging.Level,
		Format:     cfg.Logging.Format,
		Output:     cfg.Logging.Output,
		AddSource:  cfg.Logging.AddSource,
		TimeFormat: cfg.Logging.TimeFormat,
	})
	logger = logger.With().Str("component", "server").Logger()
	logger.Info().Msg("paper-catalog-service starting")

	// Set up context with graceful shutdown via OS signals.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var metrics *observability.Metrics
	if cfg.Metrics.Enabled {
		metrics = observability.NewMetrics("paper_catalog")
	}

	// Load the dataset documents once at startup. Failed sources contribute
	// zero records; an entirely empty catalog still serves.
	fetcher := dataset.NewFetcher(dataset.FetcherConfig{
		Timeout:    cfg.Dataset.Timeout,
		RateLimit:  cfg.Dataset.RateLimit,
		BurstSize:  cfg.Dataset.BurstSize,
		MaxRetries: cfg.Dataset.MaxRetries,
		RetryDelay: cfg.Dataset.RetryDelay,
		UserAgent:  cfg.Dataset.UserAgent,
	})
	loader := dataset.NewLoader(fetcher, cfg.Dataset.Sources, logger, metrics)
	loaded := loader.Load(ctx)

	cat := catalog.New(loaded.Papers, cfg.Catalog.TagCap)
	logger.Info().
		Int("papers", cat.Len()).
		Int("sources_loaded", loaded.SourcesLoaded).
		Int("sources_failed", loaded.SourcesFailed).
		Msg("catalog built")

	// Session store with its idle sweeper.
	sessions := browse.NewStore(cat, browse.StoreConfig{
		PageSize:      cfg.Catalog.DefaultPageSize,
		TTL:           cfg.Sessions.TTL,
		SweepInterval: cfg.Sessions.SweepInterval,
	}, logger, metrics)
	go sessions.Sweep(ctx)

	renderer := latex.NewTextRenderer(latex.Markup{}, logger, metrics)

	httpCfg := httpserver.Config{
		Address:         cfg.Server.HTTPAddress(),
		ReadTimeout:     cfg.Server.ReadTimeout,
		WriteTimeout:    cfg.Server.WriteTimeout,
		IdleTimeout:     2 * time.Minute,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	}

	httpSrv := httpserver.NewServer(
		httpCfg,
		cat,
		sessions,
		renderer,
		httpserver.Limits{
			DefaultPageSize: cfg.Catalog.DefaultPageSize,
			MaxPageSize:     cfg.Catalog.MaxPageSize,
			SuggestionLimit: cfg.Catalog.SuggestionLimit,
		},
		metrics,
		logger,
	)
	httpSrv.SetReady()

	// Set up Prometheus metrics handler on a separate port if configured.
	var metricsServer *http.Server
	if cfg.Metrics.Enabled {
		metricsMux := http.NewServeMux()
		metricsMux.Handle(cfg.Metrics.Path, promhttp.Handler())
		metricsServer = &http.Server{
			Addr:         cfg.Server.MetricsAddress(),
			Handler:      metricsMux,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
		}
	}

	// Channel to collect server errors.
	errCh := make(chan error, 2)

	// Start HTTP API server in background.
	go func() {
		if err := httpSrv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// Start metrics server if configured.
	if metricsServer != nil {
		go func() {
			logger.Info().
				Str("address", metricsServer.Addr).
				Msg("metrics server starting")
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- fmt.Errorf("metrics server error: %w", err)
			}
		}()
	}

	readyLog := logger.Info().Str("http_address", httpCfg.Address)
	if metricsServer != nil {
		readyLog = readyLog.Str("metrics_address", metricsServer.Addr)
	}
	readyLog.Msg("paper-catalog-service is ready")

	// Wait for shutdown signal or server error.
	select {
	case <-ctx.Done():
		logger.Info().Msg("received shutdown signal")
	case err := <-errCh:
		logger.Error().Err(err).Msg("server error")
		return err
	}

	// Graceful shutdown.
	logger.Info().Msg("shutting down paper-catalog-service")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("HTTP server shutdown error")
	}

	if metricsServer != nil {
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("metrics server shutdown error")
		}
	}

	logger.Info().Msg("paper-catalog-service shutdown complete")
	return nil
}
