package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"orders-dashboard/internal/analytics"
	"orders-dashboard/internal/config"
	"orders-dashboard/internal/data"
	"orders-dashboard/internal/middleware"
	"orders-dashboard/internal/observability"
	"orders-dashboard/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.Logger)
	slog.SetDefault(logger)

	logger.Info("starting application",
		"version", "1.0.0",
		"config", cfg,
	)

	engine := analytics.NewEngine(logger)

	loader := data.NewLoader(cfg.Data.OrdersURL, cfg.Data.MetadataURL, cfg.Data.LoadTimeout, logger)
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Data.LoadTimeout)
	defer cancel()

	start := time.Now()
	dataset, err := loader.Load(ctx)
	if err != nil {
		// No partial-data mode: a failed load is terminal for the process.
		logger.Error("failed to load order dataset", "error", err)
		os.Exit(1)
	}
	engine.SetDataset(dataset.Records, dataset.Metadata)
	logger.Info("order dataset ready", "duration", time.Since(start))

	srv := server.NewServer(engine, logger)

	rateLimiter := middleware.NewRateLimiter(cfg.Security)

	middlewareChain := middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.Tracing(),
		middleware.SecurityHeaders(),
		middleware.CORS(cfg.Security),
		middleware.TrustedProxy(cfg.Security),
		middleware.RateLimit(rateLimiter, logger),
	)

	handler := middlewareChain(srv)

	httpServer := &http.Server{
		Addr:         cfg.Address(),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	gracefulServer := server.NewGracefulServer(httpServer, logger, cfg)

	gracefulServer.RegisterShutdownHook(func(ctx context.Context) error {
		logger.Info("shutting down analytics engine")
		return nil
	})

	logger.Info("starting graceful server")
	if err := gracefulServer.ListenAndServe(); err != nil {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}

	logger.Info("application stopped gracefully")
}
