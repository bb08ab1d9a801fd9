package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aved-sa/aved-web/internal/backend"
	"github.com/aved-sa/aved-web/internal/cache"
	"github.com/aved-sa/aved-web/internal/config"
	"github.com/aved-sa/aved-web/internal/logging"
	"github.com/aved-sa/aved-web/internal/metrics"
	"github.com/aved-sa/aved-web/internal/server"
	"github.com/aved-sa/aved-web/internal/telemetry"
	"github.com/aved-sa/aved-web/internal/version"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	// Configure and get logger
	logConfig := logging.DefaultConfig(cfg.LogFile)
	logConfig.Level = cfg.LogLevel
	logConfig.Format = cfg.LogFormat
	logging.Configure(logConfig)
	logger := logging.GetLogger()
	defer logger.Close()

	logger.Info("Starting %s %s in %s mode", cfg.ServiceName, version.GetBuildInfo().Version, cfg.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Setup(ctx, telemetry.Config{
		ServiceName:    cfg.ServiceName,
		ServiceVersion: version.Version,
		Environment:    cfg.Environment,
		Endpoint:       cfg.OTLPEndpoint,
	})
	if err != nil {
		logger.Error("Failed to initialize tracing: %v", err)
		os.Exit(1)
	}

	store, err := newStore(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize cache: %v", err)
		os.Exit(1)
	}
	defer store.Close()

	m := metrics.New()
	client := backend.NewClient(cfg.BackendBaseURL, cfg.BackendTimeout,
		backend.WithLogger(logger),
		backend.WithMetrics(m),
	)

	srv, err := server.NewServer(cfg, server.Dependencies{
		Cache:   store,
		Backend: client,
		Metrics: m,
	})
	if err != nil {
		logger.Error("Failed to create server: %v", err)
		os.Exit(1)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("Failed to start server: %v", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		logger.Info("Shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed: %v", err)
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		logger.Warn("Tracer shutdown failed: %v", err)
	}
	logger.Info("Server stopped")
}

// newStore connects to Redis when REDIS_URL is set and falls back to the
// in-memory store otherwise.
func newStore(ctx context.Context, cfg *config.Config, logger *logging.Logger) (cache.Store, error) {
	if cfg.RedisURL == "" {
		logger.Info("REDIS_URL not set, using in-memory cache")
		return cache.NewMemoryStore(), nil
	}
	store, err := cache.NewRedisStore(ctx, cfg.RedisURL)
	if err != nil {
		return nil, err
	}
	logger.Info("Connected to Redis cache")
	return store, nil
}
