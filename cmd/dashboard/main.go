package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"dashboard/internal/adapter/binance"
	adapthttp "dashboard/internal/adapter/http"
	"dashboard/internal/adapter/memory"
	"dashboard/internal/adapter/postgres"
	"dashboard/internal/adapter/redis"
	"dashboard/internal/app"
	"dashboard/internal/config"
	"dashboard/internal/domain"
	"dashboard/internal/logging"
	"dashboard/internal/metrics"
)

// store is what every backend provides.
type store interface {
	domain.EventRepository
	domain.MeasurementRepository
	io.Closer
}

type memoryStore struct{ *memory.DB }

func (memoryStore) Close() error { return nil }

func main() {
	cfg := config.Load()

	level, _ := config.ParseLevel(cfg.LogLevel)
	logger := logging.New(os.Stdout, level, cfg.LogFormat)
	slog.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		logger.Error("configuration validation failed", "error", err)
		os.Exit(1)
	}

	if err := run(cfg, logger); err != nil {
		logger.Error("dashboard stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()
	logger.Info("store ready", "backend", cfg.StoreBackend)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	clock := app.RealClock{}
	age, err := app.NewAgeService(cfg.BirthDate, cfg.ChildLabel, clock)
	if err != nil {
		return err
	}
	measurements := app.NewMeasurementService(st, clock)
	prices := app.NewPriceService(
		binance.New(cfg.BinanceBaseURL, cfg.HTTPTimeout),
		cfg.PriceFeeds(),
		cfg.PricePollInterval,
		app.WithPriceClock(clock),
		app.WithPriceLogger(logging.Component(logger, "prices")),
		app.WithQuoteObserver(m),
	)
	if err := prices.Start(ctx); err != nil {
		return fmt.Errorf("start price polling: %w", err)
	}
	defer prices.Stop()

	srv := adapthttp.New(adapthttp.Services{
		Age:          age,
		Events:       app.NewEventService(st, clock),
		Measurements: measurements,
		Growth:       app.NewGrowthService(measurements),
		Prices:       prices,
	}, cfg.WebDir,
		adapthttp.WithLogger(logging.Component(logger, "http")),
		adapthttp.WithMetrics(m, reg),
		adapthttp.WithClock(clock),
	)

	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	logger.Info("dashboard shutdown complete")
	return nil
}

func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (store, error) {
	switch cfg.StoreBackend {
	case config.BackendRedis:
		s, err := redis.Open(ctx, cfg.RedisURL, logging.Component(logger, "redis"))
		if err != nil {
			return nil, fmt.Errorf("redis open: %w", err)
		}
		return s, nil
	case config.BackendPostgres:
		db, err := postgres.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("db open: %w", err)
		}
		return db, nil
	default:
		return memoryStore{memory.New()}, nil
	}
}
