package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mangareader/database"
	"mangareader/internal/cache"
	"mangareader/internal/config"
	"mangareader/internal/job"
	"mangareader/internal/logger"
	httpapi "mangareader/internal/microservices/http-api"
)

const limiterCleanupSchedule = "@every 5m"

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.ValidateAPI(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	appLogger := logger.New(cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(appLogger)

	if err := run(cfg, appLogger); err != nil {
		appLogger.Error("api_server_failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	db, err := database.Connect(cfg, logger)
	if err != nil {
		return err
	}
	defer database.Close(db)

	var mangaCache cache.MangaCache = cache.NopMangaCache{}
	if cfg.RedisURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		client, err := cache.NewRedisClient(ctx, cfg.RedisURL, cfg.RedisPassword)
		cancel()
		if err != nil {
			// the API still works from the database alone
			logger.Warn("redis_unavailable", "error", err)
		} else {
			defer client.Close()
			mangaCache = cache.NewRedisMangaCache(client, cfg.CacheDuration())
			logger.Info("redis_cache_enabled", "ttl", cfg.CacheDuration())
		}
	}

	svcs := httpapi.NewServices(db, cfg, mangaCache, logger)
	router, limiter := httpapi.NewRouter(cfg, svcs, logger)

	scheduler, err := job.NewScheduler(job.Schedules{
		TokenPurge:     cfg.TokenPurgeSchedule,
		Reconcile:      cfg.ReconcileSchedule,
		LimiterCleanup: limiterCleanupSchedule,
	}, svcs.Maintenance, limiter, logger)
	if err != nil {
		return err
	}
	scheduler.Start()
	defer func() { <-scheduler.Stop().Done() }()

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		logger.Info("api_server_listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case <-sigChan:
		logger.Info("received_shutdown_signal")
	case err := <-errChan:
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	logger.Info("server_stopped_gracefully")
	return nil
}
