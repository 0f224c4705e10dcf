package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"leadsync_backend/internal/leads/cache"
	leadrepo "leadsync_backend/internal/leads/repository"
	leadservice "leadsync_backend/internal/leads/service"
	"leadsync_backend/internal/leadsync"
	"leadsync_backend/internal/leadsync/directory"
	"leadsync_backend/platform/config"
	"leadsync_backend/platform/db"
	"leadsync_backend/platform/logger"
	"leadsync_backend/platform/redisconn"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting worker", "env", cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var pool *pgxpool.Pool
	if err := withRetry(ctx, log, "database connection", 5, 2*time.Second, func() error {
		p, err := db.NewPool(ctx, cfg)
		if err != nil {
			return err
		}
		pool = p
		return nil
	}); err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()

	redisClient, err := redisconn.NewClient(cfg)
	if err != nil {
		log.Error("failed to create redis client", "error", err)
		panic("failed to create redis client: " + err.Error())
	}
	defer func() { _ = redisClient.Close() }()

	queueClient, err := leadsync.NewClient(cfg)
	if err != nil {
		log.Error("failed to create queue client", "error", err)
		panic("failed to create queue client: " + err.Error())
	}
	defer func() { _ = queueClient.Close() }()

	leadCache := cache.New(redisClient, cfg.GetCacheTTL(), log)
	leadSvc := leadservice.New(leadrepo.New(pool), leadCache, log)
	syncSvc := leadsync.NewService(directory.New(cfg, log), leadSvc, log)

	worker, err := leadsync.NewWorker(cfg, syncSvc, log)
	if err != nil {
		log.Error("failed to initialize worker", "error", err)
		panic("failed to initialize worker: " + err.Error())
	}

	dispatcher := leadsync.NewDispatcher(queueClient, cfg.GetSyncInterval(), cfg.GetSyncDefaultCount(), log)

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		return worker.Run(groupCtx)
	})
	group.Go(func() error {
		dispatcher.Run(groupCtx)
		return nil
	})

	if err := group.Wait(); err != nil {
		log.Error("worker stopped", "error", err)
		os.Exit(1)
	}
	log.Info("worker stopped")
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return errors.New(name + ": invalid retry attempts")
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return errors.New(name + ": " + lastErr.Error())
}
