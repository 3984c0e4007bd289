package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"custodios_crm/internal/adapters"
	"custodios_crm/internal/calls"
	"custodios_crm/internal/events"
	leadrepo "custodios_crm/internal/leads/repository"
	leadservice "custodios_crm/internal/leads/service"
	prospectservice "custodios_crm/internal/prospects/service"
	"custodios_crm/internal/scheduler"
	"custodios_crm/platform/cache"
	"custodios_crm/platform/config"
	"custodios_crm/platform/db"
	"custodios_crm/platform/logger"

	"github.com/jackc/pgx/v5/pgxpool"
)

const cacheKeyPrefix = "custodios:"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting worker", "env", cfg.Env, "queue", cfg.GetAsynqQueueName())

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

	eventBus := events.NewInMemoryBus(log)
	defer eventBus.Wait()

	// The worker only ever runs with redis, so the worklist cache the API reads
	// is invalidated here as outcomes land.
	store, err := cache.NewRedisStore(cfg.GetRedisURL(), cacheKeyPrefix)
	if err != nil {
		log.Error("failed to initialize redis cache", "error", err)
		panic("failed to initialize redis cache: " + err.Error())
	}
	defer func() { _ = store.Close() }()
	prospectservice.NewCacheInvalidator(store, log).RegisterHandlers(eventBus)

	// Worker-side call outcome wiring (no HTTP handlers required).
	leadSvc := leadservice.New(leadrepo.New(pool), eventBus, log)
	callSvc := calls.NewService(pool, adapters.NewLeadCallDirectory(leadSvc), cfg, eventBus, log)

	worker, err := scheduler.NewWorker(cfg, callSvc, log)
	if err != nil {
		log.Error("failed to initialize scheduler worker", "error", err)
		panic("failed to initialize scheduler worker: " + err.Error())
	}

	worker.Run(ctx)
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
