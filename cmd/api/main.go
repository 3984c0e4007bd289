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

	"custodios_crm/internal/adapters"
	"custodios_crm/internal/calls"
	"custodios_crm/internal/dashboard"
	"custodios_crm/internal/events"
	apphttp "custodios_crm/internal/http"
	"custodios_crm/internal/http/router"
	"custodios_crm/internal/leads"
	"custodios_crm/internal/prospects"
	"custodios_crm/internal/scheduler"
	"custodios_crm/internal/validation"
	"custodios_crm/platform/cache"
	"custodios_crm/platform/config"
	"custodios_crm/platform/db"
	"custodios_crm/platform/logger"
	"custodios_crm/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

const cacheKeyPrefix = "custodios:"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize structured logger
	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	if err := withRetry(ctx, log, "database migrations", 5, 2*time.Second, func() error {
		return db.RunMigrations(ctx, cfg)
	}); err != nil {
		log.Error("failed to run database migrations", "error", err)
		panic("failed to run database migrations: " + err.Error())
	}
	log.Info("database migrations complete")

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
	log.Info("database connection established")

	// Event bus for decoupled communication between modules
	eventBus := events.NewInMemoryBus(log)

	store, closeStore := initCacheStore(cfg, log)
	defer closeStore()

	outcomeQueue, closeQueue := initOutcomeQueue(cfg, log)
	if closeQueue != nil {
		defer closeQueue()
	}

	// Shared validator instance for dependency injection
	val := validator.New()

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	leadsModule := leads.NewModule(pool, eventBus, val, log)
	validationModule := validation.NewModule(pool, eventBus, val, log)

	prospectValidator := adapters.NewProspectLeadValidator(leadsModule.Service())
	prospectsModule := prospects.NewModule(pool, prospectValidator, store, cfg.GetProspectCacheTTL(), eventBus, val, log)

	leadDirectory := adapters.NewLeadCallDirectory(leadsModule.Service())
	callsModule := calls.NewModule(pool, leadDirectory, outcomeQueue, cfg, eventBus, val, log)

	dashboardModule := dashboard.NewModule(pool, validationModule.Repository(), log)

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config:   cfg,
		Logger:   log,
		Health:   db.NewPoolAdapter(pool),
		EventBus: eventBus,
		Modules: []apphttp.Module{
			leadsModule,
			prospectsModule,
			validationModule,
			callsModule,
			dashboardModule,
		},
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router.New(app),
		ReadHeaderTimeout: 10 * time.Second,
	}

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			srvErr <- err
		}
		close(srvErr)
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("server shutdown failed", "error", err)
		}
		eventBus.Wait()
	case err := <-srvErr:
		if err != nil {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

// initCacheStore uses redis when configured so the API and the worker share
// invalidations, and an in-process store otherwise.
func initCacheStore(cfg config.CacheConfig, log *logger.Logger) (cache.Store, func()) {
	if cfg.GetRedisURL() == "" {
		log.Warn("REDIS_URL not configured; using in-memory prospect cache")
		return cache.NewMemoryStore(), func() {}
	}

	store, err := cache.NewRedisStore(cfg.GetRedisURL(), cacheKeyPrefix)
	if err != nil {
		log.Error("failed to initialize redis cache, falling back to memory", "error", err)
		return cache.NewMemoryStore(), func() {}
	}

	return store, func() {
		_ = store.Close()
	}
}

func initOutcomeQueue(cfg config.SchedulerConfig, log *logger.Logger) (scheduler.CallOutcomeEnqueuer, func()) {
	if cfg.GetRedisURL() == "" {
		log.Warn("REDIS_URL not configured; call outcomes are stored inline")
		return nil, nil
	}

	client, err := scheduler.NewClient(cfg)
	if err != nil {
		log.Error("failed to initialize scheduler client", "error", err)
		return nil, nil
	}

	return client, func() {
		_ = client.Close()
	}
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return fmt.Errorf("%s: invalid retry attempts", name)
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
