package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"renoquote_backend/internal/analysis"
	"renoquote_backend/internal/email"
	"renoquote_backend/internal/estimation"
	"renoquote_backend/internal/events"
	"renoquote_backend/internal/notification"
	"renoquote_backend/internal/pricing"
	"renoquote_backend/internal/quotes"
	"renoquote_backend/internal/scheduler"
	"renoquote_backend/platform/config"
	"renoquote_backend/platform/db"
	"renoquote_backend/platform/logger"
	"renoquote_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
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

	eventBus := events.NewInMemoryBus(log)
	val := validator.New()

	priceCatalog := loadCatalog(cfg, log)
	estimationModule := estimation.NewModule(priceCatalog, log, val)
	quotesModule := quotes.NewModule(pool, eventBus, log, val, cfg.GetAppBaseURL())

	schedulerClient, err := scheduler.NewClient(cfg)
	if err != nil {
		log.Error("failed to initialize scheduler client", "error", err)
		panic("failed to initialize scheduler client: " + err.Error())
	}
	defer schedulerClient.Close()

	// Photo upload URLs are only issued by the API binary; the worker
	// never talks to MinIO, so no storage service is wired here.
	analysisModule := analysis.NewModule(
		pool,
		quotesModule.Service(),
		estimationModule.Consolidator(),
		schedulerClient,
		nil,
		"",
		eventBus,
		log,
		val,
		cfg,
	)

	// Emails for events published from worker-side job completion
	notification.NewModule(eventBus, newEmailSender(cfg, log), quotesModule.Service(), log, cfg)

	worker, err := scheduler.NewWorker(cfg, analysisModule.Service(), log)
	if err != nil {
		log.Error("failed to initialize worker", "error", err)
		panic("failed to initialize worker: " + err.Error())
	}

	worker.Run(ctx)
	log.Info("worker stopped")
}

func loadCatalog(cfg config.CatalogConfig, log *logger.Logger) *pricing.Catalog {
	path := cfg.GetCatalogOverridesPath()
	if path == "" {
		return pricing.Default()
	}
	cat, err := pricing.Load(path)
	if err != nil {
		log.Error("failed to load catalog overrides", "path", path, "error", err)
		panic("failed to load catalog overrides: " + err.Error())
	}
	log.Info("catalog overrides loaded", "path", path)
	return cat
}

func newEmailSender(cfg *config.Config, log *logger.Logger) email.Sender {
	if !cfg.GetEmailEnabled() {
		log.Warn("email delivery disabled; using noop sender")
		return email.NoopSender{}
	}
	return email.NewSMTPSender(
		cfg.GetSMTPHost(),
		cfg.GetSMTPPort(),
		cfg.GetSMTPUsername(),
		cfg.GetSMTPPassword(),
		cfg.GetEmailFromAddress(),
		cfg.GetEmailFromName(),
	)
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
	return fmt.Errorf("%s: %w", name, lastErr)
}
