package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"renoquote_backend/internal/adapters/storage"
	"renoquote_backend/internal/analysis"
	"renoquote_backend/internal/catalog"
	"renoquote_backend/internal/email"
	"renoquote_backend/internal/estimation"
	"renoquote_backend/internal/events"
	apphttp "renoquote_backend/internal/http"
	"renoquote_backend/internal/http/router"
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
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	if err := withRetry(ctx, log, "database migrations", 5, 2*time.Second, func() error {
		return db.RunMigrations(ctx, cfg, "migrations")
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

	// Pricing catalog, optionally merged with overrides from disk
	priceCatalog := loadCatalog(cfg, log)

	sender := newEmailSender(cfg, log)

	// Shared validator instance for dependency injection
	val := validator.New()

	// Storage service for photo uploads (MinIO)
	var photoStorage storage.PhotoStorage
	if cfg.IsMinIOEnabled() {
		storageSvc, err := storage.NewMinIOService(cfg)
		if err != nil {
			log.Error("failed to initialize storage service", "error", err)
			panic("failed to initialize storage service: " + err.Error())
		}
		bucket := cfg.GetMinioBucketQuotePhotos()
		if err := withRetry(ctx, log, "ensure quote-photos bucket", 5, 2*time.Second, func() error {
			return storageSvc.EnsureBucketExists(ctx, bucket)
		}); err != nil {
			log.Error("failed to ensure storage bucket exists", "error", err, "bucket", bucket)
			panic("failed to ensure storage bucket exists: " + err.Error())
		}
		photoStorage = storageSvc
		log.Info("storage service initialized", "quotePhotosBucket", bucket)
	} else {
		log.Warn("MinIO not configured; photo uploads disabled")
	}

	// Background job client for photo analysis. A nil client is safe: it
	// rejects enqueues, so analysis jobs fail fast when Redis is missing.
	var schedulerClient *scheduler.Client
	if cfg.GetRedisURL() == "" {
		log.Warn("REDIS_URL not configured; photo analysis disabled")
	} else {
		schedulerClient, err = scheduler.NewClient(cfg)
		if err != nil {
			log.Error("failed to initialize scheduler client", "error", err)
			panic("failed to initialize scheduler client: " + err.Error())
		}
	}
	defer schedulerClient.Close()

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	catalogModule := catalog.NewModule(priceCatalog)
	estimationModule := estimation.NewModule(priceCatalog, log, val)
	quotesModule := quotes.NewModule(pool, eventBus, log, val, cfg.GetAppBaseURL())
	analysisModule := analysis.NewModule(
		pool,
		quotesModule.Service(),
		estimationModule.Consolidator(),
		schedulerClient,
		photoStorage,
		cfg.GetMinioBucketQuotePhotos(),
		eventBus,
		log,
		val,
		cfg,
	)

	// Notification module subscribes to domain events (no HTTP routes)
	notificationModule := notification.NewModule(eventBus, sender, quotesModule.Service(), log, cfg)

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config:   cfg,
		Logger:   log,
		Health:   db.NewPoolAdapter(pool),
		EventBus: eventBus,
		Modules: []apphttp.Module{
			catalogModule,
			estimationModule,
			quotesModule,
			analysisModule,
			notificationModule,
		},
	}

	engine := router.New(app)

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- engine.Run(cfg.HTTPAddr)
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
	case err := <-srvErr:
		if err != nil {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
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
