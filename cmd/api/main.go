package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"estatehub_backend/internal/activity"
	"estatehub_backend/internal/agents"
	"estatehub_backend/internal/auth"
	"estatehub_backend/internal/email"
	"estatehub_backend/internal/events"
	apphttp "estatehub_backend/internal/http"
	"estatehub_backend/internal/http/router"
	"estatehub_backend/internal/inspections"
	inspectionrepo "estatehub_backend/internal/inspections/repository"
	inspectionsvc "estatehub_backend/internal/inspections/service"
	"estatehub_backend/internal/notification"
	"estatehub_backend/internal/payments"
	"estatehub_backend/internal/scheduler"
	"estatehub_backend/internal/storage"
	"estatehub_backend/platform/config"
	"estatehub_backend/platform/db"
	"estatehub_backend/platform/logger"
	"estatehub_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
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

	reminderScheduler, closeScheduler := initReminderScheduler(cfg, log)
	if closeScheduler != nil {
		defer closeScheduler()
	}

	sender, err := email.NewSender(cfg, log)
	if err != nil {
		log.Error("failed to initialize email sender", "error", err)
		panic("failed to initialize email sender: " + err.Error())
	}

	// Object storage for LOI documents and report photos. Optional; the
	// upload endpoints reject requests when it is absent.
	var store inspectionsvc.ObjectStore
	if cfg.IsMinIOEnabled() {
		storageSvc, err := storage.NewService(cfg)
		if err != nil {
			log.Error("failed to initialize storage service", "error", err)
			panic("failed to initialize storage service: " + err.Error())
		}
		if err := withRetry(ctx, log, "ensure storage buckets", 5, 2*time.Second, func() error {
			return storageSvc.EnsureBuckets(ctx)
		}); err != nil {
			log.Error("failed to ensure storage buckets exist", "error", err)
			panic("failed to ensure storage buckets exist: " + err.Error())
		}
		store = storageSvc
		log.Info("storage service initialized",
			"loiBucket", cfg.GetMinioBucketLOIDocuments(),
			"photosBucket", cfg.GetMinioBucketInspectionPhotos(),
		)
	} else {
		log.Warn("MinIO not configured; document and photo uploads disabled")
	}

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	authModule := auth.NewModule(pool, cfg, log)
	notificationModule := notification.NewModule(pool, log)
	agentsModule := agents.NewModule(pool, log)

	val := validator.New()
	activitySvc := activity.NewService(activity.NewRepository(pool), val, log)
	paymentsSvc := payments.NewService(
		payments.NewRepository(pool),
		newPaymentGateway(cfg, log),
		cfg,
		log,
	)

	inspectionsModule := inspections.NewModule(inspectionsvc.Deps{
		Repo:      inspectionrepo.New(pool),
		Mail:      sender,
		Notifier:  notificationModule.Service,
		Activity:  activitySvc,
		Payments:  paymentsSvc,
		Agents:    agentsModule.Service,
		Store:     store,
		Reminders: reminderScheduler,
		Bus:       eventBus,
		Cfg:       cfg,
		Log:       log,
	}, activitySvc)

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config:   cfg,
		Logger:   log,
		Health:   db.NewPoolAdapter(pool),
		EventBus: eventBus,
		Modules: []apphttp.Module{
			authModule,
			notificationModule,
			agentsModule,
			inspectionsModule,
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

// newPaymentGateway builds the Paystack client, wrapped in a Redis cache when
// Redis is configured so settled transactions are verified once.
func newPaymentGateway(cfg *config.Config, log *logger.Logger) payments.Gateway {
	gateway := payments.NewPaystackClient(cfg, log)
	if cfg.GetRedisURL() == "" {
		return gateway
	}

	opt, err := redis.ParseURL(cfg.GetRedisURL())
	if err != nil {
		log.Error("invalid REDIS_URL; payment status caching disabled", "error", err)
		return gateway
	}
	return payments.NewCachedGateway(gateway, redis.NewClient(opt), log)
}

func initReminderScheduler(cfg config.SchedulerConfig, log *logger.Logger) (scheduler.ReminderScheduler, func()) {
	if cfg.GetRedisURL() == "" {
		log.Warn("REDIS_URL not configured; inspection reminders disabled")
		return nil, nil
	}

	reminderClient, err := scheduler.NewClient(cfg)
	if err != nil {
		log.Error("failed to initialize reminder scheduler client", "error", err)
		return nil, nil
	}

	return reminderClient, func() {
		_ = reminderClient.Close()
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
