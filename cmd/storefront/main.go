package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"

	"github.com/tair/littleones/internal/cart/storage"
	"github.com/tair/littleones/internal/catalog/repository"
	"github.com/tair/littleones/internal/notify"
	"github.com/tair/littleones/internal/session"
	"github.com/tair/littleones/internal/storefront"
	"github.com/tair/littleones/kafka"
	"github.com/tair/littleones/pkg/config"
	"github.com/tair/littleones/pkg/database"
	"github.com/tair/littleones/pkg/logger"
	"github.com/tair/littleones/pkg/middleware"
	"github.com/tair/littleones/pkg/tracing"
)

const sessionIdle = 30 * time.Minute

func main() {
	cfg := config.Load()

	// Initialize logger
	logger.Init(cfg.ServiceName, cfg.IsDevelopment())
	logger.SetLevel(cfg.LogLevel)

	logger.Logger.Info().
		Str("service", cfg.ServiceName).
		Str("environment", cfg.Environment).
		Str("log_level", cfg.LogLevel).
		Str("storage", cfg.StorageBackend).
		Msg("Starting storefront service")

	// Initialize tracer
	if cfg.TracingEnabled {
		tp, err := tracing.InitTracer(cfg.ServiceName, cfg.JaegerEndpoint)
		if err != nil {
			logger.Logger.Error().Err(err).Msg("Failed to initialize tracer")
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := tracing.Shutdown(ctx, tp); err != nil {
					logger.Logger.Error().Err(err).Msg("Failed to shutdown tracer")
				}
			}()
		}
	}

	var (
		checks      []storefront.HealthCheck
		redisClient *redis.Client
	)

	// Redis backs the cart storage, the form rate limiter and the catalog cache when configured
	if cfg.StorageBackend == config.StorageRedis {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := redisClient.Ping(ctx).Err()
		cancel()
		if err != nil {
			logger.Logger.Fatal().Err(err).Str("addr", cfg.Redis.Addr).Msg("Failed to connect to Redis")
		}
		checks = append(checks, storefront.HealthCheck{
			Name:  "Redis",
			Check: func(ctx context.Context) error { return redisClient.Ping(ctx).Err() },
		})
		logger.Logger.Info().Str("addr", cfg.Redis.Addr).Msg("Connected to Redis")
	}

	var backend storage.Storage
	switch cfg.StorageBackend {
	case config.StorageRedis:
		backend = storage.NewRedis(redisClient, cfg.Redis.CartTTL)
	case config.StoragePostgres:
		db, err := database.NewGormConnection(cfg.Database)
		if err != nil {
			logger.Logger.Fatal().Err(err).Msg("Failed to connect to database")
		}
		sqlDB, err := db.DB()
		if err != nil {
			logger.Logger.Fatal().Err(err).Msg("Failed to get database instance")
		}
		defer sqlDB.Close()

		gormStorage := storage.NewGorm(db)
		if err := gormStorage.AutoMigrate(); err != nil {
			logger.Logger.Fatal().Err(err).Msg("Failed to run migrations")
		}
		checks = append(checks, storefront.HealthCheck{Name: "Database", Check: sqlDB.PingContext})
		backend = gormStorage
	default:
		backend = storage.NewMemory()
	}
	backend = storage.NewTracing(backend, cfg.StorageBackend)

	// Kafka is optional; without brokers events are dropped
	var publisher kafka.EventPublisher = kafka.Discard{}
	if len(cfg.KafkaBrokers) > 0 {
		p, err := kafka.NewPublisher(cfg.KafkaBrokers)
		if err != nil {
			logger.Logger.Error().Err(err).Msg("Failed to create Kafka publisher, events will be dropped")
		} else {
			defer p.Close()
			publisher = kafka.NewBreaker(p, 5, 30*time.Second)
		}
	}

	catalog, err := repository.NewSeedCatalog()
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to load catalog")
	}

	recorder := notify.NewRecorder(notify.DefaultRecorderLimit)
	notifier := notify.Multi{recorder, notify.Logger{}, kafka.NewNotifier(publisher)}

	sessions := session.NewManager(session.Options{
		Storage:  backend,
		Notifier: notifier,
		Tokens:   session.NewTokens(cfg.SessionSecret, cfg.SessionTTL),
		OnEvict:  recorder.Forget,
	})

	router, err := storefront.InitializeRouter(&storefront.Dependencies{
		Catalog:   catalog,
		Sessions:  sessions,
		Recorder:  recorder,
		Notifier:  notifier,
		Publisher: publisher,
		Limiter:   middleware.NewRateLimiter(redisClient, "forms", cfg.FormRateLimit, cfg.FormRateWindow),
		Cache:     middleware.NewResponseCache(redisClient, cfg.CatalogCacheTTL),
		Delays: storefront.Delays{
			Checkout:   cfg.CheckoutDelay,
			Contact:    cfg.ContactDelay,
			Newsletter: cfg.NewsletterDelay,
		},
		Checks: checks,
		Middleware: middleware.Config{
			EnableLogging: true,
			EnableTracing: cfg.TracingEnabled,
		},
	})
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize router")
	}

	// CORS middleware
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{session.Header},
		AllowCredentials: true,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           c.Handler(router),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go evictIdleSessions(ctx, sessions)

	go func() {
		logger.Logger.Info().
			Str("port", cfg.HTTPPort).
			Str("metrics_endpoint", "/metrics").
			Msg("HTTP server started")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Logger.Fatal().Err(err).Msg("Failed to start HTTP server")
		}
	}()

	<-ctx.Done()
	logger.Logger.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Logger.Error().Err(err).Msg("Server shutdown failed")
	}
}

// evictIdleSessions drops idle in-memory sessions until ctx is done
func evictIdleSessions(ctx context.Context, sessions *session.Manager) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := sessions.Evict(sessionIdle); n > 0 {
				logger.Logger.Debug().Int("evicted", n).Int("active", sessions.Len()).Msg("Idle sessions evicted")
			}
		}
	}
}
