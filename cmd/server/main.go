package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	httpAdapter "github.com/acmebank/account-manager/internal/adapter/http"
	"github.com/acmebank/account-manager/internal/adapter/http/handler"
	"github.com/acmebank/account-manager/internal/adapter/repository/memory"
	postgresRepo "github.com/acmebank/account-manager/internal/adapter/repository/postgres"
	redisRepo "github.com/acmebank/account-manager/internal/adapter/repository/redis"
	"github.com/acmebank/account-manager/internal/domain"
	"github.com/acmebank/account-manager/internal/events/kafka"
	"github.com/acmebank/account-manager/internal/infrastructure/config"
	"github.com/acmebank/account-manager/internal/infrastructure/metrics"
	"github.com/acmebank/account-manager/internal/infrastructure/postgres"
	"github.com/acmebank/account-manager/internal/infrastructure/redis"
	"github.com/acmebank/account-manager/internal/usecase"
)

func main() {
	// Setup logger
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Setup log level and format
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.LogFormat == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	ctx := context.Background()

	var (
		store usecase.LedgerStore
		pool  *pgxpool.Pool
	)

	switch cfg.StoreBackend {
	case "memory":
		memStore := memory.NewStore()
		memStore.Seed(
			&domain.Account{ID: 12345678, Balance: decimal.RequireFromString("1000000.00")},
			&domain.Account{ID: 88888888, Balance: decimal.RequireFromString("1000000.00")},
		)
		store = memStore
		log.Info().Msg("using in-memory ledger store")
	case "postgres":
		if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
			log.Fatal().Err(err).Msg("failed to run migrations")
		}

		pool, err = postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to postgres")
		}
		defer pool.Close()
		log.Info().Msg("connected to postgres")

		store = postgresRepo.NewStore(pool)
	default:
		log.Fatal().Str("backend", cfg.StoreBackend).Msg("unknown store backend")
	}

	// Connect to Redis (optional balance cache)
	var (
		cache       usecase.BalanceCache
		redisClient *goredis.Client
	)
	if cfg.RedisURL != "" {
		redisClient, err = redis.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer redisClient.Close()
		log.Info().Msg("connected to redis")

		cache = redisRepo.NewBalanceCache(redisClient)
	}

	// Kafka transfer events (optional)
	var publisher usecase.EventPublisher
	if len(cfg.KafkaBrokers) > 0 {
		kafkaPublisher := kafka.NewPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		defer kafkaPublisher.Close()
		log.Info().Strs("brokers", cfg.KafkaBrokers).Str("topic", cfg.KafkaTopic).Msg("kafka publisher enabled")

		publisher = kafkaPublisher
	}

	// Initialize use case and handlers
	transferUC := usecase.NewTransferUseCase(store, cache, publisher, metrics.New())

	accountHandler := handler.NewAccountHandler(transferUC)
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		AccountHandler: accountHandler,
		HealthHandler:  healthHandler,
		Logger:         log.Logger,
	})

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
