package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpAdapter "github.com/hydrosur/fincore/internal/adapter/http"
	"github.com/hydrosur/fincore/internal/adapter/http/handler"
	"github.com/hydrosur/fincore/internal/adapter/http/middleware"
	postgresRepo "github.com/hydrosur/fincore/internal/adapter/repository/postgres"
	redisRepo "github.com/hydrosur/fincore/internal/adapter/repository/redis"
	"github.com/hydrosur/fincore/internal/infrastructure/auth"
	"github.com/hydrosur/fincore/internal/infrastructure/config"
	"github.com/hydrosur/fincore/internal/infrastructure/logger"
	"github.com/hydrosur/fincore/internal/infrastructure/metrics"
	"github.com/hydrosur/fincore/internal/infrastructure/postgres"
	"github.com/hydrosur/fincore/internal/infrastructure/redis"
	"github.com/hydrosur/fincore/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	ctx := context.Background()

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	// Apply pending migrations
	if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	appMetrics := metrics.New()

	// Initialize repositories
	txManager := postgresRepo.NewTxManager(pool)
	sessionRepo := postgresRepo.NewCashSessionRepository(pool)
	movementRepo := postgresRepo.NewCashMovementRepository(pool)
	creditRepo := postgresRepo.NewCreditAccountRepository(pool)
	paymentRepo := postgresRepo.NewCreditPaymentRepository(pool)
	voucherRepo := postgresRepo.NewVoucherRepository(pool)
	auditRepo := postgresRepo.NewAuditRepository(pool)
	clientRepo := postgresRepo.NewClientRepository(pool)
	saleRepo := postgresRepo.NewSaleRepository(pool)
	orderRepo := postgresRepo.NewOrderRepository(pool)
	productRepo := postgresRepo.NewProductRepository(pool)
	idGen := postgresRepo.NewULIDGenerator()
	retrier := postgresRepo.NewRetrier(log, appMetrics)

	cache := redisRepo.NewCache(redisClient)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)

	// Initialize use cases
	sessionUC := usecase.NewCashSessionUseCase(txManager, sessionRepo, movementRepo, saleRepo, idGen, appMetrics)
	creditUC := usecase.NewCreditUseCase(txManager, creditRepo, paymentRepo, clientRepo, saleRepo, orderRepo, idGen, appMetrics)
	voucherUC := usecase.NewVoucherUseCase(txManager, voucherRepo, auditRepo, clientRepo, productRepo, idGen, retrier, appMetrics)
	statsUC := usecase.NewStatsUseCase(voucherRepo, clientRepo, cache, log)

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		CashSessionHandler: handler.NewCashSessionHandler(sessionUC),
		CreditHandler:      handler.NewCreditHandler(creditUC),
		VoucherHandler:     handler.NewVoucherHandler(voucherUC),
		StatsHandler:       handler.NewStatsHandler(statsUC),
		HealthHandler:      handler.NewHealthHandler(pool, redisClient),
		JWTManager:         auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiration),
		AuthEnabled:        cfg.AuthEnabled,
		IdempotencyStore:   idempotencyStore,
		RateLimiter:        middleware.NewRateLimiter(100, 200),
		Logger:             log,
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
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
