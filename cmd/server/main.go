package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpAdapter "github.com/umair/tradeledger/internal/adapter/http"
	"github.com/umair/tradeledger/internal/adapter/http/handler"
	postgresRepo "github.com/umair/tradeledger/internal/adapter/repository/postgres"
	redisRepo "github.com/umair/tradeledger/internal/adapter/repository/redis"
	"github.com/umair/tradeledger/internal/infrastructure/auth"
	"github.com/umair/tradeledger/internal/infrastructure/config"
	"github.com/umair/tradeledger/internal/infrastructure/logger"
	"github.com/umair/tradeledger/internal/infrastructure/postgres"
	"github.com/umair/tradeledger/internal/infrastructure/redis"
	"github.com/umair/tradeledger/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET is required")
	}

	ctx := context.Background()

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	if err := postgres.RunMigrations(log, cfg.DatabaseURL, "migrations"); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	// Repositories
	txManager := postgresRepo.NewTxManager(pool)
	partyRepo := postgresRepo.NewPartyRepository(pool)
	txRepo := postgresRepo.NewTransactionRepository(pool)
	billRepo := postgresRepo.NewBillRepository(pool)
	saleRepo := postgresRepo.NewSaleRepository(pool)
	recoveryRepo := postgresRepo.NewRecoveryRepository(pool)
	expenseRepo := postgresRepo.NewExpenseRepository(pool)
	bankRepo := postgresRepo.NewBankRepository(pool)
	methodRepo := postgresRepo.NewPaymentMethodRepository(pool)
	bankTxRepo := postgresRepo.NewBankTransactionRepository(pool)
	companyRepo := postgresRepo.NewCompanyRepository(pool)
	auditRepo := postgresRepo.NewAuditRepository(pool)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)
	templateCache := redisRepo.NewCache(redisClient)
	idGen := postgresRepo.NewULIDGenerator()
	retrier := postgresRepo.NewRetrier(log)

	// Use cases
	recalcUC := usecase.NewRecalcUseCase(txManager, partyRepo, txRepo, bankRepo, bankTxRepo, retrier)
	partyUC := usecase.NewPartyUseCase(txManager, partyRepo, txRepo, recalcUC, idGen)
	transactionUC := usecase.NewTransactionUseCase(txManager, partyRepo, txRepo, auditRepo, recalcUC, idGen, retrier)
	billUC := usecase.NewBillUseCase(txManager, billRepo, partyRepo, txRepo, recalcUC, idGen, retrier, templateCache)
	saleUC := usecase.NewSaleUseCase(txManager, saleRepo, partyRepo, txRepo, bankTxRepo, methodRepo, recalcUC, idGen, retrier, log)
	recoveryUC := usecase.NewRecoveryUseCase(txManager, recoveryRepo, partyRepo, txRepo, bankRepo, bankTxRepo, recalcUC, idGen, retrier, log)
	expenseUC := usecase.NewExpenseUseCase(txManager, expenseRepo, bankTxRepo, recalcUC, idGen, retrier, log)
	bankUC := usecase.NewBankUseCase(txManager, bankRepo, methodRepo, bankTxRepo, recalcUC, idGen, retrier)
	companyUC := usecase.NewCompanyUseCase(companyRepo, idGen)

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiration)

	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		AuthHandler:        handler.NewAuthHandler(companyUC, jwtManager),
		PartyHandler:       handler.NewPartyHandler(partyUC),
		TransactionHandler: handler.NewTransactionHandler(transactionUC),
		BillHandler:        handler.NewBillHandler(billUC),
		SaleHandler:        handler.NewSaleHandler(saleUC),
		RecoveryHandler:    handler.NewRecoveryHandler(recoveryUC),
		ExpenseHandler:     handler.NewExpenseHandler(expenseUC),
		BankHandler:        handler.NewBankHandler(bankUC),
		HealthHandler:      handler.NewHealthHandler(pool, redisClient),
		JWTManager:         jwtManager,
		IdempotencyStore:   idempotencyStore,
		Logger:             log,
		RateLimit:          cfg.RateLimit,
		RateBurst:          cfg.RateBurst,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
