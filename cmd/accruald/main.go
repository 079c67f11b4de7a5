package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/crestbank/accrual-service/internal/application/usecase"
	"github.com/crestbank/accrual-service/internal/domain/service"
	"github.com/crestbank/accrual-service/internal/domain/valueobject"
	"github.com/crestbank/accrual-service/internal/infrastructure/config"
	"github.com/crestbank/accrual-service/internal/infrastructure/ledger"
	"github.com/crestbank/accrual-service/internal/infrastructure/messaging"
	pgRepo "github.com/crestbank/accrual-service/internal/infrastructure/persistence/postgres"
	"github.com/crestbank/accrual-service/internal/infrastructure/scheduler"
	grpcPresentation "github.com/crestbank/accrual-service/internal/presentation/grpc"
	"github.com/crestbank/accrual-service/internal/presentation/rest"
	"github.com/crestbank/accrual-service/pkg/auth"
	pkgkafka "github.com/crestbank/accrual-service/pkg/kafka"
	"github.com/crestbank/accrual-service/pkg/observability"
	pkgpostgres "github.com/crestbank/accrual-service/pkg/postgres"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Local development convenience; ignored when no .env exists.
	_ = godotenv.Load()

	cfg := config.Load()
	cfg.Validate()

	logger := observability.InitLogger(observability.LogConfig{
		Level:  getEnv("LOG_LEVEL", "info"),
		Format: getEnv("LOG_FORMAT", "json"),
	})
	slog.SetDefault(logger)

	logger.Info("starting loan-accrual-service",
		"http_port", cfg.HTTPPort,
		"grpc_port", cfg.GRPCPort,
		"accrual_cron", cfg.AccrualCron,
	)

	// Metrics.
	meterProvider, metricsHandler, err := observability.InitMetrics(observability.MetricsConfig{
		ServiceName: cfg.ServiceName,
	})
	if err != nil {
		logger.Error("failed to initialize metrics", "error", err)
		os.Exit(1)
	}
	defer func() { _ = meterProvider.Shutdown(context.Background()) }() //nolint:errcheck // best-effort shutdown

	// Database connection.
	dbCtx, dbCancel := context.WithTimeout(ctx, 10*time.Second)
	defer dbCancel()

	dbCfg := pkgpostgres.Config{
		Host:     cfg.DB.Host,
		Port:     cfg.DB.Port,
		User:     cfg.DB.User,
		Password: cfg.DB.Password,
		Database: cfg.DB.Name,
		SSLMode:  cfg.DB.SSLMode,
	}
	pool, err := pkgpostgres.NewPool(dbCtx, dbCfg)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	logger.Info("connected to database")

	if migErr := pkgpostgres.RunMigrations(dbCfg.DSN(), "file://internal/infrastructure/persistence/postgres/migrations"); migErr != nil {
		logger.Warn("migration warning", "error", migErr)
	}

	// Wire infrastructure adapters.
	loanRepo := pgRepo.NewLoanRepo(pool)
	scheduleRepo := pgRepo.NewScheduleRepo(pool)
	accrualRepo := pgRepo.NewAccrualRepo(pool)
	loanScope := pgRepo.NewLoanScope(pool)

	kafkaProducer := pkgkafka.NewProducer(pkgkafka.Config{
		Brokers: cfg.Kafka.Brokers,
	})
	defer kafkaProducer.Close()
	publisher := messaging.NewKafkaEventPublisher(kafkaProducer, cfg.Kafka.Topic, logger)

	defaults := valueobject.NewPostingDefaults(cfg.Accounting.CostCenters, cfg.Accounting.DefaultCostCenter)
	poster := ledger.NewPoster(pool, defaults, logger)
	resolver := service.NewPeriodResolver(accrualRepo)

	// Wire use cases.
	recordUC := usecase.NewRecordAccrualUseCase(accrualRepo, poster, publisher)
	demandUC := usecase.NewAccrueDemandLoansUseCase(loanRepo, resolver, recordUC, loanScope, logger)
	termUC := usecase.NewAccrueTermLoansUseCase(scheduleRepo, recordUC, loanScope, logger)
	listUC := usecase.NewListAccrualsUseCase(accrualRepo)
	cancelUC := usecase.NewCancelAccrualUseCase(accrualRepo, poster, publisher, loanScope)

	// Daily batch scheduler.
	sched := scheduler.NewAccrualScheduler(demandUC, termUC, cfg.AccrualCron, cfg.BatchTimeout, logger)
	if err := sched.Start(); err != nil {
		logger.Error("failed to start scheduler", "error", err)
		os.Exit(1)
	}
	defer sched.Stop()

	// JWT validation (gateway public key preferred, shared secret as fallback).
	jwtCfg := auth.JWTConfig{Issuer: getEnv("JWT_ISSUER", "crest-gateway")}
	switch {
	case os.Getenv("JWT_PUBLIC_KEY") != "":
		jwtCfg.PublicKeyPEM = os.Getenv("JWT_PUBLIC_KEY")
	case os.Getenv("JWT_PUBLIC_KEY_FILE") != "":
		keyData, loadErr := auth.LoadKeyFromFile(os.Getenv("JWT_PUBLIC_KEY_FILE"))
		if loadErr != nil {
			logger.Error("failed to load JWT public key file", "error", loadErr)
			os.Exit(1)
		}
		jwtCfg.PublicKeyPEM = string(keyData)
	default:
		jwtCfg.Secret = os.Getenv("JWT_SECRET")
		if jwtCfg.Secret == "" {
			logger.Error("set JWT_PUBLIC_KEY, JWT_PUBLIC_KEY_FILE or JWT_SECRET")
			os.Exit(1)
		}
	}
	jwtSvc, err := auth.NewJWTService(jwtCfg)
	if err != nil {
		logger.Error("failed to initialize JWT validation", "error", err)
		os.Exit(1)
	}

	// gRPC server.
	grpcHandler := grpcPresentation.NewAccrualHandler(demandUC, termUC, listUC, cancelUC, logger)
	grpcServer := grpcPresentation.NewServer(grpcHandler, cfg.ServiceName, logger, jwtSvc)

	// HTTP server: health checks, metrics, operational REST API.
	mux := http.NewServeMux()
	rest.NewHealthHandler(pool, logger).RegisterRoutes(mux)
	rest.NewAccrualHandler(demandUC, termUC, listUC, cancelUC, logger).RegisterRoutes(mux)
	mux.Handle("GET /metrics", metricsHandler)

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start servers.
	errCh := make(chan error, 2)

	go func() {
		if err := grpcServer.Serve(cfg.GRPCAddr()); err != nil {
			errCh <- fmt.Errorf("gRPC server error: %w", err)
		}
	}()

	go func() {
		logger.Info("HTTP server starting", "port", cfg.HTTPPort)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// Wait for shutdown signal.
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		logger.Error("server error", "error", err)
	}

	// Graceful shutdown.
	grpcServer.GracefulStop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}

	logger.Info("loan-accrual-service stopped")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
