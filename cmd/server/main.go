package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	httpAdapter "github.com/iho/shopledger/internal/adapter/http"
	"github.com/iho/shopledger/internal/adapter/http/handler"
	postgresRepo "github.com/iho/shopledger/internal/adapter/repository/postgres"
	redisRepo "github.com/iho/shopledger/internal/adapter/repository/redis"
	"github.com/iho/shopledger/internal/infrastructure/config"
	"github.com/iho/shopledger/internal/infrastructure/logger"
	"github.com/iho/shopledger/internal/infrastructure/postgres"
	"github.com/iho/shopledger/internal/infrastructure/redis"
	"github.com/iho/shopledger/internal/infrastructure/scheduler"
	"github.com/iho/shopledger/internal/sheet"
	"github.com/iho/shopledger/internal/usecase"

	pgxpool "github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"
)

func main() {
	// Load .env if present
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Setup logger
	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})

	ctx := context.Background()

	// Tabular data source
	client := sheet.NewClient(sheet.ClientConfig{
		BaseURL: cfg.SourceBaseURL,
		Tables: sheet.TableNames{
			Balances:    cfg.TableBalances,
			Deposits:    cfg.TableDeposits,
			Withdrawals: cfg.TableWithdrawals,
			Settlements: cfg.TableSettlements,
			Rates:       cfg.TableRates,
		},
		RequestTimeout: cfg.SourceTimeout,
		RetryElapsed:   cfg.SourceRetryMax,
	}, log)

	var source usecase.TableSource = client

	// Optional Redis table cache
	var redisClient *goredis.Client
	if cfg.RedisURL != "" {
		redisClient, err = redis.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer redisClient.Close()

		source = redisRepo.NewCachedTableSource(client, redisClient, cfg.CacheTTL, log)
		log.Info().Msg("connected to redis, table cache enabled")
	}

	// Optional snapshot store
	var (
		pool         *pgxpool.Pool
		snapshotRepo usecase.SnapshotRepository
		snapshotUC   *usecase.SnapshotUseCase
	)
	if cfg.DatabaseURL != "" {
		if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
			log.Fatal().Err(err).Msg("failed to run migrations")
		}

		pool, err = postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to postgres")
		}
		defer pool.Close()

		snapshotRepo = postgresRepo.NewSnapshotRepository(pool)
		snapshotUC = usecase.NewSnapshotUseCase(source, snapshotRepo, postgresRepo.NewULIDGenerator())
		log.Info().Msg("connected to postgres, snapshot store enabled")
	}

	// Initialize use cases
	dashboardUC := usecase.NewDashboardUseCase(source, snapshotRepo)
	ledgerUC := usecase.NewLedgerUseCase(source, snapshotRepo)
	exportUC := usecase.NewExportUseCase(source, snapshotRepo, cfg.ExportWorkers)

	// Initialize handlers
	dashboardHandler := handler.NewDashboardHandler(dashboardUC)
	ledgerHandler := handler.NewLedgerHandler(ledgerUC)
	exportHandler := handler.NewExportHandler(exportUC)
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	var snapshotHandler *handler.SnapshotHandler
	if snapshotUC != nil {
		snapshotHandler = handler.NewSnapshotHandler(snapshotUC)
	}

	// Optional snapshot schedule
	if cfg.SnapshotCron != "" {
		if snapshotUC == nil {
			log.Fatal().Msg("SNAPSHOT_CRON requires DATABASE_URL")
		}

		sched, err := scheduler.New(cfg.SnapshotCron, snapshotUC, log)
		if err != nil {
			log.Fatal().Err(err).Msg("invalid snapshot schedule")
		}
		sched.Start()
		defer sched.Stop()
		log.Info().Str("schedule", cfg.SnapshotCron).Msg("snapshot schedule enabled")
	}

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		DashboardHandler: dashboardHandler,
		LedgerHandler:    ledgerHandler,
		ExportHandler:    exportHandler,
		SnapshotHandler:  snapshotHandler,
		HealthHandler:    healthHandler,
		Logger:           log,
	})

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
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
