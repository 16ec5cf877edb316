package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/water-station-map/internal/config"
	"github.com/water-station-map/internal/observability"
	"github.com/water-station-map/internal/pkg/logger"
	"github.com/water-station-map/internal/repository/cache"
	"github.com/water-station-map/internal/repository/factory"
	redisRepo "github.com/water-station-map/internal/repository/redis"
	"github.com/water-station-map/internal/usecase"
	"github.com/water-station-map/internal/worker"
	"github.com/water-station-map/internal/worker/reportsync"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	if !cfg.Worker.Enabled {
		fmt.Println("Worker is disabled in configuration. Set WORKER_ENABLED=true to enable.")
		os.Exit(0)
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level, "worker")
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting report sync worker",
		zap.String("consumer_group", cfg.Worker.ConsumerGroup),
		zap.Int("batch_size", cfg.Worker.BatchSize),
		zap.Int("max_retries", cfg.Worker.MaxRetries))

	// 3. Remote report store
	clock := clockwork.NewRealClock()
	stores := factory.New(cfg, clock, log)
	defer func() {
		if err := stores.Close(); err != nil {
			log.Error("Failed to close stores", zap.Error(err))
		}
	}()

	reportRepo := stores.CreateReportRepository()
	if reportRepo == nil {
		log.Fatal("No remote report store configured (SUPABASE_* or DATABASE_TYPE=postgres)")
	}

	// 4. Redis stream
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()
	streamRepo := redisRepo.NewStreamRepository(redisClient.Client(), log)

	// 5. Use case: воркер только досылает сообщения, повторно в стрим не публикует
	reportUC := usecase.NewReportUseCase(
		reportRepo,
		cache.NewMemoryFallbackLog(cfg.Report.FallbackCapacity),
		nil,
		false,
		observability.NewMetrics(),
		clock,
		log,
	)

	// 6. Workers
	workerManager := worker.NewWorkerManager(log)
	workerManager.Register(reportsync.NewWorker(
		streamRepo,
		reportUC,
		cfg.Worker.ConsumerGroup,
		cfg.Worker.BatchSize,
		cfg.Worker.MaxRetries,
		cfg.Worker.IdleInterval,
		cfg.Worker.ClaimMinIdle,
		log,
	))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := workerManager.Start(ctx); err != nil {
		log.Fatal("Failed to start workers", zap.Error(err))
	}

	// 7. Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	log.Info("Received shutdown signal")

	cancel()

	if err := workerManager.Stop(); err != nil {
		log.Error("Error stopping workers", zap.Error(err))
	}

	log.Info("Worker shutdown complete")
}
