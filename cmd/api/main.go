package main

// @title Water Station Map API
// @version 1.0.0
// @description Справочник станций питьевой воды (급수 스테이션): фильтры, поиск, станции рядом, районные администрации.
// @description Пользователи сообщают об ошибках в данных станций; при недоступности удалённого хранилища сообщения сохраняются локально и досылаются воркером.

// @BasePath /
// @schemes http https

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	_ "github.com/water-station-map/docs"
	"github.com/water-station-map/internal/config"
	httpDelivery "github.com/water-station-map/internal/delivery/http"
	"github.com/water-station-map/internal/delivery/http/handler"
	"github.com/water-station-map/internal/domain/repository"
	"github.com/water-station-map/internal/observability"
	"github.com/water-station-map/internal/pkg/logger"
	"github.com/water-station-map/internal/repository/cache"
	"github.com/water-station-map/internal/repository/factory"
	"github.com/water-station-map/internal/repository/local"
	redisRepo "github.com/water-station-map/internal/repository/redis"
	"github.com/water-station-map/internal/usecase"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level, "api")
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Water Station Map API")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
		zap.String("store", cfg.Store.Type),
		zap.Strings("available_stores", factory.AvailableTypes()),
	)

	clock := clockwork.NewRealClock()
	metrics := observability.NewMetrics()

	// 3. Stores
	stores := factory.New(cfg, clock, log)
	defer func() {
		if err := stores.Close(); err != nil {
			log.Error("Failed to close stores", zap.Error(err))
		}
	}()

	stationRepo := stores.CreateStationRepository(cfg.Store.Type)
	reportRepo := stores.CreateReportRepository()
	districtRepo := local.NewDistrictRepository(cfg.Store.DistrictsDataPath, log)

	// 4. Fallback log and sync stream (Redis, если включен)
	var (
		fallbackLog  repository.FallbackLog
		streamRepo   repository.StreamRepository
		redisClient  *cache.Redis
		healthChecks = map[string]handler.HealthChecker{}
	)
	if cfg.Redis.Enabled {
		redisClient, err = cache.NewRedis(&cfg.Redis, log)
		if err != nil {
			log.Warn("Redis unavailable, using in-memory fallback log", zap.Error(err))
		}
	}
	if redisClient != nil {
		defer func() {
			if err := redisClient.Close(); err != nil {
				log.Error("Failed to close Redis connection", zap.Error(err))
			}
		}()
		fallbackLog = cache.NewRedisFallbackLog(redisClient, cfg.Report.FallbackKey, cfg.Report.FallbackCapacity)
		streamRepo = redisRepo.NewStreamRepository(redisClient.Client(), log)
		healthChecks["redis"] = redisClient
		log.Info("Redis connected")
	} else {
		fallbackLog = cache.NewMemoryFallbackLog(cfg.Report.FallbackCapacity)
	}

	// 5. Use cases
	stationUC := usecase.NewStationUseCase(stationRepo, metrics, clock, log)
	reportUC := usecase.NewReportUseCase(reportRepo, fallbackLog, streamRepo, cfg.Report.PublishPending, metrics, clock, log)
	districtUC := usecase.NewDistrictUseCase(districtRepo, stationUC, log)

	initCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := stationUC.Initialize(initCtx); err != nil {
		// запросы вернут status=unavailable, сервис продолжает работу
		log.Warn("Station store not connected", zap.String("store", stationUC.StoreName()), zap.Error(err))
	}
	if !reportUC.Initialize(initCtx) {
		log.Warn("Report store not connected, reports will be saved locally")
	}
	if err := districtUC.Initialize(initCtx); err != nil {
		log.Warn("District directory not loaded", zap.Error(err))
	}
	cancel()

	log.Info("Use cases initialized")

	// 6. HTTP handlers and server
	server := httpDelivery.NewServer(
		cfg,
		log,
		handler.NewHealthHandler(stationUC, clock, healthChecks),
		handler.NewStationHandler(stationUC, log),
		handler.NewReportHandler(reportUC, log),
		handler.NewDistrictHandler(districtUC, log),
	)

	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 7. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}
	if err := stationRepo.Close(); err != nil {
		log.Error("Failed to close station store", zap.Error(err))
	}

	log.Info("Server stopped successfully")
}
