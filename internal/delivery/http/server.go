package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"

	"github.com/water-station-map/internal/config"
	"github.com/water-station-map/internal/delivery/http/handler"
	"github.com/water-station-map/internal/delivery/http/middleware"
	"github.com/water-station-map/internal/pkg/errors"
)

// Server - HTTP сервер на основе Fiber
type Server struct {
	app    *fiber.App
	config *config.Config
	logger *zap.Logger

	// Handlers
	healthHandler   *handler.HealthHandler
	stationHandler  *handler.StationHandler
	reportHandler   *handler.ReportHandler
	districtHandler *handler.DistrictHandler
}

// NewServer - создание нового HTTP сервера
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	healthHandler *handler.HealthHandler,
	stationHandler *handler.StationHandler,
	reportHandler *handler.ReportHandler,
	districtHandler *handler.DistrictHandler,
) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "Water Station Map API",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:             app,
		config:          cfg,
		logger:          logger,
		healthHandler:   healthHandler,
		stationHandler:  stationHandler,
		reportHandler:   reportHandler,
		districtHandler: districtHandler,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

// App - fiber приложение (для тестов через app.Test)
func (s *Server) App() *fiber.App {
	return s.app
}

// setupMiddlewares - настройка middleware
func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery(s.logger))
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(middleware.CORS(s.config.Server.CORSOrigins))
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

// setupRoutes - настройка маршрутов
func (s *Server) setupRoutes() {
	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)
	s.app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := s.app.Group("/api/v1")

	api.Get("/health", s.healthHandler.Health)

	// Stations. /nearby регистрируется раньше /:id
	stations := api.Group("/stations")
	stations.Get("/", s.stationHandler.ListStations)
	stations.Get("/nearby", s.stationHandler.NearbyStations)
	stations.Get("/:id", s.stationHandler.GetStation)
	stations.Get("/:id/reports", s.reportHandler.GetStationReports)
	stations.Post("/", s.stationHandler.CreateStation)
	stations.Patch("/:id", s.stationHandler.UpdateStation)
	stations.Delete("/:id", s.stationHandler.DeleteStation)

	// Reports
	reports := api.Group("/reports")
	reports.Post("/", s.reportHandler.SubmitReport)
	reports.Get("/", s.reportHandler.ListReports)
	reports.Get("/stats", s.reportHandler.GetReportStats)
	reports.Patch("/:id/status", s.reportHandler.UpdateReportStatus)

	// Districts
	districts := api.Group("/districts")
	districts.Get("/", s.districtHandler.ListDistricts)
	districts.Get("/stats", s.districtHandler.DistrictStats)
	districts.Get("/:name", s.districtHandler.GetDistrict)
}

// Start - запуск HTTP сервера
func (s *Server) Start() error {
	addr := s.config.GetServerAddr()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))
	return s.app.Listen(addr)
}

// Shutdown - graceful shutdown HTTP сервера
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

// customErrorHandler - ошибки, не обработанные хендлерами (404 маршрута, паники)
func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		appErr := errors.ErrInternalServer

		if e, ok := err.(*fiber.Error); ok {
			appErr = errors.New("HTTP_ERROR", e.Message, e.Code)
		}

		if appErr.StatusCode >= fiber.StatusInternalServerError {
			logger.Error("HTTP Error",
				zap.String("path", c.Path()),
				zap.Int("status", appErr.StatusCode),
				zap.Error(err),
			)
		}

		return c.Status(appErr.StatusCode).JSON(fiber.Map{"error": appErr})
	}
}
