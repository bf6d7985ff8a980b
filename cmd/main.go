package main

import (
	"context"
	"strconv"
	"time"

	"github.com/TonyNguyenVn17/USF-Hackabull/internal/handler"
	"github.com/TonyNguyenVn17/USF-Hackabull/internal/importer"
	"github.com/TonyNguyenVn17/USF-Hackabull/internal/middleware"
	"github.com/TonyNguyenVn17/USF-Hackabull/internal/sheets"
	"github.com/TonyNguyenVn17/USF-Hackabull/internal/store"
	"github.com/TonyNguyenVn17/USF-Hackabull/pkg/config"
	"github.com/TonyNguyenVn17/USF-Hackabull/pkg/logger"
	"github.com/TonyNguyenVn17/USF-Hackabull/prometheus"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	// Load configuration from .env file and environment variables
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger with config
	logger.InitLogger(cfg)
	log := logger.GetLogger()
	log.Info("Starting registration service...", zap.String("environment", cfg.Server.Env))

	// Initialize Prometheus metrics
	prometheus.InitMetrics(cfg)
	log.Info("Prometheus metrics initialized")

	ctx := context.Background()

	// Initialize the document store
	var st store.Store
	switch cfg.Store.Backend {
	case config.StoreBackendMemory:
		st = store.NewMemory()
		log.Warn("Using in-memory document store; records will not survive a restart")
	default:
		fs, err := store.NewFirestore(ctx, cfg.Store.ProjectID, cfg.Store.CredentialsPath, log)
		if err != nil {
			log.Fatal("Failed to initialize document store", zap.Error(err))
		}
		defer fs.Close()
		st = fs
	}

	// Initialize the form importer. Without sheets credentials the sync
	// endpoint responds as unavailable but the rest of the API still serves.
	var engine *importer.Engine
	if cfg.Sheets.CredentialsPath != "" {
		reader, err := sheets.NewGoogleSheets(ctx, cfg.Sheets.CredentialsPath, log)
		if err != nil {
			log.Fatal("Failed to initialize sheets reader", zap.Error(err))
		}
		engine = importer.New(st, reader, log)
		log.Info("Form importer initialized")
	} else {
		log.Warn("SHEETS_CRED_PATH not set — form sync is disabled")
	}

	userHandler := handler.NewUserHandler(st)
	teamHandler := handler.NewTeamHandler(st)
	syncHandler := handler.NewSyncHandler(engine, cfg.Sheets.DefaultRange)

	// Create Echo instance
	e := echo.New()

	// Middleware
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())
	e.Use(middleware.RequestIDMiddleware)

	// Request logging middleware
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			duration := time.Since(start).Seconds()
			status := c.Response().Status

			log := logger.FromContext(c)
			log.Info("HTTP Request",
				zap.String("method", c.Request().Method),
				zap.String("path", c.Request().URL.Path),
				zap.Int("status", status),
				zap.Float64("duration_s", duration),
				zap.String("ip", c.RealIP()),
			)

			prometheus.HttpRequestsTotal.WithLabelValues(
				c.Request().Method,
				c.Request().URL.Path,
				strconv.Itoa(status),
			).Inc()

			prometheus.HttpRequestDuration.WithLabelValues(
				c.Request().Method,
				c.Request().URL.Path,
				strconv.Itoa(status),
			).Observe(duration)

			return err
		}
	})

	// Routes
	e.GET("/", handler.Hello)
	e.GET("/health", handler.HealthCheck)

	// Prometheus metrics endpoint
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api")

	users := api.Group("/users")
	users.GET("", userHandler.List)
	users.GET("/:id", userHandler.Get)
	users.POST("/:id", userHandler.Create)
	users.PUT("/:id", userHandler.Update)
	users.PATCH("/:id/status", userHandler.UpdateStatus)
	users.DELETE("/:id", userHandler.Delete)
	users.POST("/batch/import", userHandler.BatchImport)
	users.POST("/sync/google-form", syncHandler.SyncGoogleForm)

	teams := api.Group("/teams")
	teams.GET("", teamHandler.List)
	teams.GET("/:id", teamHandler.Get)
	teams.POST("/:id", teamHandler.Create)
	teams.PUT("/:id", teamHandler.Update)
	teams.DELETE("/:id", teamHandler.Delete)

	// Start server
	port := cfg.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Failed to start server", zap.Error(err))
	}
}
