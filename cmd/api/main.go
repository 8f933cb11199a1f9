package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dafibh/pennywise/pennywise-backend/internal/amqp"
	"github.com/dafibh/pennywise/pennywise-backend/internal/config"
	"github.com/dafibh/pennywise/pennywise-backend/internal/event"
	"github.com/dafibh/pennywise/pennywise-backend/internal/handler"
	"github.com/dafibh/pennywise/pennywise-backend/internal/metrics"
	"github.com/dafibh/pennywise/pennywise-backend/internal/middleware"
	"github.com/dafibh/pennywise/pennywise-backend/internal/repository"
	"github.com/dafibh/pennywise/pennywise-backend/internal/repository/storage"
	"github.com/dafibh/pennywise/pennywise-backend/internal/service"
	"github.com/dafibh/pennywise/pennywise-backend/internal/websocket"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Initialize zerolog
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if os.Getenv("ENV") != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Open storage backend
	store, err := repository.Open(context.Background(), cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open storage backend")
	}
	defer store.Close()

	// Event delivery: websocket clients, the log, and optionally RabbitMQ
	hub := websocket.NewHub()
	publishers := event.Fanout{hub, event.LogPublisher{}}

	var alertPublisher *amqp.Publisher
	if cfg.AMQP.URL != "" {
		alertPublisher, err = amqp.NewPublisher(cfg.AMQP.URL, cfg.AMQP.Exchange, cfg.AMQP.RoutingKey)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to AMQP broker")
		}
		defer alertPublisher.Close()
		publishers = append(publishers, alertPublisher)
	}

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	recorder := metrics.NewPrometheusRecorder("pennywise")
	if err := recorder.Register(registry); err != nil {
		log.Fatal().Err(err).Msg("Failed to register metrics")
	}

	// Optional S3 export archive
	var archiveRepo storage.ArchiveRepository
	if cfg.S3.Enabled() {
		s3Repo, err := storage.NewS3ArchiveRepository(context.Background(), cfg.S3)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize S3 archive storage")
		}
		archiveRepo = s3Repo
	} else {
		log.Info().Msg("S3 bucket not configured, export archive disabled")
	}

	// Initialize services
	transactionService := service.NewTransactionService(store.Transactions, store.Budgets)
	transactionService.SetEventPublisher(publishers)
	transactionService.SetRecorder(recorder)

	budgetService := service.NewBudgetService(store.Budgets, store.Transactions)
	budgetService.SetEventPublisher(publishers)

	savingsService := service.NewSavingsService(store.Goals)
	savingsService.SetEventPublisher(publishers)

	analyticsService := service.NewAnalyticsService(store.Transactions, budgetService, savingsService)

	archiveService := service.NewArchiveService(archiveRepo, store.Transactions)
	archiveService.SetRecorder(recorder)

	// Initialize handlers
	transactionHandler := handler.NewTransactionHandler(transactionService, archiveService)
	budgetHandler := handler.NewBudgetHandler(budgetService)
	goalHandler := handler.NewGoalHandler(savingsService)
	analyticsHandler := handler.NewAnalyticsHandler(analyticsService)
	wsHandler := handler.NewWebSocketHandler(hub, cfg.CORSOrigins)

	rateLimiter := middleware.NewRateLimiterWithConfig(cfg.RateLimitPerMinute, cfg.RateLimitBurst)
	defer rateLimiter.Stop()

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Request ID middleware
	e.Use(echomiddleware.RequestID())

	// CORS middleware
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
		MaxAge:       86400,
	}))

	// Security headers middleware
	e.Use(echomiddleware.SecureWithConfig(echomiddleware.SecureConfig{
		XSSProtection:         "1; mode=block",
		ContentTypeNosniff:    "nosniff",
		XFrameOptions:         "DENY",
		HSTSMaxAge:            31536000,
		ContentSecurityPolicy: "default-src 'self'",
		ReferrerPolicy:        "strict-origin-when-cross-origin",
	}))

	e.Use(middleware.RequestLogger(recorder))
	e.Use(echomiddleware.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry})))

	handler.RegisterRoutes(e, rateLimiter, transactionHandler, budgetHandler, goalHandler, analyticsHandler, wsHandler)

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.Port).Str("backend", cfg.StorageBackend).Msg("Starting server")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	hub.CloseAll()
	if err := e.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
