package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/masud-rana44/the-wild-oasis/internal/application"
	"github.com/masud-rana44/the-wild-oasis/internal/config"
	"github.com/masud-rana44/the-wild-oasis/internal/database"
	"github.com/masud-rana44/the-wild-oasis/internal/events"
	"github.com/masud-rana44/the-wild-oasis/internal/handler"
	"github.com/masud-rana44/the-wild-oasis/internal/logger"
	"github.com/masud-rana44/the-wild-oasis/internal/middleware"
	"github.com/masud-rana44/the-wild-oasis/internal/repository"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.NewNamed(cfg.AppEnv, "the-wild-oasis")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting the-wild-oasis",
		zap.String("port", cfg.Port),
		zap.Int("page_size", cfg.PageSize),
	)

	// Connect to database
	db, err := database.Connect(cfg.Database, log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}

	if err := db.AutoMigrate(
		&repository.CabinModel{},
		&repository.GuestModel{},
		&repository.BookingModel{},
	); err != nil {
		log.Fatal("failed to run auto-migration", zap.Error(err))
	}

	// Initialize repositories
	bookingRepo := repository.NewGormBookingRepository(db, cfg.PageSize, log)
	cabinRepo := repository.NewGormCabinRepository(db, log)
	guestRepo := repository.NewGormGuestRepository(db, log)

	// Initialize event producer (optional)
	var producer *events.Producer
	if cfg.Kafka.Enabled {
		producer = events.NewProducer(cfg.Kafka.Brokers, log)
		defer func() { _ = producer.Close() }()
	}

	// Initialize application services
	resolver := application.NewGuestResolver(guestRepo, log)
	bookingService := application.NewBookingService(
		bookingRepo,
		cabinRepo,
		resolver,
		producer,
		cfg.PageSize,
		log,
	)

	// Setup Gin router
	if cfg.AppEnv != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	router.Use(middleware.RecoveryMiddleware(log))
	router.Use(middleware.LoggerMiddleware(log))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.CORSMiddleware())

	handler.NewHealthHandler(db).RegisterRoutes(router)
	handler.NewBookingHandler(bookingService).RegisterRoutes(&router.RouterGroup)

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("HTTP server starting", zap.String("addr", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down the-wild-oasis...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server forced shutdown", zap.Error(err))
	}

	log.Info("the-wild-oasis stopped")
}
