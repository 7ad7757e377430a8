package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/avoshchina/tutorhub/internal/access"
	"github.com/avoshchina/tutorhub/internal/app"
	"github.com/avoshchina/tutorhub/internal/config"
	"github.com/avoshchina/tutorhub/internal/controller/handlers"
	"github.com/avoshchina/tutorhub/internal/events"
	"github.com/avoshchina/tutorhub/internal/repository"
	"github.com/avoshchina/tutorhub/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	ctx := context.Background()

	pool, err := pgxpool.New(ctx, cfg.DBDSN)
	if err != nil {
		logger.Fatal("Failed to create database pool", zap.Error(err))
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}

	migrator, err := app.NewMigrator(pool, cfg.MigrationsPath)
	if err != nil {
		logger.Fatal("Failed to create migrator", zap.Error(err))
	}
	if err := migrator.Run(ctx); err != nil {
		logger.Fatal("Failed to apply migrations", zap.Error(err))
	}
	if version, err := migrator.Version(ctx); err == nil {
		logger.Info("Database schema is up to date", zap.Int64("version", version))
	}
	migrator.Close()

	publisher := events.NewPublisher(cfg.KafkaBrokers, "events", logger)
	defer publisher.Close()

	slotRepo := repository.NewSlotRepository(pool)
	lessonRepo := repository.NewLessonRepository(pool)
	profileRepo := repository.NewProfileRepository(pool)
	linkRepo := repository.NewLinkRepository(pool)

	bookingService := service.NewBookingService(slotRepo, profileRepo, publisher, logger)
	lessonService := service.NewLessonService(lessonRepo)
	availabilityService := service.NewAvailabilityService(slotRepo, publisher, logger)
	adminService := service.NewAdminService(profileRepo, linkRepo, publisher, logger)

	verifier := access.NewTokenVerifier(cfg.JWTSecret)
	gate := access.NewGate(verifier, profileRepo, linkRepo, logger)

	h := handlers.New(
		gate,
		bookingService,
		lessonService,
		availabilityService,
		adminService,
		cfg.AdminAPIKey,
		logger,
	)

	server := app.NewServer(cfg.HTTPAddr, h, cfg.Environment != "production")

	go func() {
		logger.Info("Starting HTTP server",
			zap.String("addr", cfg.HTTPAddr),
			zap.String("environment", cfg.Environment),
			zap.Bool("events_enabled", publisher.Enabled()),
		)
		if err := server.Start(); err != nil {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := server.Stop(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", zap.Error(err))
	}
}
