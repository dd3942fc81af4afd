package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"panel/internal/bootstrap"
	"panel/internal/config"
	"panel/internal/repository"
	"panel/internal/server"
	"panel/internal/service"
	"panel/internal/telegram"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	logger := newLogger()
	defer func() {
		_ = logger.Sync() // Flushes buffer, if any
	}()

	cfgPath := "configs/config.yml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	db, err := repository.NewPostgresDB(cfg.Database.URL, logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	repository.MigrateDB(db, logger)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	userRepo := repository.NewUserRepository(db, logger)
	notificationRepo := repository.NewNotificationRepository(db, logger)
	if err := bootstrap.Seed(ctx, userRepo, notificationRepo, logger); err != nil {
		logger.Fatal("Failed to seed initial data", zap.Error(err))
	}

	// The notifier is optional; the server takes a nil one when Telegram
	// forwarding is not configured.
	var notifier service.Notifier
	tgNotifier, err := telegram.NewNotifier(cfg, logger)
	if err != nil {
		logger.Warn("Failed to initialize Telegram notifier, continuing without it", zap.Error(err))
	} else if tgNotifier != nil {
		notifier = tgNotifier
	}

	srv := server.NewServer(db, cfg, logger, notifier)
	if err := srv.Run(ctx, cfg.Server.Port); err != nil {
		logger.Fatal("Server failed", zap.Error(err))
	}

	logger.Info("Application stopped.")
}

func newLogger() *zap.Logger {
	if os.Getenv("APP_ENV") == "production" {
		logger, err := zap.NewProduction()
		if err != nil {
			panic(err)
		}
		return logger
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err) // Should not happen in development
	}
	return logger
}
