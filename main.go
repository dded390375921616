package main

import (
	"context"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"go.uber.org/zap"

	"projecthub/internal/config"
	"projecthub/internal/repository"
	"projecthub/internal/server"
	"projecthub/internal/service"
	"projecthub/internal/storage"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer func() {
		_ = logger.Sync() // Flushes buffer, if any
	}()

	log := logrus.New()

	// Local development keeps secrets in a .env file; absence is fine.
	_ = godotenv.Load()

	cfg, err := config.LoadConfig("configs/config.yml")
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	secret, err := config.JWTSecret()
	if err != nil {
		logger.Fatal("JWT secret is not configured", zap.Error(err))
	}

	db, err := repository.NewPostgresDB(cfg.Database.URL, logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	repository.MigrateDB(db, logger)

	store, err := newStorage(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize storage", zap.Error(err))
	}

	userRepo := repository.NewUserRepository(db, logger)
	if err := service.SeedAdminUser(userRepo, logger); err != nil {
		logger.Fatal("Failed to seed admin user", zap.Error(err))
	}

	srv := server.NewServer(db, cfg, store, secret, log, logger)
	srv.Run(cfg.Server.Port)
}

func newStorage(cfg *config.Config, logger *zap.Logger) (storage.Storage, error) {
	switch cfg.Storage.Backend {
	case "s3":
		return storage.NewS3(context.Background(), storage.S3Options{
			Region:    cfg.Storage.S3.Region,
			Bucket:    cfg.Storage.S3.Bucket,
			Endpoint:  cfg.Storage.S3.Endpoint,
			AccessKey: cfg.Storage.S3.AccessKey,
			SecretKey: cfg.Storage.S3.SecretKey,
		}, logger)
	default:
		return storage.NewLocal(cfg.Storage.UploadsDir, logger), nil
	}
}
