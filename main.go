package main

import (
	"context"
	"log"

	"github.com/printshop/printshop-api/config"
	"github.com/printshop/printshop-api/routes"
	"github.com/printshop/printshop-api/services"
	"github.com/printshop/printshop-api/utils"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := config.InitLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting Print Shop API server...", zap.String("env", cfg.GoEnv))

	// Connect to database
	if err := config.ConnectDatabase(cfg.DatabaseURL); err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}

	db := config.GetDB()
	if err := config.Migrate(db); err != nil {
		logger.Fatal("Failed to migrate database", zap.Error(err))
	}
	logger.Info("Database migration completed successfully")

	if cfg.SeedFixtures {
		if err := services.SeedFixtures(db); err != nil {
			logger.Fatal("Failed to seed fixtures", zap.Error(err))
		}
	}

	// Uploaded files go to S3 when a bucket is configured, local disk otherwise
	if cfg.UsesS3() {
		s3Service, err := services.NewS3Service(context.Background(), cfg)
		if err != nil {
			logger.Fatal("Failed to initialize S3 service", zap.Error(err))
		}
		services.InitFileService(s3Service)
	} else {
		services.InitFileService(services.NewLocalStorage(utils.UploadDir))
	}

	services.InitDesignTypeService(services.NewDesignTypeService(
		services.DefaultDesignTypes(),
		services.WithLatency(cfg.MockLatency),
	))

	router, err := routes.SetupRouter(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to set up router", zap.Error(err))
	}

	addr := ":" + cfg.Port
	logger.Info("Server is running", zap.String("addr", "http://localhost"+addr))
	if err := router.Run(addr); err != nil {
		logger.Fatal("Failed to start server", zap.Error(err))
	}
}
