package main

import (
	"context"
	"log"

	"eduportal-backend/config"
	"eduportal-backend/internal/app"
	httpDelivery "eduportal-backend/internal/delivery/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load(config.New())
	if err != nil {
		log.Fatal("Invalid configuration:", err)
	}

	logger, err := config.NewLogger(cfg)
	if err != nil {
		log.Fatal("Failed to build logger:", err)
	}
	defer logger.Sync()

	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()
	portal, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to open store", zap.String("driver", cfg.StoreDriver), zap.Error(err))
	}
	defer portal.Close()

	if cfg.SeedOnStart {
		if err := portal.Seed.SeedInitialData(ctx); err != nil {
			logger.Error("seeding failed", zap.Error(err))
		}
	}

	handler := httpDelivery.NewHandler(
		portal.Auth,
		portal.Users,
		portal.Courses,
		portal.Progress,
		portal.Submission,
		portal.Dashboard,
		portal.News,
		logger,
	)
	router := httpDelivery.InitRouter(handler, cfg.CORSOrigins)

	logger.Info("server running",
		zap.String("port", cfg.Port),
		zap.String("api", "http://localhost:"+cfg.Port+"/api/v1"),
	)
	if err := router.Run(":" + cfg.Port); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}
}
