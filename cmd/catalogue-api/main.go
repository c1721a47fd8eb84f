package main

import (
	"context"
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/campusflow/catalogue-api/api/swagger"
	"github.com/campusflow/catalogue-api/internal/handler"
	"github.com/campusflow/catalogue-api/internal/repository"
	"github.com/campusflow/catalogue-api/internal/scheduler"
	"github.com/campusflow/catalogue-api/internal/service"
	"github.com/campusflow/catalogue-api/pkg/cache"
	"github.com/campusflow/catalogue-api/pkg/config"
	"github.com/campusflow/catalogue-api/pkg/database"
	"github.com/campusflow/catalogue-api/pkg/logger"
	corsmiddleware "github.com/campusflow/catalogue-api/pkg/middleware/cors"
	reqidmiddleware "github.com/campusflow/catalogue-api/pkg/middleware/requestid"
)

// @title Campusflow Catalogue API
// @version 1.0.0
// @description Course catalogue, timetable generation, and room availability service
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	var cacheRepo *repository.CacheRepository
	if cfg.Cache.Enabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, response cache disabled", zap.Error(err))
		} else {
			cacheRepo = repository.NewCacheRepository(redisClient, logr)
			defer cacheRepo.Close()
		}
	}

	validate := validator.New()
	metrics := service.NewMetricsService()

	var cacheSvc *service.CacheService
	if cacheRepo != nil {
		cacheSvc = service.NewCacheService(cacheRepo, metrics, cfg.Cache.TTL, logr, cfg.Cache.Enabled)
	}

	catalogueRepo := repository.NewCatalogueRepository(db)
	catalogueSvc := service.NewCatalogueService(catalogueRepo, cacheSvc, validate, logr)

	engine := scheduler.NewEngine(scheduler.Config{
		MaxSchedules:     cfg.Scheduler.MaxSchedules,
		ExhaustThreshold: cfg.Scheduler.ExhaustThreshold,
		BiweeklyPolicy:   cfg.Scheduler.BiweeklyPolicy,
	}, logr)

	notifier := service.NewWebhookNotifier(
		cfg.Notifier.WebhookURL,
		cfg.Notifier.Workers,
		cfg.Notifier.MaxRetries,
		cfg.Notifier.Timeout,
		logr,
	)
	notifier.Start(context.Background())
	defer notifier.Stop()

	scheduleSvc := service.NewScheduleService(catalogueSvc, engine, notifier, metrics, validate, cfg.Scheduler.Timeout, logr)
	roomSvc := service.NewRoomService(catalogueRepo, catalogueSvc, cacheSvc, notifier, metrics, logr)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))

	handler.RegisterRoutes(r, cfg.APIPrefix, handler.Handlers{
		Catalogue: handler.NewCatalogueHandler(catalogueSvc),
		Schedule:  handler.NewScheduleHandler(scheduleSvc),
		Room:      handler.NewRoomHandler(roomSvc),
		Health:    handler.NewHealthHandler(db, metrics),
		Metrics:   metrics,
	})

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
