package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/noah-isme/hostel-portal-api/api/swagger"
	"github.com/noah-isme/hostel-portal-api/internal/handler"
	"github.com/noah-isme/hostel-portal-api/internal/middleware"
	"github.com/noah-isme/hostel-portal-api/internal/models"
	"github.com/noah-isme/hostel-portal-api/internal/repository"
	"github.com/noah-isme/hostel-portal-api/internal/service"
	"github.com/noah-isme/hostel-portal-api/internal/upstream"
	"github.com/noah-isme/hostel-portal-api/pkg/cache"
	"github.com/noah-isme/hostel-portal-api/pkg/config"
	"github.com/noah-isme/hostel-portal-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/hostel-portal-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/hostel-portal-api/pkg/middleware/requestid"
	"github.com/noah-isme/hostel-portal-api/pkg/storage"
)

// @title Hostel Portal API
// @version 0.1.0
// @description Gateway for the hostel registration, verification and allocation lifecycle
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

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		// The gateway stays functional without Redis: the snapshot cache
		// degrades to passthrough and the submission flag to per-session.
		logr.Sugar().Warnw("redis unavailable, running without cache", "error", err)
		redisClient = nil
	}

	exportStore, err := storage.NewLocalStorage(cfg.Exports.StorageDir)
	if err != nil {
		log.Fatalf("failed to init export storage: %v", err)
	}

	validate := validator.New()

	metricsService := service.NewMetricsService()

	upstreamClient := upstream.NewClient(cfg.Upstream, metricsService, logr)
	cacheRepo := repository.NewCacheRepository(redisClient, logr)
	submissionRepo := repository.NewSubmissionRepository(redisClient)

	authService := service.NewAuthService(cfg.JWT.Secret, logr)
	timelineService := service.NewTimelineService()
	registrationService := service.NewRegistrationService(upstreamClient, timelineService, logr)
	documentService := service.NewDocumentService(upstreamClient, submissionRepo, cfg.Documents.PassportMaxBytes, cfg.Documents.ReceiptMaxBytes, logr)
	allocationService := service.NewAllocationService(upstreamClient, metricsService, cfg.Allocation.PollInterval, logr)
	reportService := service.NewReportService(upstreamClient, exportStore, logr)
	roomService := service.NewRoomService(upstreamClient, cacheRepo, metricsService, cfg.Allocation.SnapshotCacheTTL, logr)
	notificationService := service.NewNotificationService(upstreamClient)

	registrationHandler := handler.NewRegistrationHandler(registrationService)
	documentHandler := handler.NewDocumentHandler(documentService, validate)
	allocationHandler := handler.NewAllocationHandler(allocationService, reportService, validate)
	roomHandler := handler.NewRoomHandler(roomService, validate)
	notificationHandler := handler.NewNotificationHandler(notificationService)
	metricsHandler := handler.NewMetricsHandler(metricsService)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsService))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Health)
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.Use(middleware.JWT(authService))
	{
		api.GET("/registration/status", registrationHandler.Status)
		api.POST("/registration", registrationHandler.Register)
		api.PUT("/registration", registrationHandler.Update)
		api.GET("/students/profile", registrationHandler.Profile)
		api.PUT("/students/profile", registrationHandler.UpdateProfile)

		api.GET("/documents", documentHandler.Checklist)
		api.POST("/documents/upload", documentHandler.Upload)
		api.DELETE("/documents/:id", documentHandler.Remove)
		api.GET("/documents/:id/download", documentHandler.Download)
		api.POST("/documents/submit", documentHandler.Submit)
		api.POST("/documents/edit", documentHandler.Edit)

		api.GET("/rooms", roomHandler.List)
		api.GET("/rooms/blocks", roomHandler.Blocks)

		api.GET("/notifications", notificationHandler.List)
		api.PATCH("/notifications/read-all", notificationHandler.MarkAllRead)
		api.PATCH("/notifications/:id/read", notificationHandler.MarkRead)
		api.DELETE("/notifications/:id", notificationHandler.Delete)

		admin := api.Group("/admin")
		admin.Use(middleware.RequireRoles(models.RoleAdmin))
		{
			admin.GET("/registrations", registrationHandler.Overview)
			admin.GET("/documents/pending", documentHandler.Pending)
			admin.PATCH("/documents/verify/:studentId", documentHandler.Verify)

			admin.GET("/allocation", allocationHandler.Overview)
			admin.POST("/allocation/start", allocationHandler.Start)
			admin.GET("/allocation/status", allocationHandler.Status)
			admin.GET("/allocation/reports/:id", allocationHandler.Report)

			admin.POST("/rooms", roomHandler.Create)
			admin.PATCH("/rooms/:id", roomHandler.Update)
			admin.DELETE("/rooms/:id", roomHandler.Delete)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				reportService.Cleanup(cfg.Exports.ResultTTL)
			}
		}
	}()

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: r,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Sugar().Infow("shutting down")

	allocationService.Shutdown()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Warnw("server shutdown failed", "error", err)
	}
	if err := cacheRepo.Close(); err != nil {
		logr.Sugar().Warnw("redis close failed", "error", err)
	}
}
