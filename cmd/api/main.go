package main

import (
	"context"
	"fmt"
	"log"

	"github.com/go-playground/validator/v10"

	_ "github.com/luct-faculty/reporting-api/api/swagger"
	"github.com/luct-faculty/reporting-api/internal/repository"
	"github.com/luct-faculty/reporting-api/internal/router"
	"github.com/luct-faculty/reporting-api/internal/service"
	"github.com/luct-faculty/reporting-api/pkg/cache"
	"github.com/luct-faculty/reporting-api/pkg/config"
	"github.com/luct-faculty/reporting-api/pkg/database"
	"github.com/luct-faculty/reporting-api/pkg/logger"
	"github.com/luct-faculty/reporting-api/pkg/storage"
)

// @title LUCT Faculty Reporting API
// @version 1.0.0
// @description Role-based lecture reporting, feedback and rating backend
// @BasePath /api
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

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("database connection failed", "error", err)
	}
	defer db.Close()

	var cacheRepo *repository.CacheRepository
	if cfg.Cache.Enabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, continuing without cache", "error", err)
		} else {
			cacheRepo = repository.NewCacheRepository(redisClient, logr)
			defer cacheRepo.Close() //nolint:errcheck
		}
	}

	validate := validator.New()
	metricsSvc := service.NewMetricsService()

	userRepo := repository.NewUserRepository(db)
	reportRepo := repository.NewReportRepository(db)
	classRepo := repository.NewClassRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	lectureRepo := repository.NewLectureRepository(db)
	ratingRepo := repository.NewRatingRepository(db)

	authSvc := service.NewAuthService(userRepo, validate, logr, service.AuthConfig{
		Secret:     cfg.JWT.Secret,
		Expiration: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	var courseSvc *service.CourseService
	if cacheRepo != nil {
		courseSvc = service.NewCourseService(courseRepo, cacheRepo, metricsSvc, cfg.Cache.CourseTTL, validate, logr)
	} else {
		courseSvc = service.NewCourseService(courseRepo, nil, nil, 0, validate, logr)
	}

	var archiveSvc *service.ExportArchiveService
	if cfg.Export.ArchiveEnabled {
		store, err := storage.NewFileStore(cfg.Export.ArchiveDir)
		if err != nil {
			logr.Sugar().Fatalw("export archive init failed", "error", err)
		}
		signer := storage.NewTokenSigner(cfg.JWT.Secret, cfg.Export.RetainFor)
		archiveSvc = service.NewExportArchiveService(store, signer, cfg.Export.Workers, cfg.Export.RetainFor, logr)
		archiveSvc.Start(context.Background())
		defer archiveSvc.Stop()
	}

	svcs := router.Services{
		Auth:    authSvc,
		Report:  service.NewReportService(reportRepo, classRepo, validate, logr),
		Class:   service.NewClassService(classRepo, validate, logr),
		Course:  courseSvc,
		Lecture: service.NewLectureService(lectureRepo, reportRepo, validate, logr),
		Rating:  service.NewRatingService(ratingRepo, userRepo, validate, logr),
		Metrics: metricsSvc,

		ExportArchive: archiveSvc,
	}

	engine := router.New(cfg, logr, svcs)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := engine.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
