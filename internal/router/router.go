package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/luct-faculty/reporting-api/internal/handler"
	"github.com/luct-faculty/reporting-api/internal/middleware"
	"github.com/luct-faculty/reporting-api/internal/models"
	"github.com/luct-faculty/reporting-api/internal/service"
	"github.com/luct-faculty/reporting-api/pkg/config"
	"github.com/luct-faculty/reporting-api/pkg/logger"
	corsmiddleware "github.com/luct-faculty/reporting-api/pkg/middleware/cors"
	reqidmiddleware "github.com/luct-faculty/reporting-api/pkg/middleware/requestid"
	"go.uber.org/zap"
)

// Services bundles everything the router mounts.
type Services struct {
	Auth    *service.AuthService
	Report  *service.ReportService
	Class   *service.ClassService
	Course  *service.CourseService
	Lecture *service.LectureService
	Rating  *service.RatingService
	Metrics *service.MetricsService

	// ExportArchive is optional; nil disables the re-download route.
	ExportArchive *service.ExportArchiveService
}

// New builds the gin engine with every route and its role gate.
func New(cfg *config.Config, logr *zap.Logger, svcs Services) *gin.Engine {
	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(svcs.Metrics))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", handler.NewMetricsHandler(svcs.Metrics).Scrape)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	authHandler := handler.NewAuthHandler(svcs.Auth)
	reportHandler := handler.NewReportHandler(svcs.Report, svcs.ExportArchive)
	classHandler := handler.NewClassHandler(svcs.Class)
	courseHandler := handler.NewCourseHandler(svcs.Course)
	lectureHandler := handler.NewLectureHandler(svcs.Lecture)
	ratingHandler := handler.NewRatingHandler(svcs.Rating)
	monitoringHandler := handler.NewMonitoringHandler(svcs.Report)

	api := r.Group(cfg.APIPrefix)

	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/register", authHandler.Register)

	// Course listing is the one public read.
	api.GET("/courses", courseHandler.List)

	secured := api.Group("", middleware.Auth(svcs.Auth))

	secured.GET("/reports", reportHandler.List)
	secured.GET("/reports/prl-feedback", middleware.RequireRoles(models.RolePRL, models.RolePL), reportHandler.ListFeedback)
	secured.GET("/reports/export", middleware.RequireRoles(models.RolePL, models.RolePRL), reportHandler.Export)
	secured.GET("/reports/export/download", middleware.RequireRoles(models.RolePL, models.RolePRL), reportHandler.Download)
	secured.GET("/reports/:id", reportHandler.Get)
	secured.POST("/reports", middleware.RequireRoles(models.RoleLecturer), reportHandler.Create)
	secured.PUT("/reports/:id", middleware.RequireRoles(models.RoleLecturer), reportHandler.Update)
	secured.DELETE("/reports/:id", middleware.RequireRoles(models.RoleLecturer), reportHandler.Delete)
	secured.POST("/reports/feedback/:id", middleware.RequireRoles(models.RolePRL), reportHandler.AddFeedback)

	secured.GET("/classes", middleware.RequireRoles(models.RoleLecturer, models.RolePL, models.RolePRL), classHandler.List)
	secured.POST("/classes", middleware.RequireRoles(models.RoleLecturer), classHandler.Create)
	secured.PUT("/classes/:id", middleware.RequireRoles(models.RoleLecturer), classHandler.Update)
	secured.DELETE("/classes/:id", middleware.RequireRoles(models.RoleLecturer), classHandler.Delete)

	secured.POST("/courses", middleware.RequireRoles(models.RolePL), courseHandler.Create)
	secured.DELETE("/courses/:id", middleware.RequireRoles(models.RolePL), courseHandler.Delete)

	secured.GET("/lectures", middleware.RequireRoles(models.RoleLecturer, models.RolePL, models.RolePRL), lectureHandler.List)
	secured.GET("/lectures/available-reports", lectureHandler.AvailableReports)
	secured.POST("/lectures", middleware.RequireRoles(models.RolePL), lectureHandler.Assign)
	secured.PUT("/lectures/:id", middleware.RequireRoles(models.RolePL), lectureHandler.Update)
	secured.DELETE("/lectures/:id", middleware.RequireRoles(models.RolePL), lectureHandler.Delete)

	secured.POST("/rating", middleware.RequireRoles(models.RoleStudent, models.RoleLecturer), ratingHandler.Create)
	secured.GET("/rating", ratingHandler.List)
	secured.GET("/students-to-rate", middleware.RequireRoles(models.RoleLecturer), ratingHandler.StudentsToRate)
	secured.GET("/lectures-to-rate", middleware.RequireRoles(models.RoleStudent), ratingHandler.LecturesToRate)

	secured.GET("/monitoring", monitoringHandler.List)

	return r
}
