package main

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/noah-isme/exam-timetable-api/internal/app"
	"github.com/noah-isme/exam-timetable-api/internal/handler"
	"github.com/noah-isme/exam-timetable-api/internal/middleware"
	"github.com/noah-isme/exam-timetable-api/internal/models"
	"github.com/noah-isme/exam-timetable-api/pkg/config"
	"github.com/noah-isme/exam-timetable-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/exam-timetable-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/exam-timetable-api/pkg/middleware/requestid"
)

func newRouter(a *app.App) *gin.Engine {
	cfg := a.Config

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(a.Logger))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(a.Metrics, "/health", "/ready", "/metrics"))

	metricsHandler := handler.NewMetricsHandler(a.Metrics, a.DB)
	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	authHandler := handler.NewAuthHandler(a.Auth)
	catalogHandler := handler.NewCatalogHandler(a.Catalog)
	examHandler := handler.NewExamHandler(a.Exams)
	timetableHandler := handler.NewTimetableHandler(a.Timetable, a.Runs)
	viewHandler := handler.NewTimetableViewHandler(a.Views)
	statisticsHandler := handler.NewStatisticsHandler(a.Statistics)

	api := r.Group(cfg.APIPrefix)
	api.Use(middleware.WithResponseMeta())
	api.POST("/auth/login", authHandler.Login)

	secured := api.Group("")
	secured.Use(middleware.JWT(a.Auth))

	admin := middleware.RequireRoles(models.RoleAdmin)
	staff := middleware.RequireRoles(models.RoleAdmin, models.RoleDean, models.RoleDeptHead)

	secured.GET("/auth/me", authHandler.Me)
	secured.POST("/auth/register", admin, authHandler.Register)

	secured.GET("/departments", catalogHandler.ListDepartments)
	secured.POST("/departments", admin, catalogHandler.CreateDepartment)
	secured.GET("/formations", catalogHandler.ListFormations)
	secured.POST("/formations", admin, catalogHandler.CreateFormation)
	secured.GET("/modules", catalogHandler.ListModules)
	secured.POST("/modules", admin, catalogHandler.CreateModule)
	secured.POST("/modules/:id/enrollments", admin, catalogHandler.Enroll)
	secured.GET("/students", staff, catalogHandler.ListStudents)
	secured.POST("/students", admin, catalogHandler.CreateStudent)
	secured.GET("/professors", catalogHandler.ListProfessors)
	secured.POST("/professors", admin, catalogHandler.CreateProfessor)
	secured.GET("/buildings", catalogHandler.ListBuildings)
	secured.POST("/buildings", admin, catalogHandler.CreateBuilding)
	secured.GET("/rooms", catalogHandler.ListRooms)
	secured.POST("/rooms", admin, catalogHandler.CreateRoom)

	secured.GET("/students/:id/timetable",
		middleware.RequireRolesOrSelf(middleware.OwnStudent, models.RoleAdmin, models.RoleDean, models.RoleDeptHead),
		viewHandler.Student)
	secured.GET("/professors/:id/timetable",
		middleware.RequireRolesOrSelf(middleware.OwnProfessor, models.RoleAdmin, models.RoleDean, models.RoleDeptHead),
		viewHandler.Professor)

	secured.GET("/exams", examHandler.List)
	secured.GET("/exams/pending/dept-head", middleware.RequireRoles(models.RoleAdmin, models.RoleDeptHead), examHandler.PendingDeptHead)
	secured.GET("/exams/pending/vice-dean", middleware.RequireRoles(models.RoleAdmin, models.RoleDean), examHandler.PendingViceDean)
	secured.GET("/exams/:id", examHandler.Get)
	secured.POST("/exams", admin, examHandler.Create)
	secured.DELETE("/exams/:id", admin, examHandler.Delete)
	secured.POST("/exams/:id/approve/dept-head", middleware.RequireRoles(models.RoleAdmin, models.RoleDeptHead), examHandler.ApproveDeptHead)
	secured.POST("/exams/:id/approve/vice-dean", middleware.RequireRoles(models.RoleAdmin, models.RoleDean), examHandler.ApproveViceDean)

	secured.POST("/timetable/generate", admin, timetableHandler.Generate)
	secured.GET("/timetable/runs/:id", admin, timetableHandler.Run)
	secured.GET("/conflicts", staff, timetableHandler.Conflicts)

	secured.GET("/statistics", staff, statisticsHandler.Summary)

	return r
}
