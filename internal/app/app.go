package app

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/noah-isme/exam-timetable-api/internal/models"
	"github.com/noah-isme/exam-timetable-api/internal/repository"
	"github.com/noah-isme/exam-timetable-api/internal/service"
	"github.com/noah-isme/exam-timetable-api/pkg/cache"
	"github.com/noah-isme/exam-timetable-api/pkg/config"
	"github.com/noah-isme/exam-timetable-api/pkg/database"
	"github.com/noah-isme/exam-timetable-api/pkg/export"
)

// App holds the wired services shared by the HTTP server and the operator CLI.
type App struct {
	Config *config.Config
	Logger *zap.Logger
	DB     *sqlx.DB
	Redis  *redis.Client

	Metrics    *service.MetricsService
	Auth       *service.AuthService
	Catalog    *service.CatalogService
	Exams      *service.ExamService
	Timetable  *service.TimetableService
	Views      *service.TimetableViewService
	Statistics *service.StatisticsService
	// Runs is nil unless asynchronous generation is enabled.
	Runs *service.TimetableRunService
}

// New connects to PostgreSQL and, when enabled, Redis, then wires every service.
func New(cfg *config.Config, logger *zap.Logger) (*App, error) {
	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("connect redis: %w", err)
	}

	a, err := Wire(cfg, logger, db, redisClient)
	if err != nil {
		_ = db.Close()
		if redisClient != nil {
			_ = redisClient.Close()
		}
		return nil, err
	}
	return a, nil
}

// Wire builds the service graph over existing connections. redisClient may be nil.
func Wire(cfg *config.Config, logger *zap.Logger, db *sqlx.DB, redisClient *redis.Client) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	dayStart, err := models.ParseClock(cfg.Timetable.DayStart)
	if err != nil {
		return nil, fmt.Errorf("TIMETABLE_DAY_START: %w", err)
	}
	dayEnd, err := models.ParseClock(cfg.Timetable.DayEnd)
	if err != nil {
		return nil, fmt.Errorf("TIMETABLE_DAY_END: %w", err)
	}

	validate := validator.New()
	metrics := service.NewMetricsService()

	cacheRepo := repository.NewCacheRepository(redisClient, logger)
	cacheSvc := service.NewCacheService(cacheRepo, metrics, cfg.Statistics.CacheTTL, logger, cfg.Statistics.CacheEnabled)

	users := repository.NewUserRepository(db)
	catalog := repository.NewCatalogRepository(db)
	students := repository.NewStudentRepository(db)
	professors := repository.NewProfessorRepository(db)
	enrollments := repository.NewEnrollmentRepository(db)
	exams := repository.NewExamRepository(db)
	stats := repository.NewStatisticsRepository(db)

	detector := service.NewConflictDetector(exams, enrollments, logger.Named("conflicts"))
	timetable := service.NewTimetableService(
		catalog,
		professors,
		enrollments,
		exams,
		exams,
		detector,
		db,
		metrics,
		cacheSvc,
		validate,
		logger.Named("timetable"),
		service.TimetableConfig{DayStart: dayStart, DayEnd: dayEnd},
	)

	a := &App{
		Config:  cfg,
		Logger:  logger,
		DB:      db,
		Redis:   redisClient,
		Metrics: metrics,
		Auth: service.NewAuthService(users, validate, logger.Named("auth"), service.AuthConfig{
			AccessTokenSecret: cfg.JWT.Secret,
			AccessTokenExpiry: cfg.JWT.Expiration,
			Issuer:            cfg.JWT.Issuer,
		}),
		Catalog: service.NewCatalogService(service.CatalogServiceParams{
			Catalog:     catalog,
			Rooms:       catalog,
			Students:    students,
			Professors:  professors,
			Enrollments: enrollments,
			Cache:       cacheSvc,
			Validator:   validate,
			Logger:      logger.Named("catalog"),
		}),
		Exams:     service.NewExamService(exams, catalog, db, cacheSvc, validate, logger.Named("exams")),
		Timetable: timetable,
		Views: service.NewTimetableViewService(students, professors, exams,
			export.NewCSVExporter(), export.NewPDFExporter(), logger.Named("timetable-view")),
		Statistics: service.NewStatisticsService(service.StatisticsServiceParams{
			Students:   students,
			Professors: professors,
			Exams:      exams,
			Repo:       stats,
			Conflicts:  timetable,
			Cache:      cacheSvc,
			CacheTTL:   cfg.Statistics.CacheTTL,
			Logger:     logger.Named("statistics"),
		}),
	}
	if cfg.Timetable.AsyncEnabled {
		a.Runs = service.NewTimetableRunService(timetable, cacheRepo, cfg.Timetable.RunTTL, logger.Named("timetable-runs"))
	}
	return a, nil
}

// Start launches background workers.
func (a *App) Start(ctx context.Context) {
	if a.Runs != nil {
		a.Runs.Start(ctx)
	}
}

// Close stops workers and releases connections.
func (a *App) Close() error {
	if a.Runs != nil {
		a.Runs.Stop()
	}
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			a.Logger.Warn("redis close failed", zap.Error(err))
		}
	}
	return a.DB.Close()
}
