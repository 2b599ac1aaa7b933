package service

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/noah-isme/exam-timetable-api/internal/dto"
	"github.com/noah-isme/exam-timetable-api/internal/models"
	appErrors "github.com/noah-isme/exam-timetable-api/pkg/errors"
)

const statisticsCachePattern = "statistics:*"

type entityCounter interface {
	Count(ctx context.Context) (int, error)
}

type statisticsRepository interface {
	RoomUsage(ctx context.Context) ([]models.RoomUsage, error)
	DepartmentStatistics(ctx context.Context) ([]models.DepartmentStatistic, error)
}

type conflictReporter interface {
	Conflicts(ctx context.Context, query dto.ConflictQuery) ([]models.Conflict, error)
}

// StatisticsServiceParams groups constructor dependencies.
type StatisticsServiceParams struct {
	Students   entityCounter
	Professors entityCounter
	Exams      entityCounter
	Repo       statisticsRepository
	Conflicts  conflictReporter
	Cache      *CacheService
	CacheTTL   time.Duration
	Logger     *zap.Logger
}

// StatisticsService builds the dashboard summary.
type StatisticsService struct {
	students   entityCounter
	professors entityCounter
	exams      entityCounter
	repo       statisticsRepository
	conflicts  conflictReporter
	cache      *CacheService
	cacheTTL   time.Duration
	logger     *zap.Logger
	now        func() time.Time
}

// NewStatisticsService constructs a StatisticsService.
func NewStatisticsService(params StatisticsServiceParams) *StatisticsService {
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	ttl := params.CacheTTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &StatisticsService{
		students:   params.Students,
		professors: params.Professors,
		exams:      params.Exams,
		repo:       params.Repo,
		conflicts:  params.Conflicts,
		cache:      params.Cache,
		cacheTTL:   ttl,
		logger:     logger,
		now:        time.Now,
	}
}

// Summary returns totals, room utilisation, department breakdown and the
// conflict count over every stored exam. The boolean reports a cache hit.
func (s *StatisticsService) Summary(ctx context.Context) (*models.Statistics, bool, error) {
	var stats models.Statistics
	hit, err := s.cache.Remember(ctx, CacheKey("statistics", "summary"), s.cacheTTL, &stats, func(ctx context.Context) error {
		return s.load(ctx, &stats)
	})
	if err != nil {
		return nil, false, err
	}
	return &stats, hit, nil
}

func (s *StatisticsService) load(ctx context.Context, stats *models.Statistics) error {
	var (
		rooms       []models.RoomUsage
		departments []models.DepartmentStatistic
		conflicts   []models.Conflict
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		stats.TotalStudents, err = s.students.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		stats.TotalProfessors, err = s.professors.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		stats.TotalExams, err = s.exams.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		rooms, err = s.repo.RoomUsage(gctx)
		return err
	})
	g.Go(func() (err error) {
		departments, err = s.repo.DepartmentStatistics(gctx)
		return err
	})
	g.Go(func() (err error) {
		conflicts, err = s.conflicts.Conflicts(gctx, dto.ConflictQuery{})
		return err
	})
	if err := g.Wait(); err != nil {
		if appErr := appErrors.FromError(err); appErr.Code != appErrors.ErrInternal.Code {
			return appErr
		}
		return appErrors.Internal(err, "failed to compute statistics")
	}

	stats.RoomUtilization = make(map[string]int, len(rooms))
	for _, usage := range rooms {
		stats.RoomUtilization[usage.RoomName] = usage.UsageCount
	}
	if departments == nil {
		departments = []models.DepartmentStatistic{}
	}
	stats.DepartmentStats = departments
	stats.ConflictCount = len(conflicts)
	stats.GeneratedAt = s.now().UTC()

	s.logger.Debug("statistics computed",
		zap.Int("exams", stats.TotalExams),
		zap.Int("conflicts", stats.ConflictCount),
	)
	return nil
}
