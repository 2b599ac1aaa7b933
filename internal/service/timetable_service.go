package service

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/noah-isme/exam-timetable-api/internal/dto"
	"github.com/noah-isme/exam-timetable-api/internal/models"
	appErrors "github.com/noah-isme/exam-timetable-api/pkg/errors"
)

type txProvider interface {
	BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error)
}

type examStore interface {
	DeleteRange(ctx context.Context, exec sqlx.ExtContext, start, end models.Date) (int64, error)
	FormationHasExamOnDate(ctx context.Context, exec sqlx.ExtContext, formationID string, date models.Date, excludingModuleID string) (bool, error)
	StudentConflictOnDate(ctx context.Context, exec sqlx.ExtContext, moduleID string, date models.Date) (bool, error)
	BookedRoomIDs(ctx context.Context, exec sqlx.ExtContext, date models.Date, slot models.Clock) ([]string, error)
	SupervisorLoads(ctx context.Context, exec sqlx.ExtContext, date models.Date, slot models.Clock) ([]models.SupervisorLoad, error)
	Create(ctx context.Context, exec sqlx.ExtContext, exam *models.Exam) error
}

type timetableCatalog interface {
	ListSchedulableModules(ctx context.Context, exec sqlx.ExtContext) ([]models.SchedulableModule, error)
	ListRooms(ctx context.Context, exec sqlx.ExtContext, filter models.CatalogFilter) ([]models.Room, error)
}

type professorCatalog interface {
	List(ctx context.Context, exec sqlx.ExtContext, filter models.CatalogFilter) ([]models.Professor, error)
}

type enrollmentGrouper interface {
	GroupsByModule(ctx context.Context, exec sqlx.ExtContext, moduleID string) ([]models.EnrollmentGroup, error)
}

type examDateSpanner interface {
	DateSpan(ctx context.Context) (*models.Date, *models.Date, error)
}

type conflictScanner interface {
	Detect(ctx context.Context, exec sqlx.ExtContext, start, end models.Date) ([]models.Conflict, error)
}

// ModuleOrdering decides the order in which pending modules are tried each day.
type ModuleOrdering interface {
	Order(modules []models.SchedulableModule) []models.SchedulableModule
}

// CatalogOrder keeps modules in the order the catalog returned them.
type CatalogOrder struct{}

// Order implements ModuleOrdering.
func (CatalogOrder) Order(modules []models.SchedulableModule) []models.SchedulableModule {
	return modules
}

// TimetableConfig holds generation defaults.
type TimetableConfig struct {
	DayStart models.Clock
	DayEnd   models.Clock
	Ordering ModuleOrdering
}

// TimetableService generates exam timetables and audits them.
type TimetableService struct {
	catalog     timetableCatalog
	professors  professorCatalog
	enrollments enrollmentGrouper
	exams       examStore
	span        examDateSpanner
	detector    conflictScanner
	tx          txProvider
	metrics     *MetricsService
	cache       *CacheService
	validator   *validator.Validate
	logger      *zap.Logger
	cfg         TimetableConfig

	// mu serialises generation runs.
	mu sync.Mutex
}

// NewTimetableService wires generator dependencies.
func NewTimetableService(
	catalog timetableCatalog,
	professors professorCatalog,
	enrollments enrollmentGrouper,
	exams examStore,
	span examDateSpanner,
	detector conflictScanner,
	tx txProvider,
	metrics *MetricsService,
	cache *CacheService,
	validate *validator.Validate,
	logger *zap.Logger,
	cfg TimetableConfig,
) *TimetableService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.DayStart == 0 && cfg.DayEnd == 0 {
		cfg.DayStart, cfg.DayEnd = models.NewClock(9, 0), models.NewClock(17, 0)
	}
	if cfg.Ordering == nil {
		cfg.Ordering = CatalogOrder{}
	}
	return &TimetableService{
		catalog:     catalog,
		professors:  professors,
		enrollments: enrollments,
		exams:       exams,
		span:        span,
		detector:    detector,
		tx:          tx,
		metrics:     metrics,
		cache:       cache,
		validator:   validate,
		logger:      logger,
		cfg:         cfg,
	}
}

type generationWindow struct {
	start, end       models.Date
	dayStart, dayEnd models.Clock
}

func (s *TimetableService) parseRequest(req dto.GenerateTimetableRequest) (generationWindow, error) {
	var window generationWindow
	if err := s.validator.Struct(req); err != nil {
		return window, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid generation payload")
	}
	var err error
	if window.start, err = models.ParseDate(req.StartDate); err != nil {
		return window, appErrors.Clone(appErrors.ErrValidation, err.Error())
	}
	if window.end, err = models.ParseDate(req.EndDate); err != nil {
		return window, appErrors.Clone(appErrors.ErrValidation, err.Error())
	}
	if window.start.After(window.end) {
		return window, appErrors.Clone(appErrors.ErrValidation, "startDate must not be after endDate")
	}
	window.dayStart, window.dayEnd = s.cfg.DayStart, s.cfg.DayEnd
	if req.ExamStartTime != "" {
		if window.dayStart, err = models.ParseClock(req.ExamStartTime); err != nil {
			return window, appErrors.Clone(appErrors.ErrValidation, err.Error())
		}
	}
	if req.ExamEndTime != "" {
		if window.dayEnd, err = models.ParseClock(req.ExamEndTime); err != nil {
			return window, appErrors.Clone(appErrors.ErrValidation, err.Error())
		}
	}
	return window, nil
}

// Validate checks a generation request without touching the store.
func (s *TimetableService) Validate(req dto.GenerateTimetableRequest) error {
	_, err := s.parseRequest(req)
	return err
}

// Generate clears exams in the requested range and rebuilds them greedily day by day.
// Exams placed before the range is exhausted are kept even when some modules remain unscheduled.
func (s *TimetableService) Generate(ctx context.Context, req dto.GenerateTimetableRequest) (*dto.GenerateTimetableResponse, error) {
	window, err := s.parseRequest(req)
	if err != nil {
		return nil, err
	}
	if s.tx == nil {
		return nil, appErrors.Clone(appErrors.ErrInternal, "transaction provider missing")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	started := time.Now()
	result, err := s.generate(ctx, window)
	outcome := "failed"
	switch {
	case err != nil:
		outcome = "error"
	case result.Success:
		outcome = "succeeded"
	}
	if s.metrics != nil {
		generated := 0
		var conflicts []models.Conflict
		if result != nil {
			generated, conflicts = result.GeneratedExams, result.Conflicts
		}
		s.metrics.ObserveGeneration(outcome, time.Since(started), generated, conflicts)
	}
	if err != nil {
		s.logger.Error("timetable generation aborted",
			zap.String("start", window.start.String()),
			zap.String("end", window.end.String()),
			zap.Error(err),
		)
		return nil, err
	}

	if s.cache != nil {
		_ = s.cache.Invalidate(ctx, statisticsCachePattern)
	}
	s.logger.Info("timetable generated",
		zap.String("start", window.start.String()),
		zap.String("end", window.end.String()),
		zap.Int("exams", result.GeneratedExams),
		zap.Int("conflicts", len(result.Conflicts)),
		zap.Bool("success", result.Success),
		zap.Duration("elapsed", time.Since(started)),
	)
	return result, nil
}

func (s *TimetableService) generate(ctx context.Context, window generationWindow) (result *dto.GenerateTimetableResponse, err error) {
	tx, err := s.tx.BeginTxx(ctx, nil)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to begin transaction")
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	modules, err := s.catalog.ListSchedulableModules(ctx, tx)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to load modules")
	}
	rooms, err := s.catalog.ListRooms(ctx, tx, models.CatalogFilter{})
	if err != nil {
		return nil, appErrors.Internal(err, "failed to load rooms")
	}
	professors, err := s.professors.List(ctx, tx, models.CatalogFilter{})
	if err != nil {
		return nil, appErrors.Internal(err, "failed to load professors")
	}

	cleared, err := s.exams.DeleteRange(ctx, tx, window.start, window.end)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to clear exams in range")
	}
	s.logger.Debug("cleared exams in range", zap.Int64("deleted", cleared))

	run := newGenerationRun(ctx, tx, window.start, window.end, GenerateSlots(window.dayStart, window.dayEnd))
	checker := conflictChecker{exams: s.exams}
	allocator := newRoomAllocator(s.exams, rooms)
	assigner := &professorAssigner{exams: s.exams, professors: professors}
	ordered := s.cfg.Ordering.Order(modules)

	for day := window.start; !day.After(window.end) && len(run.unscheduled(ordered)) > 0; day = day.AddDays(1) {
		run.beginDay()
		for _, module := range run.unscheduled(ordered) {
			if err = s.scheduleModule(run, checker, allocator, assigner, module, day); err != nil {
				return nil, err
			}
		}
	}

	conflicts := make([]models.Conflict, 0)
	remaining := run.unscheduled(ordered)
	if len(remaining) > 0 {
		conflicts = append(conflicts, models.Conflict{
			Type:      models.ConflictDateRange,
			Remaining: len(remaining),
			Message:   fmt.Sprintf("Not enough days to schedule all exams. %d modules remaining.", len(remaining)),
		})
	}

	if s.detector != nil {
		found, detectErr := s.detector.Detect(ctx, tx, window.start, window.end)
		if detectErr != nil {
			err = appErrors.Internal(detectErr, "failed to detect conflicts")
			return nil, err
		}
		conflicts = append(conflicts, found...)
	}

	if err = tx.Commit(); err != nil {
		return nil, appErrors.Internal(err, "failed to commit timetable")
	}

	unscheduled := make([]string, 0, len(remaining))
	for _, module := range remaining {
		unscheduled = append(unscheduled, module.ID)
	}
	message := fmt.Sprintf("Generated %d exams", run.created)
	if len(remaining) > 0 {
		message = fmt.Sprintf("Generated %d exams; %d modules could not be scheduled", run.created, len(remaining))
	}
	return &dto.GenerateTimetableResponse{
		Success:        len(remaining) == 0,
		Message:        message,
		GeneratedExams: run.created,
		Conflicts:      conflicts,
		Unscheduled:    unscheduled,
		StartDate:      window.start,
		EndDate:        window.end,
	}, nil
}

// scheduleModule tries every free slot of day for module and stores the first exam that fits.
func (s *TimetableService) scheduleModule(
	run *generationRun,
	checker conflictChecker,
	rooms *roomAllocator,
	assigner *professorAssigner,
	module models.SchedulableModule,
	day models.Date,
) error {
	busy, err := checker.FormationHasExamOnDate(run, module.FormationID, day, module.ID)
	if err != nil {
		return appErrors.Internal(err, "failed to check formation exams")
	}
	if busy {
		return nil
	}

	groups, err := s.enrollments.GroupsByModule(run.ctx, run.exec, module.ID)
	if err != nil {
		return appErrors.Internal(err, "failed to load enrollment groups")
	}
	if len(groups) == 0 {
		run.markScheduled(module.ID)
		return nil
	}

	free := run.freeSlots()
	if len(free) == 0 {
		return nil
	}
	clash, err := checker.StudentConflictOnDate(run, module.ID, day)
	if err != nil {
		return appErrors.Internal(err, "failed to check student exams")
	}
	if clash {
		return nil
	}

	for _, slot := range free {
		roomClaim, err := rooms.Allocate(run, groups, day, slot)
		if err != nil {
			return appErrors.Internal(err, "failed to allocate rooms")
		}
		if roomClaim == nil {
			continue
		}
		supervisors, err := assigner.Assign(run, module, day, slot)
		if err != nil {
			roomClaim.Rollback()
			return appErrors.Internal(err, "failed to assign supervisors")
		}
		if supervisors == nil {
			roomClaim.Rollback()
			continue
		}

		exam := &models.Exam{
			ModuleID:         module.ID,
			Date:             day,
			StartTime:        slot,
			DurationMinutes:  models.ExamDurationMinutes,
			DeptHeadApproval: models.ApprovalPending,
			ViceDeanApproval: models.ApprovalPending,
			RoomIDs:          roomClaim.RoomIDs(),
			ProfessorIDs:     supervisors.ProfessorIDs(),
		}
		if err := s.exams.Create(run.ctx, run.exec, exam); err != nil {
			roomClaim.Rollback()
			supervisors.Rollback()
			return appErrors.Internal(err, "failed to store exam")
		}
		roomClaim.Commit()
		supervisors.Commit()
		run.markExam(module.ID, slot)
		s.logger.Debug("exam scheduled",
			zap.String("module_id", module.ID),
			zap.String("date", day.String()),
			zap.String("slot", slot.String()),
			zap.Strings("rooms", exam.RoomIDs),
			zap.Strings("supervisors", exam.ProfessorIDs),
		)
		return nil
	}
	return nil
}

// Conflicts audits stored exams. Missing bounds default to the span of all stored exams.
func (s *TimetableService) Conflicts(ctx context.Context, query dto.ConflictQuery) ([]models.Conflict, error) {
	if err := s.validator.Struct(query); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid conflict query")
	}
	var start, end *models.Date
	if query.StartDate != "" {
		d, err := models.ParseDate(query.StartDate)
		if err != nil {
			return nil, appErrors.Clone(appErrors.ErrValidation, err.Error())
		}
		start = &d
	}
	if query.EndDate != "" {
		d, err := models.ParseDate(query.EndDate)
		if err != nil {
			return nil, appErrors.Clone(appErrors.ErrValidation, err.Error())
		}
		end = &d
	}
	if start == nil || end == nil {
		first, last, err := s.span.DateSpan(ctx)
		if err != nil {
			return nil, appErrors.Internal(err, "failed to determine exam date span")
		}
		if first == nil || last == nil {
			return []models.Conflict{}, nil
		}
		if start == nil {
			start = first
		}
		if end == nil {
			end = last
		}
	}
	if start.After(*end) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "startDate must not be after endDate")
	}

	conflicts, err := s.detector.Detect(ctx, nil, *start, *end)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to detect conflicts")
	}
	return conflicts, nil
}
