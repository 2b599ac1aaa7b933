package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/noah-isme/exam-timetable-api/internal/dto"
	"github.com/noah-isme/exam-timetable-api/internal/models"
	appErrors "github.com/noah-isme/exam-timetable-api/pkg/errors"
)

type examRepository interface {
	Create(ctx context.Context, exec sqlx.ExtContext, exam *models.Exam) error
	FindByID(ctx context.Context, id string) (*models.Exam, error)
	Delete(ctx context.Context, id string) error
	UpdateDeptHeadApproval(ctx context.Context, id string, status models.ApprovalStatus) error
	UpdateViceDeanApproval(ctx context.Context, id string, status models.ApprovalStatus) error
	ListDetails(ctx context.Context, exec sqlx.ExtContext, filter models.ExamFilter) ([]models.ExamDetail, error)
}

type moduleFinder interface {
	FindModule(ctx context.Context, id string) (*models.Module, error)
}

// ExamService manages stored exams and their two-step approval.
type ExamService struct {
	repo      examRepository
	modules   moduleFinder
	tx        txProvider
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewExamService constructs an ExamService.
func NewExamService(repo examRepository, modules moduleFinder, tx txProvider, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *ExamService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExamService{repo: repo, modules: modules, tx: tx, cache: cache, validator: validate, logger: logger}
}

// List returns exams visible to role. Students and professors only see published
// exams; department heads do not see exams they rejected unless includePending is set.
func (s *ExamService) List(ctx context.Context, role models.UserRole, query dto.ExamQuery) ([]models.ExamDetail, error) {
	if err := s.validator.Struct(query); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid exam query")
	}
	filter := models.ExamFilter{ModuleID: query.ModuleID}
	if query.StartDate != "" {
		start, err := models.ParseDate(query.StartDate)
		if err != nil {
			return nil, appErrors.Clone(appErrors.ErrValidation, err.Error())
		}
		filter.StartDate = &start
	}
	if query.EndDate != "" {
		end, err := models.ParseDate(query.EndDate)
		if err != nil {
			return nil, appErrors.Clone(appErrors.ErrValidation, err.Error())
		}
		filter.EndDate = &end
	}
	switch role {
	case models.RoleStudent, models.RoleProfessor:
		filter.PublishedOnly = true
	case models.RoleDeptHead:
		filter.HideRejected = !query.IncludePending
	}

	exams, err := s.repo.ListDetails(ctx, nil, filter)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list exams")
	}
	if exams == nil {
		exams = []models.ExamDetail{}
	}
	return exams, nil
}

// Get returns one exam.
func (s *ExamService) Get(ctx context.Context, id string) (*models.Exam, error) {
	exam, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "exam not found")
		}
		return nil, appErrors.Internal(err, "failed to load exam")
	}
	return exam, nil
}

// Create stores a hand-entered exam with its rooms and supervisors. No placement
// rule is enforced; the conflict report flags violations.
func (s *ExamService) Create(ctx context.Context, req dto.CreateExamRequest) (exam *models.Exam, err error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid exam payload")
	}
	date, err := models.ParseDate(req.Date)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, err.Error())
	}
	start, err := models.ParseClock(req.StartTime)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, err.Error())
	}
	if _, err := s.modules.FindModule(ctx, req.ModuleID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "module not found")
		}
		return nil, appErrors.Internal(err, "failed to load module")
	}

	exam = &models.Exam{
		ModuleID:         req.ModuleID,
		Date:             date,
		StartTime:        start,
		DurationMinutes:  req.DurationMinutes,
		DeptHeadApproval: models.ApprovalPending,
		ViceDeanApproval: models.ApprovalPending,
		RoomIDs:          req.RoomIDs,
		ProfessorIDs:     req.ProfessorIDs,
	}

	tx, err := s.tx.BeginTxx(ctx, nil)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to begin transaction")
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()
	if err = s.repo.Create(ctx, tx, exam); err != nil {
		return nil, appErrors.Internal(err, "failed to create exam")
	}
	if err = tx.Commit(); err != nil {
		return nil, appErrors.Internal(err, "failed to commit exam")
	}

	s.invalidate(ctx)
	s.logger.Info("exam created", zap.String("exam_id", exam.ID), zap.String("module_id", exam.ModuleID))
	return exam, nil
}

// Delete removes an exam and its bookings.
func (s *ExamService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "exam not found")
		}
		return appErrors.Internal(err, "failed to delete exam")
	}
	s.invalidate(ctx)
	return nil
}

// ApproveDeptHead records the department-head decision.
func (s *ExamService) ApproveDeptHead(ctx context.Context, id string, req dto.ApprovalRequest) (*models.Exam, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid approval payload")
	}
	if err := s.repo.UpdateDeptHeadApproval(ctx, id, models.Decision(*req.Approved)); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "exam not found")
		}
		return nil, appErrors.Internal(err, "failed to record approval")
	}
	return s.Get(ctx, id)
}

// ApproveViceDean records the vice-dean decision. It is refused until the
// department head has approved the exam.
func (s *ExamService) ApproveViceDean(ctx context.Context, id string, req dto.ApprovalRequest) (*models.Exam, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid approval payload")
	}
	exam, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if exam.DeptHeadApproval != models.ApprovalApproved {
		return nil, appErrors.Clone(appErrors.ErrPreconditionFailed, "exam must be approved by the department head first")
	}
	if err := s.repo.UpdateViceDeanApproval(ctx, id, models.Decision(*req.Approved)); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrPreconditionFailed, "exam must be approved by the department head first")
		}
		return nil, appErrors.Internal(err, "failed to record approval")
	}
	return s.Get(ctx, id)
}

// PendingDeptHead lists exams awaiting the department head.
func (s *ExamService) PendingDeptHead(ctx context.Context) ([]models.ExamDetail, error) {
	return s.listPending(ctx, models.ExamFilter{DeptHeadStatus: models.ApprovalPending})
}

// PendingViceDean lists exams approved by the department head and awaiting the vice-dean.
func (s *ExamService) PendingViceDean(ctx context.Context) ([]models.ExamDetail, error) {
	return s.listPending(ctx, models.ExamFilter{DeptHeadStatus: models.ApprovalApproved, ViceDeanStatus: models.ApprovalPending})
}

func (s *ExamService) listPending(ctx context.Context, filter models.ExamFilter) ([]models.ExamDetail, error) {
	exams, err := s.repo.ListDetails(ctx, nil, filter)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list pending exams")
	}
	if exams == nil {
		exams = []models.ExamDetail{}
	}
	return exams, nil
}

func (s *ExamService) invalidate(ctx context.Context) {
	if s.cache != nil {
		_ = s.cache.Invalidate(ctx, statisticsCachePattern)
	}
}
