package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/exam-timetable-api/internal/dto"
	appErrors "github.com/noah-isme/exam-timetable-api/pkg/errors"
	"github.com/noah-isme/exam-timetable-api/pkg/jobs"
)

const generationJobType = "timetable.generate"

type timetableGenerator interface {
	Validate(req dto.GenerateTimetableRequest) error
	Generate(ctx context.Context, req dto.GenerateTimetableRequest) (*dto.GenerateTimetableResponse, error)
}

type runStore interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

// TimetableRunService executes generation requests on a single background worker
// and keeps their status for polling.
type TimetableRunService struct {
	generator timetableGenerator
	store     runStore
	queue     *jobs.Queue
	ttl       time.Duration
	logger    *zap.Logger
	now       func() time.Time
}

// NewTimetableRunService builds the service and its single-worker queue. Call Start before Submit.
func NewTimetableRunService(generator timetableGenerator, store runStore, ttl time.Duration, logger *zap.Logger) *TimetableRunService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if ttl <= 0 {
		ttl = time.Hour
	}
	s := &TimetableRunService{generator: generator, store: store, ttl: ttl, logger: logger, now: time.Now}
	s.queue = jobs.NewQueue("timetable-generation", s.handle, jobs.QueueConfig{
		Workers:    1,
		BufferSize: 8,
		MaxRetries: 0,
		Logger:     logger,
	})
	return s
}

// Start launches the worker.
func (s *TimetableRunService) Start(ctx context.Context) {
	s.queue.Start(ctx)
}

// Stop waits for the worker to exit.
func (s *TimetableRunService) Stop() {
	s.queue.Stop()
}

func runKey(id string) string {
	return CacheKey("timetable", "run", id)
}

// Submit validates the request, records a queued run and hands it to the worker.
func (s *TimetableRunService) Submit(ctx context.Context, req dto.GenerateTimetableRequest) (*dto.GenerationRun, error) {
	if err := s.generator.Validate(req); err != nil {
		return nil, err
	}
	run := &dto.GenerationRun{
		ID:          uuid.NewString(),
		Status:      dto.GenerationRunQueued,
		Request:     req,
		SubmittedAt: s.now().UTC(),
	}
	if err := s.store.Set(ctx, runKey(run.ID), run, s.ttl); err != nil {
		return nil, appErrors.Internal(err, "failed to record generation run")
	}
	if err := s.queue.Enqueue(jobs.Job{ID: run.ID, Type: generationJobType, Payload: req}); err != nil {
		s.abandon(ctx, run, err)
		return nil, appErrors.Wrap(err, appErrors.ErrConflict.Code, appErrors.ErrConflict.Status, "generation queue unavailable")
	}
	s.logger.Info("generation run queued", zap.String("run_id", run.ID))
	return run, nil
}

// abandon marks a run that never reached the worker as failed.
func (s *TimetableRunService) abandon(ctx context.Context, run *dto.GenerationRun, cause error) {
	finished := s.now().UTC()
	run.Status = dto.GenerationRunFailed
	run.Error = cause.Error()
	run.FinishedAt = &finished
	if err := s.store.Set(ctx, runKey(run.ID), run, s.ttl); err != nil {
		s.logger.Warn("failed to mark run abandoned", zap.String("run_id", run.ID), zap.Error(err))
	}
}

// Get returns the latest status of a run.
func (s *TimetableRunService) Get(ctx context.Context, id string) (*dto.GenerationRun, error) {
	var run dto.GenerationRun
	if err := s.store.Get(ctx, runKey(id), &run); err != nil {
		if errors.Is(err, appErrors.ErrCacheMiss) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "generation run not found")
		}
		return nil, appErrors.Internal(err, "failed to load generation run")
	}
	return &run, nil
}

func (s *TimetableRunService) handle(ctx context.Context, job jobs.Job) error {
	req, ok := job.Payload.(dto.GenerateTimetableRequest)
	if !ok {
		return fmt.Errorf("unexpected payload %T", job.Payload)
	}
	run := dto.GenerationRun{ID: job.ID, Status: dto.GenerationRunRunning, Request: req, SubmittedAt: job.Enqueued}
	if err := s.store.Set(ctx, runKey(run.ID), run, s.ttl); err != nil {
		s.logger.Warn("failed to mark run running", zap.String("run_id", run.ID), zap.Error(err))
	}

	result, err := s.generator.Generate(ctx, req)
	finished := s.now().UTC()
	run.FinishedAt = &finished
	if err != nil {
		run.Status = dto.GenerationRunFailed
		run.Error = err.Error()
	} else {
		run.Status = dto.GenerationRunSucceeded
		run.Result = result
	}
	if storeErr := s.store.Set(ctx, runKey(run.ID), run, s.ttl); storeErr != nil {
		return fmt.Errorf("store run %s: %w", run.ID, storeErr)
	}
	return err
}
