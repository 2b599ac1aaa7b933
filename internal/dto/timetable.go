package dto

import (
	"time"

	"github.com/noah-isme/exam-timetable-api/internal/models"
)

// GenerateTimetableRequest asks the engine to rebuild exams over a date range.
type GenerateTimetableRequest struct {
	StartDate     string `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate       string `json:"endDate" validate:"required,datetime=2006-01-02"`
	ExamStartTime string `json:"examStartTime" validate:"omitempty,datetime=15:04"`
	ExamEndTime   string `json:"examEndTime" validate:"omitempty,datetime=15:04"`
}

// GenerateTimetableResponse reports the outcome of one generation run.
type GenerateTimetableResponse struct {
	Success        bool              `json:"success"`
	Message        string            `json:"message"`
	GeneratedExams int               `json:"generatedExams"`
	Conflicts      []models.Conflict `json:"conflicts"`
	Unscheduled    []string          `json:"unscheduledModuleIds,omitempty"`
	StartDate      models.Date       `json:"startDate"`
	EndDate        models.Date       `json:"endDate"`
}

// GenerationRunStatus tracks a background generation run.
type GenerationRunStatus string

const (
	GenerationRunQueued    GenerationRunStatus = "QUEUED"
	GenerationRunRunning   GenerationRunStatus = "RUNNING"
	GenerationRunSucceeded GenerationRunStatus = "SUCCEEDED"
	GenerationRunFailed    GenerationRunStatus = "FAILED"
)

// GenerationRun is the pollable record of an asynchronous generation.
type GenerationRun struct {
	ID          string                     `json:"id"`
	Status      GenerationRunStatus        `json:"status"`
	Request     GenerateTimetableRequest   `json:"request"`
	Result      *GenerateTimetableResponse `json:"result,omitempty"`
	Error       string                     `json:"error,omitempty"`
	SubmittedAt time.Time                  `json:"submittedAt"`
	FinishedAt  *time.Time                 `json:"finishedAt,omitempty"`
}

// ConflictQuery bounds the standalone audit. Missing bounds default to the exam date span.
type ConflictQuery struct {
	StartDate string `form:"startDate" json:"startDate" validate:"omitempty,datetime=2006-01-02"`
	EndDate   string `form:"endDate" json:"endDate" validate:"omitempty,datetime=2006-01-02"`
}

// TimetableEntry is one exam on a personal timetable.
type TimetableEntry struct {
	ExamID          string                        `json:"examId"`
	Module          string                        `json:"module"`
	Date            models.Date                   `json:"date"`
	StartTime       models.Clock                  `json:"startTime"`
	DurationMinutes int                           `json:"durationMinutes"`
	Rooms           []models.ExamRoomDetail       `json:"rooms"`
	Supervisors     []models.ExamSupervisorDetail `json:"supervisors,omitempty"`
}

// StudentTimetable is the published exam timetable of a student.
type StudentTimetable struct {
	Student   models.Student   `json:"student"`
	Timetable []TimetableEntry `json:"timetable"`
}

// ProfessorTimetable is the published supervision timetable of a professor.
type ProfessorTimetable struct {
	Professor models.Professor `json:"professor"`
	Timetable []TimetableEntry `json:"timetable"`
}
