package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/noah-isme/exam-timetable-api/internal/models"
)

type examDetailLister interface {
	ListDetails(ctx context.Context, exec sqlx.ExtContext, filter models.ExamFilter) ([]models.ExamDetail, error)
}

type enrollmentLister interface {
	ListByModules(ctx context.Context, exec sqlx.ExtContext, moduleIDs []string) ([]models.Enrollment, error)
}

// ConflictDetector audits stored exams in a date range and reports every rule they break.
// It never writes.
type ConflictDetector struct {
	exams       examDetailLister
	enrollments enrollmentLister
	logger      *zap.Logger
}

// NewConflictDetector constructs the detector.
func NewConflictDetector(exams examDetailLister, enrollments enrollmentLister, logger *zap.Logger) *ConflictDetector {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ConflictDetector{exams: exams, enrollments: enrollments, logger: logger}
}

// Detect scans exams dated within [start,end]. A nil exec reads outside any transaction.
func (d *ConflictDetector) Detect(ctx context.Context, exec sqlx.ExtContext, start, end models.Date) ([]models.Conflict, error) {
	exams, err := d.exams.ListDetails(ctx, exec, models.ExamFilter{StartDate: &start, EndDate: &end})
	if err != nil {
		return nil, err
	}
	if len(exams) == 0 {
		return []models.Conflict{}, nil
	}

	moduleIDs := make([]string, 0, len(exams))
	seen := make(map[string]bool, len(exams))
	for _, exam := range exams {
		if !seen[exam.ModuleID] {
			seen[exam.ModuleID] = true
			moduleIDs = append(moduleIDs, exam.ModuleID)
		}
	}
	enrollments, err := d.enrollments.ListByModules(ctx, exec, moduleIDs)
	if err != nil {
		return nil, err
	}
	studentsByModule := make(map[string][]string, len(moduleIDs))
	for _, enrollment := range enrollments {
		studentsByModule[enrollment.ModuleID] = append(studentsByModule[enrollment.ModuleID], enrollment.StudentID)
	}

	var conflicts []models.Conflict
	conflicts = append(conflicts, studentConflicts(exams, studentsByModule)...)
	conflicts = append(conflicts, professorConflicts(exams)...)
	conflicts = append(conflicts, capacityConflicts(exams, studentsByModule)...)
	conflicts = append(conflicts, formationConflicts(exams)...)
	SortConflicts(conflicts)

	d.logger.Debug("conflict scan finished",
		zap.String("start", start.String()),
		zap.String("end", end.String()),
		zap.Int("exams", len(exams)),
		zap.Int("conflicts", len(conflicts)),
	)
	return conflicts, nil
}

type studentDay struct {
	studentID string
	date      string
}

func studentConflicts(exams []models.ExamDetail, studentsByModule map[string][]string) []models.Conflict {
	counts := make(map[studentDay]int)
	for _, exam := range exams {
		for _, studentID := range studentsByModule[exam.ModuleID] {
			counts[studentDay{studentID: studentID, date: exam.Date.String()}]++
		}
	}
	var conflicts []models.Conflict
	for key, count := range counts {
		if count <= 1 {
			continue
		}
		conflicts = append(conflicts, models.Conflict{
			Type:      models.ConflictStudent,
			StudentID: key.studentID,
			Date:      key.date,
			ExamCount: count,
			Message:   fmt.Sprintf("Student %s has %d exams on %s", key.studentID, count, key.date),
		})
	}
	return conflicts
}

type professorSlot struct {
	professorID string
	date        string
	time        string
}

func professorConflicts(exams []models.ExamDetail) []models.Conflict {
	names := make(map[string]string)
	perSlot := make(map[professorSlot]int)
	perDay := make(map[professorSlot]int)
	for _, exam := range exams {
		for _, supervisor := range exam.Supervisors {
			names[supervisor.ProfessorID] = supervisor.ProfessorName
			date := exam.Date.String()
			perSlot[professorSlot{supervisor.ProfessorID, date, exam.StartTime.String()}]++
			perDay[professorSlot{professorID: supervisor.ProfessorID, date: date}]++
		}
	}

	var conflicts []models.Conflict
	for key, count := range perSlot {
		if count <= 1 {
			continue
		}
		conflicts = append(conflicts, models.Conflict{
			Type:          models.ConflictProfessorTime,
			ProfessorID:   key.professorID,
			ProfessorName: names[key.professorID],
			Date:          key.date,
			Time:          key.time,
			ExamCount:     count,
			Message:       fmt.Sprintf("Professor %s has %d exams at %s on %s", displayName(names[key.professorID], key.professorID), count, key.time, key.date),
		})
	}
	for key, count := range perDay {
		if count <= MaxDailySupervisions {
			continue
		}
		conflicts = append(conflicts, models.Conflict{
			Type:          models.ConflictProfessorDaily,
			ProfessorID:   key.professorID,
			ProfessorName: names[key.professorID],
			Date:          key.date,
			ExamCount:     count,
			Message: fmt.Sprintf("Professor %s has %d exams on %s (max %d allowed)",
				displayName(names[key.professorID], key.professorID), count, key.date, MaxDailySupervisions),
		})
	}
	return conflicts
}

func capacityConflicts(exams []models.ExamDetail, studentsByModule map[string][]string) []models.Conflict {
	var conflicts []models.Conflict
	for _, exam := range exams {
		enrolled := len(studentsByModule[exam.ModuleID])
		capacity := exam.EffectiveCapacity()
		if enrolled <= capacity {
			continue
		}
		seats := capacity
		conflicts = append(conflicts, models.Conflict{
			Type:     models.ConflictCapacity,
			ExamID:   exam.ExamID,
			ModuleID: exam.ModuleID,
			Date:     exam.Date.String(),
			Students: enrolled,
			Capacity: &seats,
			Message:  fmt.Sprintf("Exam %s has %d students but only %d capacity", exam.ExamID, enrolled, capacity),
		})
	}
	return conflicts
}

type formationDay struct {
	formationID string
	date        string
}

func formationConflicts(exams []models.ExamDetail) []models.Conflict {
	names := make(map[string]string)
	modules := make(map[formationDay][]string)
	for _, exam := range exams {
		key := formationDay{formationID: exam.FormationID, date: exam.Date.String()}
		names[exam.FormationID] = exam.FormationName
		modules[key] = append(modules[key], exam.ModuleName)
	}

	var conflicts []models.Conflict
	for key, moduleNames := range modules {
		if len(moduleNames) <= 1 {
			continue
		}
		sort.Strings(moduleNames)
		conflicts = append(conflicts, models.Conflict{
			Type:          models.ConflictFormation,
			FormationID:   key.formationID,
			FormationName: names[key.formationID],
			Date:          key.date,
			ExamCount:     len(moduleNames),
			Modules:       moduleNames,
			Message: fmt.Sprintf("Formation %s has %d exams on %s: %s",
				displayName(names[key.formationID], key.formationID), len(moduleNames), key.date, strings.Join(moduleNames, ", ")),
		})
	}
	return conflicts
}

func displayName(name, fallback string) string {
	if name != "" {
		return name
	}
	return fallback
}

// SortConflicts orders findings by type, date, time and then the offending identifiers.
func SortConflicts(conflicts []models.Conflict) {
	sort.SliceStable(conflicts, func(i, j int) bool {
		a, b := conflicts[i], conflicts[j]
		if a.Type.Rank() != b.Type.Rank() {
			return a.Type.Rank() < b.Type.Rank()
		}
		if a.Date != b.Date {
			return a.Date < b.Date
		}
		if a.Time != b.Time {
			return a.Time < b.Time
		}
		return conflictSubject(a) < conflictSubject(b)
	})
}

func conflictSubject(c models.Conflict) string {
	return c.StudentID + c.ProfessorID + c.ExamID + c.FormationID
}
