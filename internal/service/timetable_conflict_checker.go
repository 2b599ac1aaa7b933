package service

import (
	"github.com/noah-isme/exam-timetable-api/internal/models"
)

// conflictChecker answers the date-level collision questions asked before any allocation.
type conflictChecker struct {
	exams examStore
}

// FormationHasExamOnDate reports whether another module of formationID is already examined on date.
func (c conflictChecker) FormationHasExamOnDate(run *generationRun, formationID string, date models.Date, excludingModuleID string) (bool, error) {
	return c.exams.FormationHasExamOnDate(run.ctx, run.exec, formationID, date, excludingModuleID)
}

// StudentConflictOnDate reports whether any student of moduleID already sits an exam on date.
func (c conflictChecker) StudentConflictOnDate(run *generationRun, moduleID string, date models.Date) (bool, error) {
	return c.exams.StudentConflictOnDate(run.ctx, run.exec, moduleID, date)
}
