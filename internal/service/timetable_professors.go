package service

import (
	"github.com/noah-isme/exam-timetable-api/internal/models"
)

const (
	// RequiredSupervisors is the number of professors every exam needs.
	RequiredSupervisors = 2
	// MaxDailySupervisions caps how many exams one professor supervises on a date.
	MaxDailySupervisions = 3
)

// professorAssigner picks supervisors, preferring the module's department.
type professorAssigner struct {
	exams      examStore
	professors []models.Professor
}

// supervisorReservation holds the professors accepted for one exam attempt.
type supervisorReservation struct {
	ledger       *reservationLedger
	date         models.Date
	slot         models.Clock
	professorIDs []string
	closed       bool
}

// ProfessorIDs returns the accepted supervisors in acceptance order.
func (r *supervisorReservation) ProfessorIDs() []string {
	return r.professorIDs
}

// Commit finalises the claim once the exam is stored.
func (r *supervisorReservation) Commit() {
	r.release()
}

// Rollback frees the professors after an aborted attempt.
func (r *supervisorReservation) Rollback() {
	r.release()
}

func (r *supervisorReservation) release() {
	if r == nil || r.closed {
		return
	}
	r.ledger.releaseSupervisors(r.date, r.slot, r.professorIDs)
	r.closed = true
}

// candidates orders department professors first, then the rest, each in catalog order.
func (a *professorAssigner) candidates(departmentID string) []models.Professor {
	ordered := make([]models.Professor, 0, len(a.professors))
	for _, professor := range a.professors {
		if professor.DepartmentID == departmentID {
			ordered = append(ordered, professor)
		}
	}
	for _, professor := range a.professors {
		if professor.DepartmentID != departmentID {
			ordered = append(ordered, professor)
		}
	}
	return ordered
}

// Assign returns RequiredSupervisors professors free at date and slot, or nil when too few qualify.
func (a *professorAssigner) Assign(run *generationRun, module models.SchedulableModule, date models.Date, slot models.Clock) (*supervisorReservation, error) {
	loads, err := a.exams.SupervisorLoads(run.ctx, run.exec, date, slot)
	if err != nil {
		return nil, err
	}
	byProfessor := make(map[string]models.SupervisorLoad, len(loads))
	for _, load := range loads {
		byProfessor[load.ProfessorID] = load
	}

	accepted := make([]string, 0, RequiredSupervisors)
	for _, professor := range a.candidates(module.DepartmentID) {
		load := byProfessor[professor.ID]
		daily := load.DailyCount
		busy := load.BusyAtSlot
		for _, held := range run.ledger.heldSupervision(date, professor.ID) {
			daily++
			if held == slot {
				busy = true
			}
		}
		if busy || daily >= MaxDailySupervisions {
			continue
		}
		accepted = append(accepted, professor.ID)
		if len(accepted) == RequiredSupervisors {
			break
		}
	}
	if len(accepted) < RequiredSupervisors {
		return nil, nil
	}

	run.ledger.holdSupervisors(date, slot, accepted)
	return &supervisorReservation{ledger: run.ledger, date: date, slot: slot, professorIDs: accepted}, nil
}
