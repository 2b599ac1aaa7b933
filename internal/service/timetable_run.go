package service

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/exam-timetable-api/internal/models"
)

// generationRun carries the mutable state of one timetable generation so that
// components receive it explicitly instead of sharing hidden fields.
type generationRun struct {
	ctx   context.Context
	exec  sqlx.ExtContext
	start models.Date
	end   models.Date
	slots []models.Clock

	scheduled map[string]bool
	usedSlots map[models.Clock]bool
	created   int
	ledger    *reservationLedger
}

func newGenerationRun(ctx context.Context, exec sqlx.ExtContext, start, end models.Date, slots []models.Clock) *generationRun {
	return &generationRun{
		ctx:       ctx,
		exec:      exec,
		start:     start,
		end:       end,
		slots:     slots,
		scheduled: make(map[string]bool),
		usedSlots: make(map[models.Clock]bool),
		ledger:    newReservationLedger(),
	}
}

// beginDay resets the per-day slot bookkeeping.
func (r *generationRun) beginDay() {
	r.usedSlots = make(map[models.Clock]bool)
}

// freeSlots returns today's candidate slots not yet taken by an exam of this run.
func (r *generationRun) freeSlots() []models.Clock {
	free := make([]models.Clock, 0, len(r.slots))
	for _, slot := range r.slots {
		if !r.usedSlots[slot] {
			free = append(free, slot)
		}
	}
	return free
}

func (r *generationRun) markScheduled(moduleID string) {
	r.scheduled[moduleID] = true
}

func (r *generationRun) markExam(moduleID string, slot models.Clock) {
	r.scheduled[moduleID] = true
	r.usedSlots[slot] = true
	r.created++
}

func (r *generationRun) unscheduled(modules []models.SchedulableModule) []models.SchedulableModule {
	pending := make([]models.SchedulableModule, 0, len(modules))
	for _, module := range modules {
		if !r.scheduled[module.ID] {
			pending = append(pending, module)
		}
	}
	return pending
}

func slotKey(date models.Date, slot models.Clock) string {
	return date.String() + " " + slot.String()
}

// reservationLedger holds room and supervisor claims that are not yet backed by a stored exam.
type reservationLedger struct {
	rooms       map[string]map[string]bool
	supervisors map[string]map[string][]models.Clock
}

func newReservationLedger() *reservationLedger {
	return &reservationLedger{
		rooms:       make(map[string]map[string]bool),
		supervisors: make(map[string]map[string][]models.Clock),
	}
}

func (l *reservationLedger) roomHeld(date models.Date, slot models.Clock, roomID string) bool {
	return l.rooms[slotKey(date, slot)][roomID]
}

func (l *reservationLedger) holdRooms(date models.Date, slot models.Clock, roomIDs []string) {
	key := slotKey(date, slot)
	held := l.rooms[key]
	if held == nil {
		held = make(map[string]bool)
		l.rooms[key] = held
	}
	for _, id := range roomIDs {
		held[id] = true
	}
}

func (l *reservationLedger) releaseRooms(date models.Date, slot models.Clock, roomIDs []string) {
	key := slotKey(date, slot)
	held := l.rooms[key]
	for _, id := range roomIDs {
		delete(held, id)
	}
	if len(held) == 0 {
		delete(l.rooms, key)
	}
}

func (l *reservationLedger) heldSupervision(date models.Date, professorID string) []models.Clock {
	return l.supervisors[date.String()][professorID]
}

func (l *reservationLedger) holdSupervisors(date models.Date, slot models.Clock, professorIDs []string) {
	key := date.String()
	held := l.supervisors[key]
	if held == nil {
		held = make(map[string][]models.Clock)
		l.supervisors[key] = held
	}
	for _, id := range professorIDs {
		held[id] = append(held[id], slot)
	}
}

func (l *reservationLedger) releaseSupervisors(date models.Date, slot models.Clock, professorIDs []string) {
	key := date.String()
	held := l.supervisors[key]
	for _, id := range professorIDs {
		slots := held[id]
		for i, s := range slots {
			if s == slot {
				slots = append(slots[:i], slots[i+1:]...)
				break
			}
		}
		if len(slots) == 0 {
			delete(held, id)
		} else {
			held[id] = slots
		}
	}
	if len(held) == 0 {
		delete(l.supervisors, key)
	}
}
