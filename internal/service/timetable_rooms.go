package service

import (
	"sort"

	"github.com/noah-isme/exam-timetable-api/internal/models"
)

// roomAllocator seats every formation group of an exam in rooms free at a date and slot.
type roomAllocator struct {
	exams examStore
	rooms []models.Room
}

func newRoomAllocator(exams examStore, rooms []models.Room) *roomAllocator {
	sorted := make([]models.Room, len(rooms))
	copy(sorted, rooms)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Capacity > sorted[j].Capacity
	})
	return &roomAllocator{exams: exams, rooms: sorted}
}

// roomReservation is an all-or-nothing claim on rooms for one exam attempt.
type roomReservation struct {
	ledger  *reservationLedger
	date    models.Date
	slot    models.Clock
	roomIDs []string
	closed  bool
}

// RoomIDs returns the claimed rooms in claim order.
func (r *roomReservation) RoomIDs() []string {
	return r.roomIDs
}

// Commit finalises the claim once the exam holding the rooms is stored.
func (r *roomReservation) Commit() {
	r.release()
}

// Rollback returns the rooms to the pool after an aborted attempt.
func (r *roomReservation) Rollback() {
	r.release()
}

func (r *roomReservation) release() {
	if r == nil || r.closed {
		return
	}
	r.ledger.releaseRooms(r.date, r.slot, r.roomIDs)
	r.closed = true
}

// Allocate claims rooms for every group or returns nil when any group cannot be seated.
// Groups are served in the given order and a room claimed by one group is never shared.
func (a *roomAllocator) Allocate(run *generationRun, groups []models.EnrollmentGroup, date models.Date, slot models.Clock) (*roomReservation, error) {
	booked, err := a.exams.BookedRoomIDs(run.ctx, run.exec, date, slot)
	if err != nil {
		return nil, err
	}
	unavailable := make(map[string]bool, len(booked))
	for _, id := range booked {
		unavailable[id] = true
	}

	candidates := make([]models.Room, 0, len(a.rooms))
	for _, room := range a.rooms {
		if unavailable[room.ID] || run.ledger.roomHeld(date, slot, room.ID) {
			continue
		}
		if room.EffectiveCapacity() <= 0 {
			continue
		}
		candidates = append(candidates, room)
	}

	claimed := make([]bool, len(candidates))
	var roomIDs []string
	for _, group := range groups {
		remaining := group.StudentCount
		for i := 0; remaining > 0 && i < len(candidates); i++ {
			if claimed[i] {
				continue
			}
			claimed[i] = true
			roomIDs = append(roomIDs, candidates[i].ID)
			remaining -= candidates[i].EffectiveCapacity()
		}
		if remaining > 0 {
			return nil, nil
		}
	}

	run.ledger.holdRooms(date, slot, roomIDs)
	return &roomReservation{ledger: run.ledger, date: date, slot: slot, roomIDs: roomIDs}, nil
}
