package service

import (
	"time"

	"github.com/noah-isme/exam-timetable-api/internal/models"
)

// SlotStep separates consecutive exam start times: a two-hour exam plus a one-hour buffer.
const SlotStep = 3 * time.Hour

// GenerateSlots lists exam start times from start, one SlotStep apart, stopping
// before end and before the day rolls past midnight.
func GenerateSlots(start, end models.Clock) []models.Clock {
	var slots []models.Clock
	current := start
	for current < end {
		slots = append(slots, current)
		next, ok := current.Add(SlotStep)
		if !ok {
			break
		}
		current = next
	}
	return slots
}
