package models

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// ExamDurationMinutes is the fixed length of every generated exam.
const ExamDurationMinutes = 120

// ApprovalStatus is the state of one sign-off gate.
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "PENDING"
	ApprovalApproved ApprovalStatus = "APPROVED"
	ApprovalRejected ApprovalStatus = "REJECTED"
)

// Valid reports whether s is one of the three known states.
func (s ApprovalStatus) Valid() bool {
	switch s {
	case ApprovalPending, ApprovalApproved, ApprovalRejected:
		return true
	}
	return false
}

// Decision maps an approve/reject flag to a status.
func Decision(approved bool) ApprovalStatus {
	if approved {
		return ApprovalApproved
	}
	return ApprovalRejected
}

// Value stores the status as text.
func (s ApprovalStatus) Value() (driver.Value, error) {
	if s == "" {
		return string(ApprovalPending), nil
	}
	return string(s), nil
}

// Scan reads the textual status.
func (s *ApprovalStatus) Scan(src interface{}) error {
	switch v := src.(type) {
	case string:
		*s = ApprovalStatus(v)
	case []byte:
		*s = ApprovalStatus(v)
	case nil:
		*s = ApprovalPending
	default:
		return fmt.Errorf("unsupported approval status source %T", src)
	}
	if !s.Valid() {
		return fmt.Errorf("unknown approval status %q", *s)
	}
	return nil
}

// Exam is one scheduled examination of a module.
type Exam struct {
	ID               string         `db:"id" json:"id"`
	ModuleID         string         `db:"module_id" json:"module_id"`
	Date             Date           `db:"exam_date" json:"date"`
	StartTime        Clock          `db:"start_time" json:"start_time"`
	DurationMinutes  int            `db:"duration_minutes" json:"duration_minutes"`
	DeptHeadApproval ApprovalStatus `db:"dept_head_approval" json:"dept_head_approval"`
	ViceDeanApproval ApprovalStatus `db:"vice_dean_approval" json:"vice_dean_approval"`
	RoomIDs          []string       `db:"-" json:"room_ids"`
	ProfessorIDs     []string       `db:"-" json:"professor_ids"`
	CreatedAt        time.Time      `db:"created_at" json:"created_at"`
}

// Published reports whether both gates approved the exam.
func (e Exam) Published() bool {
	return e.DeptHeadApproval == ApprovalApproved && e.ViceDeanApproval == ApprovalApproved
}

// ExamFilter narrows exam listings.
type ExamFilter struct {
	ModuleID       string
	DepartmentID   string
	StudentID      string
	ProfessorID    string
	StartDate      *Date
	EndDate        *Date
	PublishedOnly  bool
	HideRejected   bool
	DeptHeadStatus ApprovalStatus
	ViceDeanStatus ApprovalStatus
}

// ExamRoomDetail is a room booked for an exam with its building name.
type ExamRoomDetail struct {
	ExamID       string `db:"exam_id" json:"-"`
	RoomID       string `db:"room_id" json:"id"`
	RoomName     string `db:"room_name" json:"name"`
	Capacity     int    `db:"capacity" json:"capacity"`
	BuildingName string `db:"building_name" json:"building"`
}

// ExamSupervisorDetail is a professor supervising an exam.
type ExamSupervisorDetail struct {
	ExamID        string `db:"exam_id" json:"-"`
	ProfessorID   string `db:"professor_id" json:"id"`
	ProfessorName string `db:"professor_name" json:"name"`
}

// ExamDetail is an exam joined with its module, formation, rooms and supervisors.
type ExamDetail struct {
	ExamID        string                 `db:"exam_id" json:"exam_id"`
	ModuleID      string                 `db:"module_id" json:"module_id"`
	ModuleName    string                 `db:"module_name" json:"module"`
	FormationID   string                 `db:"formation_id" json:"formation_id"`
	FormationName string                 `db:"formation_name" json:"formation"`
	Date          Date                   `db:"exam_date" json:"date"`
	StartTime     Clock                  `db:"start_time" json:"start_time"`
	Duration      int                    `db:"duration_minutes" json:"duration_minutes"`
	DeptHead      ApprovalStatus         `db:"dept_head_approval" json:"dept_head_approval"`
	ViceDean      ApprovalStatus         `db:"vice_dean_approval" json:"vice_dean_approval"`
	Rooms         []ExamRoomDetail       `db:"-" json:"rooms"`
	Supervisors   []ExamSupervisorDetail `db:"-" json:"supervisors,omitempty"`
}

// EffectiveCapacity sums the effective capacity of every booked room.
func (d ExamDetail) EffectiveCapacity() int {
	total := 0
	for _, room := range d.Rooms {
		total += EffectiveCapacity(room.Capacity)
	}
	return total
}

// Published reports whether both gates approved the exam.
func (d ExamDetail) Published() bool {
	return d.DeptHead == ApprovalApproved && d.ViceDean == ApprovalApproved
}

// SupervisorLoad summarises one professor's supervision on a date.
type SupervisorLoad struct {
	ProfessorID string `db:"professor_id"`
	DailyCount  int    `db:"daily_count"`
	BusyAtSlot  bool   `db:"busy_at_slot"`
}
