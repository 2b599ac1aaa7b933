package models

// ConflictType tags a finding reported by generation or audit.
type ConflictType string

const (
	ConflictDateRange      ConflictType = "date_range"
	ConflictStudent        ConflictType = "student_conflict"
	ConflictProfessorTime  ConflictType = "professor_time_conflict"
	ConflictProfessorDaily ConflictType = "professor_daily_conflict"
	ConflictCapacity       ConflictType = "capacity_conflict"
	ConflictFormation      ConflictType = "formation_conflict"
)

const conflictTypeOrderFallback = 99

var conflictTypeOrder = map[ConflictType]int{
	ConflictDateRange:      0,
	ConflictStudent:        1,
	ConflictProfessorTime:  2,
	ConflictProfessorDaily: 3,
	ConflictCapacity:       4,
	ConflictFormation:      5,
}

// Rank orders conflict types for stable reporting.
func (t ConflictType) Rank() int {
	if rank, ok := conflictTypeOrder[t]; ok {
		return rank
	}
	return conflictTypeOrderFallback
}

// Conflict is a structured constraint violation. Only the fields relevant to
// its Type are populated.
type Conflict struct {
	Type          ConflictType `json:"type"`
	StudentID     string       `json:"student_id,omitempty"`
	ProfessorID   string       `json:"professor_id,omitempty"`
	ProfessorName string       `json:"professor_name,omitempty"`
	ExamID        string       `json:"exam_id,omitempty"`
	ModuleID      string       `json:"module_id,omitempty"`
	FormationID   string       `json:"formation_id,omitempty"`
	FormationName string       `json:"formation_name,omitempty"`
	Date          string       `json:"date,omitempty"`
	Time          string       `json:"time,omitempty"`
	ExamCount     int          `json:"exam_count,omitempty"`
	Students      int          `json:"students,omitempty"`
	Capacity      *int         `json:"capacity,omitempty"`
	Modules       []string     `json:"modules,omitempty"`
	Remaining     int          `json:"remaining,omitempty"`
	Message       string       `json:"message"`
}
