package models

import "time"

// Department owns formations and professors.
type Department struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Formation is an academic program or cohort.
type Formation struct {
	ID           string    `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	DepartmentID string    `db:"department_id" json:"department_id"`
	Level        *string   `db:"level" json:"level,omitempty"`
	ModuleCount  *int      `db:"module_count" json:"module_count,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// Module is a course examined once per generation run.
type Module struct {
	ID          string    `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Credits     *int      `db:"credits" json:"credits,omitempty"`
	FormationID string    `db:"formation_id" json:"formation_id"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// SchedulableModule is a module joined with the department that owns its formation.
type SchedulableModule struct {
	ID           string `db:"id" json:"id"`
	Name         string `db:"name" json:"name"`
	FormationID  string `db:"formation_id" json:"formation_id"`
	DepartmentID string `db:"department_id" json:"department_id"`
}

// Student belongs to one formation and enrolls in many modules.
type Student struct {
	ID                 string    `db:"id" json:"id"`
	RegistrationNumber string    `db:"registration_number" json:"registration_number"`
	LastName           string    `db:"last_name" json:"last_name"`
	FirstName          string    `db:"first_name" json:"first_name"`
	FormationID        string    `db:"formation_id" json:"formation_id"`
	Promo              int       `db:"promo" json:"promo"`
	CreatedAt          time.Time `db:"created_at" json:"created_at"`
}

// Professor supervises exams and belongs to a department.
type Professor struct {
	ID           string    `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	DepartmentID string    `db:"department_id" json:"department_id"`
	Specialty    *string   `db:"specialty" json:"specialty,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// Building groups rooms.
type Building struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// MaxExamSeatsPerRoom caps how many candidates any room may seat during an exam.
const MaxExamSeatsPerRoom = 20

// Room is an examination venue.
type Room struct {
	ID         string    `db:"id" json:"id"`
	Name       string    `db:"name" json:"name"`
	Capacity   int       `db:"capacity" json:"capacity"`
	Kind       string    `db:"kind" json:"kind"`
	BuildingID string    `db:"building_id" json:"building_id"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// EffectiveCapacity is the seating usable for an exam.
func (r Room) EffectiveCapacity() int {
	return EffectiveCapacity(r.Capacity)
}

// EffectiveCapacity caps a nominal capacity at MaxExamSeatsPerRoom.
func EffectiveCapacity(nominal int) int {
	if nominal > MaxExamSeatsPerRoom {
		return MaxExamSeatsPerRoom
	}
	if nominal < 0 {
		return 0
	}
	return nominal
}

// Enrollment links a student to a module.
type Enrollment struct {
	StudentID string `db:"student_id" json:"student_id"`
	ModuleID  string `db:"module_id" json:"module_id"`
}

// EnrollmentGroup counts a module's enrolled students from one formation.
type EnrollmentGroup struct {
	FormationID  string `db:"formation_id" json:"formation_id"`
	StudentCount int    `db:"student_count" json:"student_count"`
}

// CatalogFilter narrows catalog listings by their parent entity.
type CatalogFilter struct {
	DepartmentID string
	FormationID  string
	BuildingID   string
}
