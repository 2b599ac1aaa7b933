package dto

// CreateDepartmentRequest creates a department.
type CreateDepartmentRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

// CreateFormationRequest creates a formation.
type CreateFormationRequest struct {
	Name         string  `json:"name" validate:"required,max=150"`
	DepartmentID string  `json:"departmentId" validate:"required"`
	Level        *string `json:"level" validate:"omitempty,max=10"`
	ModuleCount  *int    `json:"moduleCount" validate:"omitempty,min=0"`
}

// CreateModuleRequest creates a module.
type CreateModuleRequest struct {
	Name        string `json:"name" validate:"required,max=150"`
	Credits     *int   `json:"credits" validate:"omitempty,min=0"`
	FormationID string `json:"formationId" validate:"required"`
}

// CreateStudentRequest creates a student.
type CreateStudentRequest struct {
	RegistrationNumber string `json:"registrationNumber" validate:"required,max=20"`
	LastName           string `json:"lastName" validate:"required,max=100"`
	FirstName          string `json:"firstName" validate:"required,max=100"`
	FormationID        string `json:"formationId" validate:"required"`
	Promo              int    `json:"promo" validate:"required,min=1900"`
}

// CreateProfessorRequest creates a professor.
type CreateProfessorRequest struct {
	Name         string  `json:"name" validate:"required,max=100"`
	DepartmentID string  `json:"departmentId" validate:"required"`
	Specialty    *string `json:"specialty" validate:"omitempty,max=100"`
}

// CreateBuildingRequest creates a building.
type CreateBuildingRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

// CreateRoomRequest creates a room.
type CreateRoomRequest struct {
	Name       string `json:"name" validate:"required,max=50"`
	Capacity   int    `json:"capacity" validate:"required,min=1"`
	Kind       string `json:"kind" validate:"required,max=20"`
	BuildingID string `json:"buildingId" validate:"required"`
}

// EnrollStudentRequest enrolls a student into a module.
type EnrollStudentRequest struct {
	StudentID string `json:"studentId" validate:"required"`
}
