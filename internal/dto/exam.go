package dto

// CreateExamRequest records a hand-entered exam.
type CreateExamRequest struct {
	ModuleID        string   `json:"moduleId" validate:"required"`
	Date            string   `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime       string   `json:"startTime" validate:"required,datetime=15:04"`
	DurationMinutes int      `json:"durationMinutes" validate:"omitempty,min=1,max=600"`
	RoomIDs         []string `json:"roomIds" validate:"omitempty,dive,required"`
	ProfessorIDs    []string `json:"professorIds" validate:"omitempty,dive,required"`
}

// ExamQuery filters exam listings.
type ExamQuery struct {
	ModuleID       string `form:"moduleId" validate:"omitempty"`
	StartDate      string `form:"startDate" validate:"omitempty,datetime=2006-01-02"`
	EndDate        string `form:"endDate" validate:"omitempty,datetime=2006-01-02"`
	IncludePending bool   `form:"includePending"`
}

// ApprovalRequest approves or rejects an exam at one gate.
type ApprovalRequest struct {
	Approved *bool `json:"approved" validate:"required"`
}
