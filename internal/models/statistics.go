package models

import "time"

// DepartmentStatistic aggregates exams and students per department.
type DepartmentStatistic struct {
	Department   string `db:"department" json:"department"`
	ExamCount    int    `db:"exam_count" json:"exam_count"`
	StudentCount int    `db:"student_count" json:"student_count"`
}

// RoomUsage counts exams booked into a room.
type RoomUsage struct {
	RoomName   string `db:"room_name" json:"room"`
	UsageCount int    `db:"usage_count" json:"usage_count"`
}

// Statistics is the dashboard summary.
type Statistics struct {
	TotalStudents   int                   `json:"total_students"`
	TotalProfessors int                   `json:"total_professors"`
	TotalExams      int                   `json:"total_exams"`
	RoomUtilization map[string]int        `json:"room_utilization"`
	DepartmentStats []DepartmentStatistic `json:"department_stats"`
	ConflictCount   int                   `json:"conflict_count"`
	GeneratedAt     time.Time             `json:"generated_at"`
}

// SystemMetrics is a lightweight runtime snapshot for operators.
type SystemMetrics struct {
	CacheHitRatio            float64   `json:"cache_hit_ratio"`
	CacheHits                uint64    `json:"cache_hits"`
	CacheMisses              uint64    `json:"cache_misses"`
	RequestsTotal            uint64    `json:"requests_total"`
	AverageRequestDurationMs float64   `json:"average_request_duration_ms"`
	GenerationRuns           uint64    `json:"generation_runs"`
	ExamsGenerated           uint64    `json:"exams_generated"`
	Goroutines               int       `json:"goroutines"`
	GeneratedAt              time.Time `json:"generated_at"`
}
