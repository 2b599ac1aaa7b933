package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/exam-timetable-api/internal/models"
)

// StatisticsRepository aggregates dashboard figures.
type StatisticsRepository struct {
	db *sqlx.DB
}

// NewStatisticsRepository constructs the repository.
func NewStatisticsRepository(db *sqlx.DB) *StatisticsRepository {
	return &StatisticsRepository{db: db}
}

// RoomUsage counts exams booked into each room, including unused rooms.
func (r *StatisticsRepository) RoomUsage(ctx context.Context) ([]models.RoomUsage, error) {
	const query = `SELECT r.name AS room_name, COUNT(er.exam_id) AS usage_count
FROM rooms r LEFT JOIN exam_rooms er ON er.room_id = r.id
GROUP BY r.id, r.name
ORDER BY r.name`
	var usage []models.RoomUsage
	if err := r.db.SelectContext(ctx, &usage, query); err != nil {
		return nil, fmt.Errorf("room usage: %w", err)
	}
	return usage, nil
}

// DepartmentStatistics counts exams and students owned by each department.
func (r *StatisticsRepository) DepartmentStatistics(ctx context.Context) ([]models.DepartmentStatistic, error) {
	const query = `SELECT d.name AS department,
(SELECT COUNT(*) FROM exams e JOIN modules m ON m.id = e.module_id JOIN formations f ON f.id = m.formation_id WHERE f.department_id = d.id) AS exam_count,
(SELECT COUNT(*) FROM students s JOIN formations f ON f.id = s.formation_id WHERE f.department_id = d.id) AS student_count
FROM departments d
ORDER BY d.name`
	var stats []models.DepartmentStatistic
	if err := r.db.SelectContext(ctx, &stats, query); err != nil {
		return nil, fmt.Errorf("department statistics: %w", err)
	}
	return stats, nil
}
