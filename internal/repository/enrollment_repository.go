package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/noah-isme/exam-timetable-api/internal/models"
)

// EnrollmentRepository reads and writes the student-module enrollment relation.
type EnrollmentRepository struct {
	db *sqlx.DB
}

// NewEnrollmentRepository constructs the repository.
func NewEnrollmentRepository(db *sqlx.DB) *EnrollmentRepository {
	return &EnrollmentRepository{db: db}
}

func (r *EnrollmentRepository) exec(exec sqlx.ExtContext) sqlx.ExtContext {
	if exec != nil {
		return exec
	}
	return r.db
}

// GroupsByModule counts a module's enrolled students per student formation.
func (r *EnrollmentRepository) GroupsByModule(ctx context.Context, exec sqlx.ExtContext, moduleID string) ([]models.EnrollmentGroup, error) {
	const query = `SELECT s.formation_id, COUNT(*) AS student_count
FROM enrollments e JOIN students s ON s.id = e.student_id
WHERE e.module_id = $1
GROUP BY s.formation_id
ORDER BY s.formation_id`
	var groups []models.EnrollmentGroup
	if err := sqlx.SelectContext(ctx, r.exec(exec), &groups, query, moduleID); err != nil {
		return nil, fmt.Errorf("group enrollments for module %s: %w", moduleID, err)
	}
	return groups, nil
}

// ListByModules returns enrollment pairs for the provided modules.
func (r *EnrollmentRepository) ListByModules(ctx context.Context, exec sqlx.ExtContext, moduleIDs []string) ([]models.Enrollment, error) {
	if len(moduleIDs) == 0 {
		return nil, nil
	}
	const query = `SELECT student_id, module_id FROM enrollments WHERE module_id = ANY($1) ORDER BY module_id, student_id`
	var enrollments []models.Enrollment
	if err := sqlx.SelectContext(ctx, r.exec(exec), &enrollments, query, pq.Array(moduleIDs)); err != nil {
		return nil, fmt.Errorf("list enrollments by modules: %w", err)
	}
	return enrollments, nil
}

// Enroll adds a student to a module; repeated calls are no-ops.
func (r *EnrollmentRepository) Enroll(ctx context.Context, moduleID, studentID string) error {
	const query = `INSERT INTO enrollments (student_id, module_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`
	if _, err := r.db.ExecContext(ctx, query, studentID, moduleID); err != nil {
		return fmt.Errorf("enroll student: %w", err)
	}
	return nil
}
