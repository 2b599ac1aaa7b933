package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/exam-timetable-api/internal/models"
)

// StudentRepository persists students.
type StudentRepository struct {
	db *sqlx.DB
}

// NewStudentRepository constructs the repository.
func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

// List returns students, optionally restricted to one formation.
func (r *StudentRepository) List(ctx context.Context, filter models.CatalogFilter) ([]models.Student, error) {
	var (
		conditions []string
		args       []interface{}
	)
	if filter.FormationID != "" {
		conditions = append(conditions, fmt.Sprintf("formation_id = $%d", len(args)+1))
		args = append(args, filter.FormationID)
	}
	query := `SELECT id, registration_number, last_name, first_name, formation_id, promo, created_at FROM students` +
		whereClause(conditions) + ` ORDER BY last_name, first_name`
	var students []models.Student
	if err := r.db.SelectContext(ctx, &students, query, args...); err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	return students, nil
}

// FindByID loads a student.
func (r *StudentRepository) FindByID(ctx context.Context, id string) (*models.Student, error) {
	const query = `SELECT id, registration_number, last_name, first_name, formation_id, promo, created_at FROM students WHERE id = $1`
	var student models.Student
	if err := r.db.GetContext(ctx, &student, query, id); err != nil {
		return nil, err
	}
	return &student, nil
}

// ExistsByRegistrationNumber reports whether the registration number is taken.
func (r *StudentRepository) ExistsByRegistrationNumber(ctx context.Context, number string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM students WHERE registration_number = $1)`
	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, number); err != nil {
		return false, fmt.Errorf("check registration number: %w", err)
	}
	return exists, nil
}

// Create inserts a student.
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	stampCreate(&student.ID, &student.CreatedAt)
	const query = `INSERT INTO students (id, registration_number, last_name, first_name, formation_id, promo, created_at)
VALUES (:id, :registration_number, :last_name, :first_name, :formation_id, :promo, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, student); err != nil {
		return fmt.Errorf("create student: %w", err)
	}
	return nil
}

// Count returns the number of students.
func (r *StudentRepository) Count(ctx context.Context) (int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM students`); err != nil {
		return 0, fmt.Errorf("count students: %w", err)
	}
	return total, nil
}
