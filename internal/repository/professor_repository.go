package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/exam-timetable-api/internal/models"
)

// ProfessorRepository persists professors.
type ProfessorRepository struct {
	db *sqlx.DB
}

// NewProfessorRepository constructs the repository.
func NewProfessorRepository(db *sqlx.DB) *ProfessorRepository {
	return &ProfessorRepository{db: db}
}

// List returns professors in catalog order, optionally restricted to one department.
func (r *ProfessorRepository) List(ctx context.Context, exec sqlx.ExtContext, filter models.CatalogFilter) ([]models.Professor, error) {
	var (
		conditions []string
		args       []interface{}
	)
	if filter.DepartmentID != "" {
		conditions = append(conditions, fmt.Sprintf("department_id = $%d", len(args)+1))
		args = append(args, filter.DepartmentID)
	}
	target := sqlx.ExtContext(r.db)
	if exec != nil {
		target = exec
	}
	query := `SELECT id, name, department_id, specialty, created_at FROM professors` + whereClause(conditions) + ` ORDER BY created_at, id`
	var professors []models.Professor
	if err := sqlx.SelectContext(ctx, target, &professors, query, args...); err != nil {
		return nil, fmt.Errorf("list professors: %w", err)
	}
	return professors, nil
}

// FindByID loads a professor.
func (r *ProfessorRepository) FindByID(ctx context.Context, id string) (*models.Professor, error) {
	const query = `SELECT id, name, department_id, specialty, created_at FROM professors WHERE id = $1`
	var professor models.Professor
	if err := r.db.GetContext(ctx, &professor, query, id); err != nil {
		return nil, err
	}
	return &professor, nil
}

// Create inserts a professor.
func (r *ProfessorRepository) Create(ctx context.Context, professor *models.Professor) error {
	stampCreate(&professor.ID, &professor.CreatedAt)
	const query = `INSERT INTO professors (id, name, department_id, specialty, created_at)
VALUES (:id, :name, :department_id, :specialty, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, professor); err != nil {
		return fmt.Errorf("create professor: %w", err)
	}
	return nil
}

// Count returns the number of professors.
func (r *ProfessorRepository) Count(ctx context.Context) (int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM professors`); err != nil {
		return 0, fmt.Errorf("count professors: %w", err)
	}
	return total, nil
}
