package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/exam-timetable-api/internal/models"
)

// CatalogRepository persists departments, formations, modules, buildings and rooms.
type CatalogRepository struct {
	db *sqlx.DB
}

// NewCatalogRepository constructs the repository.
func NewCatalogRepository(db *sqlx.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

func (r *CatalogRepository) exec(exec sqlx.ExtContext) sqlx.ExtContext {
	if exec != nil {
		return exec
	}
	return r.db
}

func whereClause(conditions []string) string {
	if len(conditions) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(conditions, " AND ")
}

func stampCreate(id *string, createdAt *time.Time) {
	if *id == "" {
		*id = uuid.NewString()
	}
	if createdAt.IsZero() {
		*createdAt = time.Now().UTC()
	}
}

// ListDepartments returns every department ordered by name.
func (r *CatalogRepository) ListDepartments(ctx context.Context) ([]models.Department, error) {
	const query = `SELECT id, name, created_at FROM departments ORDER BY name`
	var departments []models.Department
	if err := r.db.SelectContext(ctx, &departments, query); err != nil {
		return nil, fmt.Errorf("list departments: %w", err)
	}
	return departments, nil
}

// CreateDepartment inserts a department.
func (r *CatalogRepository) CreateDepartment(ctx context.Context, department *models.Department) error {
	stampCreate(&department.ID, &department.CreatedAt)
	const query = `INSERT INTO departments (id, name, created_at) VALUES (:id, :name, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, department); err != nil {
		return fmt.Errorf("create department: %w", err)
	}
	return nil
}

// ListFormations returns formations, optionally restricted to one department.
func (r *CatalogRepository) ListFormations(ctx context.Context, filter models.CatalogFilter) ([]models.Formation, error) {
	var (
		conditions []string
		args       []interface{}
	)
	if filter.DepartmentID != "" {
		conditions = append(conditions, fmt.Sprintf("department_id = $%d", len(args)+1))
		args = append(args, filter.DepartmentID)
	}
	query := `SELECT id, name, department_id, level, module_count, created_at FROM formations` + whereClause(conditions) + ` ORDER BY name`
	var formations []models.Formation
	if err := r.db.SelectContext(ctx, &formations, query, args...); err != nil {
		return nil, fmt.Errorf("list formations: %w", err)
	}
	return formations, nil
}

// CreateFormation inserts a formation.
func (r *CatalogRepository) CreateFormation(ctx context.Context, formation *models.Formation) error {
	stampCreate(&formation.ID, &formation.CreatedAt)
	const query = `INSERT INTO formations (id, name, department_id, level, module_count, created_at)
VALUES (:id, :name, :department_id, :level, :module_count, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, formation); err != nil {
		return fmt.Errorf("create formation: %w", err)
	}
	return nil
}

// ListModules returns modules, optionally restricted to one formation.
func (r *CatalogRepository) ListModules(ctx context.Context, filter models.CatalogFilter) ([]models.Module, error) {
	var (
		conditions []string
		args       []interface{}
	)
	if filter.FormationID != "" {
		conditions = append(conditions, fmt.Sprintf("formation_id = $%d", len(args)+1))
		args = append(args, filter.FormationID)
	}
	query := `SELECT id, name, credits, formation_id, created_at FROM modules` + whereClause(conditions) + ` ORDER BY name`
	var modules []models.Module
	if err := r.db.SelectContext(ctx, &modules, query, args...); err != nil {
		return nil, fmt.Errorf("list modules: %w", err)
	}
	return modules, nil
}

// FindModule loads a module by id.
func (r *CatalogRepository) FindModule(ctx context.Context, id string) (*models.Module, error) {
	const query = `SELECT id, name, credits, formation_id, created_at FROM modules WHERE id = $1`
	var module models.Module
	if err := r.db.GetContext(ctx, &module, query, id); err != nil {
		return nil, err
	}
	return &module, nil
}

// CreateModule inserts a module.
func (r *CatalogRepository) CreateModule(ctx context.Context, module *models.Module) error {
	stampCreate(&module.ID, &module.CreatedAt)
	const query = `INSERT INTO modules (id, name, credits, formation_id, created_at)
VALUES (:id, :name, :credits, :formation_id, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, module); err != nil {
		return fmt.Errorf("create module: %w", err)
	}
	return nil
}

// ListSchedulableModules returns every module with its owning department in catalog order.
func (r *CatalogRepository) ListSchedulableModules(ctx context.Context, exec sqlx.ExtContext) ([]models.SchedulableModule, error) {
	const query = `SELECT m.id, m.name, m.formation_id, f.department_id
FROM modules m JOIN formations f ON f.id = m.formation_id
ORDER BY m.created_at, m.id`
	var modules []models.SchedulableModule
	if err := sqlx.SelectContext(ctx, r.exec(exec), &modules, query); err != nil {
		return nil, fmt.Errorf("list schedulable modules: %w", err)
	}
	return modules, nil
}

// ListBuildings returns every building ordered by name.
func (r *CatalogRepository) ListBuildings(ctx context.Context) ([]models.Building, error) {
	const query = `SELECT id, name, created_at FROM buildings ORDER BY name`
	var buildings []models.Building
	if err := r.db.SelectContext(ctx, &buildings, query); err != nil {
		return nil, fmt.Errorf("list buildings: %w", err)
	}
	return buildings, nil
}

// CreateBuilding inserts a building.
func (r *CatalogRepository) CreateBuilding(ctx context.Context, building *models.Building) error {
	stampCreate(&building.ID, &building.CreatedAt)
	const query = `INSERT INTO buildings (id, name, created_at) VALUES (:id, :name, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, building); err != nil {
		return fmt.Errorf("create building: %w", err)
	}
	return nil
}

// ListRooms returns rooms in catalog order, optionally restricted to one building.
func (r *CatalogRepository) ListRooms(ctx context.Context, exec sqlx.ExtContext, filter models.CatalogFilter) ([]models.Room, error) {
	var (
		conditions []string
		args       []interface{}
	)
	if filter.BuildingID != "" {
		conditions = append(conditions, fmt.Sprintf("building_id = $%d", len(args)+1))
		args = append(args, filter.BuildingID)
	}
	query := `SELECT id, name, capacity, kind, building_id, created_at FROM rooms` + whereClause(conditions) + ` ORDER BY created_at, id`
	var rooms []models.Room
	if err := sqlx.SelectContext(ctx, r.exec(exec), &rooms, query, args...); err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	return rooms, nil
}

// CreateRoom inserts a room.
func (r *CatalogRepository) CreateRoom(ctx context.Context, room *models.Room) error {
	stampCreate(&room.ID, &room.CreatedAt)
	const query = `INSERT INTO rooms (id, name, capacity, kind, building_id, created_at)
VALUES (:id, :name, :capacity, :kind, :building_id, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, room); err != nil {
		return fmt.Errorf("create room: %w", err)
	}
	return nil
}
