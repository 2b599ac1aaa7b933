package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/noah-isme/exam-timetable-api/internal/dto"
	"github.com/noah-isme/exam-timetable-api/internal/models"
	appErrors "github.com/noah-isme/exam-timetable-api/pkg/errors"
)

type catalogRepository interface {
	ListDepartments(ctx context.Context) ([]models.Department, error)
	CreateDepartment(ctx context.Context, department *models.Department) error
	ListFormations(ctx context.Context, filter models.CatalogFilter) ([]models.Formation, error)
	CreateFormation(ctx context.Context, formation *models.Formation) error
	ListModules(ctx context.Context, filter models.CatalogFilter) ([]models.Module, error)
	FindModule(ctx context.Context, id string) (*models.Module, error)
	CreateModule(ctx context.Context, module *models.Module) error
	ListBuildings(ctx context.Context) ([]models.Building, error)
	CreateBuilding(ctx context.Context, building *models.Building) error
	CreateRoom(ctx context.Context, room *models.Room) error
}

type roomLister interface {
	ListRooms(ctx context.Context, exec sqlx.ExtContext, filter models.CatalogFilter) ([]models.Room, error)
}

type studentRepository interface {
	List(ctx context.Context, filter models.CatalogFilter) ([]models.Student, error)
	FindByID(ctx context.Context, id string) (*models.Student, error)
	ExistsByRegistrationNumber(ctx context.Context, number string) (bool, error)
	Create(ctx context.Context, student *models.Student) error
}

type professorRepository interface {
	List(ctx context.Context, exec sqlx.ExtContext, filter models.CatalogFilter) ([]models.Professor, error)
	Create(ctx context.Context, professor *models.Professor) error
}

type enrollmentWriter interface {
	Enroll(ctx context.Context, moduleID, studentID string) error
}

// CatalogService manages the reference data the generator schedules from.
type CatalogService struct {
	catalog     catalogRepository
	rooms       roomLister
	students    studentRepository
	professors  professorRepository
	enrollments enrollmentWriter
	cache       *CacheService
	validator   *validator.Validate
	logger      *zap.Logger
}

// CatalogServiceParams groups constructor dependencies.
type CatalogServiceParams struct {
	Catalog     catalogRepository
	Rooms       roomLister
	Students    studentRepository
	Professors  professorRepository
	Enrollments enrollmentWriter
	Cache       *CacheService
	Validator   *validator.Validate
	Logger      *zap.Logger
}

// NewCatalogService constructs a CatalogService.
func NewCatalogService(params CatalogServiceParams) *CatalogService {
	validate := params.Validator
	if validate == nil {
		validate = validator.New()
	}
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogService{
		catalog:     params.Catalog,
		rooms:       params.Rooms,
		students:    params.Students,
		professors:  params.Professors,
		enrollments: params.Enrollments,
		cache:       params.Cache,
		validator:   validate,
		logger:      logger,
	}
}

// storeError maps constraint violations reported by PostgreSQL onto API errors.
func storeError(err error, message string) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code.Name() {
		case "unique_violation":
			return appErrors.Wrap(err, appErrors.ErrConflict.Code, appErrors.ErrConflict.Status, "resource already exists")
		case "foreign_key_violation":
			return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "referenced resource does not exist")
		}
	}
	return appErrors.Internal(err, message)
}

func (s *CatalogService) validate(payload interface{}, message string) error {
	if err := s.validator.Struct(payload); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, message)
	}
	return nil
}

func (s *CatalogService) invalidate(ctx context.Context) {
	if s.cache != nil {
		_ = s.cache.Invalidate(ctx, statisticsCachePattern)
	}
}

// ListDepartments returns all departments.
func (s *CatalogService) ListDepartments(ctx context.Context) ([]models.Department, error) {
	departments, err := s.catalog.ListDepartments(ctx)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list departments")
	}
	return nonNil(departments), nil
}

// CreateDepartment stores a department.
func (s *CatalogService) CreateDepartment(ctx context.Context, req dto.CreateDepartmentRequest) (*models.Department, error) {
	if err := s.validate(req, "invalid department payload"); err != nil {
		return nil, err
	}
	department := &models.Department{Name: req.Name}
	if err := s.catalog.CreateDepartment(ctx, department); err != nil {
		return nil, storeError(err, "failed to create department")
	}
	return department, nil
}

// ListFormations returns formations, optionally of one department.
func (s *CatalogService) ListFormations(ctx context.Context, departmentID string) ([]models.Formation, error) {
	formations, err := s.catalog.ListFormations(ctx, models.CatalogFilter{DepartmentID: departmentID})
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list formations")
	}
	return nonNil(formations), nil
}

// CreateFormation stores a formation.
func (s *CatalogService) CreateFormation(ctx context.Context, req dto.CreateFormationRequest) (*models.Formation, error) {
	if err := s.validate(req, "invalid formation payload"); err != nil {
		return nil, err
	}
	formation := &models.Formation{Name: req.Name, DepartmentID: req.DepartmentID, Level: req.Level, ModuleCount: req.ModuleCount}
	if err := s.catalog.CreateFormation(ctx, formation); err != nil {
		return nil, storeError(err, "failed to create formation")
	}
	return formation, nil
}

// ListModules returns modules, optionally of one formation.
func (s *CatalogService) ListModules(ctx context.Context, formationID string) ([]models.Module, error) {
	modules, err := s.catalog.ListModules(ctx, models.CatalogFilter{FormationID: formationID})
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list modules")
	}
	return nonNil(modules), nil
}

// CreateModule stores a module.
func (s *CatalogService) CreateModule(ctx context.Context, req dto.CreateModuleRequest) (*models.Module, error) {
	if err := s.validate(req, "invalid module payload"); err != nil {
		return nil, err
	}
	module := &models.Module{Name: req.Name, Credits: req.Credits, FormationID: req.FormationID}
	if err := s.catalog.CreateModule(ctx, module); err != nil {
		return nil, storeError(err, "failed to create module")
	}
	return module, nil
}

// ListStudents returns students, optionally of one formation.
func (s *CatalogService) ListStudents(ctx context.Context, formationID string) ([]models.Student, error) {
	students, err := s.students.List(ctx, models.CatalogFilter{FormationID: formationID})
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list students")
	}
	return nonNil(students), nil
}

// CreateStudent stores a student. Registration numbers are unique.
func (s *CatalogService) CreateStudent(ctx context.Context, req dto.CreateStudentRequest) (*models.Student, error) {
	if err := s.validate(req, "invalid student payload"); err != nil {
		return nil, err
	}
	taken, err := s.students.ExistsByRegistrationNumber(ctx, req.RegistrationNumber)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to check registration number")
	}
	if taken {
		return nil, appErrors.Clone(appErrors.ErrConflict, "registration number already exists")
	}
	student := &models.Student{
		RegistrationNumber: req.RegistrationNumber,
		LastName:           req.LastName,
		FirstName:          req.FirstName,
		FormationID:        req.FormationID,
		Promo:              req.Promo,
	}
	if err := s.students.Create(ctx, student); err != nil {
		return nil, storeError(err, "failed to create student")
	}
	s.invalidate(ctx)
	return student, nil
}

// ListProfessors returns professors, optionally of one department.
func (s *CatalogService) ListProfessors(ctx context.Context, departmentID string) ([]models.Professor, error) {
	professors, err := s.professors.List(ctx, nil, models.CatalogFilter{DepartmentID: departmentID})
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list professors")
	}
	return nonNil(professors), nil
}

// CreateProfessor stores a professor.
func (s *CatalogService) CreateProfessor(ctx context.Context, req dto.CreateProfessorRequest) (*models.Professor, error) {
	if err := s.validate(req, "invalid professor payload"); err != nil {
		return nil, err
	}
	professor := &models.Professor{Name: req.Name, DepartmentID: req.DepartmentID, Specialty: req.Specialty}
	if err := s.professors.Create(ctx, professor); err != nil {
		return nil, storeError(err, "failed to create professor")
	}
	s.invalidate(ctx)
	return professor, nil
}

// ListBuildings returns all buildings.
func (s *CatalogService) ListBuildings(ctx context.Context) ([]models.Building, error) {
	buildings, err := s.catalog.ListBuildings(ctx)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list buildings")
	}
	return nonNil(buildings), nil
}

// CreateBuilding stores a building.
func (s *CatalogService) CreateBuilding(ctx context.Context, req dto.CreateBuildingRequest) (*models.Building, error) {
	if err := s.validate(req, "invalid building payload"); err != nil {
		return nil, err
	}
	building := &models.Building{Name: req.Name}
	if err := s.catalog.CreateBuilding(ctx, building); err != nil {
		return nil, storeError(err, "failed to create building")
	}
	return building, nil
}

// ListRooms returns rooms, optionally of one building.
func (s *CatalogService) ListRooms(ctx context.Context, buildingID string) ([]models.Room, error) {
	rooms, err := s.rooms.ListRooms(ctx, nil, models.CatalogFilter{BuildingID: buildingID})
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list rooms")
	}
	return nonNil(rooms), nil
}

// CreateRoom stores a room.
func (s *CatalogService) CreateRoom(ctx context.Context, req dto.CreateRoomRequest) (*models.Room, error) {
	if err := s.validate(req, "invalid room payload"); err != nil {
		return nil, err
	}
	room := &models.Room{Name: req.Name, Capacity: req.Capacity, Kind: req.Kind, BuildingID: req.BuildingID}
	if err := s.catalog.CreateRoom(ctx, room); err != nil {
		return nil, storeError(err, "failed to create room")
	}
	s.invalidate(ctx)
	return room, nil
}

// Enroll registers a student for a module. Repeated enrollment is a no-op.
func (s *CatalogService) Enroll(ctx context.Context, moduleID string, req dto.EnrollStudentRequest) error {
	if err := s.validate(req, "invalid enrollment payload"); err != nil {
		return err
	}
	if _, err := s.catalog.FindModule(ctx, moduleID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "module not found")
		}
		return appErrors.Internal(err, "failed to load module")
	}
	if _, err := s.students.FindByID(ctx, req.StudentID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return appErrors.Internal(err, "failed to load student")
	}
	if err := s.enrollments.Enroll(ctx, moduleID, req.StudentID); err != nil {
		return storeError(err, "failed to enroll student")
	}
	s.invalidate(ctx)
	return nil
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
