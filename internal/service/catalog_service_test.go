package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/exam-timetable-api/internal/dto"
	"github.com/noah-isme/exam-timetable-api/internal/models"
	appErrors "github.com/noah-isme/exam-timetable-api/pkg/errors"
)

type catalogRepoStub struct {
	modules   map[string]bool
	createErr error
	rooms     []models.Room
}

func (c *catalogRepoStub) ListDepartments(ctx context.Context) ([]models.Department, error) {
	return nil, nil
}

func (c *catalogRepoStub) CreateDepartment(ctx context.Context, department *models.Department) error {
	department.ID = "dep-1"
	return c.createErr
}

func (c *catalogRepoStub) ListFormations(ctx context.Context, filter models.CatalogFilter) ([]models.Formation, error) {
	return []models.Formation{{ID: "f1", DepartmentID: filter.DepartmentID}}, nil
}

func (c *catalogRepoStub) CreateFormation(ctx context.Context, formation *models.Formation) error {
	return c.createErr
}

func (c *catalogRepoStub) ListModules(ctx context.Context, filter models.CatalogFilter) ([]models.Module, error) {
	return nil, nil
}

func (c *catalogRepoStub) FindModule(ctx context.Context, id string) (*models.Module, error) {
	if !c.modules[id] {
		return nil, sql.ErrNoRows
	}
	return &models.Module{ID: id}, nil
}

func (c *catalogRepoStub) CreateModule(ctx context.Context, module *models.Module) error {
	return c.createErr
}

func (c *catalogRepoStub) ListBuildings(ctx context.Context) ([]models.Building, error) {
	return nil, nil
}

func (c *catalogRepoStub) CreateBuilding(ctx context.Context, building *models.Building) error {
	return c.createErr
}

func (c *catalogRepoStub) CreateRoom(ctx context.Context, room *models.Room) error {
	return c.createErr
}

func (c *catalogRepoStub) ListRooms(ctx context.Context, exec sqlx.ExtContext, filter models.CatalogFilter) ([]models.Room, error) {
	return c.rooms, nil
}

type studentRepoStub struct {
	taken    map[string]bool
	students map[string]*models.Student
}

func (s *studentRepoStub) List(ctx context.Context, filter models.CatalogFilter) ([]models.Student, error) {
	return nil, nil
}

func (s *studentRepoStub) FindByID(ctx context.Context, id string) (*models.Student, error) {
	if student, ok := s.students[id]; ok {
		return student, nil
	}
	return nil, sql.ErrNoRows
}

func (s *studentRepoStub) ExistsByRegistrationNumber(ctx context.Context, number string) (bool, error) {
	return s.taken[number], nil
}

func (s *studentRepoStub) Create(ctx context.Context, student *models.Student) error {
	return nil
}

type professorRepoStub struct{}

func (professorRepoStub) List(ctx context.Context, exec sqlx.ExtContext, filter models.CatalogFilter) ([]models.Professor, error) {
	return nil, nil
}

func (professorRepoStub) Create(ctx context.Context, professor *models.Professor) error {
	return nil
}

type enrollmentWriterStub struct {
	pairs [][2]string
}

func (e *enrollmentWriterStub) Enroll(ctx context.Context, moduleID, studentID string) error {
	e.pairs = append(e.pairs, [2]string{moduleID, studentID})
	return nil
}

func newTestCatalogService(catalog *catalogRepoStub, students *studentRepoStub, enrollments *enrollmentWriterStub) *CatalogService {
	return NewCatalogService(CatalogServiceParams{
		Catalog:     catalog,
		Rooms:       catalog,
		Students:    students,
		Professors:  professorRepoStub{},
		Enrollments: enrollments,
	})
}

func TestCatalogServiceListsNeverReturnNil(t *testing.T) {
	svc := newTestCatalogService(&catalogRepoStub{}, &studentRepoStub{}, &enrollmentWriterStub{})
	ctx := context.Background()

	departments, err := svc.ListDepartments(ctx)
	require.NoError(t, err)
	assert.NotNil(t, departments)

	rooms, err := svc.ListRooms(ctx, "")
	require.NoError(t, err)
	assert.NotNil(t, rooms)

	formations, err := svc.ListFormations(ctx, "dep-1")
	require.NoError(t, err)
	assert.Equal(t, "dep-1", formations[0].DepartmentID)
}

func TestCatalogServiceCreateValidates(t *testing.T) {
	svc := newTestCatalogService(&catalogRepoStub{}, &studentRepoStub{}, &enrollmentWriterStub{})

	_, err := svc.CreateRoom(context.Background(), dto.CreateRoomRequest{Name: "A1", Capacity: 0, Kind: "amphi", BuildingID: "b1"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	department, err := svc.CreateDepartment(context.Background(), dto.CreateDepartmentRequest{Name: "Mathematics"})
	require.NoError(t, err)
	assert.Equal(t, "dep-1", department.ID)
}

func TestCatalogServiceMapsConstraintViolations(t *testing.T) {
	catalog := &catalogRepoStub{createErr: &pq.Error{Code: "23503"}}
	svc := newTestCatalogService(catalog, &studentRepoStub{}, &enrollmentWriterStub{})

	_, err := svc.CreateModule(context.Background(), dto.CreateModuleRequest{Name: "Algebra", FormationID: "missing"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	catalog.createErr = &pq.Error{Code: "23505"}
	_, err = svc.CreateBuilding(context.Background(), dto.CreateBuildingRequest{Name: "Main"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
}

func TestCatalogServiceCreateStudentRejectsDuplicateRegistration(t *testing.T) {
	students := &studentRepoStub{taken: map[string]bool{"2025-001": true}}
	svc := newTestCatalogService(&catalogRepoStub{}, students, &enrollmentWriterStub{})

	_, err := svc.CreateStudent(context.Background(), dto.CreateStudentRequest{
		RegistrationNumber: "2025-001",
		LastName:           "Haddad",
		FirstName:          "Lina",
		FormationID:        "f1",
		Promo:              2025,
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
}

func TestCatalogServiceEnroll(t *testing.T) {
	enrollments := &enrollmentWriterStub{}
	students := &studentRepoStub{students: map[string]*models.Student{"s1": {ID: "s1"}}}
	svc := newTestCatalogService(&catalogRepoStub{modules: map[string]bool{"m1": true}}, students, enrollments)
	ctx := context.Background()

	require.NoError(t, svc.Enroll(ctx, "m1", dto.EnrollStudentRequest{StudentID: "s1"}))
	assert.Equal(t, [][2]string{{"m1", "s1"}}, enrollments.pairs)

	err := svc.Enroll(ctx, "m2", dto.EnrollStudentRequest{StudentID: "s1"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)

	err = svc.Enroll(ctx, "m1", dto.EnrollStudentRequest{StudentID: "ghost"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
