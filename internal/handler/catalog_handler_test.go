package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/exam-timetable-api/internal/dto"
	"github.com/noah-isme/exam-timetable-api/internal/models"
	appErrors "github.com/noah-isme/exam-timetable-api/pkg/errors"
)

type catalogManagerMock struct {
	filter   string
	enrolled [2]string
}

func (m *catalogManagerMock) ListDepartments(ctx context.Context) ([]models.Department, error) {
	return []models.Department{{ID: "d1", Name: "Mathematics"}}, nil
}

func (m *catalogManagerMock) CreateDepartment(ctx context.Context, req dto.CreateDepartmentRequest) (*models.Department, error) {
	return &models.Department{ID: "d2", Name: req.Name}, nil
}

func (m *catalogManagerMock) ListFormations(ctx context.Context, departmentID string) ([]models.Formation, error) {
	m.filter = departmentID
	return []models.Formation{}, nil
}

func (m *catalogManagerMock) CreateFormation(ctx context.Context, req dto.CreateFormationRequest) (*models.Formation, error) {
	return &models.Formation{ID: "f1", Name: req.Name}, nil
}

func (m *catalogManagerMock) ListModules(ctx context.Context, formationID string) ([]models.Module, error) {
	m.filter = formationID
	return []models.Module{}, nil
}

func (m *catalogManagerMock) CreateModule(ctx context.Context, req dto.CreateModuleRequest) (*models.Module, error) {
	return &models.Module{ID: "m1", Name: req.Name}, nil
}

func (m *catalogManagerMock) ListStudents(ctx context.Context, formationID string) ([]models.Student, error) {
	m.filter = formationID
	return []models.Student{}, nil
}

func (m *catalogManagerMock) CreateStudent(ctx context.Context, req dto.CreateStudentRequest) (*models.Student, error) {
	return nil, appErrors.Clone(appErrors.ErrConflict, "registration number already exists")
}

func (m *catalogManagerMock) ListProfessors(ctx context.Context, departmentID string) ([]models.Professor, error) {
	m.filter = departmentID
	return []models.Professor{}, nil
}

func (m *catalogManagerMock) CreateProfessor(ctx context.Context, req dto.CreateProfessorRequest) (*models.Professor, error) {
	return &models.Professor{ID: "p1", Name: req.Name}, nil
}

func (m *catalogManagerMock) ListBuildings(ctx context.Context) ([]models.Building, error) {
	return []models.Building{}, nil
}

func (m *catalogManagerMock) CreateBuilding(ctx context.Context, req dto.CreateBuildingRequest) (*models.Building, error) {
	return &models.Building{ID: "b1", Name: req.Name}, nil
}

func (m *catalogManagerMock) ListRooms(ctx context.Context, buildingID string) ([]models.Room, error) {
	m.filter = buildingID
	return []models.Room{{ID: "r1", Capacity: 30}}, nil
}

func (m *catalogManagerMock) CreateRoom(ctx context.Context, req dto.CreateRoomRequest) (*models.Room, error) {
	return &models.Room{ID: "r2", Name: req.Name, Capacity: req.Capacity}, nil
}

func (m *catalogManagerMock) Enroll(ctx context.Context, moduleID string, req dto.EnrollStudentRequest) error {
	m.enrolled = [2]string{moduleID, req.StudentID}
	return nil
}

func TestCatalogListFilters(t *testing.T) {
	mockSvc := &catalogManagerMock{}
	handler := &CatalogHandler{service: mockSvc}

	c, w := newJSONContext(http.MethodGet, "/rooms?buildingId=b1", nil)
	handler.ListRooms(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "b1", mockSvc.filter)

	c, w = newJSONContext(http.MethodGet, "/modules?formationId=f1", nil)
	handler.ListModules(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "f1", mockSvc.filter)
	assert.JSONEq(t, `{"data":[]}`, w.Body.String())
}

func TestCatalogCreate(t *testing.T) {
	handler := &CatalogHandler{service: &catalogManagerMock{}}

	c, w := newJSONContext(http.MethodPost, "/departments", []byte(`{"name":"Physics"}`))
	handler.CreateDepartment(c)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "Physics")

	c, w = newJSONContext(http.MethodPost, "/students", []byte(`{"registrationNumber":"R1","lastName":"A","firstName":"B","formationId":"f1","promo":2024}`))
	handler.CreateStudent(c)
	require.Equal(t, http.StatusConflict, w.Code)

	c, w = newJSONContext(http.MethodPost, "/rooms", []byte(`{"name":`))
	handler.CreateRoom(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCatalogEnroll(t *testing.T) {
	mockSvc := &catalogManagerMock{}
	handler := &CatalogHandler{service: mockSvc}
	c, w := newJSONContext(http.MethodPost, "/modules/m1/enrollments", []byte(`{"studentId":"s1"}`))
	c.Params = gin.Params{{Key: "id", Value: "m1"}}

	handler.Enroll(c)
	c.Writer.WriteHeaderNow()

	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, [2]string{"m1", "s1"}, mockSvc.enrolled)
}
