package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/exam-timetable-api/internal/dto"
	"github.com/noah-isme/exam-timetable-api/internal/models"
	"github.com/noah-isme/exam-timetable-api/internal/service"
	appErrors "github.com/noah-isme/exam-timetable-api/pkg/errors"
	"github.com/noah-isme/exam-timetable-api/pkg/response"
)

type catalogManager interface {
	ListDepartments(ctx context.Context) ([]models.Department, error)
	CreateDepartment(ctx context.Context, req dto.CreateDepartmentRequest) (*models.Department, error)
	ListFormations(ctx context.Context, departmentID string) ([]models.Formation, error)
	CreateFormation(ctx context.Context, req dto.CreateFormationRequest) (*models.Formation, error)
	ListModules(ctx context.Context, formationID string) ([]models.Module, error)
	CreateModule(ctx context.Context, req dto.CreateModuleRequest) (*models.Module, error)
	ListStudents(ctx context.Context, formationID string) ([]models.Student, error)
	CreateStudent(ctx context.Context, req dto.CreateStudentRequest) (*models.Student, error)
	ListProfessors(ctx context.Context, departmentID string) ([]models.Professor, error)
	CreateProfessor(ctx context.Context, req dto.CreateProfessorRequest) (*models.Professor, error)
	ListBuildings(ctx context.Context) ([]models.Building, error)
	CreateBuilding(ctx context.Context, req dto.CreateBuildingRequest) (*models.Building, error)
	ListRooms(ctx context.Context, buildingID string) ([]models.Room, error)
	CreateRoom(ctx context.Context, req dto.CreateRoomRequest) (*models.Room, error)
	Enroll(ctx context.Context, moduleID string, req dto.EnrollStudentRequest) error
}

// CatalogHandler exposes the reference data the scheduler draws from.
type CatalogHandler struct {
	service catalogManager
}

// NewCatalogHandler constructs the handler.
func NewCatalogHandler(svc *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: svc}
}

func bindCatalog[T any](c *gin.Context, what string) (T, bool) {
	var req T
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid "+what+" payload"))
		return req, false
	}
	return req, true
}

func respondList[T any](c *gin.Context, items []T, err error) {
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, nil)
}

func respondCreated[T any](c *gin.Context, item *T, err error) {
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, item)
}

// ListDepartments godoc
// @Summary List departments
// @Tags Catalog
// @Produce json
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /departments [get]
func (h *CatalogHandler) ListDepartments(c *gin.Context) {
	items, err := h.service.ListDepartments(c.Request.Context())
	respondList(c, items, err)
}

// CreateDepartment godoc
// @Summary Create department
// @Tags Catalog
// @Accept json
// @Produce json
// @Param payload body dto.CreateDepartmentRequest true "Department payload"
// @Success 201 {object} response.Envelope
// @Security BearerAuth
// @Router /departments [post]
func (h *CatalogHandler) CreateDepartment(c *gin.Context) {
	req, ok := bindCatalog[dto.CreateDepartmentRequest](c, "department")
	if !ok {
		return
	}
	item, err := h.service.CreateDepartment(c.Request.Context(), req)
	respondCreated(c, item, err)
}

// ListFormations godoc
// @Summary List formations
// @Tags Catalog
// @Produce json
// @Param departmentId query string false "Department ID"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /formations [get]
func (h *CatalogHandler) ListFormations(c *gin.Context) {
	items, err := h.service.ListFormations(c.Request.Context(), c.Query("departmentId"))
	respondList(c, items, err)
}

// CreateFormation godoc
// @Summary Create formation
// @Tags Catalog
// @Accept json
// @Produce json
// @Param payload body dto.CreateFormationRequest true "Formation payload"
// @Success 201 {object} response.Envelope
// @Security BearerAuth
// @Router /formations [post]
func (h *CatalogHandler) CreateFormation(c *gin.Context) {
	req, ok := bindCatalog[dto.CreateFormationRequest](c, "formation")
	if !ok {
		return
	}
	item, err := h.service.CreateFormation(c.Request.Context(), req)
	respondCreated(c, item, err)
}

// ListModules godoc
// @Summary List modules
// @Tags Catalog
// @Produce json
// @Param formationId query string false "Formation ID"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /modules [get]
func (h *CatalogHandler) ListModules(c *gin.Context) {
	items, err := h.service.ListModules(c.Request.Context(), c.Query("formationId"))
	respondList(c, items, err)
}

// CreateModule godoc
// @Summary Create module
// @Tags Catalog
// @Accept json
// @Produce json
// @Param payload body dto.CreateModuleRequest true "Module payload"
// @Success 201 {object} response.Envelope
// @Security BearerAuth
// @Router /modules [post]
func (h *CatalogHandler) CreateModule(c *gin.Context) {
	req, ok := bindCatalog[dto.CreateModuleRequest](c, "module")
	if !ok {
		return
	}
	item, err := h.service.CreateModule(c.Request.Context(), req)
	respondCreated(c, item, err)
}

// ListStudents godoc
// @Summary List students
// @Tags Catalog
// @Produce json
// @Param formationId query string false "Formation ID"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /students [get]
func (h *CatalogHandler) ListStudents(c *gin.Context) {
	items, err := h.service.ListStudents(c.Request.Context(), c.Query("formationId"))
	respondList(c, items, err)
}

// CreateStudent godoc
// @Summary Create student
// @Tags Catalog
// @Accept json
// @Produce json
// @Param payload body dto.CreateStudentRequest true "Student payload"
// @Success 201 {object} response.Envelope
// @Security BearerAuth
// @Router /students [post]
func (h *CatalogHandler) CreateStudent(c *gin.Context) {
	req, ok := bindCatalog[dto.CreateStudentRequest](c, "student")
	if !ok {
		return
	}
	item, err := h.service.CreateStudent(c.Request.Context(), req)
	respondCreated(c, item, err)
}

// ListProfessors godoc
// @Summary List professors
// @Tags Catalog
// @Produce json
// @Param departmentId query string false "Department ID"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /professors [get]
func (h *CatalogHandler) ListProfessors(c *gin.Context) {
	items, err := h.service.ListProfessors(c.Request.Context(), c.Query("departmentId"))
	respondList(c, items, err)
}

// CreateProfessor godoc
// @Summary Create professor
// @Tags Catalog
// @Accept json
// @Produce json
// @Param payload body dto.CreateProfessorRequest true "Professor payload"
// @Success 201 {object} response.Envelope
// @Security BearerAuth
// @Router /professors [post]
func (h *CatalogHandler) CreateProfessor(c *gin.Context) {
	req, ok := bindCatalog[dto.CreateProfessorRequest](c, "professor")
	if !ok {
		return
	}
	item, err := h.service.CreateProfessor(c.Request.Context(), req)
	respondCreated(c, item, err)
}

// ListBuildings godoc
// @Summary List buildings
// @Tags Catalog
// @Produce json
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /buildings [get]
func (h *CatalogHandler) ListBuildings(c *gin.Context) {
	items, err := h.service.ListBuildings(c.Request.Context())
	respondList(c, items, err)
}

// CreateBuilding godoc
// @Summary Create building
// @Tags Catalog
// @Accept json
// @Produce json
// @Param payload body dto.CreateBuildingRequest true "Building payload"
// @Success 201 {object} response.Envelope
// @Security BearerAuth
// @Router /buildings [post]
func (h *CatalogHandler) CreateBuilding(c *gin.Context) {
	req, ok := bindCatalog[dto.CreateBuildingRequest](c, "building")
	if !ok {
		return
	}
	item, err := h.service.CreateBuilding(c.Request.Context(), req)
	respondCreated(c, item, err)
}

// ListRooms godoc
// @Summary List rooms
// @Tags Catalog
// @Produce json
// @Param buildingId query string false "Building ID"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /rooms [get]
func (h *CatalogHandler) ListRooms(c *gin.Context) {
	items, err := h.service.ListRooms(c.Request.Context(), c.Query("buildingId"))
	respondList(c, items, err)
}

// CreateRoom godoc
// @Summary Create room
// @Tags Catalog
// @Accept json
// @Produce json
// @Param payload body dto.CreateRoomRequest true "Room payload"
// @Success 201 {object} response.Envelope
// @Security BearerAuth
// @Router /rooms [post]
func (h *CatalogHandler) CreateRoom(c *gin.Context) {
	req, ok := bindCatalog[dto.CreateRoomRequest](c, "room")
	if !ok {
		return
	}
	item, err := h.service.CreateRoom(c.Request.Context(), req)
	respondCreated(c, item, err)
}

// Enroll godoc
// @Summary Enroll a student into a module
// @Tags Catalog
// @Accept json
// @Produce json
// @Param id path string true "Module ID"
// @Param payload body dto.EnrollStudentRequest true "Enrollment payload"
// @Success 204
// @Security BearerAuth
// @Router /modules/{id}/enrollments [post]
func (h *CatalogHandler) Enroll(c *gin.Context) {
	req, ok := bindCatalog[dto.EnrollStudentRequest](c, "enrollment")
	if !ok {
		return
	}
	if err := h.service.Enroll(c.Request.Context(), c.Param("id"), req); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
