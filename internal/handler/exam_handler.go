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

type examManager interface {
	List(ctx context.Context, role models.UserRole, query dto.ExamQuery) ([]models.ExamDetail, error)
	Get(ctx context.Context, id string) (*models.Exam, error)
	Create(ctx context.Context, req dto.CreateExamRequest) (*models.Exam, error)
	Delete(ctx context.Context, id string) error
	ApproveDeptHead(ctx context.Context, id string, req dto.ApprovalRequest) (*models.Exam, error)
	ApproveViceDean(ctx context.Context, id string, req dto.ApprovalRequest) (*models.Exam, error)
	PendingDeptHead(ctx context.Context) ([]models.ExamDetail, error)
	PendingViceDean(ctx context.Context) ([]models.ExamDetail, error)
}

// ExamHandler exposes exam listing, manual entry and the approval workflow.
type ExamHandler struct {
	service examManager
}

// NewExamHandler constructs the handler.
func NewExamHandler(svc *service.ExamService) *ExamHandler {
	return &ExamHandler{service: svc}
}

// List godoc
// @Summary List exams visible to the caller
// @Description Students and professors only see exams approved at both gates.
// @Tags Exams
// @Produce json
// @Param moduleId query string false "Module ID"
// @Param startDate query string false "Start date (YYYY-MM-DD)"
// @Param endDate query string false "End date (YYYY-MM-DD)"
// @Param includePending query bool false "Department heads: include rejected exams"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /exams [get]
func (h *ExamHandler) List(c *gin.Context) {
	var query dto.ExamQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid exam query"))
		return
	}
	exams, err := h.service.List(c.Request.Context(), roleFromContext(c), query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, exams, nil)
}

// Get godoc
// @Summary Get exam
// @Tags Exams
// @Produce json
// @Param id path string true "Exam ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Security BearerAuth
// @Router /exams/{id} [get]
func (h *ExamHandler) Get(c *gin.Context) {
	exam, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, exam, nil)
}

// Create godoc
// @Summary Record a hand-entered exam
// @Tags Exams
// @Accept json
// @Produce json
// @Param payload body dto.CreateExamRequest true "Exam payload"
// @Success 201 {object} response.Envelope
// @Security BearerAuth
// @Router /exams [post]
func (h *ExamHandler) Create(c *gin.Context) {
	var req dto.CreateExamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid exam payload"))
		return
	}
	exam, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, exam)
}

// Delete godoc
// @Summary Delete exam
// @Tags Exams
// @Param id path string true "Exam ID"
// @Success 204
// @Security BearerAuth
// @Router /exams/{id} [delete]
func (h *ExamHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ApproveDeptHead godoc
// @Summary Department head decision
// @Tags Approvals
// @Accept json
// @Produce json
// @Param id path string true "Exam ID"
// @Param payload body dto.ApprovalRequest true "Decision"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /exams/{id}/approve/dept-head [post]
func (h *ExamHandler) ApproveDeptHead(c *gin.Context) {
	h.approve(c, h.service.ApproveDeptHead)
}

// ApproveViceDean godoc
// @Summary Vice dean decision
// @Description Refused with PRECONDITION_FAILED until the department head has approved.
// @Tags Approvals
// @Accept json
// @Produce json
// @Param id path string true "Exam ID"
// @Param payload body dto.ApprovalRequest true "Decision"
// @Success 200 {object} response.Envelope
// @Failure 412 {object} response.Envelope
// @Security BearerAuth
// @Router /exams/{id}/approve/vice-dean [post]
func (h *ExamHandler) ApproveViceDean(c *gin.Context) {
	h.approve(c, h.service.ApproveViceDean)
}

func (h *ExamHandler) approve(c *gin.Context, decide func(context.Context, string, dto.ApprovalRequest) (*models.Exam, error)) {
	var req dto.ApprovalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid approval payload"))
		return
	}
	exam, err := decide(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, exam, nil)
}

// PendingDeptHead godoc
// @Summary Exams awaiting the department head
// @Tags Approvals
// @Produce json
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /exams/pending/dept-head [get]
func (h *ExamHandler) PendingDeptHead(c *gin.Context) {
	exams, err := h.service.PendingDeptHead(c.Request.Context())
	respondList(c, exams, err)
}

// PendingViceDean godoc
// @Summary Exams awaiting the vice dean
// @Tags Approvals
// @Produce json
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /exams/pending/vice-dean [get]
func (h *ExamHandler) PendingViceDean(c *gin.Context) {
	exams, err := h.service.PendingViceDean(c.Request.Context())
	respondList(c, exams, err)
}
