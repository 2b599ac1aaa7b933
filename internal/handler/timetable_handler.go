package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/exam-timetable-api/internal/dto"
	"github.com/noah-isme/exam-timetable-api/internal/models"
	"github.com/noah-isme/exam-timetable-api/internal/service"
	appErrors "github.com/noah-isme/exam-timetable-api/pkg/errors"
	"github.com/noah-isme/exam-timetable-api/pkg/response"
)

type timetableGenerator interface {
	Generate(ctx context.Context, req dto.GenerateTimetableRequest) (*dto.GenerateTimetableResponse, error)
	Conflicts(ctx context.Context, query dto.ConflictQuery) ([]models.Conflict, error)
}

type generationRuns interface {
	Submit(ctx context.Context, req dto.GenerateTimetableRequest) (*dto.GenerationRun, error)
	Get(ctx context.Context, id string) (*dto.GenerationRun, error)
}

// TimetableHandler exposes generation and the conflict audit.
type TimetableHandler struct {
	service timetableGenerator
	runs    generationRuns
}

// NewTimetableHandler constructs the handler. A nil runs service disables async generation.
func NewTimetableHandler(svc *service.TimetableService, runs *service.TimetableRunService) *TimetableHandler {
	h := &TimetableHandler{service: svc}
	if runs != nil {
		h.runs = runs
	}
	return h
}

// Generate godoc
// @Summary Regenerate exams over a date range
// @Description Deletes every exam dated in the range and rebuilds the schedule. With async=true the run is queued and its id returned.
// @Tags Timetable
// @Accept json
// @Produce json
// @Param async query bool false "Queue the run in the background"
// @Param payload body dto.GenerateTimetableRequest true "Generation payload"
// @Success 200 {object} response.Envelope
// @Success 202 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Security BearerAuth
// @Router /timetable/generate [post]
func (h *TimetableHandler) Generate(c *gin.Context) {
	var req dto.GenerateTimetableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid generation payload"))
		return
	}

	async, _ := strconv.ParseBool(c.Query("async"))
	if async {
		if h.runs == nil {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "asynchronous generation is disabled"))
			return
		}
		run, err := h.runs.Submit(c.Request.Context(), req)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.Accepted(c, run)
		return
	}

	result, err := h.service.Generate(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Run godoc
// @Summary Poll an asynchronous generation run
// @Tags Timetable
// @Produce json
// @Param id path string true "Run ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Security BearerAuth
// @Router /timetable/runs/{id} [get]
func (h *TimetableHandler) Run(c *gin.Context) {
	if h.runs == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "generation run not found"))
		return
	}
	run, err := h.runs.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, run, nil)
}

// Conflicts godoc
// @Summary Audit stored exams for rule violations
// @Description Missing bounds default to the earliest and latest stored exam dates.
// @Tags Timetable
// @Produce json
// @Param startDate query string false "Start date (YYYY-MM-DD)"
// @Param endDate query string false "End date (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /conflicts [get]
func (h *TimetableHandler) Conflicts(c *gin.Context) {
	var query dto.ConflictQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid conflict query"))
		return
	}
	conflicts, err := h.service.Conflicts(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, conflicts, nil, map[string]interface{}{"total": len(conflicts)})
}
