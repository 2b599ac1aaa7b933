package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/exam-timetable-api/internal/dto"
	"github.com/noah-isme/exam-timetable-api/internal/service"
	"github.com/noah-isme/exam-timetable-api/pkg/response"
)

type timetableViewer interface {
	Student(ctx context.Context, studentID string) (*dto.StudentTimetable, error)
	Professor(ctx context.Context, professorID string) (*dto.ProfessorTimetable, error)
	RenderStudent(ctx context.Context, studentID string, format service.ExportFormat) (*service.RenderedTimetable, error)
	RenderProfessor(ctx context.Context, professorID string, format service.ExportFormat) (*service.RenderedTimetable, error)
}

// TimetableViewHandler serves personal timetables built from fully approved exams.
type TimetableViewHandler struct {
	service timetableViewer
}

// NewTimetableViewHandler constructs the handler.
func NewTimetableViewHandler(svc *service.TimetableViewService) *TimetableViewHandler {
	return &TimetableViewHandler{service: svc}
}

// Student godoc
// @Summary Student exam timetable
// @Tags Timetable
// @Produce json
// @Produce text/csv
// @Produce application/pdf
// @Param id path string true "Student ID"
// @Param format query string false "json, csv or pdf"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Security BearerAuth
// @Router /students/{id}/timetable [get]
func (h *TimetableViewHandler) Student(c *gin.Context) {
	format, err := service.ParseExportFormat(c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}
	if format != service.FormatJSON {
		h.attach(c, h.service.RenderStudent, format)
		return
	}
	timetable, err := h.service.Student(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, timetable, nil)
}

// Professor godoc
// @Summary Professor supervision timetable
// @Tags Timetable
// @Produce json
// @Produce text/csv
// @Produce application/pdf
// @Param id path string true "Professor ID"
// @Param format query string false "json, csv or pdf"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Security BearerAuth
// @Router /professors/{id}/timetable [get]
func (h *TimetableViewHandler) Professor(c *gin.Context) {
	format, err := service.ParseExportFormat(c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}
	if format != service.FormatJSON {
		h.attach(c, h.service.RenderProfessor, format)
		return
	}
	timetable, err := h.service.Professor(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, timetable, nil)
}

func (h *TimetableViewHandler) attach(c *gin.Context, render func(context.Context, string, service.ExportFormat) (*service.RenderedTimetable, error), format service.ExportFormat) {
	rendered, err := render(c.Request.Context(), c.Param("id"), format)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, rendered.Filename, rendered.ContentType, rendered.Body)
}
