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
	"github.com/noah-isme/exam-timetable-api/internal/service"
	appErrors "github.com/noah-isme/exam-timetable-api/pkg/errors"
)

type timetableViewerMock struct {
	format service.ExportFormat
}

func (m *timetableViewerMock) Student(ctx context.Context, studentID string) (*dto.StudentTimetable, error) {
	if studentID != "s1" {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}
	return &dto.StudentTimetable{Student: models.Student{ID: "s1"}, Timetable: []dto.TimetableEntry{}}, nil
}

func (m *timetableViewerMock) Professor(ctx context.Context, professorID string) (*dto.ProfessorTimetable, error) {
	return &dto.ProfessorTimetable{Professor: models.Professor{ID: professorID}, Timetable: []dto.TimetableEntry{}}, nil
}

func (m *timetableViewerMock) RenderStudent(ctx context.Context, studentID string, format service.ExportFormat) (*service.RenderedTimetable, error) {
	m.format = format
	return &service.RenderedTimetable{Filename: "timetable-student-s1.csv", ContentType: "text/csv", Body: []byte("Date\n")}, nil
}

func (m *timetableViewerMock) RenderProfessor(ctx context.Context, professorID string, format service.ExportFormat) (*service.RenderedTimetable, error) {
	m.format = format
	return &service.RenderedTimetable{Filename: "timetable-professor-p1.pdf", ContentType: "application/pdf", Body: []byte("%PDF-1.3")}, nil
}

func TestStudentTimetableJSON(t *testing.T) {
	handler := &TimetableViewHandler{service: &timetableViewerMock{}}

	c, w := newJSONContext(http.MethodGet, "/students/s1/timetable", nil)
	c.Params = gin.Params{{Key: "id", Value: "s1"}}
	handler.Student(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"timetable":[]`)

	c, w = newJSONContext(http.MethodGet, "/students/s9/timetable", nil)
	c.Params = gin.Params{{Key: "id", Value: "s9"}}
	handler.Student(c)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestStudentTimetableCSV(t *testing.T) {
	mockSvc := &timetableViewerMock{}
	handler := &TimetableViewHandler{service: mockSvc}
	c, w := newJSONContext(http.MethodGet, "/students/s1/timetable?format=csv", nil)
	c.Params = gin.Params{{Key: "id", Value: "s1"}}

	handler.Student(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, service.FormatCSV, mockSvc.format)
	assert.Equal(t, `attachment; filename="timetable-student-s1.csv"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "Date\n", w.Body.String())
}

func TestProfessorTimetablePDFAndBadFormat(t *testing.T) {
	mockSvc := &timetableViewerMock{}
	handler := &TimetableViewHandler{service: mockSvc}

	c, w := newJSONContext(http.MethodGet, "/professors/p1/timetable?format=PDF", nil)
	c.Params = gin.Params{{Key: "id", Value: "p1"}}
	handler.Professor(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, service.FormatPDF, mockSvc.format)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))

	c, w = newJSONContext(http.MethodGet, "/professors/p1/timetable?format=xlsx", nil)
	handler.Professor(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
}
