package service

import (
	"bytes"
	"context"
	"database/sql"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/exam-timetable-api/internal/models"
	appErrors "github.com/noah-isme/exam-timetable-api/pkg/errors"
)

type personStub struct {
	students   map[string]*models.Student
	professors map[string]*models.Professor
}

type studentLookup personStub

func (s studentLookup) FindByID(ctx context.Context, id string) (*models.Student, error) {
	if student, ok := s.students[id]; ok {
		return student, nil
	}
	return nil, sql.ErrNoRows
}

type professorLookup personStub

func (s professorLookup) FindByID(ctx context.Context, id string) (*models.Professor, error) {
	if professor, ok := s.professors[id]; ok {
		return professor, nil
	}
	return nil, sql.ErrNoRows
}

type detailListerStub struct {
	details []models.ExamDetail
	filter  models.ExamFilter
}

func (d *detailListerStub) ListDetails(ctx context.Context, exec sqlx.ExtContext, filter models.ExamFilter) ([]models.ExamDetail, error) {
	d.filter = filter
	return d.details, nil
}

func newTestViewService(lister *detailListerStub) *TimetableViewService {
	people := personStub{
		students:   map[string]*models.Student{"s1": {ID: "s1", FirstName: "Lina", LastName: "Haddad", RegistrationNumber: "2025-001"}},
		professors: map[string]*models.Professor{"p1": {ID: "p1", Name: "Dr. Karim"}},
	}
	return NewTimetableViewService(studentLookup(people), professorLookup(people), lister, nil, nil, nil)
}

func publishedDetail() models.ExamDetail {
	return models.ExamDetail{
		ExamID:     "e1",
		ModuleName: "Algebra",
		Date:       mustDate("2025-01-06"),
		StartTime:  models.NewClock(9, 0),
		Duration:   120,
		Rooms:      []models.ExamRoomDetail{{RoomID: "r1", RoomName: "A1", BuildingName: "Main"}},
		Supervisors: []models.ExamSupervisorDetail{
			{ProfessorID: "p1", ProfessorName: "Dr. Karim"},
			{ProfessorID: "p2", ProfessorName: "Dr. Salma"},
		},
	}
}

func TestTimetableViewServiceStudent(t *testing.T) {
	lister := &detailListerStub{details: []models.ExamDetail{publishedDetail()}}
	svc := newTestViewService(lister)

	timetable, err := svc.Student(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, "s1", lister.filter.StudentID)
	assert.True(t, lister.filter.PublishedOnly)
	require.Len(t, timetable.Timetable, 1)
	assert.Equal(t, "Algebra", timetable.Timetable[0].Module)
	assert.Len(t, timetable.Timetable[0].Supervisors, 2)
}

func TestTimetableViewServiceProfessorNotFound(t *testing.T) {
	svc := newTestViewService(&detailListerStub{})

	_, err := svc.Professor(context.Background(), "ghost")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestTimetableViewServiceRenderCSV(t *testing.T) {
	svc := newTestViewService(&detailListerStub{details: []models.ExamDetail{publishedDetail()}})

	rendered, err := svc.RenderProfessor(context.Background(), "p1", FormatCSV)
	require.NoError(t, err)
	assert.Equal(t, "text/csv", rendered.ContentType)
	assert.Equal(t, "timetable-professor-p1.csv", rendered.Filename)
	assert.Equal(t,
		"Date,Start,Minutes,Module,Rooms,Supervisors\n2025-01-06,09:00,120,Algebra,A1 (Main),\"Dr. Karim, Dr. Salma\"\n",
		string(rendered.Body))
}

func TestTimetableViewServiceRenderPDF(t *testing.T) {
	svc := newTestViewService(&detailListerStub{details: []models.ExamDetail{publishedDetail()}})

	rendered, err := svc.RenderStudent(context.Background(), "s1", FormatPDF)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", rendered.ContentType)
	assert.True(t, bytes.HasPrefix(rendered.Body, []byte("%PDF")))
}

func TestParseExportFormat(t *testing.T) {
	for raw, want := range map[string]ExportFormat{"": FormatJSON, "JSON": FormatJSON, "csv": FormatCSV, " pdf ": FormatPDF} {
		got, err := ParseExportFormat(raw)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseExportFormat("xlsx")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}
