package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/noah-isme/exam-timetable-api/internal/dto"
	"github.com/noah-isme/exam-timetable-api/internal/models"
	appErrors "github.com/noah-isme/exam-timetable-api/pkg/errors"
	"github.com/noah-isme/exam-timetable-api/pkg/export"
)

// ExportFormat selects a timetable rendering.
type ExportFormat string

const (
	FormatJSON ExportFormat = "json"
	FormatCSV  ExportFormat = "csv"
	FormatPDF  ExportFormat = "pdf"
)

// ParseExportFormat accepts json, csv or pdf; blank means json.
func ParseExportFormat(raw string) (ExportFormat, error) {
	switch format := ExportFormat(strings.ToLower(strings.TrimSpace(raw))); format {
	case "", FormatJSON:
		return FormatJSON, nil
	case FormatCSV, FormatPDF:
		return format, nil
	default:
		return "", appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported format %q", raw))
	}
}

type studentFinder interface {
	FindByID(ctx context.Context, id string) (*models.Student, error)
}

type professorFinder interface {
	FindByID(ctx context.Context, id string) (*models.Professor, error)
}

type publishedExamLister interface {
	ListDetails(ctx context.Context, exec sqlx.ExtContext, filter models.ExamFilter) ([]models.ExamDetail, error)
}

type csvRenderer interface {
	Render(table export.Table) ([]byte, error)
}

type pdfRenderer interface {
	Render(table export.Table) ([]byte, error)
}

// RenderedTimetable is an exported document ready to stream.
type RenderedTimetable struct {
	Filename    string
	ContentType string
	Body        []byte
}

// TimetableViewService serves the published timetables of students and professors.
type TimetableViewService struct {
	students   studentFinder
	professors professorFinder
	exams      publishedExamLister
	csv        csvRenderer
	pdf        pdfRenderer
	logger     *zap.Logger
}

// NewTimetableViewService constructs the service. Nil renderers default to pkg/export.
func NewTimetableViewService(students studentFinder, professors professorFinder, exams publishedExamLister, csv csvRenderer, pdf pdfRenderer, logger *zap.Logger) *TimetableViewService {
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TimetableViewService{students: students, professors: professors, exams: exams, csv: csv, pdf: pdf, logger: logger}
}

// Student returns the fully approved exams of every module the student is enrolled in.
func (s *TimetableViewService) Student(ctx context.Context, studentID string) (*dto.StudentTimetable, error) {
	student, err := s.students.FindByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Internal(err, "failed to load student")
	}
	entries, err := s.entries(ctx, models.ExamFilter{StudentID: studentID, PublishedOnly: true})
	if err != nil {
		return nil, err
	}
	return &dto.StudentTimetable{Student: *student, Timetable: entries}, nil
}

// Professor returns the fully approved exams the professor supervises.
func (s *TimetableViewService) Professor(ctx context.Context, professorID string) (*dto.ProfessorTimetable, error) {
	professor, err := s.professors.FindByID(ctx, professorID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "professor not found")
		}
		return nil, appErrors.Internal(err, "failed to load professor")
	}
	entries, err := s.entries(ctx, models.ExamFilter{ProfessorID: professorID, PublishedOnly: true})
	if err != nil {
		return nil, err
	}
	return &dto.ProfessorTimetable{Professor: *professor, Timetable: entries}, nil
}

func (s *TimetableViewService) entries(ctx context.Context, filter models.ExamFilter) ([]dto.TimetableEntry, error) {
	exams, err := s.exams.ListDetails(ctx, nil, filter)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to load timetable")
	}
	entries := make([]dto.TimetableEntry, 0, len(exams))
	for _, exam := range exams {
		rooms := exam.Rooms
		if rooms == nil {
			rooms = []models.ExamRoomDetail{}
		}
		entries = append(entries, dto.TimetableEntry{
			ExamID:          exam.ExamID,
			Module:          exam.ModuleName,
			Date:            exam.Date,
			StartTime:       exam.StartTime,
			DurationMinutes: exam.Duration,
			Rooms:           rooms,
			Supervisors:     exam.Supervisors,
		})
	}
	return entries, nil
}

// RenderStudent exports a student timetable as CSV or PDF.
func (s *TimetableViewService) RenderStudent(ctx context.Context, studentID string, format ExportFormat) (*RenderedTimetable, error) {
	timetable, err := s.Student(ctx, studentID)
	if err != nil {
		return nil, err
	}
	student := timetable.Student
	title := fmt.Sprintf("Exam timetable: %s %s", student.FirstName, student.LastName)
	return s.render(timetableTable(title, student.RegistrationNumber, timetable.Timetable), "student-"+student.ID, format)
}

// RenderProfessor exports a professor's supervision timetable as CSV or PDF.
func (s *TimetableViewService) RenderProfessor(ctx context.Context, professorID string, format ExportFormat) (*RenderedTimetable, error) {
	timetable, err := s.Professor(ctx, professorID)
	if err != nil {
		return nil, err
	}
	title := fmt.Sprintf("Supervision timetable: %s", timetable.Professor.Name)
	return s.render(timetableTable(title, "", timetable.Timetable), "professor-"+timetable.Professor.ID, format)
}

func (s *TimetableViewService) render(table export.Table, name string, format ExportFormat) (*RenderedTimetable, error) {
	var (
		body        []byte
		err         error
		contentType string
	)
	switch format {
	case FormatCSV:
		body, err = s.csv.Render(table)
		contentType = "text/csv"
	case FormatPDF:
		body, err = s.pdf.Render(table)
		contentType = "application/pdf"
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("format %q cannot be rendered", format))
	}
	if err != nil {
		s.logger.Error("timetable export failed", zap.String("name", name), zap.String("format", string(format)), zap.Error(err))
		return nil, appErrors.Internal(err, "failed to render timetable")
	}
	return &RenderedTimetable{
		Filename:    fmt.Sprintf("timetable-%s.%s", name, format),
		ContentType: contentType,
		Body:        body,
	}, nil
}

func timetableTable(title, subtitle string, entries []dto.TimetableEntry) export.Table {
	table := export.Table{
		Title:    title,
		Subtitle: subtitle,
		Columns: []export.Column{
			{Key: "date", Label: "Date", Width: 1.2},
			{Key: "time", Label: "Start", Width: 0.8},
			{Key: "duration", Label: "Minutes", Width: 0.8},
			{Key: "module", Label: "Module", Width: 2.5},
			{Key: "rooms", Label: "Rooms", Width: 2.5},
			{Key: "supervisors", Label: "Supervisors", Width: 2.5},
		},
		Rows: make([]map[string]string, 0, len(entries)),
	}
	for _, entry := range entries {
		rooms := make([]string, 0, len(entry.Rooms))
		for _, room := range entry.Rooms {
			if room.BuildingName != "" {
				rooms = append(rooms, fmt.Sprintf("%s (%s)", room.RoomName, room.BuildingName))
				continue
			}
			rooms = append(rooms, room.RoomName)
		}
		supervisors := make([]string, 0, len(entry.Supervisors))
		for _, supervisor := range entry.Supervisors {
			supervisors = append(supervisors, supervisor.ProfessorName)
		}
		table.Rows = append(table.Rows, map[string]string{
			"date":        entry.Date.String(),
			"time":        entry.StartTime.String(),
			"duration":    fmt.Sprintf("%d", entry.DurationMinutes),
			"module":      entry.Module,
			"rooms":       strings.Join(rooms, ", "),
			"supervisors": strings.Join(supervisors, ", "),
		})
	}
	return table
}
