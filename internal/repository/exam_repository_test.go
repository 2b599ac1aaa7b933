package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/exam-timetable-api/internal/models"
)

func mustDate(raw string) models.Date {
	d, err := models.ParseDate(raw)
	if err != nil {
		panic(err)
	}
	return d
}

func TestExamRepositoryDeleteRange(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewExamRepository(db)

	start, end := mustDate("2025-01-06"), mustDate("2025-01-10")
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM exams WHERE exam_date BETWEEN $1 AND $2")).
		WithArgs(start, end).
		WillReturnResult(sqlmock.NewResult(0, 4))

	deleted, err := repo.DeleteRange(context.Background(), nil, start, end)
	require.NoError(t, err)
	assert.EqualValues(t, 4, deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExamRepositoryConflictPredicates(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewExamRepository(db)
	day := mustDate("2025-01-06")

	mock.ExpectQuery(regexp.QuoteMeta("WHERE m.formation_id = $1 AND e.exam_date = $2 AND e.module_id <> $3")).
		WithArgs("form-1", day, "mod-1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery(regexp.QuoteMeta("WHERE target.module_id = $1 AND e.exam_date = $2")).
		WithArgs("mod-1", day).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	busy, err := repo.FormationHasExamOnDate(context.Background(), nil, "form-1", day, "mod-1")
	require.NoError(t, err)
	assert.True(t, busy)

	clash, err := repo.StudentConflictOnDate(context.Background(), nil, "mod-1", day)
	require.NoError(t, err)
	assert.False(t, clash)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExamRepositorySupervisorLoads(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewExamRepository(db)
	day := mustDate("2025-01-06")
	slot := models.NewClock(9, 0)

	mock.ExpectQuery(regexp.QuoteMeta("BOOL_OR(e.start_time = $2) AS busy_at_slot")).
		WithArgs(day, "09:00:00").
		WillReturnRows(sqlmock.NewRows([]string{"professor_id", "daily_count", "busy_at_slot"}).
			AddRow("prof-1", 3, false).
			AddRow("prof-2", 1, true))

	loads, err := repo.SupervisorLoads(context.Background(), nil, day, slot)
	require.NoError(t, err)
	require.Len(t, loads, 2)
	assert.Equal(t, 3, loads[0].DailyCount)
	assert.True(t, loads[1].BusyAtSlot)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExamRepositoryCreateWritesLinks(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewExamRepository(db)

	exam := &models.Exam{
		ModuleID:     "mod-1",
		Date:         mustDate("2025-01-06"),
		StartTime:    models.NewClock(12, 0),
		RoomIDs:      []string{"room-1", "room-2"},
		ProfessorIDs: []string{"prof-1", "prof-2"},
	}

	mock.ExpectExec("INSERT INTO exams").
		WithArgs(sqlmock.AnyArg(), "mod-1", exam.Date, "12:00:00", models.ExamDurationMinutes, "PENDING", "PENDING", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO exam_rooms").WithArgs(sqlmock.AnyArg(), "room-1").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO exam_rooms").WithArgs(sqlmock.AnyArg(), "room-2").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO exam_supervisors").WithArgs(sqlmock.AnyArg(), "prof-1").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO exam_supervisors").WithArgs(sqlmock.AnyArg(), "prof-2").WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, repo.Create(context.Background(), nil, exam))
	assert.NotEmpty(t, exam.ID)
	assert.Equal(t, models.ApprovalPending, exam.DeptHeadApproval)
	assert.Equal(t, models.ApprovalPending, exam.ViceDeanApproval)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExamRepositoryUpdateViceDeanRequiresDeptHead(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewExamRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE exams SET vice_dean_approval = $2 WHERE id = $1 AND dept_head_approval = 'APPROVED'")).
		WithArgs("exam-1", "APPROVED").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateViceDeanApproval(context.Background(), "exam-1", models.ApprovalApproved)
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExamRepositoryDateSpanEmpty(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewExamRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT MIN(exam_date), MAX(exam_date) FROM exams")).
		WillReturnRows(sqlmock.NewRows([]string{"min", "max"}).AddRow(nil, nil))

	start, end, err := repo.DateSpan(context.Background())
	require.NoError(t, err)
	assert.Nil(t, start)
	assert.Nil(t, end)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExamRepositoryListDetailsAttachesRoomsAndSupervisors(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewExamRepository(db)

	start, end := mustDate("2025-01-06"), mustDate("2025-01-10")
	day := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE e.exam_date >= $1 AND e.exam_date <= $2 AND e.dept_head_approval = 'APPROVED' AND e.vice_dean_approval = 'APPROVED'")).
		WithArgs(start, end).
		WillReturnRows(sqlmock.NewRows([]string{"exam_id", "module_id", "module_name", "formation_id", "formation_name", "exam_date", "start_time", "duration_minutes", "dept_head_approval", "vice_dean_approval"}).
			AddRow("exam-1", "mod-1", "Algebra", "form-1", "L1 Math", day, "09:00:00", 120, "APPROVED", "APPROVED").
			AddRow("exam-2", "mod-2", "Physics", "form-2", "L1 Phys", day, "12:00:00", 120, "APPROVED", "APPROVED"))
	mock.ExpectQuery("FROM exam_rooms er").
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"exam_id", "room_id", "room_name", "capacity", "building_name"}).
			AddRow("exam-1", "room-1", "A101", 30, "Block A").
			AddRow("exam-2", "room-2", "B201", 15, "Block B"))
	mock.ExpectQuery("FROM exam_supervisors es").
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"exam_id", "professor_id", "professor_name"}).
			AddRow("exam-1", "prof-1", "Dr. Amrani"))

	details, err := repo.ListDetails(context.Background(), nil, models.ExamFilter{StartDate: &start, EndDate: &end, PublishedOnly: true})
	require.NoError(t, err)
	require.Len(t, details, 2)
	assert.Equal(t, models.NewClock(9, 0), details[0].StartTime)
	assert.Len(t, details[0].Rooms, 1)
	assert.Equal(t, 20, details[0].EffectiveCapacity())
	assert.Len(t, details[0].Supervisors, 1)
	assert.Empty(t, details[1].Supervisors)
	assert.True(t, details[1].Published())
	assert.NoError(t, mock.ExpectationsWereMet())
}
