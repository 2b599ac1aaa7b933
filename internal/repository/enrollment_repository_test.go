package repository

import (
	"context"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnrollmentRepositoryGroupsByModule(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewEnrollmentRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("GROUP BY s.formation_id")).
		WithArgs("mod-1").
		WillReturnRows(sqlmock.NewRows([]string{"formation_id", "student_count"}).
			AddRow("form-1", 25).
			AddRow("form-2", 4))

	groups, err := repo.GroupsByModule(context.Background(), nil, "mod-1")
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, "form-1", groups[0].FormationID)
	assert.Equal(t, 25, groups[0].StudentCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnrollmentRepositoryListByModulesEmptyInput(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewEnrollmentRepository(db)

	enrollments, err := repo.ListByModules(context.Background(), nil, nil)
	require.NoError(t, err)
	assert.Empty(t, enrollments)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnrollmentRepositoryListByModules(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewEnrollmentRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT student_id, module_id FROM enrollments WHERE module_id = ANY($1)")).
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"student_id", "module_id"}).
			AddRow("stu-1", "mod-1").
			AddRow("stu-1", "mod-2"))

	enrollments, err := repo.ListByModules(context.Background(), nil, []string{"mod-1", "mod-2"})
	require.NoError(t, err)
	assert.Len(t, enrollments, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnrollmentRepositoryEnroll(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewEnrollmentRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO enrollments (student_id, module_id) VALUES ($1, $2) ON CONFLICT DO NOTHING")).
		WithArgs("stu-1", "mod-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Enroll(context.Background(), "mod-1", "stu-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
