package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/exam-timetable-api/internal/models"
)

func TestCatalogRepositoryListSchedulableModules(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewCatalogRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM modules m JOIN formations f ON f.id = m.formation_id")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "formation_id", "department_id"}).
			AddRow("mod-1", "Algebra", "form-1", "dep-1"))

	modules, err := repo.ListSchedulableModules(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, modules, 1)
	assert.Equal(t, "dep-1", modules[0].DepartmentID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCatalogRepositoryListRoomsByBuilding(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewCatalogRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, capacity, kind, building_id, created_at FROM rooms WHERE building_id = $1 ORDER BY created_at, id")).
		WithArgs("bld-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "capacity", "kind", "building_id", "created_at"}).
			AddRow("room-1", "A101", 40, "AMPHI", "bld-1", time.Now()))

	rooms, err := repo.ListRooms(context.Background(), nil, models.CatalogFilter{BuildingID: "bld-1"})
	require.NoError(t, err)
	require.Len(t, rooms, 1)
	assert.Equal(t, 20, rooms[0].EffectiveCapacity())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCatalogRepositoryCreateFormation(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewCatalogRepository(db)

	level := "L1"
	mock.ExpectExec("INSERT INTO formations").
		WithArgs(sqlmock.AnyArg(), "Math L1", "dep-1", level, nil, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	formation := &models.Formation{Name: "Math L1", DepartmentID: "dep-1", Level: &level}
	require.NoError(t, repo.CreateFormation(context.Background(), formation))
	assert.NotEmpty(t, formation.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
