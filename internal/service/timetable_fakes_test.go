package service

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/exam-timetable-api/internal/models"
)

type txProviderMock struct {
	db   *sqlx.DB
	mock sqlmock.Sqlmock
}

func newTxProviderMock(t *testing.T) (txProvider, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	sqlxdb := sqlx.NewDb(db, "sqlmock")
	t.Cleanup(func() { db.Close() })
	return &txProviderMock{db: sqlxdb, mock: mock}, mock
}

func (t *txProviderMock) BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error) {
	return t.db.BeginTxx(ctx, opts)
}

// memoryStore is an in-memory stand-in for the catalog, enrollment and exam repositories.
type memoryStore struct {
	formations  map[string]string
	modules     []models.SchedulableModule
	students    map[string]string
	enrollments map[string][]string
	rooms       []models.Room
	professors  []models.Professor
	exams       []*models.Exam
	seq         int

	createErr error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		formations:  make(map[string]string),
		students:    make(map[string]string),
		enrollments: make(map[string][]string),
	}
}

func (m *memoryStore) addFormation(id, name string) {
	m.formations[id] = name
}

func (m *memoryStore) addModule(id, formationID, departmentID string) {
	m.modules = append(m.modules, models.SchedulableModule{ID: id, Name: "Module " + id, FormationID: formationID, DepartmentID: departmentID})
}

// addStudents registers count students of formationID named prefix-1..prefix-count.
func (m *memoryStore) addStudents(prefix, formationID string, count int) []string {
	ids := make([]string, 0, count)
	for i := 1; i <= count; i++ {
		id := fmt.Sprintf("%s-%d", prefix, i)
		m.students[id] = formationID
		ids = append(ids, id)
	}
	return ids
}

func (m *memoryStore) enroll(moduleID string, studentIDs ...string) {
	m.enrollments[moduleID] = append(m.enrollments[moduleID], studentIDs...)
}

func (m *memoryStore) addRoom(id string, capacity int) {
	m.rooms = append(m.rooms, models.Room{ID: id, Name: "Room " + id, Capacity: capacity, BuildingID: "bld-1"})
}

func (m *memoryStore) addProfessor(id, departmentID string) {
	m.professors = append(m.professors, models.Professor{ID: id, Name: "Prof " + id, DepartmentID: departmentID})
}

func (m *memoryStore) module(id string) models.SchedulableModule {
	for _, module := range m.modules {
		if module.ID == id {
			return module
		}
	}
	return models.SchedulableModule{}
}

func (m *memoryStore) examFor(moduleID string) *models.Exam {
	for _, exam := range m.exams {
		if exam.ModuleID == moduleID {
			return exam
		}
	}
	return nil
}

func (m *memoryStore) room(id string) models.Room {
	for _, room := range m.rooms {
		if room.ID == id {
			return room
		}
	}
	return models.Room{}
}

func (m *memoryStore) ListSchedulableModules(ctx context.Context, exec sqlx.ExtContext) ([]models.SchedulableModule, error) {
	return append([]models.SchedulableModule(nil), m.modules...), nil
}

func (m *memoryStore) ListRooms(ctx context.Context, exec sqlx.ExtContext, filter models.CatalogFilter) ([]models.Room, error) {
	return append([]models.Room(nil), m.rooms...), nil
}

func (m *memoryStore) List(ctx context.Context, exec sqlx.ExtContext, filter models.CatalogFilter) ([]models.Professor, error) {
	return append([]models.Professor(nil), m.professors...), nil
}

func (m *memoryStore) GroupsByModule(ctx context.Context, exec sqlx.ExtContext, moduleID string) ([]models.EnrollmentGroup, error) {
	counts := make(map[string]int)
	for _, studentID := range m.enrollments[moduleID] {
		counts[m.students[studentID]]++
	}
	groups := make([]models.EnrollmentGroup, 0, len(counts))
	for formationID, count := range counts {
		groups = append(groups, models.EnrollmentGroup{FormationID: formationID, StudentCount: count})
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].FormationID < groups[j].FormationID })
	return groups, nil
}

func (m *memoryStore) ListByModules(ctx context.Context, exec sqlx.ExtContext, moduleIDs []string) ([]models.Enrollment, error) {
	var out []models.Enrollment
	for _, moduleID := range moduleIDs {
		for _, studentID := range m.enrollments[moduleID] {
			out = append(out, models.Enrollment{StudentID: studentID, ModuleID: moduleID})
		}
	}
	return out, nil
}

func mustDate(raw string) models.Date {
	d, err := models.ParseDate(raw)
	if err != nil {
		panic(err)
	}
	return d
}

func inRange(date, start, end models.Date) bool {
	return !date.Before(start) && !date.After(end)
}

func (m *memoryStore) DeleteRange(ctx context.Context, exec sqlx.ExtContext, start, end models.Date) (int64, error) {
	kept := m.exams[:0]
	var deleted int64
	for _, exam := range m.exams {
		if inRange(exam.Date, start, end) {
			deleted++
			continue
		}
		kept = append(kept, exam)
	}
	m.exams = kept
	return deleted, nil
}

func (m *memoryStore) FormationHasExamOnDate(ctx context.Context, exec sqlx.ExtContext, formationID string, date models.Date, excludingModuleID string) (bool, error) {
	for _, exam := range m.exams {
		if exam.Date.Equal(date) && exam.ModuleID != excludingModuleID && m.module(exam.ModuleID).FormationID == formationID {
			return true, nil
		}
	}
	return false, nil
}

func (m *memoryStore) StudentConflictOnDate(ctx context.Context, exec sqlx.ExtContext, moduleID string, date models.Date) (bool, error) {
	enrolled := make(map[string]bool)
	for _, studentID := range m.enrollments[moduleID] {
		enrolled[studentID] = true
	}
	for _, exam := range m.exams {
		if !exam.Date.Equal(date) {
			continue
		}
		for _, studentID := range m.enrollments[exam.ModuleID] {
			if enrolled[studentID] {
				return true, nil
			}
		}
	}
	return false, nil
}

func (m *memoryStore) BookedRoomIDs(ctx context.Context, exec sqlx.ExtContext, date models.Date, slot models.Clock) ([]string, error) {
	var ids []string
	for _, exam := range m.exams {
		if exam.Date.Equal(date) && exam.StartTime == slot {
			ids = append(ids, exam.RoomIDs...)
		}
	}
	return ids, nil
}

func (m *memoryStore) SupervisorLoads(ctx context.Context, exec sqlx.ExtContext, date models.Date, slot models.Clock) ([]models.SupervisorLoad, error) {
	loads := make(map[string]*models.SupervisorLoad)
	var order []string
	for _, exam := range m.exams {
		if !exam.Date.Equal(date) {
			continue
		}
		for _, professorID := range exam.ProfessorIDs {
			load, ok := loads[professorID]
			if !ok {
				load = &models.SupervisorLoad{ProfessorID: professorID}
				loads[professorID] = load
				order = append(order, professorID)
			}
			load.DailyCount++
			if exam.StartTime == slot {
				load.BusyAtSlot = true
			}
		}
	}
	out := make([]models.SupervisorLoad, 0, len(order))
	for _, id := range order {
		out = append(out, *loads[id])
	}
	return out, nil
}

func (m *memoryStore) Create(ctx context.Context, exec sqlx.ExtContext, exam *models.Exam) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.seq++
	exam.ID = fmt.Sprintf("exam-%d", m.seq)
	stored := *exam
	m.exams = append(m.exams, &stored)
	return nil
}

func (m *memoryStore) ListDetails(ctx context.Context, exec sqlx.ExtContext, filter models.ExamFilter) ([]models.ExamDetail, error) {
	var details []models.ExamDetail
	for _, exam := range m.exams {
		if filter.StartDate != nil && exam.Date.Before(*filter.StartDate) {
			continue
		}
		if filter.EndDate != nil && exam.Date.After(*filter.EndDate) {
			continue
		}
		module := m.module(exam.ModuleID)
		detail := models.ExamDetail{
			ExamID:        exam.ID,
			ModuleID:      exam.ModuleID,
			ModuleName:    module.Name,
			FormationID:   module.FormationID,
			FormationName: m.formations[module.FormationID],
			Date:          exam.Date,
			StartTime:     exam.StartTime,
			Duration:      exam.DurationMinutes,
			DeptHead:      exam.DeptHeadApproval,
			ViceDean:      exam.ViceDeanApproval,
		}
		for _, roomID := range exam.RoomIDs {
			room := m.room(roomID)
			detail.Rooms = append(detail.Rooms, models.ExamRoomDetail{ExamID: exam.ID, RoomID: room.ID, RoomName: room.Name, Capacity: room.Capacity})
		}
		for _, professorID := range exam.ProfessorIDs {
			detail.Supervisors = append(detail.Supervisors, models.ExamSupervisorDetail{ExamID: exam.ID, ProfessorID: professorID, ProfessorName: "Prof " + professorID})
		}
		details = append(details, detail)
	}
	return details, nil
}

func (m *memoryStore) DateSpan(ctx context.Context) (*models.Date, *models.Date, error) {
	if len(m.exams) == 0 {
		return nil, nil, nil
	}
	first, last := m.exams[0].Date, m.exams[0].Date
	for _, exam := range m.exams[1:] {
		if exam.Date.Before(first) {
			first = exam.Date
		}
		if exam.Date.After(last) {
			last = exam.Date
		}
	}
	return &first, &last, nil
}

// assertScheduleInvariants checks the placement rules every stored schedule must satisfy.
func assertScheduleInvariants(t *testing.T, store *memoryStore) {
	t.Helper()

	roomSlots := make(map[string]string)
	professorSlots := make(map[string]string)
	professorDaily := make(map[string]int)
	formationDays := make(map[string]string)
	studentDays := make(map[string]string)

	for _, exam := range store.exams {
		date := exam.Date.String()
		slot := slotKey(exam.Date, exam.StartTime)

		for _, roomID := range exam.RoomIDs {
			key := slot + "|" + roomID
			require.Emptyf(t, roomSlots[key], "room %s double booked at %s", roomID, slot)
			roomSlots[key] = exam.ID
		}

		require.Len(t, exam.ProfessorIDs, RequiredSupervisors)
		for _, professorID := range exam.ProfessorIDs {
			key := slot + "|" + professorID
			require.Emptyf(t, professorSlots[key], "professor %s double booked at %s", professorID, slot)
			professorSlots[key] = exam.ID
			professorDaily[date+"|"+professorID]++
			require.LessOrEqualf(t, professorDaily[date+"|"+professorID], MaxDailySupervisions, "professor %s over daily cap on %s", professorID, date)
		}

		formationKey := date + "|" + store.module(exam.ModuleID).FormationID
		require.Emptyf(t, formationDays[formationKey], "formation clash on %s", date)
		formationDays[formationKey] = exam.ID

		for _, studentID := range store.enrollments[exam.ModuleID] {
			key := date + "|" + studentID
			require.Emptyf(t, studentDays[key], "student %s sits two exams on %s", studentID, date)
			studentDays[key] = exam.ID
		}

		capacity := 0
		for _, roomID := range exam.RoomIDs {
			capacity += store.room(roomID).EffectiveCapacity()
		}
		require.GreaterOrEqualf(t, capacity, len(store.enrollments[exam.ModuleID]), "exam %s under capacity", exam.ID)
		assertGroupCapacity(t, store, exam)
		require.Equal(t, models.ApprovalPending, exam.DeptHeadApproval)
		require.Equal(t, models.ApprovalPending, exam.ViceDeanApproval)
		require.Equal(t, models.ExamDurationMinutes, exam.DurationMinutes)
	}
}

// assertGroupCapacity replays the exam's rooms in claim order against its formation
// groups: each group must be covered by its own rooms and no room may be left over.
func assertGroupCapacity(t *testing.T, store *memoryStore, exam *models.Exam) {
	t.Helper()

	groups, err := store.GroupsByModule(context.Background(), nil, exam.ModuleID)
	require.NoError(t, err)

	next := 0
	for _, group := range groups {
		seats := 0
		for seats < group.StudentCount {
			require.Lessf(t, next, len(exam.RoomIDs), "exam %s: formation %s short of seats (%d of %d)",
				exam.ID, group.FormationID, seats, group.StudentCount)
			seats += store.room(exam.RoomIDs[next]).EffectiveCapacity()
			next++
		}
		require.GreaterOrEqualf(t, seats, group.StudentCount, "exam %s: formation %s under capacity", exam.ID, group.FormationID)
	}
	require.Equalf(t, len(exam.RoomIDs), next, "exam %s holds rooms no formation group uses", exam.ID)
}
