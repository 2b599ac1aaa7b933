package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/noah-isme/exam-timetable-api/internal/models"
)

// ExamRepository persists exams together with their room and supervisor links.
type ExamRepository struct {
	db *sqlx.DB
}

// NewExamRepository constructs the repository.
func NewExamRepository(db *sqlx.DB) *ExamRepository {
	return &ExamRepository{db: db}
}

func (r *ExamRepository) exec(exec sqlx.ExtContext) sqlx.ExtContext {
	if exec != nil {
		return exec
	}
	return r.db
}

// DeleteRange removes every exam dated within [start,end]. Link rows cascade.
func (r *ExamRepository) DeleteRange(ctx context.Context, exec sqlx.ExtContext, start, end models.Date) (int64, error) {
	const query = `DELETE FROM exams WHERE exam_date BETWEEN $1 AND $2`
	result, err := r.exec(exec).ExecContext(ctx, query, start, end)
	if err != nil {
		return 0, fmt.Errorf("delete exams in range: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("deleted exams rows affected: %w", err)
	}
	return affected, nil
}

// FormationHasExamOnDate reports whether another module of the formation is examined on date.
func (r *ExamRepository) FormationHasExamOnDate(ctx context.Context, exec sqlx.ExtContext, formationID string, date models.Date, excludingModuleID string) (bool, error) {
	const query = `SELECT EXISTS (
SELECT 1 FROM exams e JOIN modules m ON m.id = e.module_id
WHERE m.formation_id = $1 AND e.exam_date = $2 AND e.module_id <> $3)`
	var exists bool
	if err := sqlx.GetContext(ctx, r.exec(exec), &exists, query, formationID, date, excludingModuleID); err != nil {
		return false, fmt.Errorf("check formation exam on date: %w", err)
	}
	return exists, nil
}

// StudentConflictOnDate reports whether any student of the module already sits an exam on date.
func (r *ExamRepository) StudentConflictOnDate(ctx context.Context, exec sqlx.ExtContext, moduleID string, date models.Date) (bool, error) {
	const query = `SELECT EXISTS (
SELECT 1 FROM enrollments target
JOIN enrollments other ON other.student_id = target.student_id
JOIN exams e ON e.module_id = other.module_id
WHERE target.module_id = $1 AND e.exam_date = $2)`
	var exists bool
	if err := sqlx.GetContext(ctx, r.exec(exec), &exists, query, moduleID, date); err != nil {
		return false, fmt.Errorf("check student exam on date: %w", err)
	}
	return exists, nil
}

// BookedRoomIDs lists rooms already bound to an exam at date and slot.
func (r *ExamRepository) BookedRoomIDs(ctx context.Context, exec sqlx.ExtContext, date models.Date, slot models.Clock) ([]string, error) {
	const query = `SELECT er.room_id FROM exam_rooms er JOIN exams e ON e.id = er.exam_id
WHERE e.exam_date = $1 AND e.start_time = $2`
	var ids []string
	if err := sqlx.SelectContext(ctx, r.exec(exec), &ids, query, date, slot); err != nil {
		return nil, fmt.Errorf("list booked rooms: %w", err)
	}
	return ids, nil
}

// SupervisorLoads summarises supervision per professor on date, flagging those busy at slot.
func (r *ExamRepository) SupervisorLoads(ctx context.Context, exec sqlx.ExtContext, date models.Date, slot models.Clock) ([]models.SupervisorLoad, error) {
	const query = `SELECT es.professor_id, COUNT(*) AS daily_count, BOOL_OR(e.start_time = $2) AS busy_at_slot
FROM exam_supervisors es JOIN exams e ON e.id = es.exam_id
WHERE e.exam_date = $1
GROUP BY es.professor_id`
	var loads []models.SupervisorLoad
	if err := sqlx.SelectContext(ctx, r.exec(exec), &loads, query, date, slot); err != nil {
		return nil, fmt.Errorf("list supervisor loads: %w", err)
	}
	return loads, nil
}

// Create inserts the exam and its room and supervisor links.
func (r *ExamRepository) Create(ctx context.Context, exec sqlx.ExtContext, exam *models.Exam) error {
	if exam == nil {
		return fmt.Errorf("exam payload is nil")
	}
	if exam.ID == "" {
		exam.ID = uuid.NewString()
	}
	if exam.DurationMinutes == 0 {
		exam.DurationMinutes = models.ExamDurationMinutes
	}
	if exam.DeptHeadApproval == "" {
		exam.DeptHeadApproval = models.ApprovalPending
	}
	if exam.ViceDeanApproval == "" {
		exam.ViceDeanApproval = models.ApprovalPending
	}
	if exam.CreatedAt.IsZero() {
		exam.CreatedAt = time.Now().UTC()
	}

	target := r.exec(exec)
	const insertExam = `INSERT INTO exams (id, module_id, exam_date, start_time, duration_minutes, dept_head_approval, vice_dean_approval, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	if _, err := target.ExecContext(ctx, insertExam, exam.ID, exam.ModuleID, exam.Date, exam.StartTime, exam.DurationMinutes,
		exam.DeptHeadApproval, exam.ViceDeanApproval, exam.CreatedAt); err != nil {
		return fmt.Errorf("insert exam: %w", err)
	}

	const insertRoom = `INSERT INTO exam_rooms (exam_id, room_id) VALUES ($1, $2)`
	for _, roomID := range exam.RoomIDs {
		if _, err := target.ExecContext(ctx, insertRoom, exam.ID, roomID); err != nil {
			return fmt.Errorf("insert exam room: %w", err)
		}
	}
	const insertSupervisor = `INSERT INTO exam_supervisors (exam_id, professor_id) VALUES ($1, $2)`
	for _, professorID := range exam.ProfessorIDs {
		if _, err := target.ExecContext(ctx, insertSupervisor, exam.ID, professorID); err != nil {
			return fmt.Errorf("insert exam supervisor: %w", err)
		}
	}
	return nil
}

// FindByID loads an exam header.
func (r *ExamRepository) FindByID(ctx context.Context, id string) (*models.Exam, error) {
	const query = `SELECT id, module_id, exam_date, start_time, duration_minutes, dept_head_approval, vice_dean_approval, created_at
FROM exams WHERE id = $1`
	var exam models.Exam
	if err := r.db.GetContext(ctx, &exam, query, id); err != nil {
		return nil, err
	}
	return &exam, nil
}

// Delete removes one exam.
func (r *ExamRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM exams WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete exam: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("exam rows affected: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// UpdateDeptHeadApproval sets the department-head gate.
func (r *ExamRepository) UpdateDeptHeadApproval(ctx context.Context, id string, status models.ApprovalStatus) error {
	const query = `UPDATE exams SET dept_head_approval = $2 WHERE id = $1`
	return r.updateApproval(ctx, query, id, status)
}

// UpdateViceDeanApproval sets the vice-dean gate only while the department-head gate is approved.
func (r *ExamRepository) UpdateViceDeanApproval(ctx context.Context, id string, status models.ApprovalStatus) error {
	const query = `UPDATE exams SET vice_dean_approval = $2 WHERE id = $1 AND dept_head_approval = 'APPROVED'`
	return r.updateApproval(ctx, query, id, status)
}

func (r *ExamRepository) updateApproval(ctx context.Context, query, id string, status models.ApprovalStatus) error {
	result, err := r.db.ExecContext(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("update exam approval: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("exam approval rows affected: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// DateSpan returns the earliest and latest exam dates, or nils when no exams exist.
func (r *ExamRepository) DateSpan(ctx context.Context) (*models.Date, *models.Date, error) {
	const query = `SELECT MIN(exam_date), MAX(exam_date) FROM exams`
	var first, last sql.NullTime
	if err := r.db.QueryRowxContext(ctx, query).Scan(&first, &last); err != nil {
		return nil, nil, fmt.Errorf("exam date span: %w", err)
	}
	if !first.Valid || !last.Valid {
		return nil, nil, nil
	}
	start, end := models.NewDate(first.Time), models.NewDate(last.Time)
	return &start, &end, nil
}

// Count returns the number of stored exams.
func (r *ExamRepository) Count(ctx context.Context) (int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM exams`); err != nil {
		return 0, fmt.Errorf("count exams: %w", err)
	}
	return total, nil
}

// ListDetails returns exams matching filter with their rooms and supervisors attached.
func (r *ExamRepository) ListDetails(ctx context.Context, exec sqlx.ExtContext, filter models.ExamFilter) ([]models.ExamDetail, error) {
	var (
		conditions []string
		args       []interface{}
	)
	add := func(clause string, value interface{}) {
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf(clause, len(args)))
	}
	if filter.ModuleID != "" {
		add("e.module_id = $%d", filter.ModuleID)
	}
	if filter.DepartmentID != "" {
		add("f.department_id = $%d", filter.DepartmentID)
	}
	if filter.StudentID != "" {
		add("EXISTS (SELECT 1 FROM enrollments en WHERE en.module_id = e.module_id AND en.student_id = $%d)", filter.StudentID)
	}
	if filter.ProfessorID != "" {
		add("EXISTS (SELECT 1 FROM exam_supervisors es WHERE es.exam_id = e.id AND es.professor_id = $%d)", filter.ProfessorID)
	}
	if filter.StartDate != nil {
		add("e.exam_date >= $%d", *filter.StartDate)
	}
	if filter.EndDate != nil {
		add("e.exam_date <= $%d", *filter.EndDate)
	}
	if filter.PublishedOnly {
		conditions = append(conditions, "e.dept_head_approval = 'APPROVED' AND e.vice_dean_approval = 'APPROVED'")
	}
	if filter.HideRejected {
		conditions = append(conditions, "e.dept_head_approval <> 'REJECTED'")
	}
	if filter.DeptHeadStatus != "" {
		add("e.dept_head_approval = $%d", filter.DeptHeadStatus)
	}
	if filter.ViceDeanStatus != "" {
		add("e.vice_dean_approval = $%d", filter.ViceDeanStatus)
	}

	query := `SELECT e.id AS exam_id, e.module_id, m.name AS module_name, m.formation_id, f.name AS formation_name,
e.exam_date, e.start_time, e.duration_minutes, e.dept_head_approval, e.vice_dean_approval
FROM exams e
JOIN modules m ON m.id = e.module_id
JOIN formations f ON f.id = m.formation_id` + whereClause(conditions) + `
ORDER BY e.exam_date, e.start_time, m.name`

	target := r.exec(exec)
	var details []models.ExamDetail
	if err := sqlx.SelectContext(ctx, target, &details, query, args...); err != nil {
		return nil, fmt.Errorf("list exam details: %w", err)
	}
	if len(details) == 0 {
		return details, nil
	}

	ids := make([]string, len(details))
	index := make(map[string]int, len(details))
	for i, detail := range details {
		ids[i] = detail.ExamID
		index[detail.ExamID] = i
	}

	const roomsQuery = `SELECT er.exam_id, r.id AS room_id, r.name AS room_name, r.capacity, b.name AS building_name
FROM exam_rooms er
JOIN rooms r ON r.id = er.room_id
JOIN buildings b ON b.id = r.building_id
WHERE er.exam_id = ANY($1)
ORDER BY r.capacity DESC, r.name`
	var rooms []models.ExamRoomDetail
	if err := sqlx.SelectContext(ctx, target, &rooms, roomsQuery, pq.Array(ids)); err != nil {
		return nil, fmt.Errorf("list exam rooms: %w", err)
	}
	for _, room := range rooms {
		i := index[room.ExamID]
		details[i].Rooms = append(details[i].Rooms, room)
	}

	const supervisorsQuery = `SELECT es.exam_id, p.id AS professor_id, p.name AS professor_name
FROM exam_supervisors es
JOIN professors p ON p.id = es.professor_id
WHERE es.exam_id = ANY($1)
ORDER BY p.name`
	var supervisors []models.ExamSupervisorDetail
	if err := sqlx.SelectContext(ctx, target, &supervisors, supervisorsQuery, pq.Array(ids)); err != nil {
		return nil, fmt.Errorf("list exam supervisors: %w", err)
	}
	for _, supervisor := range supervisors {
		i := index[supervisor.ExamID]
		details[i].Supervisors = append(details[i].Supervisors, supervisor)
	}
	return details, nil
}
