package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const (
	openSessionIndex = "attendance_records_open_session_idx"

	recordColumns = `a.id, a.worker_id, a.clock_in, a.clock_out, a.status, a.is_manual_entry,
		a.manual_reason, a.latitude, a.longitude, a.updated_by, a.created_at, a.updated_at`
)

type attendanceRepository struct {
	db *database.DB
}

func scanRecord(row pgx.Row, dest ...any) (attendance.Record, error) {
	var (
		r      attendance.Record
		status string
	)
	fields := []any{
		&r.ID, &r.WorkerID, &r.ClockIn, &r.ClockOut, &status, &r.IsManualEntry,
		&r.ManualReason, &r.Latitude, &r.Longitude, &r.UpdatedBy, &r.CreatedAt, &r.UpdatedAt,
	}
	if err := row.Scan(append(fields, dest...)...); err != nil {
		return attendance.Record{}, err
	}
	r.Status = attendance.Status(status)
	return r, nil
}

// FindOpenSession implements attendance.AttendanceRepository.
func (a *attendanceRepository) FindOpenSession(ctx context.Context, workerID string) (*attendance.Record, error) {
	if !isUUID(workerID) {
		return nil, nil
	}
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + recordColumns + `
		FROM attendance_records a
		WHERE a.worker_id = $1
		  AND a.clock_out IS NULL
		  AND NOT a.is_manual_entry
		LIMIT 1
		FOR UPDATE
	`

	record, err := scanRecord(q.QueryRow(ctx, query, workerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get open session: %w", err)
	}

	return &record, nil
}

// Insert implements attendance.AttendanceRepository.
func (a *attendanceRepository) Insert(ctx context.Context, record attendance.Record) (attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	id, err := newID()
	if err != nil {
		return attendance.Record{}, fmt.Errorf("failed to generate attendance id: %w", err)
	}
	record.ID = id

	query := `
		INSERT INTO attendance_records (
			id, worker_id, clock_in, clock_out, status, is_manual_entry,
			manual_reason, latitude, longitude, updated_by, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW()
		) RETURNING created_at, updated_at
	`

	err = q.QueryRow(ctx, query,
		record.ID,
		record.WorkerID,
		record.ClockIn,
		record.ClockOut,
		string(record.Status),
		record.IsManualEntry,
		record.ManualReason,
		record.Latitude,
		record.Longitude,
		record.UpdatedBy,
	).Scan(&record.CreatedAt, &record.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err, openSessionIndex) {
			return attendance.Record{}, attendance.ErrAlreadyClockedIn
		}
		return attendance.Record{}, fmt.Errorf("failed to create attendance record: %w", err)
	}

	return record, nil
}

// Update implements attendance.AttendanceRepository.
func (a *attendanceRepository) Update(ctx context.Context, id string, patch attendance.RecordPatch) (*attendance.Record, error) {
	if !isUUID(id) {
		return nil, nil
	}
	q := GetQuerier(ctx, a.db)

	sets := []string{"updated_at = NOW()"}
	args := []any{id}
	argIdx := 2

	if patch.ClockOut != nil {
		sets = append(sets, fmt.Sprintf("clock_out = $%d", argIdx))
		args = append(args, *patch.ClockOut)
		argIdx++
	}
	if patch.Status != nil {
		sets = append(sets, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, string(*patch.Status))
		argIdx++
	}
	if patch.Latitude != nil {
		sets = append(sets, fmt.Sprintf("latitude = $%d", argIdx))
		args = append(args, *patch.Latitude)
		argIdx++
	}
	if patch.Longitude != nil {
		sets = append(sets, fmt.Sprintf("longitude = $%d", argIdx))
		args = append(args, *patch.Longitude)
		argIdx++
	}
	if patch.UpdatedBy != nil {
		sets = append(sets, fmt.Sprintf("updated_by = $%d", argIdx))
		args = append(args, *patch.UpdatedBy)
		argIdx++
	}

	where := "a.id = $1"
	conditional := false
	if patch.ExpectStatus != nil {
		where += fmt.Sprintf(" AND a.status = $%d", argIdx)
		args = append(args, string(*patch.ExpectStatus))
		conditional = true
	}
	if patch.RequireOpen {
		where += " AND a.clock_out IS NULL"
		conditional = true
	}

	query := fmt.Sprintf(`
		UPDATE attendance_records a
		SET %s
		WHERE %s
		RETURNING %s
	`, strings.Join(sets, ", "), where, recordColumns)

	record, err := scanRecord(q.QueryRow(ctx, query, args...))
	if err == nil {
		return &record, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("failed to update attendance record: %w", err)
	}
	if !conditional {
		return nil, nil
	}

	// No row matched: either the id is unknown or a precondition failed.
	var exists bool
	if err := q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM attendance_records WHERE id = $1)`, id).Scan(&exists); err != nil {
		return nil, fmt.Errorf("failed to check attendance record: %w", err)
	}
	if exists {
		return nil, attendance.ErrStaleRecord
	}
	return nil, nil
}

// GetByID implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByID(ctx context.Context, id string) (*attendance.Record, error) {
	if !isUUID(id) {
		return nil, nil
	}
	q := GetQuerier(ctx, a.db)

	query := `SELECT ` + recordColumns + ` FROM attendance_records a WHERE a.id = $1`

	record, err := scanRecord(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get attendance record: %w", err)
	}

	return &record, nil
}

// FindLatestForDay implements attendance.AttendanceRepository.
func (a *attendanceRepository) FindLatestForDay(ctx context.Context, workerID string, dayStart, dayEnd time.Time) (*attendance.Record, error) {
	if !isUUID(workerID) {
		return nil, nil
	}
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + recordColumns + `
		FROM attendance_records a
		WHERE a.worker_id = $1
		  AND a.clock_in >= $2
		  AND a.clock_in < $3
		ORDER BY a.clock_in DESC, a.id DESC
		LIMIT 1
	`

	record, err := scanRecord(q.QueryRow(ctx, query, workerID, dayStart, dayEnd))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get today's attendance: %w", err)
	}

	return &record, nil
}

// List implements attendance.AttendanceRepository.
func (a *attendanceRepository) List(ctx context.Context, filter attendance.RecordFilter) ([]attendance.RecordView, error) {
	if (filter.WorkerID != nil && !isUUID(*filter.WorkerID)) ||
		(filter.DepartmentID != nil && !isUUID(*filter.DepartmentID)) {
		return []attendance.RecordView{}, nil
	}

	baseWhere := "WHERE 1=1"
	args := []any{}
	argIdx := 1

	if filter.Status != nil {
		baseWhere += fmt.Sprintf(" AND a.status = $%d", argIdx)
		args = append(args, string(*filter.Status))
		argIdx++
	}
	if filter.IsManualEntry != nil {
		baseWhere += fmt.Sprintf(" AND a.is_manual_entry = $%d", argIdx)
		args = append(args, *filter.IsManualEntry)
		argIdx++
	}
	if filter.WorkerID != nil {
		baseWhere += fmt.Sprintf(" AND a.worker_id = $%d", argIdx)
		args = append(args, *filter.WorkerID)
		argIdx++
	}
	if filter.DepartmentID != nil {
		baseWhere += fmt.Sprintf(" AND w.department_id = $%d", argIdx)
		args = append(args, *filter.DepartmentID)
	}

	return a.listViews(ctx, baseWhere+" ORDER BY a.created_at DESC, a.id DESC", args...)
}

// ListOpenSessions implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListOpenSessions(ctx context.Context, clockedInBefore time.Time) ([]attendance.RecordView, error) {
	return a.listViews(ctx, `
		WHERE a.clock_out IS NULL
		  AND NOT a.is_manual_entry
		  AND a.clock_in < $1
		ORDER BY a.clock_in ASC, a.id ASC
	`, clockedInBefore)
}

// listViews selects records joined with worker display data. tail holds the
// WHERE and ORDER BY clauses.
func (a *attendanceRepository) listViews(ctx context.Context, tail string, args ...any) ([]attendance.RecordView, error) {
	q := GetQuerier(ctx, a.db)

	// The approver join only matches once a record left PENDING, so the
	// submitter of a manual entry is never shown as its approver.
	query := fmt.Sprintf(`
		SELECT %s,
			   w.name, w.external_id, w.department_id, d.name, u.name
		FROM attendance_records a
		JOIN workers w ON w.id = a.worker_id
		LEFT JOIN departments d ON d.id = w.department_id
		LEFT JOIN workers u ON u.id = a.updated_by AND a.status <> 'PENDING'
		%s
	`, recordColumns, tail)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance records: %w", err)
	}
	defer rows.Close()

	views := []attendance.RecordView{}
	for rows.Next() {
		var v attendance.RecordView
		record, err := scanRecord(rows,
			&v.WorkerName, &v.WorkerExternalID, &v.DepartmentID, &v.DepartmentName, &v.ApproverName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		v.Record = record
		views = append(views, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendance records: %w", err)
	}

	return views, nil
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{
		db: db,
	}
}
