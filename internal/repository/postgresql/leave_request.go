package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/peoplecore/hr-portal-go/internal/domain/leave"
	"github.com/peoplecore/hr-portal-go/internal/pkg/database"
)

type leaveRequestRepository struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.RequestRepository {
	return &leaveRequestRepository{db: db}
}

const leaveRequestColumns = `
	id, employee_id, leave_type, start_date, end_date, days, reason,
	status, applied_at, approved_by, decision_date, hr_notes,
	rejection_reason, cancelled_at, version, created_at, updated_at
`

func scanLeaveRequest(row pgx.Row) (leave.Request, error) {
	var req leave.Request
	err := row.Scan(
		&req.ID, &req.EmployeeID, &req.LeaveType, &req.StartDate, &req.EndDate, &req.Days, &req.Reason,
		&req.Status, &req.AppliedAt, &req.ApprovedBy, &req.DecisionDate, &req.HRNotes,
		&req.RejectionReason, &req.CancelledAt, &req.Version, &req.CreatedAt, &req.UpdatedAt,
	)
	return req, err
}

// Create implements leave.RequestRepository.
func (l *leaveRequestRepository) Create(ctx context.Context, req leave.Request) (leave.Request, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		INSERT INTO leave_requests (
			employee_id, leave_type, start_date, end_date, days, reason,
			status, applied_at, version
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, 1
		) RETURNING id, version, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		req.EmployeeID,
		req.LeaveType,
		req.StartDate,
		req.EndDate,
		req.Days,
		req.Reason,
		req.Status,
		req.AppliedAt,
	).Scan(&req.ID, &req.Version, &req.CreatedAt, &req.UpdatedAt)

	if err != nil {
		return leave.Request{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	return req, nil
}

// GetByID implements leave.RequestRepository.
func (l *leaveRequestRepository) GetByID(ctx context.Context, id string) (leave.Request, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		SELECT ` + leaveRequestColumns + `
		FROM leave_requests
		WHERE id = $1
	`

	req, err := scanLeaveRequest(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return leave.Request{}, leave.ErrRequestNotFound
		}
		return leave.Request{}, fmt.Errorf("failed to get leave request: %w", err)
	}

	return req, nil
}

// HasActiveOverlap implements leave.RequestRepository.
func (l *leaveRequestRepository) HasActiveOverlap(ctx context.Context, employeeID, startDate, endDate string) (bool, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		SELECT EXISTS (
			SELECT 1
			FROM leave_requests
			WHERE employee_id = $1
			  AND status IN ('pending', 'approved')
			  AND start_date <= $3
			  AND end_date >= $2
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, employeeID, startDate, endDate).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check overlapping leave requests: %w", err)
	}

	return exists, nil
}

// UpdateStatus implements leave.RequestRepository. The version guard in
// the WHERE clause is the optimistic concurrency check; a row that moved
// on since it was read is left untouched.
func (l *leaveRequestRepository) UpdateStatus(ctx context.Context, id string, expectedVersion int, upd leave.StatusUpdate) (leave.Request, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		UPDATE leave_requests
		SET status = $3,
			approved_by = COALESCE($4, approved_by),
			decision_date = COALESCE($5, decision_date),
			hr_notes = COALESCE($6, hr_notes),
			rejection_reason = COALESCE($7, rejection_reason),
			cancelled_at = COALESCE($8, cancelled_at),
			version = version + 1,
			updated_at = NOW()
		WHERE id = $1
		  AND version = $2
		RETURNING ` + leaveRequestColumns + `
	`

	req, err := scanLeaveRequest(q.QueryRow(ctx, query,
		id,
		expectedVersion,
		upd.Status,
		upd.ApprovedBy,
		upd.DecisionDate,
		upd.HRNotes,
		upd.RejectionReason,
		upd.CancelledAt,
	))

	if err != nil {
		if err == pgx.ErrNoRows {
			// Distinguish a vanished row from a version race.
			if _, getErr := l.GetByID(ctx, id); getErr != nil {
				return leave.Request{}, getErr
			}
			return leave.Request{}, leave.ErrVersionMismatch
		}
		return leave.Request{}, fmt.Errorf("failed to update leave request status: %w", err)
	}

	return req, nil
}

// List implements leave.RequestRepository.
func (l *leaveRequestRepository) List(ctx context.Context, filter leave.RequestFilter) ([]leave.Request, int64, error) {
	q := GetQuerier(ctx, l.db)

	// Build WHERE clause
	baseWhere := "1=1"
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		baseWhere += fmt.Sprintf(" AND r.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}

	if filter.Status != nil && *filter.Status != "" {
		baseWhere += fmt.Sprintf(" AND r.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}

	if filter.LeaveType != nil && *filter.LeaveType != "" {
		baseWhere += fmt.Sprintf(" AND r.leave_type = $%d", argIdx)
		args = append(args, *filter.LeaveType)
		argIdx++
	}

	countQuery := "SELECT COUNT(*) FROM leave_requests r WHERE " + baseWhere

	var totalCount int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count leave requests: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT
			r.id, r.employee_id, r.leave_type, r.start_date, r.end_date, r.days, r.reason,
			r.status, r.applied_at, r.approved_by, r.decision_date, r.hr_notes,
			r.rejection_reason, r.cancelled_at, r.version, r.created_at, r.updated_at,
			e.full_name AS employee_name
		FROM leave_requests r
		LEFT JOIN employees e ON e.id = r.employee_id
		WHERE %s
		ORDER BY r.applied_at DESC
		LIMIT $%d OFFSET $%d
	`, baseWhere, argIdx, argIdx+1)

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	page := filter.Page
	if page <= 0 {
		page = 1
	}
	args = append(args, limit, (page-1)*limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list leave requests: %w", err)
	}
	defer rows.Close()

	var requests []leave.Request
	for rows.Next() {
		var req leave.Request
		err := rows.Scan(
			&req.ID, &req.EmployeeID, &req.LeaveType, &req.StartDate, &req.EndDate, &req.Days, &req.Reason,
			&req.Status, &req.AppliedAt, &req.ApprovedBy, &req.DecisionDate, &req.HRNotes,
			&req.RejectionReason, &req.CancelledAt, &req.Version, &req.CreatedAt, &req.UpdatedAt,
			&req.EmployeeName,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan leave request: %w", err)
		}
		requests = append(requests, req)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate leave requests: %w", err)
	}

	return requests, totalCount, nil
}
