package postgresql

import (
	"context"
	"fmt"

	"github.com/peoplecore/hr-portal-go/internal/domain/leave"
	"github.com/peoplecore/hr-portal-go/internal/pkg/database"
)

type leaveLedgerRepository struct {
	db *database.DB
}

func NewLeaveLedgerRepository(db *database.DB) leave.LedgerRepository {
	return &leaveLedgerRepository{db: db}
}

// Ensure implements leave.LedgerRepository. The upsert is a no-op when
// the entry exists, so an allocation is only ever written once.
func (l *leaveLedgerRepository) Ensure(ctx context.Context, employeeID, leaveType string, allocated int) (leave.LedgerEntry, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		INSERT INTO leave_ledger (employee_id, leave_type, allocated, used, pending)
		VALUES ($1, $2, $3, 0, 0)
		ON CONFLICT (employee_id, leave_type) DO UPDATE SET employee_id = EXCLUDED.employee_id
		RETURNING employee_id, leave_type, allocated, used, pending, updated_at
	`

	var entry leave.LedgerEntry
	err := q.QueryRow(ctx, query, employeeID, leaveType, allocated).Scan(
		&entry.EmployeeID, &entry.LeaveType, &entry.Allocated, &entry.Used, &entry.Pending, &entry.UpdatedAt,
	)
	if err != nil {
		return leave.LedgerEntry{}, fmt.Errorf("failed to ensure ledger entry: %w", err)
	}

	return entry, nil
}

// GetAll implements leave.LedgerRepository.
func (l *leaveLedgerRepository) GetAll(ctx context.Context, employeeID string) ([]leave.LedgerEntry, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		SELECT employee_id, leave_type, allocated, used, pending, updated_at
		FROM leave_ledger
		WHERE employee_id = $1
		ORDER BY leave_type
	`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get ledger entries: %w", err)
	}
	defer rows.Close()

	var entries []leave.LedgerEntry
	for rows.Next() {
		var entry leave.LedgerEntry
		err := rows.Scan(&entry.EmployeeID, &entry.LeaveType, &entry.Allocated, &entry.Used, &entry.Pending, &entry.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ledger entry: %w", err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate ledger entries: %w", err)
	}

	return entries, nil
}

// Reserve implements leave.LedgerRepository. With enforce set, the
// remaining-balance guard sits in the WHERE clause so reservation and
// check are one atomic statement.
func (l *leaveLedgerRepository) Reserve(ctx context.Context, employeeID, leaveType string, days int, enforce bool) error {
	q := GetQuerier(ctx, l.db)

	query := `
		UPDATE leave_ledger
		SET pending = pending + $3, updated_at = NOW()
		WHERE employee_id = $1
		  AND leave_type = $2
	`
	if enforce {
		query += " AND allocated - used - pending >= $3"
	}

	tag, err := q.Exec(ctx, query, employeeID, leaveType, days)
	if err != nil {
		return fmt.Errorf("failed to reserve leave days: %w", err)
	}
	if tag.RowsAffected() == 0 {
		if enforce {
			return leave.ErrInsufficientBalance
		}
		return fmt.Errorf("ledger entry missing for employee %s type %s", employeeID, leaveType)
	}

	return nil
}

// CommitPending implements leave.LedgerRepository.
func (l *leaveLedgerRepository) CommitPending(ctx context.Context, employeeID, leaveType string, days int) error {
	return l.move(ctx, employeeID, leaveType, days, `
		UPDATE leave_ledger
		SET pending = pending - $3, used = used + $3, updated_at = NOW()
		WHERE employee_id = $1
		  AND leave_type = $2
		  AND pending >= $3
	`, "commit pending")
}

// ReleasePending implements leave.LedgerRepository.
func (l *leaveLedgerRepository) ReleasePending(ctx context.Context, employeeID, leaveType string, days int) error {
	return l.move(ctx, employeeID, leaveType, days, `
		UPDATE leave_ledger
		SET pending = pending - $3, updated_at = NOW()
		WHERE employee_id = $1
		  AND leave_type = $2
		  AND pending >= $3
	`, "release pending")
}

// ReleaseUsed implements leave.LedgerRepository.
func (l *leaveLedgerRepository) ReleaseUsed(ctx context.Context, employeeID, leaveType string, days int) error {
	return l.move(ctx, employeeID, leaveType, days, `
		UPDATE leave_ledger
		SET used = used - $3, updated_at = NOW()
		WHERE employee_id = $1
		  AND leave_type = $2
		  AND used >= $3
	`, "release used")
}

// move runs one guarded counter update. A zero row count here means the
// counters no longer cover the movement, which only happens if a
// transition was applied twice; surface it loudly instead of going
// negative.
func (l *leaveLedgerRepository) move(ctx context.Context, employeeID, leaveType string, days int, query, op string) error {
	q := GetQuerier(ctx, l.db)

	tag, err := q.Exec(ctx, query, employeeID, leaveType, days)
	if err != nil {
		return fmt.Errorf("failed to %s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("ledger underflow on %s for employee %s type %s", op, employeeID, leaveType)
	}

	return nil
}
