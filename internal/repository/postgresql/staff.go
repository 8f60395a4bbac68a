package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/peoplecore/hr-portal-go/internal/domain/staff"
	"github.com/peoplecore/hr-portal-go/internal/pkg/database"
)

type staffRepository struct {
	db           *database.DB
	defaultShift staff.ShiftConfig
}

// NewStaffRepository returns a staff.StaffRepository reading the
// employees table. defaultShift fills in for employees with no explicit
// shift assignment.
func NewStaffRepository(db *database.DB, defaultShift staff.ShiftConfig) staff.StaffRepository {
	return &staffRepository{db: db, defaultShift: defaultShift}
}

// GetByID implements staff.StaffRepository.
func (s *staffRepository) GetByID(ctx context.Context, employeeID string) (staff.Employee, error) {
	q := GetQuerier(ctx, s.db)

	query := `
		SELECT id, full_name, email, department, role, active, hire_date, created_at, updated_at
		FROM employees
		WHERE id = $1
	`

	var emp staff.Employee
	err := q.QueryRow(ctx, query, employeeID).Scan(
		&emp.ID, &emp.FullName, &emp.Email, &emp.Department, &emp.Role,
		&emp.Active, &emp.HireDate, &emp.CreatedAt, &emp.UpdatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return staff.Employee{}, staff.ErrEmployeeNotFound
		}
		return staff.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}

	return emp, nil
}

// GetShiftConfig implements staff.StaffRepository. Employees may carry a
// shift_start override; every other parameter is organization-wide.
func (s *staffRepository) GetShiftConfig(ctx context.Context, employeeID string) (staff.ShiftConfig, error) {
	q := GetQuerier(ctx, s.db)

	query := `
		SELECT shift_start
		FROM employees
		WHERE id = $1
	`

	var shiftStart *string
	err := q.QueryRow(ctx, query, employeeID).Scan(&shiftStart)
	if err != nil {
		if err == pgx.ErrNoRows {
			return staff.ShiftConfig{}, staff.ErrEmployeeNotFound
		}
		return staff.ShiftConfig{}, fmt.Errorf("failed to get shift config: %w", err)
	}

	shift := s.defaultShift
	if shiftStart != nil {
		shift = shift.WithStartOverride(*shiftStart)
	}

	return shift, nil
}
