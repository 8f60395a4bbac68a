package staff

import "context"

// StaffRepository provides the employee reference data the engines need.
type StaffRepository interface {
	GetByID(ctx context.Context, employeeID string) (Employee, error)

	// GetShiftConfig returns the working-day parameters for an employee.
	// Implementations fall back to the organization defaults when the
	// employee has no explicit shift assignment.
	GetShiftConfig(ctx context.Context, employeeID string) (ShiftConfig, error)
}
