package attendance

import (
	"context"
	"time"
)

// Repository defines data access for attendance records. One record per
// (employee, date) is enforced by the store itself, not by callers.
type Repository interface {
	// Create inserts the day's record. Returns ErrAlreadyCheckedIn when a
	// record for (employeeID, date) already exists.
	Create(ctx context.Context, rec Record) (Record, error)

	// GetByEmployeeAndDate returns the record for one employee and day.
	// Returns ErrRecordNotFound when there is none.
	GetByEmployeeAndDate(ctx context.Context, employeeID, date string) (Record, error)

	// CloseSession sets the check-out on the open record for the day.
	// The update is conditional on the record still being open; a closed
	// or missing record yields ErrNoOpenSession.
	CloseSession(ctx context.Context, employeeID, date string, checkOut time.Time, notes *string) (Record, error)

	// List returns records matching the filter with a total count.
	List(ctx context.Context, filter ListFilter) ([]Record, int64, error)
}
