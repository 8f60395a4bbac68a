package attendance

import "context"

// Engine is the attendance state machine: NotStarted -> Open -> Closed per
// (employee, day). Status is derived on the way out, never persisted.
type Engine interface {
	// CheckIn opens the day's session. Fails with ErrAlreadyCheckedIn if
	// the day already has one; the original record is left untouched.
	CheckIn(ctx context.Context, req CheckInRequest) (RecordResponse, error)

	// CheckOut closes the open session and derives hours.
	CheckOut(ctx context.Context, req CheckOutRequest) (RecordResponse, error)

	// Get returns one record with its derived status.
	Get(ctx context.Context, employeeID, date string) (RecordResponse, error)

	// List returns records with derived statuses (admin/HR view when
	// filter.EmployeeID is unset).
	List(ctx context.Context, filter ListFilter) (ListResponse, error)
}
