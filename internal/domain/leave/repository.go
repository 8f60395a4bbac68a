package leave

import (
	"context"
	"time"
)

// StatusUpdate carries the fields a single transition writes. The
// repository bumps Version itself; callers never set it.
type StatusUpdate struct {
	Status          RequestStatus
	ApprovedBy      *string
	DecisionDate    *time.Time
	HRNotes         *string
	RejectionReason *string
	CancelledAt     *time.Time
}

// RequestRepository defines data access for leave requests.
type RequestRepository interface {
	// Create inserts a new pending request with Version 1.
	Create(ctx context.Context, req Request) (Request, error)

	// GetByID returns one request. Returns ErrRequestNotFound when absent.
	GetByID(ctx context.Context, id string) (Request, error)

	// HasActiveOverlap reports whether the employee has a pending or
	// approved request intersecting [startDate, endDate].
	HasActiveOverlap(ctx context.Context, employeeID, startDate, endDate string) (bool, error)

	// UpdateStatus applies upd conditionally on the request still carrying
	// expectedVersion, bumping the version on success. A version race
	// yields ErrVersionMismatch; a missing request ErrRequestNotFound.
	UpdateStatus(ctx context.Context, id string, expectedVersion int, upd StatusUpdate) (Request, error)

	// List returns requests matching the filter with a total count,
	// newest applied first.
	List(ctx context.Context, filter RequestFilter) ([]Request, int64, error)
}

// LedgerRepository defines data access for leave balance counters. The
// guarded mutations are conditional single-statement updates so the
// ledger can never go negative, whatever order transitions land in.
type LedgerRepository interface {
	// Ensure returns the entry for (employeeID, leaveType), creating it
	// with the given allocation when missing.
	Ensure(ctx context.Context, employeeID, leaveType string, allocated int) (LedgerEntry, error)

	// GetAll returns every entry for one employee.
	GetAll(ctx context.Context, employeeID string) ([]LedgerEntry, error)

	// Reserve adds days to Pending. When enforce is true the update is
	// guarded by remaining >= days and fails with ErrInsufficientBalance.
	Reserve(ctx context.Context, employeeID, leaveType string, days int, enforce bool) error

	// CommitPending moves days from Pending to Used. Guarded by
	// pending >= days.
	CommitPending(ctx context.Context, employeeID, leaveType string, days int) error

	// ReleasePending subtracts days from Pending. Guarded by
	// pending >= days.
	ReleasePending(ctx context.Context, employeeID, leaveType string, days int) error

	// ReleaseUsed subtracts days from Used. Guarded by used >= days.
	ReleaseUsed(ctx context.Context, employeeID, leaveType string, days int) error
}

// HolidayCalendar answers whether a calendar day is a non-working day
// for the organization. Day counting excludes these.
type HolidayCalendar interface {
	IsHoliday(ctx context.Context, day time.Time) (bool, error)
}
