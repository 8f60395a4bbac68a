package lifecycle

import (
	"context"

	"github.com/peoplecore/hr-portal-go/internal/domain/attendance"
	"github.com/peoplecore/hr-portal-go/internal/domain/leave"
	"github.com/peoplecore/hr-portal-go/internal/domain/staff"
)

// Options carries per-call gateway behavior.
type Options struct {
	// IdempotencyKey, when set, deduplicates the mutation: a replay with
	// the same key and body returns the stored response without running
	// the operation again.
	IdempotencyKey string
}

// Gateway is the single entry point for every lifecycle operation. It
// authorizes the actor, serializes the mutation on the contended
// resource, and applies idempotency before delegating to the engines.
type Gateway interface {
	CheckIn(ctx context.Context, actor staff.Actor, req attendance.CheckInRequest, opts Options) (attendance.RecordResponse, error)
	CheckOut(ctx context.Context, actor staff.Actor, req attendance.CheckOutRequest, opts Options) (attendance.RecordResponse, error)
	GetAttendance(ctx context.Context, actor staff.Actor, employeeID, date string) (attendance.RecordResponse, error)
	ListAttendance(ctx context.Context, actor staff.Actor, filter attendance.ListFilter) (attendance.ListResponse, error)

	SubmitLeave(ctx context.Context, actor staff.Actor, req leave.SubmitRequest, opts Options) (leave.RequestResponse, error)
	DecideLeave(ctx context.Context, actor staff.Actor, req leave.DecideRequest, opts Options) (leave.RequestResponse, error)
	CancelLeave(ctx context.Context, actor staff.Actor, req leave.CancelRequest, opts Options) (leave.RequestResponse, error)
	GetLeave(ctx context.Context, actor staff.Actor, requestID string) (leave.RequestResponse, error)
	Balance(ctx context.Context, actor staff.Actor, employeeID string) (leave.BalanceResponse, error)
	ListLeave(ctx context.Context, actor staff.Actor, filter leave.RequestFilter) (leave.ListResponse, error)
}
