package lifecycle

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peoplecore/hr-portal-go/internal/domain/attendance"
	"github.com/peoplecore/hr-portal-go/internal/domain/leave"
	"github.com/peoplecore/hr-portal-go/internal/domain/lifecycle"
	"github.com/peoplecore/hr-portal-go/internal/domain/staff"
	"github.com/peoplecore/hr-portal-go/internal/pkg/clock"
	"github.com/peoplecore/hr-portal-go/internal/repository/memory"
	attendanceService "github.com/peoplecore/hr-portal-go/internal/service/attendance"
	leaveService "github.com/peoplecore/hr-portal-go/internal/service/leave"
)

var (
	employeeActor = staff.Actor{EmployeeID: "EMP001", Role: staff.RoleEmployee}
	otherActor    = staff.Actor{EmployeeID: "EMP002", Role: staff.RoleEmployee}
	hrActor       = staff.Actor{EmployeeID: "HR001", Role: staff.RoleHR}
	adminActor    = staff.Actor{EmployeeID: "ADM001", Role: staff.RoleAdmin}
)

type gatewayFixture struct {
	gateway lifecycle.Gateway
	store   *memory.Store
	clock   *clock.Fixed
}

func newGatewayFixture(t *testing.T) *gatewayFixture {
	t.Helper()

	loc, err := time.LoadLocation("Asia/Jakarta")
	require.NoError(t, err)

	policies, err := leave.ParsePolicies("annual:25,sick:10,emergency:-")
	require.NoError(t, err)

	shift := staff.ShiftConfig{
		ShiftStart:            "09:00",
		GraceMinutes:          15,
		StandardShiftHours:    8,
		HalfDayThresholdHours: 4,
		BreakMinutes:          60,
		CutoffHour:            23,
	}

	store := memory.NewStore(shift)
	store.SeedEmployee(staff.Employee{ID: "EMP001", FullName: "Ayu Lestari", Role: staff.RoleEmployee, Active: true}, nil)
	store.SeedEmployee(staff.Employee{ID: "EMP002", FullName: "Budi Santoso", Role: staff.RoleEmployee, Active: true}, nil)
	store.SeedEmployee(staff.Employee{ID: "HR001", FullName: "Citra Dewi", Role: staff.RoleHR, Active: true}, nil)

	clk := clock.NewFixed(time.Date(2026, 3, 16, 9, 5, 0, 0, loc))

	engine := attendanceService.NewEngine(memory.NewAttendanceRepository(store), memory.NewStaffRepository(store), clk, loc)
	workflow := leaveService.NewWorkflow(
		memory.NewLeaveRequestRepository(store),
		memory.NewLeaveLedgerRepository(store),
		memory.NewStaffRepository(store),
		memory.NewHolidayCalendar(store),
		policies,
		clk,
		loc,
	)

	gateway := NewGateway(engine, workflow, store, memory.NewIdempotencyRepository(store), clk, loc)

	return &gatewayFixture{gateway: gateway, store: store, clock: clk}
}

func submitReq(start, end string) leave.SubmitRequest {
	return leave.SubmitRequest{
		LeaveType: "annual",
		StartDate: start,
		EndDate:   end,
		Reason:    "family matters",
	}
}

func TestGateway_CheckIn_BindsActor(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newGatewayFixture(t)

	// EmployeeID from the body is ignored; the actor is authoritative.
	result, err := f.gateway.CheckIn(ctx, employeeActor, attendance.CheckInRequest{
		EmployeeID: "EMP002",
		Location:   "office",
	}, lifecycle.Options{})
	require.NoError(t, err)
	assert.Equal(t, "EMP001", result.EmployeeID)
}

func TestGateway_DecideLeave_EmployeeForbidden(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newGatewayFixture(t)

	submitted, err := f.gateway.SubmitLeave(ctx, employeeActor, submitReq("2026-03-18", "2026-03-20"), lifecycle.Options{})
	require.NoError(t, err)

	_, err = f.gateway.DecideLeave(ctx, employeeActor, leave.DecideRequest{
		RequestID:       submitted.ID,
		Decision:        string(leave.DecisionApproved),
		ExpectedVersion: submitted.Version,
	}, lifecycle.Options{})
	assert.ErrorIs(t, err, staff.ErrUnauthorized)

	_, err = f.gateway.DecideLeave(ctx, hrActor, leave.DecideRequest{
		RequestID:       submitted.ID,
		Decision:        string(leave.DecisionApproved),
		ExpectedVersion: submitted.Version,
	}, lifecycle.Options{})
	assert.NoError(t, err)
}

func TestGateway_CancelLeave_Ownership(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newGatewayFixture(t)

	submitted, err := f.gateway.SubmitLeave(ctx, employeeActor, submitReq("2026-03-18", "2026-03-20"), lifecycle.Options{})
	require.NoError(t, err)

	// Another employee cannot cancel it; an admin can.
	_, err = f.gateway.CancelLeave(ctx, otherActor, leave.CancelRequest{RequestID: submitted.ID}, lifecycle.Options{})
	assert.ErrorIs(t, err, staff.ErrUnauthorized)

	_, err = f.gateway.CancelLeave(ctx, adminActor, leave.CancelRequest{RequestID: submitted.ID}, lifecycle.Options{})
	assert.NoError(t, err)
}

func TestGateway_GetAttendance_SelfOrPrivileged(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newGatewayFixture(t)

	_, err := f.gateway.GetAttendance(ctx, employeeActor, "EMP002", "2026-03-16")
	assert.ErrorIs(t, err, staff.ErrUnauthorized)

	_, err = f.gateway.GetAttendance(ctx, employeeActor, "EMP001", "2026-03-16")
	assert.NoError(t, err)

	_, err = f.gateway.GetAttendance(ctx, hrActor, "EMP002", "2026-03-16")
	assert.NoError(t, err)
}

func TestGateway_ListAttendance_ScopesNonPrivileged(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newGatewayFixture(t)

	_, err := f.gateway.CheckIn(ctx, employeeActor, attendance.CheckInRequest{Location: "office"}, lifecycle.Options{})
	require.NoError(t, err)
	_, err = f.gateway.CheckIn(ctx, otherActor, attendance.CheckInRequest{Location: "remote"}, lifecycle.Options{})
	require.NoError(t, err)

	// An employee asking for someone else's records gets their own.
	other := "EMP002"
	result, err := f.gateway.ListAttendance(ctx, employeeActor, attendance.ListFilter{EmployeeID: &other})
	require.NoError(t, err)
	require.Len(t, result.Records, 1)
	assert.Equal(t, "EMP001", result.Records[0].EmployeeID)

	// HR sees everything.
	all, err := f.gateway.ListAttendance(ctx, hrActor, attendance.ListFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), all.TotalCount)
}

func TestGateway_SubmitLeave_IdempotentReplay(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newGatewayFixture(t)
	opts := lifecycle.Options{IdempotencyKey: "key-123"}

	first, err := f.gateway.SubmitLeave(ctx, employeeActor, submitReq("2026-03-18", "2026-03-20"), opts)
	require.NoError(t, err)

	// Same key, same body: the stored response comes back and no second
	// request or reservation is created.
	replay, err := f.gateway.SubmitLeave(ctx, employeeActor, submitReq("2026-03-18", "2026-03-20"), opts)
	require.NoError(t, err)
	assert.Equal(t, first.ID, replay.ID)
	assert.Equal(t, first, replay)

	list, err := f.gateway.ListLeave(ctx, hrActor, leave.RequestFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), list.TotalCount)

	balance, err := f.gateway.Balance(ctx, employeeActor, "EMP001")
	require.NoError(t, err)
	for _, entry := range balance.Balances {
		if entry.LeaveType == "annual" {
			assert.Equal(t, 3, entry.Pending)
		}
	}
}

func TestGateway_SubmitLeave_IdempotencyKeyReuseRejected(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newGatewayFixture(t)
	opts := lifecycle.Options{IdempotencyKey: "key-456"}

	_, err := f.gateway.SubmitLeave(ctx, employeeActor, submitReq("2026-03-18", "2026-03-20"), opts)
	require.NoError(t, err)

	_, err = f.gateway.SubmitLeave(ctx, employeeActor, submitReq("2026-03-24", "2026-03-25"), opts)
	assert.ErrorIs(t, err, lifecycle.ErrIdempotencyMismatch)
}

func TestGateway_CancelLeave_KeyReuseAcrossRequestsRejected(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newGatewayFixture(t)
	opts := lifecycle.Options{IdempotencyKey: "cancel-1"}

	first, err := f.gateway.SubmitLeave(ctx, employeeActor, submitReq("2026-03-18", "2026-03-20"), lifecycle.Options{})
	require.NoError(t, err)
	second, err := f.gateway.SubmitLeave(ctx, employeeActor, submitReq("2026-03-24", "2026-03-25"), lifecycle.Options{})
	require.NoError(t, err)

	cancelled, err := f.gateway.CancelLeave(ctx, employeeActor, leave.CancelRequest{RequestID: first.ID}, opts)
	require.NoError(t, err)
	assert.Equal(t, string(leave.RequestStatusCancelled), cancelled.Status)

	// The same key pointed at a different request must not replay the
	// first cancellation as if the second one had happened.
	_, err = f.gateway.CancelLeave(ctx, employeeActor, leave.CancelRequest{RequestID: second.ID}, opts)
	assert.ErrorIs(t, err, lifecycle.ErrIdempotencyMismatch)

	current, err := f.gateway.GetLeave(ctx, employeeActor, second.ID)
	require.NoError(t, err)
	assert.Equal(t, string(leave.RequestStatusPending), current.Status)
}

func TestGateway_IdempotencyKeysAreScopedPerActor(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newGatewayFixture(t)
	opts := lifecycle.Options{IdempotencyKey: "shared-key"}

	first, err := f.gateway.SubmitLeave(ctx, employeeActor, submitReq("2026-03-18", "2026-03-20"), opts)
	require.NoError(t, err)

	// A different actor using the same key is a fresh operation.
	second, err := f.gateway.SubmitLeave(ctx, otherActor, submitReq("2026-03-18", "2026-03-20"), opts)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestGateway_FailedMutationStoresNoSnapshot(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newGatewayFixture(t)
	opts := lifecycle.Options{IdempotencyKey: "key-789"}

	// Weekend-only range fails; the key must remain usable.
	_, err := f.gateway.SubmitLeave(ctx, employeeActor, submitReq("2026-03-21", "2026-03-22"), opts)
	assert.ErrorIs(t, err, leave.ErrEmptyDuration)

	_, err = f.gateway.SubmitLeave(ctx, employeeActor, submitReq("2026-03-18", "2026-03-20"), opts)
	assert.NoError(t, err)
}

func TestGateway_CheckIn_IdempotentReplay(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newGatewayFixture(t)
	opts := lifecycle.Options{IdempotencyKey: "checkin-1"}

	first, err := f.gateway.CheckIn(ctx, employeeActor, attendance.CheckInRequest{Location: "office"}, opts)
	require.NoError(t, err)

	// Replay succeeds with the stored record instead of a conflict.
	replay, err := f.gateway.CheckIn(ctx, employeeActor, attendance.CheckInRequest{Location: "office"}, opts)
	require.NoError(t, err)
	assert.Equal(t, first.ID, replay.ID)

	// Without the key, the same call is a plain double check-in.
	_, err = f.gateway.CheckIn(ctx, employeeActor, attendance.CheckInRequest{Location: "office"}, lifecycle.Options{})
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)
}
