package attendance

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peoplecore/hr-portal-go/internal/domain/attendance"
	"github.com/peoplecore/hr-portal-go/internal/domain/staff"
	"github.com/peoplecore/hr-portal-go/internal/pkg/clock"
	"github.com/peoplecore/hr-portal-go/internal/repository/memory"
)

var testShift = staff.ShiftConfig{
	ShiftStart:            "09:00",
	GraceMinutes:          15,
	StandardShiftHours:    8,
	HalfDayThresholdHours: 4,
	BreakMinutes:          60,
	CutoffHour:            23,
}

type engineFixture struct {
	engine attendance.Engine
	store  *memory.Store
	clock  *clock.Fixed
	loc    *time.Location
}

// newEngineFixture pins the clock to Monday 2026-03-16 09:05 Jakarta time
// with one active employee seeded.
func newEngineFixture(t *testing.T) *engineFixture {
	t.Helper()

	loc, err := time.LoadLocation("Asia/Jakarta")
	require.NoError(t, err)

	store := memory.NewStore(testShift)
	store.SeedEmployee(staff.Employee{
		ID:       "EMP001",
		FullName: "Ayu Lestari",
		Role:     staff.RoleEmployee,
		Active:   true,
	}, nil)

	clk := clock.NewFixed(time.Date(2026, 3, 16, 9, 5, 0, 0, loc))

	return &engineFixture{
		engine: NewEngine(memory.NewAttendanceRepository(store), memory.NewStaffRepository(store), clk, loc),
		store:  store,
		clock:  clk,
		loc:    loc,
	}
}

func TestEngine_CheckIn_WithinGraceIsPresent(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newEngineFixture(t)

	result, err := f.engine.CheckIn(ctx, attendance.CheckInRequest{
		EmployeeID: "EMP001",
		Location:   "office",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, result.ID)
	assert.Equal(t, "2026-03-16", result.Date)
	assert.Equal(t, string(attendance.StatusPresent), result.Status)
	require.NotNil(t, result.CheckInTime)
	assert.Nil(t, result.CheckOutTime)
	assert.Nil(t, result.WorkingHours)
}

func TestEngine_CheckIn_PastGraceIsLate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newEngineFixture(t)
	f.clock.Advance(20 * time.Minute) // 09:25, grace ends 09:15

	result, err := f.engine.CheckIn(ctx, attendance.CheckInRequest{
		EmployeeID: "EMP001",
		Location:   "remote",
	})
	require.NoError(t, err)
	assert.Equal(t, string(attendance.StatusLate), result.Status)
}

func TestEngine_CheckIn_TwiceSameDayConflicts(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newEngineFixture(t)

	_, err := f.engine.CheckIn(ctx, attendance.CheckInRequest{EmployeeID: "EMP001", Location: "office"})
	require.NoError(t, err)

	_, err = f.engine.CheckIn(ctx, attendance.CheckInRequest{EmployeeID: "EMP001", Location: "office"})
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)

	// The original record survives the failed second attempt.
	result, err := f.engine.Get(ctx, "EMP001", "2026-03-16")
	require.NoError(t, err)
	assert.Equal(t, string(attendance.StatusPresent), result.Status)
}

func TestEngine_CheckIn_UnknownEmployee(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newEngineFixture(t)

	_, err := f.engine.CheckIn(ctx, attendance.CheckInRequest{EmployeeID: "GHOST", Location: "office"})
	assert.ErrorIs(t, err, staff.ErrEmployeeNotFound)
}

func TestEngine_CheckIn_InactiveEmployee(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newEngineFixture(t)
	f.store.SeedEmployee(staff.Employee{ID: "EMP999", FullName: "Left Company", Active: false}, nil)

	_, err := f.engine.CheckIn(ctx, attendance.CheckInRequest{EmployeeID: "EMP999", Location: "office"})
	assert.ErrorIs(t, err, staff.ErrUnauthorized)
}

func TestEngine_CheckIn_InvalidLocation(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newEngineFixture(t)

	_, err := f.engine.CheckIn(ctx, attendance.CheckInRequest{EmployeeID: "EMP001", Location: "beach"})
	assert.Error(t, err)
}

func TestEngine_CheckOut_ShortDayIsHalfDay(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newEngineFixture(t)

	_, err := f.engine.CheckIn(ctx, attendance.CheckInRequest{EmployeeID: "EMP001", Location: "office"})
	require.NoError(t, err)

	// 13:00 local: 3h55m elapsed minus the 60 minute break = 2.92 hours.
	f.clock.Advance(3*time.Hour + 55*time.Minute)

	result, err := f.engine.CheckOut(ctx, attendance.CheckOutRequest{EmployeeID: "EMP001"})
	require.NoError(t, err)

	assert.Equal(t, string(attendance.StatusHalfDay), result.Status)
	require.NotNil(t, result.WorkingHours)
	assert.True(t, result.WorkingHours.Equal(decimal.RequireFromString("2.92")),
		"working hours = %s", result.WorkingHours)
	require.NotNil(t, result.OvertimeHours)
	assert.True(t, result.OvertimeHours.Equal(decimal.Zero))
}

func TestEngine_CheckOut_FullDayWithOvertime(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newEngineFixture(t)

	_, err := f.engine.CheckIn(ctx, attendance.CheckInRequest{EmployeeID: "EMP001", Location: "office"})
	require.NoError(t, err)

	f.clock.Advance(11 * time.Hour)

	result, err := f.engine.CheckOut(ctx, attendance.CheckOutRequest{EmployeeID: "EMP001"})
	require.NoError(t, err)

	assert.Equal(t, string(attendance.StatusPresent), result.Status)
	require.NotNil(t, result.WorkingHours)
	assert.True(t, result.WorkingHours.Equal(decimal.NewFromInt(10)))
	assert.True(t, result.OvertimeHours.Equal(decimal.NewFromInt(2)))
}

func TestEngine_CheckOut_WithoutSession(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newEngineFixture(t)

	_, err := f.engine.CheckOut(ctx, attendance.CheckOutRequest{EmployeeID: "EMP001"})
	assert.ErrorIs(t, err, attendance.ErrNoOpenSession)
}

func TestEngine_CheckOut_Twice(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newEngineFixture(t)

	_, err := f.engine.CheckIn(ctx, attendance.CheckInRequest{EmployeeID: "EMP001", Location: "office"})
	require.NoError(t, err)

	f.clock.Advance(9 * time.Hour)
	_, err = f.engine.CheckOut(ctx, attendance.CheckOutRequest{EmployeeID: "EMP001"})
	require.NoError(t, err)

	_, err = f.engine.CheckOut(ctx, attendance.CheckOutRequest{EmployeeID: "EMP001"})
	assert.ErrorIs(t, err, attendance.ErrNoOpenSession)
}

func TestEngine_CheckOut_InsideBreakIsInvalid(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newEngineFixture(t)

	_, err := f.engine.CheckIn(ctx, attendance.CheckInRequest{EmployeeID: "EMP001", Location: "office"})
	require.NoError(t, err)

	// 30 minutes elapsed does not clear the 60 minute break, so the
	// session would close with zero worked hours.
	f.clock.Advance(30 * time.Minute)

	_, err = f.engine.CheckOut(ctx, attendance.CheckOutRequest{EmployeeID: "EMP001"})
	assert.ErrorIs(t, err, attendance.ErrInvalidOrder)

	// Session is still open afterwards.
	f.clock.Advance(9 * time.Hour)
	_, err = f.engine.CheckOut(ctx, attendance.CheckOutRequest{EmployeeID: "EMP001"})
	assert.NoError(t, err)
}

func TestEngine_Get_MissingDayDerivesStatus(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newEngineFixture(t)

	// Same day before the cutoff: not started.
	result, err := f.engine.Get(ctx, "EMP001", "2026-03-16")
	require.NoError(t, err)
	assert.Equal(t, string(attendance.StatusNotStarted), result.Status)
	assert.Empty(t, result.ID)

	// Past day with no record: absent.
	result, err = f.engine.Get(ctx, "EMP001", "2026-03-13")
	require.NoError(t, err)
	assert.Equal(t, string(attendance.StatusAbsent), result.Status)
}

func TestEngine_List_FiltersByEmployee(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newEngineFixture(t)
	f.store.SeedEmployee(staff.Employee{ID: "EMP002", FullName: "Budi Santoso", Active: true}, nil)

	_, err := f.engine.CheckIn(ctx, attendance.CheckInRequest{EmployeeID: "EMP001", Location: "office"})
	require.NoError(t, err)
	_, err = f.engine.CheckIn(ctx, attendance.CheckInRequest{EmployeeID: "EMP002", Location: "remote"})
	require.NoError(t, err)

	employeeID := "EMP002"
	result, err := f.engine.List(ctx, attendance.ListFilter{EmployeeID: &employeeID})
	require.NoError(t, err)

	assert.Equal(t, int64(1), result.TotalCount)
	require.Len(t, result.Records, 1)
	assert.Equal(t, "EMP002", result.Records[0].EmployeeID)
	require.NotNil(t, result.Records[0].EmployeeName)
	assert.Equal(t, "Budi Santoso", *result.Records[0].EmployeeName)
}

// Not parallel: swaps the default logger.
func TestEngine_CheckIn_LogsTransition(t *testing.T) {
	ctx := context.Background()
	f := newEngineFixture(t)

	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	defer slog.SetDefault(prev)

	_, err := f.engine.CheckIn(ctx, attendance.CheckInRequest{EmployeeID: "EMP001", Location: "office"})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Attendance check-in")
	assert.Contains(t, out, "employee_id=EMP001")
	assert.Contains(t, out, "status=present")
}
