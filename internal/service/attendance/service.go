package attendance

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/peoplecore/hr-portal-go/internal/domain/attendance"
	"github.com/peoplecore/hr-portal-go/internal/domain/staff"
	"github.com/peoplecore/hr-portal-go/internal/pkg/clock"
	"github.com/peoplecore/hr-portal-go/internal/pkg/validator"
)

type EngineImpl struct {
	attendance.Repository
	staff.StaffRepository
	clock clock.Clock
	loc   *time.Location
}

func NewEngine(
	repo attendance.Repository,
	staffRepo staff.StaffRepository,
	clk clock.Clock,
	loc *time.Location,
) attendance.Engine {
	return &EngineImpl{
		Repository:      repo,
		StaffRepository: staffRepo,
		clock:           clk,
		loc:             loc,
	}
}

// timePtrToString safely converts a *time.Time to an RFC 3339 UTC string.
func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	format := t.UTC().Format(time.RFC3339)
	return &format
}

// CheckIn implements attendance.Engine.
func (a *EngineImpl) CheckIn(ctx context.Context, req attendance.CheckInRequest) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	emp, err := a.StaffRepository.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return attendance.RecordResponse{}, err
	}
	if !emp.Active {
		return attendance.RecordResponse{}, staff.ErrUnauthorized
	}

	shift, err := a.StaffRepository.GetShiftConfig(ctx, req.EmployeeID)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	nowUTC := a.clock.Now().UTC()
	dateLocal := nowUTC.In(a.loc).Format(validator.DateLayout)

	rec := attendance.Record{
		EmployeeID:   req.EmployeeID,
		Date:         dateLocal,
		CheckIn:      &nowUTC,
		BreakMinutes: shift.BreakMinutes,
		Location:     attendance.Location(req.Location),
		Notes:        req.Notes,
	}

	created, err := a.Repository.Create(ctx, rec)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	resp := a.toResponse(created, shift, nowUTC)
	slog.Info("Attendance check-in",
		"employee_id", created.EmployeeID,
		"date", created.Date,
		"status", resp.Status)
	return resp, nil
}

// CheckOut implements attendance.Engine. The order and duration checks
// run against the loaded record before the close is attempted, so an
// invalid check-out leaves the open session untouched.
func (a *EngineImpl) CheckOut(ctx context.Context, req attendance.CheckOutRequest) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	shift, err := a.StaffRepository.GetShiftConfig(ctx, req.EmployeeID)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	nowUTC := a.clock.Now().UTC()
	dateLocal := nowUTC.In(a.loc).Format(validator.DateLayout)

	rec, err := a.Repository.GetByEmployeeAndDate(ctx, req.EmployeeID, dateLocal)
	if err != nil {
		if errors.Is(err, attendance.ErrRecordNotFound) {
			return attendance.RecordResponse{}, attendance.ErrNoOpenSession
		}
		return attendance.RecordResponse{}, err
	}
	if !rec.Open() {
		return attendance.RecordResponse{}, attendance.ErrNoOpenSession
	}

	// Worked time must come out strictly positive after the break.
	elapsed := nowUTC.Sub(*rec.CheckIn)
	if elapsed <= 0 || elapsed.Minutes() <= float64(rec.BreakMinutes) {
		return attendance.RecordResponse{}, attendance.ErrInvalidOrder
	}

	closed, err := a.Repository.CloseSession(ctx, req.EmployeeID, dateLocal, nowUTC, req.Notes)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	resp := a.toResponse(closed, shift, nowUTC)
	slog.Info("Attendance check-out",
		"employee_id", closed.EmployeeID,
		"date", closed.Date,
		"working_hours", closed.WorkingHours(),
		"status", resp.Status)
	return resp, nil
}

// Get implements attendance.Engine. A day with no record still has a
// derived status (not_started, or absent once the cutoff passes), so it
// comes back as a synthetic record rather than an error.
func (a *EngineImpl) Get(ctx context.Context, employeeID, date string) (attendance.RecordResponse, error) {
	if _, ok := validator.IsValidDate(date); !ok {
		return attendance.RecordResponse{}, validator.ValidationErrors{{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		}}
	}

	shift, err := a.StaffRepository.GetShiftConfig(ctx, employeeID)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	rec, err := a.Repository.GetByEmployeeAndDate(ctx, employeeID, date)
	if err != nil {
		if !errors.Is(err, attendance.ErrRecordNotFound) {
			return attendance.RecordResponse{}, err
		}
		rec = attendance.Record{EmployeeID: employeeID, Date: date}
	}

	return a.toResponse(rec, shift, a.clock.Now().UTC()), nil
}

// List implements attendance.Engine.
func (a *EngineImpl) List(ctx context.Context, filter attendance.ListFilter) (attendance.ListResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListResponse{}, err
	}

	records, totalCount, err := a.Repository.List(ctx, filter)
	if err != nil {
		return attendance.ListResponse{}, err
	}

	nowUTC := a.clock.Now().UTC()
	shifts := make(map[string]staff.ShiftConfig)

	responses := make([]attendance.RecordResponse, 0, len(records))
	for _, rec := range records {
		shift, ok := shifts[rec.EmployeeID]
		if !ok {
			shift, err = a.StaffRepository.GetShiftConfig(ctx, rec.EmployeeID)
			if err != nil {
				return attendance.ListResponse{}, err
			}
			shifts[rec.EmployeeID] = shift
		}
		responses = append(responses, a.toResponse(rec, shift, nowUTC))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	page := filter.Page
	if page <= 0 {
		page = 1
	}
	totalPages := int((totalCount + int64(limit) - 1) / int64(limit))

	return attendance.ListResponse{
		TotalCount: totalCount,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
		Records:    responses,
	}, nil
}

func (a *EngineImpl) toResponse(rec attendance.Record, shift staff.ShiftConfig, now time.Time) attendance.RecordResponse {
	resp := attendance.RecordResponse{
		ID:           rec.ID,
		EmployeeID:   rec.EmployeeID,
		EmployeeName: rec.EmployeeName,
		Date:         rec.Date,
		CheckInTime:  timePtrToString(rec.CheckIn),
		CheckOutTime: timePtrToString(rec.CheckOut),
		Location:     string(rec.Location),
		Notes:        rec.Notes,
		Status:       string(attendance.DeriveStatus(rec, shift, now, a.loc)),
	}

	if rec.Closed() {
		working := rec.WorkingHours()
		overtime := rec.OvertimeHours(shift.StandardShiftHours)
		resp.WorkingHours = &working
		resp.OvertimeHours = &overtime
	}

	return resp
}
