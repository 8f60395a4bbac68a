package leave

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"time"

	"github.com/peoplecore/hr-portal-go/internal/domain/leave"
	"github.com/peoplecore/hr-portal-go/internal/domain/staff"
	"github.com/peoplecore/hr-portal-go/internal/pkg/clock"
	"github.com/peoplecore/hr-portal-go/internal/pkg/validator"
)

type WorkflowImpl struct {
	leave.RequestRepository
	leave.LedgerRepository
	staff.StaffRepository
	calendar leave.HolidayCalendar
	policies map[string]leave.TypePolicy
	clock    clock.Clock
	loc      *time.Location
}

func NewWorkflow(
	requestRepo leave.RequestRepository,
	ledgerRepo leave.LedgerRepository,
	staffRepo staff.StaffRepository,
	calendar leave.HolidayCalendar,
	policies map[string]leave.TypePolicy,
	clk clock.Clock,
	loc *time.Location,
) leave.Workflow {
	return &WorkflowImpl{
		RequestRepository: requestRepo,
		LedgerRepository:  ledgerRepo,
		StaffRepository:   staffRepo,
		calendar:          calendar,
		policies:          policies,
		clock:             clk,
		loc:               loc,
	}
}

// Submit implements leave.Workflow.
func (w *WorkflowImpl) Submit(ctx context.Context, req leave.SubmitRequest) (leave.RequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.RequestResponse{}, err
	}

	policy, ok := w.policies[req.LeaveType]
	if !ok {
		return leave.RequestResponse{}, leave.ErrUnknownLeaveType
	}

	emp, err := w.StaffRepository.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return leave.RequestResponse{}, err
	}
	if !emp.Active {
		return leave.RequestResponse{}, staff.ErrUnauthorized
	}

	days, err := w.countWorkingDays(ctx, req.StartDate, req.EndDate)
	if err != nil {
		return leave.RequestResponse{}, err
	}
	if days == 0 {
		return leave.RequestResponse{}, leave.ErrEmptyDuration
	}

	overlap, err := w.RequestRepository.HasActiveOverlap(ctx, req.EmployeeID, req.StartDate, req.EndDate)
	if err != nil {
		return leave.RequestResponse{}, err
	}
	if overlap {
		return leave.RequestResponse{}, leave.ErrOverlappingRequest
	}

	entry, err := w.LedgerRepository.Ensure(ctx, req.EmployeeID, req.LeaveType, policy.AnnualAllocation)
	if err != nil {
		return leave.RequestResponse{}, err
	}

	// Reserving and checking the balance is one atomic step; untracked
	// types reserve without the check.
	if err := w.LedgerRepository.Reserve(ctx, req.EmployeeID, req.LeaveType, days, policy.Tracked); err != nil {
		if errors.Is(err, leave.ErrInsufficientBalance) {
			return leave.RequestResponse{}, &leave.InsufficientBalanceError{
				LeaveType: req.LeaveType,
				Requested: days,
				Remaining: entry.Remaining(),
			}
		}
		return leave.RequestResponse{}, err
	}

	created, err := w.RequestRepository.Create(ctx, leave.Request{
		EmployeeID: req.EmployeeID,
		LeaveType:  req.LeaveType,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		Days:       days,
		Reason:     req.Reason,
		Status:     leave.RequestStatusPending,
		AppliedAt:  w.clock.Now().UTC(),
	})
	if err != nil {
		return leave.RequestResponse{}, err
	}

	slog.Info("Leave request submitted",
		"request_id", created.ID,
		"employee_id", created.EmployeeID,
		"leave_type", created.LeaveType,
		"days", created.Days)

	return leave.NewRequestResponse(created), nil
}

// Decide implements leave.Workflow.
func (w *WorkflowImpl) Decide(ctx context.Context, req leave.DecideRequest) (leave.RequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.RequestResponse{}, err
	}
	if req.Decision == string(leave.DecisionRejected) &&
		(req.RejectionReason == nil || validator.IsEmpty(*req.RejectionReason)) {
		return leave.RequestResponse{}, leave.ErrMissingRejectionReason
	}

	current, err := w.RequestRepository.GetByID(ctx, req.RequestID)
	if err != nil {
		return leave.RequestResponse{}, err
	}
	if current.Status != leave.RequestStatusPending {
		return leave.RequestResponse{}, leave.ErrNotPending
	}
	if current.Version != req.ExpectedVersion {
		return leave.RequestResponse{}, leave.ErrVersionMismatch
	}

	now := w.clock.Now().UTC()
	upd := leave.StatusUpdate{
		Status:          leave.RequestStatus(req.Decision),
		ApprovedBy:      &req.DecidedBy,
		DecisionDate:    &now,
		HRNotes:         req.HRNotes,
		RejectionReason: req.RejectionReason,
	}

	updated, err := w.RequestRepository.UpdateStatus(ctx, req.RequestID, req.ExpectedVersion, upd)
	if err != nil {
		return leave.RequestResponse{}, err
	}

	policy := w.policies[current.LeaveType]
	switch updated.Status {
	case leave.RequestStatusApproved:
		if policy.Tracked {
			err = w.LedgerRepository.CommitPending(ctx, current.EmployeeID, current.LeaveType, current.Days)
		} else {
			err = w.LedgerRepository.ReleasePending(ctx, current.EmployeeID, current.LeaveType, current.Days)
		}
	case leave.RequestStatusRejected:
		err = w.LedgerRepository.ReleasePending(ctx, current.EmployeeID, current.LeaveType, current.Days)
	}
	if err != nil {
		slog.Error("Failed to settle leave ledger after decision",
			"request_id", req.RequestID, "decision", req.Decision, "error", err)
		return leave.RequestResponse{}, err
	}

	slog.Info("Leave request decided",
		"request_id", updated.ID,
		"employee_id", updated.EmployeeID,
		"decision", req.Decision,
		"decided_by", req.DecidedBy)

	return leave.NewRequestResponse(updated), nil
}

// Cancel implements leave.Workflow. Pending requests always cancel;
// approved ones only while the start date is still in the future, since
// days already taken cannot be handed back.
func (w *WorkflowImpl) Cancel(ctx context.Context, req leave.CancelRequest) (leave.RequestResponse, error) {
	current, err := w.RequestRepository.GetByID(ctx, req.RequestID)
	if err != nil {
		return leave.RequestResponse{}, err
	}

	now := w.clock.Now().UTC()
	today := now.In(w.loc).Format(validator.DateLayout)

	switch current.Status {
	case leave.RequestStatusPending:
	case leave.RequestStatusApproved:
		if current.StartDate <= today {
			return leave.RequestResponse{}, leave.ErrNotCancellable
		}
	default:
		return leave.RequestResponse{}, leave.ErrNotCancellable
	}

	updated, err := w.RequestRepository.UpdateStatus(ctx, req.RequestID, current.Version, leave.StatusUpdate{
		Status:      leave.RequestStatusCancelled,
		CancelledAt: &now,
	})
	if err != nil {
		return leave.RequestResponse{}, err
	}

	policy := w.policies[current.LeaveType]
	switch current.Status {
	case leave.RequestStatusPending:
		err = w.LedgerRepository.ReleasePending(ctx, current.EmployeeID, current.LeaveType, current.Days)
	case leave.RequestStatusApproved:
		if policy.Tracked {
			err = w.LedgerRepository.ReleaseUsed(ctx, current.EmployeeID, current.LeaveType, current.Days)
		}
	}
	if err != nil {
		slog.Error("Failed to settle leave ledger after cancellation",
			"request_id", req.RequestID, "error", err)
		return leave.RequestResponse{}, err
	}

	slog.Info("Leave request cancelled",
		"request_id", updated.ID,
		"employee_id", updated.EmployeeID,
		"previous_status", string(current.Status))

	return leave.NewRequestResponse(updated), nil
}

// Balance implements leave.Workflow. Types the employee never requested
// still show up, materialized from policy with zero movement.
func (w *WorkflowImpl) Balance(ctx context.Context, employeeID string) (leave.BalanceResponse, error) {
	if _, err := w.StaffRepository.GetByID(ctx, employeeID); err != nil {
		return leave.BalanceResponse{}, err
	}

	entries, err := w.LedgerRepository.GetAll(ctx, employeeID)
	if err != nil {
		return leave.BalanceResponse{}, err
	}

	seen := make(map[string]bool, len(entries))
	balances := make([]leave.BalanceEntry, 0, len(w.policies))

	for _, entry := range entries {
		policy := w.policies[entry.LeaveType]
		seen[entry.LeaveType] = true
		balances = append(balances, leave.BalanceEntry{
			LeaveType: entry.LeaveType,
			Tracked:   policy.Tracked,
			Allocated: entry.Allocated,
			Used:      entry.Used,
			Pending:   entry.Pending,
			Remaining: entry.Remaining(),
		})
	}

	for name, policy := range w.policies {
		if seen[name] {
			continue
		}
		balances = append(balances, leave.BalanceEntry{
			LeaveType: name,
			Tracked:   policy.Tracked,
			Allocated: policy.AnnualAllocation,
			Remaining: policy.AnnualAllocation,
		})
	}

	sort.Slice(balances, func(i, j int) bool {
		return balances[i].LeaveType < balances[j].LeaveType
	})

	return leave.BalanceResponse{EmployeeID: employeeID, Balances: balances}, nil
}

// Get implements leave.Workflow.
func (w *WorkflowImpl) Get(ctx context.Context, requestID string) (leave.RequestResponse, error) {
	req, err := w.RequestRepository.GetByID(ctx, requestID)
	if err != nil {
		return leave.RequestResponse{}, err
	}
	return leave.NewRequestResponse(req), nil
}

// List implements leave.Workflow.
func (w *WorkflowImpl) List(ctx context.Context, filter leave.RequestFilter) (leave.ListResponse, error) {
	if err := filter.Validate(); err != nil {
		return leave.ListResponse{}, err
	}

	requests, totalCount, err := w.RequestRepository.List(ctx, filter)
	if err != nil {
		return leave.ListResponse{}, err
	}

	responses := make([]leave.RequestResponse, 0, len(requests))
	for _, req := range requests {
		responses = append(responses, leave.NewRequestResponse(req))
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

	return leave.ListResponse{
		TotalCount: totalCount,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
		Requests:   responses,
	}, nil
}

// countWorkingDays walks the inclusive range, skipping organization
// holidays and weekends via the calendar.
func (w *WorkflowImpl) countWorkingDays(ctx context.Context, startDate, endDate string) (int, error) {
	start, _ := time.ParseInLocation(validator.DateLayout, startDate, w.loc)
	end, _ := time.ParseInLocation(validator.DateLayout, endDate, w.loc)

	days := 0
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		holiday, err := w.calendar.IsHoliday(ctx, day)
		if err != nil {
			return 0, err
		}
		if !holiday {
			days++
		}
	}
	return days, nil
}
