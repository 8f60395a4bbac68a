package leave

import (
	"time"

	"github.com/peoplecore/hr-portal-go/internal/pkg/validator"
)

// ========================================
// LEAVE DTOs
// ========================================

type SubmitRequest struct {
	EmployeeID string `json:"-"`
	LeaveType  string `json:"leave_type"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	Reason     string `json:"reason"`
}

func (r *SubmitRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if validator.IsEmpty(r.LeaveType) {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type",
			Message: "leave_type is required",
		})
	}

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	} else if len(r.Reason) > 1000 {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason must not exceed 1000 characters",
		})
	}

	start, startOK := validator.IsValidDate(r.StartDate)
	if !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	}

	end, endOK := validator.IsValidDate(r.EndDate)
	if !endOK {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	}

	if startOK && endOK && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type DecideRequest struct {
	RequestID       string  `json:"-"`
	DecidedBy       string  `json:"-"`
	Decision        string  `json:"decision"`
	ExpectedVersion int     `json:"expected_version"`
	HRNotes         *string `json:"hr_notes,omitempty"`
	RejectionReason *string `json:"rejection_reason,omitempty"`
}

func (r *DecideRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.RequestID) {
		errs = append(errs, validator.ValidationError{
			Field:   "request_id",
			Message: "request_id is required",
		})
	}

	if r.Decision != string(DecisionApproved) && r.Decision != string(DecisionRejected) {
		errs = append(errs, validator.ValidationError{
			Field:   "decision",
			Message: "decision must be one of: approved, rejected",
		})
	}

	if r.ExpectedVersion < 1 {
		errs = append(errs, validator.ValidationError{
			Field:   "expected_version",
			Message: "expected_version is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type CancelRequest struct {
	RequestID   string `json:"-"`
	CancelledBy string `json:"-"`
}

type RequestResponse struct {
	ID              string  `json:"id"`
	EmployeeID      string  `json:"employee_id"`
	EmployeeName    *string `json:"employee_name,omitempty"`
	LeaveType       string  `json:"leave_type"`
	StartDate       string  `json:"start_date"`
	EndDate         string  `json:"end_date"`
	Days            int     `json:"days"`
	Reason          string  `json:"reason"`
	Status          string  `json:"status"`
	AppliedAt       string  `json:"applied_at"`
	ApprovedBy      *string `json:"approved_by,omitempty"`
	DecisionDate    *string `json:"decision_date,omitempty"`
	HRNotes         *string `json:"hr_notes,omitempty"`
	RejectionReason *string `json:"rejection_reason,omitempty"`
	CancelledAt     *string `json:"cancelled_at,omitempty"`
	Version         int     `json:"version"`
}

// NewRequestResponse maps a Request to its API shape. Instants are
// rendered in RFC 3339 UTC.
func NewRequestResponse(r Request) RequestResponse {
	resp := RequestResponse{
		ID:              r.ID,
		EmployeeID:      r.EmployeeID,
		EmployeeName:    r.EmployeeName,
		LeaveType:       r.LeaveType,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		Days:            r.Days,
		Reason:          r.Reason,
		Status:          string(r.Status),
		AppliedAt:       r.AppliedAt.UTC().Format(time.RFC3339),
		ApprovedBy:      r.ApprovedBy,
		HRNotes:         r.HRNotes,
		RejectionReason: r.RejectionReason,
		Version:         r.Version,
	}
	if r.DecisionDate != nil {
		s := r.DecisionDate.UTC().Format(time.RFC3339)
		resp.DecisionDate = &s
	}
	if r.CancelledAt != nil {
		s := r.CancelledAt.UTC().Format(time.RFC3339)
		resp.CancelledAt = &s
	}
	return resp
}

type BalanceEntry struct {
	LeaveType string `json:"leave_type"`
	Tracked   bool   `json:"tracked"`
	Allocated int    `json:"allocated"`
	Used      int    `json:"used"`
	Pending   int    `json:"pending"`
	Remaining int    `json:"remaining"`
}

type BalanceResponse struct {
	EmployeeID string         `json:"employee_id"`
	Balances   []BalanceEntry `json:"balances"`
}

type RequestFilter struct {
	EmployeeID *string
	Status     *string
	LeaveType  *string
	Page       int
	Limit      int
}

func (f *RequestFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Status != nil && *f.Status != "" {
		switch RequestStatus(*f.Status) {
		case RequestStatusPending, RequestStatusApproved, RequestStatusRejected, RequestStatusCancelled:
		default:
			errs = append(errs, validator.ValidationError{
				Field:   "status",
				Message: "status must be one of: pending, approved, rejected, cancelled",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ListResponse struct {
	TotalCount int64             `json:"total_count"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"total_pages"`
	Requests   []RequestResponse `json:"requests"`
}
