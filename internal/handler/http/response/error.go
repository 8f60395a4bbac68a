package response

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/peoplecore/hr-portal-go/internal/domain/attendance"
	"github.com/peoplecore/hr-portal-go/internal/domain/leave"
	"github.com/peoplecore/hr-portal-go/internal/domain/lifecycle"
	"github.com/peoplecore/hr-portal-go/internal/domain/staff"
	"github.com/peoplecore/hr-portal-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Staff domain errors
	case errors.Is(err, staff.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, staff.ErrUnauthorized):
		Forbidden(w, "Not allowed to perform this operation")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAlreadyCheckedIn):
		Conflict(w, "A check-in already exists for today", nil)
	case errors.Is(err, attendance.ErrNoOpenSession):
		Conflict(w, "No open attendance session for today", nil)
	case errors.Is(err, attendance.ErrInvalidOrder):
		UnprocessableEntity(w, "Check-out must come after check-in with positive working time")
	case errors.Is(err, attendance.ErrRecordNotFound):
		NotFound(w, "Attendance record not found")

	// Leave domain errors
	case errors.Is(err, leave.ErrRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrUnknownLeaveType):
		UnprocessableEntity(w, "Unknown leave type")
	case errors.Is(err, leave.ErrEmptyDuration):
		UnprocessableEntity(w, "Requested range contains no working days")
	case errors.Is(err, leave.ErrMissingRejectionReason):
		UnprocessableEntity(w, "A rejection must carry a reason")
	case errors.Is(err, leave.ErrInsufficientBalance):
		Conflict(w, "Insufficient leave balance", balanceDetails(err))
	case errors.Is(err, leave.ErrOverlappingRequest):
		Conflict(w, "An active leave request already covers part of this range", nil)
	case errors.Is(err, leave.ErrNotPending):
		Conflict(w, "Leave request is no longer pending", nil)
	case errors.Is(err, leave.ErrVersionMismatch):
		Conflict(w, "Leave request was modified; re-read and retry with the current version", nil)
	case errors.Is(err, leave.ErrNotCancellable):
		Conflict(w, "Leave request cannot be cancelled in its current state", nil)

	// Gateway errors
	case errors.Is(err, lifecycle.ErrIdempotencyMismatch):
		Conflict(w, "Idempotency key was already used with a different request", nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}

// balanceDetails surfaces the remaining balance to the requester when the
// workflow reported it.
func balanceDetails(err error) map[string]string {
	var balanceErr *leave.InsufficientBalanceError
	if !errors.As(err, &balanceErr) {
		return nil
	}
	return map[string]string{
		"leave_type":     balanceErr.LeaveType,
		"requested_days": strconv.Itoa(balanceErr.Requested),
		"remaining_days": strconv.Itoa(balanceErr.Remaining),
	}
}
