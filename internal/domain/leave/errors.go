package leave

import (
	"errors"
	"fmt"
)

// Leave domain errors
var (
	// Submission errors
	ErrUnknownLeaveType    = errors.New("unknown leave type")
	ErrEmptyDuration       = errors.New("requested range contains no working days")
	ErrInsufficientBalance = errors.New("insufficient leave balance")
	ErrOverlappingRequest  = errors.New("an active leave request already covers part of this range")

	// Decision errors
	ErrNotPending             = errors.New("leave request is no longer pending")
	ErrVersionMismatch        = errors.New("leave request was modified by another operation")
	ErrMissingRejectionReason = errors.New("a rejection must carry a reason")

	// Cancellation errors
	ErrNotCancellable = errors.New("leave request cannot be cancelled in its current state")

	// General errors
	ErrRequestNotFound = errors.New("leave request not found")
)

// InsufficientBalanceError carries the balance context behind
// ErrInsufficientBalance so the requester can be told what is left.
// errors.Is still matches the sentinel through Unwrap.
type InsufficientBalanceError struct {
	LeaveType string
	Requested int
	Remaining int
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient %s balance: requested %d, remaining %d", e.LeaveType, e.Requested, e.Remaining)
}

func (e *InsufficientBalanceError) Unwrap() error { return ErrInsufficientBalance }
