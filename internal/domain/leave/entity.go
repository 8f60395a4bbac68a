package leave

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

type RequestStatus string

const (
	RequestStatusPending   RequestStatus = "pending"
	RequestStatusApproved  RequestStatus = "approved"
	RequestStatusRejected  RequestStatus = "rejected"
	RequestStatusCancelled RequestStatus = "cancelled"
)

// Terminal reports whether no further transition is permitted from s.
// Approved is terminal except for the cancel-before-start exception,
// which Workflow.Cancel handles explicitly.
func (s RequestStatus) Terminal() bool {
	return s == RequestStatusApproved || s == RequestStatusRejected || s == RequestStatusCancelled
}

type Decision string

const (
	DecisionApproved Decision = "approved"
	DecisionRejected Decision = "rejected"
)

// Request is a leave application moving through
// pending -> approved | rejected | cancelled.
//
// Days is fixed at submission (inclusive day count minus organization
// holidays) and never recomputed afterwards. Version is the optimistic
// concurrency token: every state change bumps it, and decisions must
// present the version they read.
type Request struct {
	ID         string
	EmployeeID string
	LeaveType  string
	StartDate  string // "2006-01-02", inclusive
	EndDate    string // "2006-01-02", inclusive
	Days       int
	Reason     string

	Status          RequestStatus
	AppliedAt       time.Time
	ApprovedBy      *string
	DecisionDate    *time.Time
	HRNotes         *string
	RejectionReason *string
	CancelledAt     *time.Time
	Version         int

	CreatedAt time.Time
	UpdatedAt time.Time

	// Joined for responses
	EmployeeName *string
}

// LedgerEntry is the per-employee, per-leave-type day counters. Mutated
// only by the workflow's submit/decide/cancel paths, always in the same
// transaction as the request's status change.
type LedgerEntry struct {
	EmployeeID string
	LeaveType  string
	Allocated  int
	Used       int
	Pending    int
	UpdatedAt  time.Time
}

// Remaining is always derived; allocated = used + pending + remaining.
func (e LedgerEntry) Remaining() int {
	return e.Allocated - e.Used - e.Pending
}

// TypePolicy configures one leave type. Untracked types (sick leave in
// some organizations, emergency leave) skip the balance precondition and
// never consume Used, but still reserve Pending so outstanding requests
// stay visible.
type TypePolicy struct {
	Name             string
	Tracked          bool
	AnnualAllocation int
}

// ParsePolicies parses the LEAVE_TYPES config string, e.g.
// "annual:25,sick:10,emergency:-" where "-" marks an untracked type.
func ParsePolicies(spec string) (map[string]TypePolicy, error) {
	policies := make(map[string]TypePolicy)
	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, alloc, ok := strings.Cut(part, ":")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid leave type entry %q", part)
		}
		if alloc == "-" {
			policies[name] = TypePolicy{Name: name, Tracked: false}
			continue
		}
		days, err := strconv.Atoi(alloc)
		if err != nil || days < 0 {
			return nil, fmt.Errorf("invalid allocation for leave type %q", name)
		}
		policies[name] = TypePolicy{Name: name, Tracked: true, AnnualAllocation: days}
	}
	if len(policies) == 0 {
		return nil, fmt.Errorf("no leave types configured")
	}
	return policies, nil
}
