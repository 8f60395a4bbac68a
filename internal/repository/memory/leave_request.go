package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/peoplecore/hr-portal-go/internal/domain/leave"
)

type leaveRequestRepository struct {
	store *Store
}

func NewLeaveRequestRepository(store *Store) leave.RequestRepository {
	return &leaveRequestRepository{store: store}
}

// Create implements leave.RequestRepository.
func (l *leaveRequestRepository) Create(ctx context.Context, req leave.Request) (leave.Request, error) {
	l.store.mu.Lock()
	defer l.store.mu.Unlock()

	now := time.Now().UTC()
	req.ID = uuid.NewString()
	req.Version = 1
	req.CreatedAt = now
	req.UpdatedAt = now
	l.store.requests[req.ID] = req

	return req, nil
}

// GetByID implements leave.RequestRepository.
func (l *leaveRequestRepository) GetByID(ctx context.Context, id string) (leave.Request, error) {
	l.store.mu.RLock()
	defer l.store.mu.RUnlock()

	req, ok := l.store.requests[id]
	if !ok {
		return leave.Request{}, leave.ErrRequestNotFound
	}
	return req, nil
}

// HasActiveOverlap implements leave.RequestRepository.
func (l *leaveRequestRepository) HasActiveOverlap(ctx context.Context, employeeID, startDate, endDate string) (bool, error) {
	l.store.mu.RLock()
	defer l.store.mu.RUnlock()

	for _, req := range l.store.requests {
		if req.EmployeeID != employeeID {
			continue
		}
		if req.Status != leave.RequestStatusPending && req.Status != leave.RequestStatusApproved {
			continue
		}
		if req.StartDate <= endDate && req.EndDate >= startDate {
			return true, nil
		}
	}
	return false, nil
}

// UpdateStatus implements leave.RequestRepository.
func (l *leaveRequestRepository) UpdateStatus(ctx context.Context, id string, expectedVersion int, upd leave.StatusUpdate) (leave.Request, error) {
	l.store.mu.Lock()
	defer l.store.mu.Unlock()

	req, ok := l.store.requests[id]
	if !ok {
		return leave.Request{}, leave.ErrRequestNotFound
	}
	if req.Version != expectedVersion {
		return leave.Request{}, leave.ErrVersionMismatch
	}

	req.Status = upd.Status
	if upd.ApprovedBy != nil {
		req.ApprovedBy = upd.ApprovedBy
	}
	if upd.DecisionDate != nil {
		req.DecisionDate = upd.DecisionDate
	}
	if upd.HRNotes != nil {
		req.HRNotes = upd.HRNotes
	}
	if upd.RejectionReason != nil {
		req.RejectionReason = upd.RejectionReason
	}
	if upd.CancelledAt != nil {
		req.CancelledAt = upd.CancelledAt
	}
	req.Version++
	req.UpdatedAt = time.Now().UTC()
	l.store.requests[id] = req

	return req, nil
}

// List implements leave.RequestRepository.
func (l *leaveRequestRepository) List(ctx context.Context, filter leave.RequestFilter) ([]leave.Request, int64, error) {
	l.store.mu.RLock()
	defer l.store.mu.RUnlock()

	var matched []leave.Request
	for _, req := range l.store.requests {
		if filter.EmployeeID != nil && *filter.EmployeeID != "" && req.EmployeeID != *filter.EmployeeID {
			continue
		}
		if filter.Status != nil && *filter.Status != "" && string(req.Status) != *filter.Status {
			continue
		}
		if filter.LeaveType != nil && *filter.LeaveType != "" && req.LeaveType != *filter.LeaveType {
			continue
		}
		if emp, ok := l.store.employees[req.EmployeeID]; ok {
			name := emp.FullName
			req.EmployeeName = &name
		}
		matched = append(matched, req)
	}

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].AppliedAt.After(matched[j].AppliedAt)
	})

	return paginate(matched, filter.Page, filter.Limit)
}
