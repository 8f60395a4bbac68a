package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/peoplecore/hr-portal-go/internal/domain/attendance"
)

type attendanceRepository struct {
	store *Store
}

func NewAttendanceRepository(store *Store) attendance.Repository {
	return &attendanceRepository{store: store}
}

// Create implements attendance.Repository.
func (a *attendanceRepository) Create(ctx context.Context, rec attendance.Record) (attendance.Record, error) {
	a.store.mu.Lock()
	defer a.store.mu.Unlock()

	key := compositeKey(rec.EmployeeID, rec.Date)
	if _, exists := a.store.attendance[key]; exists {
		return attendance.Record{}, attendance.ErrAlreadyCheckedIn
	}

	now := time.Now().UTC()
	rec.ID = uuid.NewString()
	rec.CreatedAt = now
	rec.UpdatedAt = now
	a.store.attendance[key] = rec

	return rec, nil
}

// GetByEmployeeAndDate implements attendance.Repository.
func (a *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID, date string) (attendance.Record, error) {
	a.store.mu.RLock()
	defer a.store.mu.RUnlock()

	rec, ok := a.store.attendance[compositeKey(employeeID, date)]
	if !ok {
		return attendance.Record{}, attendance.ErrRecordNotFound
	}
	return rec, nil
}

// CloseSession implements attendance.Repository.
func (a *attendanceRepository) CloseSession(ctx context.Context, employeeID, date string, checkOut time.Time, notes *string) (attendance.Record, error) {
	a.store.mu.Lock()
	defer a.store.mu.Unlock()

	key := compositeKey(employeeID, date)
	rec, ok := a.store.attendance[key]
	if !ok || !rec.Open() {
		return attendance.Record{}, attendance.ErrNoOpenSession
	}

	rec.CheckOut = &checkOut
	if notes != nil {
		rec.Notes = notes
	}
	rec.UpdatedAt = time.Now().UTC()
	a.store.attendance[key] = rec

	return rec, nil
}

// List implements attendance.Repository.
func (a *attendanceRepository) List(ctx context.Context, filter attendance.ListFilter) ([]attendance.Record, int64, error) {
	a.store.mu.RLock()
	defer a.store.mu.RUnlock()

	var matched []attendance.Record
	for _, rec := range a.store.attendance {
		if filter.EmployeeID != nil && *filter.EmployeeID != "" && rec.EmployeeID != *filter.EmployeeID {
			continue
		}
		if filter.Date != nil && *filter.Date != "" && rec.Date != *filter.Date {
			continue
		}
		if filter.StartDate != nil && *filter.StartDate != "" && rec.Date < *filter.StartDate {
			continue
		}
		if filter.EndDate != nil && *filter.EndDate != "" && rec.Date > *filter.EndDate {
			continue
		}
		if emp, ok := a.store.employees[rec.EmployeeID]; ok {
			name := emp.FullName
			rec.EmployeeName = &name
		}
		matched = append(matched, rec)
	}

	sort.Slice(matched, func(i, j int) bool {
		if matched[i].Date != matched[j].Date {
			return matched[i].Date > matched[j].Date
		}
		return matched[i].EmployeeID < matched[j].EmployeeID
	})

	return paginate(matched, filter.Page, filter.Limit)
}

// paginate applies page/limit the same way the database driver does.
func paginate[T any](items []T, page, limit int) ([]T, int64, error) {
	total := int64(len(items))
	if limit <= 0 {
		limit = 20
	}
	if page <= 0 {
		page = 1
	}
	start := (page - 1) * limit
	if start >= len(items) {
		return nil, total, nil
	}
	end := start + limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end], total, nil
}
