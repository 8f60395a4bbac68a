package memory

import (
	"context"

	"github.com/peoplecore/hr-portal-go/internal/domain/staff"
)

type staffRepository struct {
	store *Store
}

func NewStaffRepository(store *Store) staff.StaffRepository {
	return &staffRepository{store: store}
}

// GetByID implements staff.StaffRepository.
func (s *staffRepository) GetByID(ctx context.Context, employeeID string) (staff.Employee, error) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	emp, ok := s.store.employees[employeeID]
	if !ok {
		return staff.Employee{}, staff.ErrEmployeeNotFound
	}
	return emp, nil
}

// GetShiftConfig implements staff.StaffRepository.
func (s *staffRepository) GetShiftConfig(ctx context.Context, employeeID string) (staff.ShiftConfig, error) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	if _, ok := s.store.employees[employeeID]; !ok {
		return staff.ShiftConfig{}, staff.ErrEmployeeNotFound
	}
	if shift, ok := s.store.shifts[employeeID]; ok {
		return shift, nil
	}
	return s.store.defaultShift, nil
}
