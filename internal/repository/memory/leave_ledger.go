package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/peoplecore/hr-portal-go/internal/domain/leave"
)

type leaveLedgerRepository struct {
	store *Store
}

func NewLeaveLedgerRepository(store *Store) leave.LedgerRepository {
	return &leaveLedgerRepository{store: store}
}

// Ensure implements leave.LedgerRepository.
func (l *leaveLedgerRepository) Ensure(ctx context.Context, employeeID, leaveType string, allocated int) (leave.LedgerEntry, error) {
	l.store.mu.Lock()
	defer l.store.mu.Unlock()

	key := compositeKey(employeeID, leaveType)
	if entry, ok := l.store.ledger[key]; ok {
		return entry, nil
	}

	entry := leave.LedgerEntry{
		EmployeeID: employeeID,
		LeaveType:  leaveType,
		Allocated:  allocated,
		UpdatedAt:  time.Now().UTC(),
	}
	l.store.ledger[key] = entry

	return entry, nil
}

// GetAll implements leave.LedgerRepository.
func (l *leaveLedgerRepository) GetAll(ctx context.Context, employeeID string) ([]leave.LedgerEntry, error) {
	l.store.mu.RLock()
	defer l.store.mu.RUnlock()

	var entries []leave.LedgerEntry
	for _, entry := range l.store.ledger {
		if entry.EmployeeID == employeeID {
			entries = append(entries, entry)
		}
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].LeaveType < entries[j].LeaveType
	})

	return entries, nil
}

// Reserve implements leave.LedgerRepository.
func (l *leaveLedgerRepository) Reserve(ctx context.Context, employeeID, leaveType string, days int, enforce bool) error {
	return l.mutate(employeeID, leaveType, func(entry *leave.LedgerEntry) error {
		if enforce && entry.Remaining() < days {
			return leave.ErrInsufficientBalance
		}
		entry.Pending += days
		return nil
	})
}

// CommitPending implements leave.LedgerRepository.
func (l *leaveLedgerRepository) CommitPending(ctx context.Context, employeeID, leaveType string, days int) error {
	return l.mutate(employeeID, leaveType, func(entry *leave.LedgerEntry) error {
		if entry.Pending < days {
			return fmt.Errorf("ledger underflow on commit pending for employee %s type %s", employeeID, leaveType)
		}
		entry.Pending -= days
		entry.Used += days
		return nil
	})
}

// ReleasePending implements leave.LedgerRepository.
func (l *leaveLedgerRepository) ReleasePending(ctx context.Context, employeeID, leaveType string, days int) error {
	return l.mutate(employeeID, leaveType, func(entry *leave.LedgerEntry) error {
		if entry.Pending < days {
			return fmt.Errorf("ledger underflow on release pending for employee %s type %s", employeeID, leaveType)
		}
		entry.Pending -= days
		return nil
	})
}

// ReleaseUsed implements leave.LedgerRepository.
func (l *leaveLedgerRepository) ReleaseUsed(ctx context.Context, employeeID, leaveType string, days int) error {
	return l.mutate(employeeID, leaveType, func(entry *leave.LedgerEntry) error {
		if entry.Used < days {
			return fmt.Errorf("ledger underflow on release used for employee %s type %s", employeeID, leaveType)
		}
		entry.Used -= days
		return nil
	})
}

func (l *leaveLedgerRepository) mutate(employeeID, leaveType string, fn func(entry *leave.LedgerEntry) error) error {
	l.store.mu.Lock()
	defer l.store.mu.Unlock()

	key := compositeKey(employeeID, leaveType)
	entry, ok := l.store.ledger[key]
	if !ok {
		return fmt.Errorf("ledger entry missing for employee %s type %s", employeeID, leaveType)
	}

	if err := fn(&entry); err != nil {
		return err
	}

	entry.UpdatedAt = time.Now().UTC()
	l.store.ledger[key] = entry

	return nil
}
