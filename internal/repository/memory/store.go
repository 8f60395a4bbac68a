// Package memory implements the repository interfaces on plain maps.
// It backs STORAGE_DRIVER=memory, which exists for local development and
// for exercising the engines in tests without a database.
package memory

import (
	"context"
	"sync"

	"github.com/peoplecore/hr-portal-go/internal/domain/attendance"
	"github.com/peoplecore/hr-portal-go/internal/domain/leave"
	"github.com/peoplecore/hr-portal-go/internal/domain/lifecycle"
	"github.com/peoplecore/hr-portal-go/internal/domain/staff"
)

// Store is the shared state behind every memory repository. One mutex
// guards all maps; the per-key locks in RunInKey provide the same
// serialization the database driver gets from advisory locks.
type Store struct {
	mu          sync.RWMutex
	attendance  map[string]attendance.Record           // employeeID|date
	requests    map[string]leave.Request               // request ID
	ledger      map[string]leave.LedgerEntry           // employeeID|leaveType
	employees   map[string]staff.Employee              // employee ID
	shifts      map[string]staff.ShiftConfig           // employee ID, explicit overrides only
	holidays    map[string]bool                        // "2006-01-02"
	idempotency map[string]lifecycle.IdempotencyRecord // key|actorID

	defaultShift staff.ShiftConfig

	keysMu sync.Mutex
	keys   map[string]*sync.Mutex
}

func NewStore(defaultShift staff.ShiftConfig) *Store {
	return &Store{
		attendance:   make(map[string]attendance.Record),
		requests:     make(map[string]leave.Request),
		ledger:       make(map[string]leave.LedgerEntry),
		employees:    make(map[string]staff.Employee),
		shifts:       make(map[string]staff.ShiftConfig),
		holidays:     make(map[string]bool),
		idempotency:  make(map[string]lifecycle.IdempotencyRecord),
		defaultShift: defaultShift,
		keys:         make(map[string]*sync.Mutex),
	}
}

// SeedEmployee registers an employee, optionally with a shift override.
func (s *Store) SeedEmployee(emp staff.Employee, shift *staff.ShiftConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.employees[emp.ID] = emp
	if shift != nil {
		s.shifts[emp.ID] = *shift
	}
}

// SeedHoliday marks a calendar day as an organization holiday.
func (s *Store) SeedHoliday(date string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.holidays[date] = true
}

func (s *Store) keyLock(key string) *sync.Mutex {
	s.keysMu.Lock()
	defer s.keysMu.Unlock()
	if m, ok := s.keys[key]; ok {
		return m
	}
	m := &sync.Mutex{}
	s.keys[key] = m
	return m
}

// RunInKey implements lifecycle.TxManager. Writes made by fn are rolled
// back on error by restoring a snapshot of the mutable maps, so a failed
// transition leaves the store exactly as it was. The snapshot is
// store-wide, so a restore can drop a concurrent commit under a
// different key; acceptable for a driver that only backs development
// and tests.
func (s *Store) RunInKey(ctx context.Context, key string, fn func(ctx context.Context) error) error {
	lock := s.keyLock(key)
	lock.Lock()
	defer lock.Unlock()

	snap := s.snapshot()
	if err := fn(ctx); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

type storeSnapshot struct {
	attendance  map[string]attendance.Record
	requests    map[string]leave.Request
	ledger      map[string]leave.LedgerEntry
	idempotency map[string]lifecycle.IdempotencyRecord
}

func (s *Store) snapshot() storeSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return storeSnapshot{
		attendance:  copyMap(s.attendance),
		requests:    copyMap(s.requests),
		ledger:      copyMap(s.ledger),
		idempotency: copyMap(s.idempotency),
	}
}

func (s *Store) restore(snap storeSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attendance = snap.attendance
	s.requests = snap.requests
	s.ledger = snap.ledger
	s.idempotency = snap.idempotency
}

func copyMap[V any](src map[string]V) map[string]V {
	dst := make(map[string]V, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

func compositeKey(a, b string) string {
	return a + "|" + b
}
