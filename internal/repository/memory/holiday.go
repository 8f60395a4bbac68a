package memory

import (
	"context"
	"time"

	"github.com/peoplecore/hr-portal-go/internal/domain/leave"
	"github.com/peoplecore/hr-portal-go/internal/pkg/validator"
)

type holidayCalendar struct {
	store *Store
}

// NewHolidayCalendar returns a leave.HolidayCalendar over the seeded
// holiday set. Weekends always count as holidays.
func NewHolidayCalendar(store *Store) leave.HolidayCalendar {
	return &holidayCalendar{store: store}
}

// IsHoliday implements leave.HolidayCalendar.
func (h *holidayCalendar) IsHoliday(ctx context.Context, day time.Time) (bool, error) {
	switch day.Weekday() {
	case time.Saturday, time.Sunday:
		return true, nil
	}

	h.store.mu.RLock()
	defer h.store.mu.RUnlock()
	return h.store.holidays[day.Format(validator.DateLayout)], nil
}
