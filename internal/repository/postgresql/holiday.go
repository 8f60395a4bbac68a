package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/peoplecore/hr-portal-go/internal/domain/leave"
	"github.com/peoplecore/hr-portal-go/internal/pkg/database"
	"github.com/peoplecore/hr-portal-go/internal/pkg/validator"
)

type holidayCalendar struct {
	db *database.DB
}

// NewHolidayCalendar returns a leave.HolidayCalendar backed by the
// organization_holidays table. Weekends count as holidays without
// needing a row.
func NewHolidayCalendar(db *database.DB) leave.HolidayCalendar {
	return &holidayCalendar{db: db}
}

// IsHoliday implements leave.HolidayCalendar.
func (h *holidayCalendar) IsHoliday(ctx context.Context, day time.Time) (bool, error) {
	switch day.Weekday() {
	case time.Saturday, time.Sunday:
		return true, nil
	}

	q := GetQuerier(ctx, h.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM organization_holidays WHERE date = $1
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, day.Format(validator.DateLayout)).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check holiday: %w", err)
	}

	return exists, nil
}
