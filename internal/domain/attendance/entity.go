package attendance

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/peoplecore/hr-portal-go/internal/domain/staff"
)

// Status is derived at read time from the raw timestamps and the shift
// configuration. It is never stored, so it cannot drift from the record.
type Status string

const (
	StatusNotStarted Status = "not_started"
	StatusPresent    Status = "present"
	StatusLate       Status = "late"
	StatusHalfDay    Status = "half_day"
	StatusAbsent     Status = "absent"
)

type Location string

const (
	LocationOffice Location = "office"
	LocationRemote Location = "remote"
	LocationField  Location = "field"
)

// ValidLocation reports whether s names a known work location.
func ValidLocation(s string) bool {
	switch Location(s) {
	case LocationOffice, LocationRemote, LocationField:
		return true
	}
	return false
}

// Record is the single attendance row per (employee, calendar day).
// Date is the working day in the organization timezone; the instants are
// stored in UTC. A record with CheckOut unset is an open session.
type Record struct {
	ID           string
	EmployeeID   string
	Date         string // "2006-01-02" in the organization timezone
	CheckIn      *time.Time
	CheckOut     *time.Time
	BreakMinutes int // snapshot of the shift's break at check-in time
	Location     Location
	Notes        *string
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Joined for responses
	EmployeeName *string
}

// Open reports whether the record has a check-in but no check-out yet.
func (r Record) Open() bool {
	return r.CheckIn != nil && r.CheckOut == nil
}

// Closed reports whether both timestamps are set.
func (r Record) Closed() bool {
	return r.CheckIn != nil && r.CheckOut != nil
}

var minutesPerHour = decimal.NewFromInt(60)

// WorkingHours recomputes the worked hours from the two timestamps minus
// the break, rounded to two decimal places. Never negative, never stored.
func (r Record) WorkingHours() decimal.Decimal {
	if !r.Closed() {
		return decimal.Zero
	}
	minutes := r.CheckOut.Sub(*r.CheckIn).Minutes() - float64(r.BreakMinutes)
	if minutes <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromFloat(minutes).Div(minutesPerHour).Round(2)
}

// OvertimeHours is the worked time beyond the standard shift, never negative.
func (r Record) OvertimeHours(standardShiftHours float64) decimal.Decimal {
	overtime := r.WorkingHours().Sub(decimal.NewFromFloat(standardShiftHours))
	if overtime.IsNegative() {
		return decimal.Zero
	}
	return overtime.Round(2)
}

// DeriveStatus classifies the record against the employee's shift for the
// record's day. Pure: same inputs always give the same status.
//
// Rules, in precedence order:
//  1. no check-in and the day's timekeeping cutoff has passed -> Absent
//  2. no check-in otherwise -> NotStarted
//  3. checked out with short hours (below the half-day threshold) -> HalfDay
//  4. check-in within shift start + grace -> Present, else Late
func DeriveStatus(r Record, shift staff.ShiftConfig, now time.Time, loc *time.Location) Status {
	day, err := time.ParseInLocation("2006-01-02", r.Date, loc)
	if err != nil {
		return StatusNotStarted
	}

	if r.CheckIn == nil {
		cutoff := time.Date(day.Year(), day.Month(), day.Day(), shift.CutoffHour, 0, 0, 0, loc)
		if now.After(cutoff) {
			return StatusAbsent
		}
		return StatusNotStarted
	}

	if r.Closed() {
		threshold := decimal.NewFromFloat(shift.HalfDayThresholdHours)
		if r.WorkingHours().LessThan(threshold) {
			return StatusHalfDay
		}
	}

	shiftStart := shift.ShiftStartOn(day.Year(), day.Month(), day.Day(), loc)
	graceLimit := shiftStart.Add(time.Duration(shift.GraceMinutes) * time.Minute)
	if r.CheckIn.In(loc).After(graceLimit) {
		return StatusLate
	}
	return StatusPresent
}
