package staff

import "time"

type Role string

const (
	RoleEmployee Role = "employee" // Regular employee
	RoleHR       Role = "hr"       // Can decide leave requests, view all records
	RoleAdmin    Role = "admin"    // Full access, can cancel on behalf of anyone
)

// ValidRole reports whether s names a known role.
func ValidRole(s string) bool {
	switch Role(s) {
	case RoleEmployee, RoleHR, RoleAdmin:
		return true
	}
	return false
}

// Actor is the authenticated caller, as carried by the JWT claims.
// The auth subsystem itself lives outside this service.
type Actor struct {
	EmployeeID string
	Role       Role
}

// Employee is consumed by reference; this service owns none of the HR
// master data beyond what the two engines need.
type Employee struct {
	ID         string
	FullName   string
	Email      string
	Department string
	Role       Role
	Active     bool
	HireDate   time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ShiftConfig is the working-day calendar for one employee: when the shift
// starts, how late a check-in may be and still count as on time, and the
// thresholds the status derivation reads. Times are in the organization
// timezone.
type ShiftConfig struct {
	ShiftStart            string // "HH:MM"
	GraceMinutes          int
	StandardShiftHours    float64
	HalfDayThresholdHours float64
	BreakMinutes          int
	CutoffHour            int
}

// ShiftStartOn resolves the shift start for a given calendar day in loc.
// ShiftStart is validated at configuration load and by WithStartOverride,
// so it always parses here.
func (s ShiftConfig) ShiftStartOn(year int, month time.Month, day int, loc *time.Location) time.Time {
	t, _ := time.Parse("15:04", s.ShiftStart)
	return time.Date(year, month, day, t.Hour(), t.Minute(), 0, 0, loc)
}

// WithStartOverride returns a copy with ShiftStart replaced when start
// parses as "HH:MM". Anything else keeps the configured default.
func (s ShiftConfig) WithStartOverride(start string) ShiftConfig {
	if _, err := time.Parse("15:04", start); err != nil {
		return s
	}
	s.ShiftStart = start
	return s
}
