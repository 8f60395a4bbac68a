package attendance

import "errors"

// Attendance domain errors
var (
	// Check-in / check-out errors
	ErrAlreadyCheckedIn = errors.New("a check-in already exists for this day")
	ErrNoOpenSession    = errors.New("no open attendance session for this day")
	ErrInvalidOrder     = errors.New("check-out must be later than check-in")

	// General errors
	ErrRecordNotFound = errors.New("attendance record not found")
)
