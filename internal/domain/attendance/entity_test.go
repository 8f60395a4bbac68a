package attendance

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peoplecore/hr-portal-go/internal/domain/staff"
)

var testShift = staff.ShiftConfig{
	ShiftStart:            "09:00",
	GraceMinutes:          15,
	StandardShiftHours:    8,
	HalfDayThresholdHours: 4,
	BreakMinutes:          60,
	CutoffHour:            23,
}

func tsPtr(t time.Time) *time.Time { return &t }

func mustLoc(t *testing.T, name string) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(name)
	require.NoError(t, err)
	return loc
}

func TestRecord_WorkingHours(t *testing.T) {
	t.Parallel()

	checkIn := time.Date(2026, 3, 16, 9, 5, 0, 0, time.UTC)

	tests := []struct {
		name string
		rec  Record
		want string
	}{
		{
			name: "open session has no hours",
			rec:  Record{CheckIn: &checkIn, BreakMinutes: 60},
			want: "0",
		},
		{
			name: "full day minus break",
			rec: Record{
				CheckIn:      &checkIn,
				CheckOut:     tsPtr(checkIn.Add(9 * time.Hour)),
				BreakMinutes: 60,
			},
			want: "8",
		},
		{
			name: "short day rounds to two decimals",
			rec: Record{
				CheckIn:      &checkIn,
				CheckOut:     tsPtr(checkIn.Add(3*time.Hour + 55*time.Minute)),
				BreakMinutes: 60,
			},
			want: "2.92",
		},
		{
			name: "break longer than elapsed clamps to zero",
			rec: Record{
				CheckIn:      &checkIn,
				CheckOut:     tsPtr(checkIn.Add(30 * time.Minute)),
				BreakMinutes: 60,
			},
			want: "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			want, err := decimal.NewFromString(tt.want)
			require.NoError(t, err)
			assert.True(t, tt.rec.WorkingHours().Equal(want),
				"got %s, want %s", tt.rec.WorkingHours(), want)
		})
	}
}

func TestRecord_OvertimeHours(t *testing.T) {
	t.Parallel()

	checkIn := time.Date(2026, 3, 16, 9, 0, 0, 0, time.UTC)
	rec := Record{
		CheckIn:      &checkIn,
		CheckOut:     tsPtr(checkIn.Add(11 * time.Hour)),
		BreakMinutes: 60,
	}

	assert.True(t, rec.OvertimeHours(8).Equal(decimal.NewFromInt(2)))

	short := Record{
		CheckIn:      &checkIn,
		CheckOut:     tsPtr(checkIn.Add(5 * time.Hour)),
		BreakMinutes: 60,
	}
	assert.True(t, short.OvertimeHours(8).Equal(decimal.Zero))
}

func TestDeriveStatus(t *testing.T) {
	t.Parallel()

	loc := mustLoc(t, "Asia/Jakarta")
	date := "2026-03-16" // a Monday
	at := func(hour, min int) time.Time {
		return time.Date(2026, 3, 16, hour, min, 0, 0, loc).UTC()
	}

	tests := []struct {
		name string
		rec  Record
		now  time.Time
		want Status
	}{
		{
			name: "no record before cutoff",
			rec:  Record{Date: date},
			now:  at(10, 0),
			want: StatusNotStarted,
		},
		{
			name: "no record after cutoff",
			rec:  Record{Date: date},
			now:  at(23, 30),
			want: StatusAbsent,
		},
		{
			name: "check-in within grace",
			rec:  Record{Date: date, CheckIn: tsPtr(at(9, 5)), BreakMinutes: 60},
			now:  at(10, 0),
			want: StatusPresent,
		},
		{
			name: "check-in exactly at grace limit",
			rec:  Record{Date: date, CheckIn: tsPtr(at(9, 15)), BreakMinutes: 60},
			now:  at(10, 0),
			want: StatusPresent,
		},
		{
			name: "check-in past grace",
			rec:  Record{Date: date, CheckIn: tsPtr(at(9, 16)), BreakMinutes: 60},
			now:  at(10, 0),
			want: StatusLate,
		},
		{
			name: "short closed day is half day even when on time",
			rec: Record{
				Date:         date,
				CheckIn:      tsPtr(at(9, 5)),
				CheckOut:     tsPtr(at(13, 0)),
				BreakMinutes: 60,
			},
			now:  at(14, 0),
			want: StatusHalfDay,
		},
		{
			name: "full closed day keeps check-in classification",
			rec: Record{
				Date:         date,
				CheckIn:      tsPtr(at(9, 30)),
				CheckOut:     tsPtr(at(18, 30)),
				BreakMinutes: 60,
			},
			now:  at(19, 0),
			want: StatusLate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveStatus(tt.rec, testShift, tt.now, loc))
		})
	}
}

func TestDeriveStatus_Deterministic(t *testing.T) {
	t.Parallel()

	loc := mustLoc(t, "Asia/Jakarta")
	now := time.Date(2026, 3, 16, 10, 0, 0, 0, loc).UTC()
	rec := Record{
		Date:         "2026-03-16",
		CheckIn:      tsPtr(time.Date(2026, 3, 16, 9, 5, 0, 0, loc).UTC()),
		BreakMinutes: 60,
	}

	first := DeriveStatus(rec, testShift, now, loc)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, DeriveStatus(rec, testShift, now, loc))
	}
}
