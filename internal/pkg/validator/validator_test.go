package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsEmpty(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"empty string", "", true},
		{"whitespace only", "   \t ", true},
		{"non-empty", "EMP001", false},
		{"padded value", "  EMP001  ", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsEmpty(tt.input))
		})
	}
}

func TestIsValidDate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"valid date", "2026-03-15", true},
		{"leap day", "2024-02-29", true},
		{"invalid day", "2026-02-30", false},
		{"wrong layout", "15-03-2026", false},
		{"datetime not accepted", "2026-03-15T09:00:00Z", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := IsValidDate(tt.input)
			assert.Equal(t, tt.want, ok)
		})
	}
}

func TestIsValidUUID(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"valid uuid", "8f14e45f-ceea-467f-9d41-4bcd6c1f3a2b", true},
		{"uppercase hex", "8F14E45F-CEEA-467F-9D41-4BCD6C1F3A2B", true},
		{"too short", "8f14e45f-ceea-467f-9d41", false},
		{"bad separator positions", "8f14e45fcceea-467f-9d41-4bcd6c1f3a2b", false},
		{"non-hex characters", "8f14e45f-ceea-467f-9d41-4bcd6c1f3azz", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidUUID(tt.input))
		})
	}
}

func TestValidationErrorsMessage(t *testing.T) {
	errs := ValidationErrors{
		{Field: "start_date", Message: "start_date must be in YYYY-MM-DD format"},
		{Field: "reason", Message: "reason is required"},
	}

	assert.Equal(t, "start_date: start_date must be in YYYY-MM-DD format; reason: reason is required", errs.Error())
	assert.Equal(t, "validation failed", ValidationErrors{}.Error())
}
