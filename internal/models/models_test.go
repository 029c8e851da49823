package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInclusiveDaySpan(t *testing.T) {
	berlin, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)

	tests := []struct {
		name     string
		start    time.Time
		end      time.Time
		expected int
	}{
		{
			name:     "Same day",
			start:    time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC),
			end:      time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC),
			expected: 1,
		},
		{
			name:     "Working week",
			start:    time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
			end:      time.Date(2024, 6, 14, 0, 0, 0, 0, time.UTC),
			expected: 5,
		},
		{
			name:     "End earlier in the day than start",
			start:    time.Date(2024, 7, 1, 18, 30, 0, 0, time.UTC),
			end:      time.Date(2024, 7, 3, 8, 0, 0, 0, time.UTC),
			expected: 3,
		},
		{
			name:     "Across DST change",
			start:    time.Date(2024, 3, 30, 0, 0, 0, 0, berlin),
			end:      time.Date(2024, 4, 1, 0, 0, 0, 0, berlin),
			expected: 3,
		},
		{
			name:     "Reversed range",
			start:    time.Date(2024, 7, 3, 0, 0, 0, 0, time.UTC),
			end:      time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC),
			expected: -1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, InclusiveDaySpan(tt.start, tt.end))
		})
	}
}

func TestDateSpan(t *testing.T) {
	days, err := DateSpan("2024-07-01", "2024-07-03")
	require.NoError(t, err)
	assert.Equal(t, 3, days)

	_, err = DateSpan("2024-07-01", "03.07.2024")
	assert.Error(t, err)
}

func TestTimeRequestHelpers(t *testing.T) {
	hours := 2.5
	req := TimeRequest{Type: RequestTypeExtraHoursUsage, Hours: &hours, Status: RequestStatusPending}

	assert.True(t, req.IsExtraHours())
	assert.True(t, req.IsPending())
	assert.Equal(t, 2.5, req.HoursValue())

	req = TimeRequest{Type: RequestTypeHoliday, Status: RequestStatusApproved}
	assert.False(t, req.IsExtraHours())
	assert.False(t, req.IsPending())
	assert.Equal(t, 0.0, req.HoursValue())

	assert.True(t, IsValidRequestType("not-justified"))
	assert.False(t, IsValidRequestType("vacation"))
}

func TestAttendanceDuration(t *testing.T) {
	tests := []struct {
		name     string
		record   AttendanceRecord
		expected string
	}{
		{name: "Closed day", record: AttendanceRecord{CheckIn: "08:55", CheckOut: "17:05"}, expected: "8h 10m"},
		{name: "Open day", record: AttendanceRecord{CheckIn: "09:02"}, expected: "-"},
		{name: "No times", record: AttendanceRecord{}, expected: "-"},
		{name: "Check-out before check-in", record: AttendanceRecord{CheckIn: "18:00", CheckOut: "09:00"}, expected: "-"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.record.Duration())
		})
	}
}
