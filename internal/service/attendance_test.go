package service

import (
	"testing"
	"time"

	"teamtime-bot/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckInIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	env.clock.Set(time.Date(2024, 5, 22, 8, 58, 30, 0, time.UTC))

	first, err := env.attendance.CheckIn("2")
	require.NoError(t, err)
	assert.Equal(t, "2024-05-22", first.Date)
	assert.Equal(t, "08:58", first.CheckIn)
	assert.Empty(t, first.CheckOut)

	env.clock.Advance(2 * time.Hour)
	second, err := env.attendance.CheckIn("2")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "08:58", second.CheckIn)

	records, err := env.attendance.ListAttendance(repository.AttendanceFilter{UserID: "2", Date: "2024-05-22"})
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestCheckOutWithoutCheckIn(t *testing.T) {
	env := newTestEnv(t)
	env.clock.Set(time.Date(2024, 5, 22, 17, 0, 0, 0, time.UTC))

	record, err := env.attendance.CheckOut("2")
	require.NoError(t, err)
	assert.Nil(t, record)

	records, err := env.attendance.ListAttendance(repository.AttendanceFilter{UserID: "2"})
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestCheckOutOverwritesEarlierCheckOut(t *testing.T) {
	env := newTestEnv(t)
	env.clock.Set(time.Date(2024, 5, 22, 9, 0, 0, 0, time.UTC))

	_, err := env.attendance.CheckIn("2")
	require.NoError(t, err)

	env.clock.Set(time.Date(2024, 5, 22, 12, 30, 0, 0, time.UTC))
	record, err := env.attendance.CheckOut("2")
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, "12:30", record.CheckOut)

	env.clock.Set(time.Date(2024, 5, 22, 17, 45, 0, 0, time.UTC))
	record, err = env.attendance.CheckOut("2")
	require.NoError(t, err)
	assert.Equal(t, "17:45", record.CheckOut)
	assert.Equal(t, "8h 45m", record.Duration())

	stored, err := env.attendance.TodayRecord("2")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "09:00", stored.CheckIn)
	assert.Equal(t, "17:45", stored.CheckOut)
}

func TestCheckInUsesClockLocation(t *testing.T) {
	env := newTestEnv(t)
	tokyo := time.FixedZone("JST", 9*60*60)
	env.clock.Set(time.Date(2024, 5, 23, 1, 15, 0, 0, tokyo))

	record, err := env.attendance.CheckIn("1")
	require.NoError(t, err)
	assert.Equal(t, "2024-05-23", record.Date)
	assert.Equal(t, "01:15", record.CheckIn)
	assert.Equal(t, "2024-05-23", env.attendance.Today())
}

func TestAttendanceUnknownUser(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.attendance.CheckIn("42")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = env.attendance.CheckOut("42")
	assert.ErrorIs(t, err, ErrNotFound)
}
