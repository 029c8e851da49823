package report

import (
	"bytes"
	"testing"
	"time"

	"teamtime-bot/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleWeek() *Weekly {
	user := &models.User{ID: "1", Name: "John Doe", Role: models.RoleEmployee}
	records := []*models.AttendanceRecord{
		{ID: "att1", UserID: "1", Date: "2024-05-20", CheckIn: "08:55", CheckOut: "17:05"},
		{ID: "att2", UserID: "1", Date: "2024-05-21", CheckIn: "09:02", CheckOut: "18:15"},
		{ID: "att3", UserID: "1", Date: "2024-05-22", CheckIn: "09:00"},
		{ID: "other", UserID: "2", Date: "2024-05-22", CheckIn: "07:00", CheckOut: "15:00"},
	}
	return BuildWeekly(user, records, time.Date(2024, 5, 24, 0, 0, 0, 0, time.UTC))
}

func TestBuildWeekly(t *testing.T) {
	w := sampleWeek()

	assert.Equal(t, "2024-05-18", w.From)
	assert.Equal(t, "2024-05-24", w.To)
	require.Len(t, w.Days, WeekDays)

	assert.Equal(t, "Saturday", w.Days[0].Weekday)
	assert.Equal(t, "-", w.Days[0].Worked)

	monday := w.Days[2]
	assert.Equal(t, "2024-05-20", monday.Date)
	assert.Equal(t, "8h 10m", monday.Worked)
	assert.Equal(t, 490, monday.Minutes)

	open := w.Days[4]
	assert.Equal(t, "09:00", open.CheckIn)
	assert.Equal(t, "-", open.Worked)

	assert.Equal(t, 490+553, w.TotalMinutes)
	assert.Equal(t, "17h 23m", w.Total())
	assert.Equal(t, "attendance_1_2024-05-18_2024-05-24.xlsx", w.Filename(FormatXLSX))
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleWeek(), FormatXLSX))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	require.Len(t, rows, 4+WeekDays+1)

	assert.Equal(t, []string{"Weekly attendance", "John Doe"}, rows[0])
	assert.Equal(t, []string{"Date", "Day", "Check-in", "Check-out", "Worked"}, rows[3])
	assert.Equal(t, []string{"2024-05-20", "Monday", "08:55", "17:05", "8h 10m"}, rows[6])

	last := rows[len(rows)-1]
	assert.Equal(t, "Total", last[0])
	assert.Equal(t, "17h 23m", last[4])
}

func TestWritePDF(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleWeek(), FormatPDF))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}

func TestWriteUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, Write(&buf, sampleWeek(), "csv"))
	assert.Zero(t, buf.Len())
}
