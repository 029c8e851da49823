package models

import (
	"fmt"
	"time"
)

// AttendanceRecord is the check-in/check-out pair of one user on one day.
// At most one record exists per (UserID, Date); the attendance service
// enforces that.
type AttendanceRecord struct {
	ID       string `gorm:"primaryKey;type:varchar(64)" json:"id"`
	UserID   string `gorm:"type:varchar(64);not null;index:idx_attendance_user_date" json:"userId"`
	Date     string `gorm:"type:varchar(10);not null;index:idx_attendance_user_date" json:"date"`
	CheckIn  string `gorm:"type:varchar(5)" json:"checkIn,omitempty"`
	CheckOut string `gorm:"type:varchar(5)" json:"checkOut,omitempty"`
}

func (AttendanceRecord) TableName() string {
	return "attendance_records"
}

func (a *AttendanceRecord) HasCheckIn() bool {
	return a.CheckIn != ""
}

func (a *AttendanceRecord) HasCheckOut() bool {
	return a.CheckOut != ""
}

// WorkedMinutes returns minutes between check-in and check-out.
// ok is false while the day is still open or a time is malformed.
func (a *AttendanceRecord) WorkedMinutes() (minutes int, ok bool) {
	if !a.HasCheckIn() || !a.HasCheckOut() {
		return 0, false
	}

	in, err := time.Parse(ClockLayout, a.CheckIn)
	if err != nil {
		return 0, false
	}
	out, err := time.Parse(ClockLayout, a.CheckOut)
	if err != nil {
		return 0, false
	}

	minutes = int(out.Sub(in).Minutes())
	if minutes < 0 {
		return 0, false
	}
	return minutes, true
}

// Duration returns the worked time as "8h 10m", or "-" while the day is open.
func (a *AttendanceRecord) Duration() string {
	minutes, ok := a.WorkedMinutes()
	if !ok {
		return "-"
	}
	return FormatMinutes(minutes)
}

// FormatTime renders the pair for display.
func (a *AttendanceRecord) FormatTime() string {
	checkIn, checkOut := "--:--", "--:--"
	if a.HasCheckIn() {
		checkIn = a.CheckIn
	}
	if a.HasCheckOut() {
		checkOut = a.CheckOut
	}
	return fmt.Sprintf("⏰ In: %s | Out: %s", checkIn, checkOut)
}

// FormatMinutes renders a minute count as "Xh Ym".
func FormatMinutes(minutes int) string {
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}
