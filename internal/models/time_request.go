package models

import (
	"time"
)

// Request types
const (
	RequestTypeHoliday           = "holiday"
	RequestTypeSickLeave         = "sick-leave"
	RequestTypeExtraHoursEarning = "extra-hours-earning"
	RequestTypeExtraHoursUsage   = "extra-hours-usage"
	RequestTypeNotJustified      = "not-justified"
)

const (
	RequestStatusPending  = "pending"
	RequestStatusApproved = "approved"
	RequestStatusDeclined = "declined"
)

// RequestTypes lists every request type in display order.
var RequestTypes = []string{
	RequestTypeHoliday,
	RequestTypeSickLeave,
	RequestTypeExtraHoursEarning,
	RequestTypeExtraHoursUsage,
	RequestTypeNotJustified,
}

// TimeRequest is an employee ask that waits for a manager decision.
// UserName is a snapshot taken at submission and is not kept in sync with
// later renames of the user.
type TimeRequest struct {
	ID        string    `gorm:"primaryKey;type:varchar(64)" json:"id"`
	UserID    string    `gorm:"type:varchar(64);not null;index" json:"userId"`
	UserName  string    `gorm:"not null" json:"userName"`
	Type      string    `gorm:"type:varchar(32);not null;index" json:"type"`
	StartDate string    `gorm:"type:varchar(10);not null;index" json:"startDate"`
	EndDate   string    `gorm:"type:varchar(10);not null" json:"endDate"`
	Hours     *float64  `json:"hours,omitempty"`
	Status    string    `gorm:"type:varchar(20);not null;index" json:"status"`
	Reason    string    `json:"reason,omitempty"`
	CreatedAt time.Time `gorm:"not null;index" json:"createdAt"`
}

func (TimeRequest) TableName() string {
	return "time_requests"
}

// IsExtraHoursType reports whether requests of this type carry hours.
func IsExtraHoursType(requestType string) bool {
	return requestType == RequestTypeExtraHoursEarning || requestType == RequestTypeExtraHoursUsage
}

func IsValidRequestType(requestType string) bool {
	for _, t := range RequestTypes {
		if t == requestType {
			return true
		}
	}
	return false
}

func (r *TimeRequest) IsExtraHours() bool {
	return IsExtraHoursType(r.Type)
}

func (r *TimeRequest) IsPending() bool {
	return r.Status == RequestStatusPending
}

// HoursValue returns the requested hours, 0 when none were given.
func (r *TimeRequest) HoursValue() float64 {
	if r.Hours == nil {
		return 0
	}
	return *r.Hours
}

// DaySpan returns the inclusive number of calendar days the request covers.
func (r *TimeRequest) DaySpan() (int, error) {
	return DateSpan(r.StartDate, r.EndDate)
}

// TypeLabel returns a human readable name for the request type.
func (r *TimeRequest) TypeLabel() string {
	switch r.Type {
	case RequestTypeHoliday:
		return "Holiday"
	case RequestTypeSickLeave:
		return "Sick leave"
	case RequestTypeExtraHoursEarning:
		return "Extra hours earned"
	case RequestTypeExtraHoursUsage:
		return "Extra hours used"
	case RequestTypeNotJustified:
		return "Not justified"
	}
	return r.Type
}
