package service

import (
	"teamtime-bot/internal/models"
)

// ApplyApproval mutates user for an approved request. Each request type
// touches at most one balance; not-justified touches none.
// Balances are allowed to go negative.
func ApplyApproval(user *models.User, req *models.TimeRequest) error {
	switch req.Type {
	case models.RequestTypeHoliday:
		days, err := approvedSpan(req)
		if err != nil {
			return err
		}
		user.HolidayBalance -= days
	case models.RequestTypeSickLeave:
		days, err := approvedSpan(req)
		if err != nil {
			return err
		}
		user.SickDaysTaken += days
	case models.RequestTypeExtraHoursEarning:
		user.ExtraHoursWallet += req.HoursValue()
	case models.RequestTypeExtraHoursUsage:
		user.ExtraHoursWallet -= req.HoursValue()
	case models.RequestTypeNotJustified:
	default:
		return invalid("type", "unknown request type %q", req.Type)
	}
	return nil
}

func approvedSpan(req *models.TimeRequest) (int, error) {
	days, err := req.DaySpan()
	if err != nil {
		return 0, invalid("startDate", "%v", err)
	}
	if days < 1 {
		return 0, invalid("endDate", "end date %s is before start date %s", req.EndDate, req.StartDate)
	}
	return days, nil
}
