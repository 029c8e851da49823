package service

import (
	"fmt"
	"sort"

	"teamtime-bot/internal/clock"
	"teamtime-bot/internal/models"
	"teamtime-bot/internal/report"
	"teamtime-bot/internal/repository"

	"github.com/jinzhu/now"
	"github.com/sirupsen/logrus"
)

// RecentRequestsLimit is how many requests the employee dashboard shows.
const RecentRequestsLimit = 3

type DashboardStats struct {
	TotalEmployees  int `json:"totalEmployees"`
	PresentToday    int `json:"presentToday"`
	PendingRequests int `json:"pendingRequests"`
}

type TeamMember struct {
	User         *models.User `json:"user"`
	PresentToday bool         `json:"presentToday"`
}

// ViewService answers read-only questions. Every call is recomputed from
// the store.
type ViewService struct {
	store  *repository.Store
	clock  clock.Clock
	logger *logrus.Logger
}

func NewViewService(store *repository.Store, clk clock.Clock) *ViewService {
	return &ViewService{
		store:  store,
		clock:  clk,
		logger: newLogger(),
	}
}

func (s *ViewService) Today() string {
	return models.FormatDate(now.With(s.clock.Now()).BeginningOfDay())
}

// PresentToday returns the ids of users with an attendance record today.
// An open record counts.
func (s *ViewService) PresentToday() (map[string]bool, error) {
	ids, err := s.store.Attendance.UserIDsByDate(s.Today())
	if err != nil {
		return nil, fmt.Errorf("failed to get today's attendance: %w", err)
	}

	present := make(map[string]bool, len(ids))
	for _, id := range ids {
		present[id] = true
	}
	return present, nil
}

func (s *ViewService) IsPresentToday(userID string) (bool, error) {
	record, err := s.store.Attendance.GetByUserAndDate(userID, s.Today())
	if err != nil {
		return false, fmt.Errorf("failed to get today's attendance: %w", err)
	}
	return record != nil, nil
}

// UpcomingApprovedHolidays lists approved holidays starting today or later,
// soonest first.
func (s *ViewService) UpcomingApprovedHolidays() ([]*models.TimeRequest, error) {
	holidays, err := s.store.Requests.List(repository.RequestFilter{
		Type:      models.RequestTypeHoliday,
		Status:    models.RequestStatusApproved,
		StartFrom: s.Today(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}

	sort.SliceStable(holidays, func(i, j int) bool {
		return holidays[i].StartDate < holidays[j].StartDate
	})
	return holidays, nil
}

func (s *ViewService) PendingRequests() ([]*models.TimeRequest, error) {
	requests, err := s.store.Requests.List(repository.RequestFilter{Status: models.RequestStatusPending})
	if err != nil {
		return nil, fmt.Errorf("failed to list pending requests: %w", err)
	}
	return requests, nil
}

// RecentRequests returns the newest limit requests of userID.
func (s *ViewService) RecentRequests(userID string, limit int) ([]*models.TimeRequest, error) {
	requests, err := s.store.Requests.List(repository.RequestFilter{UserID: userID, Limit: limit})
	if err != nil {
		return nil, fmt.Errorf("failed to list recent requests: %w", err)
	}
	return requests, nil
}

func (s *ViewService) DashboardStats() (*DashboardStats, error) {
	employees, err := s.store.Users.GetByRole(models.RoleEmployee)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	present, err := s.store.Attendance.UserIDsByDate(s.Today())
	if err != nil {
		return nil, fmt.Errorf("failed to get today's attendance: %w", err)
	}
	pending, err := s.store.Requests.CountByStatus(models.RequestStatusPending)
	if err != nil {
		return nil, fmt.Errorf("failed to count pending requests: %w", err)
	}

	stats := &DashboardStats{
		TotalEmployees:  len(employees),
		PresentToday:    len(present),
		PendingRequests: pending,
	}
	s.logger.WithFields(logrus.Fields{
		"employees": stats.TotalEmployees,
		"present":   stats.PresentToday,
		"pending":   stats.PendingRequests,
	}).Debug("Dashboard stats computed")
	return stats, nil
}

// TeamOverview returns every employee with today's presence, or only
// userID when it is not empty.
func (s *ViewService) TeamOverview(userID string) ([]TeamMember, error) {
	var users []*models.User
	if userID != "" {
		user, err := s.store.Users.GetByID(userID)
		if err != nil {
			return nil, fmt.Errorf("failed to get user: %w", err)
		}
		if user == nil {
			return nil, notFound("user", userID)
		}
		users = []*models.User{user}
	} else {
		employees, err := s.store.Users.GetByRole(models.RoleEmployee)
		if err != nil {
			return nil, fmt.Errorf("failed to list employees: %w", err)
		}
		users = employees
	}

	present, err := s.PresentToday()
	if err != nil {
		return nil, err
	}

	team := make([]TeamMember, 0, len(users))
	for _, u := range users {
		team = append(team, TeamMember{User: u, PresentToday: present[u.ID]})
	}
	return team, nil
}

// WeeklyReport collects the attendance of userID over the seven days ending today.
func (s *ViewService) WeeklyReport(userID string) (*report.Weekly, error) {
	user, err := s.store.Users.GetByID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, notFound("user", userID)
	}

	end := now.With(s.clock.Now()).BeginningOfDay()
	start := end.AddDate(0, 0, -(report.WeekDays - 1))

	records, err := s.store.Attendance.List(repository.AttendanceFilter{
		UserID: userID,
		From:   models.FormatDate(start),
		To:     models.FormatDate(end),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}

	return report.BuildWeekly(user, records, end), nil
}
