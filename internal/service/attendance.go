package service

import (
	"errors"
	"fmt"

	"teamtime-bot/internal/clock"
	"teamtime-bot/internal/models"
	"teamtime-bot/internal/repository"

	"github.com/google/uuid"
	"github.com/jinzhu/now"
	"github.com/sirupsen/logrus"
)

type AttendanceService struct {
	store  *repository.Store
	clock  clock.Clock
	logger *logrus.Logger
}

func NewAttendanceService(store *repository.Store, clk clock.Clock) *AttendanceService {
	return &AttendanceService{
		store:  store,
		clock:  clk,
		logger: newLogger(),
	}
}

// Today returns the local calendar date of the service clock.
func (s *AttendanceService) Today() string {
	return models.FormatDate(now.With(s.clock.Now()).BeginningOfDay())
}

// CheckIn opens today's record for userID. A second call on the same day
// returns the existing record untouched.
func (s *AttendanceService) CheckIn(userID string) (*models.AttendanceRecord, error) {
	if err := s.requireUser(userID); err != nil {
		return nil, err
	}

	t := s.clock.Now()
	today := models.FormatDate(t)

	existing, err := s.store.Attendance.GetByUserAndDate(userID, today)
	if err != nil {
		return nil, fmt.Errorf("failed to get attendance record: %w", err)
	}
	if existing != nil {
		s.logger.WithFields(logrus.Fields{
			"user_id":  userID,
			"date":     today,
			"check_in": existing.CheckIn,
		}).Debug("Already checked in today")
		return existing, nil
	}

	record := &models.AttendanceRecord{
		ID:      uuid.NewString(),
		UserID:  userID,
		Date:    today,
		CheckIn: models.FormatClock(t),
	}
	if err := s.store.Attendance.Create(record); err != nil {
		if errors.Is(err, repository.ErrAlreadyExists) {
			return s.store.Attendance.GetByUserAndDate(userID, today)
		}
		return nil, fmt.Errorf("failed to create attendance record: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"user_id":  userID,
		"date":     today,
		"check_in": record.CheckIn,
	}).Info("User checked in")
	return record, nil
}

// CheckOut stamps the check-out time on today's record, replacing any
// earlier one. It returns nil without error when there is no record today.
func (s *AttendanceService) CheckOut(userID string) (*models.AttendanceRecord, error) {
	if err := s.requireUser(userID); err != nil {
		return nil, err
	}

	t := s.clock.Now()
	today := models.FormatDate(t)

	record, err := s.store.Attendance.GetByUserAndDate(userID, today)
	if err != nil {
		return nil, fmt.Errorf("failed to get attendance record: %w", err)
	}
	if record == nil {
		s.logger.WithFields(logrus.Fields{
			"user_id": userID,
			"date":    today,
		}).Warn("Check-out without check-in ignored")
		return nil, nil
	}

	record.CheckOut = models.FormatClock(t)
	if err := s.store.Attendance.Update(record); err != nil {
		return nil, fmt.Errorf("failed to update attendance record: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"user_id":   userID,
		"date":      today,
		"check_out": record.CheckOut,
		"worked":    record.Duration(),
	}).Info("User checked out")
	return record, nil
}

// TodayRecord returns the record of userID for today, or nil.
func (s *AttendanceService) TodayRecord(userID string) (*models.AttendanceRecord, error) {
	record, err := s.store.Attendance.GetByUserAndDate(userID, s.Today())
	if err != nil {
		return nil, fmt.Errorf("failed to get attendance record: %w", err)
	}
	return record, nil
}

func (s *AttendanceService) ListAttendance(filter repository.AttendanceFilter) ([]*models.AttendanceRecord, error) {
	records, err := s.store.Attendance.List(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	return records, nil
}

func (s *AttendanceService) requireUser(userID string) error {
	exists, err := s.store.Users.Exists(userID)
	if err != nil {
		return fmt.Errorf("failed to check user: %w", err)
	}
	if !exists {
		return notFound("user", userID)
	}
	return nil
}
