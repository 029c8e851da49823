package repository

import (
	"errors"

	"teamtime-bot/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// AttendanceFilter narrows an attendance listing. Dates are YYYY-MM-DD and
// the From/To bounds are inclusive.
type AttendanceFilter struct {
	UserID string
	Date   string
	From   string
	To     string
	Limit  int
}

type AttendanceRepository interface {
	Create(record *models.AttendanceRecord) error
	Update(record *models.AttendanceRecord) error
	GetByUserAndDate(userID, date string) (*models.AttendanceRecord, error)
	List(filter AttendanceFilter) ([]*models.AttendanceRecord, error)
	UserIDsByDate(date string) ([]string, error)
	Exists(id string) (bool, error)
	WithTx(tx *gorm.DB) AttendanceRepository
}

type GormAttendanceRepository struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewGormAttendanceRepository(db *gorm.DB) (*GormAttendanceRepository, error) {
	logger := newLogger()

	if err := db.AutoMigrate(&models.AttendanceRecord{}); err != nil {
		logger.WithError(err).Error("Failed to auto-migrate attendance_records table")
		return nil, err
	}

	logger.Debug("Attendance repository initialized")
	return &GormAttendanceRepository{db: db, logger: logger}, nil
}

func (r *GormAttendanceRepository) WithTx(tx *gorm.DB) AttendanceRepository {
	return &GormAttendanceRepository{db: tx, logger: r.logger}
}

func (r *GormAttendanceRepository) Create(record *models.AttendanceRecord) error {
	r.logger.WithFields(logrus.Fields{
		"user_id": record.UserID,
		"date":    record.Date,
	}).Info("Creating attendance record")

	existing, err := r.GetByUserAndDate(record.UserID, record.Date)
	if err != nil {
		return err
	}
	if existing != nil {
		r.logger.WithFields(logrus.Fields{
			"user_id": record.UserID,
			"date":    record.Date,
		}).Warn("Attendance record already exists for this date")
		return ErrAlreadyExists
	}

	if err := r.db.Create(record).Error; err != nil {
		r.logger.WithError(err).Error("Failed to create attendance record")
		return err
	}

	r.logger.WithFields(logrus.Fields{
		"id":       record.ID,
		"check_in": record.CheckIn,
	}).Info("Attendance record created successfully")
	return nil
}

func (r *GormAttendanceRepository) Update(record *models.AttendanceRecord) error {
	result := r.db.Model(&models.AttendanceRecord{}).
		Where("id = ?", record.ID).
		Updates(map[string]interface{}{
			"check_in":  record.CheckIn,
			"check_out": record.CheckOut,
		})
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to update attendance record")
		return result.Error
	}
	if result.RowsAffected == 0 {
		r.logger.WithField("id", record.ID).Warn("Attendance record not found for update")
		return ErrRecordMissing
	}

	r.logger.WithFields(logrus.Fields{
		"id":        record.ID,
		"user_id":   record.UserID,
		"check_out": record.CheckOut,
	}).Info("Attendance record updated successfully")
	return nil
}

func (r *GormAttendanceRepository) GetByUserAndDate(userID, date string) (*models.AttendanceRecord, error) {
	var record models.AttendanceRecord
	result := r.db.Where("user_id = ? AND date = ?", userID, date).First(&record)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		r.logger.WithFields(logrus.Fields{
			"user_id": userID,
			"date":    date,
		}).Debug("Attendance record not found for user/date")
		return nil, nil
	}
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get attendance record by user and date")
		return nil, result.Error
	}

	return &record, nil
}

// List returns matching records, most recent date first.
func (r *GormAttendanceRepository) List(filter AttendanceFilter) ([]*models.AttendanceRecord, error) {
	query := r.db.Model(&models.AttendanceRecord{})
	if filter.UserID != "" {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.Date != "" {
		query = query.Where("date = ?", filter.Date)
	}
	if filter.From != "" {
		query = query.Where("date >= ?", filter.From)
	}
	if filter.To != "" {
		query = query.Where("date <= ?", filter.To)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var records []*models.AttendanceRecord
	if err := query.Order("date DESC").Order("user_id ASC").Find(&records).Error; err != nil {
		r.logger.WithError(err).Error("Failed to list attendance records")
		return nil, err
	}

	r.logger.WithFields(logrus.Fields{
		"user_id": filter.UserID,
		"count":   len(records),
	}).Debug("Retrieved attendance records")
	return records, nil
}

// UserIDsByDate returns the distinct users that have a record on date.
func (r *GormAttendanceRepository) UserIDsByDate(date string) ([]string, error) {
	var ids []string
	err := r.db.Model(&models.AttendanceRecord{}).
		Where("date = ?", date).
		Distinct().
		Order("user_id ASC").
		Pluck("user_id", &ids).Error
	if err != nil {
		r.logger.WithError(err).Error("Failed to get users present on date")
		return nil, err
	}
	return ids, nil
}

func (r *GormAttendanceRepository) Exists(id string) (bool, error) {
	var count int64
	if err := r.db.Model(&models.AttendanceRecord{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
