package repository

import (
	"errors"

	"teamtime-bot/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// RequestFilter narrows a request listing. Empty fields match everything.
type RequestFilter struct {
	UserID string
	Status string
	Type   string
	// StartFrom keeps requests whose StartDate is on or after this YYYY-MM-DD date.
	StartFrom string
	Limit     int
}

type TimeRequestRepository interface {
	Create(req *models.TimeRequest) error
	GetByID(id string) (*models.TimeRequest, error)
	List(filter RequestFilter) ([]*models.TimeRequest, error)
	CountByStatus(status string) (int, error)
	TransitionStatus(id, from, to string) (bool, error)
	Exists(id string) (bool, error)
	WithTx(tx *gorm.DB) TimeRequestRepository
}

type GormTimeRequestRepository struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewGormTimeRequestRepository(db *gorm.DB) (*GormTimeRequestRepository, error) {
	logger := newLogger()

	if err := db.AutoMigrate(&models.TimeRequest{}); err != nil {
		logger.WithError(err).Error("Failed to auto-migrate time_requests table")
		return nil, err
	}

	logger.Debug("Time request repository initialized")
	return &GormTimeRequestRepository{db: db, logger: logger}, nil
}

func (r *GormTimeRequestRepository) WithTx(tx *gorm.DB) TimeRequestRepository {
	return &GormTimeRequestRepository{db: tx, logger: r.logger}
}

func (r *GormTimeRequestRepository) Create(req *models.TimeRequest) error {
	r.logger.WithFields(logrus.Fields{
		"user_id": req.UserID,
		"type":    req.Type,
		"start":   req.StartDate,
		"end":     req.EndDate,
	}).Info("Creating time request")

	exists, err := r.Exists(req.ID)
	if err != nil {
		return err
	}
	if exists {
		r.logger.WithField("id", req.ID).Warn("Time request already exists")
		return ErrAlreadyExists
	}

	if err := r.db.Create(req).Error; err != nil {
		r.logger.WithError(err).Error("Failed to create time request")
		return err
	}

	r.logger.WithFields(logrus.Fields{
		"id":     req.ID,
		"status": req.Status,
	}).Info("Time request created successfully")
	return nil
}

func (r *GormTimeRequestRepository) GetByID(id string) (*models.TimeRequest, error) {
	var req models.TimeRequest
	result := r.db.Where("id = ?", id).First(&req)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		r.logger.WithField("id", id).Debug("Time request not found")
		return nil, nil
	}
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get time request by ID")
		return nil, result.Error
	}

	return &req, nil
}

// List returns matching requests, newest submission first.
func (r *GormTimeRequestRepository) List(filter RequestFilter) ([]*models.TimeRequest, error) {
	query := r.db.Model(&models.TimeRequest{})
	if filter.UserID != "" {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.StartFrom != "" {
		query = query.Where("start_date >= ?", filter.StartFrom)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var requests []*models.TimeRequest
	if err := query.Order("created_at DESC").Order("id ASC").Find(&requests).Error; err != nil {
		r.logger.WithError(err).Error("Failed to list time requests")
		return nil, err
	}

	r.logger.WithFields(logrus.Fields{
		"user_id": filter.UserID,
		"status":  filter.Status,
		"count":   len(requests),
	}).Debug("Retrieved time requests")
	return requests, nil
}

func (r *GormTimeRequestRepository) CountByStatus(status string) (int, error) {
	var count int64
	if err := r.db.Model(&models.TimeRequest{}).Where("status = ?", status).Count(&count).Error; err != nil {
		r.logger.WithError(err).Error("Failed to count time requests")
		return 0, err
	}
	return int(count), nil
}

// TransitionStatus moves a request from one status to another only if it is
// still in the expected status. It reports whether a row changed.
func (r *GormTimeRequestRepository) TransitionStatus(id, from, to string) (bool, error) {
	result := r.db.Model(&models.TimeRequest{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to update time request status")
		return false, result.Error
	}

	r.logger.WithFields(logrus.Fields{
		"id":      id,
		"from":    from,
		"to":      to,
		"changed": result.RowsAffected > 0,
	}).Info("Time request status transition")
	return result.RowsAffected > 0, nil
}

func (r *GormTimeRequestRepository) Exists(id string) (bool, error) {
	var count int64
	if err := r.db.Model(&models.TimeRequest{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
