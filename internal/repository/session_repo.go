package repository

import (
	"encoding/json"
	"errors"
	"fmt"

	"teamtime-bot/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SessionRepository persists the logged-in user under a session key.
type SessionRepository interface {
	Load(key string) (*models.User, error)
	Save(key string, user *models.User) error
	Clear(key string) error
}

type GormSessionRepository struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewGormSessionRepository(db *gorm.DB) (*GormSessionRepository, error) {
	logger := newLogger()

	if err := db.AutoMigrate(&models.SessionSlot{}); err != nil {
		logger.WithError(err).Error("Failed to auto-migrate session_slots table")
		return nil, err
	}

	return &GormSessionRepository{db: db, logger: logger}, nil
}

// Load returns the user stored under key, or nil when the slot is empty.
func (r *GormSessionRepository) Load(key string) (*models.User, error) {
	var slot models.SessionSlot
	result := r.db.Where("slot_key = ?", key).First(&slot)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		r.logger.WithField("key", key).Debug("Session slot is empty")
		return nil, nil
	}
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to read session slot")
		return nil, result.Error
	}

	var user models.User
	if err := json.Unmarshal([]byte(slot.Payload), &user); err != nil {
		r.logger.WithError(err).WithField("key", key).Warn("Corrupt session slot")
		return nil, fmt.Errorf("decode session slot %q: %w", key, err)
	}
	return &user, nil
}

func (r *GormSessionRepository) Save(key string, user *models.User) error {
	payload, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode session slot %q: %w", key, err)
	}

	slot := models.SessionSlot{Key: key, Payload: string(payload)}
	err = r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "slot_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
	}).Create(&slot).Error
	if err != nil {
		r.logger.WithError(err).Error("Failed to write session slot")
		return err
	}

	r.logger.WithFields(logrus.Fields{
		"key":     key,
		"user_id": user.ID,
	}).Info("Session slot written")
	return nil
}

func (r *GormSessionRepository) Clear(key string) error {
	if err := r.db.Where("slot_key = ?", key).Delete(&models.SessionSlot{}).Error; err != nil {
		r.logger.WithError(err).Error("Failed to clear session slot")
		return err
	}

	r.logger.WithField("key", key).Info("Session slot cleared")
	return nil
}
