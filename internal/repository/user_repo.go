package repository

import (
	"errors"

	"teamtime-bot/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(user *models.User) error
	Update(user *models.User) error
	GetByID(id string) (*models.User, error)
	GetAll() ([]*models.User, error)
	GetByRole(role string) ([]*models.User, error)
	Exists(id string) (bool, error)
	WithTx(tx *gorm.DB) UserRepository
}

type GormUserRepository struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewGormUserRepository(db *gorm.DB) (*GormUserRepository, error) {
	logger := newLogger()

	// Create the table on first start.
	if err := db.AutoMigrate(&models.User{}); err != nil {
		logger.WithError(err).Error("Failed to auto-migrate users table")
		return nil, err
	}

	return &GormUserRepository{db: db, logger: logger}, nil
}

func (r *GormUserRepository) WithTx(tx *gorm.DB) UserRepository {
	return &GormUserRepository{db: tx, logger: r.logger}
}

func (r *GormUserRepository) Create(user *models.User) error {
	exists, err := r.Exists(user.ID)
	if err != nil {
		return err
	}
	if exists {
		r.logger.WithField("user_id", user.ID).Warn("User already exists")
		return ErrAlreadyExists
	}

	if err := r.db.Create(user).Error; err != nil {
		r.logger.WithError(err).Error("Failed to create user")
		return err
	}

	r.logger.WithFields(logrus.Fields{
		"user_id": user.ID,
		"role":    user.Role,
	}).Info("User created")
	return nil
}

// Update writes every column of user, zero balances included.
func (r *GormUserRepository) Update(user *models.User) error {
	result := r.db.Model(&models.User{}).
		Where("id = ?", user.ID).
		Select("*").
		Updates(user)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to update user")
		return result.Error
	}
	if result.RowsAffected == 0 {
		r.logger.WithField("user_id", user.ID).Warn("User not found for update")
		return ErrRecordMissing
	}

	r.logger.WithFields(logrus.Fields{
		"user_id":            user.ID,
		"holiday_balance":    user.HolidayBalance,
		"extra_hours_wallet": user.ExtraHoursWallet,
		"sick_days_taken":    user.SickDaysTaken,
	}).Info("User updated")
	return nil
}

func (r *GormUserRepository) GetByID(id string) (*models.User, error) {
	var user models.User
	result := r.db.Where("id = ?", id).First(&user)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		r.logger.WithField("user_id", id).Debug("User not found")
		return nil, nil
	}
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get user by ID")
		return nil, result.Error
	}

	return &user, nil
}

func (r *GormUserRepository) GetAll() ([]*models.User, error) {
	var users []*models.User
	if err := r.db.Order("id ASC").Find(&users).Error; err != nil {
		r.logger.WithError(err).Error("Failed to list users")
		return nil, err
	}
	return users, nil
}

func (r *GormUserRepository) GetByRole(role string) ([]*models.User, error) {
	var users []*models.User
	if err := r.db.Where("role = ?", role).Order("id ASC").Find(&users).Error; err != nil {
		r.logger.WithError(err).Error("Failed to list users by role")
		return nil, err
	}
	return users, nil
}

func (r *GormUserRepository) Exists(id string) (bool, error) {
	var count int64
	if err := r.db.Model(&models.User{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
