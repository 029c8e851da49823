package service

import (
	"fmt"
	"strings"

	"teamtime-bot/internal/models"
	"teamtime-bot/internal/repository"

	"github.com/sirupsen/logrus"
)

// DefaultSessionKey is the slot used when a front-end has a single session.
const DefaultSessionKey = "teamtime_user"

// ChatSessionKey returns the session slot of one Telegram chat.
func ChatSessionKey(chatID int64) string {
	return fmt.Sprintf("%s:%d", DefaultSessionKey, chatID)
}

type UserService struct {
	users    repository.UserRepository
	sessions repository.SessionRepository
	logger   *logrus.Logger
}

func NewUserService(store *repository.Store, sessions repository.SessionRepository) *UserService {
	return &UserService{
		users:    store.Users,
		sessions: sessions,
		logger:   newLogger(),
	}
}

// GetUser returns the user with the given id or ErrNotFound.
func (s *UserService) GetUser(userID string) (*models.User, error) {
	user, err := s.users.GetByID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, notFound("user", userID)
	}
	return user, nil
}

func (s *UserService) ListUsers() ([]*models.User, error) {
	users, err := s.users.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (s *UserService) ListEmployees() ([]*models.User, error) {
	users, err := s.users.GetByRole(models.RoleEmployee)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	return users, nil
}

// Login selects the profile userID and remembers it under key.
func (s *UserService) Login(key, userID string) (*models.User, error) {
	user, err := s.GetUser(userID)
	if err != nil {
		s.logger.WithFields(logrus.Fields{
			"key":     key,
			"user_id": userID,
		}).Warn("Login rejected")
		return nil, err
	}

	if err := s.sessions.Save(key, user); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"key":     key,
		"user_id": user.ID,
		"role":    user.Role,
	}).Info("User logged in")
	return user, nil
}

func (s *UserService) Logout(key string) error {
	if err := s.sessions.Clear(key); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	s.logger.WithField("key", key).Info("User logged out")
	return nil
}

// Current returns the logged-in user for key, or nil when nobody is logged in.
// The stored snapshot is only used for its id; balances come from the store.
// A slot pointing at a user that no longer exists is cleared.
func (s *UserService) Current(key string) (*models.User, error) {
	snapshot, err := s.sessions.Load(key)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if snapshot == nil {
		return nil, nil
	}

	user, err := s.users.GetByID(snapshot.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		s.logger.WithFields(logrus.Fields{
			"key":     key,
			"user_id": snapshot.ID,
		}).Warn("Session points at unknown user, clearing")
		if err := s.sessions.Clear(key); err != nil {
			return nil, fmt.Errorf("failed to clear session: %w", err)
		}
		return nil, nil
	}
	return user, nil
}

// FormatUserInfo renders the profile card shown by /me.
func (s *UserService) FormatUserInfo(user *models.User) string {
	var sb strings.Builder

	role := "👤 Employee"
	if user.IsManager() {
		role = "👑 Manager"
	}

	sb.WriteString(fmt.Sprintf("%s\n\n", user.Name))
	sb.WriteString(fmt.Sprintf("🆔 ID: %s\n", user.ID))
	sb.WriteString(fmt.Sprintf("Role: %s\n", role))
	sb.WriteString(fmt.Sprintf("🏖 Holiday balance: %d days\n", user.HolidayBalance))
	sb.WriteString(fmt.Sprintf("⏱ Extra hours: %sh\n", FormatHours(user.ExtraHoursWallet)))
	sb.WriteString(fmt.Sprintf("🤒 Sick days taken: %d", user.SickDaysTaken))

	return sb.String()
}
