package repository

import (
	"gorm.io/gorm"
)

// Store owns the three entity collections. Services receive a *Store and
// never reach the database directly.
type Store struct {
	db         *gorm.DB
	Users      UserRepository
	Requests   TimeRequestRepository
	Attendance AttendanceRepository
}

func NewStore(db *gorm.DB) (*Store, error) {
	users, err := NewGormUserRepository(db)
	if err != nil {
		return nil, err
	}
	requests, err := NewGormTimeRequestRepository(db)
	if err != nil {
		return nil, err
	}
	attendance, err := NewGormAttendanceRepository(db)
	if err != nil {
		return nil, err
	}

	return &Store{
		db:         db,
		Users:      users,
		Requests:   requests,
		Attendance: attendance,
	}, nil
}

// Transaction runs fn against a Store bound to one database transaction.
// Any error returned by fn rolls every write back.
func (s *Store) Transaction(fn func(tx *Store) error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return fn(&Store{
			db:         tx,
			Users:      s.Users.WithTx(tx),
			Requests:   s.Requests.WithTx(tx),
			Attendance: s.Attendance.WithTx(tx),
		})
	})
}
