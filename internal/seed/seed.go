// Package seed loads the initial users, requests and attendance records.
package seed

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"teamtime-bot/internal/models"
	"teamtime-bot/internal/repository"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

//go:embed seed.yaml
var defaultFixture []byte

type Fixture struct {
	Users      []User       `yaml:"users"`
	Requests   []Request    `yaml:"requests"`
	Attendance []Attendance `yaml:"attendance"`
}

type User struct {
	ID               string  `yaml:"id"`
	Name             string  `yaml:"name"`
	Role             string  `yaml:"role"`
	HolidayBalance   int     `yaml:"holidayBalance"`
	ExtraHoursWallet float64 `yaml:"extraHoursWallet"`
	SickDaysTaken    int     `yaml:"sickDaysTaken"`
}

type Request struct {
	ID        string   `yaml:"id"`
	UserID    string   `yaml:"userId"`
	UserName  string   `yaml:"userName"`
	Type      string   `yaml:"type"`
	StartDate string   `yaml:"startDate"`
	EndDate   string   `yaml:"endDate"`
	Hours     *float64 `yaml:"hours,omitempty"`
	Status    string   `yaml:"status"`
	Reason    string   `yaml:"reason,omitempty"`
	CreatedAt string   `yaml:"createdAt"`
}

type Attendance struct {
	ID       string `yaml:"id"`
	UserID   string `yaml:"userId"`
	Date     string `yaml:"date"`
	CheckIn  string `yaml:"checkIn,omitempty"`
	CheckOut string `yaml:"checkOut,omitempty"`
}

// Result counts what Apply inserted and skipped.
type Result struct {
	Users      int
	Requests   int
	Attendance int
	Skipped    int
}

// Load reads a fixture from path, or the embedded default when path is empty.
func Load(path string) (*Fixture, error) {
	data := defaultFixture
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read seed file: %w", err)
		}
		data = raw
	}
	return Parse(data)
}

func Parse(data []byte) (*Fixture, error) {
	var fixture Fixture
	if err := yaml.Unmarshal(data, &fixture); err != nil {
		return nil, fmt.Errorf("failed to unmarshal seed YAML: %w", err)
	}
	if err := fixture.validate(); err != nil {
		return nil, err
	}
	return &fixture, nil
}

func (f *Fixture) validate() error {
	users := make(map[string]bool, len(f.Users))
	for _, u := range f.Users {
		if u.ID == "" || u.Name == "" {
			return fmt.Errorf("seed user %q: id and name are required", u.ID)
		}
		if !models.IsValidRole(u.Role) {
			return fmt.Errorf("seed user %q: unknown role %q", u.ID, u.Role)
		}
		users[u.ID] = true
	}

	for _, r := range f.Requests {
		if !users[r.UserID] {
			return fmt.Errorf("seed request %q: unknown user %q", r.ID, r.UserID)
		}
		if !models.IsValidRequestType(r.Type) {
			return fmt.Errorf("seed request %q: unknown type %q", r.ID, r.Type)
		}
		switch r.Status {
		case models.RequestStatusPending, models.RequestStatusApproved, models.RequestStatusDeclined:
		default:
			return fmt.Errorf("seed request %q: unknown status %q", r.ID, r.Status)
		}
		if _, err := models.DateSpan(r.StartDate, r.EndDate); err != nil {
			return fmt.Errorf("seed request %q: %w", r.ID, err)
		}
		if _, err := time.Parse(time.RFC3339, r.CreatedAt); err != nil {
			return fmt.Errorf("seed request %q: invalid createdAt: %w", r.ID, err)
		}
	}

	for _, a := range f.Attendance {
		if !users[a.UserID] {
			return fmt.Errorf("seed attendance %q: unknown user %q", a.ID, a.UserID)
		}
		if _, err := models.ParseDate(a.Date); err != nil {
			return fmt.Errorf("seed attendance %q: %w", a.ID, err)
		}
	}
	return nil
}

// Apply inserts the fixture into store. Entities whose id already exists are
// left untouched, so applying twice is harmless.
func Apply(store *repository.Store, f *Fixture) (Result, error) {
	var res Result

	err := store.Transaction(func(tx *repository.Store) error {
		for _, u := range f.Users {
			exists, err := tx.Users.Exists(u.ID)
			if err != nil {
				return err
			}
			if exists {
				res.Skipped++
				continue
			}
			if err := tx.Users.Create(&models.User{
				ID:               u.ID,
				Name:             u.Name,
				Role:             u.Role,
				HolidayBalance:   u.HolidayBalance,
				ExtraHoursWallet: u.ExtraHoursWallet,
				SickDaysTaken:    u.SickDaysTaken,
			}); err != nil {
				return fmt.Errorf("seed user %q: %w", u.ID, err)
			}
			res.Users++
		}

		for _, r := range f.Requests {
			exists, err := tx.Requests.Exists(r.ID)
			if err != nil {
				return err
			}
			if exists {
				res.Skipped++
				continue
			}
			createdAt, _ := time.Parse(time.RFC3339, r.CreatedAt)
			req := &models.TimeRequest{
				ID:        r.ID,
				UserID:    r.UserID,
				UserName:  r.UserName,
				Type:      r.Type,
				StartDate: r.StartDate,
				EndDate:   r.EndDate,
				Status:    r.Status,
				Reason:    r.Reason,
				CreatedAt: createdAt.UTC(),
			}
			if req.IsExtraHours() {
				req.Hours = r.Hours
			}
			if err := tx.Requests.Create(req); err != nil {
				return fmt.Errorf("seed request %q: %w", r.ID, err)
			}
			res.Requests++
		}

		for _, a := range f.Attendance {
			exists, err := tx.Attendance.Exists(a.ID)
			if err != nil {
				return err
			}
			if exists {
				res.Skipped++
				continue
			}
			if err := tx.Attendance.Create(&models.AttendanceRecord{
				ID:       a.ID,
				UserID:   a.UserID,
				Date:     a.Date,
				CheckIn:  a.CheckIn,
				CheckOut: a.CheckOut,
			}); err != nil {
				return fmt.Errorf("seed attendance %q: %w", a.ID, err)
			}
			res.Attendance++
		}
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	logrus.WithFields(logrus.Fields{
		"users":      res.Users,
		"requests":   res.Requests,
		"attendance": res.Attendance,
		"skipped":    res.Skipped,
	}).Info("Seed data applied")
	return res, nil
}
