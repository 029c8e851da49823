package service

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"

	"teamtime-bot/internal/clock"
	"teamtime-bot/internal/models"
	"teamtime-bot/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// MaxHoursPerDay caps extra hours per calendar day of a request.
const MaxHoursPerDay = 24

// SubmitRequestInput is what an employee fills in to ask for time.
type SubmitRequestInput struct {
	UserID    string   `json:"userId" validate:"required"`
	Type      string   `json:"type" validate:"required,oneof=holiday sick-leave extra-hours-earning extra-hours-usage not-justified"`
	StartDate string   `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate   string   `json:"endDate" validate:"required,datetime=2006-01-02"`
	Hours     *float64 `json:"hours,omitempty" validate:"omitempty,gt=0,lte=744"`
	Reason    string   `json:"reason,omitempty" validate:"max=500"`
}

type RequestService struct {
	store    *repository.Store
	clock    clock.Clock
	validate *validator.Validate
	logger   *logrus.Logger
}

func NewRequestService(store *repository.Store, clk clock.Clock) *RequestService {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &RequestService{
		store:    store,
		clock:    clk,
		validate: v,
		logger:   newLogger(),
	}
}

// Submit stores a new pending request for in.UserID.
func (s *RequestService) Submit(in SubmitRequestInput) (*models.TimeRequest, error) {
	if !models.IsExtraHoursType(in.Type) {
		in.Hours = nil
	}

	if err := s.validateInput(in); err != nil {
		s.logger.WithFields(logrus.Fields{
			"user_id": in.UserID,
			"type":    in.Type,
			"error":   err.Error(),
		}).Warn("Time request rejected")
		return nil, err
	}

	user, err := s.store.Users.GetByID(in.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, notFound("user", in.UserID)
	}

	req := &models.TimeRequest{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		UserName:  user.Name,
		Type:      in.Type,
		StartDate: in.StartDate,
		EndDate:   in.EndDate,
		Hours:     in.Hours,
		Status:    models.RequestStatusPending,
		Reason:    strings.TrimSpace(in.Reason),
		CreatedAt: s.clock.Now().UTC(),
	}

	if err := s.store.Requests.Create(req); err != nil {
		return nil, fmt.Errorf("failed to create time request: %w", err)
	}
	return req, nil
}

func (s *RequestService) validateInput(in SubmitRequestInput) error {
	if err := s.validate.Struct(in); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fieldError(verrs[0])
		}
		return invalid("", "%v", err)
	}

	days, err := models.DateSpan(in.StartDate, in.EndDate)
	if err != nil {
		return invalid("startDate", "%v", err)
	}
	if days < 1 {
		return invalid("endDate", "must not be before startDate")
	}

	if !models.IsExtraHoursType(in.Type) {
		return nil
	}
	if in.Hours == nil || math.IsNaN(*in.Hours) || math.IsInf(*in.Hours, 0) || *in.Hours <= 0 {
		return invalid("hours", "a positive number of hours is required for %s", in.Type)
	}
	if limit := float64(days * MaxHoursPerDay); *in.Hours > limit {
		return invalid("hours", "must be at most %s for %d day(s)", FormatHours(limit), days)
	}
	return nil
}

func fieldError(fe validator.FieldError) error {
	switch fe.Tag() {
	case "required":
		return invalid(fe.Field(), "is required")
	case "oneof":
		return invalid(fe.Field(), "must be one of: %s", strings.ReplaceAll(fe.Param(), " ", ", "))
	case "datetime":
		return invalid(fe.Field(), "must be a date in YYYY-MM-DD format")
	case "gt":
		return invalid(fe.Field(), "must be greater than %s", fe.Param())
	case "lte":
		return invalid(fe.Field(), "must be at most %s", fe.Param())
	case "max":
		return invalid(fe.Field(), "must be at most %s characters", fe.Param())
	}
	return invalid(fe.Field(), "failed validation for '%s'", fe.Tag())
}

// Adjudicate resolves a pending request. Approval applies the balance
// mutation of the request type to its owner in the same transaction as
// the status change.
func (s *RequestService) Adjudicate(requestID, decision string) (*models.TimeRequest, error) {
	if decision != models.RequestStatusApproved && decision != models.RequestStatusDeclined {
		return nil, invalid("decision", "must be %s or %s", models.RequestStatusApproved, models.RequestStatusDeclined)
	}

	var resolved *models.TimeRequest
	err := s.store.Transaction(func(tx *repository.Store) error {
		req, err := tx.Requests.GetByID(requestID)
		if err != nil {
			return fmt.Errorf("failed to get time request: %w", err)
		}
		if req == nil {
			return notFound("request", requestID)
		}
		if !req.IsPending() {
			return fmt.Errorf("request %q is already %s: %w", requestID, req.Status, ErrInvalidStateTransition)
		}

		user, err := tx.Users.GetByID(req.UserID)
		if err != nil {
			return fmt.Errorf("failed to get user: %w", err)
		}
		if user == nil {
			return notFound("user", req.UserID)
		}

		if decision == models.RequestStatusApproved {
			if err := ApplyApproval(user, req); err != nil {
				return err
			}
			if err := tx.Users.Update(user); err != nil {
				return fmt.Errorf("failed to update balances: %w", err)
			}
		}

		changed, err := tx.Requests.TransitionStatus(req.ID, models.RequestStatusPending, decision)
		if err != nil {
			return fmt.Errorf("failed to update time request: %w", err)
		}
		if !changed {
			return fmt.Errorf("request %q was resolved concurrently: %w", requestID, ErrInvalidStateTransition)
		}

		req.Status = decision
		resolved = req
		return nil
	})
	if err != nil {
		s.logger.WithFields(logrus.Fields{
			"request_id": requestID,
			"decision":   decision,
			"error":      err.Error(),
		}).Warn("Adjudication failed")
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"request_id": resolved.ID,
		"user_id":    resolved.UserID,
		"type":       resolved.Type,
		"status":     resolved.Status,
	}).Info("Time request adjudicated")
	return resolved, nil
}

func (s *RequestService) GetRequest(requestID string) (*models.TimeRequest, error) {
	req, err := s.store.Requests.GetByID(requestID)
	if err != nil {
		return nil, fmt.Errorf("failed to get time request: %w", err)
	}
	if req == nil {
		return nil, notFound("request", requestID)
	}
	return req, nil
}

// ListRequests returns requests matching filter, newest first.
func (s *RequestService) ListRequests(filter repository.RequestFilter) ([]*models.TimeRequest, error) {
	requests, err := s.store.Requests.List(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list time requests: %w", err)
	}
	return requests, nil
}
