package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"teamtime-bot/internal/models"
	"teamtime-bot/internal/report"
	"teamtime-bot/internal/repository"
	"teamtime-bot/internal/service"
	"teamtime-bot/internal/transport/http/api"
	"teamtime-bot/internal/transport/http/middleware"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
)

const maxBodyBytes = 64 * 1024

type Handler struct {
	Users      *service.UserService
	Requests   *service.RequestService
	Attendance *service.AttendanceService
	Views      *service.ViewService
}

func NewHandler(users *service.UserService, requests *service.RequestService, attendance *service.AttendanceService, views *service.ViewService) *Handler {
	return &Handler{Users: users, Requests: requests, Attendance: attendance, Views: views}
}

// NewRouter wires the JSON API under /api/v1 and a health probe.
func NewRouter(h *Handler) http.Handler {
	router := chi.NewRouter()
	router.Use(chimw.RequestID)
	router.Use(middleware.Logger)
	router.Use(chimw.Recoverer)

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Profile(h.Users))
		h.RegisterRoutes(r)
	})
	return router
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/users", h.handleListUsers)
	r.Get("/dashboard", h.handleDashboard)

	r.Route("/requests", func(r chi.Router) {
		r.Get("/", h.handleListRequests)
		r.Post("/", h.handleCreateRequest)
		r.Post("/{requestID}/approve", h.handleAdjudicate(models.RequestStatusApproved))
		r.Post("/{requestID}/decline", h.handleAdjudicate(models.RequestStatusDeclined))
	})

	r.Route("/attendance", func(r chi.Router) {
		r.Get("/", h.handleListAttendance)
		r.Post("/check-in", h.handleCheckIn)
		r.Post("/check-out", h.handleCheckOut)
	})

	r.Get("/holidays/upcoming", h.handleUpcomingHolidays)
	r.Get("/reports/weekly", h.handleWeeklyReport)
}

func requestID(r *http.Request) string {
	return chimw.GetReqID(r.Context())
}

// writeError maps service errors onto status codes.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *service.ValidationError

	switch {
	case errors.As(err, &verr):
		api.FailField(w, http.StatusUnprocessableEntity, "validation_error", verr.Field, verr.Message, requestID(r))
	case errors.Is(err, service.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", err.Error(), requestID(r))
	case errors.Is(err, service.ErrInvalidStateTransition):
		api.Fail(w, http.StatusConflict, "invalid_state", err.Error(), requestID(r))
	default:
		logrus.WithError(err).WithFields(logrus.Fields{
			"path":       r.URL.Path,
			"request_id": requestID(r),
		}).Error("Request failed")
		api.Fail(w, http.StatusInternalServerError, "internal_error", "internal error", requestID(r))
	}
}

func (h *Handler) requireUser(w http.ResponseWriter, r *http.Request) (*models.User, bool) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "select a profile with the "+middleware.UserHeader+" header", requestID(r))
		return nil, false
	}
	return user, true
}

func (h *Handler) requireManager(w http.ResponseWriter, r *http.Request) (*models.User, bool) {
	user, ok := h.requireUser(w, r)
	if !ok {
		return nil, false
	}
	if !user.IsManager() {
		api.Fail(w, http.StatusForbidden, "forbidden", "manager role required", requestID(r))
		return nil, false
	}
	return user, true
}

func (h *Handler) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.Users.ListUsers()
	if err != nil {
		writeError(w, r, err)
		return
	}
	api.Success(w, users, requestID(r))
}

type employeeDashboard struct {
	User           *models.User             `json:"user"`
	Today          *models.AttendanceRecord `json:"today"`
	RecentRequests []*models.TimeRequest    `json:"recentRequests"`
}

type managerDashboard struct {
	User            *models.User            `json:"user"`
	Stats           *service.DashboardStats `json:"stats"`
	Team            []service.TeamMember    `json:"team"`
	PendingRequests []*models.TimeRequest   `json:"pendingRequests"`
}

func (h *Handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	user, ok := h.requireUser(w, r)
	if !ok {
		return
	}

	if user.IsManager() {
		stats, err := h.Views.DashboardStats()
		if err != nil {
			writeError(w, r, err)
			return
		}
		team, err := h.Views.TeamOverview("")
		if err != nil {
			writeError(w, r, err)
			return
		}
		pending, err := h.Views.PendingRequests()
		if err != nil {
			writeError(w, r, err)
			return
		}
		api.Success(w, managerDashboard{User: user, Stats: stats, Team: team, PendingRequests: pending}, requestID(r))
		return
	}

	today, err := h.Attendance.TodayRecord(user.ID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	recent, err := h.Views.RecentRequests(user.ID, service.RecentRequestsLimit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	api.Success(w, employeeDashboard{User: user, Today: today, RecentRequests: recent}, requestID(r))
}

func (h *Handler) handleListRequests(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	requests, err := h.Requests.ListRequests(repository.RequestFilter{
		UserID: q.Get("userId"),
		Status: q.Get("status"),
		Type:   q.Get("type"),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	api.Success(w, requests, requestID(r))
}

func (h *Handler) handleCreateRequest(w http.ResponseWriter, r *http.Request) {
	user, ok := h.requireUser(w, r)
	if !ok {
		return
	}

	var payload service.SubmitRequestInput
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "bad_request", "invalid request payload", requestID(r))
		return
	}
	payload.UserID = user.ID

	req, err := h.Requests.Submit(payload)
	if err != nil {
		writeError(w, r, err)
		return
	}
	api.Created(w, req, requestID(r))
}

func (h *Handler) handleAdjudicate(decision string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := h.requireManager(w, r); !ok {
			return
		}

		req, err := h.Requests.Adjudicate(chi.URLParam(r, "requestID"), decision)
		if err != nil {
			writeError(w, r, err)
			return
		}
		api.Success(w, req, requestID(r))
	}
}

func (h *Handler) handleListAttendance(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	records, err := h.Attendance.ListAttendance(repository.AttendanceFilter{
		UserID: q.Get("userId"),
		Date:   q.Get("date"),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	api.Success(w, records, requestID(r))
}

func (h *Handler) handleCheckIn(w http.ResponseWriter, r *http.Request) {
	user, ok := h.requireUser(w, r)
	if !ok {
		return
	}

	record, err := h.Attendance.CheckIn(user.ID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	api.Success(w, record, requestID(r))
}

// handleCheckOut answers 200 with a null record when there was nothing to close.
func (h *Handler) handleCheckOut(w http.ResponseWriter, r *http.Request) {
	user, ok := h.requireUser(w, r)
	if !ok {
		return
	}

	record, err := h.Attendance.CheckOut(user.ID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	api.Success(w, map[string]any{"record": record}, requestID(r))
}

func (h *Handler) handleUpcomingHolidays(w http.ResponseWriter, r *http.Request) {
	holidays, err := h.Views.UpcomingApprovedHolidays()
	if err != nil {
		writeError(w, r, err)
		return
	}
	api.Success(w, holidays, requestID(r))
}

var reportContentTypes = map[string]string{
	report.FormatXLSX: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	report.FormatPDF:  "application/pdf",
}

func (h *Handler) handleWeeklyReport(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	format := q.Get("format")
	if format == "" {
		format = report.FormatXLSX
	}
	contentType, ok := reportContentTypes[format]
	if !ok {
		api.Fail(w, http.StatusBadRequest, "bad_request", "format must be xlsx or pdf", requestID(r))
		return
	}

	user, ok := h.requireUser(w, r)
	if !ok {
		return
	}
	userID := q.Get("userId")
	if userID == "" {
		userID = user.ID
	}
	if userID != user.ID && !user.IsManager() {
		api.Fail(w, http.StatusForbidden, "forbidden", "manager role required", requestID(r))
		return
	}

	week, err := h.Views.WeeklyReport(userID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := report.Write(&buf, week, format); err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", week.Filename(format)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
