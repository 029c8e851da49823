package service

import (
	"testing"
	"time"

	"teamtime-bot/internal/clock"
	"teamtime-bot/internal/database"
	"teamtime-bot/internal/models"
	"teamtime-bot/internal/repository"
	"teamtime-bot/internal/seed"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	store      *repository.Store
	clock      *clock.Fixed
	users      *UserService
	requests   *RequestService
	attendance *AttendanceService
	views      *ViewService
}

// newTestEnv returns services over a freshly seeded in-memory store with the
// clock at 2024-05-21 10:00 UTC.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := database.Open(database.MemoryURL(uuid.NewString()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	store, err := repository.NewStore(db)
	require.NoError(t, err)

	fixture, err := seed.Load("")
	require.NoError(t, err)
	_, err = seed.Apply(store, fixture)
	require.NoError(t, err)

	sessions, err := repository.NewGormSessionRepository(db)
	require.NoError(t, err)

	clk := clock.NewFixed(time.Date(2024, 5, 21, 10, 0, 0, 0, time.UTC))
	return &testEnv{
		store:      store,
		clock:      clk,
		users:      NewUserService(store, sessions),
		requests:   NewRequestService(store, clk),
		attendance: NewAttendanceService(store, clk),
		views:      NewViewService(store, clk),
	}
}

func (e *testEnv) user(t *testing.T, id string) *models.User {
	t.Helper()
	user, err := e.store.Users.GetByID(id)
	require.NoError(t, err)
	require.NotNil(t, user)
	return user
}

func hours(h float64) *float64 {
	return &h
}
