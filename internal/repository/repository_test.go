package repository

import (
	"errors"
	"testing"
	"time"

	"teamtime-bot/internal/database"
	"teamtime-bot/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open(database.MemoryURL(uuid.NewString()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(newTestDB(t))
	require.NoError(t, err)
	return store
}

func TestUserRepository(t *testing.T) {
	store := newTestStore(t)

	user := &models.User{ID: "1", Name: "John Doe", Role: models.RoleEmployee, HolidayBalance: 20, ExtraHoursWallet: 8, SickDaysTaken: 2}
	require.NoError(t, store.Users.Create(user))
	assert.ErrorIs(t, store.Users.Create(user), ErrAlreadyExists)

	got, err := store.Users.GetByID("1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, *user, *got)

	missing, err := store.Users.GetByID("42")
	require.NoError(t, err)
	assert.Nil(t, missing)

	got.HolidayBalance = 0
	got.ExtraHoursWallet = -1.5
	require.NoError(t, store.Users.Update(got))

	reloaded, err := store.Users.GetByID("1")
	require.NoError(t, err)
	assert.Equal(t, 0, reloaded.HolidayBalance)
	assert.Equal(t, -1.5, reloaded.ExtraHoursWallet)

	assert.ErrorIs(t, store.Users.Update(&models.User{ID: "42"}), ErrRecordMissing)

	require.NoError(t, store.Users.Create(&models.User{ID: "3", Name: "Admin Boss", Role: models.RoleManager}))
	employees, err := store.Users.GetByRole(models.RoleEmployee)
	require.NoError(t, err)
	require.Len(t, employees, 1)
	assert.Equal(t, "1", employees[0].ID)

	all, err := store.Users.GetAll()
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestTimeRequestRepository(t *testing.T) {
	store := newTestStore(t)
	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	hours := 4.0
	requests := []*models.TimeRequest{
		{ID: "req1", UserID: "1", UserName: "John Doe", Type: models.RequestTypeHoliday, StartDate: "2024-06-10", EndDate: "2024-06-14", Status: models.RequestStatusApproved, CreatedAt: base},
		{ID: "req2", UserID: "2", UserName: "Jane Smith", Type: models.RequestTypeExtraHoursUsage, StartDate: "2024-05-20", EndDate: "2024-05-20", Hours: &hours, Status: models.RequestStatusPending, CreatedAt: base.Add(48 * time.Hour)},
		{ID: "req3", UserID: "1", UserName: "John Doe", Type: models.RequestTypeSickLeave, StartDate: "2024-05-02", EndDate: "2024-05-03", Status: models.RequestStatusPending, CreatedAt: base.Add(time.Hour)},
	}
	for _, req := range requests {
		require.NoError(t, store.Requests.Create(req))
	}

	all, err := store.Requests.List(RequestFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"req2", "req3", "req1"}, []string{all[0].ID, all[1].ID, all[2].ID})
	require.NotNil(t, all[0].Hours)
	assert.Equal(t, 4.0, *all[0].Hours)

	mine, err := store.Requests.List(RequestFilter{UserID: "1", Status: models.RequestStatusPending})
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "req3", mine[0].ID)

	upcoming, err := store.Requests.List(RequestFilter{Type: models.RequestTypeHoliday, StartFrom: "2024-06-01"})
	require.NoError(t, err)
	require.Len(t, upcoming, 1)

	pending, err := store.Requests.CountByStatus(models.RequestStatusPending)
	require.NoError(t, err)
	assert.Equal(t, 2, pending)

	changed, err := store.Requests.TransitionStatus("req2", models.RequestStatusPending, models.RequestStatusDeclined)
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = store.Requests.TransitionStatus("req2", models.RequestStatusPending, models.RequestStatusApproved)
	require.NoError(t, err)
	assert.False(t, changed)

	got, err := store.Requests.GetByID("req2")
	require.NoError(t, err)
	assert.Equal(t, models.RequestStatusDeclined, got.Status)

	missing, err := store.Requests.GetByID("nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestAttendanceRepository(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Attendance.Create(&models.AttendanceRecord{ID: "att1", UserID: "1", Date: "2024-05-20", CheckIn: "08:55", CheckOut: "17:05"}))
	require.NoError(t, store.Attendance.Create(&models.AttendanceRecord{ID: "att2", UserID: "1", Date: "2024-05-21", CheckIn: "09:02"}))
	require.NoError(t, store.Attendance.Create(&models.AttendanceRecord{ID: "att3", UserID: "2", Date: "2024-05-21", CheckIn: "09:30"}))

	err := store.Attendance.Create(&models.AttendanceRecord{ID: "dup", UserID: "1", Date: "2024-05-21", CheckIn: "10:00"})
	assert.ErrorIs(t, err, ErrAlreadyExists)

	rec, err := store.Attendance.GetByUserAndDate("1", "2024-05-21")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "09:02", rec.CheckIn)

	rec.CheckOut = "18:15"
	require.NoError(t, store.Attendance.Update(rec))

	rec, err = store.Attendance.GetByUserAndDate("1", "2024-05-21")
	require.NoError(t, err)
	assert.Equal(t, "18:15", rec.CheckOut)

	records, err := store.Attendance.List(AttendanceFilter{UserID: "1"})
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "2024-05-21", records[0].Date)

	week, err := store.Attendance.List(AttendanceFilter{From: "2024-05-21", To: "2024-05-27"})
	require.NoError(t, err)
	assert.Len(t, week, 2)

	present, err := store.Attendance.UserIDsByDate("2024-05-21")
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2"}, present)

	none, err := store.Attendance.GetByUserAndDate("2", "2024-05-20")
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestStoreTransactionRollsBack(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Users.Create(&models.User{ID: "1", Name: "John Doe", Role: models.RoleEmployee, HolidayBalance: 20}))

	boom := errors.New("boom")
	err := store.Transaction(func(tx *Store) error {
		user, err := tx.Users.GetByID("1")
		if err != nil {
			return err
		}
		user.HolidayBalance = 5
		if err := tx.Users.Update(user); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	user, err := store.Users.GetByID("1")
	require.NoError(t, err)
	assert.Equal(t, 20, user.HolidayBalance)
}

func TestSessionRepository(t *testing.T) {
	repo, err := NewGormSessionRepository(newTestDB(t))
	require.NoError(t, err)

	empty, err := repo.Load("teamtime_user")
	require.NoError(t, err)
	assert.Nil(t, empty)

	user := &models.User{ID: "1", Name: "John Doe", Role: models.RoleEmployee, HolidayBalance: 20}
	require.NoError(t, repo.Save("teamtime_user", user))

	user.HolidayBalance = 17
	require.NoError(t, repo.Save("teamtime_user", user))

	loaded, err := repo.Load("teamtime_user")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, 17, loaded.HolidayBalance)

	require.NoError(t, repo.Clear("teamtime_user"))
	cleared, err := repo.Load("teamtime_user")
	require.NoError(t, err)
	assert.Nil(t, cleared)
}
