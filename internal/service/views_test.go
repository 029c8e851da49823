package service

import (
	"testing"
	"time"

	"teamtime-bot/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPresentToday(t *testing.T) {
	env := newTestEnv(t)

	present, err := env.views.IsPresentToday("1")
	require.NoError(t, err)
	assert.True(t, present, "seeded att2 is on 2024-05-21")

	present, err = env.views.IsPresentToday("2")
	require.NoError(t, err)
	assert.False(t, present)

	_, err = env.attendance.CheckIn("2")
	require.NoError(t, err)

	ids, err := env.views.PresentToday()
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"1": true, "2": true}, ids)
}

func TestUpcomingApprovedHolidays(t *testing.T) {
	env := newTestEnv(t)

	later, err := env.requests.Submit(SubmitRequestInput{UserID: "2", Type: models.RequestTypeHoliday, StartDate: "2024-08-05", EndDate: "2024-08-09"})
	require.NoError(t, err)
	_, err = env.requests.Adjudicate(later.ID, models.RequestStatusApproved)
	require.NoError(t, err)

	past, err := env.requests.Submit(SubmitRequestInput{UserID: "2", Type: models.RequestTypeHoliday, StartDate: "2024-05-01", EndDate: "2024-05-02"})
	require.NoError(t, err)
	_, err = env.requests.Adjudicate(past.ID, models.RequestStatusApproved)
	require.NoError(t, err)

	_, err = env.requests.Submit(SubmitRequestInput{UserID: "1", Type: models.RequestTypeHoliday, StartDate: "2024-09-01", EndDate: "2024-09-01"})
	require.NoError(t, err)

	holidays, err := env.views.UpcomingApprovedHolidays()
	require.NoError(t, err)
	require.Len(t, holidays, 2)
	assert.Equal(t, "req1", holidays[0].ID)
	assert.Equal(t, later.ID, holidays[1].ID)

	env.clock.Set(time.Date(2024, 6, 11, 9, 0, 0, 0, time.UTC))
	holidays, err = env.views.UpcomingApprovedHolidays()
	require.NoError(t, err)
	require.Len(t, holidays, 1)
	assert.Equal(t, later.ID, holidays[0].ID)
}

func TestRecentRequests(t *testing.T) {
	env := newTestEnv(t)

	var ids []string
	for i := 0; i < 4; i++ {
		env.clock.Advance(time.Minute)
		req, err := env.requests.Submit(SubmitRequestInput{UserID: "1", Type: models.RequestTypeNotJustified, StartDate: "2024-05-21", EndDate: "2024-05-21"})
		require.NoError(t, err)
		ids = append(ids, req.ID)
	}

	recent, err := env.views.RecentRequests("1", RecentRequestsLimit)
	require.NoError(t, err)
	require.Len(t, recent, RecentRequestsLimit)
	assert.Equal(t, []string{ids[3], ids[2], ids[1]}, []string{recent[0].ID, recent[1].ID, recent[2].ID})
}

func TestDashboardStats(t *testing.T) {
	env := newTestEnv(t)

	stats, err := env.views.DashboardStats()
	require.NoError(t, err)
	assert.Equal(t, &DashboardStats{TotalEmployees: 2, PresentToday: 1, PendingRequests: 1}, stats)

	_, err = env.requests.Adjudicate("req2", models.RequestStatusDeclined)
	require.NoError(t, err)

	stats, err = env.views.DashboardStats()
	require.NoError(t, err)
	assert.Equal(t, 0, stats.PendingRequests)
	assert.Equal(t, "📊 Team dashboard\n\n👥 Staff present today: 1 / 2\n⏳ Pending requests: 0", FormatDashboardStats(stats))
}

func TestTeamOverview(t *testing.T) {
	env := newTestEnv(t)

	team, err := env.views.TeamOverview("")
	require.NoError(t, err)
	require.Len(t, team, 2)
	assert.Equal(t, "John Doe", team[0].User.Name)
	assert.True(t, team[0].PresentToday)
	assert.Equal(t, "Jane Smith", team[1].User.Name)
	assert.False(t, team[1].PresentToday)

	one, err := env.views.TeamOverview("2")
	require.NoError(t, err)
	require.Len(t, one, 1)
	assert.Equal(t, 15, one[0].User.HolidayBalance)

	_, err = env.views.TeamOverview("42")
	assert.ErrorIs(t, err, ErrNotFound)

	text := FormatTeamOverview(team)
	assert.Contains(t, text, "John Doe (1) 🟢 Present")
	assert.Contains(t, text, "🏖 15 days | ⏱ 2h | 🤒 0 sick days")
}

func TestWeeklyReport(t *testing.T) {
	env := newTestEnv(t)

	week, err := env.views.WeeklyReport("1")
	require.NoError(t, err)
	assert.Equal(t, "2024-05-15", week.From)
	assert.Equal(t, "2024-05-21", week.To)
	assert.Equal(t, "17h 23m", week.Total())

	_, err = env.views.WeeklyReport("42")
	assert.ErrorIs(t, err, ErrNotFound)
}
