package service

import (
	"testing"

	"teamtime-bot/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginLogout(t *testing.T) {
	env := newTestEnv(t)
	key := ChatSessionKey(1001)
	assert.Equal(t, "teamtime_user:1001", key)

	current, err := env.users.Current(key)
	require.NoError(t, err)
	assert.Nil(t, current)

	user, err := env.users.Login(key, "3")
	require.NoError(t, err)
	assert.True(t, user.IsManager())

	current, err = env.users.Current(key)
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.Equal(t, "Admin Boss", current.Name)

	other, err := env.users.Current(DefaultSessionKey)
	require.NoError(t, err)
	assert.Nil(t, other)

	require.NoError(t, env.users.Logout(key))
	current, err = env.users.Current(key)
	require.NoError(t, err)
	assert.Nil(t, current)
}

func TestLoginUnknownUser(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.users.Login(DefaultSessionKey, "42")
	assert.ErrorIs(t, err, ErrNotFound)

	current, err := env.users.Current(DefaultSessionKey)
	require.NoError(t, err)
	assert.Nil(t, current)
}

func TestCurrentReflectsLiveBalances(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.users.Login(DefaultSessionKey, "2")
	require.NoError(t, err)

	_, err = env.requests.Adjudicate("req2", models.RequestStatusApproved)
	require.NoError(t, err)

	current, err := env.users.Current(DefaultSessionKey)
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.Equal(t, -2.0, current.ExtraHoursWallet)
}

func TestListUsers(t *testing.T) {
	env := newTestEnv(t)

	users, err := env.users.ListUsers()
	require.NoError(t, err)
	assert.Len(t, users, 3)

	employees, err := env.users.ListEmployees()
	require.NoError(t, err)
	assert.Len(t, employees, 2)

	_, err = env.users.GetUser("42")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFormatUserInfo(t *testing.T) {
	env := newTestEnv(t)

	info := env.users.FormatUserInfo(env.user(t, "1"))
	assert.Contains(t, info, "John Doe")
	assert.Contains(t, info, "👤 Employee")
	assert.Contains(t, info, "🏖 Holiday balance: 20 days")
	assert.Contains(t, info, "⏱ Extra hours: 8h")
	assert.Contains(t, info, "🤒 Sick days taken: 2")
}

func TestFormatRequest(t *testing.T) {
	h := 4.0
	req := &models.TimeRequest{
		ID:        "req2",
		UserName:  "Jane Smith",
		Type:      models.RequestTypeExtraHoursUsage,
		StartDate: "2024-05-20",
		EndDate:   "2024-05-20",
		Hours:     &h,
		Status:    models.RequestStatusPending,
		Reason:    "Doctor appointment",
	}

	assert.Equal(t, "⏳ Extra hours used (4h)\n📅 2024-05-20\n👤 Jane Smith\n💬 Doctor appointment\n🆔 req2", FormatRequest(req))
	assert.Equal(t, "2.5", FormatHours(2.5))
	assert.Equal(t, "-2", FormatHours(-2))
}
