package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sadhanaAPI/internal/types/session"
)

func TestGetCalendar_ZeroFillsMonth(t *testing.T) {
	pool := setupTestDB(t)

	clerkID := "user_test_cal_" + time.Now().Format("20060102150405")
	defer cleanupTestUser(t, pool, clerkID)

	ctx := context.Background()
	userService := NewUserService(pool)
	_, err := userService.UpsertUser(ctx, &UpsertUserRequest{
		ClerkID: clerkID,
		Email:   "testcalendar@example.com",
	})
	require.NoError(t, err)

	mantraID := seedTestMantra(t, pool)
	sessionService := NewSessionService(pool)

	_, _, err = sessionService.CreateSession(ctx, clerkID, &session.CreateSessionRequest{
		MantraID:    mantraID.String(),
		Repetitions: 21,
	})
	require.NoError(t, err)

	now := time.Now().UTC()
	statsService := NewStatsService(pool)

	cal, err := statsService.GetCalendar(ctx, clerkID, now.Year(), int(now.Month()))
	require.NoError(t, err)

	assert.Equal(t, now.Year(), cal.Year)
	assert.Equal(t, int(now.Month()), cal.Month)

	// Every day of the month is present even without practice.
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	daysInMonth := monthStart.AddDate(0, 1, -1).Day()
	require.Len(t, cal.Days, daysInMonth)

	today := now.Format("2006-01-02")
	practicedDays := 0
	for i, d := range cal.Days {
		assert.Equal(t, i+1, d.Date.Day())
		if d.Date.Format("2006-01-02") == today {
			assert.True(t, d.IsToday)
			assert.True(t, d.Practiced)
			assert.GreaterOrEqual(t, d.SessionCount, 1)
			practicedDays++
		} else {
			assert.False(t, d.IsToday)
			assert.False(t, d.Practiced)
			assert.Equal(t, 0, d.SessionCount)
		}
	}
	assert.Equal(t, 1, practicedDays)
}
