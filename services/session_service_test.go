package services

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sadhanaAPI/internal/types/session"
)

// setupTestDB connects to the database named by TEST_DATABASE_URL (or
// DATABASE_URL). Tests that need it are skipped when neither is set,
// so the pure-logic test suites still run without infrastructure.
func setupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		dbURL = os.Getenv("DATABASE_URL")
	}
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL or DATABASE_URL not set; skipping database test")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dbURL)
	require.NoError(t, err, "failed to connect to test database")
	require.NoError(t, pool.Ping(ctx), "failed to ping test database")

	return pool
}

func cleanupTestUser(t *testing.T, pool *pgxpool.Pool, clerkID string) {
	t.Helper()
	ctx := context.Background()
	_, err := pool.Exec(ctx, `DELETE FROM users WHERE clerk_id = $1`, clerkID)
	if err != nil {
		t.Logf("Warning: failed to cleanup test user: %v", err)
	}
	pool.Close()
}

func seedTestMantra(t *testing.T, pool *pgxpool.Pool) uuid.UUID {
	t.Helper()
	ctx := context.Background()

	slug := fmt.Sprintf("test-mantra-%d", time.Now().UnixNano())
	var id uuid.UUID
	err := pool.QueryRow(ctx, `
		INSERT INTO mantras (slug, sanskrit, devanagari, transliteration, meaning, suggested_rounds)
		VALUES ($1, 'om', 'ॐ', 'om', 'test mantra', 108)
		RETURNING id
	`, slug).Scan(&id)
	require.NoError(t, err)

	t.Cleanup(func() {
		pool.Exec(context.Background(), `DELETE FROM mantras WHERE id = $1`, id)
	})
	return id
}

func TestCreateSession_RecomputesStats(t *testing.T) {
	pool := setupTestDB(t)

	clerkID := "user_test_" + time.Now().Format("20060102150405")
	defer cleanupTestUser(t, pool, clerkID)

	ctx := context.Background()
	userService := NewUserService(pool)
	_, err := userService.UpsertUser(ctx, &UpsertUserRequest{
		ClerkID: clerkID,
		Email:   "testsession@example.com",
	})
	require.NoError(t, err)

	mantraID := seedTestMantra(t, pool)
	sessionService := NewSessionService(pool)

	before, after := 3, 8
	req := &session.CreateSessionRequest{
		MantraID:        mantraID.String(),
		Repetitions:     108,
		DurationSeconds: 600,
		BeforeMood:      &before,
		AfterMood:       &after,
	}

	created, snapshot, err := sessionService.CreateSession(ctx, clerkID, req)
	require.NoError(t, err)

	assert.Equal(t, 108, created.Repetitions)
	require.NotNil(t, created.MoodImprovement)
	assert.Equal(t, 5, *created.MoodImprovement)

	require.NotNil(t, snapshot)
	assert.Equal(t, 1, snapshot.TotalSessions)
	assert.Equal(t, 108, snapshot.TotalRepetitions)
	assert.Equal(t, 600, snapshot.TotalDurationSeconds)
	assert.Equal(t, 1, snapshot.CurrentStreak)
	assert.Equal(t, 1, snapshot.LongestStreak)

	// A second session the same day grows totals but not the streak.
	_, snapshot, err = sessionService.CreateSession(ctx, clerkID, &session.CreateSessionRequest{
		MantraID:    mantraID.String(),
		Repetitions: 27,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, snapshot.TotalSessions)
	assert.Equal(t, 135, snapshot.TotalRepetitions)
	assert.Equal(t, 1, snapshot.CurrentStreak)
}

func TestCreateSession_UnknownMantra(t *testing.T) {
	pool := setupTestDB(t)

	clerkID := "user_test_fk_" + time.Now().Format("20060102150405")
	defer cleanupTestUser(t, pool, clerkID)

	ctx := context.Background()
	userService := NewUserService(pool)
	_, err := userService.UpsertUser(ctx, &UpsertUserRequest{
		ClerkID: clerkID,
		Email:   "testsessionfk@example.com",
	})
	require.NoError(t, err)

	sessionService := NewSessionService(pool)

	_, _, err = sessionService.CreateSession(ctx, clerkID, &session.CreateSessionRequest{
		MantraID:    uuid.NewString(),
		Repetitions: 10,
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateSession_InvalidSubmission(t *testing.T) {
	pool := setupTestDB(t)

	clerkID := "user_test_val_" + time.Now().Format("20060102150405")
	defer cleanupTestUser(t, pool, clerkID)

	sessionService := NewSessionService(pool)

	_, _, err := sessionService.CreateSession(context.Background(), clerkID, &session.CreateSessionRequest{
		MantraID: uuid.NewString(),
	})
	assert.ErrorIs(t, err, session.ErrEmptySubmission)
}
