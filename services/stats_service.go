package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"sadhanaAPI/internal/analytics"
	"sadhanaAPI/internal/types/calendar"
	"sadhanaAPI/internal/types/stats"
	"sadhanaAPI/utils"
)

type StatsService struct {
	db *pgxpool.Pool
}

func NewStatsService(db *pgxpool.Pool) *StatsService {
	return &StatsService{db: db}
}

func (s *StatsService) getUserID(ctx context.Context, clerkID string) (uuid.UUID, error) {
	var userID uuid.UUID
	err := s.db.QueryRow(ctx, `SELECT id FROM users WHERE clerk_id = $1`, clerkID).Scan(&userID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("user not found: %w", err)
	}
	return userID, nil
}

// GetUserStats reads the cached snapshot. A user with no sessions yet gets
// a zeroed snapshot rather than an error.
func (s *StatsService) GetUserStats(ctx context.Context, clerkID string) (*stats.UserStats, error) {
	userID, err := s.getUserID(ctx, clerkID)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT user_id, last_practice_date, current_streak, longest_streak,
			total_sessions, total_repetitions, total_duration_seconds,
			custom_repetition_goal, updated_at
		FROM user_stats
		WHERE user_id = $1
	`

	snapshot := &stats.UserStats{}
	err = s.db.QueryRow(ctx, query, userID).Scan(
		&snapshot.UserID, &snapshot.LastPracticeDate, &snapshot.CurrentStreak,
		&snapshot.LongestStreak, &snapshot.TotalSessions,
		&snapshot.TotalRepetitions, &snapshot.TotalDurationSeconds,
		&snapshot.CustomRepetitionGoal, &snapshot.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &stats.UserStats{UserID: userID, UpdatedAt: time.Now()}, nil
		}
		return nil, fmt.Errorf("failed to fetch user stats: %w", err)
	}

	snapshot.ConsistencyScore = utils.ConsistencyScore(
		snapshot.CurrentStreak, snapshot.TotalSessions, snapshot.TotalRepetitions)

	return snapshot, nil
}

// GetAnalytics buckets the caller's recent sessions into daily and weekly
// series and recomputes streaks from the raw rows.
func (s *StatsService) GetAnalytics(ctx context.Context, clerkID string, lookbackDays int) (*stats.AnalyticsResponse, error) {
	userID, err := s.getUserID(ctx, clerkID)
	if err != nil {
		return nil, err
	}

	if lookbackDays < 1 || lookbackDays > 365 {
		lookbackDays = 90
	}

	now := time.Now()
	windowStart := now.UTC().AddDate(0, 0, -lookbackDays)

	query := `
		SELECT created_at, repetitions, duration_seconds
		FROM sessions
		WHERE user_id = $1 AND created_at >= $2
		ORDER BY created_at
	`

	rows, err := s.db.Query(ctx, query, userID, windowStart)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch sessions for analytics: %w", err)
	}
	defer rows.Close()

	var samples []analytics.SessionSample
	for rows.Next() {
		var sample analytics.SessionSample
		if err := rows.Scan(&sample.CreatedAt, &sample.Repetitions, &sample.DurationSeconds); err != nil {
			return nil, fmt.Errorf("failed to scan session row: %w", err)
		}
		samples = append(samples, sample)
	}

	streaks := analytics.Streaks(samples, now)

	return &stats.AnalyticsResponse{
		LookbackDays:  lookbackDays,
		Daily:         analytics.DailySeries(samples, lookbackDays, now),
		Weekly:        analytics.WeeklySeries(samples, lookbackDays, now),
		CurrentStreak: streaks.Current,
		LongestStreak: streaks.Longest,
	}, nil
}

// GetCalendar returns the month grid of practice days.
func (s *StatsService) GetCalendar(ctx context.Context, clerkID string, year int, month int) (*calendar.CalendarResponse, error) {
	userID, err := s.getUserID(ctx, clerkID)
	if err != nil {
		return nil, err
	}

	startDate := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	endDate := startDate.AddDate(0, 1, 0)

	query := `
		SELECT (created_at AT TIME ZONE 'UTC')::date AS day, COUNT(*)
		FROM sessions
		WHERE user_id = $1
			AND created_at >= $2
			AND created_at < $3
		GROUP BY day
		ORDER BY day
	`

	rows, err := s.db.Query(ctx, query, userID, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch calendar: %w", err)
	}
	defer rows.Close()

	dayMap := make(map[string]int)
	for rows.Next() {
		var day time.Time
		var count int
		if err := rows.Scan(&day, &count); err != nil {
			return nil, fmt.Errorf("failed to scan calendar row: %w", err)
		}
		dayMap[day.Format("2006-01-02")] = count
	}

	var days []*calendar.PracticeDay
	today := time.Now().UTC().Format("2006-01-02")

	for d := startDate; d.Before(endDate); d = d.AddDate(0, 0, 1) {
		dateStr := d.Format("2006-01-02")
		count := dayMap[dateStr]
		days = append(days, &calendar.PracticeDay{
			Date:         d,
			Practiced:    count > 0,
			SessionCount: count,
			IsToday:      dateStr == today,
		})
	}

	return &calendar.CalendarResponse{
		Year:  year,
		Month: month,
		Days:  days,
	}, nil
}
