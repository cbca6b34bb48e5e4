package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"sadhanaAPI/internal/analytics"
	"sadhanaAPI/internal/types/session"
	"sadhanaAPI/internal/types/stats"
	"sadhanaAPI/utils"
)

type SessionService struct {
	db       *pgxpool.Pool
	notifier utils.NotificationCreator
}

func NewSessionService(db *pgxpool.Pool) *SessionService {
	return &SessionService{db: db}
}

// SetNotifier injects the streak-milestone notifier. Optional; without it
// session creation still works, milestones are just silent.
func (s *SessionService) SetNotifier(n utils.NotificationCreator) {
	s.notifier = n
}

func (s *SessionService) getUserID(ctx context.Context, clerkID string) (uuid.UUID, error) {
	var userID uuid.UUID
	err := s.db.QueryRow(ctx, `SELECT id FROM users WHERE clerk_id = $1`, clerkID).Scan(&userID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("user not found: %w", err)
	}
	return userID, nil
}

// CreateSession validates and appends one practice record, then recomputes
// the caller's stats cache from the full session history inside the same
// transaction. The session is always attributed to the authenticated
// caller, never to a client-supplied user id.
func (s *SessionService) CreateSession(ctx context.Context, clerkID string, req *session.CreateSessionRequest) (*session.Session, *stats.UserStats, error) {
	if err := req.Validate(); err != nil {
		return nil, nil, err
	}

	mantraID, err := uuid.Parse(req.MantraID)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: not a valid id", session.ErrMantraRequired)
	}

	userID, err := s.getUserID(ctx, clerkID)
	if err != nil {
		return nil, nil, err
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	insertQuery := `
		INSERT INTO sessions (
			user_id, mantra_id, repetitions, duration_seconds,
			notes, before_mood, after_mood, mood_improvement
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, user_id, mantra_id, repetitions, duration_seconds,
			notes, before_mood, after_mood, mood_improvement, created_at
	`

	sess := &session.Session{}
	err = tx.QueryRow(
		ctx, insertQuery,
		userID, mantraID, req.Repetitions, req.DurationSeconds,
		req.Notes, req.BeforeMood, req.AfterMood, req.MoodImprovement(),
	).Scan(
		&sess.ID, &sess.UserID, &sess.MantraID, &sess.Repetitions,
		&sess.DurationSeconds, &sess.Notes, &sess.BeforeMood,
		&sess.AfterMood, &sess.MoodImprovement, &sess.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return nil, nil, fmt.Errorf("mantra %s: %w", mantraID, ErrNotFound)
		}
		return nil, nil, fmt.Errorf("failed to insert session: %w", err)
	}

	snapshot, prevStreak, err := s.recomputeStats(ctx, tx, userID, time.Now())
	if err != nil {
		return nil, nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, nil, fmt.Errorf("failed to commit session: %w", err)
	}

	if s.notifier != nil {
		// Best-effort: a failed notification never fails the save.
		go utils.StreakMilestoneReached(s.notifier, userID, prevStreak, snapshot.CurrentStreak)
	}

	return sess, snapshot, nil
}

// recomputeStats re-derives the stats cache from session history and
// upserts it, returning the fresh snapshot plus the streak value the row
// held before this save (0 when no row existed) so the caller can detect
// milestone crossings. Runs inside the caller's transaction so concurrent
// saves for the same user serialize on the user_stats row.
func (s *SessionService) recomputeStats(ctx context.Context, tx pgx.Tx, userID uuid.UUID, now time.Time) (*stats.UserStats, int, error) {
	var prevStreak int
	err := tx.QueryRow(
		ctx, `SELECT current_streak FROM user_stats WHERE user_id = $1`, userID,
	).Scan(&prevStreak)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, 0, fmt.Errorf("failed to read previous streak: %w", err)
	}

	rows, err := tx.Query(ctx, `
		SELECT created_at, repetitions, duration_seconds
		FROM sessions
		WHERE user_id = $1
	`, userID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch session history: %w", err)
	}
	defer rows.Close()

	var samples []analytics.SessionSample
	for rows.Next() {
		var sample analytics.SessionSample
		if err := rows.Scan(&sample.CreatedAt, &sample.Repetitions, &sample.DurationSeconds); err != nil {
			return nil, 0, fmt.Errorf("failed to scan session row: %w", err)
		}
		samples = append(samples, sample)
	}
	rows.Close()

	streaks := analytics.Streaks(samples, now)

	snapshot := &stats.UserStats{
		UserID:           userID,
		CurrentStreak:    streaks.Current,
		LongestStreak:    streaks.Longest,
		LastPracticeDate: streaks.LastPracticeDay,
		TotalSessions:    len(samples),
	}
	for _, sample := range samples {
		snapshot.TotalRepetitions += sample.Repetitions
		snapshot.TotalDurationSeconds += sample.DurationSeconds
	}

	upsertQuery := `
		INSERT INTO user_stats (
			user_id, last_practice_date, current_streak, longest_streak,
			total_sessions, total_repetitions, total_duration_seconds, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		ON CONFLICT (user_id)
		DO UPDATE SET
			last_practice_date = $2,
			current_streak = $3,
			longest_streak = $4,
			total_sessions = $5,
			total_repetitions = $6,
			total_duration_seconds = $7,
			updated_at = NOW()
		RETURNING custom_repetition_goal, updated_at
	`

	err = tx.QueryRow(
		ctx, upsertQuery,
		userID, snapshot.LastPracticeDate, snapshot.CurrentStreak,
		snapshot.LongestStreak, snapshot.TotalSessions,
		snapshot.TotalRepetitions, snapshot.TotalDurationSeconds,
	).Scan(&snapshot.CustomRepetitionGoal, &snapshot.UpdatedAt)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to upsert user stats: %w", err)
	}

	snapshot.ConsistencyScore = utils.ConsistencyScore(
		snapshot.CurrentStreak, snapshot.TotalSessions, snapshot.TotalRepetitions)

	return snapshot, prevStreak, nil
}

func (s *SessionService) GetRecentSessions(ctx context.Context, clerkID string, limit int) ([]*session.Session, error) {
	userID, err := s.getUserID(ctx, clerkID)
	if err != nil {
		return nil, err
	}

	if limit < 1 || limit > 100 {
		limit = 20
	}

	query := `
		SELECT id, user_id, mantra_id, repetitions, duration_seconds,
			notes, before_mood, after_mood, mood_improvement, created_at
		FROM sessions
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := s.db.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*session.Session
	for rows.Next() {
		sess := &session.Session{}
		if err := rows.Scan(
			&sess.ID, &sess.UserID, &sess.MantraID, &sess.Repetitions,
			&sess.DurationSeconds, &sess.Notes, &sess.BeforeMood,
			&sess.AfterMood, &sess.MoodImprovement, &sess.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, sess)
	}

	if len(sessions) == 0 {
		log.Printf("No sessions yet for user %s", clerkID)
	}
	return sessions, nil
}
