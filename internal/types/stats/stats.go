package stats

import (
	"time"

	"github.com/google/uuid"

	"sadhanaAPI/internal/analytics"
)

// UserStats is a cached aggregate, upserted on every session insert. It is
// derived entirely from the user's session history and must never diverge
// from what a re-scan of that history yields.
type UserStats struct {
	UserID               uuid.UUID  `json:"user_id" db:"user_id"`
	LastPracticeDate     *time.Time `json:"last_practice_date,omitempty" db:"last_practice_date"`
	CurrentStreak        int        `json:"current_streak" db:"current_streak"`
	LongestStreak        int        `json:"longest_streak" db:"longest_streak"`
	TotalSessions        int        `json:"total_sessions" db:"total_sessions"`
	TotalRepetitions     int        `json:"total_repetitions" db:"total_repetitions"`
	TotalDurationSeconds int        `json:"total_duration_seconds" db:"total_duration_seconds"`
	CustomRepetitionGoal *int       `json:"custom_repetition_goal,omitempty" db:"custom_repetition_goal"`
	ConsistencyScore     float64    `json:"consistency_score"`
	UpdatedAt            time.Time  `json:"updated_at" db:"updated_at"`
}

type AnalyticsResponse struct {
	LookbackDays  int                    `json:"lookback_days"`
	Daily         []analytics.DayBucket  `json:"daily"`
	Weekly        []analytics.WeekBucket `json:"weekly"`
	CurrentStreak int                    `json:"current_streak"`
	LongestStreak int                    `json:"longest_streak"`
}
