package session

import (
	"time"

	"github.com/google/uuid"
)

// Session is one completed (or partially completed) practice. Rows are
// append-only; mood_improvement is derived server-side as after - before.
type Session struct {
	ID              uuid.UUID `json:"id" db:"id"`
	UserID          uuid.UUID `json:"user_id" db:"user_id"`
	MantraID        uuid.UUID `json:"mantra_id" db:"mantra_id"`
	Repetitions     int       `json:"repetitions" db:"repetitions"`
	DurationSeconds int       `json:"duration_seconds" db:"duration_seconds"`
	Notes           *string   `json:"notes,omitempty" db:"notes"`
	BeforeMood      *int      `json:"before_mood,omitempty" db:"before_mood"`
	AfterMood       *int      `json:"after_mood,omitempty" db:"after_mood"`
	MoodImprovement *int      `json:"mood_improvement,omitempty" db:"mood_improvement"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
}
