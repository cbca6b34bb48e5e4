package session

import (
	"errors"
	"fmt"
)

var (
	ErrMantraRequired  = errors.New("mantra_id is required")
	ErrNegativeValue   = errors.New("repetitions and duration_seconds must not be negative")
	ErrMoodOutOfRange  = errors.New("mood values must be between 1 and 10")
	ErrEmptySubmission = errors.New("submission must contain practice data or a mood value")
)

type CreateSessionRequest struct {
	MantraID        string  `json:"mantra_id"`
	Repetitions     int     `json:"repetitions"`
	DurationSeconds int     `json:"duration_seconds"`
	Notes           *string `json:"notes,omitempty"`
	BeforeMood      *int    `json:"before_mood,omitempty"`
	AfterMood       *int    `json:"after_mood,omitempty"`
}

// Validate applies the submission rules: a session must carry either
// non-zero practice data or at least one mood value, and moods stay in
// [1,10].
func (r *CreateSessionRequest) Validate() error {
	if r.MantraID == "" {
		return ErrMantraRequired
	}
	if r.Repetitions < 0 || r.DurationSeconds < 0 {
		return ErrNegativeValue
	}
	for _, mood := range []*int{r.BeforeMood, r.AfterMood} {
		if mood != nil && (*mood < 1 || *mood > 10) {
			return fmt.Errorf("%w: got %d", ErrMoodOutOfRange, *mood)
		}
	}
	hasPractice := r.Repetitions > 0 || r.DurationSeconds > 0
	hasMood := r.BeforeMood != nil || r.AfterMood != nil
	if !hasPractice && !hasMood {
		return ErrEmptySubmission
	}
	return nil
}

// MoodImprovement derives after - before, or nil when either side is
// missing.
func (r *CreateSessionRequest) MoodImprovement() *int {
	if r.BeforeMood == nil || r.AfterMood == nil {
		return nil
	}
	diff := *r.AfterMood - *r.BeforeMood
	return &diff
}
