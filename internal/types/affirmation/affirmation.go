package affirmation

import (
	"github.com/google/uuid"
)

// Affirmation is seeded reference data. Intensity runs 1 (gentle) to 3
// (strong) and matches the intensity the client reports for an emotion.
type Affirmation struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Text      string    `json:"text" db:"text"`
	EmotionID string    `json:"emotion_id" db:"emotion_id"`
	Intensity int       `json:"intensity" db:"intensity"`
	Category  string    `json:"category" db:"category"`
}
