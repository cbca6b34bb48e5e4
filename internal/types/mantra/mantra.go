package mantra

import (
	"github.com/google/uuid"
)

// Mantra is seeded reference data, read-only from the client.
type Mantra struct {
	ID              uuid.UUID `json:"id" db:"id"`
	Slug            string    `json:"slug" db:"slug"`
	Sanskrit        string    `json:"sanskrit" db:"sanskrit"`
	Devanagari      string    `json:"devanagari" db:"devanagari"`
	Transliteration string    `json:"transliteration" db:"transliteration"`
	Meaning         string    `json:"meaning" db:"meaning"`
	AudioURL        *string   `json:"audio_url,omitempty" db:"audio_url"`
	SuggestedRounds int       `json:"suggested_rounds" db:"suggested_rounds"`
	Emotions        []string  `json:"emotions"`
}
