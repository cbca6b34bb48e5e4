package services

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"sadhanaAPI/internal/types/affirmation"
)

type AffirmationService struct {
	db *pgxpool.Pool
}

func NewAffirmationService(db *pgxpool.Pool) *AffirmationService {
	return &AffirmationService{db: db}
}

type AffirmationFilter struct {
	EmotionID string
	Intensity int
	Category  string
}

// GetAffirmations lists affirmations matching the filter. Zero-valued
// filter fields match everything.
func (s *AffirmationService) GetAffirmations(ctx context.Context, filter AffirmationFilter) ([]*affirmation.Affirmation, error) {
	query := `
		SELECT id, text, emotion_id, intensity, category
		FROM affirmations
		WHERE ($1 = '' OR emotion_id = $1)
			AND ($2 = 0 OR intensity = $2)
			AND ($3 = '' OR category = $3)
		ORDER BY emotion_id, intensity, id
	`

	rows, err := s.db.Query(ctx, query, filter.EmotionID, filter.Intensity, filter.Category)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch affirmations: %w", err)
	}
	defer rows.Close()

	var affirmations []*affirmation.Affirmation
	for rows.Next() {
		a := &affirmation.Affirmation{}
		if err := rows.Scan(&a.ID, &a.Text, &a.EmotionID, &a.Intensity, &a.Category); err != nil {
			return nil, fmt.Errorf("failed to scan affirmation: %w", err)
		}
		affirmations = append(affirmations, a)
	}

	return affirmations, nil
}
