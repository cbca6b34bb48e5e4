package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"sadhanaAPI/internal/types/emotion"
	"sadhanaAPI/internal/types/mantra"
)

var ErrNotFound = errors.New("not found")

type MantraService struct {
	db *pgxpool.Pool
}

func NewMantraService(db *pgxpool.Pool) *MantraService {
	return &MantraService{db: db}
}

func (s *MantraService) GetEmotions(ctx context.Context) ([]*emotion.Emotion, error) {
	query := `
		SELECT id, name, icon, description, color
		FROM emotions
		ORDER BY name
	`

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch emotions: %w", err)
	}
	defer rows.Close()

	var emotions []*emotion.Emotion
	for rows.Next() {
		e := &emotion.Emotion{}
		if err := rows.Scan(&e.ID, &e.Name, &e.Icon, &e.Description, &e.Color); err != nil {
			return nil, fmt.Errorf("failed to scan emotion: %w", err)
		}
		emotions = append(emotions, e)
	}

	return emotions, nil
}

// GetMantras lists the mantra catalog, optionally narrowed to one emotion
// code.
func (s *MantraService) GetMantras(ctx context.Context, emotionCode string) ([]*mantra.Mantra, error) {
	query := `
		SELECT m.id, m.slug, m.sanskrit, m.devanagari, m.transliteration,
			m.meaning, m.audio_url, m.suggested_rounds,
			COALESCE(ARRAY_AGG(me.emotion_id) FILTER (WHERE me.emotion_id IS NOT NULL), '{}') AS emotions
		FROM mantras m
		LEFT JOIN mantra_emotions me ON me.mantra_id = m.id
		WHERE $1 = ''
			OR m.id IN (SELECT mantra_id FROM mantra_emotions WHERE emotion_id = $1)
		GROUP BY m.id
		ORDER BY m.slug
	`

	rows, err := s.db.Query(ctx, query, emotionCode)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch mantras: %w", err)
	}
	defer rows.Close()

	var mantras []*mantra.Mantra
	for rows.Next() {
		m := &mantra.Mantra{}
		if err := rows.Scan(
			&m.ID, &m.Slug, &m.Sanskrit, &m.Devanagari, &m.Transliteration,
			&m.Meaning, &m.AudioURL, &m.SuggestedRounds, &m.Emotions,
		); err != nil {
			return nil, fmt.Errorf("failed to scan mantra: %w", err)
		}
		mantras = append(mantras, m)
	}

	return mantras, nil
}

func (s *MantraService) GetMantraByID(ctx context.Context, id uuid.UUID) (*mantra.Mantra, error) {
	query := `
		SELECT m.id, m.slug, m.sanskrit, m.devanagari, m.transliteration,
			m.meaning, m.audio_url, m.suggested_rounds,
			COALESCE(ARRAY_AGG(me.emotion_id) FILTER (WHERE me.emotion_id IS NOT NULL), '{}') AS emotions
		FROM mantras m
		LEFT JOIN mantra_emotions me ON me.mantra_id = m.id
		WHERE m.id = $1
		GROUP BY m.id
	`

	m := &mantra.Mantra{}
	err := s.db.QueryRow(ctx, query, id).Scan(
		&m.ID, &m.Slug, &m.Sanskrit, &m.Devanagari, &m.Transliteration,
		&m.Meaning, &m.AudioURL, &m.SuggestedRounds, &m.Emotions,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("mantra %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch mantra: %w", err)
	}

	return m, nil
}
