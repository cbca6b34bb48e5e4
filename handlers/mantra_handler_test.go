package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sadhanaAPI/internal/types/emotion"
	"sadhanaAPI/services"
)

func setupHandlerTestDB(t *testing.T) *pgxpool.Pool {
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

	t.Cleanup(pool.Close)
	return pool
}

func TestGetEmotions_AlwaysReturnsArray(t *testing.T) {
	pool := setupHandlerTestDB(t)

	h := NewMantraHandler(services.NewMantraService(pool))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/emotions", nil)
	rr := httptest.NewRecorder()

	h.GetEmotions(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	// Clients iterate the response, so even an empty catalog must come
	// back as [], never null.
	body := rr.Body.String()
	assert.NotEqual(t, "null", body)

	var emotions []*emotion.Emotion
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &emotions))
	assert.NotNil(t, emotions)
}
