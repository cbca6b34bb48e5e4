package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sadhanaAPI/internal/breathing"
)

func breathingTestRouter() *mux.Router {
	h := NewBreathingHandler()
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/breathing/patterns", h.GetPatterns).Methods("GET")
	r.HandleFunc("/api/v1/breathing/patterns/{slug}/timeline", h.GetPatternTimeline).Methods("GET")
	return r
}

func TestGetPatterns(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/breathing/patterns", nil)
	rr := httptest.NewRecorder()

	breathingTestRouter().ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var patterns []breathing.Pattern
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &patterns))
	assert.Len(t, patterns, len(breathing.DefaultPatterns))

	slugs := make(map[string]bool)
	for _, p := range patterns {
		slugs[p.Slug] = true
	}
	assert.True(t, slugs["box-breathing"])
	assert.True(t, slugs["relaxing-478"])
}

func TestGetPatternTimeline(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/breathing/patterns/box-breathing/timeline?cycles=2", nil)
	rr := httptest.NewRecorder()

	breathingTestRouter().ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp timelineResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))

	assert.Equal(t, "box-breathing", resp.Pattern.Slug)
	assert.Equal(t, 2, resp.Cycles)
	// Box breathing runs 4+4+4+4 seconds per cycle.
	assert.Equal(t, 32, resp.TotalSeconds)
	// Two cycles of four phases each.
	require.Len(t, resp.Timeline, 8)
	assert.Equal(t, 0, resp.Timeline[0].StartOffsetSeconds)
	assert.Equal(t, 16, resp.Timeline[4].StartOffsetSeconds)
	assert.Equal(t, 2, resp.Timeline[7].Cycle)
}

func TestGetPatternTimeline_DefaultCycles(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/breathing/patterns/relaxing-478/timeline", nil)
	rr := httptest.NewRecorder()

	breathingTestRouter().ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp timelineResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, resp.Pattern.Cycles, resp.Cycles)
}

func TestGetPatternTimeline_UnknownSlug(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/breathing/patterns/nope/timeline", nil)
	rr := httptest.NewRecorder()

	breathingTestRouter().ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.NotEmpty(t, body["error"])
}

func TestGetPatternTimeline_BadCycles(t *testing.T) {
	for _, raw := range []string{"0", "51", "abc", "-3"} {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/breathing/patterns/box-breathing/timeline?cycles="+raw, nil)
		rr := httptest.NewRecorder()

		breathingTestRouter().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code, "cycles=%s", raw)
	}
}
