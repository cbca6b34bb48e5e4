package handlers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"sadhanaAPI/internal/breathing"
)

// BreathingHandler serves the breathing-pattern catalog and expanded
// session timelines. Patterns are compiled-in reference data, so no
// service or storage sits behind this handler.
type BreathingHandler struct{}

func NewBreathingHandler() *BreathingHandler {
	return &BreathingHandler{}
}

func (h *BreathingHandler) GetPatterns(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, breathing.DefaultPatterns)
}

type timelineResponse struct {
	Pattern      breathing.Pattern        `json:"pattern"`
	Cycles       int                      `json:"cycles"`
	TotalSeconds int                      `json:"total_seconds"`
	Timeline     []breathing.TimelineStep `json:"timeline"`
}

func (h *BreathingHandler) GetPatternTimeline(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]

	pattern, ok := breathing.PatternBySlug(slug)
	if !ok {
		respondWithError(w, http.StatusNotFound, "Breathing pattern not found")
		return
	}

	cycles := pattern.Cycles
	if raw := r.URL.Query().Get("cycles"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 50 {
			respondWithError(w, http.StatusBadRequest, "Parameter 'cycles' must be between 1 and 50")
			return
		}
		cycles = parsed
	}

	respondWithJSON(w, http.StatusOK, timelineResponse{
		Pattern:      pattern,
		Cycles:       cycles,
		TotalSeconds: cycles * pattern.CycleSeconds(),
		Timeline:     pattern.Timeline(cycles),
	})
}
