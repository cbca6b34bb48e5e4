package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"sadhanaAPI/internal/types/affirmation"
	"sadhanaAPI/services"
)

type AffirmationHandler struct {
	affirmationService *services.AffirmationService
}

func NewAffirmationHandler(affirmationService *services.AffirmationService) *AffirmationHandler {
	return &AffirmationHandler{
		affirmationService: affirmationService,
	}
}

func (h *AffirmationHandler) GetAffirmations(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	filter := services.AffirmationFilter{
		EmotionID: r.URL.Query().Get("emotion"),
		Category:  r.URL.Query().Get("category"),
	}

	if raw := r.URL.Query().Get("intensity"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 3 {
			respondWithError(w, http.StatusBadRequest, "Parameter 'intensity' must be between 1 and 3")
			return
		}
		filter.Intensity = parsed
	}

	affirmations, err := h.affirmationService.GetAffirmations(ctx, filter)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to fetch affirmations")
		return
	}
	if affirmations == nil {
		affirmations = []*affirmation.Affirmation{}
	}

	respondWithJSON(w, http.StatusOK, affirmations)
}
