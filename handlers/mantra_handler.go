package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"sadhanaAPI/internal/types/emotion"
	"sadhanaAPI/internal/types/mantra"
	"sadhanaAPI/services"
)

type MantraHandler struct {
	mantraService *services.MantraService
}

func NewMantraHandler(mantraService *services.MantraService) *MantraHandler {
	return &MantraHandler{
		mantraService: mantraService,
	}
}

func (h *MantraHandler) GetEmotions(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	emotions, err := h.mantraService.GetEmotions(ctx)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to fetch emotions")
		return
	}
	if emotions == nil {
		emotions = []*emotion.Emotion{}
	}

	respondWithJSON(w, http.StatusOK, emotions)
}

func (h *MantraHandler) GetMantras(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	emotionCode := r.URL.Query().Get("emotion")

	mantras, err := h.mantraService.GetMantras(ctx, emotionCode)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to fetch mantras")
		return
	}
	if mantras == nil {
		mantras = []*mantra.Mantra{}
	}

	respondWithJSON(w, http.StatusOK, mantras)
}

func (h *MantraHandler) GetMantraByID(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid mantra id")
		return
	}

	m, err := h.mantraService.GetMantraByID(ctx, id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "Mantra not found")
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Failed to fetch mantra")
		return
	}

	respondWithJSON(w, http.StatusOK, m)
}
