package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"sadhanaAPI/internal/types/session"
	"sadhanaAPI/internal/types/stats"
	"sadhanaAPI/middleware"
	"sadhanaAPI/services"
)

type SessionHandler struct {
	sessionService *services.SessionService
}

func NewSessionHandler(sessionService *services.SessionService) *SessionHandler {
	return &SessionHandler{
		sessionService: sessionService,
	}
}

type createSessionResponse struct {
	Session *session.Session `json:"session"`
	Stats   *stats.UserStats `json:"stats"`
}

func (h *SessionHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var req session.CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	sess, snapshot, err := h.sessionService.CreateSession(ctx, clerkID, &req)
	if err != nil {
		switch {
		case isValidationError(err):
			respondWithError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, services.ErrNotFound):
			respondWithError(w, http.StatusNotFound, "Mantra not found")
		default:
			respondWithError(w, http.StatusInternalServerError, "Failed to save session")
		}
		return
	}

	respondWithJSON(w, http.StatusCreated, createSessionResponse{
		Session: sess,
		Stats:   snapshot,
	})
}

func (h *SessionHandler) GetRecentSessions(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid limit parameter")
			return
		}
		limit = parsed
	}

	sessions, err := h.sessionService.GetRecentSessions(ctx, clerkID, limit)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to fetch sessions")
		return
	}
	if sessions == nil {
		sessions = []*session.Session{}
	}

	respondWithJSON(w, http.StatusOK, sessions)
}

func isValidationError(err error) bool {
	return errors.Is(err, session.ErrMantraRequired) ||
		errors.Is(err, session.ErrNegativeValue) ||
		errors.Is(err, session.ErrMoodOutOfRange) ||
		errors.Is(err, session.ErrEmptySubmission)
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": "Failed to marshal response"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}
