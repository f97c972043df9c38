package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"talktrainer-backend/internal/middleware"
	"talktrainer-backend/internal/models"
	"talktrainer-backend/internal/repository"
	"talktrainer-backend/internal/services"
)

type SessionHandler struct {
	sessionService *services.SessionService
	sessionRepo    *repository.SessionRepo
}

func NewSessionHandler(sessionService *services.SessionService, sessionRepo *repository.SessionRepo) *SessionHandler {
	return &SessionHandler{sessionService: sessionService, sessionRepo: sessionRepo}
}

// Save records a finished practice session and folds it into the daily
// aggregate, skills and lifetime totals in one go.
func (h *SessionHandler) Save(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var metrics models.SessionMetrics
	if err := json.NewDecoder(r.Body).Decode(&metrics); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	session, err := h.sessionService.SaveCompleteSession(r.Context(), userID, metrics)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"session": session,
	})
}

func (h *SessionHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	sessions, err := h.sessionRepo.ListRecent(r.Context(), userID, limit)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to load sessions", r))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"sessions": sessions})
}

func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid session ID", r))
		return
	}

	session, err := h.sessionRepo.GetByID(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Session not found", r))
		return
	}

	userID := middleware.GetUserID(r.Context())
	if session.UserID != userID {
		writeJSON(w, http.StatusForbidden, errorResp("FORBIDDEN", "Access denied", r))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"session": session})
}
