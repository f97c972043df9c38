package handlers

import (
	"net/http"
	"time"

	"talktrainer-backend/internal/middleware"
	"talktrainer-backend/internal/repository"
	"talktrainer-backend/internal/services"
)

type ProgressHandler struct {
	progressRepo *repository.ProgressRepo
	skillRepo    *repository.SkillRepo
}

func NewProgressHandler(progressRepo *repository.ProgressRepo, skillRepo *repository.SkillRepo) *ProgressHandler {
	return &ProgressHandler{progressRepo: progressRepo, skillRepo: skillRepo}
}

// Weekly returns the trailing 7 days of daily aggregates, oldest first.
// Days without any session are absent; the app renders those as zero.
func (h *ProgressHandler) Weekly(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	fromDate := services.WeekWindowStart(time.Now())

	progress, err := h.progressRepo.ListSince(r.Context(), userID, fromDate)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to load weekly progress", r))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"progress": progress})
}

func (h *ProgressHandler) Skills(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	skills, err := h.skillRepo.ListByUser(r.Context(), userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to load skills", r))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"skills": skills})
}
