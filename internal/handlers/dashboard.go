package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"talktrainer-backend/internal/middleware"
	"talktrainer-backend/internal/repository"
	"talktrainer-backend/internal/services"
)

type DashboardHandler struct {
	userRepo     *repository.UserRepo
	progressRepo *repository.ProgressRepo
}

func NewDashboardHandler(userRepo *repository.UserRepo, progressRepo *repository.ProgressRepo) *DashboardHandler {
	return &DashboardHandler{userRepo: userRepo, progressRepo: progressRepo}
}

func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	ctx := r.Context()

	user, err := h.userRepo.GetByID(ctx, userID)
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "User not found", r))
		return
	}

	fromDate := services.WeekWindowStart(time.Now())
	weeklySeconds, weeklySessions, err := h.progressRepo.WeeklyTotals(ctx, userID, fromDate)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to load weekly totals", r))
		return
	}

	goalMinutes, _ := h.userRepo.GetWeeklyGoalMinutes(ctx, userID)

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"total_sessions":       user.TotalSessions,
		"total_practice_time":  user.TotalPracticeTime,
		"overall_score":        user.OverallScore,
		"weekly_practice_time": weeklySeconds,
		"weekly_sessions":      weeklySessions,
		"weekly_goal_minutes":  goalMinutes,
	})
}

func (h *DashboardHandler) Streak(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	streak, err := h.progressRepo.Streak(r.Context(), userID, time.Now())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to load streak", r))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"streak": streak})
}

func (h *DashboardHandler) SetWeeklyGoal(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req struct {
		Minutes int `json:"minutes"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	if req.Minutes < 5 || req.Minutes > 2000 {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Goal must be between 5 and 2000 minutes", r))
		return
	}

	if err := h.userRepo.SetWeeklyGoalMinutes(r.Context(), userID, req.Minutes); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to save weekly goal", r))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"weekly_goal_minutes": req.Minutes,
	})
}
