package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"talktrainer-backend/internal/middleware"
	"talktrainer-backend/internal/models"
	"talktrainer-backend/internal/repository"
)

type FeedbackHandler struct {
	jobRepo *repository.JobRepo
	queue   *redis.Client
}

func NewFeedbackHandler(jobRepo *repository.JobRepo, queue *redis.Client) *FeedbackHandler {
	return &FeedbackHandler{jobRepo: jobRepo, queue: queue}
}

// Analyze queues a session-analysis job for a finished recording. The worker
// pool scores it, saves the complete session and pushes a completed event
// over the user's WebSocket channel.
func (h *FeedbackHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req models.AnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	if req.Duration < 0 {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Duration must not be negative", r))
		return
	}
	if req.SessionType != "" &&
		req.SessionType != models.SessionTypeFreePractice &&
		req.SessionType != models.SessionTypeTeleprompter {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Session type must be free_practice or teleprompter", r))
		return
	}

	config, _ := json.Marshal(req)

	job := &models.Job{
		UserID:     userID,
		Type:       models.JobTypeSessionAnalysis,
		ConfigJSON: config,
	}

	if err := h.jobRepo.Create(r.Context(), job); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to create analysis job", r))
		return
	}

	payload, _ := json.Marshal(job)
	if err := h.queue.LPush(r.Context(), "queue:session-analysis", payload).Err(); err != nil {
		if failErr := h.jobRepo.Fail(r.Context(), job.ID, "failed to enqueue"); failErr != nil {
			log.Printf("Failed to mark job %s failed: %v", job.ID, failErr)
		}
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to queue analysis job", r))
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]interface{}{
		"job_id": job.ID,
		"status": job.Status,
	})
}

func (h *FeedbackHandler) GetJob(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid job ID", r))
		return
	}

	job, err := h.jobRepo.GetByID(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Job not found", r))
		return
	}

	userID := middleware.GetUserID(r.Context())
	if job.UserID != userID {
		writeJSON(w, http.StatusForbidden, errorResp("FORBIDDEN", "Access denied", r))
		return
	}

	writeJSON(w, http.StatusOK, job)
}
