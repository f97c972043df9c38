package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

const JobTypeSessionAnalysis = "session-analysis"

type Job struct {
	ID           uuid.UUID       `json:"id"`
	UserID       uuid.UUID       `json:"user_id"`
	Type         string          `json:"type"` // "session-analysis"
	ConfigJSON   json.RawMessage `json:"config"`
	ResultJSON   json.RawMessage `json:"result,omitempty"`
	Status       string          `json:"status"` // "pending" | "processing" | "completed" | "failed"
	ErrorMessage *string         `json:"error_message"`
	CreatedAt    time.Time       `json:"created_at"`
	CompletedAt  *time.Time      `json:"completed_at"`
}

// AnalysisRequest is the config payload of a session-analysis job.
type AnalysisRequest struct {
	Duration    int    `json:"duration"`
	SessionType string `json:"session_type,omitempty"`
}

// AnalysisResult is what the worker produces for a completed analysis job.
type AnalysisResult struct {
	SessionID       uuid.UUID `json:"session_id"`
	OverallScore    int       `json:"overall_score"`
	ClarityScore    int       `json:"clarity_score"`
	PaceScore       int       `json:"pace_score"`
	ConfidenceScore int       `json:"confidence_score"`
	WordsPerMinute  int       `json:"words_per_minute"`
	FillerWordCount int       `json:"filler_word_count"`
	Tips            []string  `json:"tips"`
}

// WebSocket message types
type WSMessage struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

type CompletedEvent struct {
	JobID      uuid.UUID `json:"job_id"`
	ResultType string    `json:"result_type"`
}

type ErrorEvent struct {
	JobID        uuid.UUID `json:"job_id"`
	ErrorCode    string    `json:"error_code"`
	ErrorMessage string    `json:"error_message"`
}

// API Error response
type APIError struct {
	Code      string            `json:"code"`
	Message   string            `json:"message"`
	Fields    map[string]string `json:"fields,omitempty"`
	RequestID string            `json:"request_id"`
}

type ErrorResponse struct {
	Error APIError `json:"error"`
}
