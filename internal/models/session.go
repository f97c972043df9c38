package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	SessionTypeFreePractice = "free_practice"
	SessionTypeTeleprompter = "teleprompter"
)

// TrainingSession is one completed practice recording. Rows are append-only:
// once written they are never updated or deleted.
type TrainingSession struct {
	ID              uuid.UUID `json:"id"`
	UserID          uuid.UUID `json:"user_id"`
	Duration        int       `json:"duration"`
	OverallScore    int       `json:"overall_score"`
	ClarityScore    int       `json:"clarity_score"`
	PaceScore       int       `json:"pace_score"`
	ConfidenceScore int       `json:"confidence_score"`
	WordsPerMinute  *int      `json:"words_per_minute"`
	FillerWordCount int       `json:"filler_word_count"`
	SessionType     string    `json:"session_type"`
	CreatedAt       time.Time `json:"created_at"`
}

// SessionMetrics is the client-submitted payload for a finished session.
type SessionMetrics struct {
	Duration        int    `json:"duration"`
	OverallScore    int    `json:"overall_score"`
	ClarityScore    int    `json:"clarity_score"`
	PaceScore       int    `json:"pace_score"`
	ConfidenceScore int    `json:"confidence_score"`
	WordsPerMinute  *int   `json:"words_per_minute,omitempty"`
	FillerWordCount int    `json:"filler_word_count"`
	SessionType     string `json:"session_type,omitempty"`
}
