package services

import (
	"math/rand"
	"sync"

	"talktrainer-backend/internal/models"
)

// FeedbackService stands in for the real speech-analysis pipeline. Until
// transcription and scoring exist, metrics are drawn from fixed ranges and
// tips come from a canned pool, mirroring what the app previously faked on
// device.
// TODO: replace with real audio feature extraction once the pipeline lands.
type FeedbackService struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewFeedbackService(rng *rand.Rand) *FeedbackService {
	return &FeedbackService{rng: rng}
}

var freePracticeTips = []string{
	"Great job maintaining consistent pace throughout!",
	"Try to reduce filler words like \"um\" and \"uh\"",
	"Your clarity has improved significantly",
	"Consider varying your tone for emphasis",
}

var teleprompterTips = []string{
	"Excellent use of the teleprompter! Pace matched scroll speed well.",
	"Clarity was strong - good pronunciation throughout.",
	"Consider varying tone for emphasis on key points.",
	"Volume consistent and clear - great job!",
}

// Analyze produces placeholder metrics for a finished recording. Safe for
// concurrent use; every analysis worker shares one service instance.
func (s *FeedbackService) Analyze(req models.AnalysisRequest) models.SessionMetrics {
	sessionType := req.SessionType
	if sessionType == "" {
		sessionType = models.SessionTypeFreePractice
	}

	// rand.Rand is not goroutine-safe; one draw per job keeps the lock short.
	s.mu.Lock()
	wpm := s.rng.Intn(30) + 130
	metrics := models.SessionMetrics{
		Duration:        req.Duration,
		OverallScore:    s.rng.Intn(15) + 85,
		ClarityScore:    s.rng.Intn(15) + 85,
		PaceScore:       s.rng.Intn(15) + 80,
		ConfidenceScore: s.rng.Intn(15) + 85,
		WordsPerMinute:  &wpm,
		FillerWordCount: s.rng.Intn(10) + 5,
		SessionType:     sessionType,
	}
	s.mu.Unlock()

	return metrics
}

// Tips returns the canned coaching tips for a session type.
func (s *FeedbackService) Tips(sessionType string) []string {
	if sessionType == models.SessionTypeTeleprompter {
		return teleprompterTips
	}
	return freePracticeTips
}
