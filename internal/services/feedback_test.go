package services

import (
	"math/rand"
	"sync"
	"testing"

	"talktrainer-backend/internal/models"
)

func TestAnalyzeScoreRanges(t *testing.T) {
	svc := NewFeedbackService(rand.New(rand.NewSource(1)))

	for i := 0; i < 200; i++ {
		m := svc.Analyze(models.AnalysisRequest{Duration: 120})

		if m.OverallScore < 85 || m.OverallScore > 99 {
			t.Fatalf("overall score out of range: %d", m.OverallScore)
		}
		if m.ClarityScore < 85 || m.ClarityScore > 99 {
			t.Fatalf("clarity score out of range: %d", m.ClarityScore)
		}
		if m.PaceScore < 80 || m.PaceScore > 94 {
			t.Fatalf("pace score out of range: %d", m.PaceScore)
		}
		if m.ConfidenceScore < 85 || m.ConfidenceScore > 99 {
			t.Fatalf("confidence score out of range: %d", m.ConfidenceScore)
		}
		if m.FillerWordCount < 5 || m.FillerWordCount > 14 {
			t.Fatalf("filler word count out of range: %d", m.FillerWordCount)
		}
		if m.WordsPerMinute == nil || *m.WordsPerMinute < 130 || *m.WordsPerMinute > 159 {
			t.Fatalf("words per minute out of range: %v", m.WordsPerMinute)
		}
		if m.Duration != 120 {
			t.Fatalf("duration not carried through: %d", m.Duration)
		}
	}
}

func TestAnalyzeConcurrentWorkers(t *testing.T) {
	// The worker pool shares one service across its goroutines, so the
	// generator must tolerate parallel draws. Run with -race.
	svc := NewFeedbackService(rand.New(rand.NewSource(1)))

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				m := svc.Analyze(models.AnalysisRequest{Duration: 60})
				if m.OverallScore < 85 || m.OverallScore > 99 {
					t.Errorf("overall score out of range: %d", m.OverallScore)
					return
				}
			}
		}()
	}
	wg.Wait()
}

func TestAnalyzeDefaultsSessionType(t *testing.T) {
	svc := NewFeedbackService(rand.New(rand.NewSource(1)))

	m := svc.Analyze(models.AnalysisRequest{})
	if m.SessionType != models.SessionTypeFreePractice {
		t.Errorf("empty session type should default to free_practice, got %q", m.SessionType)
	}

	m = svc.Analyze(models.AnalysisRequest{SessionType: models.SessionTypeTeleprompter})
	if m.SessionType != models.SessionTypeTeleprompter {
		t.Errorf("session type not carried through, got %q", m.SessionType)
	}
}

func TestTipsBySessionType(t *testing.T) {
	svc := NewFeedbackService(rand.New(rand.NewSource(1)))

	free := svc.Tips(models.SessionTypeFreePractice)
	tele := svc.Tips(models.SessionTypeTeleprompter)

	if len(free) == 0 || len(tele) == 0 {
		t.Fatal("tips must not be empty")
	}
	if free[0] == tele[0] {
		t.Error("free practice and teleprompter should have distinct tip pools")
	}

	// Unknown types fall back to the free practice pool.
	if got := svc.Tips("unknown"); got[0] != free[0] {
		t.Error("unknown session type should fall back to free practice tips")
	}
}
