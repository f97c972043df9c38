package services

import (
	"errors"
	"testing"
	"time"

	"talktrainer-backend/internal/models"
)

func TestNextDailyAverage(t *testing.T) {
	tests := []struct {
		name    string
		average int
		count   int
		score   int
		want    int
	}{
		{"first session", 0, 0, 92, 92},
		{"second session", 80, 1, 90, 85},
		{"third session rounds up", 85, 2, 81, 84},
		{"half rounds away from zero", 80, 1, 85, 83},
		{"identical scores stay put", 90, 4, 90, 90},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NextDailyAverage(tt.average, tt.count, tt.score)
			if got != tt.want {
				t.Errorf("NextDailyAverage(%d, %d, %d) = %d, want %d", tt.average, tt.count, tt.score, got, tt.want)
			}
		})
	}
}

func TestNextDailyAverageAccumulates(t *testing.T) {
	// Folding the same score in twice must move the count, not be a no-op.
	avg := NextDailyAverage(0, 0, 80)
	avg = NextDailyAverage(avg, 1, 90)
	if avg != 85 {
		t.Fatalf("after 80, 90: got %d, want 85", avg)
	}
	avg = NextDailyAverage(avg, 2, 70)
	if avg != 80 {
		t.Fatalf("after 80, 90, 70: got %d, want 80", avg)
	}
}

func TestBlendSkillScore(t *testing.T) {
	tests := []struct {
		old    int
		sample int
		want   int
	}{
		{80, 90, 83},
		{90, 50, 78},
		{85, 85, 85},
		{0, 100, 30},
	}

	for _, tt := range tests {
		got := BlendSkillScore(tt.old, tt.sample)
		if got != tt.want {
			t.Errorf("BlendSkillScore(%d, %d) = %d, want %d", tt.old, tt.sample, got, tt.want)
		}
	}
}

func TestDailyDateUsesUTC(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*3600)

	// 02:30 local is still the previous day in UTC.
	ts := time.Date(2026, 1, 1, 2, 30, 0, 0, loc)
	if got := DailyDate(ts); got != "2025-12-31" {
		t.Errorf("DailyDate(%v) = %q, want 2025-12-31", ts, got)
	}

	ts = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	if got := DailyDate(ts); got != "2026-03-10" {
		t.Errorf("DailyDate(%v) = %q, want 2026-03-10", ts, got)
	}
}

func TestDailyDatePartitionsAcrossMidnight(t *testing.T) {
	// Sessions saved either side of UTC midnight must land in different
	// daily rows. The service clock is injectable so the boundary is exact.
	svc := NewSessionService(nil)

	svc.now = func() time.Time { return time.Date(2026, 3, 9, 23, 59, 59, 0, time.UTC) }
	before := DailyDate(svc.now())

	svc.now = func() time.Time { return time.Date(2026, 3, 10, 0, 0, 1, 0, time.UTC) }
	after := DailyDate(svc.now())

	if before != "2026-03-09" {
		t.Errorf("before midnight: got %q, want 2026-03-09", before)
	}
	if after != "2026-03-10" {
		t.Errorf("after midnight: got %q, want 2026-03-10", after)
	}
	if before == after {
		t.Error("sessions across midnight must aggregate into separate days")
	}
}

func TestWeekWindowStart(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	start := WeekWindowStart(now)
	if start != "2026-03-03" {
		t.Fatalf("WeekWindowStart = %q, want 2026-03-03", start)
	}

	// Lexicographic compare on YYYY-MM-DD matches the SQL date filter:
	// a row dated exactly 7 days back is inside the window, 8 days is out.
	if !("2026-03-03" >= start) {
		t.Error("row dated 7 days back should be inside the window")
	}
	if "2026-03-02" >= start {
		t.Error("row dated 8 days back should be outside the window")
	}
}

func TestValidateMetrics(t *testing.T) {
	wpm := 140
	valid := func() models.SessionMetrics {
		return models.SessionMetrics{
			Duration:        300,
			OverallScore:    88,
			ClarityScore:    90,
			PaceScore:       85,
			ConfidenceScore: 87,
			WordsPerMinute:  &wpm,
			FillerWordCount: 6,
			SessionType:     models.SessionTypeFreePractice,
		}
	}

	tests := []struct {
		name      string
		mutate    func(*models.SessionMetrics)
		wantField string
	}{
		{"valid passes", func(m *models.SessionMetrics) {}, ""},
		{"score above 100", func(m *models.SessionMetrics) { m.OverallScore = 101 }, "overall_score"},
		{"negative score", func(m *models.SessionMetrics) { m.ClarityScore = -1 }, "clarity_score"},
		{"negative duration", func(m *models.SessionMetrics) { m.Duration = -5 }, "duration"},
		{"negative filler count", func(m *models.SessionMetrics) { m.FillerWordCount = -1 }, "filler_word_count"},
		{"unknown session type", func(m *models.SessionMetrics) { m.SessionType = "karaoke" }, "session_type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := valid()
			tt.mutate(&m)
			err := validateMetrics(&m)

			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("expected valid metrics, got %v", err)
				}
				return
			}

			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if _, ok := verr.Fields[tt.wantField]; !ok {
				t.Errorf("expected field error for %q, got %v", tt.wantField, verr.Fields)
			}
		})
	}
}

func TestValidateMetricsDefaultsSessionType(t *testing.T) {
	m := models.SessionMetrics{OverallScore: 80, ClarityScore: 80, PaceScore: 80, ConfidenceScore: 80}
	if err := validateMetrics(&m); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.SessionType != models.SessionTypeFreePractice {
		t.Errorf("empty session type should default to free_practice, got %q", m.SessionType)
	}
}
