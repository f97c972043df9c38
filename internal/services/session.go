package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"talktrainer-backend/internal/models"
)

// SessionService persists finished practice sessions and keeps the per-day
// aggregates, per-skill scores and lifetime totals in step with them. All
// writes for one session happen in a single transaction: either the session
// row and every derived aggregate commit together, or nothing does.
type SessionService struct {
	pool *pgxpool.Pool
	now  func() time.Time
}

func NewSessionService(pool *pgxpool.Pool) *SessionService {
	return &SessionService{pool: pool, now: time.Now}
}

// NextDailyAverage folds one more overall score into a running mean kept as
// (average, count). Rounds to nearest, halves away from zero.
func NextDailyAverage(average, count, score int) int {
	return int(math.Round(float64(average*count+score) / float64(count+1)))
}

// BlendSkillScore nudges a skill score toward the latest per-session sample
// with an exponential moving blend. Older history dominates so a single bad
// session cannot crater a skill.
func BlendSkillScore(old, sample int) int {
	return int(math.Round(0.7*float64(old) + 0.3*float64(sample)))
}

// DailyDate truncates a timestamp to its UTC calendar date, YYYY-MM-DD.
func DailyDate(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// WeekWindowStart returns the date 7 days before t. A progress row dated
// exactly 7 days back is still inside the trailing-week window.
func WeekWindowStart(t time.Time) string {
	return DailyDate(t.AddDate(0, 0, -7))
}

func validateMetrics(m *models.SessionMetrics) error {
	fieldErrors := make(map[string]string)

	if m.Duration < 0 {
		fieldErrors["duration"] = "Duration must not be negative"
	}
	for field, score := range map[string]int{
		"overall_score":    m.OverallScore,
		"clarity_score":    m.ClarityScore,
		"pace_score":       m.PaceScore,
		"confidence_score": m.ConfidenceScore,
	} {
		if score < 0 || score > 100 {
			fieldErrors[field] = "Score must be between 0 and 100"
		}
	}
	if m.FillerWordCount < 0 {
		fieldErrors["filler_word_count"] = "Filler word count must not be negative"
	}
	if m.WordsPerMinute != nil && *m.WordsPerMinute < 0 {
		fieldErrors["words_per_minute"] = "Words per minute must not be negative"
	}

	if m.SessionType == "" {
		m.SessionType = models.SessionTypeFreePractice
	}
	if m.SessionType != models.SessionTypeFreePractice && m.SessionType != models.SessionTypeTeleprompter {
		fieldErrors["session_type"] = "Session type must be free_practice or teleprompter"
	}

	if len(fieldErrors) > 0 {
		return &ValidationError{Fields: fieldErrors}
	}
	return nil
}

// SaveCompleteSession records the session, folds it into today's aggregate,
// blends the per-skill scores and bumps the lifetime totals on the user row.
func (s *SessionService) SaveCompleteSession(ctx context.Context, userID uuid.UUID, metrics models.SessionMetrics) (*models.TrainingSession, error) {
	if userID == uuid.Nil {
		return nil, &UnauthorizedError{Message: "Not authenticated"}
	}
	if err := validateMetrics(&metrics); err != nil {
		return nil, err
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	// Locking the user row first serializes concurrent saves for the same
	// user, which is what keeps the read-modify-write below safe.
	var totalSessions, overallScore int
	err = tx.QueryRow(ctx, `
		SELECT total_sessions, overall_score FROM users WHERE id = $1 FOR UPDATE
	`, userID).Scan(&totalSessions, &overallScore)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &UnauthorizedError{Message: "Not authenticated"}
		}
		return nil, fmt.Errorf("failed to load user totals: %w", err)
	}

	session := &models.TrainingSession{
		UserID:          userID,
		Duration:        metrics.Duration,
		OverallScore:    metrics.OverallScore,
		ClarityScore:    metrics.ClarityScore,
		PaceScore:       metrics.PaceScore,
		ConfidenceScore: metrics.ConfidenceScore,
		WordsPerMinute:  metrics.WordsPerMinute,
		FillerWordCount: metrics.FillerWordCount,
		SessionType:     metrics.SessionType,
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO training_sessions
			(user_id, duration, overall_score, clarity_score, pace_score, confidence_score,
			 words_per_minute, filler_word_count, session_type)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at
	`, userID, metrics.Duration, metrics.OverallScore, metrics.ClarityScore, metrics.PaceScore,
		metrics.ConfidenceScore, metrics.WordsPerMinute, metrics.FillerWordCount, metrics.SessionType,
	).Scan(&session.ID, &session.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert session: %w", err)
	}

	if _, err := s.applyDailyProgress(ctx, tx, userID, metrics.OverallScore, metrics.Duration); err != nil {
		return nil, err
	}

	if err := s.blendSkills(ctx, tx, userID, metrics); err != nil {
		return nil, err
	}

	newOverall := NextDailyAverage(overallScore, totalSessions, metrics.OverallScore)
	_, err = tx.Exec(ctx, `
		UPDATE users
		SET total_sessions = total_sessions + 1,
		    total_practice_time = total_practice_time + $1,
		    overall_score = $2
		WHERE id = $3
	`, metrics.Duration, newOverall, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to update lifetime totals: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit session: %w", err)
	}

	return session, nil
}

// applyDailyProgress performs the read-modify-write on today's aggregate row
// inside the caller's transaction. First session of the day inserts the row;
// later sessions fold their score into the running average.
func (s *SessionService) applyDailyProgress(ctx context.Context, tx pgx.Tx, userID uuid.UUID, score, duration int) (*models.DailyProgress, error) {
	today := DailyDate(s.now())

	progress := &models.DailyProgress{UserID: userID, Date: today}

	err := tx.QueryRow(ctx, `
		SELECT id, average_score, sessions_count, practice_time, created_at
		FROM daily_progress
		WHERE user_id = $1 AND date = $2::date
		FOR UPDATE
	`, userID, today).Scan(
		&progress.ID, &progress.AverageScore, &progress.SessionsCount, &progress.PracticeTime, &progress.CreatedAt,
	)

	switch {
	case err == nil:
		progress.AverageScore = NextDailyAverage(progress.AverageScore, progress.SessionsCount, score)
		progress.SessionsCount++
		progress.PracticeTime += duration

		_, err = tx.Exec(ctx, `
			UPDATE daily_progress
			SET average_score = $1, sessions_count = $2, practice_time = $3
			WHERE id = $4
		`, progress.AverageScore, progress.SessionsCount, progress.PracticeTime, progress.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to update daily progress: %w", err)
		}

	case errors.Is(err, pgx.ErrNoRows):
		progress.AverageScore = score
		progress.SessionsCount = 1
		progress.PracticeTime = duration

		err = tx.QueryRow(ctx, `
			INSERT INTO daily_progress (user_id, date, average_score, sessions_count, practice_time)
			VALUES ($1, $2::date, $3, $4, $5)
			RETURNING id, created_at
		`, userID, today, score, 1, duration).Scan(&progress.ID, &progress.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to insert daily progress: %w", err)
		}

	default:
		return nil, fmt.Errorf("failed to load daily progress: %w", err)
	}

	return progress, nil
}

// blendSkills updates the clarity/pace/confidence skill rows from the
// session's per-category scores. Vocabulary has no per-session signal and is
// left alone.
func (s *SessionService) blendSkills(ctx context.Context, tx pgx.Tx, userID uuid.UUID, m models.SessionMetrics) error {
	samples := map[string]int{
		models.SkillClarity:    m.ClarityScore,
		models.SkillPace:       m.PaceScore,
		models.SkillConfidence: m.ConfidenceScore,
	}

	rows, err := tx.Query(ctx, `
		SELECT skill_name, score FROM user_skills WHERE user_id = $1 FOR UPDATE
	`, userID)
	if err != nil {
		return fmt.Errorf("failed to load skills: %w", err)
	}

	existing := make(map[string]int)
	for rows.Next() {
		var name string
		var score int
		if scanErr := rows.Scan(&name, &score); scanErr != nil {
			rows.Close()
			return scanErr
		}
		existing[name] = score
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	for _, name := range []string{models.SkillClarity, models.SkillPace, models.SkillConfidence} {
		sample := samples[name]

		score := sample
		if old, ok := existing[name]; ok {
			score = BlendSkillScore(old, sample)
		}

		_, err := tx.Exec(ctx, `
			INSERT INTO user_skills (user_id, skill_name, score, updated_at)
			VALUES ($1, $2, $3, NOW())
			ON CONFLICT (user_id, skill_name) DO UPDATE
			SET score = $3, updated_at = NOW()
		`, userID, name, score)
		if err != nil {
			return fmt.Errorf("failed to upsert skill %s: %w", name, err)
		}
	}

	return nil
}
