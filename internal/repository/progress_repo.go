package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"talktrainer-backend/internal/models"
)

type ProgressRepo struct {
	pool *pgxpool.Pool
}

func NewProgressRepo(pool *pgxpool.Pool) *ProgressRepo {
	return &ProgressRepo{pool: pool}
}

// ListSince returns the daily aggregates with date >= fromDate (YYYY-MM-DD),
// ordered by date ascending. Days without sessions are simply absent.
func (r *ProgressRepo) ListSince(ctx context.Context, userID uuid.UUID, fromDate string) ([]models.DailyProgress, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, to_char(date, 'YYYY-MM-DD'), average_score, sessions_count, practice_time, created_at
		FROM daily_progress
		WHERE user_id = $1 AND date >= $2::date
		ORDER BY date ASC
	`, userID, fromDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	progress := make([]models.DailyProgress, 0)
	for rows.Next() {
		var p models.DailyProgress
		if scanErr := rows.Scan(
			&p.ID, &p.UserID, &p.Date, &p.AverageScore, &p.SessionsCount, &p.PracticeTime, &p.CreatedAt,
		); scanErr != nil {
			return nil, scanErr
		}
		progress = append(progress, p)
	}

	return progress, rows.Err()
}

// WeeklyTotals sums practice seconds and session count over the trailing 7 days.
func (r *ProgressRepo) WeeklyTotals(ctx context.Context, userID uuid.UUID, fromDate string) (practiceSeconds, sessions int, err error) {
	err = r.pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(practice_time), 0), COALESCE(SUM(sessions_count), 0)
		FROM daily_progress
		WHERE user_id = $1 AND date >= $2::date
	`, userID, fromDate).Scan(&practiceSeconds, &sessions)
	return
}

// RecentDates returns up to limit practice dates for the user, newest first.
func (r *ProgressRepo) RecentDates(ctx context.Context, userID uuid.UUID, limit int) ([]string, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT to_char(date, 'YYYY-MM-DD')
		FROM daily_progress
		WHERE user_id = $1
		ORDER BY date DESC
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	dates := make([]string, 0)
	for rows.Next() {
		var d string
		if scanErr := rows.Scan(&d); scanErr != nil {
			return nil, scanErr
		}
		dates = append(dates, d)
	}

	return dates, rows.Err()
}

// Streak counts consecutive practice days ending today or yesterday, so an
// unbroken run is not reported as zero before the user practices today.
func (r *ProgressRepo) Streak(ctx context.Context, userID uuid.UUID, today time.Time) (int, error) {
	dates, err := r.RecentDates(ctx, userID, 366)
	if err != nil {
		return 0, err
	}

	return CountStreak(dates, today), nil
}

// CountStreak walks newest-first YYYY-MM-DD dates and counts the run of
// consecutive days anchored at today (or yesterday, if today is unplayed).
func CountStreak(datesDesc []string, today time.Time) int {
	if len(datesDesc) == 0 {
		return 0
	}

	day := today.UTC().Truncate(24 * time.Hour)
	expected := day.Format("2006-01-02")

	if datesDesc[0] != expected {
		day = day.AddDate(0, 0, -1)
		expected = day.Format("2006-01-02")
		if datesDesc[0] != expected {
			return 0
		}
	}

	streak := 0
	for _, d := range datesDesc {
		if d != expected {
			break
		}
		streak++
		day = day.AddDate(0, 0, -1)
		expected = day.Format("2006-01-02")
	}

	return streak
}
