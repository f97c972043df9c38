package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"talktrainer-backend/internal/models"
)

type SessionRepo struct {
	pool *pgxpool.Pool
}

func NewSessionRepo(pool *pgxpool.Pool) *SessionRepo {
	return &SessionRepo{pool: pool}
}

const sessionColumns = `id, user_id, duration, overall_score, clarity_score, pace_score,
	confidence_score, words_per_minute, filler_word_count, session_type, created_at`

func scanSession(row interface{ Scan(...any) error }) (*models.TrainingSession, error) {
	s := &models.TrainingSession{}
	err := row.Scan(
		&s.ID, &s.UserID, &s.Duration, &s.OverallScore, &s.ClarityScore, &s.PaceScore,
		&s.ConfidenceScore, &s.WordsPerMinute, &s.FillerWordCount, &s.SessionType, &s.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *SessionRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.TrainingSession, error) {
	return scanSession(r.pool.QueryRow(ctx,
		`SELECT `+sessionColumns+` FROM training_sessions WHERE id = $1`, id))
}

func (r *SessionRepo) ListRecent(ctx context.Context, userID uuid.UUID, limit int) ([]models.TrainingSession, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	rows, err := r.pool.Query(ctx,
		`SELECT `+sessionColumns+` FROM training_sessions
		 WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2`,
		userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sessions := make([]models.TrainingSession, 0)
	for rows.Next() {
		s, scanErr := scanSession(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		sessions = append(sessions, *s)
	}

	return sessions, rows.Err()
}
