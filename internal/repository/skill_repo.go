package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"talktrainer-backend/internal/models"
)

type SkillRepo struct {
	pool *pgxpool.Pool
}

func NewSkillRepo(pool *pgxpool.Pool) *SkillRepo {
	return &SkillRepo{pool: pool}
}

func (r *SkillRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.UserSkill, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, skill_name, score, updated_at
		FROM user_skills
		WHERE user_id = $1
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	skills := make([]models.UserSkill, 0)
	for rows.Next() {
		var s models.UserSkill
		if scanErr := rows.Scan(&s.ID, &s.UserID, &s.SkillName, &s.Score, &s.UpdatedAt); scanErr != nil {
			return nil, scanErr
		}
		skills = append(skills, s)
	}

	return skills, rows.Err()
}
