package repository

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"talktrainer-backend/internal/models"
)

type JobRepo struct {
	pool *pgxpool.Pool
}

func NewJobRepo(pool *pgxpool.Pool) *JobRepo {
	return &JobRepo{pool: pool}
}

func (r *JobRepo) Create(ctx context.Context, job *models.Job) error {
	if len(job.ConfigJSON) == 0 {
		job.ConfigJSON = json.RawMessage("{}")
	}

	job.ID = uuid.New()
	job.Status = "pending"

	return r.pool.QueryRow(ctx, `
		INSERT INTO jobs (id, user_id, type, config_json, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`, job.ID, job.UserID, job.Type, job.ConfigJSON, job.Status).Scan(&job.CreatedAt)
}

func (r *JobRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Job, error) {
	job := &models.Job{}
	err := r.pool.QueryRow(ctx, `
		SELECT id, user_id, type, config_json, result_json, status, error_message, created_at, completed_at
		FROM jobs WHERE id = $1
	`, id).Scan(
		&job.ID, &job.UserID, &job.Type, &job.ConfigJSON, &job.ResultJSON,
		&job.Status, &job.ErrorMessage, &job.CreatedAt, &job.CompletedAt,
	)
	if err != nil {
		return nil, err
	}
	return job, nil
}

func (r *JobRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	_, err := r.pool.Exec(ctx, "UPDATE jobs SET status = $1 WHERE id = $2", status, id)
	return err
}

func (r *JobRepo) Complete(ctx context.Context, id uuid.UUID, result json.RawMessage) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE jobs SET status = 'completed', result_json = $1, completed_at = NOW() WHERE id = $2
	`, result, id)
	return err
}

func (r *JobRepo) Fail(ctx context.Context, id uuid.UUID, message string) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE jobs SET status = 'failed', error_message = $1, completed_at = NOW() WHERE id = $2
	`, message, id)
	return err
}
