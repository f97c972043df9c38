package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"talktrainer-backend/internal/models"
	"talktrainer-backend/internal/repository"
	"talktrainer-backend/internal/services"
)

const analysisQueue = "queue:session-analysis"

// Pool consumes session-analysis jobs from Redis, runs the (placeholder)
// speech analysis, saves the resulting session and notifies the user's
// WebSocket channel.
type Pool struct {
	redis       *redis.Client
	jobRepo     *repository.JobRepo
	feedback    *services.FeedbackService
	sessions    *services.SessionService
	workerCount int
	stopChan    chan struct{}
}

func NewPool(
	redisClient *redis.Client,
	jobRepo *repository.JobRepo,
	feedback *services.FeedbackService,
	sessions *services.SessionService,
	workerCount int,
) *Pool {
	return &Pool{
		redis:       redisClient,
		jobRepo:     jobRepo,
		feedback:    feedback,
		sessions:    sessions,
		workerCount: workerCount,
		stopChan:    make(chan struct{}),
	}
}

func (p *Pool) Start() {
	for i := 0; i < p.workerCount; i++ {
		go p.worker(i)
	}

	log.Printf("Started %d analysis worker goroutines", p.workerCount)
}

func (p *Pool) Stop() {
	close(p.stopChan)
}

func (p *Pool) worker(id int) {
	for {
		select {
		case <-p.stopChan:
			log.Printf("Worker %d shutting down", id)
			return
		default:
		}

		ctx := context.Background()

		// BLPOP with 30s timeout so the stop channel is checked regularly
		result, err := p.redis.BLPop(ctx, 30*time.Second, analysisQueue).Result()
		if err != nil {
			continue // Timeout or error, retry
		}

		if len(result) < 2 {
			continue
		}

		var job models.Job
		if err := json.Unmarshal([]byte(result[1]), &job); err != nil {
			log.Printf("Worker %d: failed to parse job: %v", id, err)
			continue
		}

		// Lock so a re-queued job is not processed twice
		lockKey := fmt.Sprintf("job_lock:%s", job.ID.String())
		locked, err := p.redis.SetNX(ctx, lockKey, "1", 10*time.Minute).Result()
		if err != nil || !locked {
			continue
		}

		log.Printf("Worker %d: processing job %s (type: %s)", id, job.ID, job.Type)

		if err := p.jobRepo.UpdateStatus(ctx, job.ID, "processing"); err != nil {
			log.Printf("Worker %d: failed to mark job %s processing: %v", id, job.ID, err)
		}

		if err := p.processAnalysis(ctx, &job); err != nil {
			p.handleFailure(ctx, &job, err)
		} else {
			log.Printf("Worker %d: job %s completed", id, job.ID)
		}
	}
}

func (p *Pool) processAnalysis(ctx context.Context, job *models.Job) error {
	if job.Type != models.JobTypeSessionAnalysis {
		return fmt.Errorf("unknown job type: %s", job.Type)
	}

	var req models.AnalysisRequest
	if err := json.Unmarshal(job.ConfigJSON, &req); err != nil {
		return fmt.Errorf("invalid job config: %w", err)
	}

	metrics := p.feedback.Analyze(req)

	session, err := p.sessions.SaveCompleteSession(ctx, job.UserID, metrics)
	if err != nil {
		return fmt.Errorf("failed to save analyzed session: %w", err)
	}

	analysis := models.AnalysisResult{
		SessionID:       session.ID,
		OverallScore:    session.OverallScore,
		ClarityScore:    session.ClarityScore,
		PaceScore:       session.PaceScore,
		ConfidenceScore: session.ConfidenceScore,
		FillerWordCount: session.FillerWordCount,
		Tips:            p.feedback.Tips(session.SessionType),
	}
	if session.WordsPerMinute != nil {
		analysis.WordsPerMinute = *session.WordsPerMinute
	}

	resultJSON, err := json.Marshal(analysis)
	if err != nil {
		return fmt.Errorf("failed to marshal analysis result: %w", err)
	}

	if err := p.jobRepo.Complete(ctx, job.ID, resultJSON); err != nil {
		return fmt.Errorf("failed to mark job completed: %w", err)
	}

	p.publish(ctx, job.UserID, models.WSMessage{
		Type: "completed",
		Payload: models.CompletedEvent{
			JobID:      job.ID,
			ResultType: "session-analysis",
		},
	})

	return nil
}

func (p *Pool) handleFailure(ctx context.Context, job *models.Job, processErr error) {
	log.Printf("Job %s failed: %v", job.ID, processErr)

	if err := p.jobRepo.Fail(ctx, job.ID, processErr.Error()); err != nil {
		log.Printf("Failed to mark job %s failed: %v", job.ID, err)
	}

	p.publish(ctx, job.UserID, models.WSMessage{
		Type: "error",
		Payload: models.ErrorEvent{
			JobID:        job.ID,
			ErrorCode:    "ANALYSIS_FAILED",
			ErrorMessage: "Analysis failed. Please try again.",
		},
	})
}

func (p *Pool) publish(ctx context.Context, userID uuid.UUID, msg models.WSMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}

	channel := "user_updates:" + userID.String()
	if err := p.redis.Publish(ctx, channel, data).Err(); err != nil {
		log.Printf("Failed to publish update for user %s: %v", userID, err)
	}
}
