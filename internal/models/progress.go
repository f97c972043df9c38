package models

import (
	"time"

	"github.com/google/uuid"
)

// DailyProgress is the per-user, per-calendar-day running aggregate.
// Exactly one row exists per (user_id, date); average_score is the running
// mean of overall scores submitted that day.
type DailyProgress struct {
	ID            uuid.UUID `json:"id"`
	UserID        uuid.UUID `json:"user_id"`
	Date          string    `json:"date"` // YYYY-MM-DD, UTC
	AverageScore  int       `json:"average_score"`
	SessionsCount int       `json:"sessions_count"`
	PracticeTime  int       `json:"practice_time"`
	CreatedAt     time.Time `json:"created_at"`
}

const (
	SkillClarity    = "clarity"
	SkillPace       = "pace"
	SkillConfidence = "confidence"
	SkillVocabulary = "vocabulary"
)

// UserSkill holds one score per named skill per user.
type UserSkill struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	SkillName string    `json:"skill_name"`
	Score     int       `json:"score"`
	UpdatedAt time.Time `json:"updated_at"`
}
