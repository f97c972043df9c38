package services

import (
	"context"
	"log"
	"time"

	"talktrainer-backend/internal/repository"
)

const (
	practiceReminderKey         = "practice_reminders"
	practiceReminderLastSentKey = "practice_reminders_last_sent_at"
	practiceReminderInterval    = 48 * time.Hour
	reminderPollInterval        = 1 * time.Hour
)

// ReminderScheduler nudges users who opted in to practice reminders and have
// not recorded a session for a while.
type ReminderScheduler struct {
	userRepo *repository.UserRepo
	email    *EmailService
	stopChan chan struct{}
}

func NewReminderScheduler(userRepo *repository.UserRepo, email *EmailService) *ReminderScheduler {
	return &ReminderScheduler{
		userRepo: userRepo,
		email:    email,
		stopChan: make(chan struct{}),
	}
}

func (s *ReminderScheduler) Start() {
	if s.userRepo == nil || s.email == nil {
		return
	}

	go s.loop()

	log.Printf("Practice reminder scheduler started")
}

func (s *ReminderScheduler) Stop() {
	select {
	case <-s.stopChan:
		return
	default:
		close(s.stopChan)
	}
}

func (s *ReminderScheduler) loop() {
	// Run on startup as well as by interval.
	s.sendPracticeReminders(context.Background(), time.Now().UTC())

	ticker := time.NewTicker(reminderPollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.sendPracticeReminders(context.Background(), time.Now().UTC())
		}
	}
}

func (s *ReminderScheduler) sendPracticeReminders(ctx context.Context, now time.Time) {
	recipients, err := s.userRepo.ListUsersWithReminderEnabled(ctx, practiceReminderKey, practiceReminderLastSentKey)
	if err != nil {
		log.Printf("practice reminders: failed to list recipients: %v", err)
		return
	}

	for _, recipient := range recipients {
		if !shouldSendByLastSent(recipient.LastSentAtRaw, practiceReminderInterval, now) {
			continue
		}

		lastPracticeAt, practiceErr := s.userRepo.GetLatestPracticeAt(ctx, recipient.ID)
		if practiceErr != nil {
			log.Printf("practice reminders: failed to load latest practice for user %s: %v", recipient.ID, practiceErr)
			continue
		}

		referenceTime := reminderReferenceTime(lastPracticeAt, recipient.CreatedAt)
		idle := now.Sub(referenceTime)
		if idle < practiceReminderInterval {
			continue
		}

		daysIdle := int(idle.Hours() / 24)
		if err := s.email.SendPracticeReminderEmail(recipient.Email, recipient.FullName, daysIdle); err != nil {
			log.Printf("practice reminders: failed to send to %s: %v", recipient.Email, err)
			continue
		}

		if err := s.userRepo.SetNotificationTimestamp(ctx, recipient.ID, practiceReminderLastSentKey, now); err != nil {
			log.Printf("practice reminders: failed to persist last sent at for user %s: %v", recipient.ID, err)
		}
	}
}

func shouldSendByLastSent(lastSentRaw string, minInterval time.Duration, now time.Time) bool {
	if lastSentRaw == "" {
		return true
	}

	lastSentAt, err := time.Parse(time.RFC3339, lastSentRaw)
	if err != nil {
		return true
	}

	return now.Sub(lastSentAt) >= minInterval
}

func reminderReferenceTime(lastPracticeAt *time.Time, createdAt time.Time) time.Time {
	if lastPracticeAt != nil && !lastPracticeAt.IsZero() {
		return lastPracticeAt.UTC()
	}

	return createdAt.UTC()
}
