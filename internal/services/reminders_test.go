package services

import (
	"testing"
	"time"
)

func TestShouldSendByLastSent(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		lastSent string
		want     bool
	}{
		{"never sent", "", true},
		{"sent an hour ago", now.Add(-time.Hour).Format(time.RFC3339), false},
		{"sent exactly at the interval", now.Add(-practiceReminderInterval).Format(time.RFC3339), true},
		{"sent well past the interval", now.Add(-72 * time.Hour).Format(time.RFC3339), true},
		{"garbage timestamp", "not-a-time", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := shouldSendByLastSent(tt.lastSent, practiceReminderInterval, now)
			if got != tt.want {
				t.Errorf("shouldSendByLastSent(%q) = %v, want %v", tt.lastSent, got, tt.want)
			}
		})
	}
}

func TestReminderReferenceTime(t *testing.T) {
	createdAt := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	practiced := time.Date(2026, 3, 8, 18, 30, 0, 0, time.UTC)

	if got := reminderReferenceTime(nil, createdAt); !got.Equal(createdAt) {
		t.Errorf("no practice yet should anchor on signup time, got %v", got)
	}

	if got := reminderReferenceTime(&practiced, createdAt); !got.Equal(practiced) {
		t.Errorf("should anchor on latest practice, got %v", got)
	}

	zero := time.Time{}
	if got := reminderReferenceTime(&zero, createdAt); !got.Equal(createdAt) {
		t.Errorf("zero practice time should fall back to signup time, got %v", got)
	}
}
