package repository

import (
	"testing"
	"time"
)

func TestCountStreak(t *testing.T) {
	today := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		dates []string
		want  int
	}{
		{"no history", nil, 0},
		{"practiced today only", []string{"2026-03-10"}, 1},
		{"three consecutive days", []string{"2026-03-10", "2026-03-09", "2026-03-08"}, 3},
		{"anchored on yesterday", []string{"2026-03-09", "2026-03-08"}, 2},
		{"gap breaks the streak", []string{"2026-03-10", "2026-03-09", "2026-03-07"}, 2},
		{"stale history", []string{"2026-03-05", "2026-03-04"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CountStreak(tt.dates, today)
			if got != tt.want {
				t.Errorf("CountStreak(%v) = %d, want %d", tt.dates, got, tt.want)
			}
		})
	}
}
