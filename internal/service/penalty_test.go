package service

import (
	"testing"
	"time"
)

func TestLateDays(t *testing.T) {
	due := time.Date(2026, 3, 10, 23, 59, 0, 0, time.UTC)

	tests := []struct {
		name        string
		submittedAt time.Time
		want        int
	}{
		{"on time", due.Add(-time.Hour), 0},
		{"exactly at due date", due, 0},
		{"one minute late", due.Add(time.Minute), 1},
		{"just under a day", due.Add(23 * time.Hour), 1},
		{"exactly one day", due.Add(24 * time.Hour), 1},
		{"a day and a second", due.Add(24*time.Hour + time.Second), 2},
		{"three days", due.Add(72 * time.Hour), 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LateDays(due, tt.submittedAt); got != tt.want {
				t.Errorf("LateDays() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestEffectiveGrade(t *testing.T) {
	tests := []struct {
		name      string
		raw       float64
		maxPoints float64
		isLate    bool
		lateDays  int
		penalty   float64
		allowLate bool
		want      float64
	}{
		{"on time unchanged", 90, 100, false, 0, 10, true, 90},
		{"one day late, 10 percent of max", 90, 100, true, 1, 10, true, 80},
		{"two days late stack", 90, 100, true, 2, 10, true, 70},
		{"floor at zero", 25, 100, true, 3, 10, true, 0},
		{"late but penalty disabled", 90, 100, true, 2, 10, false, 90},
		{"zero penalty percent", 90, 100, true, 5, 0, true, 90},
		{"penalty scales with max points", 45, 50, true, 1, 10, true, 40},
		{"never exceeds max points", 120, 100, false, 0, 0, true, 100},
		{"late with zero days still penalized once", 90, 100, true, 0, 10, true, 80},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EffectiveGrade(tt.raw, tt.maxPoints, tt.isLate, tt.lateDays, tt.penalty, tt.allowLate)
			if got != tt.want {
				t.Errorf("EffectiveGrade() = %g, want %g", got, tt.want)
			}
		})
	}
}
