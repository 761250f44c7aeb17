package progress

import (
	"testing"
	"time"

	"github.com/julianstephens/alpha/internal/models"
)

func objectives(progress ...int) []models.Objective {
	out := make([]models.Objective, len(progress))
	for i, p := range progress {
		out[i] = models.Objective{Progress: p}
	}
	return out
}

func TestSprintProgress(t *testing.T) {
	tests := []struct {
		name       string
		objectives []models.Objective
		want       int
	}{
		{"no objectives", nil, 0},
		{"two of three complete", objectives(100, 100, 65), 67},
		{"partial progress ignored", objectives(99, 99, 99), 0},
		{"all complete", objectives(100, 100), 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SprintProgress(tt.objectives); got != tt.want {
				t.Errorf("SprintProgress() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestSprintTimeline(t *testing.T) {
	start, end := date(2026, 1, 1), date(2026, 3, 31)

	mid := SprintTimeline(start, end, date(2026, 2, 14))
	if mid.TotalDays != 90 || mid.ElapsedDays != 45 || mid.RemainingDays != 45 || mid.Percent != 50 {
		t.Errorf("mid-sprint timeline = %+v", mid)
	}

	before := SprintTimeline(start, end, date(2025, 12, 1))
	if before.ElapsedDays != 0 || before.Percent != 0 {
		t.Errorf("pre-sprint timeline = %+v", before)
	}

	after := SprintTimeline(start, end, date(2026, 6, 1))
	if after.ElapsedDays != 90 || after.RemainingDays != 0 || after.Percent != 100 {
		t.Errorf("post-sprint timeline = %+v", after)
	}

	if inverted := SprintTimeline(end, start, end); inverted != (Timeline{}) {
		t.Errorf("inverted range timeline = %+v, want zero", inverted)
	}
}

func TestQuarterOf(t *testing.T) {
	tests := []struct {
		month   int
		quarter int
	}{
		{1, 1}, {3, 1}, {4, 2}, {6, 2}, {7, 3}, {9, 3}, {10, 4}, {12, 4},
	}
	for _, tt := range tests {
		q, y := QuarterOf(date(2026, time.Month(tt.month), 10))
		if q != tt.quarter || y != 2026 {
			t.Errorf("QuarterOf(month %d) = (%d, %d), want (%d, 2026)", tt.month, q, y, tt.quarter)
		}
	}
}
