package progress

import (
	"time"

	"github.com/julianstephens/alpha/internal/models"
)

// SprintProgress is the share of objectives at exactly 100%. Partial progress
// does not count toward sprint completion.
func SprintProgress(objectives []models.Objective) int {
	done := 0
	for _, o := range objectives {
		if o.Progress == 100 {
			done++
		}
	}
	return percent(float64(done), float64(len(objectives)))
}

// Timeline describes how far today is through a sprint's date range
type Timeline struct {
	TotalDays     int `json:"total_days"`
	ElapsedDays   int `json:"elapsed_days"`
	RemainingDays int `json:"remaining_days"`
	Percent       int `json:"percent"`
}

// SprintTimeline measures elapsed days inclusively, clamped to the sprint range.
func SprintTimeline(start, end, today time.Time) Timeline {
	total := DaysBetween(start, end) + 1
	if total <= 0 {
		return Timeline{}
	}
	elapsed := max(0, min(DaysBetween(start, today)+1, total))
	return Timeline{
		TotalDays:     total,
		ElapsedDays:   elapsed,
		RemainingDays: total - elapsed,
		Percent:       percent(float64(elapsed), float64(total)),
	}
}
