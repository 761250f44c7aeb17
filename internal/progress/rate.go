package progress

import (
	"math"
	"time"

	"github.com/julianstephens/alpha/internal/constants"
	"github.com/julianstephens/alpha/internal/models"
)

// Status is a qualitative band over a completion rate
type Status string

const (
	StatusExcellent  Status = "Excellent"
	StatusGood       Status = "Good"
	StatusFair       Status = "Fair"
	StatusNeedsFocus Status = "Needs Focus"
)

// StatusFor maps a rate onto its band. Lower bounds are inclusive.
func StatusFor(rate int) Status {
	switch {
	case rate >= 80:
		return StatusExcellent
	case rate >= 60:
		return StatusGood
	case rate >= 40:
		return StatusFair
	default:
		return StatusNeedsFocus
	}
}

// percent returns round(part/whole*100), or 0 when whole is not positive.
func percent(part, whole float64) int {
	if whole <= 0 {
		return 0
	}
	return int(math.Round(part / whole * 100))
}

// CompletionRate returns the rounded percentage of completed days out of total.
func CompletionRate(total, completed int) int {
	if total <= 0 {
		return 0
	}
	completed = max(0, min(completed, total))
	return percent(float64(completed), float64(total))
}

// TrackedDays counts calendar days from the earlier of the habit's creation and
// its first completion up to and including today.
func TrackedDays(createdAt time.Time, days []time.Time, today time.Time) int {
	start := Day(createdAt)
	for _, d := range days {
		if Day(d).Before(start) {
			start = Day(d)
		}
	}
	if start.After(Day(today)) {
		return 0
	}
	return DaysBetween(start, today) + 1
}

// WeeklyRate is the completion rate over the rolling seven days ending today.
func WeeklyRate(days []time.Time, today time.Time) int {
	done := 0
	for _, completed := range LastDays(days, today, constants.DaysPerWeek) {
		if completed {
			done++
		}
	}
	return CompletionRate(constants.DaysPerWeek, done)
}

// LastDays reports completion for the n days ending today, oldest first.
func LastDays(days []time.Time, today time.Time, n int) []bool {
	set := daySet(days)
	out := make([]bool, n)
	start := Day(today).AddDate(0, 0, -(n - 1))
	for i := range out {
		_, out[i] = set[start.AddDate(0, 0, i)]
	}
	return out
}

// HabitStat is the derived progress view of a single habit
type HabitStat struct {
	Habit          models.Habit `json:"habit"`
	Streak         Streak       `json:"streak"`
	TrackedDays    int          `json:"tracked_days"`
	CompletedDays  int          `json:"completed_days"`
	Rate           int          `json:"rate"`
	Status         Status       `json:"status"`
	WeeklyRate     int          `json:"weekly_rate"`
	CompletedToday bool         `json:"completed_today"`
	Week           []bool       `json:"week"`
}

// HabitStats derives all progress values for a habit from its attached days.
func HabitStats(habit models.Habit, today time.Time) HabitStat {
	days := ParseDays(habit.Days)
	set := daySet(days)
	t := Day(today)

	completed := 0
	for d := range set {
		if !d.After(t) {
			completed++
		}
	}

	tracked := TrackedDays(habit.CreatedAt, days, today)
	rate := CompletionRate(tracked, completed)
	_, doneToday := set[t]

	return HabitStat{
		Habit:          habit,
		Streak:         Streaks(days, today),
		TrackedDays:    tracked,
		CompletedDays:  completed,
		Rate:           rate,
		Status:         StatusFor(rate),
		WeeklyRate:     WeeklyRate(days, today),
		CompletedToday: doneToday,
		Week:           LastDays(days, today, constants.DaysPerWeek),
	}
}
