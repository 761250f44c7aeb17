package progress

import "time"

// Streak holds the consecutive-day counts for one habit
type Streak struct {
	Current int `json:"current"`
	Longest int `json:"longest"`
}

// Streaks computes the current and longest runs of consecutive completed days.
// Input order does not matter and duplicate days count once.
//
// The current streak counts back from today when today is completed, otherwise
// from yesterday; a habit not done yesterday or today has no current streak.
func Streaks(days []time.Time, today time.Time) Streak {
	set := daySet(days)
	if len(set) == 0 {
		return Streak{}
	}

	var s Streak
	run := 0
	var prev time.Time
	for i, d := range sortedDays(set) {
		if i > 0 && d.Equal(prev.AddDate(0, 0, 1)) {
			run++
		} else {
			run = 1
		}
		if run > s.Longest {
			s.Longest = run
		}
		prev = d
	}

	cursor := Day(today)
	if _, ok := set[cursor]; !ok {
		cursor = cursor.AddDate(0, 0, -1)
	}
	for {
		if _, ok := set[cursor]; !ok {
			break
		}
		s.Current++
		cursor = cursor.AddDate(0, 0, -1)
	}

	return s
}

// StreaksFromDays is Streaks over stored YYYY-MM-DD strings.
func StreaksFromDays(days []string, today time.Time) Streak {
	return Streaks(ParseDays(days), today)
}
