package progress

import (
	"fmt"
	"sort"
	"time"

	"github.com/julianstephens/alpha/internal/constants"
)

// Day normalizes t to midnight UTC of its calendar date. Comparing normalized
// values avoids any time-of-day or DST drift when counting days.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the number of calendar days from a to b (negative if b is earlier).
func DaysBetween(a, b time.Time) int {
	return int(Day(b).Sub(Day(a)).Hours() / 24)
}

// ParseDay parses a YYYY-MM-DD string into a normalized day.
func ParseDay(s string) (time.Time, error) {
	t, err := time.Parse(constants.DateFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format: %s (expected YYYY-MM-DD)", s)
	}
	return Day(t), nil
}

// FormatDay renders a day as YYYY-MM-DD.
func FormatDay(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// ParseDays converts stored day strings into normalized days, skipping malformed values.
func ParseDays(days []string) []time.Time {
	out := make([]time.Time, 0, len(days))
	for _, s := range days {
		if d, err := ParseDay(s); err == nil {
			out = append(out, d)
		}
	}
	return out
}

// daySet deduplicates days after normalization.
func daySet(days []time.Time) map[time.Time]struct{} {
	set := make(map[time.Time]struct{}, len(days))
	for _, d := range days {
		set[Day(d)] = struct{}{}
	}
	return set
}

func sortedDays(set map[time.Time]struct{}) []time.Time {
	sorted := make([]time.Time, 0, len(set))
	for d := range set {
		sorted = append(sorted, d)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Before(sorted[j]) })
	return sorted
}

// QuarterOf returns the calendar quarter (1-4) and year containing t.
func QuarterOf(t time.Time) (quarter, year int) {
	return (int(t.Month())-1)/3 + 1, t.Year()
}

// LoadLocation loads a timezone location from an IANA timezone name.
// If the timezone is "Local" or empty, it returns the system's local timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(timezone)
}

// Today returns the current calendar day in the given timezone.
func Today(timezone string) (time.Time, error) {
	loc, err := LoadLocation(timezone)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return Day(time.Now().In(loc)), nil
}
