package progress

import "time"

// CalendarCell is a single day in a month grid
type CalendarCell struct {
	Day       time.Time
	InMonth   bool
	Completed bool
	Today     bool
}

// MonthGrid lays out a month as full weeks starting on weekStart. Leading and
// trailing cells from neighbouring months are included with InMonth false.
func MonthGrid(year int, month time.Month, days []time.Time, today time.Time, weekStart time.Weekday) [][]CalendarCell {
	set := daySet(days)
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)

	offset := (int(first.Weekday()) - int(weekStart) + 7) % 7
	cursor := first.AddDate(0, 0, -offset)
	t := Day(today)

	var weeks [][]CalendarCell
	for !cursor.After(last) {
		week := make([]CalendarCell, 7)
		for i := range week {
			_, done := set[cursor]
			week[i] = CalendarCell{
				Day:       cursor,
				InMonth:   cursor.Month() == month,
				Completed: done,
				Today:     cursor.Equal(t),
			}
			cursor = cursor.AddDate(0, 0, 1)
		}
		weeks = append(weeks, week)
	}
	return weeks
}
