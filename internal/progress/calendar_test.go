package progress

import (
	"testing"
	"time"
)

func TestMonthGrid(t *testing.T) {
	// March 2026 starts on a Sunday.
	days := []time.Time{date(2026, 3, 1), date(2026, 3, 14), date(2026, 2, 28)}
	grid := MonthGrid(2026, time.March, days, today, time.Monday)

	if len(grid) != 6 {
		t.Fatalf("expected 6 weeks, got %d", len(grid))
	}

	first := grid[0]
	if !first[0].Day.Equal(date(2026, 2, 23)) {
		t.Errorf("grid starts %s, want 2026-02-23", FormatDay(first[0].Day))
	}
	if first[5].InMonth || !first[5].Completed {
		t.Errorf("2026-02-28 should be a completed cell outside the month: %+v", first[5])
	}
	if !first[6].InMonth || !first[6].Completed {
		t.Errorf("2026-03-01 should be a completed cell in the month: %+v", first[6])
	}

	var todayCells, completedInMonth int
	for _, week := range grid {
		if week[0].Day.Weekday() != time.Monday {
			t.Errorf("week starts on %s", week[0].Day.Weekday())
		}
		for _, c := range week {
			if c.Today {
				todayCells++
				if !c.Day.Equal(date(2026, 3, 15)) {
					t.Errorf("today flagged on %s", FormatDay(c.Day))
				}
			}
			if c.InMonth && c.Completed {
				completedInMonth++
			}
		}
	}
	if todayCells != 1 {
		t.Errorf("expected one today cell, got %d", todayCells)
	}
	if completedInMonth != 2 {
		t.Errorf("expected 2 completed days in March, got %d", completedInMonth)
	}
}

func TestMonthGrid_SundayStart(t *testing.T) {
	grid := MonthGrid(2026, time.March, nil, today, time.Sunday)
	if len(grid) != 5 {
		t.Fatalf("expected 5 weeks, got %d", len(grid))
	}
	if !grid[0][0].Day.Equal(date(2026, 3, 1)) || !grid[0][0].InMonth {
		t.Errorf("first cell = %+v, want 2026-03-01 in month", grid[0][0])
	}
}
