package progress

import (
	"testing"
	"time"

	"github.com/julianstephens/alpha/internal/models"
)

func TestCompletionRate(t *testing.T) {
	tests := []struct {
		total, completed, want int
	}{
		{0, 0, 0},
		{0, 5, 0},
		{10, 0, 0},
		{10, 10, 100},
		{3, 2, 67},
		{8, 1, 13},
		{10, 12, 100},
		{10, -1, 0},
	}
	for _, tt := range tests {
		if got := CompletionRate(tt.total, tt.completed); got != tt.want {
			t.Errorf("CompletionRate(%d, %d) = %d, want %d", tt.total, tt.completed, got, tt.want)
		}
	}
}

func TestCompletionRate_AlwaysInRange(t *testing.T) {
	for total := 0; total <= 60; total++ {
		for completed := 0; completed <= total; completed++ {
			rate := CompletionRate(total, completed)
			if rate < 0 || rate > 100 {
				t.Fatalf("CompletionRate(%d, %d) = %d out of range", total, completed, rate)
			}
		}
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		rate int
		want Status
	}{
		{100, StatusExcellent},
		{80, StatusExcellent},
		{79, StatusGood},
		{60, StatusGood},
		{59, StatusFair},
		{40, StatusFair},
		{39, StatusNeedsFocus},
		{0, StatusNeedsFocus},
	}
	for _, tt := range tests {
		if got := StatusFor(tt.rate); got != tt.want {
			t.Errorf("StatusFor(%d) = %q, want %q", tt.rate, got, tt.want)
		}
	}

	counts := make(map[Status]int)
	for rate := 0; rate <= 100; rate++ {
		counts[StatusFor(rate)]++
	}
	if len(counts) != 4 || counts[StatusExcellent]+counts[StatusGood]+counts[StatusFair]+counts[StatusNeedsFocus] != 101 {
		t.Errorf("status bands do not partition [0,100]: %v", counts)
	}
}

func TestTrackedDays(t *testing.T) {
	created := date(2026, 3, 10)
	if got := TrackedDays(created, nil, today); got != 6 {
		t.Errorf("TrackedDays() = %d, want 6", got)
	}
	// A backfilled completion before creation extends the span
	if got := TrackedDays(created, []time.Time{date(2026, 3, 1)}, today); got != 15 {
		t.Errorf("TrackedDays() with backfill = %d, want 15", got)
	}
	if got := TrackedDays(date(2026, 4, 1), nil, today); got != 0 {
		t.Errorf("TrackedDays() for future habit = %d, want 0", got)
	}
}

func TestHabitStats(t *testing.T) {
	habit := models.Habit{
		ID:        "h1",
		Domain:    models.DomainBody,
		Active:    true,
		CreatedAt: time.Date(2026, 3, 6, 8, 0, 0, 0, time.UTC),
		Days:      []string{"2026-03-10", "2026-03-11", "2026-03-12", "2026-03-13", "2026-03-14", "2026-03-14"},
	}

	stat := HabitStats(habit, today)
	if stat.Streak.Current != 5 {
		t.Errorf("Streak.Current = %d, want 5", stat.Streak.Current)
	}
	if stat.TrackedDays != 10 {
		t.Errorf("TrackedDays = %d, want 10", stat.TrackedDays)
	}
	if stat.CompletedDays != 5 {
		t.Errorf("CompletedDays = %d, want 5", stat.CompletedDays)
	}
	if stat.Rate != 50 || stat.Status != StatusFair {
		t.Errorf("Rate/Status = %d/%q, want 50/Fair", stat.Rate, stat.Status)
	}
	if stat.CompletedToday {
		t.Error("CompletedToday should be false")
	}
	if stat.WeeklyRate != 71 {
		t.Errorf("WeeklyRate = %d, want 71", stat.WeeklyRate)
	}
	wantWeek := []bool{false, true, true, true, true, true, false}
	for i := range wantWeek {
		if stat.Week[i] != wantWeek[i] {
			t.Errorf("Week = %v, want %v", stat.Week, wantWeek)
			break
		}
	}
}

func TestHabitStats_Empty(t *testing.T) {
	stat := HabitStats(models.Habit{CreatedAt: today}, today)
	if stat.Streak.Current != 0 || stat.Streak.Longest != 0 || stat.Rate != 0 {
		t.Errorf("empty habit stats = %+v, want zeros", stat)
	}
}
