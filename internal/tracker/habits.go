package tracker

import (
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/alpha/internal/models"
	"github.com/julianstephens/alpha/internal/progress"
	"github.com/julianstephens/alpha/internal/storage"
)

// AddHabit creates an active habit.
func (t *Tracker) AddHabit(userID, title, description string, domain models.Domain) (models.Habit, error) {
	h := models.Habit{
		ID:          uuid.New().String(),
		UserID:      userID,
		Title:       title,
		Description: description,
		Domain:      domain,
		Active:      true,
		CreatedAt:   t.now().UTC().Truncate(time.Second),
	}
	if err := h.Validate(); err != nil {
		return models.Habit{}, invalid(err)
	}
	if err := t.store.AddHabit(h); err != nil {
		return models.Habit{}, wrap("add habit", err)
	}
	return h, nil
}

// ToggleResult is the state of a habit after a completion toggle.
type ToggleResult struct {
	Done bool
	Day  time.Time
	Stat progress.HabitStat
}

// ToggleCompletion flips completion of habitID on day and rewrites the cached
// streak. Days after today are rejected.
func (t *Tracker) ToggleCompletion(habitID string, day time.Time) (ToggleResult, error) {
	today, err := t.Today()
	if err != nil {
		return ToggleResult{}, err
	}
	day = progress.Day(day)
	if day.After(today) {
		return ToggleResult{}, invalid(fmt.Errorf("cannot complete %s, it is in the future", progress.FormatDay(day)))
	}
	key := progress.FormatDay(day)

	var res ToggleResult
	err = t.store.WithTx(func(tx storage.Repository) error {
		habit, err := tx.GetHabit(habitID)
		if err != nil {
			return err
		}
		done, err := tx.IsCompleted(habitID, key)
		if err != nil {
			return err
		}
		if err := tx.SetCompletion(habitID, key, !done); err != nil {
			return err
		}
		days, err := tx.ListCompletions(habitID)
		if err != nil {
			return err
		}
		streak := progress.StreaksFromDays(days, today)
		if err := tx.UpdateStreak(habitID, streak.Current); err != nil {
			return err
		}

		habit.Days = days
		habit.Streak = streak.Current
		res = ToggleResult{Done: !done, Day: day, Stat: progress.HabitStats(habit, today)}
		return nil
	})
	if err != nil {
		return ToggleResult{}, wrap("toggle habit", err)
	}
	return res, nil
}

// HabitStat loads one habit with its completions and derives its progress.
func (t *Tracker) HabitStat(habitID string) (progress.HabitStat, error) {
	today, err := t.Today()
	if err != nil {
		return progress.HabitStat{}, err
	}
	habit, err := t.store.GetHabit(habitID)
	if err != nil {
		return progress.HabitStat{}, wrap("load habit", err)
	}
	if habit.Days, err = t.store.ListCompletions(habitID); err != nil {
		return progress.HabitStat{}, wrap("load completions", err)
	}
	return progress.HabitStats(habit, today), nil
}

// HabitStats derives progress for every habit the user has, inactive included.
func (t *Tracker) HabitStats(userID string) ([]progress.HabitStat, error) {
	today, err := t.Today()
	if err != nil {
		return nil, err
	}
	habits, err := t.store.ListHabits(userID)
	if err != nil {
		return nil, wrap("load habits", err)
	}
	stats := make([]progress.HabitStat, 0, len(habits))
	for _, h := range habits {
		if h.Days, err = t.store.ListCompletions(h.ID); err != nil {
			return nil, wrap("load completions", err)
		}
		stats = append(stats, progress.HabitStats(h, today))
	}
	return stats, nil
}

// PendingToday lists active habits not yet completed today.
func (t *Tracker) PendingToday(userID string) ([]models.Habit, error) {
	today, err := t.Today()
	if err != nil {
		return nil, err
	}
	habits, err := t.store.ListActiveHabits(userID)
	if err != nil {
		return nil, wrap("load habits", err)
	}
	key := progress.FormatDay(today)
	var pending []models.Habit
	for _, h := range habits {
		done := false
		for _, d := range h.Days {
			if d == key {
				done = true
				break
			}
		}
		if !done {
			pending = append(pending, h)
		}
	}
	return pending, nil
}

// Calendar lays out a habit's completions for one month.
func (t *Tracker) Calendar(habitID string, year int, month time.Month) ([][]progress.CalendarCell, error) {
	today, err := t.Today()
	if err != nil {
		return nil, err
	}
	days, err := t.store.ListCompletions(habitID)
	if err != nil {
		return nil, wrap("load completions", err)
	}
	settings, err := t.store.GetSettings()
	if err != nil {
		return nil, wrap("load settings", err)
	}
	return progress.MonthGrid(year, month, progress.ParseDays(days), today, weekStart(settings.WeekStart)), nil
}

func weekStart(s string) time.Weekday {
	if s == "sunday" {
		return time.Sunday
	}
	return time.Monday
}

// HabitChange lists the fields to overwrite; nil fields are left alone.
type HabitChange struct {
	Title       *string
	Description *string
	Domain      *models.Domain
	Pinned      *bool
	Active      *bool
}

// UpdateHabit applies change and returns the stored habit.
func (t *Tracker) UpdateHabit(habitID string, change HabitChange) (models.Habit, error) {
	var out models.Habit
	err := t.store.WithTx(func(tx storage.Repository) error {
		h, err := tx.GetHabit(habitID)
		if err != nil {
			return err
		}
		if change.Title != nil {
			h.Title = *change.Title
		}
		if change.Description != nil {
			h.Description = *change.Description
		}
		if change.Domain != nil {
			h.Domain = *change.Domain
		}
		if change.Pinned != nil {
			h.Pinned = *change.Pinned
		}
		if change.Active != nil {
			h.Active = *change.Active
		}
		if err := h.Validate(); err != nil {
			return invalid(err)
		}
		if err := tx.UpdateHabit(h); err != nil {
			return err
		}
		out = h
		return nil
	})
	if err != nil {
		return models.Habit{}, wrap("update habit", err)
	}
	return out, nil
}

// DeleteHabit removes the habit and its completion history.
func (t *Tracker) DeleteHabit(habitID string) error {
	return wrap("delete habit", t.store.DeleteHabit(habitID))
}

// FindHabit resolves ref as a habit ID, then as a case-insensitive title
// among the user's habits. Ambiguous titles are rejected.
func (t *Tracker) FindHabit(userID, ref string) (models.Habit, error) {
	h, err := t.store.GetHabit(ref)
	if err == nil && h.UserID == userID {
		return h, nil
	}
	if err != nil && !stderrors.Is(err, storage.ErrNotFound) {
		return models.Habit{}, wrap("load habit", err)
	}

	habits, err := t.store.ListHabits(userID)
	if err != nil {
		return models.Habit{}, wrap("load habits", err)
	}
	var matches []models.Habit
	for _, h := range habits {
		if strings.EqualFold(h.Title, ref) || (len(ref) >= 4 && strings.HasPrefix(h.ID, ref)) {
			matches = append(matches, h)
		}
	}
	switch len(matches) {
	case 0:
		return models.Habit{}, fmt.Errorf("habit %q: %w", ref, storage.ErrNotFound)
	case 1:
		return matches[0], nil
	default:
		return models.Habit{}, invalid(fmt.Errorf("%q matches %d habits, use the ID", ref, len(matches)))
	}
}
