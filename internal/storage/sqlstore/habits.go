package sqlstore

import (
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/julianstephens/alpha/internal/models"
)

var habitColumns = []string{
	"id", "user_id", "title", "description", "domain", "active", "pinned", "streak", "created_at",
}

func (s *Store) AddHabit(h models.Habit) error {
	if err := h.Validate(); err != nil {
		return err
	}
	if h.ID == "" {
		h.ID = uuid.New().String()
	}
	if h.CreatedAt.IsZero() {
		h.CreatedAt = now()
	}
	_, err := s.exec(s.sb.Insert("habits").
		Columns(habitColumns...).
		Values(h.ID, h.UserID, h.Title, h.Description, string(h.Domain), h.Active, h.Pinned, h.Streak, formatTime(h.CreatedAt)))
	return err
}

func scanHabit(row interface{ Scan(...any) error }) (models.Habit, error) {
	var h models.Habit
	var domain, createdAt string
	if err := row.Scan(&h.ID, &h.UserID, &h.Title, &h.Description, &domain, &h.Active, &h.Pinned, &h.Streak, &createdAt); err != nil {
		return models.Habit{}, err
	}
	h.Domain = models.Domain(domain)
	t, err := parseTime(createdAt)
	if err != nil {
		return models.Habit{}, fmt.Errorf("habit %s: %w", h.ID, err)
	}
	h.CreatedAt = t
	return h, nil
}

func (s *Store) GetHabit(id string) (models.Habit, error) {
	row, err := s.queryRow(s.sb.Select(habitColumns...).From("habits").Where("id = ?", id))
	if err != nil {
		return models.Habit{}, err
	}
	h, err := scanHabit(row)
	if err != nil {
		return models.Habit{}, notFound(err)
	}
	return h, nil
}

func (s *Store) listHabits(where squirrel.Sqlizer) ([]models.Habit, error) {
	rows, err := s.query(s.sb.Select(habitColumns...).
		From("habits").
		Where(where).
		OrderBy("pinned DESC", "created_at", "title"))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var habits []models.Habit
	for rows.Next() {
		h, err := scanHabit(rows)
		if err != nil {
			return nil, err
		}
		habits = append(habits, h)
	}
	return habits, rows.Err()
}

func (s *Store) ListHabits(userID string) ([]models.Habit, error) {
	return s.listHabits(squirrel.Eq{"user_id": userID})
}

func (s *Store) ListActiveHabits(userID string) ([]models.Habit, error) {
	habits, err := s.listHabits(squirrel.Eq{"user_id": userID, "active": true})
	if err != nil {
		return nil, err
	}
	if len(habits) == 0 {
		return habits, nil
	}

	ids := make([]string, len(habits))
	byID := make(map[string]int, len(habits))
	for i, h := range habits {
		ids[i] = h.ID
		byID[h.ID] = i
	}

	rows, err := s.query(s.sb.Select("habit_id", "day").
		From("habit_completions").
		Where(squirrel.Eq{"habit_id": ids}).
		Where("deleted_at IS NULL").
		OrderBy("day"))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var habitID, day string
		if err := rows.Scan(&habitID, &day); err != nil {
			return nil, err
		}
		if i, ok := byID[habitID]; ok {
			habits[i].Days = append(habits[i].Days, day)
		}
	}
	return habits, rows.Err()
}

func (s *Store) UpdateHabit(h models.Habit) error {
	if err := h.Validate(); err != nil {
		return err
	}
	return s.execOne(s.sb.Update("habits").
		SetMap(map[string]any{
			"title":       h.Title,
			"description": h.Description,
			"domain":      string(h.Domain),
			"active":      h.Active,
			"pinned":      h.Pinned,
		}).
		Where("id = ?", h.ID))
}

func (s *Store) UpdateStreak(habitID string, value int) error {
	if value < 0 {
		return fmt.Errorf("streak cannot be negative: %d", value)
	}
	return s.execOne(s.sb.Update("habits").Set("streak", value).Where("id = ?", habitID))
}

func (s *Store) DeleteHabit(id string) error {
	return s.atomically(func(tx *Store) error {
		// Completions are removed explicitly so the delete cascades even when
		// foreign key enforcement is off.
		if _, err := tx.exec(tx.sb.Delete("habit_completions").Where("habit_id = ?", id)); err != nil {
			return err
		}
		return tx.execOne(tx.sb.Delete("habits").Where("id = ?", id))
	})
}

func (s *Store) ListCompletions(habitID string) ([]string, error) {
	rows, err := s.query(s.sb.Select("day").
		From("habit_completions").
		Where("habit_id = ? AND deleted_at IS NULL", habitID).
		OrderBy("day"))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var days []string
	for rows.Next() {
		var day string
		if err := rows.Scan(&day); err != nil {
			return nil, err
		}
		days = append(days, day)
	}
	return days, rows.Err()
}

func (s *Store) IsCompleted(habitID, day string) (bool, error) {
	row, err := s.queryRow(s.sb.Select("COUNT(*)").
		From("habit_completions").
		Where("habit_id = ? AND day = ? AND deleted_at IS NULL", habitID, day))
	if err != nil {
		return false, err
	}
	var n int
	if err := row.Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *Store) SetCompletion(habitID, day string, done bool) error {
	ts := formatTime(now())
	if !done {
		_, err := s.exec(s.sb.Update("habit_completions").
			Set("deleted_at", ts).
			Where("habit_id = ? AND day = ? AND deleted_at IS NULL", habitID, day))
		return err
	}
	_, err := s.exec(s.sb.Insert("habit_completions").
		Columns("id", "habit_id", "day", "created_at", "deleted_at").
		Values(uuid.New().String(), habitID, day, ts, sql.NullString{}).
		Suffix("ON CONFLICT (habit_id, day) DO UPDATE SET deleted_at = NULL"))
	return err
}

func (s *Store) ListAllCompletions(userID string) ([]models.Completion, error) {
	rows, err := s.query(s.sb.Select("c.id", "c.habit_id", "c.day", "c.created_at", "c.deleted_at").
		From("habit_completions c").
		Join("habits h ON h.id = c.habit_id").
		Where("h.user_id = ?", userID).
		OrderBy("c.day", "c.habit_id"))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Completion
	for rows.Next() {
		var c models.Completion
		var createdAt string
		var deletedAt sql.NullString
		if err := rows.Scan(&c.ID, &c.HabitID, &c.Day, &createdAt, &deletedAt); err != nil {
			return nil, err
		}
		if c.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, err
		}
		if c.DeletedAt, err = parseNullTime(deletedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
