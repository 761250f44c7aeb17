package sqlstore

import (
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/julianstephens/alpha/internal/models"
)

var sprintColumns = []string{"id", "user_id", "name", "description", "start_day", "end_day", "progress", "created_at"}

func (s *Store) AddSprint(sp models.Sprint) error {
	if err := sp.Validate(); err != nil {
		return err
	}
	if sp.ID == "" {
		sp.ID = uuid.New().String()
	}
	if sp.CreatedAt.IsZero() {
		sp.CreatedAt = now()
	}
	return s.atomically(func(tx *Store) error {
		_, err := tx.exec(tx.sb.Insert("sprints").
			Columns(sprintColumns...).
			Values(sp.ID, sp.UserID, sp.Name, sp.Description, sp.StartDay, sp.EndDay, sp.Progress, formatTime(sp.CreatedAt)))
		if err != nil {
			return err
		}
		for i, o := range sp.Objectives {
			o.SprintID = sp.ID
			if o.Position == 0 {
				o.Position = i + 1
			}
			if err := tx.AddObjective(o); err != nil {
				return err
			}
		}
		return nil
	})
}

func scanSprint(row interface{ Scan(...any) error }) (models.Sprint, error) {
	var sp models.Sprint
	var createdAt string
	if err := row.Scan(&sp.ID, &sp.UserID, &sp.Name, &sp.Description, &sp.StartDay, &sp.EndDay, &sp.Progress, &createdAt); err != nil {
		return models.Sprint{}, err
	}
	t, err := parseTime(createdAt)
	if err != nil {
		return models.Sprint{}, err
	}
	sp.CreatedAt = t
	return sp, nil
}

func (s *Store) GetSprint(id string) (models.Sprint, error) {
	row, err := s.queryRow(s.sb.Select(sprintColumns...).From("sprints").Where("id = ?", id))
	if err != nil {
		return models.Sprint{}, err
	}
	sp, err := scanSprint(row)
	if err != nil {
		return models.Sprint{}, notFound(err)
	}
	if sp.Objectives, err = s.ListObjectives(sp.ID); err != nil {
		return models.Sprint{}, err
	}
	return sp, nil
}

// ListSprints returns the user's sprints newest first, without objectives.
func (s *Store) ListSprints(userID string) ([]models.Sprint, error) {
	rows, err := s.query(s.sb.Select(sprintColumns...).
		From("sprints").
		Where("user_id = ?", userID).
		OrderBy("start_day DESC", "created_at DESC"))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sprints []models.Sprint
	for rows.Next() {
		sp, err := scanSprint(rows)
		if err != nil {
			return nil, err
		}
		sprints = append(sprints, sp)
	}
	return sprints, rows.Err()
}

func (s *Store) ActiveSprint(userID, day string) (*models.Sprint, error) {
	row, err := s.queryRow(s.sb.Select("id").
		From("sprints").
		Where("user_id = ? AND start_day <= ? AND end_day >= ?", userID, day, day).
		OrderBy("start_day DESC", "created_at DESC").
		Limit(1))
	if err != nil {
		return nil, err
	}
	var id string
	if err := row.Scan(&id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	sp, err := s.GetSprint(id)
	if err != nil {
		return nil, err
	}
	return &sp, nil
}

func (s *Store) UpdateSprint(sp models.Sprint) error {
	if err := sp.Validate(); err != nil {
		return err
	}
	return s.execOne(s.sb.Update("sprints").
		SetMap(map[string]any{
			"name":        sp.Name,
			"description": sp.Description,
			"start_day":   sp.StartDay,
			"end_day":     sp.EndDay,
			"progress":    sp.Progress,
		}).
		Where("id = ?", sp.ID))
}

func (s *Store) DeleteSprint(id string) error {
	return s.atomically(func(tx *Store) error {
		if _, err := tx.exec(tx.sb.Delete("objectives").Where("sprint_id = ?", id)); err != nil {
			return err
		}
		return tx.execOne(tx.sb.Delete("sprints").Where("id = ?", id))
	})
}

var objectiveColumns = []string{"id", "sprint_id", "title", "description", "progress", "position", "created_at"}

func (s *Store) AddObjective(o models.Objective) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	if o.CreatedAt.IsZero() {
		o.CreatedAt = now()
	}
	_, err := s.exec(s.sb.Insert("objectives").
		Columns(objectiveColumns...).
		Values(o.ID, o.SprintID, o.Title, o.Description, o.Progress, o.Position, formatTime(o.CreatedAt)))
	return err
}

func scanObjective(row interface{ Scan(...any) error }) (models.Objective, error) {
	var o models.Objective
	var createdAt string
	if err := row.Scan(&o.ID, &o.SprintID, &o.Title, &o.Description, &o.Progress, &o.Position, &createdAt); err != nil {
		return models.Objective{}, err
	}
	t, err := parseTime(createdAt)
	if err != nil {
		return models.Objective{}, err
	}
	o.CreatedAt = t
	return o, nil
}

func (s *Store) GetObjective(id string) (models.Objective, error) {
	row, err := s.queryRow(s.sb.Select(objectiveColumns...).From("objectives").Where("id = ?", id))
	if err != nil {
		return models.Objective{}, err
	}
	o, err := scanObjective(row)
	if err != nil {
		return models.Objective{}, notFound(err)
	}
	return o, nil
}

func (s *Store) ListObjectives(sprintID string) ([]models.Objective, error) {
	rows, err := s.query(s.sb.Select(objectiveColumns...).
		From("objectives").
		Where("sprint_id = ?", sprintID).
		OrderBy("position", "created_at"))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var objectives []models.Objective
	for rows.Next() {
		o, err := scanObjective(rows)
		if err != nil {
			return nil, err
		}
		objectives = append(objectives, o)
	}
	return objectives, rows.Err()
}

func (s *Store) UpdateObjective(o models.Objective) error {
	if err := o.Validate(); err != nil {
		return err
	}
	return s.execOne(s.sb.Update("objectives").
		SetMap(map[string]any{
			"title":       o.Title,
			"description": o.Description,
			"progress":    o.Progress,
			"position":    o.Position,
		}).
		Where("id = ?", o.ID))
}

func (s *Store) DeleteObjective(id string) error {
	return s.execOne(s.sb.Delete("objectives").Where("id = ?", id))
}
