package sqlstore

import (
	"database/sql"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/julianstephens/alpha/internal/models"
)

var challengeColumns = []string{
	"id", "user_id", "title", "description", "kind", "year", "month", "target", "progress", "created_at", "completed_at",
}

func (s *Store) AddChallenge(c models.Challenge) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now()
	}
	_, err := s.exec(s.sb.Insert("challenges").
		Columns(challengeColumns...).
		Values(c.ID, c.UserID, c.Title, c.Description, string(c.Kind), c.Year, c.Month, c.Target, c.Progress,
			formatTime(c.CreatedAt), nullTime(c.CompletedAt)))
	return err
}

func scanChallenge(row interface{ Scan(...any) error }) (models.Challenge, error) {
	var c models.Challenge
	var kind, createdAt string
	var completedAt sql.NullString
	if err := row.Scan(&c.ID, &c.UserID, &c.Title, &c.Description, &kind, &c.Year, &c.Month, &c.Target, &c.Progress, &createdAt, &completedAt); err != nil {
		return models.Challenge{}, err
	}
	c.Kind = models.ChallengeKind(kind)
	var err error
	if c.CreatedAt, err = parseTime(createdAt); err != nil {
		return models.Challenge{}, err
	}
	if c.CompletedAt, err = parseNullTime(completedAt); err != nil {
		return models.Challenge{}, err
	}
	return c, nil
}

func (s *Store) GetChallenge(id string) (models.Challenge, error) {
	row, err := s.queryRow(s.sb.Select(challengeColumns...).From("challenges").Where("id = ?", id))
	if err != nil {
		return models.Challenge{}, err
	}
	c, err := scanChallenge(row)
	if err != nil {
		return models.Challenge{}, notFound(err)
	}
	return c, nil
}

func (s *Store) ListChallenges(userID string, year, month int) ([]models.Challenge, error) {
	where := squirrel.Eq{"user_id": userID, "year": year}
	if month > 0 {
		// Annual challenges stay visible alongside the month's own.
		where = squirrel.Eq{"user_id": userID, "year": year, "month": []int{0, month}}
	}
	rows, err := s.query(s.sb.Select(challengeColumns...).
		From("challenges").
		Where(where).
		OrderBy("month", "created_at"))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var challenges []models.Challenge
	for rows.Next() {
		c, err := scanChallenge(rows)
		if err != nil {
			return nil, err
		}
		challenges = append(challenges, c)
	}
	return challenges, rows.Err()
}

func (s *Store) UpdateChallenge(c models.Challenge) error {
	if err := c.Validate(); err != nil {
		return err
	}
	return s.execOne(s.sb.Update("challenges").
		SetMap(map[string]any{
			"title":        c.Title,
			"description":  c.Description,
			"target":       c.Target,
			"progress":     c.Progress,
			"completed_at": nullTime(c.CompletedAt),
		}).
		Where("id = ?", c.ID))
}

func (s *Store) DeleteChallenge(id string) error {
	return s.execOne(s.sb.Delete("challenges").Where("id = ?", id))
}
