package sqlstore

import (
	"database/sql"
	"errors"

	"github.com/julianstephens/alpha/internal/models"
)

// GetProfile returns an empty profile for users who have not set one.
func (s *Store) GetProfile(userID string) (models.Profile, error) {
	row, err := s.queryRow(s.sb.Select("mission", "vision", "updated_at").
		From("user_profiles").
		Where("user_id = ?", userID))
	if err != nil {
		return models.Profile{}, err
	}

	p := models.Profile{UserID: userID}
	var updatedAt string
	if err := row.Scan(&p.Mission, &p.Vision, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return p, nil
		}
		return models.Profile{}, err
	}
	if p.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return models.Profile{}, err
	}
	return p, nil
}

func (s *Store) SaveProfile(p models.Profile) error {
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = now()
	}
	_, err := s.exec(s.sb.Insert("user_profiles").
		Columns("user_id", "mission", "vision", "updated_at").
		Values(p.UserID, p.Mission, p.Vision, formatTime(p.UpdatedAt)).
		Suffix(`ON CONFLICT (user_id) DO UPDATE SET
			mission = excluded.mission,
			vision = excluded.vision,
			updated_at = excluded.updated_at`))
	return err
}
