package sqlstore

import (
	"strconv"

	"github.com/julianstephens/alpha/internal/constants"
	"github.com/julianstephens/alpha/internal/models"
	"github.com/julianstephens/alpha/internal/storage"
)

func (s *Store) GetSettings() (models.Settings, error) {
	rows, err := s.query(s.sb.Select("key", "value").From("settings"))
	if err != nil {
		return models.Settings{}, err
	}
	defer rows.Close()

	settings := models.Settings{}
	count := 0
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return models.Settings{}, err
		}
		switch key {
		case constants.SettingTimezone:
			settings.Timezone = value
		case constants.SettingRemindEnabled:
			settings.RemindEnabled, _ = strconv.ParseBool(value)
		case constants.SettingWeekStart:
			settings.WeekStart = value
		}
		count++
	}
	if err := rows.Err(); err != nil {
		return models.Settings{}, err
	}
	if count == 0 {
		return models.Settings{}, storage.ErrNotFound
	}
	return settings, nil
}

func (s *Store) SaveSettings(settings models.Settings) error {
	values := map[string]string{
		constants.SettingTimezone:      settings.Timezone,
		constants.SettingRemindEnabled: strconv.FormatBool(settings.RemindEnabled),
		constants.SettingWeekStart:     settings.WeekStart,
	}
	return s.atomically(func(tx *Store) error {
		for key, value := range values {
			_, err := tx.exec(tx.sb.Insert("settings").
				Columns("key", "value").
				Values(key, value).
				Suffix("ON CONFLICT (key) DO UPDATE SET value = excluded.value"))
			if err != nil {
				return err
			}
		}
		return nil
	})
}
