package tracker

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/alpha/internal/models"
	"github.com/julianstephens/alpha/internal/progress"
	"github.com/julianstephens/alpha/internal/storage"
)

func (t *Tracker) Profile(userID string) (models.Profile, error) {
	p, err := t.store.GetProfile(userID)
	if err != nil {
		return models.Profile{}, wrap("load profile", err)
	}
	return p, nil
}

// SetProfile overwrites whichever of mission and vision are non-nil.
func (t *Tracker) SetProfile(userID string, mission, vision *string) (models.Profile, error) {
	var out models.Profile
	err := t.store.WithTx(func(tx storage.Repository) error {
		p, err := tx.GetProfile(userID)
		if err != nil {
			return err
		}
		p.UserID = userID
		if mission != nil {
			p.Mission = strings.TrimSpace(*mission)
		}
		if vision != nil {
			p.Vision = strings.TrimSpace(*vision)
		}
		p.UpdatedAt = t.now().UTC().Truncate(time.Second)
		if err := tx.SaveProfile(p); err != nil {
			return err
		}
		out = p
		return nil
	})
	if err != nil {
		return models.Profile{}, wrap("save profile", err)
	}
	return out, nil
}

func (t *Tracker) Settings() (models.Settings, error) {
	s, err := t.store.GetSettings()
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return models.Settings{}, wrap("load settings", err)
	}
	return s, nil
}

// SaveSettings validates the timezone and week start before persisting.
func (t *Tracker) SaveSettings(s models.Settings) error {
	if _, err := progress.LoadLocation(s.Timezone); err != nil {
		return invalid(fmt.Errorf("unknown timezone %q", s.Timezone))
	}
	s.WeekStart = strings.ToLower(strings.TrimSpace(s.WeekStart))
	if s.WeekStart != "monday" && s.WeekStart != "sunday" {
		return invalid(fmt.Errorf("week start must be monday or sunday, got %q", s.WeekStart))
	}
	return wrap("save settings", t.store.SaveSettings(s))
}
