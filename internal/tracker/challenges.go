package tracker

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/alpha/internal/models"
	"github.com/julianstephens/alpha/internal/progress"
	"github.com/julianstephens/alpha/internal/storage"
)

// ChallengeView is a challenge with its percent complete.
type ChallengeView struct {
	Challenge models.Challenge
	Percent   int
}

func (t *Tracker) AddChallenge(c models.Challenge) (models.Challenge, error) {
	c.ID = uuid.New().String()
	c.CreatedAt = t.now().UTC().Truncate(time.Second)
	if err := c.Validate(); err != nil {
		return models.Challenge{}, invalid(err)
	}
	if err := t.store.AddChallenge(c); err != nil {
		return models.Challenge{}, wrap("add challenge", err)
	}
	return c, nil
}

// Challenges lists the year's challenges, or the month's plus annual ones
// when month > 0.
func (t *Tracker) Challenges(userID string, year, month int) ([]ChallengeView, error) {
	list, err := t.store.ListChallenges(userID, year, month)
	if err != nil {
		return nil, wrap("load challenges", err)
	}
	views := make([]ChallengeView, len(list))
	for i, c := range list {
		views[i] = ChallengeView{Challenge: c, Percent: progress.ChallengeProgress(c.Target, c.Progress)}
	}
	return views, nil
}

// AdvanceChallenge adds by (which may be negative) to a challenge's progress,
// clamped to [0, target]. Reaching the target stamps CompletedAt and falling
// back below it clears the stamp.
func (t *Tracker) AdvanceChallenge(id string, by int) (ChallengeView, error) {
	var out ChallengeView
	err := t.store.WithTx(func(tx storage.Repository) error {
		c, err := tx.GetChallenge(id)
		if err != nil {
			return err
		}
		c.Progress = max(0, min(c.Progress+by, c.Target))
		switch {
		case c.Progress >= c.Target && c.CompletedAt == nil:
			done := t.now().UTC().Truncate(time.Second)
			c.CompletedAt = &done
		case c.Progress < c.Target:
			c.CompletedAt = nil
		}
		if err := tx.UpdateChallenge(c); err != nil {
			return err
		}
		out = ChallengeView{Challenge: c, Percent: progress.ChallengeProgress(c.Target, c.Progress)}
		return nil
	})
	if err != nil {
		return ChallengeView{}, wrap(fmt.Sprintf("advance challenge %s", id), err)
	}
	return out, nil
}

func (t *Tracker) DeleteChallenge(id string) error {
	return wrap("delete challenge", t.store.DeleteChallenge(id))
}
