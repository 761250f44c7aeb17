package tracker

import (
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/alpha/internal/constants"
	"github.com/julianstephens/alpha/internal/models"
	"github.com/julianstephens/alpha/internal/progress"
	"github.com/julianstephens/alpha/internal/storage"
)

// SprintInput describes a new sprint. An empty StartDay means today and an
// empty EndDay means a 90-day sprint.
type SprintInput struct {
	Name        string
	Description string
	StartDay    string
	EndDay      string
	Objectives  []string
}

func (t *Tracker) CreateSprint(userID string, in SprintInput) (models.Sprint, error) {
	today, err := t.Today()
	if err != nil {
		return models.Sprint{}, err
	}
	start := today
	if in.StartDay != "" {
		if start, err = progress.ParseDay(in.StartDay); err != nil {
			return models.Sprint{}, invalid(err)
		}
	}
	end := start.AddDate(0, 0, constants.DefaultSprintDays-1)
	if in.EndDay != "" {
		if end, err = progress.ParseDay(in.EndDay); err != nil {
			return models.Sprint{}, invalid(err)
		}
	}

	sp := models.Sprint{
		ID:          uuid.New().String(),
		UserID:      userID,
		Name:        in.Name,
		Description: in.Description,
		StartDay:    progress.FormatDay(start),
		EndDay:      progress.FormatDay(end),
		CreatedAt:   t.now().UTC().Truncate(time.Second),
	}
	for i, title := range in.Objectives {
		sp.Objectives = append(sp.Objectives, models.Objective{Title: title, Position: i + 1})
	}
	if err := sp.Validate(); err != nil {
		return models.Sprint{}, invalid(err)
	}
	for _, o := range sp.Objectives {
		if err := o.Validate(); err != nil {
			return models.Sprint{}, invalid(err)
		}
	}

	if err := t.store.AddSprint(sp); err != nil {
		return models.Sprint{}, wrap("create sprint", err)
	}
	created, err := t.store.GetSprint(sp.ID)
	if err != nil {
		return models.Sprint{}, wrap("load sprint", err)
	}
	return created, nil
}

// AddObjective appends an objective and refreshes the sprint's cached progress.
func (t *Tracker) AddObjective(sprintID, title, description string) (models.Sprint, error) {
	o := models.Objective{SprintID: sprintID, Title: title, Description: description}
	if err := o.Validate(); err != nil {
		return models.Sprint{}, invalid(err)
	}
	var out models.Sprint
	err := t.store.WithTx(func(tx storage.Repository) error {
		objectives, err := tx.ListObjectives(sprintID)
		if err != nil {
			return err
		}
		if _, err := tx.GetSprint(sprintID); err != nil {
			return err
		}
		o.Position = len(objectives) + 1
		if err := tx.AddObjective(o); err != nil {
			return err
		}
		out, err = recomputeSprint(tx, sprintID)
		return err
	})
	if err != nil {
		return models.Sprint{}, wrap("add objective", err)
	}
	return out, nil
}

// SetObjectiveProgress stores an objective's percent complete and refreshes
// the sprint's cached progress in the same transaction.
func (t *Tracker) SetObjectiveProgress(objectiveID string, pct int) (models.Sprint, error) {
	var out models.Sprint
	err := t.store.WithTx(func(tx storage.Repository) error {
		o, err := tx.GetObjective(objectiveID)
		if err != nil {
			return err
		}
		o.Progress = pct
		if err := o.Validate(); err != nil {
			return invalid(err)
		}
		if err := tx.UpdateObjective(o); err != nil {
			return err
		}
		out, err = recomputeSprint(tx, o.SprintID)
		return err
	})
	if err != nil {
		return models.Sprint{}, wrap("update objective", err)
	}
	return out, nil
}

func (t *Tracker) DeleteObjective(objectiveID string) (models.Sprint, error) {
	var out models.Sprint
	err := t.store.WithTx(func(tx storage.Repository) error {
		o, err := tx.GetObjective(objectiveID)
		if err != nil {
			return err
		}
		if err := tx.DeleteObjective(objectiveID); err != nil {
			return err
		}
		out, err = recomputeSprint(tx, o.SprintID)
		return err
	})
	if err != nil {
		return models.Sprint{}, wrap("delete objective", err)
	}
	return out, nil
}

func recomputeSprint(tx storage.Repository, sprintID string) (models.Sprint, error) {
	sp, err := tx.GetSprint(sprintID)
	if err != nil {
		return models.Sprint{}, err
	}
	sp.Progress = progress.SprintProgress(sp.Objectives)
	if err := tx.UpdateSprint(sp); err != nil {
		return models.Sprint{}, err
	}
	return sp, nil
}

// SprintView is a sprint with its derived timeline.
type SprintView struct {
	Sprint   models.Sprint
	Timeline progress.Timeline
}

func (t *Tracker) Sprint(sprintID string) (SprintView, error) {
	today, err := t.Today()
	if err != nil {
		return SprintView{}, err
	}
	sp, err := t.store.GetSprint(sprintID)
	if err != nil {
		return SprintView{}, wrap("load sprint", err)
	}
	start, _ := progress.ParseDay(sp.StartDay)
	end, _ := progress.ParseDay(sp.EndDay)
	return SprintView{Sprint: sp, Timeline: progress.SprintTimeline(start, end, today)}, nil
}

// Sprints lists the user's sprints, newest start first.
func (t *Tracker) Sprints(userID string) ([]models.Sprint, error) {
	list, err := t.store.ListSprints(userID)
	if err != nil {
		return nil, wrap("load sprints", err)
	}
	return list, nil
}

// DeleteSprint removes a sprint with its objectives. Score snapshots that
// referenced it keep the dangling ID.
func (t *Tracker) DeleteSprint(sprintID string) error {
	return wrap("delete sprint", t.store.DeleteSprint(sprintID))
}
