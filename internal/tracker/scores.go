package tracker

import (
	"fmt"
	"sort"
	"time"

	"github.com/julianstephens/alpha/internal/models"
	"github.com/julianstephens/alpha/internal/progress"
	"github.com/julianstephens/alpha/internal/storage"
)

// ScoreInput carries raw metric values keyed by domain and metric key. Zero
// Quarter or Year means the current quarter. Metrics left out count as 0.
type ScoreInput struct {
	Quarter  int
	Year     int
	SprintID string
	Values   map[models.Domain]map[string]int
}

// ScoreResult is a recorded snapshot and its change from the preceding
// quarter's snapshot. Delta is nil when nothing precedes it.
type ScoreResult struct {
	Score models.AlphaScore
	Delta *models.ScoreDelta
}

// BuildScore lays input values onto the metric schema and computes every
// category score and the total. It rejects metric keys the schema lacks.
func BuildScore(in ScoreInput) (models.AlphaScore, error) {
	score := models.AlphaScore{Quarter: in.Quarter, Year: in.Year, SprintID: in.SprintID}
	for d := range in.Values {
		if !d.IsValid() {
			return models.AlphaScore{}, invalid(fmt.Errorf("invalid category: %q", d))
		}
	}
	for _, d := range models.Domains {
		values := in.Values[d]
		metrics := models.BlankMetrics(d)
		known := make(map[string]bool, len(metrics))
		for i := range metrics {
			known[metrics[i].Key] = true
			metrics[i].Value = values[metrics[i].Key]
		}
		for key := range values {
			if !known[key] {
				return models.AlphaScore{}, invalid(fmt.Errorf("unknown metric %q for %s", key, d))
			}
		}
		score.Categories = append(score.Categories, models.CategoryScore{Category: d, Metrics: metrics})
	}
	progress.ComputeScore(&score)
	if err := score.Validate(); err != nil {
		return models.AlphaScore{}, invalid(err)
	}
	return score, nil
}

// RecordScore validates, scores and appends a snapshot, then reports its delta.
func (t *Tracker) RecordScore(userID string, in ScoreInput) (ScoreResult, error) {
	if in.Quarter == 0 || in.Year == 0 {
		today, err := t.Today()
		if err != nil {
			return ScoreResult{}, err
		}
		in.Quarter, in.Year = progress.QuarterOf(today)
	}
	score, err := BuildScore(in)
	if err != nil {
		return ScoreResult{}, err
	}
	score.UserID = userID
	score.RecordedAt = t.now().UTC().Truncate(time.Second)

	var res ScoreResult
	err = t.store.WithTx(func(tx storage.Repository) error {
		if score.SprintID != "" {
			if _, err := tx.GetSprint(score.SprintID); err != nil {
				return err
			}
		}
		prev, err := tx.GetPrecedingScore(userID, score.Quarter, score.Year)
		if err != nil {
			return err
		}
		saved, err := tx.AppendScore(userID, score)
		if err != nil {
			return err
		}
		res = ScoreResult{Score: saved, Delta: progress.Delta(saved, prev)}
		return nil
	})
	if err != nil {
		return ScoreResult{}, wrap("record alpha score", err)
	}
	return res, nil
}

// LatestScore returns the most recent snapshot with its delta, or nil.
func (t *Tracker) LatestScore(userID string) (*ScoreResult, error) {
	latest, err := t.store.GetLatestScore(userID)
	if err != nil {
		return nil, wrap("load alpha score", err)
	}
	if latest == nil {
		return nil, nil
	}
	prev, err := t.store.GetPrecedingScore(userID, latest.Quarter, latest.Year)
	if err != nil {
		return nil, wrap("load alpha score", err)
	}
	return &ScoreResult{Score: *latest, Delta: progress.Delta(*latest, prev)}, nil
}

// ScoreHistory returns every snapshot oldest first, each paired with the
// delta from its preceding quarter.
func (t *Tracker) ScoreHistory(userID string) ([]ScoreResult, error) {
	scores, err := t.store.ListScores(userID)
	if err != nil {
		return nil, wrap("load alpha scores", err)
	}
	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].Before(scores[j].Quarter, scores[j].Year)
	})

	out := make([]ScoreResult, len(scores))
	var prev *models.AlphaScore
	for i, s := range scores {
		// In sorted order the previous entry is either from the same quarter
		// or the last snapshot of an earlier one.
		if i > 0 && scores[i-1].Before(s.Quarter, s.Year) {
			p := scores[i-1]
			prev = &p
		}
		out[i] = ScoreResult{Score: s, Delta: progress.Delta(s, prev)}
	}
	return out, nil
}
