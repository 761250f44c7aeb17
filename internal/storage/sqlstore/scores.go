package sqlstore

import (
	"database/sql"
	"errors"
	"sort"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/julianstephens/alpha/internal/models"
)

var scoreColumns = []string{"id", "user_id", "total", "quarter", "year", "sprint_id", "recorded_at"}

func (s *Store) AppendScore(userID string, score models.AlphaScore) (models.AlphaScore, error) {
	score.UserID = userID
	if err := score.Validate(); err != nil {
		return models.AlphaScore{}, err
	}
	score.ID = uuid.New().String()
	if score.RecordedAt.IsZero() {
		score.RecordedAt = now()
	}

	err := s.atomically(func(tx *Store) error {
		_, err := tx.exec(tx.sb.Insert("alpha_scores").
			Columns(scoreColumns...).
			Values(score.ID, userID, score.Total, score.Quarter, score.Year, nullString(score.SprintID), formatTime(score.RecordedAt)))
		if err != nil {
			return err
		}

		categories := tx.sb.Insert("category_scores").Columns("score_id", "category", "score")
		metrics := tx.sb.Insert("score_metrics").Columns("score_id", "category", "key", "name", "value", "max", "step", "position")
		for _, c := range score.Categories {
			categories = categories.Values(score.ID, string(c.Category), c.Score)
			for i, m := range c.Metrics {
				metrics = metrics.Values(score.ID, string(c.Category), m.Key, m.Name, m.Value, m.Max, m.Step, i)
			}
		}
		if _, err := tx.exec(categories); err != nil {
			return err
		}
		_, err = tx.exec(metrics)
		return err
	})
	if err != nil {
		return models.AlphaScore{}, err
	}
	return score, nil
}

// scoreOrder sorts snapshots chronologically by period and then recording time.
var scoreOrder = []string{"year", "quarter", "recorded_at"}

func descending(cols []string) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = c + " DESC"
	}
	return out
}

func (s *Store) GetLatestScore(userID string) (*models.AlphaScore, error) {
	return s.firstScore(s.sb.Select(scoreColumns...).
		From("alpha_scores").
		Where("user_id = ?", userID).
		OrderBy(descending(scoreOrder)...).
		Limit(1))
}

func (s *Store) GetPrecedingScore(userID string, quarter, year int) (*models.AlphaScore, error) {
	return s.firstScore(s.sb.Select(scoreColumns...).
		From("alpha_scores").
		Where("user_id = ?", userID).
		Where(squirrel.Or{
			squirrel.Lt{"year": year},
			squirrel.And{squirrel.Eq{"year": year}, squirrel.Lt{"quarter": quarter}},
		}).
		OrderBy(descending(scoreOrder)...).
		Limit(1))
}

func (s *Store) firstScore(b squirrel.SelectBuilder) (*models.AlphaScore, error) {
	row, err := s.queryRow(b)
	if err != nil {
		return nil, err
	}
	score, err := scanScore(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	scores := []models.AlphaScore{score}
	if err := s.attachCategories(scores); err != nil {
		return nil, err
	}
	return &scores[0], nil
}

// ListScores returns the user's history oldest first.
func (s *Store) ListScores(userID string) ([]models.AlphaScore, error) {
	rows, err := s.query(s.sb.Select(scoreColumns...).
		From("alpha_scores").
		Where("user_id = ?", userID).
		OrderBy(scoreOrder...))
	if err != nil {
		return nil, err
	}
	var scores []models.AlphaScore
	for rows.Next() {
		score, err := scanScore(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		scores = append(scores, score)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := s.attachCategories(scores); err != nil {
		return nil, err
	}
	return scores, nil
}

func scanScore(row interface{ Scan(...any) error }) (models.AlphaScore, error) {
	var a models.AlphaScore
	var sprintID sql.NullString
	var recordedAt string
	if err := row.Scan(&a.ID, &a.UserID, &a.Total, &a.Quarter, &a.Year, &sprintID, &recordedAt); err != nil {
		return models.AlphaScore{}, err
	}
	a.SprintID = sprintID.String
	t, err := parseTime(recordedAt)
	if err != nil {
		return models.AlphaScore{}, err
	}
	a.RecordedAt = t
	return a, nil
}

type categoryKey struct {
	scoreID  string
	category models.Domain
}

// attachCategories loads category scores and metrics for every snapshot in
// two queries.
func (s *Store) attachCategories(scores []models.AlphaScore) error {
	if len(scores) == 0 {
		return nil
	}
	ids := make([]string, len(scores))
	for i, a := range scores {
		ids[i] = a.ID
	}

	categories := make(map[string][]models.CategoryScore, len(scores))
	rows, err := s.query(s.sb.Select("score_id", "category", "score").
		From("category_scores").
		Where(squirrel.Eq{"score_id": ids}))
	if err != nil {
		return err
	}
	for rows.Next() {
		var scoreID, category string
		var score int
		if err := rows.Scan(&scoreID, &category, &score); err != nil {
			rows.Close()
			return err
		}
		categories[scoreID] = append(categories[scoreID], models.CategoryScore{Category: models.Domain(category), Score: score})
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	metrics := make(map[categoryKey][]models.Metric)
	rows, err = s.query(s.sb.Select("score_id", "category", "key", "name", "value", "max", "step").
		From("score_metrics").
		Where(squirrel.Eq{"score_id": ids}).
		OrderBy("score_id", "category", "position"))
	if err != nil {
		return err
	}
	for rows.Next() {
		var scoreID, category string
		var m models.Metric
		if err := rows.Scan(&scoreID, &category, &m.Key, &m.Name, &m.Value, &m.Max, &m.Step); err != nil {
			rows.Close()
			return err
		}
		k := categoryKey{scoreID, models.Domain(category)}
		metrics[k] = append(metrics[k], m)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	for i := range scores {
		cats := categories[scores[i].ID]
		for j := range cats {
			cats[j].Metrics = metrics[categoryKey{scores[i].ID, cats[j].Category}]
		}
		sort.Slice(cats, func(a, b int) bool { return domainIndex(cats[a].Category) < domainIndex(cats[b].Category) })
		scores[i].Categories = cats
	}
	return nil
}

func domainIndex(d models.Domain) int {
	for i, candidate := range models.Domains {
		if candidate == d {
			return i
		}
	}
	return len(models.Domains)
}
