package progress

import "github.com/julianstephens/alpha/internal/models"

// CategoryScore returns round(sum(value) / sum(max) * 100).
func CategoryScore(metrics []models.Metric) int {
	var value, limit int
	for _, m := range metrics {
		value += m.Value
		limit += m.Max
	}
	return percent(float64(value), float64(limit))
}

// TotalScore is the unweighted, rounded mean of the category scores.
func TotalScore(scores []int) int {
	sum := 0
	for _, s := range scores {
		sum += s
	}
	return percent(float64(sum), float64(len(scores)*100))
}

// ComputeScore fills every category score and the total from the metrics.
func ComputeScore(score *models.AlphaScore) {
	scores := make([]int, len(score.Categories))
	for i := range score.Categories {
		score.Categories[i].Score = CategoryScore(score.Categories[i].Metrics)
		scores[i] = score.Categories[i].Score
	}
	score.Total = TotalScore(scores)
}

// Delta compares a snapshot against the one before it. A nil previous score
// yields a nil delta: there is nothing to compare against.
func Delta(current models.AlphaScore, previous *models.AlphaScore) *models.ScoreDelta {
	if previous == nil {
		return nil
	}
	delta := &models.ScoreDelta{
		Total:      current.Total - previous.Total,
		Categories: make(map[models.Domain]int, len(current.Categories)),
	}
	for _, cat := range current.Categories {
		old := 0
		if prev := previous.Category(cat.Category); prev != nil {
			old = prev.Score
		}
		delta.Categories[cat.Category] = cat.Score - old
	}
	return delta
}
