package progress

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/julianstephens/alpha/internal/models"
)

func TestCategoryScore(t *testing.T) {
	tests := []struct {
		name    string
		metrics []models.Metric
		want    int
	}{
		{
			name: "mixed values",
			metrics: []models.Metric{
				{Value: 15, Max: 30}, {Value: 20, Max: 30}, {Value: 15, Max: 30}, {Value: 20, Max: 30},
			},
			want: 58,
		},
		{
			name:    "all max",
			metrics: []models.Metric{{Value: 10, Max: 10}, {Value: 10, Max: 10}},
			want:    100,
		},
		{
			name:    "all zero",
			metrics: []models.Metric{{Value: 0, Max: 10}},
			want:    0,
		},
		{
			name: "no metrics",
			want: 0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CategoryScore(tt.metrics); got != tt.want {
				t.Errorf("CategoryScore() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestTotalScore(t *testing.T) {
	if got := TotalScore([]int{82, 75, 68, 79}); got != 76 {
		t.Errorf("TotalScore() = %d, want 76", got)
	}
	if got := TotalScore(nil); got != 0 {
		t.Errorf("TotalScore(nil) = %d, want 0", got)
	}
}

func TestComputeScore_StaysInRange(t *testing.T) {
	for value := 0; value <= 10; value++ {
		score := models.AlphaScore{}
		for _, d := range models.Domains {
			metrics := models.BlankMetrics(d)
			for i := range metrics {
				metrics[i].Value = value
			}
			score.Categories = append(score.Categories, models.CategoryScore{Category: d, Metrics: metrics})
		}
		ComputeScore(&score)
		if score.Total < 0 || score.Total > 100 {
			t.Fatalf("value %d: total %d out of range", value, score.Total)
		}
		for _, c := range score.Categories {
			if c.Score != value*10 {
				t.Fatalf("value %d: %s score %d, want %d", value, c.Category, c.Score, value*10)
			}
		}
	}
}

func snapshot(total int, scores map[models.Domain]int) models.AlphaScore {
	a := models.AlphaScore{Total: total}
	for _, d := range models.Domains {
		a.Categories = append(a.Categories, models.CategoryScore{Category: d, Score: scores[d]})
	}
	return a
}

func TestDelta(t *testing.T) {
	current := snapshot(76, map[models.Domain]int{
		models.DomainMind: 79, models.DomainBody: 68, models.DomainPurpose: 75, models.DomainRelationships: 82,
	})

	if got := Delta(current, nil); got != nil {
		t.Errorf("Delta() with no previous = %+v, want nil", got)
	}

	previous := snapshot(70, map[models.Domain]int{
		models.DomainMind: 80, models.DomainBody: 60, models.DomainPurpose: 75, models.DomainRelationships: 65,
	})
	want := &models.ScoreDelta{
		Total: 6,
		Categories: map[models.Domain]int{
			models.DomainMind: -1, models.DomainBody: 8, models.DomainPurpose: 0, models.DomainRelationships: 17,
		},
	}
	if diff := cmp.Diff(want, Delta(current, &previous)); diff != "" {
		t.Errorf("Delta() mismatch (-want +got):\n%s", diff)
	}
}
