package models

import (
	"strings"
	"testing"
)

func validScore() AlphaScore {
	score := AlphaScore{Quarter: 2, Year: 2026}
	for _, d := range Domains {
		metrics := BlankMetrics(d)
		for i := range metrics {
			metrics[i].Value = 5
		}
		score.Categories = append(score.Categories, CategoryScore{Category: d, Metrics: metrics})
	}
	return score
}

func TestAlphaScore_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*AlphaScore)
		wantErr string
	}{
		{
			name:   "valid snapshot",
			mutate: func(*AlphaScore) {},
		},
		{
			name:    "quarter out of range",
			mutate:  func(a *AlphaScore) { a.Quarter = 5 },
			wantErr: "quarter",
		},
		{
			name:    "missing category",
			mutate:  func(a *AlphaScore) { a.Categories = a.Categories[:3] },
			wantErr: "expected 4 categories",
		},
		{
			name: "duplicate category",
			mutate: func(a *AlphaScore) {
				a.Categories[1] = a.Categories[0]
			},
			wantErr: "duplicate category",
		},
		{
			name: "unknown category",
			mutate: func(a *AlphaScore) {
				a.Categories[0].Category = "wealth"
			},
			wantErr: "invalid category",
		},
		{
			name: "value above max",
			mutate: func(a *AlphaScore) {
				a.Categories[0].Metrics[0].Value = 11
			},
			wantErr: "outside",
		},
		{
			name: "negative value",
			mutate: func(a *AlphaScore) {
				a.Categories[2].Metrics[1].Value = -1
			},
			wantErr: "outside",
		},
		{
			name: "unknown metric key",
			mutate: func(a *AlphaScore) {
				a.Categories[3].Metrics[0].Key = "pets"
			},
			wantErr: "unknown metric",
		},
		{
			name: "tampered max",
			mutate: func(a *AlphaScore) {
				a.Categories[1].Metrics[0].Max = 100
			},
			wantErr: "max must be",
		},
		{
			name: "missing metric",
			mutate: func(a *AlphaScore) {
				a.Categories[1].Metrics = a.Categories[1].Metrics[1:]
			},
			wantErr: "expected 4 metrics",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score := validScore()
			tt.mutate(&score)
			err := score.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestAlphaScore_Before(t *testing.T) {
	a := AlphaScore{Quarter: 4, Year: 2025}
	if !a.Before(1, 2026) {
		t.Error("Q4 2025 should be before Q1 2026")
	}
	if a.Before(4, 2025) {
		t.Error("a quarter is not before itself")
	}
	if a.Before(3, 2025) {
		t.Error("Q4 2025 is not before Q3 2025")
	}
}

func TestParseDomain(t *testing.T) {
	for _, input := range []string{"mind", " Body ", "PURPOSE", "relationships"} {
		if _, err := ParseDomain(input); err != nil {
			t.Errorf("ParseDomain(%q) unexpected error: %v", input, err)
		}
	}
	if _, err := ParseDomain("wealth"); err == nil {
		t.Error("ParseDomain(\"wealth\") expected error")
	}
}

func TestMetricSchemaCoversEveryDomain(t *testing.T) {
	for _, d := range Domains {
		if len(MetricSchema[d]) == 0 {
			t.Errorf("domain %s has no metric schema", d)
		}
		for _, spec := range MetricSchema[d] {
			if spec.Max <= 0 {
				t.Errorf("%s.%s has non-positive max", d, spec.Key)
			}
		}
	}
}
