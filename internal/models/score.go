package models

import (
	"fmt"
	"time"
)

// MetricSpec declares one sub-measurement of a score category
type MetricSpec struct {
	Key  string
	Name string
	Max  int
	Step int
}

// MetricSchema is the fixed set of metrics each category carries.
var MetricSchema = map[Domain][]MetricSpec{
	DomainMind: {
		{Key: "meditation", Name: "Meditation", Max: 10, Step: 1},
		{Key: "reading", Name: "Reading", Max: 10, Step: 1},
		{Key: "learning", Name: "Learning", Max: 10, Step: 1},
		{Key: "focus", Name: "Focus", Max: 10, Step: 1},
	},
	DomainBody: {
		{Key: "training", Name: "Training", Max: 10, Step: 1},
		{Key: "nutrition", Name: "Nutrition", Max: 10, Step: 1},
		{Key: "sleep", Name: "Sleep", Max: 10, Step: 1},
		{Key: "energy", Name: "Energy", Max: 10, Step: 1},
	},
	DomainPurpose: {
		{Key: "career", Name: "Career progress", Max: 10, Step: 1},
		{Key: "contribution", Name: "Contribution", Max: 10, Step: 1},
		{Key: "vision", Name: "Vision alignment", Max: 10, Step: 1},
		{Key: "finances", Name: "Financial health", Max: 10, Step: 1},
	},
	DomainRelationships: {
		{Key: "partner", Name: "Partner", Max: 10, Step: 1},
		{Key: "family", Name: "Family", Max: 10, Step: 1},
		{Key: "friends", Name: "Friendships", Max: 10, Step: 1},
		{Key: "community", Name: "Community", Max: 10, Step: 1},
	},
}

// Metric is a measured value against a declared maximum
type Metric struct {
	Key   string `json:"key"`
	Name  string `json:"name"`
	Value int    `json:"value"`
	Max   int    `json:"max"`
	Step  int    `json:"step,omitempty"`
}

// CategoryScore is one domain's share of an Alpha Score
type CategoryScore struct {
	Category Domain   `json:"category"`
	Score    int      `json:"score"`
	Metrics  []Metric `json:"metrics"`
}

// AlphaScore is an append-only quarterly snapshot
type AlphaScore struct {
	ID         string          `json:"id"`
	UserID     string          `json:"user_id"`
	Total      int             `json:"total"`
	Quarter    int             `json:"quarter"`
	Year       int             `json:"year"`
	SprintID   string          `json:"sprint_id,omitempty"`
	RecordedAt time.Time       `json:"recorded_at"`
	Categories []CategoryScore `json:"categories"`
}

// ScoreDelta is the change between a snapshot and the one preceding it
type ScoreDelta struct {
	Total      int            `json:"total"`
	Categories map[Domain]int `json:"categories"`
}

// Category returns the score for a domain, or nil if the snapshot lacks it
func (a *AlphaScore) Category(d Domain) *CategoryScore {
	for i := range a.Categories {
		if a.Categories[i].Category == d {
			return &a.Categories[i]
		}
	}
	return nil
}

// Before reports whether a was recorded for an earlier quarter than (quarter, year)
func (a *AlphaScore) Before(quarter, year int) bool {
	if a.Year != year {
		return a.Year < year
	}
	return a.Quarter < quarter
}

// BlankMetrics returns the schema metrics for a domain with zero values
func BlankMetrics(d Domain) []Metric {
	specs := MetricSchema[d]
	metrics := make([]Metric, len(specs))
	for i, spec := range specs {
		metrics[i] = Metric{Key: spec.Key, Name: spec.Name, Max: spec.Max, Step: spec.Step}
	}
	return metrics
}

// Validate checks the snapshot against the closed category set and the metric schema
func (a *AlphaScore) Validate() error {
	if a.Quarter < 1 || a.Quarter > 4 {
		return fmt.Errorf("quarter must be between 1 and 4, got %d", a.Quarter)
	}
	if a.Year < 1 {
		return fmt.Errorf("invalid year: %d", a.Year)
	}
	if len(a.Categories) != len(Domains) {
		return fmt.Errorf("expected %d categories, got %d", len(Domains), len(a.Categories))
	}

	seen := make(map[Domain]bool)
	for _, cat := range a.Categories {
		if !cat.Category.IsValid() {
			return fmt.Errorf("invalid category: %q", cat.Category)
		}
		if seen[cat.Category] {
			return fmt.Errorf("duplicate category: %s", cat.Category)
		}
		seen[cat.Category] = true
		if err := validateMetrics(cat.Category, cat.Metrics); err != nil {
			return err
		}
	}
	return nil
}

func validateMetrics(d Domain, metrics []Metric) error {
	specs := MetricSchema[d]
	if len(metrics) != len(specs) {
		return fmt.Errorf("%s: expected %d metrics, got %d", d, len(specs), len(metrics))
	}

	byKey := make(map[string]MetricSpec, len(specs))
	for _, spec := range specs {
		byKey[spec.Key] = spec
	}

	for _, m := range metrics {
		spec, ok := byKey[m.Key]
		if !ok {
			return fmt.Errorf("%s: unknown metric %q", d, m.Key)
		}
		delete(byKey, m.Key)
		if m.Max != spec.Max {
			return fmt.Errorf("%s.%s: max must be %d, got %d", d, m.Key, spec.Max, m.Max)
		}
		if m.Value < 0 || m.Value > m.Max {
			return fmt.Errorf("%s.%s: value %d outside [0, %d]", d, m.Key, m.Value, m.Max)
		}
	}
	return nil
}
