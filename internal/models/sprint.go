package models

import (
	"fmt"
	"strings"
	"time"
)

// Sprint is a bounded planning period containing objectives
type Sprint struct {
	ID          string      `json:"id"`
	UserID      string      `json:"user_id"`
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	StartDay    string      `json:"start_day"` // YYYY-MM-DD
	EndDay      string      `json:"end_day"`   // YYYY-MM-DD
	Progress    int         `json:"progress"`  // cached, derived from objectives
	CreatedAt   time.Time   `json:"created_at"`
	Objectives  []Objective `json:"objectives,omitempty"`
}

func (s *Sprint) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return fmt.Errorf("sprint name cannot be empty")
	}
	start, err := time.Parse("2006-01-02", s.StartDay)
	if err != nil {
		return fmt.Errorf("invalid start date format (expected YYYY-MM-DD): %w", err)
	}
	end, err := time.Parse("2006-01-02", s.EndDay)
	if err != nil {
		return fmt.Errorf("invalid end date format (expected YYYY-MM-DD): %w", err)
	}
	if end.Before(start) {
		return fmt.Errorf("sprint end %s is before start %s", s.EndDay, s.StartDay)
	}
	return nil
}

// Objective is a single measurable goal within a sprint
type Objective struct {
	ID          string    `json:"id"`
	SprintID    string    `json:"sprint_id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Progress    int       `json:"progress"` // 0-100
	Position    int       `json:"position"`
	CreatedAt   time.Time `json:"created_at"`
}

func (o *Objective) Validate() error {
	if strings.TrimSpace(o.Title) == "" {
		return fmt.Errorf("objective title cannot be empty")
	}
	if o.Progress < 0 || o.Progress > 100 {
		return fmt.Errorf("objective progress must be between 0 and 100, got %d", o.Progress)
	}
	return nil
}
