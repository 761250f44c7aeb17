package models

import (
	"fmt"
	"strings"
	"time"
)

// Habit represents a recurring practice tracked per calendar day
type Habit struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Domain      Domain    `json:"domain"`
	Active      bool      `json:"active"`
	Pinned      bool      `json:"pinned"`
	Streak      int       `json:"streak"` // cached current streak, rewritten on every toggle
	CreatedAt   time.Time `json:"created_at"`

	// Days holds the completed days (YYYY-MM-DD) when loaded with completions attached
	Days []string `json:"days,omitempty"`
}

func (h *Habit) Validate() error {
	if strings.TrimSpace(h.Title) == "" {
		return fmt.Errorf("habit title cannot be empty")
	}
	if !h.Domain.IsValid() {
		return fmt.Errorf("invalid habit domain: %q", h.Domain)
	}
	if h.Streak < 0 {
		return fmt.Errorf("habit streak cannot be negative")
	}
	return nil
}

// Completion records that a habit was performed on a specific day
type Completion struct {
	ID        string     `json:"id"`
	HabitID   string     `json:"habit_id"`
	Day       string     `json:"day"` // YYYY-MM-DD format
	CreatedAt time.Time  `json:"created_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}
