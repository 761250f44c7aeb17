package models

import (
	"fmt"
	"strings"
	"time"
)

type ChallengeKind string

const (
	ChallengeAnnual  ChallengeKind = "annual"
	ChallengeMonthly ChallengeKind = "monthly"
)

func ParseChallengeKind(input string) (ChallengeKind, error) {
	k := ChallengeKind(strings.TrimSpace(strings.ToLower(input)))
	switch k {
	case ChallengeAnnual, ChallengeMonthly:
		return k, nil
	default:
		return "", fmt.Errorf("invalid challenge kind: %q", input)
	}
}

// Challenge is a countable goal scoped to a year or a single month
type Challenge struct {
	ID          string        `json:"id"`
	UserID      string        `json:"user_id"`
	Title       string        `json:"title"`
	Description string        `json:"description,omitempty"`
	Kind        ChallengeKind `json:"kind"`
	Year        int           `json:"year"`
	Month       int           `json:"month,omitempty"` // 1-12 for monthly, 0 for annual
	Target      int           `json:"target"`
	Progress    int           `json:"progress"`
	CreatedAt   time.Time     `json:"created_at"`
	CompletedAt *time.Time    `json:"completed_at,omitempty"`
}

func (c *Challenge) Validate() error {
	if strings.TrimSpace(c.Title) == "" {
		return fmt.Errorf("challenge title cannot be empty")
	}
	if c.Target < 1 {
		return fmt.Errorf("challenge target must be at least 1")
	}
	if c.Progress < 0 {
		return fmt.Errorf("challenge progress cannot be negative")
	}
	if c.Year < 1 {
		return fmt.Errorf("invalid year: %d", c.Year)
	}
	switch c.Kind {
	case ChallengeAnnual:
		if c.Month != 0 {
			return fmt.Errorf("annual challenges cannot have a month")
		}
	case ChallengeMonthly:
		if c.Month < 1 || c.Month > 12 {
			return fmt.Errorf("monthly challenges need a month between 1 and 12, got %d", c.Month)
		}
	default:
		return fmt.Errorf("invalid challenge kind: %q", c.Kind)
	}
	return nil
}

// Period renders the challenge scope, e.g. "2026" or "2026-03"
func (c *Challenge) Period() string {
	if c.Kind == ChallengeMonthly {
		return fmt.Sprintf("%d-%02d", c.Year, c.Month)
	}
	return fmt.Sprintf("%d", c.Year)
}
