// Package export writes a user's history to JSON or CSV.
package export

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/julianstephens/alpha/internal/models"
	"github.com/julianstephens/alpha/internal/storage"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatJSON, FormatCSV:
		return f, nil
	default:
		return "", fmt.Errorf("unknown export format %q (want json or csv)", s)
	}
}

// Bundle is everything exported for one user.
type Bundle struct {
	ExportedAt  time.Time
	UserID      string
	Profile     models.Profile
	Habits      []models.Habit
	Completions []models.Completion
	Sprints     []models.Sprint
	Scores      []models.AlphaScore
	Finances    models.FinancialData
	Challenges  []models.Challenge
}

// Collect reads the user's data. Challenges are limited to year.
func Collect(repo storage.Repository, userID string, year int, now time.Time) (*Bundle, error) {
	b := &Bundle{ExportedAt: now.UTC(), UserID: userID}
	var err error

	if b.Profile, err = repo.GetProfile(userID); err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	if b.Habits, err = repo.ListHabits(userID); err != nil {
		return nil, fmt.Errorf("load habits: %w", err)
	}
	if b.Completions, err = repo.ListAllCompletions(userID); err != nil {
		return nil, fmt.Errorf("load completions: %w", err)
	}
	sprints, err := repo.ListSprints(userID)
	if err != nil {
		return nil, fmt.Errorf("load sprints: %w", err)
	}
	for _, s := range sprints {
		full, err := repo.GetSprint(s.ID)
		if err != nil {
			return nil, fmt.Errorf("load sprint %s: %w", s.ID, err)
		}
		b.Sprints = append(b.Sprints, full)
	}
	if b.Scores, err = repo.ListScores(userID); err != nil {
		return nil, fmt.Errorf("load scores: %w", err)
	}
	if b.Finances, err = repo.GetFinancialData(userID); err != nil {
		return nil, fmt.Errorf("load finances: %w", err)
	}
	if b.Challenges, err = repo.ListChallenges(userID, year, 0); err != nil {
		return nil, fmt.Errorf("load challenges: %w", err)
	}
	return b, nil
}

// Write encodes b in the given format.
func Write(w io.Writer, b *Bundle, f Format) error {
	switch f {
	case FormatJSON:
		return ToJSON(w, b)
	case FormatCSV:
		return ToCSV(w, b)
	default:
		return fmt.Errorf("unknown export format %q", f)
	}
}

// ToFile writes b to path, or to stdout when path is "" or "-".
func ToFile(path string, b *Bundle, f Format) error {
	return toFile(path, func(w io.Writer) error { return Write(w, b, f) })
}

// ScoresFile writes the alpha score history as CSV to path.
func ScoresFile(path string, b *Bundle) error {
	return toFile(path, func(w io.Writer) error { return ScoresCSV(w, b) })
}

func toFile(path string, write func(io.Writer) error) error {
	if path == "" || path == "-" {
		return write(os.Stdout)
	}
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	if err := write(out); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
