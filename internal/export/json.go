package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/julianstephens/alpha/internal/constants"
	"github.com/julianstephens/alpha/internal/models"
)

type jsonExport struct {
	Version     int                  `json:"version"`
	ExportedAt  string               `json:"exported_at"`
	UserID      string               `json:"user_id"`
	Profile     models.Profile       `json:"profile"`
	Habits      []models.Habit       `json:"habits"`
	Completions []models.Completion  `json:"completions"`
	Sprints     []models.Sprint      `json:"sprints"`
	Scores      []models.AlphaScore  `json:"scores"`
	Finances    models.FinancialData `json:"finances"`
	Challenges  []models.Challenge   `json:"challenges"`
}

const jsonVersion = 1

func ToJSON(w io.Writer, b *Bundle) error {
	out := jsonExport{
		Version:     jsonVersion,
		ExportedAt:  b.ExportedAt.Format(constants.TimestampFormat),
		UserID:      b.UserID,
		Profile:     b.Profile,
		Habits:      nonNil(b.Habits),
		Completions: nonNil(b.Completions),
		Sprints:     nonNil(b.Sprints),
		Scores:      nonNil(b.Scores),
		Finances:    b.Finances,
		Challenges:  nonNil(b.Challenges),
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

// nonNil keeps empty sections as [] rather than null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
