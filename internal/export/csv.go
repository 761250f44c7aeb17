package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/julianstephens/alpha/internal/constants"
	"github.com/julianstephens/alpha/internal/models"
)

var csvHeader = []string{"day", "habit_id", "habit", "domain"}

// ToCSV writes one row per live completion, oldest first.
func ToCSV(w io.Writer, b *Bundle) error {
	type habitInfo struct{ title, domain string }
	habits := make(map[string]habitInfo, len(b.Habits))
	for _, h := range b.Habits {
		habits[h.ID] = habitInfo{h.Title, string(h.Domain)}
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, c := range b.Completions {
		if c.DeletedAt != nil {
			continue
		}
		h, ok := habits[c.HabitID]
		if !ok {
			h = habitInfo{title: "Unknown"}
		}
		if err := cw.Write([]string{c.Day, c.HabitID, h.title, h.domain}); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ScoresCSV writes one row per score snapshot with a column per domain.
func ScoresCSV(w io.Writer, b *Bundle) error {
	cw := csv.NewWriter(w)
	header := []string{"year", "quarter", "recorded_at", "total"}
	for _, d := range models.Domains {
		header = append(header, string(d))
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, s := range b.Scores {
		row := []string{
			strconv.Itoa(s.Year),
			strconv.Itoa(s.Quarter),
			s.RecordedAt.UTC().Format(constants.TimestampFormat),
			strconv.Itoa(s.Total),
		}
		for _, d := range models.Domains {
			score := ""
			if c := s.Category(d); c != nil {
				score = strconv.Itoa(c.Score)
			}
			row = append(row, score)
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
