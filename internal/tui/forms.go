package tui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/alpha/internal/models"
)

func NewHabitForm(f *HabitFormModel) *huh.Form {
	opts := make([]huh.Option[string], 0, len(models.Domains))
	for _, d := range models.Domains {
		opts = append(opts, huh.NewOption(d.Label(), string(d)))
	}
	if f.Domain == "" {
		f.Domain = string(models.DomainMind)
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Habit").
				Value(&f.Title).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("title cannot be empty")
					}
					return nil
				}),
			huh.NewSelect[string]().
				Title("Domain").
				Options(opts...).
				Value(&f.Domain),
			huh.NewInput().
				Title("Description").
				Placeholder("optional").
				Value(&f.Description),
		),
	).WithShowHelp(true)
}
