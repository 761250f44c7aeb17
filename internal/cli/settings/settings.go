package settings

import (
	"fmt"

	"github.com/julianstephens/alpha/internal/cli"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`

	Timezone  *string `help:"IANA timezone used to decide what 'today' is, or Local."`
	Remind    *bool   `help:"Enable or disable habit reminders."`
	WeekStart *string `help:"First day of the week in calendars (monday or sunday)."`
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Tracker.Settings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	updated := false
	if c.Timezone != nil {
		settings.Timezone = *c.Timezone
		updated = true
	}
	if c.Remind != nil {
		settings.RemindEnabled = *c.Remind
		updated = true
	}
	if c.WeekStart != nil {
		settings.WeekStart = *c.WeekStart
		updated = true
	}

	if updated {
		if err := ctx.Tracker.SaveSettings(settings); err != nil {
			return fmt.Errorf("failed to save settings: %w", err)
		}
		ctx.Println("Settings updated successfully.")
	}

	if c.List || !updated {
		ctx.Println("Current Settings:")
		ctx.Printf("  Timezone:   %s\n", settings.Timezone)
		ctx.Printf("  Reminders:  %v\n", settings.RemindEnabled)
		ctx.Printf("  Week start: %s\n", settings.WeekStart)
	}
	return nil
}
