package system

import (
	"context"
	"errors"
	"fmt"

	"github.com/julianstephens/alpha/internal/cli"
	"github.com/julianstephens/alpha/internal/notifier"
)

// newNotifier is swapped out in tests.
var newNotifier = func() *notifier.Notifier { return notifier.New() }

type RemindCmd struct {
	Force  bool `help:"Send a reminder even when reminders are disabled in settings."`
	DryRun bool `help:"Print the reminder to stdout instead of sending it."`
}

func (c *RemindCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Tracker.Settings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	if !settings.RemindEnabled && !c.Force {
		ctx.Println("Reminders are disabled in settings.")
		return nil
	}

	pending, err := ctx.Tracker.PendingToday(ctx.User)
	if err != nil {
		return err
	}
	if len(pending) == 0 {
		ctx.Println("✓ All habits done for today.")
		return nil
	}

	if c.DryRun {
		ctx.Println(notifier.ReminderText(pending))
		return nil
	}

	if _, err := newNotifier().Remind(context.Background(), pending); err != nil {
		if errors.Is(err, notifier.ErrTrayNotRunning) {
			ctx.Println(notifier.ReminderText(pending))
			return nil
		}
		return fmt.Errorf("failed to send reminder: %w", err)
	}
	ctx.Printf("Reminder sent for %d pending habit(s).\n", len(pending))
	return nil
}
