package cli

import (
	"fmt"
	"strings"

	"github.com/julianstephens/alpha/internal/models"
	"github.com/julianstephens/alpha/internal/storage"
	"github.com/julianstephens/alpha/internal/tracker"
)

type ChallengeCmd struct {
	Add     ChallengeAddCmd     `cmd:"" help:"Add an annual or monthly challenge."`
	List    ChallengeListCmd    `cmd:"" help:"List challenges." default:"1"`
	Advance ChallengeAdvanceCmd `cmd:"" help:"Record progress on a challenge."`
	Delete  ChallengeDeleteCmd  `cmd:"" help:"Delete a challenge."`
}

type ChallengeAddCmd struct {
	Title       string `arg:"" help:"Challenge title."`
	Target      int    `help:"Count that completes the challenge." default:"1"`
	Kind        string `help:"annual or monthly." short:"k" default:"annual"`
	Year        int    `help:"Year. Defaults to the current year."`
	Month       int    `help:"Month (1-12) for monthly challenges. Defaults to the current month."`
	Description string `help:"Optional description."`
}

func (c *ChallengeAddCmd) Run(ctx *Context) error {
	today, err := ctx.Tracker.Today()
	if err != nil {
		return err
	}
	kind := models.ChallengeAnnual
	if c.Kind != "" {
		if kind, err = models.ParseChallengeKind(c.Kind); err != nil {
			return err
		}
	}
	ch := models.Challenge{
		UserID:      ctx.User,
		Title:       c.Title,
		Description: c.Description,
		Kind:        kind,
		Year:        c.Year,
		Target:      c.Target,
	}
	if ch.Year == 0 {
		ch.Year = today.Year()
	}
	if ch.Kind == models.ChallengeMonthly || c.Month != 0 {
		ch.Kind = models.ChallengeMonthly
		ch.Month = c.Month
		if ch.Month == 0 {
			ch.Month = int(today.Month())
		}
	}

	ch, err = ctx.Tracker.AddChallenge(ch)
	if err != nil {
		return err
	}
	ctx.Printf("Added %s challenge %q (target %d) [%s]\n", ch.Period(), ch.Title, ch.Target, ShortID(ch.ID))
	return nil
}

type ChallengeListCmd struct {
	Year  int  `help:"Year. Defaults to the current year."`
	Month int  `help:"Only this month's challenges plus annual ones."`
	Now   bool `help:"Shortcut for the current month." short:"n"`
}

func (c *ChallengeListCmd) Run(ctx *Context) error {
	today, err := ctx.Tracker.Today()
	if err != nil {
		return err
	}
	year, month := c.Year, c.Month
	if year == 0 {
		year = today.Year()
	}
	if c.Now {
		month = int(today.Month())
	}

	views, err := ctx.Tracker.Challenges(ctx.User, year, month)
	if err != nil {
		return err
	}
	if len(views) == 0 {
		ctx.Printf("No challenges for %d.\n", year)
		return nil
	}
	for _, v := range views {
		printChallenge(ctx, v)
	}
	return nil
}

func printChallenge(ctx *Context, v tracker.ChallengeView) {
	ch := v.Challenge
	mark := " "
	if ch.CompletedAt != nil {
		mark = "✓"
	}
	ctx.Printf("%s %-8s  %-10s  %-28s  %s %d/%d (%d%%)\n",
		mark, ShortID(ch.ID), ch.Period(), truncate(ch.Title, 28), bar(v.Percent, 10), ch.Progress, ch.Target, v.Percent)
}

func bar(pct, width int) string {
	filled := pct * width / 100
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}

type ChallengeAdvanceCmd struct {
	Challenge string `arg:"" help:"Challenge ID, ID prefix or title."`
	By        int    `arg:"" optional:"" default:"1" help:"Amount to add. Negative values undo progress."`
}

func (c *ChallengeAdvanceCmd) Run(ctx *Context) error {
	ch, err := findChallenge(ctx, c.Challenge)
	if err != nil {
		return err
	}
	v, err := ctx.Tracker.AdvanceChallenge(ch.ID, c.By)
	if err != nil {
		return err
	}
	printChallenge(ctx, v)
	if v.Challenge.CompletedAt != nil && ch.CompletedAt == nil {
		ctx.Println("Challenge complete!")
	}
	return nil
}

type ChallengeDeleteCmd struct {
	Challenge string `arg:"" help:"Challenge ID, ID prefix or title."`
}

func (c *ChallengeDeleteCmd) Run(ctx *Context) error {
	ch, err := findChallenge(ctx, c.Challenge)
	if err != nil {
		return err
	}
	if err := ctx.Tracker.DeleteChallenge(ch.ID); err != nil {
		return err
	}
	ctx.Printf("Deleted challenge: %s\n", ch.Title)
	return nil
}

// findChallenge searches this year's and last year's challenges.
func findChallenge(ctx *Context, ref string) (models.Challenge, error) {
	today, err := ctx.Tracker.Today()
	if err != nil {
		return models.Challenge{}, err
	}
	var matches []models.Challenge
	for _, year := range []int{today.Year(), today.AddDate(-1, 0, 0).Year()} {
		views, err := ctx.Tracker.Challenges(ctx.User, year, 0)
		if err != nil {
			return models.Challenge{}, err
		}
		for _, v := range views {
			ch := v.Challenge
			if ch.ID == ref {
				return ch, nil
			}
			if strings.EqualFold(ch.Title, ref) || (len(ref) >= 4 && strings.HasPrefix(ch.ID, ref)) {
				matches = append(matches, ch)
			}
		}
	}
	switch len(matches) {
	case 0:
		return models.Challenge{}, fmt.Errorf("challenge %q: %w", ref, storage.ErrNotFound)
	case 1:
		return matches[0], nil
	default:
		return models.Challenge{}, fmt.Errorf("%q matches %d challenges, use the ID", ref, len(matches))
	}
}

