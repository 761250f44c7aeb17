package system

import (
	"time"

	"github.com/julianstephens/alpha/internal/cli"
	"github.com/julianstephens/alpha/internal/export"
)

type ExportCmd struct {
	Format string `help:"Output format (json or csv)." default:"json" enum:"json,csv"`
	Out    string `help:"File to write, or - for stdout." short:"o" default:"-"`
	Scores bool   `help:"With csv, export alpha score history instead of completions."`
	Year   int    `help:"Year whose challenges are included (defaults to this year)."`
}

func (c *ExportCmd) Run(ctx *cli.Context) error {
	format, err := export.ParseFormat(c.Format)
	if err != nil {
		return err
	}
	year := c.Year
	if year == 0 {
		today, err := ctx.Tracker.Today()
		if err != nil {
			return err
		}
		year = today.Year()
	}

	bundle, err := export.Collect(ctx.Store, ctx.User, year, time.Now())
	if err != nil {
		return err
	}

	toStdout := c.Out == "" || c.Out == "-"
	switch {
	case c.Scores && format == export.FormatCSV && toStdout:
		return export.ScoresCSV(ctx.Stdout(), bundle)
	case c.Scores && format == export.FormatCSV:
		return export.ScoresFile(c.Out, bundle)
	case toStdout:
		return export.Write(ctx.Stdout(), bundle, format)
	}

	if err := export.ToFile(c.Out, bundle, format); err != nil {
		return err
	}
	ctx.Printf("✓ Exported %d habits, %d completions and %d scores to %s\n",
		len(bundle.Habits), len(bundle.Completions), len(bundle.Scores), c.Out)
	return nil
}
