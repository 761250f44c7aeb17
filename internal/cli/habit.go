package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/alpha/internal/constants"
	"github.com/julianstephens/alpha/internal/models"
	"github.com/julianstephens/alpha/internal/progress"
	"github.com/julianstephens/alpha/internal/tracker"
)

type HabitCmd struct {
	Add        HabitAddCmd        `cmd:"" help:"Add a new habit."`
	List       HabitListCmd       `cmd:"" help:"List habits with today's status." default:"1"`
	Edit       HabitEditCmd       `cmd:"" help:"Edit a habit."`
	Toggle     HabitToggleCmd     `cmd:"" help:"Mark or unmark a habit for a day."`
	Pin        HabitPinCmd        `cmd:"" help:"Pin a habit to the top of the dashboard."`
	Unpin      HabitUnpinCmd      `cmd:"" help:"Unpin a habit."`
	Activate   HabitActivateCmd   `cmd:"" help:"Resume tracking a habit."`
	Deactivate HabitDeactivateCmd `cmd:"" help:"Stop tracking a habit without deleting its history."`
	Delete     HabitDeleteCmd     `cmd:"" help:"Delete a habit and its history."`
	Stats      HabitStatsCmd      `cmd:"" help:"Show streaks and completion rates."`
	Log        HabitLogCmd        `cmd:"" help:"Show a month calendar for a habit."`
}

type HabitAddCmd struct {
	Title       string `arg:"" help:"Habit title."`
	Domain      string `help:"Life domain (mind, body, purpose, relationships)." short:"d" required:""`
	Description string `help:"Optional description."`
}

func (c *HabitAddCmd) Run(ctx *Context) error {
	domain, err := models.ParseDomain(c.Domain)
	if err != nil {
		return err
	}
	h, err := ctx.Tracker.AddHabit(ctx.User, c.Title, c.Description, domain)
	if err != nil {
		return err
	}
	ctx.Printf("Added habit: %s (%s) [%s]\n", h.Title, h.Domain.Label(), ShortID(h.ID))
	return nil
}

type HabitListCmd struct {
	All bool `help:"Include inactive habits." short:"a"`
}

func (c *HabitListCmd) Run(ctx *Context) error {
	stats, err := ctx.Tracker.HabitStats(ctx.User)
	if err != nil {
		return err
	}

	shown := 0
	for _, st := range stats {
		if !st.Habit.Active && !c.All {
			continue
		}
		if shown == 0 {
			ctx.Printf("%-8s  %-3s  %-28s  %-13s  %6s  %5s\n", "ID", "", "HABIT", "DOMAIN", "STREAK", "RATE")
		}
		shown++
		ctx.Printf("%-8s  %-3s  %-28s  %-13s  %6d  %4d%%%s\n",
			ShortID(st.Habit.ID), checkbox(st.CompletedToday), truncate(st.Habit.Title, 28),
			st.Habit.Domain.Label(), st.Streak.Current, st.Rate, habitFlags(st.Habit))
	}
	if shown == 0 {
		ctx.Println("No habits found. Add one with 'alpha habit add <title> --domain mind'.")
	}
	return nil
}

func checkbox(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}

func habitFlags(h models.Habit) string {
	var flags []string
	if h.Pinned {
		flags = append(flags, "pinned")
	}
	if !h.Active {
		flags = append(flags, "inactive")
	}
	if len(flags) == 0 {
		return ""
	}
	return "  (" + strings.Join(flags, ", ") + ")"
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

type HabitEditCmd struct {
	Habit       string  `arg:"" help:"Habit ID or title."`
	Title       *string `help:"New title."`
	Description *string `help:"New description."`
	Domain      *string `help:"New domain."`
}

func (c *HabitEditCmd) Run(ctx *Context) error {
	h, err := ctx.Tracker.FindHabit(ctx.User, c.Habit)
	if err != nil {
		return err
	}
	change := tracker.HabitChange{Title: c.Title, Description: c.Description}
	if c.Domain != nil {
		d, err := models.ParseDomain(*c.Domain)
		if err != nil {
			return err
		}
		change.Domain = &d
	}
	if change == (tracker.HabitChange{}) {
		ctx.Println("No changes specified. Use --title, --description or --domain.")
		return nil
	}
	h, err = ctx.Tracker.UpdateHabit(h.ID, change)
	if err != nil {
		return err
	}
	ctx.Printf("Updated habit: %s (%s)\n", h.Title, h.Domain.Label())
	return nil
}

type HabitToggleCmd struct {
	Habit string `arg:"" help:"Habit ID or title."`
	Date  string `help:"Day to toggle: YYYY-MM-DD, today or yesterday." default:"today"`
}

func (c *HabitToggleCmd) Run(ctx *Context) error {
	h, err := ctx.Tracker.FindHabit(ctx.User, c.Habit)
	if err != nil {
		return err
	}
	day, err := ctx.ParseDay(c.Date)
	if err != nil {
		return err
	}
	res, err := ctx.Tracker.ToggleCompletion(h.ID, day)
	if err != nil {
		return err
	}
	verb := "Unmarked"
	if res.Done {
		verb = "Marked"
	}
	ctx.Printf("%s %q for %s. Streak: %d day(s)\n", verb, h.Title, progress.FormatDay(res.Day), res.Stat.Streak.Current)
	return nil
}

type HabitPinCmd struct {
	Habit string `arg:"" help:"Habit ID or title."`
}

func (c *HabitPinCmd) Run(ctx *Context) error {
	return setHabitFlag(ctx, c.Habit, tracker.HabitChange{Pinned: ptr(true)}, "Pinned")
}

type HabitUnpinCmd struct {
	Habit string `arg:"" help:"Habit ID or title."`
}

func (c *HabitUnpinCmd) Run(ctx *Context) error {
	return setHabitFlag(ctx, c.Habit, tracker.HabitChange{Pinned: ptr(false)}, "Unpinned")
}

type HabitActivateCmd struct {
	Habit string `arg:"" help:"Habit ID or title."`
}

func (c *HabitActivateCmd) Run(ctx *Context) error {
	return setHabitFlag(ctx, c.Habit, tracker.HabitChange{Active: ptr(true)}, "Activated")
}

type HabitDeactivateCmd struct {
	Habit string `arg:"" help:"Habit ID or title."`
}

func (c *HabitDeactivateCmd) Run(ctx *Context) error {
	return setHabitFlag(ctx, c.Habit, tracker.HabitChange{Active: ptr(false)}, "Deactivated")
}

func setHabitFlag(ctx *Context, ref string, change tracker.HabitChange, verb string) error {
	h, err := ctx.Tracker.FindHabit(ctx.User, ref)
	if err != nil {
		return err
	}
	if _, err := ctx.Tracker.UpdateHabit(h.ID, change); err != nil {
		return err
	}
	ctx.Printf("%s habit: %s\n", verb, h.Title)
	return nil
}

func ptr[T any](v T) *T { return &v }

type HabitDeleteCmd struct {
	Habit string `arg:"" help:"Habit ID or title."`
	Yes   bool   `help:"Skip the confirmation prompt." short:"y"`
}

func (c *HabitDeleteCmd) Run(ctx *Context) error {
	h, err := ctx.Tracker.FindHabit(ctx.User, c.Habit)
	if err != nil {
		return err
	}
	if !c.Yes {
		ok, err := ctx.Confirm(fmt.Sprintf("Delete %q and its entire history?", h.Title))
		if err != nil {
			return err
		}
		if !ok {
			ctx.Println("Delete cancelled.")
			return nil
		}
	}
	if err := ctx.Tracker.DeleteHabit(h.ID); err != nil {
		return err
	}
	ctx.Printf("Deleted habit: %s\n", h.Title)
	return nil
}

type HabitStatsCmd struct {
	Habit string `arg:"" optional:"" help:"Habit ID or title. Omit for all active habits."`
}

func (c *HabitStatsCmd) Run(ctx *Context) error {
	var stats []progress.HabitStat
	if c.Habit != "" {
		h, err := ctx.Tracker.FindHabit(ctx.User, c.Habit)
		if err != nil {
			return err
		}
		st, err := ctx.Tracker.HabitStat(h.ID)
		if err != nil {
			return err
		}
		stats = append(stats, st)
	} else {
		all, err := ctx.Tracker.HabitStats(ctx.User)
		if err != nil {
			return err
		}
		for _, st := range all {
			if st.Habit.Active {
				stats = append(stats, st)
			}
		}
	}

	if len(stats) == 0 {
		ctx.Println("No habits found.")
		return nil
	}
	for i, st := range stats {
		if i > 0 {
			ctx.Println()
		}
		printHabitStat(ctx, st)
	}
	return nil
}

func printHabitStat(ctx *Context, st progress.HabitStat) {
	ctx.Printf("%s (%s)\n", st.Habit.Title, st.Habit.Domain.Label())
	ctx.Printf("  Current streak:  %d day(s)\n", st.Streak.Current)
	ctx.Printf("  Longest streak:  %d day(s)\n", st.Streak.Longest)
	ctx.Printf("  Completed:       %d of %d tracked day(s)\n", st.CompletedDays, st.TrackedDays)
	ctx.Printf("  Completion rate: %d%% (%s)\n", st.Rate, st.Status)
	ctx.Printf("  Last 7 days:     %d%%  %s\n", st.WeeklyRate, weekStrip(st.Week))
}

// weekStrip renders oldest to newest, today last.
func weekStrip(week []bool) string {
	var b strings.Builder
	for _, done := range week {
		if done {
			b.WriteString("■")
		} else {
			b.WriteString("·")
		}
	}
	return b.String()
}

type HabitLogCmd struct {
	Habit string `arg:"" help:"Habit ID or title."`
	Month string `help:"Month to show (YYYY-MM). Defaults to the current month."`
}

func (c *HabitLogCmd) Run(ctx *Context) error {
	h, err := ctx.Tracker.FindHabit(ctx.User, c.Habit)
	if err != nil {
		return err
	}
	today, err := ctx.Tracker.Today()
	if err != nil {
		return err
	}
	month := today
	if c.Month != "" {
		if month, err = time.Parse(constants.MonthFormat, c.Month); err != nil {
			return fmt.Errorf("invalid month %q (expected YYYY-MM)", c.Month)
		}
	}

	grid, err := ctx.Tracker.Calendar(h.ID, month.Year(), month.Month())
	if err != nil {
		return err
	}

	ctx.Printf("%s, %s\n\n", h.Title, month.Format("January 2006"))
	if len(grid) > 0 {
		for _, cell := range grid[0] {
			ctx.Printf(" %-3s", cell.Day.Weekday().String()[:2])
		}
		ctx.Println()
	}
	for _, week := range grid {
		for _, cell := range week {
			ctx.Printf(" %-3s", calendarCell(cell))
		}
		ctx.Println()
	}
	ctx.Println("\n  ■ done   [ ] today")
	return nil
}

func calendarCell(cell progress.CalendarCell) string {
	switch {
	case !cell.InMonth:
		return ""
	case cell.Today && cell.Completed:
		return "[■]"
	case cell.Today:
		return "[ ]"
	case cell.Completed:
		return "■"
	default:
		return fmt.Sprintf("%d", cell.Day.Day())
	}
}
