package system

import (
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/alpha/internal/backup"
	"github.com/julianstephens/alpha/internal/cli"
	"github.com/julianstephens/alpha/internal/progress"
	"github.com/julianstephens/alpha/internal/storage"
)

type DoctorCmd struct{}

type check struct {
	name    string
	needsDB bool
	warn    bool
	run     func(*cli.Context) error
}

var checks = []check{
	{name: "Schema version", needsDB: true, run: checkSchemaVersion},
	{name: "Backups present", warn: true, run: checkBackupsPresent},
	{name: "Clock/timezone", needsDB: true, run: checkClockTimezone},
	{name: "Habit integrity", needsDB: true, run: checkHabitsIntegrity},
	{name: "Score integrity", needsDB: true, run: checkScoresIntegrity},
	{name: "Challenge integrity", needsDB: true, run: checkChallengesIntegrity},
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	ctx.Println("Running diagnostics...")
	ctx.Println()

	hasError := false
	dbReachable := true
	if err := checkDBReachable(ctx); err != nil {
		ctx.Printf("❌ Database reachable: FAIL\n")
		ctx.Printf("   Error: %v\n", err)
		hasError = true
		dbReachable = false
	} else {
		ctx.Printf("✓ Database reachable: OK\n")
	}

	for _, c := range checks {
		if c.needsDB && !dbReachable {
			ctx.Printf("⊘ %s: SKIPPED (database not reachable)\n", c.name)
			continue
		}
		err := c.run(ctx)
		switch {
		case err == nil:
			ctx.Printf("✓ %s: OK\n", c.name)
		case c.warn:
			ctx.Printf("⚠ %s: WARNING\n", c.name)
			ctx.Printf("   %v\n", err)
		default:
			ctx.Printf("❌ %s: FAIL\n", c.name)
			ctx.Printf("   Error: %v\n", err)
			hasError = true
		}
	}

	ctx.Println()
	if hasError {
		ctx.Println("Some checks failed. Please review the errors above.")
		return errors.New("diagnostics failed")
	}
	ctx.Println("All checks passed!")
	return nil
}

func checkDBReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	if _, err := ctx.Store.GetSettings(); err != nil && !errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("failed to query database: %w", err)
	}
	return nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	m, ok := ctx.Store.(migrator)
	if !ok {
		return nil
	}
	status, err := m.SchemaStatus()
	if err != nil {
		return err
	}
	if !status.UpToDate() {
		return fmt.Errorf("schema is at version %d, latest is %d; run 'alpha migrate'", status.Current, status.Latest)
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	mgr, err := ctx.Backups()
	if errors.Is(err, backup.ErrNotSQLite) {
		return errors.New("backups are only managed for SQLite databases")
	}
	if err != nil {
		return err
	}
	backups, err := mgr.List()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found in %s", mgr.Dir())
	}
	if age := time.Since(backups[0].Timestamp); age > 7*24*time.Hour {
		return fmt.Errorf("latest backup is %d days old", int(age.Hours()/24))
	}
	return nil
}

func checkClockTimezone(ctx *cli.Context) error {
	settings, err := ctx.Tracker.Settings()
	if err != nil {
		return err
	}
	if _, err := progress.LoadLocation(settings.Timezone); err != nil {
		return fmt.Errorf("invalid timezone %q: %w", settings.Timezone, err)
	}
	if time.Now().Year() < 2000 {
		return fmt.Errorf("system clock looks wrong: %s", time.Now().Format(time.RFC3339))
	}
	return nil
}

// checkHabitsIntegrity flags completion days that do not parse or lie in the
// future.
func checkHabitsIntegrity(ctx *cli.Context) error {
	today, err := ctx.Tracker.Today()
	if err != nil {
		return err
	}
	habits, err := ctx.Store.ListHabits(ctx.User)
	if err != nil {
		return err
	}
	var problems []string
	for _, h := range habits {
		if err := h.Validate(); err != nil {
			problems = append(problems, fmt.Sprintf("%s: %v", h.Title, err))
			continue
		}
		days, err := ctx.Store.ListCompletions(h.ID)
		if err != nil {
			return err
		}
		for _, d := range days {
			day, err := progress.ParseDay(d)
			if err != nil {
				problems = append(problems, fmt.Sprintf("%s: bad completion date %q", h.Title, d))
			} else if day.After(today) {
				problems = append(problems, fmt.Sprintf("%s: completion in the future (%s)", h.Title, d))
			}
		}
	}
	return joinProblems(problems)
}

// checkScoresIntegrity recomputes every snapshot from its metrics.
func checkScoresIntegrity(ctx *cli.Context) error {
	scores, err := ctx.Store.ListScores(ctx.User)
	if err != nil {
		return err
	}
	var problems []string
	for _, s := range scores {
		label := fmt.Sprintf("Q%d %d", s.Quarter, s.Year)
		if err := s.Validate(); err != nil {
			problems = append(problems, fmt.Sprintf("%s: %v", label, err))
			continue
		}
		recomputed := s
		recomputed.Categories = append(recomputed.Categories[:0:0], s.Categories...)
		progress.ComputeScore(&recomputed)
		if recomputed.Total != s.Total {
			problems = append(problems, fmt.Sprintf("%s: stored total %d, metrics give %d", label, s.Total, recomputed.Total))
		}
	}
	return joinProblems(problems)
}

func checkChallengesIntegrity(ctx *cli.Context) error {
	today, err := ctx.Tracker.Today()
	if err != nil {
		return err
	}
	var problems []string
	for _, year := range []int{today.Year() - 1, today.Year()} {
		challenges, err := ctx.Store.ListChallenges(ctx.User, year, 0)
		if err != nil {
			return err
		}
		for _, c := range challenges {
			if err := c.Validate(); err != nil {
				problems = append(problems, fmt.Sprintf("%s: %v", c.Title, err))
			}
		}
	}
	return joinProblems(problems)
}

func joinProblems(problems []string) error {
	switch len(problems) {
	case 0:
		return nil
	case 1:
		return errors.New(problems[0])
	}
	msg := fmt.Sprintf("%d problems found:", len(problems))
	for _, p := range problems {
		msg += "\n   - " + p
	}
	return errors.New(msg)
}
