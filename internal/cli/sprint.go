package cli

import (
	"fmt"
	"strings"

	"github.com/julianstephens/alpha/internal/models"
	"github.com/julianstephens/alpha/internal/storage"
	"github.com/julianstephens/alpha/internal/tracker"
)

type SprintCmd struct {
	Create    SprintCreateCmd `cmd:"" help:"Start a new sprint."`
	List      SprintListCmd   `cmd:"" help:"List sprints." default:"1"`
	Show      SprintShowCmd   `cmd:"" help:"Show a sprint with its objectives."`
	Delete    SprintDeleteCmd `cmd:"" help:"Delete a sprint and its objectives."`
	Objective struct {
		Add      ObjectiveAddCmd      `cmd:"" help:"Add an objective to a sprint."`
		Progress ObjectiveProgressCmd `cmd:"" help:"Set an objective's progress (0-100)."`
		Delete   ObjectiveDeleteCmd   `cmd:"" help:"Delete an objective."`
	} `cmd:"" help:"Manage sprint objectives."`
}

type SprintCreateCmd struct {
	Name        string   `arg:"" help:"Sprint name."`
	Description string   `help:"Optional description."`
	Start       string   `help:"Start day (YYYY-MM-DD). Defaults to today."`
	End         string   `help:"End day (YYYY-MM-DD). Defaults to a 90-day sprint."`
	Objectives  []string `name:"objective" short:"o" help:"Objective title. Repeat for several."`
}

func (c *SprintCreateCmd) Run(ctx *Context) error {
	sp, err := ctx.Tracker.CreateSprint(ctx.User, tracker.SprintInput{
		Name:        c.Name,
		Description: c.Description,
		StartDay:    c.Start,
		EndDay:      c.End,
		Objectives:  c.Objectives,
	})
	if err != nil {
		return err
	}
	ctx.Printf("Created sprint %q (%s to %s) with %d objective(s) [%s]\n",
		sp.Name, sp.StartDay, sp.EndDay, len(sp.Objectives), ShortID(sp.ID))
	return nil
}

type SprintListCmd struct{}

func (c *SprintListCmd) Run(ctx *Context) error {
	sprints, err := ctx.Tracker.Sprints(ctx.User)
	if err != nil {
		return err
	}
	if len(sprints) == 0 {
		ctx.Println("No sprints found. Start one with 'alpha sprint create <name>'.")
		return nil
	}
	ctx.Printf("%-8s  %-24s  %-10s  %-10s  %8s\n", "ID", "SPRINT", "START", "END", "PROGRESS")
	for _, sp := range sprints {
		ctx.Printf("%-8s  %-24s  %-10s  %-10s  %7d%%\n",
			ShortID(sp.ID), truncate(sp.Name, 24), sp.StartDay, sp.EndDay, sp.Progress)
	}
	return nil
}

type SprintShowCmd struct {
	Sprint string `arg:"" optional:"" help:"Sprint ID or name. Defaults to the active sprint."`
}

func (c *SprintShowCmd) Run(ctx *Context) error {
	id := ""
	if c.Sprint == "" {
		snap, err := ctx.Tracker.Dashboard(ctx.User)
		if err != nil {
			return err
		}
		if snap.Sprint == nil {
			ctx.Println("No active sprint.")
			return nil
		}
		id = snap.Sprint.ID
	} else {
		sp, err := findSprint(ctx, c.Sprint)
		if err != nil {
			return err
		}
		id = sp.ID
	}

	view, err := ctx.Tracker.Sprint(id)
	if err != nil {
		return err
	}
	sp, tl := view.Sprint, view.Timeline
	ctx.Printf("%s  [%s]\n", sp.Name, ShortID(sp.ID))
	if sp.Description != "" {
		ctx.Printf("%s\n", sp.Description)
	}
	ctx.Printf("%s to %s  ·  day %d of %d (%d%%), %d remaining\n",
		sp.StartDay, sp.EndDay, tl.ElapsedDays, tl.TotalDays, tl.Percent, tl.RemainingDays)
	ctx.Printf("Progress: %d%%\n\n", sp.Progress)

	if len(sp.Objectives) == 0 {
		ctx.Println("No objectives yet.")
		return nil
	}
	for _, o := range sp.Objectives {
		ctx.Printf("  %-8s  %3d%%  %s\n", ShortID(o.ID), o.Progress, o.Title)
	}
	return nil
}

type SprintDeleteCmd struct {
	Sprint string `arg:"" help:"Sprint ID or name."`
	Yes    bool   `help:"Skip the confirmation prompt." short:"y"`
}

func (c *SprintDeleteCmd) Run(ctx *Context) error {
	sp, err := findSprint(ctx, c.Sprint)
	if err != nil {
		return err
	}
	if !c.Yes {
		ok, err := ctx.Confirm(fmt.Sprintf("Delete sprint %q and its objectives?", sp.Name))
		if err != nil {
			return err
		}
		if !ok {
			ctx.Println("Delete cancelled.")
			return nil
		}
	}
	if err := ctx.Tracker.DeleteSprint(sp.ID); err != nil {
		return err
	}
	ctx.Printf("Deleted sprint: %s\n", sp.Name)
	return nil
}

type ObjectiveAddCmd struct {
	Sprint      string `arg:"" help:"Sprint ID or name."`
	Title       string `arg:"" help:"Objective title."`
	Description string `help:"Optional description."`
}

func (c *ObjectiveAddCmd) Run(ctx *Context) error {
	sp, err := findSprint(ctx, c.Sprint)
	if err != nil {
		return err
	}
	updated, err := ctx.Tracker.AddObjective(sp.ID, c.Title, c.Description)
	if err != nil {
		return err
	}
	ctx.Printf("Added objective %q to %s. Sprint progress: %d%%\n", c.Title, updated.Name, updated.Progress)
	return nil
}

type ObjectiveProgressCmd struct {
	Objective string `arg:"" help:"Objective ID (or ID prefix)."`
	Percent   int    `arg:"" help:"Progress from 0 to 100."`
}

func (c *ObjectiveProgressCmd) Run(ctx *Context) error {
	o, err := findObjective(ctx, c.Objective)
	if err != nil {
		return err
	}
	sp, err := ctx.Tracker.SetObjectiveProgress(o.ID, c.Percent)
	if err != nil {
		return err
	}
	ctx.Printf("%s: %d%%. Sprint %s: %d%%\n", o.Title, c.Percent, sp.Name, sp.Progress)
	return nil
}

type ObjectiveDeleteCmd struct {
	Objective string `arg:"" help:"Objective ID (or ID prefix)."`
}

func (c *ObjectiveDeleteCmd) Run(ctx *Context) error {
	o, err := findObjective(ctx, c.Objective)
	if err != nil {
		return err
	}
	sp, err := ctx.Tracker.DeleteObjective(o.ID)
	if err != nil {
		return err
	}
	ctx.Printf("Deleted objective %q. Sprint %s: %d%%\n", o.Title, sp.Name, sp.Progress)
	return nil
}

// findSprint matches an ID, ID prefix or case-insensitive name.
func findSprint(ctx *Context, ref string) (models.Sprint, error) {
	sprints, err := ctx.Tracker.Sprints(ctx.User)
	if err != nil {
		return models.Sprint{}, err
	}
	var matches []models.Sprint
	for _, sp := range sprints {
		if sp.ID == ref {
			return sp, nil
		}
		if strings.EqualFold(sp.Name, ref) || (len(ref) >= 4 && strings.HasPrefix(sp.ID, ref)) {
			matches = append(matches, sp)
		}
	}
	switch len(matches) {
	case 0:
		return models.Sprint{}, fmt.Errorf("sprint %q: %w", ref, storage.ErrNotFound)
	case 1:
		return matches[0], nil
	default:
		return models.Sprint{}, fmt.Errorf("%q matches %d sprints, use the ID", ref, len(matches))
	}
}

func findObjective(ctx *Context, ref string) (models.Objective, error) {
	sprints, err := ctx.Tracker.Sprints(ctx.User)
	if err != nil {
		return models.Objective{}, err
	}
	var matches []models.Objective
	for _, sp := range sprints {
		view, err := ctx.Tracker.Sprint(sp.ID)
		if err != nil {
			return models.Objective{}, err
		}
		for _, o := range view.Sprint.Objectives {
			if o.ID == ref {
				return o, nil
			}
			if len(ref) >= 4 && strings.HasPrefix(o.ID, ref) {
				matches = append(matches, o)
			}
		}
	}
	switch len(matches) {
	case 0:
		return models.Objective{}, fmt.Errorf("objective %q: %w", ref, storage.ErrNotFound)
	case 1:
		return matches[0], nil
	default:
		return models.Objective{}, fmt.Errorf("%q matches %d objectives, use more of the ID", ref, len(matches))
	}
}
